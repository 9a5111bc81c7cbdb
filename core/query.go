package core

import (
	"os"
	"strconv"
)

// Constants for pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SortDirection represents the sort order
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortField represents a field to sort by
type SortField struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// Pagination represents pagination parameters
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Query represents one list request: filters or a search term, sorting, and
// pagination. It is what the HTTP layer hands to a ModelView.
type Query struct {
	Filters    map[string]any `json:"filters"`
	Search     string         `json:"search"`
	Sort       []SortField    `json:"sort"`
	Pagination Pagination     `json:"pagination"`
}

// NewQuery creates a new Query with default pagination
func NewQuery() *Query {
	return &Query{
		Filters: make(map[string]any),
		Sort:    []SortField{},
		Pagination: Pagination{
			Limit:  getPageSizeFromEnv(),
			Offset: 0,
		},
	}
}

// WithFilters adds filters to the query
func (q *Query) WithFilters(filters map[string]any) *Query {
	for k, v := range filters {
		q.Filters[k] = v
	}
	return q
}

// WithSearch sets a free-text search term; it takes precedence over filters
func (q *Query) WithSearch(term string) *Query {
	q.Search = term
	return q
}

// WithSort adds a sort field to the query
func (q *Query) WithSort(field string, direction SortDirection) *Query {
	q.Sort = append(q.Sort, SortField{Field: field, Direction: direction})
	return q
}

// WithPagination sets pagination parameters
func (q *Query) WithPagination(limit, offset int) *Query {
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if limit <= 0 {
		limit = getPageSizeFromEnv()
	}
	if offset < 0 {
		offset = 0
	}

	q.Pagination.Limit = limit
	q.Pagination.Offset = offset
	return q
}

// Where returns the filter argument for ModelView.FindAll/Count: the search
// term when one is set, the filter mapping when non-empty, nil otherwise.
func (q *Query) Where() any {
	if q.Search != "" {
		return q.Search
	}
	if len(q.Filters) > 0 {
		return q.Filters
	}
	return nil
}

// OrderBy renders the sort fields as "field direction" clauses.
func (q *Query) OrderBy() []string {
	clauses := make([]string, 0, len(q.Sort))
	for _, s := range q.Sort {
		dir := s.Direction
		if !dir.IsValid() {
			dir = SortAsc
		}
		clauses = append(clauses, s.Field+" "+string(dir))
	}
	return clauses
}

// HasFilters returns true if the query has any filters
func (q *Query) HasFilters() bool {
	return len(q.Filters) > 0
}

// HasSort returns true if the query has sorting
func (q *Query) HasSort() bool {
	return len(q.Sort) > 0
}

// getPageSizeFromEnv gets page size from environment variable or default
func getPageSizeFromEnv() int {
	if envSize := os.Getenv("GORMADMIN_PAGE_SIZE"); envSize != "" {
		if size, err := strconv.Atoi(envSize); err == nil && size > 0 && size <= MaxPageSize {
			return size
		}
	}
	return DefaultPageSize
}

// String returns a string representation of the sort direction
func (sd SortDirection) String() string {
	return string(sd)
}

// IsValid checks if the sort direction is valid
func (sd SortDirection) IsValid() bool {
	return sd == SortAsc || sd == SortDesc
}

// Opposite returns the opposite sort direction
func (sd SortDirection) Opposite() SortDirection {
	if sd == SortAsc {
		return SortDesc
	}
	return SortAsc
}
