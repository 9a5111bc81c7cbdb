package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mpetrov/gormadmin/core"
)

// parseListParams reads the list query parameters into a core.Query.
//
//	skip      row offset, default 0
//	limit     page size, default from core.NewQuery (GORMADMIN_PAGE_SIZE),
//	          0 or negative for no limit
//	where     JSON object for field filters, any other string is a
//	          free-text search term
//	order_by  repeated "field" or "field desc" entries
func parseListParams(r *http.Request) (*core.Query, error) {
	qs := r.URL.Query()
	q := core.NewQuery()

	if skip, err := strconv.Atoi(qs.Get("skip")); err == nil && skip > 0 {
		q.Pagination.Offset = skip
	}
	if raw := qs.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			if limit <= 0 {
				q.Pagination.Limit = -1
			} else {
				q.WithPagination(limit, q.Pagination.Offset)
			}
		}
	}

	if raw := qs.Get("where"); raw != "" {
		var filters map[string]any
		if strings.HasPrefix(raw, "{") && json.Unmarshal([]byte(raw), &filters) == nil {
			q.WithFilters(filters)
		} else {
			q.WithSearch(raw)
		}
	}

	for _, entry := range qs["order_by"] {
		tokens := strings.Fields(entry)
		switch len(tokens) {
		case 0:
		case 1:
			q.WithSort(tokens[0], core.SortAsc)
		case 2:
			dir := core.SortDirection(strings.ToLower(tokens[1]))
			if !dir.IsValid() {
				return nil, fmt.Errorf("invalid order_by direction %q", tokens[1])
			}
			q.WithSort(tokens[0], dir)
		default:
			return nil, fmt.Errorf("invalid order_by entry %q", entry)
		}
	}
	return q, nil
}

// parsePKs parses the repeated pks query parameter through the view's key
// parser.
func parsePKs(r *http.Request, view core.ModelView) ([]any, error) {
	var pks []any
	for _, raw := range r.URL.Query()["pks"] {
		pk, err := view.ParsePK(raw)
		if err != nil {
			return nil, err
		}
		if pk != nil {
			pks = append(pks, pk)
		}
	}
	return pks, nil
}
