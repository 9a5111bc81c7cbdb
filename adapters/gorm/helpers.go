package gorm

import (
	"fmt"
	"strings"

	"gorm.io/gorm/clause"
)

// SortSpec is one normalized default-sort entry.
type SortSpec struct {
	Field string
	Desc  bool
}

// NormalizeList coerces a heterogeneous field-list configuration value into
// a canonical []string. A nil input stays nil, meaning "leave unset" so the
// view constructor can derive its own default.
func NormalizeList(values []any) ([]string, error) {
	if values == nil {
		return nil, nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("invalid field list entry: expected a field name string, got %T", v)
		}
		out = append(out, s)
	}
	return out, nil
}

// NormalizeSortList coerces a default-sort configuration value into
// canonical SortSpec entries: a bare field name sorts ascending, a SortSpec
// passes through unchanged. Nil stays nil.
func NormalizeSortList(values []any) ([]SortSpec, error) {
	if values == nil {
		return nil, nil
	}
	out := make([]SortSpec, 0, len(values))
	for _, v := range values {
		switch e := v.(type) {
		case string:
			out = append(out, SortSpec{Field: e})
		case SortSpec:
			out = append(out, e)
		default:
			return nil, fmt.Errorf("invalid default sort entry: expected a field name or SortSpec, got %T", v)
		}
	}
	return out, nil
}

// BuildSearchQuery builds a predicate matching records where ANY of the
// columns case-insensitively contains term as a substring. An empty term or
// empty column set yields nil, a no-op predicate matching everything.
func BuildSearchQuery(term string, columns []string) clause.Expression {
	if term == "" || len(columns) == 0 {
		return nil
	}

	pattern := "%" + strings.ToLower(term) + "%"
	exprs := make([]clause.Expression, 0, len(columns))
	for _, col := range columns {
		exprs = append(exprs, clause.Like{
			Column: clause.Expr{SQL: "LOWER(?)", Vars: []interface{}{clause.Column{Name: col}}},
			Value:  pattern,
		})
	}
	return clause.Or(exprs...)
}

// BuildFilterQuery builds a conjunctive predicate from a column -> value
// mapping. Slice values use membership semantics (IN), scalars exact
// equality. An empty mapping yields nil, matching everything.
func BuildFilterQuery(where map[string]any) clause.Expression {
	if len(where) == 0 {
		return nil
	}

	exprs := make([]clause.Expression, 0, len(where))
	for col, value := range where {
		if vals, ok := asSlice(value); ok {
			exprs = append(exprs, clause.IN{Column: clause.Column{Name: col}, Values: vals})
		} else {
			exprs = append(exprs, clause.Eq{Column: clause.Column{Name: col}, Value: value})
		}
	}
	return clause.And(exprs...)
}

// BuildOrderQuery builds ordering clauses from "column direction" strings.
// A direction equal to "desc" (case-insensitive) orders descending; any
// other direction token orders ascending. A malformed entry is a
// programming error and panics.
func BuildOrderQuery(orderBy []string) []clause.OrderByColumn {
	out := make([]clause.OrderByColumn, 0, len(orderBy))
	for _, value := range orderBy {
		parts := strings.Fields(value)
		if len(parts) != 2 {
			panic(fmt.Sprintf("malformed order clause %q: want \"column direction\"", value))
		}
		out = append(out, clause.OrderByColumn{
			Column: clause.Column{Name: parts[0]},
			Desc:   strings.EqualFold(parts[1], "desc"),
		})
	}
	return out
}

func asSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	case []int64:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	case []uint:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	}
	return nil, false
}
