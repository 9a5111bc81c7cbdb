package core

import (
	"testing"
)

// TestNewQueryDefaults verifies a fresh query carries default pagination
func TestNewQueryDefaults(t *testing.T) {
	q := NewQuery()

	if q.Pagination.Limit != DefaultPageSize {
		t.Errorf("Expected limit %d, got %d", DefaultPageSize, q.Pagination.Limit)
	}
	if q.Pagination.Offset != 0 {
		t.Errorf("Expected offset 0, got %d", q.Pagination.Offset)
	}
}

// TestQueryPageSizeFromEnv verifies the page size environment override
func TestQueryPageSizeFromEnv(t *testing.T) {
	t.Setenv("GORMADMIN_PAGE_SIZE", "35")

	q := NewQuery()
	if q.Pagination.Limit != 35 {
		t.Errorf("Expected limit 35 from env, got %d", q.Pagination.Limit)
	}
}

// TestQueryPageSizeFromEnvInvalid verifies bad env values fall back to the default
func TestQueryPageSizeFromEnvInvalid(t *testing.T) {
	for _, bad := range []string{"not-a-number", "-5", "0", "9999"} {
		t.Setenv("GORMADMIN_PAGE_SIZE", bad)
		q := NewQuery()
		if q.Pagination.Limit != DefaultPageSize {
			t.Errorf("Env %q: expected default limit %d, got %d", bad, DefaultPageSize, q.Pagination.Limit)
		}
	}
}

// TestWithPaginationClamping verifies limit and offset bounds
func TestWithPaginationClamping(t *testing.T) {
	q := NewQuery().WithPagination(500, -10)

	if q.Pagination.Limit != MaxPageSize {
		t.Errorf("Expected limit clamped to %d, got %d", MaxPageSize, q.Pagination.Limit)
	}
	if q.Pagination.Offset != 0 {
		t.Errorf("Expected negative offset clamped to 0, got %d", q.Pagination.Offset)
	}
}

// TestQueryWherePrecedence verifies search beats filters and empty is nil
func TestQueryWherePrecedence(t *testing.T) {
	q := NewQuery()
	if q.Where() != nil {
		t.Errorf("Expected nil where for empty query, got %v", q.Where())
	}

	q.WithFilters(map[string]any{"Active": true})
	if _, ok := q.Where().(map[string]any); !ok {
		t.Errorf("Expected filter map, got %T", q.Where())
	}

	q.WithSearch("ada")
	if q.Where() != "ada" {
		t.Errorf("Expected search term to take precedence, got %v", q.Where())
	}
}

// TestQueryOrderBy verifies sort fields render as "field direction" clauses
func TestQueryOrderBy(t *testing.T) {
	q := NewQuery().
		WithSort("CreatedAt", SortDesc).
		WithSort("Name", SortAsc).
		WithSort("Views", SortDirection("bogus"))

	got := q.OrderBy()
	want := []string{"CreatedAt desc", "Name asc", "Views asc"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d clauses, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Clause %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// TestSortDirectionOpposite verifies direction flipping
func TestSortDirectionOpposite(t *testing.T) {
	if SortAsc.Opposite() != SortDesc {
		t.Error("Expected asc.Opposite() to be desc")
	}
	if SortDesc.Opposite() != SortAsc {
		t.Error("Expected desc.Opposite() to be asc")
	}
}
