package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams(12)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 12, p.PerPage)
	assert.Equal(t, 0, p.Offset)
}

func TestDefaultParams_ZeroFallsBack(t *testing.T) {
	p := DefaultParams(0)
	assert.Equal(t, 20, p.PerPage)
}

func TestFromRequest_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	p := FromRequest(req, 12)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 12, p.PerPage)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_CustomValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/items?page=3&per_page=50", nil)
	p := FromRequest(req, 12)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PerPage)
	assert.Equal(t, 100, p.Offset)
}

func TestFromRequest_InvalidValuesIgnored(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"negative page", "page=-1"},
		{"zero page", "page=0"},
		{"non-numeric page", "page=abc"},
		{"negative per_page", "per_page=-5"},
		{"per_page over cap", "per_page=500"},
		{"non-numeric per_page", "per_page=xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items?"+tt.query, nil)
			p := FromRequest(req, 12)
			assert.Equal(t, 1, p.Page)
			assert.Equal(t, 12, p.PerPage)
		})
	}
}

func TestClamp(t *testing.T) {
	p := Params{Page: -3, PerPage: 0}.Clamp(12)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 12, p.PerPage)
	assert.Equal(t, 0, p.Offset)

	p = Params{Page: 4, PerPage: 1000}.Clamp(12)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, 300, p.Offset)
}

func TestNewResult_TotalPagesCeiling(t *testing.T) {
	tests := []struct {
		name       string
		totalCount int
		perPage    int
		totalPages int
	}{
		{"exact multiple", 40, 20, 2},
		{"with remainder", 41, 20, 3},
		{"single partial page", 5, 20, 1},
		{"empty", 0, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResult([]string{}, tt.totalCount, Params{Page: 1, PerPage: tt.perPage})
			assert.Equal(t, tt.totalPages, r.TotalPages)
		})
	}
}

func TestNewResult_HasNextHasPrev(t *testing.T) {
	r := NewResult([]int{1, 2}, 50, Params{Page: 2, PerPage: 10})
	assert.True(t, r.HasNext)
	assert.True(t, r.HasPrev)

	r = NewResult([]int{1, 2}, 50, Params{Page: 1, PerPage: 10})
	assert.True(t, r.HasNext)
	assert.False(t, r.HasPrev)

	r = NewResult([]int{1, 2}, 50, Params{Page: 5, PerPage: 10})
	assert.False(t, r.HasNext)
	assert.True(t, r.HasPrev)
}

func TestNewResult_EmptyPageBeyondLast(t *testing.T) {
	r := NewResult([]int{}, 15, Params{Page: 9, PerPage: 10})
	assert.Empty(t, r.Data)
	assert.Equal(t, 15, r.TotalCount)
	assert.Equal(t, 2, r.TotalPages)
	assert.False(t, r.HasNext)
}
