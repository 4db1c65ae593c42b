package pagination_test

import (
	"net/http/httptest"
	"testing"

	"podcast-browser/internal/common/pagination"
)

func TestCalculateOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		page  int
		limit int
		want  int
	}{
		{name: "first page", page: 1, limit: 10, want: 0},
		{name: "second page", page: 2, limit: 10, want: 10},
		{name: "page 10 with limit 50", page: 10, limit: 50, want: 450},
		{name: "page 1 with limit 1", page: 1, limit: 1, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := pagination.CalculateOffset(tt.page, tt.limit); got != tt.want {
				t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{name: "empty result has one page", total: 0, limit: 10, want: 1},
		{name: "partial page", total: 7, limit: 10, want: 1},
		{name: "exact fit", total: 20, limit: 10, want: 2},
		{name: "one over", total: 21, limit: 10, want: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := pagination.CalculateTotalPages(tt.total, tt.limit); got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

func TestHasMorePages(t *testing.T) {
	t.Parallel()

	if !pagination.HasMorePages(1, 10, 11) {
		t.Error("HasMorePages(1, 10, 11) = false, want true")
	}
	if pagination.HasMorePages(2, 10, 20) {
		t.Error("HasMorePages(2, 10, 20) = true, want false")
	}
	if pagination.HasMorePages(1, 10, 0) {
		t.Error("HasMorePages(1, 10, 0) = true, want false")
	}
}

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	cfg := pagination.DefaultConfig()

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 10},
		{name: "explicit values", query: "?page=3&limit=25", wantPage: 3, wantLimit: 25},
		{name: "zero page rejected", query: "?page=0", wantErr: true},
		{name: "negative page rejected", query: "?page=-1", wantErr: true},
		{name: "non-numeric page rejected", query: "?page=abc", wantErr: true},
		{name: "limit above max rejected", query: "?limit=51", wantErr: true},
		{name: "zero limit rejected", query: "?limit=0", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/podcasts"+tt.query, nil)
			params, err := pagination.ParseQueryParams(r, cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseQueryParams() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQueryParams() error = %v", err)
			}
			if params.Page != tt.wantPage || params.Limit != tt.wantLimit {
				t.Errorf("params = %+v, want page=%d limit=%d", params, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestParamsWithDefaults(t *testing.T) {
	t.Parallel()

	cfg := pagination.DefaultConfig()

	p := pagination.Params{Page: 0, Limit: 0}.WithDefaults(cfg)
	if p.Page != 1 || p.Limit != 10 {
		t.Errorf("WithDefaults = %+v, want page=1 limit=10", p)
	}

	p = pagination.Params{Page: 2, Limit: 999}.WithDefaults(cfg)
	if p.Limit != cfg.MaxLimit {
		t.Errorf("WithDefaults limit = %d, want capped at %d", p.Limit, cfg.MaxLimit)
	}
}

func TestNewMetadata(t *testing.T) {
	t.Parallel()

	md := pagination.NewMetadata(2, 10, 35)
	if md.Page != 2 || md.Limit != 10 || md.Total != 35 || md.TotalPages != 4 {
		t.Errorf("NewMetadata = %+v", md)
	}
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	cfg := pagination.DefaultConfig()

	if err := (pagination.Params{Page: 1, Limit: 10}).Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if err := (pagination.Params{Page: 0, Limit: 10}).Validate(cfg); err == nil {
		t.Error("Validate() error = nil for page 0")
	}
	if err := (pagination.Params{Page: 1, Limit: 51}).Validate(cfg); err == nil {
		t.Error("Validate() error = nil for limit above max")
	}
}
