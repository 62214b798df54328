package pagination

import "testing"

func TestDefaults(t *testing.T) {
	tests := []struct {
		name             string
		in               PageRequest
		wantPage, wantSz int
	}{
		{"zero_values", PageRequest{}, 1, DefaultPageSize},
		{"negative_values", PageRequest{Page: -3, PageSize: -1}, 1, DefaultPageSize},
		{"clamps_page_size", PageRequest{Page: 2, PageSize: 500}, 2, MaxPageSize},
		{"keeps_valid_values", PageRequest{Page: 3, PageSize: 10}, 3, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Defaults()
			if p.Page != tt.wantPage || p.PageSize != tt.wantSz {
				t.Errorf("expected page=%d size=%d, got page=%d size=%d", tt.wantPage, tt.wantSz, p.Page, p.PageSize)
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	t.Run("computes_total_pages", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2}, PageRequest{Page: 1, PageSize: 2}, 5)
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 total pages, got %d", resp.TotalPages)
		}
	})

	t.Run("nil_data_becomes_empty_slice", func(t *testing.T) {
		resp := NewPageResponse[int](nil, PageRequest{Page: 1, PageSize: 20}, 0)
		if resp.Data == nil || len(resp.Data) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", resp.Data)
		}
	})

	t.Run("offset", func(t *testing.T) {
		p := PageRequest{Page: 3, PageSize: 25}
		if p.Offset() != 50 {
			t.Errorf("expected offset 50, got %d", p.Offset())
		}
	})
}
