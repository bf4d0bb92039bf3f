package users

import (
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{raw: " Ada@Example.COM ", want: "ada@example.com", ok: true},
		{raw: "", ok: false},
		{raw: "ada", ok: false},
		{raw: "Ada <ada@example.com>", ok: false},
	}
	for _, tc := range tests {
		got, ok := normalizeEmail(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("normalizeEmail(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := map[int]int{0: 1, 1: 1, 20: 1, 21: 2, 45: 3}
	for total, want := range tests {
		if got := totalPages(total, PageSize); got != want {
			t.Fatalf("totalPages(%d) = %d, want %d", total, got, want)
		}
	}
}

func TestPaginationLinks(t *testing.T) {
	t.Parallel()

	view := pagination(ListQuery{Query: "ada", Page: 2}, 45)
	if view.TotalPages != 3 || view.PrevURL != "/users?page=1&q=ada" || view.NextURL != "/users?page=3&q=ada" {
		t.Fatalf("view = %+v", view)
	}
	last := pagination(ListQuery{Page: 3}, 45)
	if last.NextURL != "" || last.PrevURL == "" {
		t.Fatalf("last = %+v", last)
	}
}
