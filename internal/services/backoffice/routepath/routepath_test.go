package routepath

import (
	"net/url"
	"testing"
)

func TestDetailPathsEscapeSegments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		got  string
		want string
	}{
		{User("u 1"), "/users/u%201"},
		{UserEdit("u1"), "/users/u1/edit"},
		{UserDelete("u1"), "/users/u1/delete"},
		{UserExport(" u1 "), "/users/u1/export"},
		{Organization("a/b"), "/organizations/a%2Fb"},
		{OrganizationEdit("o1"), "/organizations/o1/edit"},
		{OrganizationDelete("o1"), "/organizations/o1/delete"},
		{OrganizationExport("o1"), "/organizations/o1/export"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("path = %q, want %q", tc.got, tc.want)
		}
	}
}

func TestWithQueryDropsBlankValues(t *testing.T) {
	t.Parallel()

	got := WithQuery(Users, url.Values{"q": {"ada"}, "status": {""}, "page": {"2"}})
	if got != "/users?page=2&q=ada" {
		t.Fatalf("WithQuery = %q", got)
	}
	if got := WithQuery(Users, url.Values{"q": {" "}}); got != Users {
		t.Fatalf("WithQuery blank = %q", got)
	}
}
