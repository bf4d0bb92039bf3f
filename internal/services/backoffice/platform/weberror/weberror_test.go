package weberror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/louisbranch/backoffice/internal/services/backoffice/platform/errors"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
	"golang.org/x/text/message"
)

type mapLocalizer map[string]string

func (m mapLocalizer) Sprintf(key message.Reference, args ...any) string {
	keyString, _ := key.(string)
	if value, ok := m[keyString]; ok {
		return value
	}
	return keyString
}

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusInternalServerError},
		{name: "untyped", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "not found", err: apperrors.Wrap(fmt.Errorf("get: %w", storage.ErrNotFound), "missing"), want: http.StatusNotFound},
		{name: "invalid", err: apperrors.E(apperrors.KindInvalidInput, "bad"), want: http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Status(tc.err); got != tc.want {
				t.Fatalf("Status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	loc := mapLocalizer{"error.not_found": "Nothing here"}
	if got := PublicMessage(loc, nil); got != "" {
		t.Fatalf("nil = %q", got)
	}
	if got := PublicMessage(loc, apperrors.Wrap(storage.ErrNotFound, "get user")); got != "Nothing here" {
		t.Fatalf("localized = %q", got)
	}
	if got := PublicMessage(loc, errors.New("sql: secret detail")); got != "Internal Server Error" {
		t.Fatalf("untyped = %q", got)
	}
	if got := PublicMessage(nil, apperrors.E(apperrors.KindConflict, "taken")); got != "Conflict" {
		t.Fatalf("no localizer = %q", got)
	}
}
