package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
)

func TestHTTPStatusMapsKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{KindInvalidInput, http.StatusUnprocessableEntity},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindUnknown, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(E(tc.kind, "x")); got != tc.want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestHTTPStatusNilAndUntyped(t *testing.T) {
	t.Parallel()

	if got := HTTPStatus(nil); got != http.StatusOK {
		t.Fatalf("HTTPStatus(nil) = %d", got)
	}
	if got := HTTPStatus(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus(untyped) = %d", got)
	}
}

func TestErrorStringFallsBackToKind(t *testing.T) {
	t.Parallel()

	if got := (Error{Kind: KindForbidden}).Error(); got != string(KindForbidden) {
		t.Fatalf("Error() = %q", got)
	}
}

func TestWrapClassifiesStorageSentinels(t *testing.T) {
	t.Parallel()

	notFound := Wrap(fmt.Errorf("get user: %w", storage.ErrNotFound), "user not found")
	if HTTPStatus(notFound) != http.StatusNotFound || LocalizationKey(notFound) != "error.not_found" {
		t.Fatalf("unexpected not found mapping: %v", notFound)
	}
	if !errors.Is(notFound, storage.ErrNotFound) {
		t.Fatal("expected wrapped sentinel to remain visible")
	}

	conflict := Wrap(storage.ErrConflict, "email taken")
	if KindOf(conflict) != KindConflict {
		t.Fatalf("KindOf = %s, want conflict", KindOf(conflict))
	}

	other := Wrap(errors.New("disk"), "load")
	if KindOf(other) != KindUnknown || HTTPStatus(other) != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping for generic error: %v", other)
	}

	typed := EK(KindInvalidInput, "error.name_required", "name required")
	if Wrap(typed, "ignored") != typed {
		t.Fatal("expected typed errors to pass through unchanged")
	}
	if Wrap(nil, "x") != nil {
		t.Fatal("expected nil to stay nil")
	}
}
