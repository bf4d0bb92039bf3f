package requestctx

import (
	"context"
	"testing"
)

func TestViewerRoundTrip(t *testing.T) {
	viewer := Viewer{UserID: "user-42", Name: "Ada", Email: "ada@example.com", Role: "admin"}
	ctx := WithViewer(context.Background(), viewer)
	if got := ViewerFromContext(ctx); got != viewer {
		t.Fatalf("ViewerFromContext = %+v, want %+v", got, viewer)
	}
	if got := UserIDFromContext(ctx); got != "user-42" {
		t.Fatalf("UserIDFromContext = %q", got)
	}
	if !viewer.SignedIn() {
		t.Fatal("expected viewer to be signed in")
	}
}

func TestViewerFromContextEmpty(t *testing.T) {
	if got := ViewerFromContext(context.Background()); got.SignedIn() {
		t.Fatalf("expected anonymous viewer, got %+v", got)
	}
}

func TestViewerFromContextNil(t *testing.T) {
	if got := UserIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %q", got)
	}
}

func TestWithViewerNilContext(t *testing.T) {
	ctx := WithViewer(nil, Viewer{UserID: "user-99"})
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if got := UserIDFromContext(ctx); got != "user-99" {
		t.Fatalf("UserIDFromContext = %q, want %q", got, "user-99")
	}
}
