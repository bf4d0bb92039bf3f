// Package requestctx carries per-request identity through context.
package requestctx

import "context"

// Viewer is the signed-in user rendering a page.
type Viewer struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

// SignedIn reports whether the viewer carries a user identity.
func (v Viewer) SignedIn() bool {
	return v.UserID != ""
}

type viewerContextKey struct{}

// WithViewer stores the viewer in context.
func WithViewer(ctx context.Context, viewer Viewer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, viewerContextKey{}, viewer)
}

// ViewerFromContext returns the viewer stored in context, or the zero
// Viewer.
func ViewerFromContext(ctx context.Context) Viewer {
	if ctx == nil {
		return Viewer{}
	}
	viewer, _ := ctx.Value(viewerContextKey{}).(Viewer)
	return viewer
}

// UserIDFromContext returns the signed-in user id, if any.
func UserIDFromContext(ctx context.Context) string {
	return ViewerFromContext(ctx).UserID
}
