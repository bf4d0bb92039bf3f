package users

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/backoffice/internal/platform/requestctx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
)

func mountTestHandler(t *testing.T, store *fakeStore, viewer requestctx.Viewer) http.Handler {
	t.Helper()
	mount, err := newTestModule(store).Mount(testDependencies(viewer))
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return mount.Handler
}

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, handlers{})
}

func TestMountRequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := New(nil).Mount(testDependencies(requestctx.Viewer{})); err == nil {
		t.Fatal("expected error for missing store")
	}
}

func TestMountPrefixes(t *testing.T) {
	t.Parallel()

	mount, err := newTestModule(newFakeStore()).Mount(testDependencies(requestctx.Viewer{}))
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if len(mount.Prefixes) != 2 || mount.Prefixes[0] != routepath.Users || mount.Prefixes[1] != routepath.UsersPrefix {
		t.Fatalf("prefixes = %v", mount.Prefixes)
	}
}

func TestRegisterRoutesPathAndMethodContracts(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(storage.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: storage.RoleAdmin, Status: storage.UserActive, CreatedAt: fixedNow})
	handler := mountTestHandler(t, store, requestctx.Viewer{UserID: "viewer"})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{name: "list", method: http.MethodGet, path: routepath.Users, wantStatus: http.StatusOK},
		{name: "list head", method: http.MethodHead, path: routepath.Users, wantStatus: http.StatusOK},
		{name: "list delete rejected", method: http.MethodDelete, path: routepath.Users, wantStatus: http.StatusMethodNotAllowed},
		{name: "slash redirects", method: http.MethodGet, path: routepath.UsersPrefix, wantStatus: http.StatusMovedPermanently},
		{name: "table partial", method: http.MethodGet, path: routepath.UsersTable, wantStatus: http.StatusOK},
		{name: "new form", method: http.MethodGet, path: routepath.UsersNew, wantStatus: http.StatusOK},
		{name: "export", method: http.MethodGet, path: routepath.UsersExport, wantStatus: http.StatusOK},
		{name: "detail", method: http.MethodGet, path: routepath.User("u1"), wantStatus: http.StatusOK},
		{name: "missing detail", method: http.MethodGet, path: routepath.User("nope"), wantStatus: http.StatusNotFound},
		{name: "edit form", method: http.MethodGet, path: routepath.UserEdit("u1"), wantStatus: http.StatusOK},
		{name: "delete get rejected", method: http.MethodGet, path: routepath.UserDelete("u1"), wantStatus: http.StatusMethodNotAllowed, wantAllow: http.MethodPost},
		{name: "single export", method: http.MethodGet, path: routepath.UserExport("u1"), wantStatus: http.StatusOK},
		{name: "unknown subpath", method: http.MethodGet, path: routepath.User("u1") + "/unknown", wantStatus: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if tc.wantAllow != "" {
				if got := rr.Header().Get("Allow"); got != tc.wantAllow {
					t.Fatalf("Allow = %q, want %q", got, tc.wantAllow)
				}
			}
		})
	}
}
