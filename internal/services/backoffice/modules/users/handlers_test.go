package users

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/requestctx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
	"golang.org/x/crypto/bcrypt"
)

func postForm(handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func validForm() url.Values {
	return url.Values{
		"name":     {"Ada Lovelace"},
		"email":    {"Ada@Example.com"},
		"role":     {"manager"},
		"status":   {"active"},
		"password": {"correct horse"},
	}
}

func TestCreateUserRedirectsToDetail(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	rr := postForm(mountTestHandler(t, store, requestctx.Viewer{UserID: "admin"}), routepath.Users, validForm())

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Location"); got != routepath.User("user-1") {
		t.Fatalf("Location = %q", got)
	}
	user, ok := store.user("user-1")
	if !ok {
		t.Fatal("expected stored user")
	}
	if user.Email != "ada@example.com" || user.Role != storage.RoleManager || !user.CreatedAt.Equal(fixedNow) {
		t.Fatalf("user = %+v", user)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")); err != nil {
		t.Fatalf("password hash mismatch: %v", err)
	}
}

func TestCreateUserHTMXRedirect(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, routepath.Users, strings.NewReader(validForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	mountTestHandler(t, newFakeStore(), requestctx.Viewer{}).ServeHTTP(rr, req)

	if got := rr.Header().Get("HX-Redirect"); got != routepath.User("user-1") {
		t.Fatalf("HX-Redirect = %q", got)
	}
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(url.Values)
		want   int
	}{
		{name: "missing name", mutate: func(v url.Values) { v.Set("name", " ") }, want: http.StatusUnprocessableEntity},
		{name: "bad email", mutate: func(v url.Values) { v.Set("email", "not-an-email") }, want: http.StatusUnprocessableEntity},
		{name: "display name email", mutate: func(v url.Values) { v.Set("email", "Ada <ada@example.com>") }, want: http.StatusUnprocessableEntity},
		{name: "bad role", mutate: func(v url.Values) { v.Set("role", "owner") }, want: http.StatusUnprocessableEntity},
		{name: "bad status", mutate: func(v url.Values) { v.Set("status", "gone") }, want: http.StatusUnprocessableEntity},
		{name: "short password", mutate: func(v url.Values) { v.Set("password", "short") }, want: http.StatusUnprocessableEntity},
		{name: "unknown organization", mutate: func(v url.Values) { v.Set("organization_id", "org-x") }, want: http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			store := newFakeStore()
			form := validForm()
			tc.mutate(form)
			rr := postForm(mountTestHandler(t, store, requestctx.Viewer{}), routepath.Users, form)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
			body := rr.Body.String()
			if !strings.Contains(body, `role="alert"`) || !strings.Contains(body, `name="name"`) {
				t.Fatal("expected form re-rendered with error")
			}
			if _, ok := store.user("user-1"); ok {
				t.Fatal("invalid user should not be stored")
			}
		})
	}
}

func TestCreateUserEchoesInputOnFailure(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.Set("name", "")
	rr := postForm(mountTestHandler(t, newFakeStore(), requestctx.Viewer{}), routepath.Users, form)
	if !strings.Contains(rr.Body.String(), `value="Ada@Example.com"`) {
		t.Fatal("expected submitted email echoed back")
	}
	if strings.Contains(rr.Body.String(), "correct horse") {
		t.Fatal("password must not be echoed")
	}
}

func TestCreateUserDuplicateEmailConflict(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(storage.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: storage.RoleAdmin, Status: storage.UserActive})
	rr := postForm(mountTestHandler(t, store, requestctx.Viewer{}), routepath.Users, validForm())
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestCreateUserWithoutPasswordLeavesHashEmpty(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	form := validForm()
	form.Del("password")
	form.Del("status")
	rr := postForm(mountTestHandler(t, store, requestctx.Viewer{}), routepath.Users, form)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rr.Code)
	}
	user, _ := store.user("user-1")
	if user.PasswordHash != "" || user.Status != storage.UserInvited {
		t.Fatalf("user = %+v", user)
	}
}

func TestUpdateUserKeepsPasswordWhenBlank(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.orgs["org-1"] = storage.Organization{ID: "org-1", Name: "Acme"}
	store.addUser(storage.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: storage.RoleMember, Status: storage.UserInvited, PasswordHash: "kept", CreatedAt: fixedNow})

	form := validForm()
	form.Set("password", "")
	form.Set("organization_id", "org-1")
	rr := postForm(mountTestHandler(t, store, requestctx.Viewer{}), routepath.UserEdit("u1"), form)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d body = %s", rr.Code, rr.Body.String())
	}
	user, _ := store.user("u1")
	if user.PasswordHash != "kept" || user.OrganizationID != "org-1" || user.Status != storage.UserActive || !user.CreatedAt.Equal(fixedNow) {
		t.Fatalf("user = %+v", user)
	}
}

func TestUpdateMissingUserIsNotFound(t *testing.T) {
	t.Parallel()

	rr := postForm(mountTestHandler(t, newFakeStore(), requestctx.Viewer{}), routepath.UserEdit("ghost"), validForm())
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(storage.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: storage.RoleMember, Status: storage.UserActive})
	store.addUser(storage.User{ID: "me", Name: "Me", Email: "me@example.com", Role: storage.RoleAdmin, Status: storage.UserActive})
	handler := mountTestHandler(t, store, requestctx.Viewer{UserID: "me"})

	rr := postForm(handler, routepath.UserDelete("me"), nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("self delete status = %d", rr.Code)
	}
	if _, ok := store.user("me"); !ok {
		t.Fatal("self delete must not remove the user")
	}

	rr = postForm(handler, routepath.UserDelete("u1"), nil)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != routepath.Users {
		t.Fatalf("status = %d location = %q", rr.Code, rr.Header().Get("Location"))
	}
	if _, ok := store.user("u1"); ok {
		t.Fatal("expected user removed")
	}

	rr = postForm(handler, routepath.UserDelete("u1"), nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("repeat delete status = %d", rr.Code)
	}
}

func TestListPaginatesAndFilters(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	for i := range 25 {
		store.addUser(storage.User{
			ID:     fmt.Sprintf("u%02d", i),
			Name:   fmt.Sprintf("User %02d", i),
			Email:  fmt.Sprintf("user%02d@example.com", i),
			Role:   storage.RoleMember,
			Status: storage.UserActive,
		})
	}
	handler := mountTestHandler(t, store, requestctx.Viewer{})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users?page=2&status=active&role=bogus&q=user", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	store.mu.Lock()
	filter := store.lastFilter
	store.mu.Unlock()
	if filter.Limit != PageSize || filter.Offset != PageSize || filter.Status != storage.UserActive || filter.Role != "" || filter.Query != "user" {
		t.Fatalf("filter = %+v", filter)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "user24@example.com") || strings.Contains(body, "user00@example.com") {
		t.Fatal("expected second page only")
	}
	if !strings.Contains(body, `href="/users?page=1&amp;q=user&amp;status=active"`) {
		t.Fatalf("expected previous page link in %s", body)
	}
}

func TestTablePartialOmitsLayout(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountTestHandler(t, newFakeStore(), requestctx.Viewer{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.UsersTable, nil))
	if strings.Contains(rr.Body.String(), "<html") {
		t.Fatal("table partial should not include the layout")
	}
	if !strings.Contains(rr.Body.String(), `class="data-table"`) {
		t.Fatal("expected table markup")
	}
}

func TestListStoreFailureRendersServerError(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.listErr = errors.New("disk on fire")
	rr := httptest.NewRecorder()
	mountTestHandler(t, store, requestctx.Viewer{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Users, nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "disk on fire") {
		t.Fatal("internal error leaked")
	}
}

func TestExportBulk(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(storage.User{ID: "u1", Name: `Ada "Countess"`, Email: "ada@example.com", Role: storage.RoleAdmin, Status: storage.UserActive, CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)})
	rr := httptest.NewRecorder()
	mountTestHandler(t, store, requestctx.Viewer{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.UsersExport, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/csv; charset=utf-8" {
		t.Fatalf("Content-Type = %q", got)
	}
	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, "csv_data_2024-06-15T10:30:00.000Z.csv") {
		t.Fatalf("Content-Disposition = %q", got)
	}
	want := "id,name,email,role,status,organization_id,organization,created_at,last_login_at\n" +
		`"u1","Ada ""Countess""","ada@example.com","admin","active","","","2024-01-02T03:04:05Z",""`
	if rr.Body.String() != want {
		t.Fatalf("body = %q, want %q", rr.Body.String(), want)
	}
}

func TestExportBulkEmptyIsNoContent(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountTestHandler(t, newFakeStore(), requestctx.Viewer{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.UsersExport, nil))
	if rr.Code != http.StatusNoContent || rr.Body.Len() != 0 {
		t.Fatalf("status = %d body = %q", rr.Code, rr.Body.String())
	}
}

func TestExportSingle(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.addUser(storage.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: storage.RoleAdmin, Status: storage.UserActive})
	rr := httptest.NewRecorder()
	mountTestHandler(t, store, requestctx.Viewer{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.UserExport("u1"), nil))

	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, "csv_2024-06-15T10:30:00.000Z.csv") {
		t.Fatalf("Content-Disposition = %q", got)
	}
	if strings.HasPrefix(rr.Body.String(), "id,") {
		t.Fatal("single export has no header row")
	}
	if !strings.HasPrefix(rr.Body.String(), `"u1","Ada"`) {
		t.Fatalf("body = %q", rr.Body.String())
	}
}
