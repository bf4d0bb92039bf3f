package publicauth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/sessioncookie"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
	"golang.org/x/crypto/bcrypt"
)

func post(handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == sessioncookie.Name {
			return cookie
		}
	}
	return nil
}

func seededStore(t *testing.T) *fakeStore {
	store := newFakeStore()
	store.addUser(t, storage.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: storage.RoleAdmin, Status: storage.UserActive}, "correct horse")
	store.addUser(t, storage.User{ID: "u2", Name: "Sus", Email: "sus@example.com", Role: storage.RoleMember, Status: storage.UserSuspended}, "correct horse")
	return store
}

func TestMountValidatesDependencies(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, newTestIssuer(t)).Mount(testDeps()); err == nil {
		t.Fatal("expected missing store error")
	}
	if _, err := New(newFakeStore(), nil).Mount(testDeps()); err == nil {
		t.Fatal("expected missing issuer error")
	}
	mount, err := New(newFakeStore(), newTestIssuer(t)).Mount(testDeps())
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	for _, prefix := range mount.Prefixes {
		if strings.HasSuffix(prefix, "/") {
			t.Fatalf("auth prefix %q should be an exact path", prefix)
		}
	}
}

func TestLoginFormCarriesSafeCallback(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, newFakeStore(), newTestIssuer(t))
	rr := get(handler, "/login?callbackUrl=%2Fusers%3Fpage%3D2")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `name="callbackUrl" value="/users?page=2"`) {
		t.Fatal("expected callback in hidden field")
	}

	rr = get(handler, "/login?callbackUrl=https%3A%2F%2Fevil.example")
	if !strings.Contains(rr.Body.String(), `name="callbackUrl" value="/"`) {
		t.Fatal("expected external callback replaced by root")
	}
}

func TestLoginSuccessSetsSessionAndRedirects(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	issuer := newTestIssuer(t)
	rr := post(newTestHandler(t, store, issuer), routepath.Login, url.Values{
		"email":       {" ADA@example.com "},
		"password":    {"correct horse"},
		"callbackUrl": {"/organizations"},
	})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/organizations" {
		t.Fatalf("status = %d location = %q", rr.Code, rr.Header().Get("Location"))
	}
	cookie := sessionCookie(rr)
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly || cookie.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("session cookie = %+v", cookie)
	}
	identity, err := issuer.Parse(cookie.Value)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if identity.UserID != "u1" || identity.Role != "admin" || identity.Name != "Ada" {
		t.Fatalf("identity = %+v", identity)
	}
	store.mu.Lock()
	touched := store.touched["u1"]
	store.mu.Unlock()
	if !touched.Equal(fixedNow) {
		t.Fatalf("last login = %v", touched)
	}
}

func TestLoginRejectsUnsafeCallback(t *testing.T) {
	t.Parallel()

	rr := post(newTestHandler(t, seededStore(t), newTestIssuer(t)), routepath.Login, url.Values{
		"email":       {"ada@example.com"},
		"password":    {"correct horse"},
		"callbackUrl": {"//evil.example/path"},
	})
	if rr.Header().Get("Location") != "/" {
		t.Fatalf("Location = %q", rr.Header().Get("Location"))
	}
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
		want     int
	}{
		{name: "wrong password", email: "ada@example.com", password: "nope nope", want: http.StatusUnauthorized},
		{name: "unknown email", email: "who@example.com", password: "correct horse", want: http.StatusUnauthorized},
		{name: "blank", want: http.StatusUnauthorized},
		{name: "suspended", email: "sus@example.com", password: "correct horse", want: http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := post(newTestHandler(t, seededStore(t), newTestIssuer(t)), routepath.Login, url.Values{
				"email":    {tc.email},
				"password": {tc.password},
			})
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
			if sessionCookie(rr) != nil {
				t.Fatal("failed login must not set a session")
			}
			if !strings.Contains(rr.Body.String(), `role="alert"`) {
				t.Fatal("expected inline error")
			}
		})
	}
}

func TestRegisterCreatesActiveMember(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	rr := post(newTestHandler(t, store, newTestIssuer(t)), routepath.Register, url.Values{
		"name":     {"Grace"},
		"email":    {"Grace@Example.com"},
		"password": {"hopper1906"},
		"confirm":  {"hopper1906"},
	})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Fatalf("status = %d location = %q", rr.Code, rr.Header().Get("Location"))
	}
	if sessionCookie(rr) == nil {
		t.Fatal("expected session cookie")
	}
	user := store.user("user-1")
	if user.Email != "grace@example.com" || user.Role != storage.RoleMember || user.Status != storage.UserActive {
		t.Fatalf("user = %+v", user)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hopper1906")) != nil {
		t.Fatal("password hash mismatch")
	}
}

func TestRegisterFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		form url.Values
		want int
	}{
		{name: "mismatch", form: url.Values{"name": {"G"}, "email": {"g@example.com"}, "password": {"hopper1906"}, "confirm": {"hopper1907"}}, want: http.StatusUnprocessableEntity},
		{name: "short", form: url.Values{"name": {"G"}, "email": {"g@example.com"}, "password": {"short"}, "confirm": {"short"}}, want: http.StatusUnprocessableEntity},
		{name: "bad email", form: url.Values{"name": {"G"}, "email": {"nope"}, "password": {"hopper1906"}, "confirm": {"hopper1906"}}, want: http.StatusUnprocessableEntity},
		{name: "no name", form: url.Values{"email": {"g@example.com"}, "password": {"hopper1906"}, "confirm": {"hopper1906"}}, want: http.StatusUnprocessableEntity},
		{name: "taken", form: url.Values{"name": {"A"}, "email": {"ada@example.com"}, "password": {"hopper1906"}, "confirm": {"hopper1906"}}, want: http.StatusConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := post(newTestHandler(t, seededStore(t), newTestIssuer(t)), routepath.Register, tc.form)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
			if sessionCookie(rr) != nil {
				t.Fatal("failed registration must not sign in")
			}
		})
	}
}

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	handler := newTestHandler(t, store, newTestIssuer(t))

	known := post(handler, routepath.ForgotPassword, url.Values{"email": {"ada@example.com"}})
	unknown := post(handler, routepath.ForgotPassword, url.Values{"email": {"nobody@example.com"}})
	if known.Code != http.StatusOK || unknown.Code != http.StatusOK {
		t.Fatalf("status = %d / %d", known.Code, unknown.Code)
	}
	if known.Body.String() != unknown.Body.String() {
		t.Fatal("responses must not differ by account existence")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.resets) != 1 {
		t.Fatalf("resets = %d, want 1", len(store.resets))
	}
	reset := store.resets["reset-1"]
	if reset.UserID != "u1" || !reset.ExpiresAt.Equal(fixedNow.Add(time.Hour)) {
		t.Fatalf("reset = %+v", reset)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	store.resets["good"] = storage.PasswordReset{Token: "good", UserID: "u1", ExpiresAt: fixedNow.Add(time.Minute)}
	store.resets["old"] = storage.PasswordReset{Token: "old", UserID: "u1", ExpiresAt: fixedNow.Add(-time.Minute)}
	handler := newTestHandler(t, store, newTestIssuer(t))

	if rr := get(handler, "/reset-password?token=good"); rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `name="token" value="good"`) {
		t.Fatalf("valid token status = %d", rr.Code)
	}
	for _, path := range []string{"/reset-password?token=old", "/reset-password?token=missing", "/reset-password"} {
		if rr := get(handler, path); rr.Code != http.StatusGone {
			t.Fatalf("%s status = %d, want 410", path, rr.Code)
		}
	}

	rr := post(handler, routepath.ResetPassword, url.Values{"token": {"good"}, "password": {"new password"}, "confirm": {"other"}})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("mismatch status = %d", rr.Code)
	}

	rr = post(handler, routepath.ResetPassword, url.Values{"token": {"good"}, "password": {"new password"}, "confirm": {"new password"}})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != routepath.Login {
		t.Fatalf("status = %d location = %q", rr.Code, rr.Header().Get("Location"))
	}
	if bcrypt.CompareHashAndPassword([]byte(store.user("u1").PasswordHash), []byte("new password")) != nil {
		t.Fatal("password was not replaced")
	}

	rr = post(handler, routepath.ResetPassword, url.Values{"token": {"good"}, "password": {"another one"}, "confirm": {"another one"}})
	if rr.Code != http.StatusGone {
		t.Fatalf("reused token status = %d, want 410", rr.Code)
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, newFakeStore(), newTestIssuer(t))
	req := httptest.NewRequest(http.MethodPost, routepath.Logout, nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "token"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != routepath.Login {
		t.Fatalf("status = %d location = %q", rr.Code, rr.Header().Get("Location"))
	}
	if cookie := sessionCookie(rr); cookie == nil || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired session cookie, got %+v", cookie)
	}

	rr = get(handler, routepath.Logout)
	if rr.Code != http.StatusMethodNotAllowed || rr.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("GET logout status = %d allow = %q", rr.Code, rr.Header().Get("Allow"))
	}
}
