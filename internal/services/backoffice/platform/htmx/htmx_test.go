package htmx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func text(body string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, body)
		return err
	})
}

func TestTitleTagEscapes(t *testing.T) {
	t.Parallel()

	if got := TitleTag(`Users <Admin>`); got != "<title>Users &lt;Admin&gt;</title>" {
		t.Fatalf("TitleTag = %q", got)
	}
	if TitleTag("  ") != "" {
		t.Fatal("expected empty title tag")
	}
}

func TestRenderPageFullForDirectNavigation(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	RenderPage(rr, httptest.NewRequest(http.MethodGet, "/users", nil), Page{
		Title:    "Users",
		Fragment: text("<div>fragment</div>"),
		Full:     text("<html>full</html>"),
	})
	if rr.Code != http.StatusOK || rr.Body.String() != "<html>full</html>" {
		t.Fatalf("unexpected response: %d %q", rr.Code, rr.Body.String())
	}
}

func TestRenderPageFragmentForHTMX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	RenderPage(rr, req, Page{
		Title:    "Users",
		Status:   http.StatusUnprocessableEntity,
		Fragment: text("<div>fragment</div>"),
		Full:     text("<html>full</html>"),
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rr.Code)
	}
	if body := rr.Body.String(); !strings.HasPrefix(body, "<title>Users</title>") || !strings.Contains(body, "fragment") {
		t.Fatalf("body = %q", body)
	}
}

func TestRenderPageWithoutComponents(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	RenderPage(rr, httptest.NewRequest(http.MethodGet, "/", nil), Page{Status: http.StatusNoContent})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
	RenderPage(nil, nil, Page{})
}
