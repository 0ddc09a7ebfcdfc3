package view

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/go-records/auth"
	"github.com/diewo77/go-records/httpx"
	"github.com/diewo77/go-records/i18n"
	"github.com/diewo77/go-records/internal/models"
)

func TestRenderInjectsFlashAndPrincipal(t *testing.T) {
	ResetForTests()
	set := httptest.NewRecorder()
	Flash(set, httptest.NewRequest(http.MethodGet, "/", nil), LevelSuccess, "flash_category_added")

	req := httptest.NewRequest(http.MethodGet, "/gender/add", nil)
	for _, c := range set.Result().Cookies() {
		req.AddCookie(c)
	}
	person := &models.Person{ID: 7, FullName: "Grace Hopper", Username: "grace"}
	req = req.WithContext(auth.WithPrincipal(req.Context(), &auth.Principal{AccountID: 1, Username: "grace", Person: person}))

	rr := httptest.NewRecorder()
	if err := Render(rr, req, "gender/add.html", map[string]any{"Form": struct{ Name string }{}, "Errors": nil}); err != nil {
		t.Fatalf("render: %v", err)
	}
	body := rr.Body.String()
	for _, want := range []string{"Category added successfully!", "Grace Hopper", "/user/changepass/7"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	var cleared bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == flashCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("flash cookie should be cleared after display")
	}
}

func TestRenderUsesRequestLanguage(t *testing.T) {
	ResetForTests()
	req := httptest.NewRequest(http.MethodGet, "/login/", nil)
	req = req.WithContext(i18n.WithLang(req.Context(), "fr"))
	rr := httptest.NewRecorder()
	if err := Render(rr, req, "login.html", map[string]any{"Username": "", "Error": ""}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(rr.Body.String(), i18n.T("fr", "login")) || !strings.Contains(rr.Body.String(), `lang="fr"`) {
		t.Fatalf("expected french page, got %s", rr.Body.String())
	}
}

func TestDevModeSkipsTemplateCache(t *testing.T) {
	cached := func() int {
		tplCache.RLock()
		defer tplCache.RUnlock()
		return len(tplCache.m)
	}
	render := func() {
		t.Helper()
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/login/", nil)
		if err := Render(rr, req, "login.html", map[string]any{"Username": "", "Error": ""}); err != nil {
			t.Fatalf("render: %v", err)
		}
	}

	ResetForTests()
	SetDevMode(true)
	defer SetDevMode(false)
	render()
	if n := cached(); n != 0 {
		t.Fatalf("dev mode cached %d templates", n)
	}

	SetDevMode(false)
	render()
	if n := cached(); n != 1 {
		t.Fatalf("expected 1 cached template, got %d", n)
	}
}

func TestFlashRoundTrip(t *testing.T) {
	rr := httptest.NewRecorder()
	Redirect(rr, httptest.NewRequest(http.MethodPost, "/", nil), "/user/list", LevelError, "flash_person_deleted", "bob")
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/user/list" {
		t.Fatalf("unexpected redirect %d %q", rr.Code, rr.Header().Get("Location"))
	}
	req := httptest.NewRequest(http.MethodGet, "/user/list", nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	f, ok := ReadFlash(req)
	if !ok || !f.IsError() || f.Message != "Person bob has been deleted" {
		t.Fatalf("ReadFlash = %+v, %v", f, ok)
	}
}

func TestErrorPage(t *testing.T) {
	ResetForTests()
	rr := httptest.NewRecorder()
	Error(rr, httptest.NewRequest(http.MethodGet, "/x", nil), httpx.NotFound("Page not found", nil))
	if rr.Code != http.StatusNotFound || !strings.Contains(rr.Body.String(), "Page not found") {
		t.Fatalf("unexpected error page %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Accept", "application/json")
	Error(rr, req, errors.New("secret detail"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var body httpx.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Internal Server Error" {
		t.Fatalf("unexpected message %q", body.Error)
	}
}
