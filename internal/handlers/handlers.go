// Package handlers implements the HTML endpoints for categories, people and
// authentication.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/diewo77/go-records/httpx"
	"github.com/diewo77/go-records/i18n"
	"github.com/diewo77/go-records/internal/store"
	"github.com/diewo77/go-records/view"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// pathID parses the {id} path value. Anything but a positive integer is a 404.
func pathID(r *http.Request) (uint, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, httpx.NotFound("Page not found", err)
	}
	return uint(id), nil
}

// fail renders the error page for err, logging unexpected failures.
func fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if httpx.StatusOf(err) >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
	}
	view.Error(w, r, err)
}

// internal wraps err unless it is already typed.
func internal(err error) error {
	var he *httpx.Error
	if errors.As(err, &he) {
		return err
	}
	return httpx.Internal(err)
}

func render(w http.ResponseWriter, r *http.Request, log *slog.Logger, name string, data map[string]any) {
	if err := view.Render(w, r, name, data); err != nil {
		fail(w, r, log, httpx.Internal(err))
	}
}

// tr translates code in the request language.
func tr(r *http.Request, code string) string {
	return i18n.T(i18n.LangFromContext(r.Context()), code)
}

// listParams reads the search term and requested page of a list view.
func listParams(r *http.Request) (string, int) {
	q := r.URL.Query()
	return strings.TrimSpace(q.Get("search")), store.ParsePage(q.Get("page"))
}
