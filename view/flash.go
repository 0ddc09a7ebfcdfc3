package view

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/diewo77/go-records/i18n"
)

const flashCookieName = "flash"

// Flash levels.
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// FlashMessage is a one-shot status message shown on the next page load.
type FlashMessage struct {
	Level   string
	Message string
}

// IsError reports whether the message is an error.
func (f FlashMessage) IsError() bool { return f.Level == LevelError }

// Flash stores a translated flash message (code looked up in the i18n catalogue).
func Flash(w http.ResponseWriter, r *http.Request, level, code string, args ...any) {
	msg := i18n.Tf(i18n.LangFromContext(r.Context()), code, args...)
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(level + "|" + msg),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Redirect sets a flash message and redirects with 303 See Other.
func Redirect(w http.ResponseWriter, r *http.Request, to, level, code string, args ...any) {
	Flash(w, r, level, code, args...)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// ReadFlash decodes the pending flash message without clearing it.
func ReadFlash(r *http.Request) (FlashMessage, bool) {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return FlashMessage{}, false
	}
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return FlashMessage{}, false
	}
	level, msg, ok := strings.Cut(raw, "|")
	if !ok {
		return FlashMessage{Level: LevelSuccess, Message: raw}, true
	}
	return FlashMessage{Level: level, Message: msg}, true
}

func popFlash(w http.ResponseWriter, r *http.Request) (FlashMessage, bool) {
	f, ok := ReadFlash(r)
	if !ok {
		return f, false
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Value: "", Path: "/", MaxAge: -1})
	return f, true
}
