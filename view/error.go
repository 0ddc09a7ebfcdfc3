package view

import (
	"net/http"

	"github.com/diewo77/go-records/httpx"
)

// Error renders error.html with the status carried by err. JSON clients get
// an httpx.ErrorResponse. If the page cannot be rendered the message is
// written as plain text.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := httpx.StatusOf(err)
	msg := httpx.MessageOf(err)
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, status, msg, nil)
		return
	}
	data := map[string]any{
		"Title":      http.StatusText(status),
		"Status":     status,
		"StatusText": http.StatusText(status),
		"Message":    msg,
	}
	if rerr := RenderStatus(w, r, status, "error.html", data); rerr != nil {
		http.Error(w, "Error: "+msg, status)
	}
}
