package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/diewo77/go-records/auth"
	"github.com/diewo77/go-records/internal/store"
	"github.com/diewo77/go-records/view"
)

type PasswordHandler struct {
	people *store.PersonStore
	log    *slog.Logger
}

func NewPasswordHandler(people *store.PersonStore, log *slog.Logger) *PasswordHandler {
	return &PasswordHandler{people: people, log: log}
}

func (h *PasswordHandler) Form(w http.ResponseWriter, r *http.Request) {
	p, ok := loadPerson(w, r, h.people, h.log)
	if !ok {
		return
	}
	render(w, r, h.log, "user/changepass.html", map[string]any{
		"Title":  tr(r, "change_password"),
		"Person": p,
	})
}

// ChangePassword verifies the current password before storing the new one.
// Success returns to the person list.
func (h *PasswordHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := loadPerson(w, r, h.people, h.log)
	if !ok {
		return
	}
	back := fmt.Sprintf("/user/changepass/%d", p.ID)
	current := r.FormValue("current_password")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	switch {
	case !auth.CheckPassword(p.Password, current):
		view.Redirect(w, r, back, view.LevelError, "flash_password_current_bad")
		return
	case password == "" || confirm == "":
		view.Redirect(w, r, back, view.LevelError, "flash_password_both_needed")
		return
	case password != confirm:
		view.Redirect(w, r, back, view.LevelError, "flash_password_new_mismatch")
		return
	case len(password) > auth.MaxPasswordBytes:
		view.Redirect(w, r, back, view.LevelError, "flash_password_too_long")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	err = h.people.SetPassword(r.Context(), p.ID, hash)
	if errors.Is(err, store.ErrNotFound) {
		view.Redirect(w, r, personListPath, view.LevelError, "flash_person_not_found")
		return
	}
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	h.log.InfoContext(r.Context(), "password changed", "person_id", p.ID)
	view.Redirect(w, r, personListPath, view.LevelSuccess, "flash_password_saved")
}
