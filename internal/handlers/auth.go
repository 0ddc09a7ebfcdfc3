package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/diewo77/go-records/auth"
	"github.com/diewo77/go-records/internal/store"
	"github.com/diewo77/go-records/view"
)

// LandingPath is where a successful login lands.
const LandingPath = "/gender/list"

type AuthHandler struct {
	people   *store.PersonStore
	accounts *store.AccountStore
	sessions *auth.Sessions
	log      *slog.Logger
}

func NewAuthHandler(people *store.PersonStore, accounts *store.AccountStore, sessions *auth.Sessions, log *slog.Logger) *AuthHandler {
	return &AuthHandler{people: people, accounts: accounts, sessions: sessions, log: log}
}

// LoginForm shows the login page, or sends authenticated users to the landing list.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.PrincipalFrom(r.Context()); ok {
		http.Redirect(w, r, LandingPath, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, "", "")
}

// Login checks the credentials against the people table and opens a session.
// Unknown users and wrong passwords get the same message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	invalid := tr(r, "flash_login_invalid")

	if username == "" || password == "" {
		h.renderLogin(w, r, username, invalid)
		return
	}
	person, err := h.people.GetByUsername(r.Context(), username)
	if errors.Is(err, store.ErrNotFound) {
		h.renderLogin(w, r, username, invalid)
		return
	}
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	if !auth.CheckPassword(person.Password, password) {
		h.log.InfoContext(r.Context(), "login rejected", "username", username)
		h.renderLogin(w, r, username, invalid)
		return
	}

	account, err := h.accounts.Ensure(r.Context(), person.Username)
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	// Drop any previous session before binding a new one.
	if sid, ok := auth.SessionIDFrom(r.Context()); ok {
		if err := h.sessions.Store.Delete(r.Context(), sid); err != nil {
			h.log.WarnContext(r.Context(), "login: delete previous session", "err", err)
		}
	}
	if err := h.sessions.Begin(r.Context(), w, account.ID); err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	h.log.InfoContext(r.Context(), "login", "username", username, "account_id", account.ID)
	view.Redirect(w, r, LandingPath, view.LevelSuccess, "flash_login_success")
}

// Logout destroys the server-side session and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(w, r); err != nil {
		h.log.WarnContext(r.Context(), "logout: delete session", "err", err)
	}
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, username, msg string) {
	render(w, r, h.log, "login.html", map[string]any{
		"Title":    tr(r, "login"),
		"Username": username,
		"Error":    msg,
	})
}
