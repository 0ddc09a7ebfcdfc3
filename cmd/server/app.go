package main

import (
	"log/slog"
	"net/http"

	"github.com/diewo77/go-records/auth"
	"github.com/diewo77/go-records/httpx"
	"github.com/diewo77/go-records/internal/handlers"
	"github.com/diewo77/go-records/internal/middleware"
	"github.com/diewo77/go-records/internal/store"
	"github.com/diewo77/go-records/view"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux      *http.ServeMux
	db       *gorm.DB
	log      *slog.Logger
	sessions *auth.Sessions
	handler  http.Handler

	authH     *handlers.AuthHandler
	categoryH *handlers.CategoryHandler
	personH   *handlers.PersonHandler
	passwordH *handlers.PasswordHandler
}

// NewApp wires stores, handlers and middleware over db. Sessions are kept in
// sessionStore; pass nil to keep them in the database.
func NewApp(db *gorm.DB, sessionStore auth.Store, sessionSecret string, log *slog.Logger) *App {
	st := store.New(db)
	if sessionStore == nil {
		sessionStore = st.Sessions
	}
	sessions := auth.NewSessions(sessionStore, sessionSecret, store.PrincipalResolver(st.Accounts, st.People))
	sessions.Log = log
	sessions.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		view.Error(w, r, httpx.Unavailable(err))
	}

	app := &App{
		mux:       http.NewServeMux(),
		db:        db,
		log:       log,
		sessions:  sessions,
		authH:     handlers.NewAuthHandler(st.People, st.Accounts, sessions, log),
		categoryH: handlers.NewCategoryHandler(st.Categories, log),
		personH:   handlers.NewPersonHandler(st.People, st.Categories, log),
		passwordH: handlers.NewPasswordHandler(st.People, log),
	}
	app.setupRoutes()

	var h http.Handler = app.mux
	h = sessions.Middleware(h)
	h = middleware.Prefs(h)
	h = middleware.Recover(log)(h)
	h = middleware.Logger(log)(h)
	h = chimw.RealIP(h)
	h = chimw.RequestID(h)
	app.handler = h
	return app
}

// Sessions exposes the session manager, e.g. to tune TTL or cookie flags.
func (a *App) Sessions() *auth.Sessions { return a.sessions }

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Public routes
	// ─────────────────────────────────────────────────────────────────────────
	ah := a.authH
	a.mux.HandleFunc("GET /{$}", ah.LoginForm)
	a.mux.HandleFunc("POST /{$}", ah.Login)
	a.mux.HandleFunc("GET /login/{$}", ah.LoginForm)
	a.mux.HandleFunc("POST /login/{$}", ah.Login)
	a.mux.HandleFunc("GET /logout/{$}", ah.Logout)
	a.mux.HandleFunc("POST /logout/{$}", ah.Logout)

	a.mux.HandleFunc("GET /healthz", a.healthz)
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// ─────────────────────────────────────────────────────────────────────────
	// Categories
	// ─────────────────────────────────────────────────────────────────────────
	ch := a.categoryH
	a.protect("GET /gender/list", ch.List)
	a.protect("GET /gender/add", ch.New)
	a.protect("POST /gender/add", ch.Create)
	a.protect("GET /gender/edit/{id}", ch.Edit)
	a.protect("POST /gender/edit/{id}", ch.Update)
	a.protect("GET /gender/delete/{id}", ch.ConfirmDelete)
	a.protect("POST /gender/delete/{id}", ch.Delete)

	// ─────────────────────────────────────────────────────────────────────────
	// People
	// ─────────────────────────────────────────────────────────────────────────
	ph := a.personH
	a.protect("GET /user/list", ph.List)
	a.protect("GET /user/add", ph.New)
	a.protect("POST /user/add", ph.Create)
	a.protect("GET /user/edit/{id}", ph.Edit)
	a.protect("POST /user/edit/{id}", ph.Update)
	a.protect("GET /user/delete/{id}", ph.ConfirmDelete)
	a.protect("POST /user/delete/{id}", ph.Delete)
	a.protect("GET /user/changepass/{id}", a.passwordH.Form)
	a.protect("POST /user/changepass/{id}", a.passwordH.ChangePassword)
}

// protect registers a handler that requires a logged-in session.
func (a *App) protect(pattern string, h http.HandlerFunc) {
	a.mux.Handle(pattern, auth.RequireAuth(h))
}

// healthz reports whether the database answers.
func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if err := a.db.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
		a.log.WarnContext(r.Context(), "healthz: database unavailable", "err", err)
		httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", map[string]string{"database": "unavailable"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
