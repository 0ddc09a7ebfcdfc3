package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/diewo77/go-records/internal/models"
)

type ctxKey string

const (
	sessionCookieName = "sessionid"
	principalCtxKey   = ctxKey("principal")
	sessionIDCtxKey   = ctxKey("sessionID")

	// LoginPath is where anonymous requests to protected routes are sent.
	LoginPath = "/login/"
)

// ErrNoSession is returned by stores when a session id is unknown or expired.
var ErrNoSession = errors.New("auth: no such session")

// Store persists server-side sessions.
type Store interface {
	Create(ctx context.Context, accountID uint) (string, error)
	Lookup(ctx context.Context, sessionID string) (uint, error)
	Delete(ctx context.Context, sessionID string) error
}

// Principal is the identity bound to the current request.
// Person is nil when no person carries the account's username.
type Principal struct {
	AccountID uint
	Username  string
	Person    *models.Person
}

// Resolver turns a session's account id into a Principal.
// It returns ErrNoSession when the account no longer exists.
type Resolver func(ctx context.Context, accountID uint) (*Principal, error)

// Sessions ties a Store to the session cookie.
type Sessions struct {
	Store    Store
	Secret   []byte
	TTL      time.Duration
	Secure   bool
	Resolver Resolver
	Log      *slog.Logger
	// OnError writes the response when the store or resolver fails for a
	// reason other than ErrNoSession. Defaults to a plain 503.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// NewSessions returns a Sessions with a 14 day lifetime.
func NewSessions(store Store, secret string, resolver Resolver) *Sessions {
	return &Sessions{
		Store:    store,
		Secret:   []byte(secret),
		TTL:      14 * 24 * time.Hour,
		Resolver: resolver,
		Log:      slog.Default(),
	}
}

func (s *Sessions) sign(sid string) string {
	mac := hmac.New(sha256.New, s.Secret)
	mac.Write([]byte(sid))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Begin creates a server-side session for accountID and sets the cookie.
func (s *Sessions) Begin(ctx context.Context, w http.ResponseWriter, accountID uint) error {
	sid, err := s.Store.Create(ctx, accountID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sid + "." + s.sign(sid),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.TTL),
	})
	return nil
}

// End destroys the session the request was authenticated with, if any, and
// clears the cookie.
func (s *Sessions) End(w http.ResponseWriter, r *http.Request) error {
	var err error
	if sid, ok := SessionIDFrom(r.Context()); ok {
		err = s.Store.Delete(r.Context(), sid)
	}
	ClearCookie(w)
	return err
}

// ClearCookie deletes the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseCookie validates the cookie signature and returns the session id.
func (s *Sessions) ParseCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	sid, sig, ok := strings.Cut(c.Value, ".")
	if !ok || sid == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(sid))) {
		return "", false
	}
	return sid, true
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// PrincipalFrom returns the request principal.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(*Principal)
	return p, ok && p != nil
}

// SessionIDFrom returns the id of the session the request was authenticated with.
func SessionIDFrom(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(sessionIDCtxKey).(string)
	return sid, ok && sid != ""
}

// Middleware attaches the principal and session id to the request context
// if the session is valid. Unknown or expired sessions have their cookie
// cleared and proceed anonymously. Any other lookup failure keeps the cookie
// and is answered by OnError.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, ok := s.ParseCookie(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		p, err := s.resolve(r.Context(), sid)
		if errors.Is(err, ErrNoSession) {
			ClearCookie(w)
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}
		ctx := WithPrincipal(r.Context(), p)
		ctx = context.WithValue(ctx, sessionIDCtxKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Sessions) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}
	log.ErrorContext(r.Context(), "session lookup failed", "path", r.URL.Path, "err", err)
	if s.OnError != nil {
		s.OnError(w, r, err)
		return
	}
	http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
}

func (s *Sessions) resolve(ctx context.Context, sid string) (*Principal, error) {
	accountID, err := s.Store.Lookup(ctx, sid)
	if err != nil {
		return nil, err
	}
	if s.Resolver == nil {
		return &Principal{AccountID: accountID}, nil
	}
	return s.Resolver(ctx, accountID)
}

// RequireAuth redirects to LoginPath if the request has no principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r.Context()); !ok {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
