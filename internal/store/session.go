package store

import (
	"context"
	"errors"
	"time"

	"github.com/diewo77/go-records/auth"
	"github.com/diewo77/go-records/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionStore keeps login sessions in the sessions table. It implements auth.Store.
type SessionStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

var _ auth.Store = (*SessionStore)(nil)

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db, ttl: 14 * 24 * time.Hour, now: time.Now}
}

// WithTTL sets the lifetime of new sessions.
func (s *SessionStore) WithTTL(ttl time.Duration) *SessionStore {
	s.ttl = ttl
	return s
}

func (s *SessionStore) Create(ctx context.Context, accountID uint) (string, error) {
	ctx, span := startSpan(ctx, "Session.Create")
	sess := models.Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return "", finish(span, err)
	}
	return sess.ID, finish(span, nil)
}

func (s *SessionStore) Lookup(ctx context.Context, sessionID string) (uint, error) {
	ctx, span := startSpan(ctx, "Session.Lookup")
	var sess models.Session
	err := s.db.WithContext(ctx).Where("id = ?", sessionID).First(&sess).Error
	if err = finish(span, err); errors.Is(err, ErrNotFound) {
		return 0, auth.ErrNoSession
	} else if err != nil {
		return 0, err
	}
	if sess.Expired(s.now()) {
		return 0, auth.ErrNoSession
	}
	return sess.AccountID, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	ctx, span := startSpan(ctx, "Session.Delete")
	return finish(span, s.db.WithContext(ctx).Where("id = ?", sessionID).Delete(&models.Session{}).Error)
}

// PurgeExpired deletes expired sessions and returns how many were removed.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	ctx, span := startSpan(ctx, "Session.PurgeExpired")
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&models.Session{})
	return res.RowsAffected, finish(span, res.Error)
}
