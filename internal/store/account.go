package store

import (
	"context"
	"errors"
	"time"

	"github.com/diewo77/go-records/auth"
	"github.com/diewo77/go-records/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// AccountStore manages the session-binding identities.
type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// Ensure returns the account for username, creating it on first login,
// and stamps LastLoginAt.
func (s *AccountStore) Ensure(ctx context.Context, username string) (*models.Account, error) {
	ctx, span := startSpan(ctx, "Account.Ensure")
	var a models.Account
	err := s.db.WithContext(ctx).Where(models.Account{Username: username}).FirstOrCreate(&a).Error
	if err != nil {
		return nil, finish(span, err)
	}
	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&a).Update("last_login_at", now).Error; err != nil {
		return nil, finish(span, err)
	}
	a.LastLoginAt = &now
	return &a, finish(span, nil)
}

func (s *AccountStore) Get(ctx context.Context, id uint) (*models.Account, error) {
	ctx, span := startSpan(ctx, "Account.Get", attribute.Int("id", int(id)))
	var a models.Account
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, finish(span, err)
	}
	return &a, finish(span, nil)
}

// PrincipalResolver resolves a session's account to a principal, matching the
// Person by username. A missing person leaves Principal.Person nil.
func PrincipalResolver(accounts *AccountStore, people *PersonStore) auth.Resolver {
	return func(ctx context.Context, accountID uint) (*auth.Principal, error) {
		a, err := accounts.Get(ctx, accountID)
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrNoSession
		}
		if err != nil {
			return nil, err
		}
		p := &auth.Principal{AccountID: a.ID, Username: a.Username}
		person, err := people.GetByUsername(ctx, a.Username)
		switch {
		case err == nil:
			p.Person = person
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
		return p, nil
	}
}
