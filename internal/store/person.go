package store

import (
	"context"
	"strings"

	"github.com/diewo77/go-records/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type PersonStore struct {
	db *gorm.DB
}

func NewPersonStore(db *gorm.DB) *PersonStore {
	return &PersonStore{db: db}
}

// List returns one page of people, with their category preloaded, whose full
// name, username or email contains search (case-insensitive).
func (s *PersonStore) List(ctx context.Context, search string, page int) (Page[models.Person], error) {
	ctx, span := startSpan(ctx, "Person.List", attribute.String("search", search), attribute.Int("page", page))
	q := s.db.WithContext(ctx).Model(&models.Person{})
	if search = strings.TrimSpace(search); search != "" {
		like := likePattern(search)
		q = q.Where(
			`LOWER(full_name) LIKE ? ESCAPE '\' OR LOWER(username) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`,
			like, like, like,
		)
	}
	p, err := paginate[models.Person](q, page, "Category")
	return p, finish(span, err)
}

// Get loads a person with its category.
func (s *PersonStore) Get(ctx context.Context, id uint) (*models.Person, error) {
	ctx, span := startSpan(ctx, "Person.Get", attribute.Int("id", int(id)))
	var p models.Person
	if err := s.db.WithContext(ctx).Preload("Category").First(&p, id).Error; err != nil {
		return nil, finish(span, err)
	}
	return &p, finish(span, nil)
}

func (s *PersonStore) GetByUsername(ctx context.Context, username string) (*models.Person, error) {
	ctx, span := startSpan(ctx, "Person.GetByUsername")
	var p models.Person
	if err := s.db.WithContext(ctx).Preload("Category").Where("username = ?", username).First(&p).Error; err != nil {
		return nil, finish(span, err)
	}
	return &p, finish(span, nil)
}

// UsernameTaken reports whether another person (id != excludeID) uses username.
// Pass 0 to check against everyone.
func (s *PersonStore) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	ctx, span := startSpan(ctx, "Person.UsernameTaken")
	var n int64
	q := s.db.WithContext(ctx).Model(&models.Person{}).Where("username = ?", username)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&n).Error
	return n > 0, finish(span, err)
}

// Create inserts p. Password must already be hashed.
func (s *PersonStore) Create(ctx context.Context, p *models.Person) error {
	ctx, span := startSpan(ctx, "Person.Create")
	return finish(span, s.db.WithContext(ctx).Omit("Category").Create(p).Error)
}

// editableColumns are the person columns written by Update.
var editableColumns = []string{
	"full_name", "category_id", "birth_date", "address",
	"contact_number", "email", "username", "password", "updated_at",
}

// Update overwrites the editable columns of p. Password must already be
// hashed. A person deleted since it was loaded yields ErrNotFound.
func (s *PersonStore) Update(ctx context.Context, p *models.Person) error {
	ctx, span := startSpan(ctx, "Person.Update", attribute.Int("id", int(p.ID)))
	res := s.db.WithContext(ctx).Model(p).Select(editableColumns).Updates(p)
	if res.Error == nil && res.RowsAffected == 0 {
		return finish(span, gorm.ErrRecordNotFound)
	}
	return finish(span, res.Error)
}

// SetPassword stores a new password hash for the person.
func (s *PersonStore) SetPassword(ctx context.Context, id uint, hash string) error {
	ctx, span := startSpan(ctx, "Person.SetPassword", attribute.Int("id", int(id)))
	res := s.db.WithContext(ctx).Model(&models.Person{ID: id}).Update("password", hash)
	if res.Error == nil && res.RowsAffected == 0 {
		return finish(span, gorm.ErrRecordNotFound)
	}
	return finish(span, res.Error)
}

func (s *PersonStore) Delete(ctx context.Context, id uint) error {
	ctx, span := startSpan(ctx, "Person.Delete", attribute.Int("id", int(id)))
	res := s.db.WithContext(ctx).Delete(&models.Person{}, id)
	if res.Error == nil && res.RowsAffected == 0 {
		return finish(span, gorm.ErrRecordNotFound)
	}
	return finish(span, res.Error)
}
