package store

import (
	"context"
	"strings"

	"github.com/diewo77/go-records/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns one page of categories whose name contains search (case-insensitive).
func (s *CategoryStore) List(ctx context.Context, search string, page int) (Page[models.Category], error) {
	ctx, span := startSpan(ctx, "Category.List", attribute.String("search", search), attribute.Int("page", page))
	q := s.db.WithContext(ctx).Model(&models.Category{})
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(search))
	}
	p, err := paginate[models.Category](q, page)
	return p, finish(span, err)
}

// All returns every category ordered by name, for select boxes.
func (s *CategoryStore) All(ctx context.Context) ([]models.Category, error) {
	ctx, span := startSpan(ctx, "Category.All")
	var out []models.Category
	err := s.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&out).Error
	return out, finish(span, err)
}

func (s *CategoryStore) Get(ctx context.Context, id uint) (*models.Category, error) {
	ctx, span := startSpan(ctx, "Category.Get", attribute.Int("id", int(id)))
	var c models.Category
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, finish(span, err)
	}
	return &c, finish(span, nil)
}

func (s *CategoryStore) Create(ctx context.Context, c *models.Category) error {
	ctx, span := startSpan(ctx, "Category.Create")
	return finish(span, s.db.WithContext(ctx).Create(c).Error)
}

// Update renames c. A category deleted since it was loaded yields ErrNotFound.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) error {
	ctx, span := startSpan(ctx, "Category.Update", attribute.Int("id", int(c.ID)))
	res := s.db.WithContext(ctx).Model(c).Select("name", "updated_at").Updates(c)
	if res.Error == nil && res.RowsAffected == 0 {
		return finish(span, gorm.ErrRecordNotFound)
	}
	return finish(span, res.Error)
}

// Delete removes the category; the foreign key cascades to its people.
func (s *CategoryStore) Delete(ctx context.Context, id uint) error {
	ctx, span := startSpan(ctx, "Category.Delete", attribute.Int("id", int(id)))
	res := s.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error == nil && res.RowsAffected == 0 {
		return finish(span, gorm.ErrRecordNotFound)
	}
	return finish(span, res.Error)
}

// CountPeople returns how many people reference the category.
func (s *CategoryStore) CountPeople(ctx context.Context, id uint) (int64, error) {
	ctx, span := startSpan(ctx, "Category.CountPeople", attribute.Int("id", int(id)))
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Person{}).Where("category_id = ?", id).Count(&n).Error
	return n, finish(span, err)
}
