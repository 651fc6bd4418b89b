package category

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/utils/pagination"
)

type (
	CategoryRepository interface {
		CreateCategory(ctx context.Context, category *entities.Category) error
		GetCategoryByID(ctx context.Context, id uuid.UUID) (*entities.Category, error)
		CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
		UpdateCategory(ctx context.Context, id uuid.UUID, fields map[string]any) (*entities.Category, error)
		GetCategories(ctx context.Context, order string, params pagination.Params) (pagination.Page[entities.Category], error)
		GetAllCategories(ctx context.Context, order string) ([]entities.Category, error)
		DeleteCategory(ctx context.Context, id uuid.UUID) error
		DeleteAllCategories(ctx context.Context) error
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Category{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, id uuid.UUID, fields map[string]any) (*entities.Category, error) {
	if err := r.db.WithContext(ctx).
		Model(&entities.Category{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetCategoryByID(ctx, id)
}

func (r *categoryRepository) GetCategories(ctx context.Context, order string, params pagination.Params) (pagination.Page[entities.Category], error) {
	query := r.db.WithContext(ctx).Model(&entities.Category{})
	return pagination.Paginate[entities.Category](query, order, params)
}

func (r *categoryRepository) GetAllCategories(ctx context.Context, order string) ([]entities.Category, error) {
	query := r.db.WithContext(ctx).Model(&entities.Category{})
	return pagination.All[entities.Category](query, order)
}

// DeleteCategory does not touch recipes: a deleted category may leave recipes
// with a dangling category id.
func (r *categoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Category{}).Error
}

func (r *categoryRepository) DeleteAllCategories(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.Category{}).Error
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
