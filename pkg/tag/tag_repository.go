package tag

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/utils/pagination"
)

type (
	TagRepository interface {
		CreateTag(ctx context.Context, tag *entities.Tag) error
		GetTagByID(ctx context.Context, id uuid.UUID) (*entities.Tag, error)
		TagExists(ctx context.Context, id uuid.UUID) (bool, error)
		CountTags(ctx context.Context, ids []uuid.UUID) (int64, error)
		UpdateTag(ctx context.Context, id uuid.UUID, fields map[string]any) (*entities.Tag, error)
		GetTags(ctx context.Context, order string, params pagination.Params) (pagination.Page[entities.Tag], error)
		GetAllTags(ctx context.Context, order string) ([]entities.Tag, error)
		DeleteTag(ctx context.Context, id uuid.UUID) error
		DeleteAllTags(ctx context.Context) error
	}

	tagRepository struct {
		db *gorm.DB
	}
)

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) CreateTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) GetTagByID(ctx context.Context, id uuid.UUID) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) TagExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountTags reports how many of the given ids exist; callers compare against
// len(ids) to detect dangling references in one query.
func (r *tagRepository) CountTags(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *tagRepository) UpdateTag(ctx context.Context, id uuid.UUID, fields map[string]any) (*entities.Tag, error) {
	if err := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetTagByID(ctx, id)
}

func (r *tagRepository) GetTags(ctx context.Context, order string, params pagination.Params) (pagination.Page[entities.Tag], error) {
	query := r.db.WithContext(ctx).Model(&entities.Tag{})
	return pagination.Paginate[entities.Tag](query, order, params)
}

func (r *tagRepository) GetAllTags(ctx context.Context, order string) ([]entities.Tag, error) {
	query := r.db.WithContext(ctx).Model(&entities.Tag{})
	return pagination.All[entities.Tag](query, order)
}

// DeleteTag removes the tag only; recipe_tags rows pointing at it are left
// behind.
func (r *tagRepository) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Tag{}).Error
}

func (r *tagRepository) DeleteAllTags(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.Tag{}).Error
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
