package image

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/utils/pagination"
)

type (
	ImageRepository interface {
		CreateImage(ctx context.Context, image *entities.Image) error
		GetImageByID(ctx context.Context, id uuid.UUID) (*entities.Image, error)
		GetImages(ctx context.Context, order string, params pagination.Params) (pagination.Page[entities.Image], error)
		GetAllImages(ctx context.Context, order string) ([]entities.Image, error)
		GetImagesByUser(ctx context.Context, userID uuid.UUID) ([]entities.Image, error)
		DeleteImage(ctx context.Context, id uuid.UUID) error
		DeleteImagesByUser(ctx context.Context, userID uuid.UUID) error
		DeleteAllImages(ctx context.Context) error
	}

	imageRepository struct {
		db *gorm.DB
	}
)

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) CreateImage(ctx context.Context, image *entities.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) GetImageByID(ctx context.Context, id uuid.UUID) (*entities.Image, error) {
	var image entities.Image
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) GetImages(ctx context.Context, order string, params pagination.Params) (pagination.Page[entities.Image], error) {
	query := r.db.WithContext(ctx).Model(&entities.Image{})
	return pagination.Paginate[entities.Image](query, order, params)
}

func (r *imageRepository) GetAllImages(ctx context.Context, order string) ([]entities.Image, error) {
	query := r.db.WithContext(ctx).Model(&entities.Image{})
	return pagination.All[entities.Image](query, order)
}

func (r *imageRepository) GetImagesByUser(ctx context.Context, userID uuid.UUID) ([]entities.Image, error) {
	var images []entities.Image
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Image{}).Error
}

func (r *imageRepository) DeleteImagesByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entities.Image{}).Error
}

func (r *imageRepository) DeleteAllImages(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.Image{}).Error
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
