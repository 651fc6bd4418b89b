package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/utils/pagination"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByEmailAndRole(ctx context.Context, email, role string) (*entities.User, error)
		UserExists(ctx context.Context, id uuid.UUID) (bool, error)
		UpdateUser(ctx context.Context, id uuid.UUID, fields map[string]any) (*entities.User, error)
		UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
		CollectCount(ctx context.Context, userID uuid.UUID) (int64, error)
		GetMembers(ctx context.Context, order string, params pagination.Params) (pagination.Page[entities.User], error)
		GetAllMembers(ctx context.Context, order string) ([]entities.User, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmailAndRole(ctx context.Context, email, role string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND role = ?", email, role).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, id uuid.UUID, fields map[string]any) (*entities.User, error) {
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetUserByID(ctx, id)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Update("password", passwordHash).Error
}

func (r *userRepository) CollectCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Collect{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) GetMembers(ctx context.Context, order string, params pagination.Params) (pagination.Page[entities.User], error) {
	query := r.db.WithContext(ctx).Model(&entities.User{})
	return pagination.Paginate[entities.User](query, order, params)
}

func (r *userRepository) GetAllMembers(ctx context.Context, order string) ([]entities.User, error) {
	query := r.db.WithContext(ctx).Model(&entities.User{})
	return pagination.All[entities.User](query, order)
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
