package category

import (
	"context"
	"time"

	"github.com/google/uuid"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/utils/pagination"
	"secret-recipe-backend/internal/utils/rules"
)

type (
	CategoryService interface {
		CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*entities.Category, error)
		GetCategory(ctx context.Context, categoryID string) (*entities.Category, error)
		UpdateCategory(ctx context.Context, categoryID string, req domain.UpdateCategoryRequest) (*entities.Category, error)
		GetCategories(ctx context.Context, sort string, params pagination.Params) (pagination.Page[entities.Category], error)
		GetAllCategories(ctx context.Context, sort string) ([]entities.Category, error)
		DeleteCategory(ctx context.Context, categoryID string) (*entities.Category, error)
		DeleteAllCategories(ctx context.Context) error
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

// resolveCategory runs the shared id-format and existence rules.
func (s *categoryService) resolveCategory(ctx context.Context, categoryID string) (uuid.UUID, error) {
	if !rules.ValidUUID(categoryID) {
		return uuid.Nil, &rules.ValidationError{Message: domain.MessageInvalidCategoryID}
	}
	id := uuid.MustParse(categoryID)

	exists, err := s.categoryRepository.CategoryExists(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if !exists {
		return uuid.Nil, &rules.ValidationError{Message: domain.MessageCategoryNotFound}
	}
	return id, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*entities.Category, error) {
	if err := rules.Check([]rules.Rule{
		{Failed: !rules.ValidString(req.Title, 1, 10), Message: domain.MessageInvalidCategoryTitle},
	}); err != nil {
		return nil, err
	}

	category := &entities.Category{
		ID:             uuid.New(),
		Title:          req.Title,
		CategoryImgURL: req.CategoryImgURL,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := s.categoryRepository.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, categoryID string) (*entities.Category, error) {
	id, err := s.resolveCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.categoryRepository.GetCategoryByID(ctx, id)
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req domain.UpdateCategoryRequest) (*entities.Category, error) {
	id, err := s.resolveCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if err := rules.Check([]rules.Rule{
		{Failed: !rules.ValidString(req.Title, 1, 10), Message: domain.MessageInvalidCategoryTitle},
	}); err != nil {
		return nil, err
	}

	fields := map[string]any{"title": req.Title, "updated_at": time.Now()}
	if req.CategoryImgURL != nil {
		fields["category_img_url"] = *req.CategoryImgURL
	}
	return s.categoryRepository.UpdateCategory(ctx, id, fields)
}

func (s *categoryService) GetCategories(ctx context.Context, sort string, params pagination.Params) (pagination.Page[entities.Category], error) {
	return s.categoryRepository.GetCategories(ctx, pagination.ResolveUpdatedSort(sort), params)
}

func (s *categoryService) GetAllCategories(ctx context.Context, sort string) ([]entities.Category, error) {
	return s.categoryRepository.GetAllCategories(ctx, pagination.ResolveUpdatedSort(sort))
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) (*entities.Category, error) {
	if !rules.ValidUUID(categoryID) {
		return nil, &rules.ValidationError{Message: domain.MessageInvalidCategoryID}
	}

	category, err := s.categoryRepository.GetCategoryByID(ctx, uuid.MustParse(categoryID))
	if err != nil {
		if isNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageDeleteCategoryFailed}
		}
		return nil, err
	}
	if err := s.categoryRepository.DeleteCategory(ctx, category.ID); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteAllCategories(ctx context.Context) error {
	return s.categoryRepository.DeleteAllCategories(ctx)
}
