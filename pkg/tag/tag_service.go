package tag

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
	TagService interface {
		CreateTag(ctx context.Context, req domain.CreateTagRequest) (*entities.Tag, error)
		GetTag(ctx context.Context, tagID string) (*entities.Tag, error)
		UpdateTag(ctx context.Context, tagID string, req domain.UpdateTagRequest) (*entities.Tag, error)
		GetTags(ctx context.Context, sort string, params pagination.Params) (pagination.Page[entities.Tag], error)
		GetAllTags(ctx context.Context, sort string) ([]entities.Tag, error)
		DeleteTag(ctx context.Context, tagID string) (*entities.Tag, error)
		DeleteAllTags(ctx context.Context) error
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func (s *tagService) resolveTag(ctx context.Context, tagID string) (uuid.UUID, error) {
	if !rules.ValidUUID(tagID) {
		return uuid.Nil, &rules.ValidationError{Message: domain.MessageInvalidTagID}
	}
	id := uuid.MustParse(tagID)

	exists, err := s.tagRepository.TagExists(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if !exists {
		return uuid.Nil, &rules.ValidationError{Message: domain.MessageTagNotFound}
	}
	return id, nil
}

func (s *tagService) CreateTag(ctx context.Context, req domain.CreateTagRequest) (*entities.Tag, error) {
	if err := rules.Check([]rules.Rule{
		{Failed: !rules.ValidString(req.Title, 1, 10), Message: domain.MessageInvalidTagTitle},
	}); err != nil {
		return nil, err
	}

	tag := &entities.Tag{
		ID:    uuid.New(),
		Title: req.Title,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := s.tagRepository.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) GetTag(ctx context.Context, tagID string) (*entities.Tag, error) {
	id, err := s.resolveTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	return s.tagRepository.GetTagByID(ctx, id)
}

func (s *tagService) UpdateTag(ctx context.Context, tagID string, req domain.UpdateTagRequest) (*entities.Tag, error) {
	id, err := s.resolveTag(ctx, tagID)
	if err != nil {
		return nil, err
	}

	if err := rules.Check([]rules.Rule{
		{Failed: !rules.ValidString(req.Title, 1, 10), Message: domain.MessageInvalidTagTitle},
	}); err != nil {
		return nil, err
	}

	return s.tagRepository.UpdateTag(ctx, id, map[string]any{
		"title":      req.Title,
		"updated_at": time.Now(),
	})
}

func (s *tagService) GetTags(ctx context.Context, sort string, params pagination.Params) (pagination.Page[entities.Tag], error) {
	return s.tagRepository.GetTags(ctx, pagination.ResolveUpdatedSort(sort), params)
}

func (s *tagService) GetAllTags(ctx context.Context, sort string) ([]entities.Tag, error) {
	return s.tagRepository.GetAllTags(ctx, pagination.ResolveUpdatedSort(sort))
}

func (s *tagService) DeleteTag(ctx context.Context, tagID string) (*entities.Tag, error) {
	if !rules.ValidUUID(tagID) {
		return nil, &rules.ValidationError{Message: domain.MessageInvalidTagID}
	}

	tag, err := s.tagRepository.GetTagByID(ctx, uuid.MustParse(tagID))
	if err != nil {
		if isNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageDeleteTagFailed}
		}
		return nil, err
	}
	if err := s.tagRepository.DeleteTag(ctx, tag.ID); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) DeleteAllTags(ctx context.Context) error {
	return s.tagRepository.DeleteAllTags(ctx)
}
