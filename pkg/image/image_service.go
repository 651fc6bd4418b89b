package image

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/utils/pagination"
	"secret-recipe-backend/internal/utils/rules"
	"secret-recipe-backend/internal/utils/storage"
)

type (
	ImageService interface {
		UploadImage(ctx context.Context, userID uuid.UUID, imageType string, file *multipart.FileHeader) (*domain.UploadImageResponse, error)
		GetImage(ctx context.Context, imageID string) (*entities.Image, error)
		GetImages(ctx context.Context, sort string, params pagination.Params) (pagination.Page[entities.Image], error)
		GetAllImages(ctx context.Context, sort string) ([]entities.Image, error)
		DeleteImage(ctx context.Context, imageID string, requester uuid.UUID, isAdmin bool) (*entities.Image, error)
		DeleteMemberImages(ctx context.Context, memberID string) error
		DeleteAllImages(ctx context.Context) error
	}

	imageService struct {
		imageRepository ImageRepository
		awsS3           storage.AwsS3
	}
)

func NewImageService(imageRepository ImageRepository, awsS3 storage.AwsS3) ImageService {
	return &imageService{imageRepository: imageRepository, awsS3: awsS3}
}

func (s *imageService) UploadImage(ctx context.Context, userID uuid.UUID, imageType string, file *multipart.FileHeader) (*domain.UploadImageResponse, error) {
	if imageType == "" {
		imageType = entities.ImageTypePhoto
	}
	if err := rules.Check([]rules.Rule{
		{Failed: !rules.ValidImageType(imageType), Message: domain.MessageInvalidImageType},
		{Failed: file == nil, Message: domain.MessageNoImageUploaded},
	}); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	fileName := uuid.New().String() + ext
	folder := "images/" + userID.String()

	objectKey, err := s.awsS3.UploadFile(fileName, file, folder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return nil, &rules.ValidationError{Message: domain.MessageUploadFailed}
		}
		return nil, err
	}

	image := &entities.Image{
		ID:        uuid.New(),
		ImageURL:  s.awsS3.GetPublicLinkKey(objectKey),
		ImagePath: objectKey,
		Type:      imageType,
		UserID:    userID,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := s.imageRepository.CreateImage(ctx, image); err != nil {
		// keep the store consistent with the table
		if delErr := s.awsS3.DeleteFile(objectKey); delErr != nil {
			log.Errorf("failed to remove uploaded object %s: %v", objectKey, delErr)
		}
		return nil, err
	}

	return &domain.UploadImageResponse{
		ID:       image.ID.String(),
		Type:     image.Type,
		ImageURL: image.ImageURL,
	}, nil
}

func (s *imageService) resolveImage(ctx context.Context, imageID string) (*entities.Image, error) {
	if !rules.ValidUUID(imageID) {
		return nil, &rules.ValidationError{Message: domain.MessageInvalidImageID}
	}
	image, err := s.imageRepository.GetImageByID(ctx, uuid.MustParse(imageID))
	if err != nil {
		if isNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageImageNotFound}
		}
		return nil, err
	}
	return image, nil
}

func (s *imageService) GetImage(ctx context.Context, imageID string) (*entities.Image, error) {
	return s.resolveImage(ctx, imageID)
}

func (s *imageService) GetImages(ctx context.Context, sort string, params pagination.Params) (pagination.Page[entities.Image], error) {
	return s.imageRepository.GetImages(ctx, pagination.ResolveUpdatedSort(sort), params)
}

func (s *imageService) GetAllImages(ctx context.Context, sort string) ([]entities.Image, error) {
	return s.imageRepository.GetAllImages(ctx, pagination.ResolveUpdatedSort(sort))
}

// DeleteImage removes the stored object first, then the row. Members may only
// delete their own images; admins may delete any. A member asking for someone
// else's image gets the same answer as a missing one.
func (s *imageService) DeleteImage(ctx context.Context, imageID string, requester uuid.UUID, isAdmin bool) (*entities.Image, error) {
	if !rules.ValidUUID(imageID) {
		return nil, &rules.ValidationError{Message: domain.MessageInvalidImageID}
	}

	image, err := s.imageRepository.GetImageByID(ctx, uuid.MustParse(imageID))
	if err != nil {
		if isNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageDeleteImageFailed}
		}
		return nil, err
	}
	if !isAdmin && image.UserID != requester {
		return nil, &rules.ValidationError{Message: domain.MessageDeleteImageFailed}
	}

	if err := s.awsS3.DeleteFile(image.ImagePath); err != nil {
		log.Errorf("failed to delete object %s: %v", image.ImagePath, err)
	}
	if err := s.imageRepository.DeleteImage(ctx, image.ID); err != nil {
		return nil, err
	}
	return image, nil
}

// DeleteMemberImages removes every asset a member uploaded plus the rows. A
// failed object delete is logged and the loop continues so the rows still go.
func (s *imageService) DeleteMemberImages(ctx context.Context, memberID string) error {
	if !rules.ValidUUID(memberID) {
		return &rules.ValidationError{Message: domain.MessageInvalidMemberID}
	}
	id := uuid.MustParse(memberID)

	images, err := s.imageRepository.GetImagesByUser(ctx, id)
	if err != nil {
		return err
	}
	for _, img := range images {
		if err := s.awsS3.DeleteFile(img.ImagePath); err != nil {
			log.Errorf("failed to delete object %s: %v", img.ImagePath, err)
		}
	}
	return s.imageRepository.DeleteImagesByUser(ctx, id)
}

// DeleteAllImages clears the whole images/ prefix in one pass, then truncates
// the table.
func (s *imageService) DeleteAllImages(ctx context.Context) error {
	if err := s.awsS3.DeleteFolder("images/"); err != nil {
		log.Errorf("failed to clear image folder: %v", err)
	}
	return s.imageRepository.DeleteAllImages(ctx)
}
