package integrity

import (
	"context"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/utils/storage"
)

// IntegrityService runs the multi-step deletes that span tables and the
// asset store. Steps run in a fixed order and are individually idempotent;
// a failed step is logged and earlier steps stay applied.
type (
	IntegrityService interface {
		DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error
		DeleteMemberRecipes(ctx context.Context, userID uuid.UUID) error
		DeleteAllRecipes(ctx context.Context) error
		DeleteMember(ctx context.Context, userID uuid.UUID) error
		DeleteAllMembers(ctx context.Context) error
	}

	integrityService struct {
		db    *gorm.DB
		awsS3 storage.AwsS3
	}
)

func NewIntegrityService(db *gorm.DB, awsS3 storage.AwsS3) IntegrityService {
	return &integrityService{db: db, awsS3: awsS3}
}

// DeleteRecipe removes the collect and tag references before the recipe row
// itself, so a crash in between never leaves references to a missing recipe.
func (s *integrityService) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	if err := s.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&entities.Collect{}).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&entities.RecipeTag{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("id = ?", recipeID).
		Delete(&entities.Recipe{}).Error
}

// DeleteMemberRecipes captures the owned recipe ids up front, then clears
// every other member's collects of them along with the tag links.
func (s *integrityService) DeleteMemberRecipes(ctx context.Context, userID uuid.UUID) error {
	var recipeIDs []uuid.UUID
	if err := s.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("user_id = ?", userID).
		Pluck("id", &recipeIDs).Error; err != nil {
		return err
	}
	if len(recipeIDs) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Delete(&entities.Collect{}).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Delete(&entities.RecipeTag{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("id IN ?", recipeIDs).
		Delete(&entities.Recipe{}).Error
}

func (s *integrityService) DeleteAllRecipes(ctx context.Context) error {
	if err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.Collect{}).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.RecipeTag{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.Recipe{}).Error
}

// DeleteMember cascades through everything a member owns: recipes first, then
// the collects they placed on other recipes (with the counters walked back),
// then uploaded images, then the user row.
func (s *integrityService) DeleteMember(ctx context.Context, userID uuid.UUID) error {
	if err := s.DeleteMemberRecipes(ctx, userID); err != nil {
		return err
	}

	var collected []uuid.UUID
	if err := s.db.WithContext(ctx).
		Model(&entities.Collect{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &collected).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entities.Collect{}).Error; err != nil {
		return err
	}
	for _, recipeID := range collected {
		if err := s.db.WithContext(ctx).
			Model(&entities.Recipe{}).
			Where("id = ? AND collects_count > 0", recipeID).
			UpdateColumn("collects_count", gorm.Expr("collects_count - 1")).Error; err != nil {
			log.Errorf("failed to walk back collects_count for recipe %s: %v", recipeID, err)
		}
	}

	var images []entities.Image
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&images).Error; err != nil {
		return err
	}
	for _, img := range images {
		if err := s.awsS3.DeleteFile(img.ImagePath); err != nil {
			log.Errorf("failed to delete object %s: %v", img.ImagePath, err)
		}
	}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entities.Image{}).Error; err != nil {
		return err
	}

	return s.db.WithContext(ctx).
		Where("id = ?", userID).
		Delete(&entities.User{}).Error
}

// DeleteAllMembers truncates everything member-owned. Stored objects are left
// to the image endpoints; only the rows go here.
func (s *integrityService) DeleteAllMembers(ctx context.Context) error {
	if err := s.DeleteAllRecipes(ctx); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.Image{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.User{}).Error
}
