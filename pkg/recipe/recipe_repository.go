package recipe

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/utils/pagination"
)

// Filter is the composed predicate of a recipe listing. Zero-valued fields
// are skipped.
type Filter struct {
	OnlyPublic  bool
	UserID      *uuid.UUID
	CategoryID  *uuid.UUID
	Keyword     string
	Tags        []uuid.UUID
	CollectedBy *uuid.UUID
}

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []uuid.UUID) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetPublicRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetOwnRecipeByID(ctx context.Context, id, userID uuid.UUID) (*entities.Recipe, error)
		RecipeExists(ctx context.Context, id uuid.UUID) (bool, error)
		UpdateRecipe(ctx context.Context, id uuid.UUID, fields map[string]any, tags []uuid.UUID) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter Filter, order string, params pagination.Params) (pagination.Page[entities.Recipe], error)
		GetAllRecipes(ctx context.Context, filter Filter, order string) ([]entities.Recipe, error)
		CountRecipesByUser(ctx context.Context, userID uuid.UUID) (int64, error)

		AddCollect(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		RemoveCollect(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		IncrementCollectsCount(ctx context.Context, recipeID uuid.UUID) error
		DecrementCollectsCount(ctx context.Context, recipeID uuid.UUID) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// escapeLike escapes the LIKE wildcards so a keyword is always a plain
// substring match, never a pattern.
func escapeLike(keyword string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(keyword)
}

func (r *recipeRepository) buildQuery(ctx context.Context, filter Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if filter.OnlyPublic {
		query = query.Where("is_public = ?", true)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Keyword != "" {
		query = query.Where("title LIKE ? ESCAPE '\\'", "%"+escapeLike(filter.Keyword)+"%")
	}
	if len(filter.Tags) > 0 {
		// every requested tag must be present, not just one
		query = query.Where(
			"id IN (?)",
			r.db.Model(&entities.RecipeTag{}).
				Select("recipe_id").
				Where("tag_id IN ?", filter.Tags).
				Group("recipe_id").
				Having("COUNT(DISTINCT tag_id) = ?", len(filter.Tags)),
		)
	}
	if filter.CollectedBy != nil {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&entities.Collect{}).
				Select("recipe_id").
				Where("user_id = ?", *filter.CollectedBy),
		)
	}

	return query
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []uuid.UUID) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return err
	}
	return r.replaceTags(ctx, recipe.ID, tags)
}

func (r *recipeRepository) replaceTags(ctx context.Context, recipeID uuid.UUID, tags []uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&entities.RecipeTag{}).Error; err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}

	rows := make([]entities.RecipeTag, 0, len(tags))
	for _, tagID := range tags {
		rows = append(rows, entities.RecipeTag{RecipeID: recipeID, TagID: tagID})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *recipeRepository) tagsOf(ctx context.Context, recipeID uuid.UUID) ([]uuid.UUID, error) {
	var tagIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&entities.RecipeTag{}).
		Where("recipe_id = ?", recipeID).
		Pluck("tag_id", &tagIDs).Error
	return tagIDs, err
}

// attachTags fills the Tags field on each fetched recipe with one query.
func (r *recipeRepository) attachTags(ctx context.Context, recipes []entities.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(recipes))
	for _, recipe := range recipes {
		ids = append(ids, recipe.ID)
	}

	var rows []entities.RecipeTag
	if err := r.db.WithContext(ctx).
		Where("recipe_id IN ?", ids).
		Find(&rows).Error; err != nil {
		return err
	}

	byRecipe := make(map[uuid.UUID][]uuid.UUID, len(recipes))
	for _, row := range rows {
		byRecipe[row.RecipeID] = append(byRecipe[row.RecipeID], row.TagID)
	}
	for i := range recipes {
		recipes[i].Tags = byRecipe[recipes[i].ID]
		if recipes[i].Tags == nil {
			recipes[i].Tags = []uuid.UUID{}
		}
	}
	return nil
}

func (r *recipeRepository) getOne(ctx context.Context, conds ...any) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, conds...).Error; err != nil {
		return nil, err
	}
	tags, err := r.tagsOf(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []uuid.UUID{}
	}
	recipe.Tags = tags
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *recipeRepository) GetPublicRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	return r.getOne(ctx, "id = ? AND is_public = ?", id, true)
}

func (r *recipeRepository) GetOwnRecipeByID(ctx context.Context, id, userID uuid.UUID) (*entities.Recipe, error) {
	return r.getOne(ctx, "id = ? AND user_id = ?", id, userID)
}

func (r *recipeRepository) RecipeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, id uuid.UUID, fields map[string]any, tags []uuid.UUID) (*entities.Recipe, error) {
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&entities.Recipe{}).
			Where("id = ?", id).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	if tags != nil {
		if err := r.replaceTags(ctx, id, tags); err != nil {
			return nil, err
		}
	}
	return r.GetRecipeByID(ctx, id)
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter Filter, order string, params pagination.Params) (pagination.Page[entities.Recipe], error) {
	page, err := pagination.Paginate[entities.Recipe](r.buildQuery(ctx, filter), order, params)
	if err != nil {
		return pagination.Page[entities.Recipe]{}, err
	}
	if err := r.attachTags(ctx, page.Results); err != nil {
		return pagination.Page[entities.Recipe]{}, err
	}
	return page, nil
}

func (r *recipeRepository) GetAllRecipes(ctx context.Context, filter Filter, order string) ([]entities.Recipe, error) {
	recipes, err := pagination.All[entities.Recipe](r.buildQuery(ctx, filter), order)
	if err != nil {
		return nil, err
	}
	if err := r.attachTags(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountRecipesByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AddCollect inserts into the user's collects set and reports whether the
// membership actually changed. The conflict clause makes a duplicate add a
// no-op instead of an error.
func (r *recipeRepository) AddCollect(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	collect := entities.Collect{
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&collect)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *recipeRepository) RemoveCollect(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Collect{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// IncrementCollectsCount adjusts the denormalized counter in place; the store
// applies the increment atomically, there is no read-modify-write.
func (r *recipeRepository) IncrementCollectsCount(ctx context.Context, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", recipeID).
		UpdateColumn("collects_count", gorm.Expr("collects_count + ?", 1)).Error
}

// DecrementCollectsCount is guarded so the counter can never go negative.
func (r *recipeRepository) DecrementCollectsCount(ctx context.Context, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ? AND collects_count > 0", recipeID).
		UpdateColumn("collects_count", gorm.Expr("collects_count - ?", 1)).Error
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
