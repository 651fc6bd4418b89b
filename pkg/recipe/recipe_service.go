package recipe

import (
	"context"
	"time"

	"github.com/google/uuid"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/utils/pagination"
	"secret-recipe-backend/internal/utils/rules"
	"secret-recipe-backend/pkg/category"
	"secret-recipe-backend/pkg/integrity"
	"secret-recipe-backend/pkg/tag"
)

const MaxTagsPerRecipe = 3

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, userID uuid.UUID, req domain.CreateRecipeRequest) (*entities.Recipe, error)
		GetPublicRecipes(ctx context.Context, q domain.RecipeListQuery) (pagination.Page[entities.Recipe], error)
		GetMemberPublicRecipes(ctx context.Context, memberID string, q domain.RecipeListQuery) (pagination.Page[entities.Recipe], error)
		GetMyRecipes(ctx context.Context, userID uuid.UUID, q domain.RecipeListQuery) (pagination.Page[entities.Recipe], error)
		GetPublicRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error)
		UpdateOwnRecipe(ctx context.Context, userID uuid.UUID, recipeID string, req domain.UpdateRecipeRequest) (*entities.Recipe, error)
		DeleteOwnRecipe(ctx context.Context, userID uuid.UUID, recipeID string) (*entities.Recipe, error)

		Collect(ctx context.Context, userID uuid.UUID, recipeID string) (*domain.CollectResponse, error)
		Uncollect(ctx context.Context, userID uuid.UUID, recipeID string) (*domain.CollectResponse, error)

		GetRecipesAdmin(ctx context.Context, q domain.RecipeListQuery) (pagination.Page[entities.Recipe], error)
		GetAllRecipesAdmin(ctx context.Context, q domain.RecipeListQuery) ([]entities.Recipe, error)
		GetRecipeAdmin(ctx context.Context, recipeID string) (*entities.Recipe, error)
		UpdateRecipeAdmin(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest) (*entities.Recipe, error)
		DeleteRecipeAdmin(ctx context.Context, recipeID string) (*entities.Recipe, error)
		GetMemberRecipesAdmin(ctx context.Context, memberID string, q domain.RecipeListQuery) (pagination.Page[entities.Recipe], error)
		DeleteMemberRecipesAdmin(ctx context.Context, memberID string) error
		DeleteAllRecipesAdmin(ctx context.Context) error
	}

	recipeService struct {
		recipeRepository   RecipeRepository
		categoryRepository category.CategoryRepository
		tagRepository      tag.TagRepository
		integrityService   integrity.IntegrityService
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	categoryRepository category.CategoryRepository,
	tagRepository tag.TagRepository,
	integrityService integrity.IntegrityService,
) RecipeService {
	return &recipeService{
		recipeRepository:   recipeRepository,
		categoryRepository: categoryRepository,
		tagRepository:      tagRepository,
		integrityService:   integrityService,
	}
}

// BuildFilter turns the listing query into a repository filter. A malformed
// category or tag id yields an empty-set filter rather than an error, so bad
// filter values read as "no match" instead of 400.
func BuildFilter(q domain.RecipeListQuery) (Filter, bool) {
	filter := Filter{Keyword: q.Keyword}

	if q.Category != "" {
		id, err := uuid.Parse(q.Category)
		if err != nil {
			return filter, false
		}
		filter.CategoryID = &id
	}
	for _, raw := range q.Tags {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, false
		}
		filter.Tags = append(filter.Tags, id)
	}
	return filter, true
}

func listParams(q domain.RecipeListQuery) pagination.Params {
	return pagination.Params{Page: q.Page, PerPage: q.PerPage}
}

// emptyPage is what a listing returns when its filter can never match.
func emptyPage() pagination.Page[entities.Recipe] {
	return pagination.Page[entities.Recipe]{
		Results: []entities.Recipe{},
		Pagination: pagination.Meta{
			TotalPage:   0,
			CurrentPage: 1,
		},
	}
}

// checkTags validates and resolves the tag id list in one pass: at most
// three, no duplicates, every id well formed and existing.
func (s *recipeService) checkTags(ctx context.Context, raw []string) ([]uuid.UUID, bool) {
	if len(raw) > MaxTagsPerRecipe {
		return nil, false
	}
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, t := range raw {
		if !rules.ValidUUID(t) {
			return nil, false
		}
		id := uuid.MustParse(t)
		if _, dup := seen[id]; dup {
			return nil, false
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		count, err := s.tagRepository.CountTags(ctx, ids)
		if err != nil || count != int64(len(ids)) {
			return nil, false
		}
	}
	return ids, true
}

func (s *recipeService) checkCategory(ctx context.Context, raw string) (uuid.UUID, bool) {
	if !rules.ValidUUID(raw) {
		return uuid.Nil, false
	}
	id := uuid.MustParse(raw)
	exists, err := s.categoryRepository.CategoryExists(ctx, id)
	if err != nil || !exists {
		return uuid.Nil, false
	}
	return id, true
}

func (s *recipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req domain.CreateRecipeRequest) (*entities.Recipe, error) {
	categoryID, categoryOK := s.checkCategory(ctx, req.Category)
	tagIDs, tagsOK := s.checkTags(ctx, req.Tags)

	if err := rules.Check([]rules.Rule{
		{Failed: !rules.ValidString(req.Title, 1, 20), Message: domain.MessageInvalidTitle},
		{Failed: !rules.ValidURL(req.CoverImgURL), Message: domain.MessageInvalidCover},
		{Failed: req.IsPublic == nil, Message: domain.MessageInvalidIsPublic},
		{Failed: !categoryOK, Message: domain.MessageInvalidCategoryRef},
		{Failed: !tagsOK, Message: domain.MessageInvalidTags},
		{Failed: !rules.ValidCookingTime(req.CookingTime), Message: domain.MessageInvalidCookingTime},
		{Failed: !rules.ValidString(req.Description, 1, 300), Message: domain.MessageInvalidDescription},
		{Failed: req.Servings == nil || !rules.ValidNumber(*req.Servings, 1, 10), Message: domain.MessageInvalidServings},
		{Failed: !rules.ValidIngredients(req.Ingredients), Message: domain.MessageInvalidIngredients},
		{Failed: !rules.ValidNutritionFacts(req.NutritionFacts), Message: domain.MessageInvalidNutrition},
		{Failed: !rules.ValidSteps(req.Steps), Message: domain.MessageInvalidSteps},
		{Failed: req.Note != nil && !rules.ValidString(*req.Note, 0, 300), Message: domain.MessageInvalidNote},
	}); err != nil {
		return nil, err
	}

	recipe := &entities.Recipe{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          req.Title,
		CoverImgURL:    req.CoverImgURL,
		IsPublic:       *req.IsPublic,
		CategoryID:     categoryID,
		CookingTime:    req.CookingTime,
		Description:    req.Description,
		Servings:       *req.Servings,
		Ingredients:    req.Ingredients,
		NutritionFacts: *req.NutritionFacts,
		Steps:          req.Steps,
		Tags:           tagIDs,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if req.Note != nil {
		recipe.Note = *req.Note
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, tagIDs); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) GetPublicRecipes(ctx context.Context, q domain.RecipeListQuery) (pagination.Page[entities.Recipe], error) {
	filter, ok := BuildFilter(q)
	if !ok {
		return emptyPage(), nil
	}
	filter.OnlyPublic = true
	return s.recipeRepository.GetRecipes(ctx, filter, pagination.ResolveSort(q.Sort), listParams(q))
}

func (s *recipeService) GetMemberPublicRecipes(ctx context.Context, memberID string, q domain.RecipeListQuery) (pagination.Page[entities.Recipe], error) {
	if !rules.ValidUUID(memberID) {
		return pagination.Page[entities.Recipe]{}, &rules.ValidationError{Message: domain.MessageInvalidMemberID}
	}
	id := uuid.MustParse(memberID)

	filter, ok := BuildFilter(q)
	if !ok {
		return emptyPage(), nil
	}
	filter.OnlyPublic = true
	filter.UserID = &id
	return s.recipeRepository.GetRecipes(ctx, filter, pagination.ResolveSort(q.Sort), listParams(q))
}

func (s *recipeService) GetMyRecipes(ctx context.Context, userID uuid.UUID, q domain.RecipeListQuery) (pagination.Page[entities.Recipe], error) {
	filter, ok := BuildFilter(q)
	if !ok {
		return emptyPage(), nil
	}
	filter.UserID = &userID
	return s.recipeRepository.GetRecipes(ctx, filter, pagination.ResolveSort(q.Sort), listParams(q))
}

// resolveRecipeID only checks the id format; existence is the caller's
// concern since visibility differs per caller.
func resolveRecipeID(recipeID string) (uuid.UUID, error) {
	if !rules.ValidUUID(recipeID) {
		return uuid.Nil, &rules.ValidationError{Message: domain.MessageInvalidRecipeID}
	}
	return uuid.MustParse(recipeID), nil
}

func (s *recipeService) GetPublicRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	id, err := resolveRecipeID(recipeID)
	if err != nil {
		return nil, err
	}
	recipe, err := s.recipeRepository.GetPublicRecipeByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageRecipeNotFound}
		}
		return nil, err
	}
	return recipe, nil
}

// updateFields builds the partial update from the present fields only, each
// validated in request-body order.
func (s *recipeService) updateFields(ctx context.Context, req domain.UpdateRecipeRequest) (map[string]any, []uuid.UUID, error) {
	fields := map[string]any{}
	checks := []rules.Rule{}

	if req.Title != "" {
		checks = append(checks, rules.Rule{Failed: !rules.ValidString(req.Title, 1, 20), Message: domain.MessageInvalidTitle})
		fields["title"] = req.Title
	}
	if req.CoverImgURL != "" {
		checks = append(checks, rules.Rule{Failed: !rules.ValidURL(req.CoverImgURL), Message: domain.MessageInvalidCover})
		fields["cover_img_url"] = req.CoverImgURL
	}
	if req.IsPublic != nil {
		fields["is_public"] = *req.IsPublic
	}
	if req.Category != "" {
		categoryID, ok := s.checkCategory(ctx, req.Category)
		checks = append(checks, rules.Rule{Failed: !ok, Message: domain.MessageInvalidCategoryRef})
		fields["category_id"] = categoryID
	}

	var tagIDs []uuid.UUID
	if req.Tags != nil {
		ids, ok := s.checkTags(ctx, req.Tags)
		checks = append(checks, rules.Rule{Failed: !ok, Message: domain.MessageInvalidTags})
		tagIDs = ids
		if tagIDs == nil {
			tagIDs = []uuid.UUID{}
		}
	}

	if req.CookingTime != "" {
		checks = append(checks, rules.Rule{Failed: !rules.ValidCookingTime(req.CookingTime), Message: domain.MessageInvalidCookingTime})
		fields["cooking_time"] = req.CookingTime
	}
	if req.Description != "" {
		checks = append(checks, rules.Rule{Failed: !rules.ValidString(req.Description, 1, 300), Message: domain.MessageInvalidDescription})
		fields["description"] = req.Description
	}
	if req.Servings != nil {
		checks = append(checks, rules.Rule{Failed: !rules.ValidNumber(*req.Servings, 1, 10), Message: domain.MessageInvalidServings})
		fields["servings"] = *req.Servings
	}
	if req.Ingredients != nil {
		checks = append(checks, rules.Rule{Failed: !rules.ValidIngredients(req.Ingredients), Message: domain.MessageInvalidIngredients})
		fields["ingredients"] = req.Ingredients
	}
	if req.NutritionFacts != nil {
		checks = append(checks, rules.Rule{Failed: !rules.ValidNutritionFacts(req.NutritionFacts), Message: domain.MessageInvalidNutrition})
		fields["nutrition_facts"] = *req.NutritionFacts
	}
	if req.Steps != nil {
		checks = append(checks, rules.Rule{Failed: !rules.ValidSteps(req.Steps), Message: domain.MessageInvalidSteps})
		fields["steps"] = req.Steps
	}
	if req.Note != nil {
		checks = append(checks, rules.Rule{Failed: !rules.ValidString(*req.Note, 0, 300), Message: domain.MessageInvalidNote})
		fields["note"] = *req.Note
	}

	if err := rules.Check(checks); err != nil {
		return nil, nil, err
	}
	fields["updated_at"] = time.Now()
	return fields, tagIDs, nil
}

func (s *recipeService) UpdateOwnRecipe(ctx context.Context, userID uuid.UUID, recipeID string, req domain.UpdateRecipeRequest) (*entities.Recipe, error) {
	id, err := resolveRecipeID(recipeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.recipeRepository.GetOwnRecipeByID(ctx, id, userID); err != nil {
		if isNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageRecipeNotAccessible}
		}
		return nil, err
	}

	fields, tagIDs, err := s.updateFields(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.Tags == nil {
		return s.recipeRepository.UpdateRecipe(ctx, id, fields, nil)
	}
	return s.recipeRepository.UpdateRecipe(ctx, id, fields, tagIDs)
}

func (s *recipeService) DeleteOwnRecipe(ctx context.Context, userID uuid.UUID, recipeID string) (*entities.Recipe, error) {
	id, err := resolveRecipeID(recipeID)
	if err != nil {
		return nil, err
	}
	recipe, err := s.recipeRepository.GetOwnRecipeByID(ctx, id, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageRecipeNotAccessible}
		}
		return nil, err
	}
	if err := s.integrityService.DeleteRecipe(ctx, id); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Collect inserts the join row first; only the insert that actually created
// the row moves the counter, so repeats cannot inflate it.
func (s *recipeService) Collect(ctx context.Context, userID uuid.UUID, recipeID string) (*domain.CollectResponse, error) {
	id, err := resolveRecipeID(recipeID)
	if err != nil {
		return nil, err
	}
	exists, err := s.recipeRepository.RecipeExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &rules.ValidationError{Message: domain.MessageCollectFailed}
	}

	added, err := s.recipeRepository.AddCollect(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if added {
		if err := s.recipeRepository.IncrementCollectsCount(ctx, id); err != nil {
			return nil, err
		}
	}
	return &domain.CollectResponse{RecipeID: id.String(), UserID: userID.String()}, nil
}

func (s *recipeService) Uncollect(ctx context.Context, userID uuid.UUID, recipeID string) (*domain.CollectResponse, error) {
	id, err := resolveRecipeID(recipeID)
	if err != nil {
		return nil, err
	}
	exists, err := s.recipeRepository.RecipeExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &rules.ValidationError{Message: domain.MessageUncollectFailed}
	}

	removed, err := s.recipeRepository.RemoveCollect(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if removed {
		if err := s.recipeRepository.DecrementCollectsCount(ctx, id); err != nil {
			return nil, err
		}
	}
	return &domain.CollectResponse{RecipeID: id.String(), UserID: userID.String()}, nil
}

func (s *recipeService) GetRecipesAdmin(ctx context.Context, q domain.RecipeListQuery) (pagination.Page[entities.Recipe], error) {
	filter, ok := BuildFilter(q)
	if !ok {
		return emptyPage(), nil
	}
	return s.recipeRepository.GetRecipes(ctx, filter, pagination.ResolveSort(q.Sort), listParams(q))
}

func (s *recipeService) GetAllRecipesAdmin(ctx context.Context, q domain.RecipeListQuery) ([]entities.Recipe, error) {
	filter, ok := BuildFilter(q)
	if !ok {
		return []entities.Recipe{}, nil
	}
	return s.recipeRepository.GetAllRecipes(ctx, filter, pagination.ResolveSort(q.Sort))
}

func (s *recipeService) GetRecipeAdmin(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	id, err := resolveRecipeID(recipeID)
	if err != nil {
		return nil, err
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageRecipeNotFound}
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) UpdateRecipeAdmin(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest) (*entities.Recipe, error) {
	id, err := resolveRecipeID(recipeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.recipeRepository.GetRecipeByID(ctx, id); err != nil {
		if isNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageRecipeNotFound}
		}
		return nil, err
	}

	fields, tagIDs, err := s.updateFields(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.Tags == nil {
		return s.recipeRepository.UpdateRecipe(ctx, id, fields, nil)
	}
	return s.recipeRepository.UpdateRecipe(ctx, id, fields, tagIDs)
}

func (s *recipeService) DeleteRecipeAdmin(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	id, err := resolveRecipeID(recipeID)
	if err != nil {
		return nil, err
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageDeleteRecipeFailed}
		}
		return nil, err
	}
	if err := s.integrityService.DeleteRecipe(ctx, id); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) GetMemberRecipesAdmin(ctx context.Context, memberID string, q domain.RecipeListQuery) (pagination.Page[entities.Recipe], error) {
	if !rules.ValidUUID(memberID) {
		return pagination.Page[entities.Recipe]{}, &rules.ValidationError{Message: domain.MessageInvalidMemberID}
	}
	id := uuid.MustParse(memberID)

	filter, ok := BuildFilter(q)
	if !ok {
		return emptyPage(), nil
	}
	filter.UserID = &id
	return s.recipeRepository.GetRecipes(ctx, filter, pagination.ResolveSort(q.Sort), listParams(q))
}

func (s *recipeService) DeleteMemberRecipesAdmin(ctx context.Context, memberID string) error {
	if !rules.ValidUUID(memberID) {
		return &rules.ValidationError{Message: domain.MessageInvalidMemberID}
	}
	return s.integrityService.DeleteMemberRecipes(ctx, uuid.MustParse(memberID))
}

func (s *recipeService) DeleteAllRecipesAdmin(ctx context.Context) error {
	return s.integrityService.DeleteAllRecipes(ctx)
}
