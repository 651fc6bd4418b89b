package recipe

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/utils/rules"
	"secret-recipe-backend/pkg/category"
	"secret-recipe-backend/pkg/integrity"
	"secret-recipe-backend/pkg/tag"
)

type fakeStore struct {
	deleted []string
}

func (f *fakeStore) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	return folder + "/" + fileName, nil
}

func (f *fakeStore) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeStore) DeleteFolder(prefix string) error { return nil }

func (f *fakeStore) GetObjectKeyFromLink(link string) string { return link }

func (f *fakeStore) GetPublicLinkKey(objectKey string) string {
	return "https://assets.test/" + objectKey
}

type fixture struct {
	db      *gorm.DB
	service RecipeService
	recipes RecipeRepository
	tags    tag.TagRepository
	cats    category.CategoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&entities.User{}, &entities.Category{}, &entities.Tag{},
		&entities.Recipe{}, &entities.Collect{}, &entities.RecipeTag{},
		&entities.Image{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	recipes := NewRecipeRepository(db)
	cats := category.NewCategoryRepository(db)
	tags := tag.NewTagRepository(db)
	saga := integrity.NewIntegrityService(db, &fakeStore{})
	return &fixture{
		db:      db,
		service: NewRecipeService(recipes, cats, tags, saga),
		recipes: recipes,
		tags:    tags,
		cats:    cats,
	}
}

func (f *fixture) addUser(t *testing.T, nick string) uuid.UUID {
	t.Helper()
	user := entities.User{ID: uuid.New(), NickName: nick, Email: nick + "@example.com"}
	if err := f.db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user.ID
}

func (f *fixture) addCategory(t *testing.T, title string) uuid.UUID {
	t.Helper()
	cat := entities.Category{ID: uuid.New(), Title: title}
	if err := f.db.Create(&cat).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return cat.ID
}

func (f *fixture) addTag(t *testing.T, title string) uuid.UUID {
	t.Helper()
	row := entities.Tag{ID: uuid.New(), Title: title}
	if err := f.db.Create(&row).Error; err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return row.ID
}

func validCreateRequest(categoryID string, tags []string) domain.CreateRecipeRequest {
	public := true
	servings := 2.0
	return domain.CreateRecipeRequest{
		Title:          "蜂蜜綠茶",
		CoverImgURL:    "https://example.com/tea.jpg",
		IsPublic:       &public,
		Category:       categoryID,
		Tags:           tags,
		CookingTime:    entities.CookingTimes[0],
		Description:    "清爽好喝",
		Servings:       &servings,
		Ingredients:    []entities.Ingredient{{IngredientName: "綠茶", IngredientQty: "1 包"}},
		NutritionFacts: &entities.NutritionFacts{Calories: 50, Sugar: 10},
		Steps:          []entities.Step{{StepOrder: 1, StepContent: "沖泡後加入蜂蜜"}},
	}
}

func wantValidation(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation failure")
	}
	vErr, ok := err.(*rules.ValidationError)
	if !ok {
		t.Fatalf("error type = %T (%v), want *rules.ValidationError", err, err)
	}
	if vErr.Message != message {
		t.Errorf("message = %q, want %q", vErr.Message, message)
	}
}

func (f *fixture) recipeCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&entities.Recipe{}).Count(&n).Error; err != nil {
		t.Fatalf("count recipes: %v", err)
	}
	return n
}

func TestCreateRecipe_TooManyTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "chef")
	cat := f.addCategory(t, "飲品")

	tags := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		tags = append(tags, f.addTag(t, "tag").String())
	}

	_, err := f.service.CreateRecipe(ctx, user, validCreateRequest(cat.String(), tags))
	wantValidation(t, err, domain.MessageInvalidTags)
	if n := f.recipeCount(t); n != 0 {
		t.Errorf("recipe count = %d after rejected create, want 0", n)
	}
}

func TestCreateRecipe_DuplicateTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "chef")
	cat := f.addCategory(t, "飲品")
	tagID := f.addTag(t, "冰飲").String()

	_, err := f.service.CreateRecipe(ctx, user, validCreateRequest(cat.String(), []string{tagID, tagID}))
	wantValidation(t, err, domain.MessageInvalidTags)
}

func TestCreateRecipe_DanglingTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "chef")
	cat := f.addCategory(t, "飲品")

	_, err := f.service.CreateRecipe(ctx, user, validCreateRequest(cat.String(), []string{uuid.NewString()}))
	wantValidation(t, err, domain.MessageInvalidTags)
	if n := f.recipeCount(t); n != 0 {
		t.Errorf("recipe count = %d after rejected create, want 0", n)
	}
}

func TestCreateRecipe_FirstRuleMessageWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "chef")
	cat := f.addCategory(t, "飲品")

	req := validCreateRequest(cat.String(), []string{uuid.NewString()})
	req.Title = ""
	_, err := f.service.CreateRecipe(ctx, user, req)
	wantValidation(t, err, domain.MessageInvalidTitle)
}

func TestCreateRecipe_MissingCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "chef")

	_, err := f.service.CreateRecipe(ctx, user, validCreateRequest(uuid.NewString(), nil))
	wantValidation(t, err, domain.MessageInvalidCategoryRef)
}

func (f *fixture) mustCreate(t *testing.T, user uuid.UUID, req domain.CreateRecipeRequest) *entities.Recipe {
	t.Helper()
	recipe, err := f.service.CreateRecipe(context.Background(), user, req)
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	return recipe
}

func (f *fixture) collectsCount(t *testing.T, recipeID uuid.UUID) int {
	t.Helper()
	var recipe entities.Recipe
	if err := f.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		t.Fatalf("fetch recipe: %v", err)
	}
	return recipe.CollectsCount
}

func TestCollect_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	fan := f.addUser(t, "fan")
	cat := f.addCategory(t, "飲品")
	recipe := f.mustCreate(t, owner, validCreateRequest(cat.String(), nil))

	for i := 0; i < 2; i++ {
		res, err := f.service.Collect(ctx, fan, recipe.ID.String())
		if err != nil {
			t.Fatalf("Collect #%d: %v", i+1, err)
		}
		if res.RecipeID != recipe.ID.String() || res.UserID != fan.String() {
			t.Errorf("Collect response = %+v", res)
		}
	}

	if got := f.collectsCount(t, recipe.ID); got != 1 {
		t.Errorf("collects_count = %d after double collect, want 1", got)
	}
	var joinRows int64
	f.db.Model(&entities.Collect{}).Where("recipe_id = ?", recipe.ID).Count(&joinRows)
	if joinRows != 1 {
		t.Errorf("collect rows = %d, want 1", joinRows)
	}
}

func TestUncollect_NeverNegative(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	fan := f.addUser(t, "fan")
	cat := f.addCategory(t, "飲品")
	recipe := f.mustCreate(t, owner, validCreateRequest(cat.String(), nil))

	if _, err := f.service.Collect(ctx, fan, recipe.ID.String()); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := f.service.Uncollect(ctx, fan, recipe.ID.String()); err != nil {
			t.Fatalf("Uncollect #%d: %v", i+1, err)
		}
	}
	if got := f.collectsCount(t, recipe.ID); got != 0 {
		t.Errorf("collects_count = %d, want 0", got)
	}
}

func TestCollect_UnknownRecipe(t *testing.T) {
	f := newFixture(t)
	fan := f.addUser(t, "fan")

	_, err := f.service.Collect(context.Background(), fan, uuid.NewString())
	wantValidation(t, err, domain.MessageCollectFailed)
}

func TestUpdateOwnRecipe_NotOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	other := f.addUser(t, "other")
	cat := f.addCategory(t, "飲品")
	recipe := f.mustCreate(t, owner, validCreateRequest(cat.String(), nil))

	_, err := f.service.UpdateOwnRecipe(ctx, other, recipe.ID.String(), domain.UpdateRecipeRequest{Title: "改名"})
	wantValidation(t, err, domain.MessageRecipeNotAccessible)
}

func TestUpdateOwnRecipe_ReplacesTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	cat := f.addCategory(t, "飲品")
	t1 := f.addTag(t, "冰飲")
	t2 := f.addTag(t, "熱飲")
	recipe := f.mustCreate(t, owner, validCreateRequest(cat.String(), []string{t1.String()}))

	updated, err := f.service.UpdateOwnRecipe(ctx, owner, recipe.ID.String(), domain.UpdateRecipeRequest{
		Tags: []string{t2.String()},
	})
	if err != nil {
		t.Fatalf("UpdateOwnRecipe: %v", err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != t2 {
		t.Errorf("tags after update = %v, want [%s]", updated.Tags, t2)
	}
}

func TestGetPublicRecipes_TagsRequireAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	cat := f.addCategory(t, "飲品")
	t1 := f.addTag(t, "冰飲")
	t2 := f.addTag(t, "無糖")

	both := f.mustCreate(t, owner, validCreateRequest(cat.String(), []string{t1.String(), t2.String()}))
	f.mustCreate(t, owner, validCreateRequest(cat.String(), []string{t1.String()}))

	page, err := f.service.GetPublicRecipes(ctx, domain.RecipeListQuery{
		Tags: []string{t1.String(), t2.String()},
	})
	if err != nil {
		t.Fatalf("GetPublicRecipes: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].ID != both.ID {
		t.Errorf("tag all-of filter returned %d results, want only the doubly tagged recipe", len(page.Results))
	}
}

func TestGetPublicRecipes_KeywordIsLiteral(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	cat := f.addCategory(t, "飲品")

	withPercent := validCreateRequest(cat.String(), nil)
	withPercent.Title = "100% 果汁"
	kept := f.mustCreate(t, owner, withPercent)

	plain := validCreateRequest(cat.String(), nil)
	plain.Title = "果汁牛奶"
	f.mustCreate(t, owner, plain)

	page, err := f.service.GetPublicRecipes(ctx, domain.RecipeListQuery{Keyword: "100%"})
	if err != nil {
		t.Fatalf("GetPublicRecipes: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].ID != kept.ID {
		t.Errorf("keyword %% must match literally, got %d results", len(page.Results))
	}
}

func TestGetPublicRecipes_HidesPrivate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	cat := f.addCategory(t, "飲品")

	private := validCreateRequest(cat.String(), nil)
	hidden := false
	private.IsPublic = &hidden
	f.mustCreate(t, owner, private)
	public := f.mustCreate(t, owner, validCreateRequest(cat.String(), nil))

	page, err := f.service.GetPublicRecipes(ctx, domain.RecipeListQuery{})
	if err != nil {
		t.Fatalf("GetPublicRecipes: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].ID != public.ID {
		t.Errorf("public listing returned %d results, want only the public recipe", len(page.Results))
	}
}

func TestGetPublicRecipes_SortHot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	fan := f.addUser(t, "fan")
	cat := f.addCategory(t, "飲品")

	cold := f.mustCreate(t, owner, validCreateRequest(cat.String(), nil))
	hot := f.mustCreate(t, owner, validCreateRequest(cat.String(), nil))
	if _, err := f.service.Collect(ctx, fan, hot.ID.String()); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	page, err := f.service.GetPublicRecipes(ctx, domain.RecipeListQuery{Sort: "hot"})
	if err != nil {
		t.Fatalf("GetPublicRecipes: %v", err)
	}
	if len(page.Results) != 2 {
		t.Fatalf("len = %d, want 2", len(page.Results))
	}
	if page.Results[0].ID != hot.ID || page.Results[1].ID != cold.ID {
		t.Error("hot sort must order by collects_count descending")
	}
}

// The full flow: a category and a published recipe, a second member collects
// it, then an admin removes the recipe and the collect references disappear
// with it.
func TestPublishCollectDeleteFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "author")
	fan := f.addUser(t, "fan")
	drinks := f.addCategory(t, "飲品")

	req := validCreateRequest(drinks.String(), nil)
	req.Title = "冷泡茶"
	tea := f.mustCreate(t, author, req)

	if _, err := f.service.Collect(ctx, fan, tea.ID.String()); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	page, err := f.service.GetPublicRecipes(ctx, domain.RecipeListQuery{Category: drinks.String()})
	if err != nil {
		t.Fatalf("GetPublicRecipes: %v", err)
	}
	if len(page.Results) != 1 {
		t.Fatalf("category listing = %d results, want 1", len(page.Results))
	}
	if page.Results[0].CollectsCount != 1 {
		t.Fatalf("collects count = %d, want 1", page.Results[0].CollectsCount)
	}

	deleted, err := f.service.DeleteRecipeAdmin(ctx, tea.ID.String())
	if err != nil {
		t.Fatalf("DeleteRecipeAdmin: %v", err)
	}
	if deleted.ID != tea.ID {
		t.Errorf("deleted id = %s, want %s", deleted.ID, tea.ID)
	}

	var collectRows int64
	f.db.Model(&entities.Collect{}).Count(&collectRows)
	if collectRows != 0 {
		t.Errorf("collect rows = %d after recipe delete, want 0", collectRows)
	}
	_, err = f.service.GetPublicRecipe(ctx, tea.ID.String())
	wantValidation(t, err, domain.MessageRecipeNotFound)
}

func TestGetMyRecipes_IncludesPrivate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	cat := f.addCategory(t, "飲品")

	private := validCreateRequest(cat.String(), nil)
	hidden := false
	private.IsPublic = &hidden
	f.mustCreate(t, owner, private)
	f.mustCreate(t, owner, validCreateRequest(cat.String(), nil))

	page, err := f.service.GetMyRecipes(ctx, owner, domain.RecipeListQuery{})
	if err != nil {
		t.Fatalf("GetMyRecipes: %v", err)
	}
	if len(page.Results) != 2 {
		t.Errorf("own listing = %d results, want 2 including the private one", len(page.Results))
	}
}

func TestCreateRecipe_StampsTimestamps(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "owner")
	cat := f.addCategory(t, "飲品")

	before := time.Now().Add(-time.Second)
	recipe := f.mustCreate(t, owner, validCreateRequest(cat.String(), nil))
	if recipe.CreatedAt.Before(before) {
		t.Error("CreatedAt not stamped on create")
	}
}
