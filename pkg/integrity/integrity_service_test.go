package integrity

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"secret-recipe-backend/entities"
)

type recordingStore struct {
	deleted []string
	folders []string
}

func (f *recordingStore) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	return folder + "/" + fileName, nil
}

func (f *recordingStore) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *recordingStore) DeleteFolder(prefix string) error {
	f.folders = append(f.folders, prefix)
	return nil
}

func (f *recordingStore) GetObjectKeyFromLink(link string) string { return link }

func (f *recordingStore) GetPublicLinkKey(objectKey string) string {
	return "https://assets.test/" + objectKey
}

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func addUser(t *testing.T, db *gorm.DB, nick string) uuid.UUID {
	t.Helper()
	u := entities.User{ID: uuid.New(), NickName: nick, Email: nick + "@example.com"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}

func addRecipe(t *testing.T, db *gorm.DB, owner uuid.UUID, collects int) uuid.UUID {
	t.Helper()
	r := entities.Recipe{ID: uuid.New(), UserID: owner, Title: "菜", IsPublic: true, CollectsCount: collects}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	return r.ID
}

func addCollect(t *testing.T, db *gorm.DB, user, recipe uuid.UUID) {
	t.Helper()
	if err := db.Create(&entities.Collect{UserID: user, RecipeID: recipe}).Error; err != nil {
		t.Fatalf("create collect: %v", err)
	}
}

func count[T any](t *testing.T, db *gorm.DB, conds ...any) int64 {
	t.Helper()
	var model T
	var n int64
	q := db.Model(&model)
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestDeleteRecipe_RemovesReferencesFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntegrityService(db, &recordingStore{})
	ctx := context.Background()

	owner := addUser(t, db, "owner")
	fan := addUser(t, db, "fan")
	recipeID := addRecipe(t, db, owner, 1)
	addCollect(t, db, fan, recipeID)
	tagID := uuid.New()
	if err := db.Create(&entities.RecipeTag{RecipeID: recipeID, TagID: tagID}).Error; err != nil {
		t.Fatalf("create recipe tag: %v", err)
	}

	if err := svc.DeleteRecipe(ctx, recipeID); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	if n := count[entities.Collect](t, db); n != 0 {
		t.Errorf("collect rows = %d, want 0", n)
	}
	if n := count[entities.RecipeTag](t, db); n != 0 {
		t.Errorf("recipe tag rows = %d, want 0", n)
	}
	if n := count[entities.Recipe](t, db); n != 0 {
		t.Errorf("recipe rows = %d, want 0", n)
	}
}

func TestDeleteRecipe_MissingIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntegrityService(db, &recordingStore{})

	if err := svc.DeleteRecipe(context.Background(), uuid.New()); err != nil {
		t.Fatalf("DeleteRecipe on missing id: %v", err)
	}
}

func TestDeleteMemberRecipes_OnlyTheirs(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntegrityService(db, &recordingStore{})
	ctx := context.Background()

	alice := addUser(t, db, "alice")
	bob := addUser(t, db, "bob")
	aliceRecipe := addRecipe(t, db, alice, 0)
	bobRecipe := addRecipe(t, db, bob, 0)
	addCollect(t, db, bob, aliceRecipe)

	if err := svc.DeleteMemberRecipes(ctx, alice); err != nil {
		t.Fatalf("DeleteMemberRecipes: %v", err)
	}
	if n := count[entities.Recipe](t, db, "id = ?", bobRecipe); n != 1 {
		t.Error("other member's recipe must survive")
	}
	if n := count[entities.Recipe](t, db, "id = ?", aliceRecipe); n != 0 {
		t.Error("owned recipe must be gone")
	}
	if n := count[entities.Collect](t, db); n != 0 {
		t.Error("collects of the deleted recipes must be gone")
	}
}

func TestDeleteMember_FullCascade(t *testing.T) {
	db := newTestDB(t)
	store := &recordingStore{}
	svc := NewIntegrityService(db, store)
	ctx := context.Background()

	alice := addUser(t, db, "alice")
	bob := addUser(t, db, "bob")

	// alice owns a recipe that bob collected
	aliceRecipe := addRecipe(t, db, alice, 1)
	addCollect(t, db, bob, aliceRecipe)
	// alice collected bob's recipe
	bobRecipe := addRecipe(t, db, bob, 1)
	addCollect(t, db, alice, bobRecipe)
	// alice uploaded an image
	img := entities.Image{ID: uuid.New(), UserID: alice, ImagePath: "images/" + alice.String() + "/a.png"}
	if err := db.Create(&img).Error; err != nil {
		t.Fatalf("create image: %v", err)
	}

	if err := svc.DeleteMember(ctx, alice); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}

	if n := count[entities.User](t, db, "id = ?", alice); n != 0 {
		t.Error("member row must be gone")
	}
	if n := count[entities.Recipe](t, db, "user_id = ?", alice); n != 0 {
		t.Error("member's recipes must be gone")
	}
	if n := count[entities.Collect](t, db, "user_id = ?", alice); n != 0 {
		t.Error("member's own collects must be gone")
	}
	if n := count[entities.Image](t, db, "user_id = ?", alice); n != 0 {
		t.Error("member's image rows must be gone")
	}
	if len(store.deleted) != 1 || store.deleted[0] != img.ImagePath {
		t.Errorf("asset deletes = %v, want the member's object key", store.deleted)
	}

	// bob's recipe lost alice's collect and its counter walked back
	var survivor entities.Recipe
	if err := db.First(&survivor, "id = ?", bobRecipe).Error; err != nil {
		t.Fatalf("fetch survivor: %v", err)
	}
	if survivor.CollectsCount != 0 {
		t.Errorf("survivor collects_count = %d, want 0", survivor.CollectsCount)
	}
}

func TestDeleteAllRecipes_Truncates(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntegrityService(db, &recordingStore{})
	ctx := context.Background()

	owner := addUser(t, db, "owner")
	fan := addUser(t, db, "fan")
	for i := 0; i < 3; i++ {
		id := addRecipe(t, db, owner, 0)
		addCollect(t, db, fan, id)
	}

	if err := svc.DeleteAllRecipes(ctx); err != nil {
		t.Fatalf("DeleteAllRecipes: %v", err)
	}
	if n := count[entities.Recipe](t, db); n != 0 {
		t.Errorf("recipe rows = %d, want 0", n)
	}
	if n := count[entities.Collect](t, db); n != 0 {
		t.Errorf("collect rows = %d, want 0", n)
	}
	if n := count[entities.User](t, db); n != 2 {
		t.Errorf("user rows = %d, users must survive a recipe purge", n)
	}
}

func TestDeleteAllMembers_Truncates(t *testing.T) {
	db := newTestDB(t)
	svc := NewIntegrityService(db, &recordingStore{})
	ctx := context.Background()

	owner := addUser(t, db, "owner")
	addRecipe(t, db, owner, 0)
	img := entities.Image{ID: uuid.New(), UserID: owner, ImagePath: "images/x.png"}
	if err := db.Create(&img).Error; err != nil {
		t.Fatalf("create image: %v", err)
	}

	if err := svc.DeleteAllMembers(ctx); err != nil {
		t.Fatalf("DeleteAllMembers: %v", err)
	}
	if n := count[entities.User](t, db); n != 0 {
		t.Errorf("user rows = %d, want 0", n)
	}
	if n := count[entities.Recipe](t, db); n != 0 {
		t.Errorf("recipe rows = %d, want 0", n)
	}
	if n := count[entities.Image](t, db); n != 0 {
		t.Errorf("image rows = %d, want 0", n)
	}
}
