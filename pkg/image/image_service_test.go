package image

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/utils/rules"
	"secret-recipe-backend/internal/utils/storage"
)

type memoryStore struct {
	uploaded []string
	deleted  []string
	folders  []string
}

func (m *memoryStore) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	if len(allowedTypes) > 0 && !slices.Contains(allowedTypes, strings.ToLower(filepath.Ext(fileName))) {
		return "", storage.ErrFileTypeNotAllowed
	}
	key := folder + "/" + fileName
	m.uploaded = append(m.uploaded, key)
	return key, nil
}

func (m *memoryStore) DeleteFile(objectKey string) error {
	m.deleted = append(m.deleted, objectKey)
	return nil
}

func (m *memoryStore) DeleteFolder(prefix string) error {
	m.folders = append(m.folders, prefix)
	return nil
}

func (m *memoryStore) GetObjectKeyFromLink(link string) string { return link }

func (m *memoryStore) GetPublicLinkKey(objectKey string) string {
	return "https://assets.test/" + objectKey
}

func newService(t *testing.T) (ImageService, *memoryStore, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Image{}))

	store := &memoryStore{}
	return NewImageService(NewImageRepository(db), store), store, db
}

func TestUploadImage(t *testing.T) {
	svc, store, db := newService(t)
	ctx := context.Background()
	userID := uuid.New()
	file := &multipart.FileHeader{Filename: "dish.png"}

	res, err := svc.UploadImage(ctx, userID, "photo", file)
	require.NoError(t, err)
	assert.Equal(t, "photo", res.Type)
	assert.True(t, strings.HasPrefix(res.ImageURL, "https://assets.test/images/"+userID.String()+"/"))
	assert.True(t, strings.HasSuffix(res.ImageURL, ".png"))
	require.Len(t, store.uploaded, 1)

	var row entities.Image
	require.NoError(t, db.First(&row, "user_id = ?", userID).Error)
	assert.Equal(t, store.uploaded[0], row.ImagePath)
}

func TestUploadImage_DefaultsToPhoto(t *testing.T) {
	svc, _, _ := newService(t)

	res, err := svc.UploadImage(context.Background(), uuid.New(), "", &multipart.FileHeader{Filename: "a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, entities.ImageTypePhoto, res.Type)
}

func TestUploadImage_BadType(t *testing.T) {
	svc, store, _ := newService(t)

	_, err := svc.UploadImage(context.Background(), uuid.New(), "banner", &multipart.FileHeader{Filename: "a.jpg"})
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.MessageInvalidImageType, vErr.Message)
	assert.Empty(t, store.uploaded)
}

func TestUploadImage_RejectedFileType(t *testing.T) {
	svc, store, _ := newService(t)

	_, err := svc.UploadImage(context.Background(), uuid.New(), "photo", &multipart.FileHeader{Filename: "report.pdf"})
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.MessageUploadFailed, vErr.Message)
	assert.Empty(t, store.uploaded)
}

func TestDeleteImage_OwnerOnly(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	owner := uuid.New()

	res, err := svc.UploadImage(ctx, owner, "photo", &multipart.FileHeader{Filename: "a.jpg"})
	require.NoError(t, err)

	// another member cannot touch it
	_, err = svc.DeleteImage(ctx, res.ID, uuid.New(), false)
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.MessageDeleteImageFailed, vErr.Message)
	assert.Empty(t, store.deleted)

	// the owner can
	deleted, err := svc.DeleteImage(ctx, res.ID, owner, false)
	require.NoError(t, err)
	assert.Equal(t, res.ID, deleted.ID.String())
	require.Len(t, store.deleted, 1)
}

func TestDeleteImage_AdminOverridesOwnership(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	res, err := svc.UploadImage(ctx, uuid.New(), "photo", &multipart.FileHeader{Filename: "a.jpg"})
	require.NoError(t, err)

	_, err = svc.DeleteImage(ctx, res.ID, uuid.New(), true)
	require.NoError(t, err)
	assert.Len(t, store.deleted, 1)
}

func TestDeleteMemberImages(t *testing.T) {
	svc, store, db := newService(t)
	ctx := context.Background()
	member := uuid.New()
	other := uuid.New()

	for _, owner := range []uuid.UUID{member, member, other} {
		_, err := svc.UploadImage(ctx, owner, "photo", &multipart.FileHeader{Filename: "a.jpg"})
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteMemberImages(ctx, member.String()))
	assert.Len(t, store.deleted, 2)

	var remaining int64
	db.Model(&entities.Image{}).Count(&remaining)
	assert.EqualValues(t, 1, remaining)
}

func TestDeleteAllImages_ClearsPrefix(t *testing.T) {
	svc, store, db := newService(t)
	ctx := context.Background()

	_, err := svc.UploadImage(ctx, uuid.New(), "photo", &multipart.FileHeader{Filename: "a.jpg"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAllImages(ctx))
	assert.Equal(t, []string{"images/"}, store.folders)

	var remaining int64
	db.Model(&entities.Image{}).Count(&remaining)
	assert.Zero(t, remaining)
}
