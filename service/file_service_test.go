package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesmanager-backend/models"
)

func newFileService(files *fakeFileRepo, store *memStorage, jobs *fakeJobPublisher) *FileService {
	return NewFileService(
		WithFileRepository(files),
		WithStorage(store),
		WithFileJobPublisher(jobs),
	)
}

func TestCreate_Folder(t *testing.T) {
	s := newFileService(&fakeFileRepo{}, newMemStorage(), &fakeJobPublisher{})
	owner := uuid.New()

	file, err := s.Create(context.Background(), CreateFileRequest{
		OwnerID: owner,
		Name:    "images",
		Type:    models.FileTypeFolder,
	})
	require.NoError(t, err)

	assert.Equal(t, models.FileTypeFolder, file.Type)
	assert.Empty(t, file.StoragePath)
	assert.False(t, file.IsPublic)
	assert.Equal(t, "0", file.Projection().ParentID)
}

func TestCreate_FileStoresDecodedContent(t *testing.T) {
	store := newMemStorage()
	jobs := &fakeJobPublisher{}
	s := newFileService(&fakeFileRepo{}, store, jobs)

	content := []byte("Hello Webstack!")
	file, err := s.Create(context.Background(), CreateFileRequest{
		OwnerID: uuid.New(),
		Name:    "hello.txt",
		Type:    models.FileTypeFile,
		Data:    base64.StdEncoding.EncodeToString(content),
	})
	require.NoError(t, err)

	require.NotEmpty(t, file.StoragePath)
	assert.Equal(t, content, store.objects[file.StoragePath])
	assert.Empty(t, jobs.thumbnails, "plain files must not enqueue thumbnail jobs")
}

func TestCreate_ImageEnqueuesOneThumbnailJob(t *testing.T) {
	jobs := &fakeJobPublisher{}
	s := newFileService(&fakeFileRepo{}, newMemStorage(), jobs)

	file, err := s.Create(context.Background(), CreateFileRequest{
		OwnerID: uuid.New(),
		Name:    "cat.png",
		Type:    models.FileTypeImage,
		Data:    base64.StdEncoding.EncodeToString([]byte("not really a png")),
	})
	require.NoError(t, err)

	require.Len(t, jobs.thumbnails, 1)
	assert.Equal(t, file.ID, jobs.thumbnails[0].FileID)
}

func TestCreate_Validation(t *testing.T) {
	repo := &fakeFileRepo{}
	s := newFileService(repo, newMemStorage(), &fakeJobPublisher{})
	owner := uuid.New()
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateFileRequest
		want string
	}{
		{"missing name", CreateFileRequest{OwnerID: owner, Type: models.FileTypeFile, Data: "aGk="}, "Missing name"},
		{"missing type", CreateFileRequest{OwnerID: owner, Name: "a"}, "Missing type"},
		{"bad type", CreateFileRequest{OwnerID: owner, Name: "a", Type: "blob"}, "Missing type"},
		{"missing data", CreateFileRequest{OwnerID: owner, Name: "a", Type: models.FileTypeFile}, "Missing data"},
		{"bad base64", CreateFileRequest{OwnerID: owner, Name: "a", Type: models.FileTypeFile, Data: "%%%"}, "Invalid data"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(ctx, tc.req)
			require.Error(t, err)
			assert.True(t, models.IsValidation(err))
			assert.Equal(t, tc.want, err.Error())
		})
	}

	assert.Empty(t, repo.files, "no record may be created on validation failure")
}

func TestCreate_ParentChecks(t *testing.T) {
	repo := &fakeFileRepo{}
	s := newFileService(repo, newMemStorage(), &fakeJobPublisher{})
	owner := uuid.New()
	ctx := context.Background()

	missing := uuid.New()
	_, err := s.Create(ctx, CreateFileRequest{
		OwnerID: owner, Name: "a", Type: models.FileTypeFolder, ParentID: &missing,
	})
	require.Error(t, err)
	assert.Equal(t, "Parent not found", err.Error())

	plain, err := s.Create(ctx, CreateFileRequest{
		OwnerID: owner, Name: "notes.txt", Type: models.FileTypeFile, Data: "aGk=",
	})
	require.NoError(t, err)

	_, err = s.Create(ctx, CreateFileRequest{
		OwnerID: owner, Name: "b", Type: models.FileTypeFolder, ParentID: &plain.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "Parent is not a folder", err.Error())

	folder, err := s.Create(ctx, CreateFileRequest{
		OwnerID: owner, Name: "docs", Type: models.FileTypeFolder,
	})
	require.NoError(t, err)

	child, err := s.Create(ctx, CreateFileRequest{
		OwnerID: owner, Name: "c.txt", Type: models.FileTypeFile, ParentID: &folder.ID, Data: "aGk=",
	})
	require.NoError(t, err)
	assert.Equal(t, folder.ID.String(), child.Projection().ParentID)
}

func TestGet_VisibilityPolicy(t *testing.T) {
	s := newFileService(&fakeFileRepo{}, newMemStorage(), &fakeJobPublisher{})
	owner := uuid.New()
	stranger := uuid.New()
	ctx := context.Background()

	private, err := s.Create(ctx, CreateFileRequest{
		OwnerID: owner, Name: "secret.txt", Type: models.FileTypeFile, Data: "aGk=",
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, owner, private.ID)
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)

	_, err = s.Get(ctx, stranger, private.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = s.Get(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.SetPublic(ctx, owner, private.ID, true)
	require.NoError(t, err)

	_, err = s.Get(ctx, stranger, private.ID)
	assert.NoError(t, err, "public files are visible to anyone")
}

func TestSetPublic(t *testing.T) {
	s := newFileService(&fakeFileRepo{}, newMemStorage(), &fakeJobPublisher{})
	owner := uuid.New()
	stranger := uuid.New()
	ctx := context.Background()

	file, err := s.Create(ctx, CreateFileRequest{
		OwnerID: owner, Name: "a.txt", Type: models.FileTypeFile, Data: "aGk=",
	})
	require.NoError(t, err)

	// Non-owners are told the file doesn't exist.
	_, err = s.SetPublic(ctx, stranger, file.ID, true)
	assert.ErrorIs(t, err, models.ErrNotFound)

	updated, err := s.SetPublic(ctx, owner, file.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)

	// Idempotent: applying true twice yields the same state.
	again, err := s.SetPublic(ctx, owner, file.ID, true)
	require.NoError(t, err)
	assert.True(t, again.IsPublic)

	updated, err = s.SetPublic(ctx, owner, file.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsPublic)
}

func TestGetContent(t *testing.T) {
	store := newMemStorage()
	s := newFileService(&fakeFileRepo{}, store, &fakeJobPublisher{})
	owner := uuid.New()
	ctx := context.Background()

	content := []byte("Hello Webstack!")
	file, err := s.Create(ctx, CreateFileRequest{
		OwnerID: owner, Name: "hello.txt", Type: models.FileTypeFile,
		Data: base64.StdEncoding.EncodeToString(content),
	})
	require.NoError(t, err)

	got, err := s.GetContent(ctx, owner, file.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, content, got.Data)
	assert.True(t, strings.HasPrefix(got.MIME, "text/plain"), "got MIME %q", got.MIME)

	// Anonymous access to private files is denied.
	_, err = s.GetContent(ctx, uuid.Nil, file.ID, 0)
	assert.ErrorIs(t, err, models.ErrForbidden)

	// Folders have no content.
	folder, err := s.Create(ctx, CreateFileRequest{OwnerID: owner, Name: "d", Type: models.FileTypeFolder})
	require.NoError(t, err)
	_, err = s.GetContent(ctx, owner, folder.ID, 0)
	require.Error(t, err)
	assert.Equal(t, "A folder doesn't have content", err.Error())
}

func TestGetContent_ThumbnailVariant(t *testing.T) {
	store := newMemStorage()
	s := newFileService(&fakeFileRepo{}, store, &fakeJobPublisher{})
	owner := uuid.New()
	ctx := context.Background()

	file, err := s.Create(ctx, CreateFileRequest{
		OwnerID: owner, Name: "cat.png", Type: models.FileTypeImage,
		Data: base64.StdEncoding.EncodeToString([]byte("original")),
	})
	require.NoError(t, err)

	// Variant not generated yet.
	_, err = s.GetContent(ctx, owner, file.ID, 100)
	assert.ErrorIs(t, err, models.ErrNotFound)

	thumb := []byte("tiny")
	store.objects[fmt.Sprintf("%s_100", file.StoragePath)] = thumb

	got, err := s.GetContent(ctx, owner, file.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, thumb, got.Data)
}

func TestList_Pagination(t *testing.T) {
	s := newFileService(&fakeFileRepo{}, newMemStorage(), &fakeJobPublisher{})
	owner := uuid.New()
	stranger := uuid.New()
	ctx := context.Background()

	for i := 0; i < PageSize+5; i++ {
		_, err := s.Create(ctx, CreateFileRequest{
			OwnerID: owner, Name: fmt.Sprintf("f%02d.txt", i), Type: models.FileTypeFile, Data: "aGk=",
		})
		require.NoError(t, err)
	}

	page0, err := s.List(ctx, owner, nil, 0)
	require.NoError(t, err)
	assert.Len(t, page0, PageSize)
	assert.Equal(t, "f00.txt", page0[0].Name, "insertion order")

	page1, err := s.List(ctx, owner, nil, 1)
	require.NoError(t, err)
	assert.Len(t, page1, 5)

	page2, err := s.List(ctx, owner, nil, 2)
	require.NoError(t, err)
	assert.Empty(t, page2)

	other, err := s.List(ctx, stranger, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, other, "listing only covers the requester's own files")
}
