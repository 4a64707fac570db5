package service

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"filesmanager-backend/models"
	"filesmanager-backend/storage"
)

// In-memory collaborator doubles shared by the service tests.

type fakeUserRepo struct {
	users      map[uuid.UUID]*models.User
	failCreate error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return models.ErrConflict
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeFileRepo struct {
	files []*models.File
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	file.ID = uuid.New()
	file.CreatedAt = time.Now()
	r.files = append(r.files, file)
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	for _, f := range r.files {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeFileRepo) ListByParent(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID, limit, offset int) ([]*models.File, error) {
	var matched []*models.File
	for _, f := range r.files {
		if f.UserID != userID {
			continue
		}
		if (f.ParentID == nil) != (parentID == nil) {
			continue
		}
		if f.ParentID != nil && *f.ParentID != *parentID {
			continue
		}
		matched = append(matched, f)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeFileRepo) SetPublic(ctx context.Context, id uuid.UUID, isPublic bool) error {
	for _, f := range r.files {
		if f.ID == id {
			f.IsPublic = isPublic
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *fakeFileRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.files)), nil
}

type fakeSessionStore struct {
	tokens map[string]uuid.UUID
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{tokens: map[string]uuid.UUID{}}
}

func (s *fakeSessionStore) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	s.tokens[token] = userID
	return nil
}

func (s *fakeSessionStore) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	id, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, models.ErrUnauthorized
	}
	return id, nil
}

func (s *fakeSessionStore) Delete(ctx context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

type fakeJobPublisher struct {
	thumbnails []models.ThumbnailJob
	welcomes   []models.WelcomeJob
}

func (p *fakeJobPublisher) PublishThumbnail(ctx context.Context, job models.ThumbnailJob) error {
	p.thumbnails = append(p.thumbnails, job)
	return nil
}

func (p *fakeJobPublisher) PublishWelcome(ctx context.Context, job models.WelcomeJob) error {
	p.welcomes = append(p.welcomes, job)
	return nil
}

type memStorage struct {
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (s *memStorage) Save(ctx context.Context, key string, data io.Reader) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.objects[key] = b
	return nil
}

func (s *memStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	b, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *memStorage) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}
