package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"filesmanager-backend/models"
)

// Collaborator contracts consumed by the services. The concrete
// implementations live in repository, session and queue; tests substitute
// in-memory doubles.

// UserRepository persists user records.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// FileRepository persists file records.
type FileRepository interface {
	Create(ctx context.Context, file *models.File) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.File, error)
	ListByParent(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID, limit, offset int) ([]*models.File, error)
	SetPublic(ctx context.Context, id uuid.UUID, isPublic bool) error
	Count(ctx context.Context) (int64, error)
}

// SessionStore maps opaque tokens to user IDs with a TTL.
type SessionStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

// JobPublisher enqueues background jobs.
type JobPublisher interface {
	PublishThumbnail(ctx context.Context, job models.ThumbnailJob) error
	PublishWelcome(ctx context.Context, job models.WelcomeJob) error
}
