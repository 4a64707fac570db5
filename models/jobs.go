package models

import "github.com/google/uuid"

// ThumbnailJob is the payload enqueued when an image file is created.
type ThumbnailJob struct {
	FileID uuid.UUID `json:"fileId"`
}

// WelcomeJob is the payload enqueued when a user registers. A zero
// UserID is allowed: the registration path enqueues an empty job as a
// best-effort notification when user creation itself fails.
type WelcomeJob struct {
	UserID uuid.UUID `json:"userId,omitempty"`
}
