package models

import (
	"time"

	"github.com/google/uuid"
)

// FileType distinguishes folders from regular files and images.
type FileType string

const (
	FileTypeFolder FileType = "folder"
	FileTypeFile   FileType = "file"
	FileTypeImage  FileType = "image"
)

// Valid reports whether t is one of the accepted file types.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeFolder, FileTypeFile, FileTypeImage:
		return true
	}
	return false
}

// File represents a stored file or folder entity.
// StoragePath is the on-disk (or S3) locator; empty for folders.
type File struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Type        FileType   `json:"type"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	IsPublic    bool       `json:"is_public"`
	StoragePath string     `json:"-"` // Never serialize the storage locator
	CreatedAt   time.Time  `json:"created_at"`
}

// FileProjection is the externally visible view of a File.
// ParentID is "0" for files attached directly to the root.
type FileProjection struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"userId"`
	Name     string    `json:"name"`
	Type     FileType  `json:"type"`
	IsPublic bool      `json:"isPublic"`
	ParentID string    `json:"parentId"`
}

// Projection returns the public view of the file, without the storage locator.
func (f *File) Projection() FileProjection {
	parent := "0"
	if f.ParentID != nil {
		parent = f.ParentID.String()
	}
	return FileProjection{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: parent,
	}
}
