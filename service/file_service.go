package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filesmanager-backend/models"
	"filesmanager-backend/storage"
)

// PageSize is the fixed page size for file listings.
const PageSize = 20

// FileService handles file metadata, visibility and content access.
type FileService struct {
	files FileRepository
	store storage.Storage
	jobs  JobPublisher
	log   *zap.SugaredLogger
}

// FileServiceOption is a functional option for FileService
type FileServiceOption func(*FileService)

// WithFileRepository sets the file repository
func WithFileRepository(repo FileRepository) FileServiceOption {
	return func(s *FileService) {
		s.files = repo
	}
}

// WithStorage sets the binary object storage
func WithStorage(store storage.Storage) FileServiceOption {
	return func(s *FileService) {
		s.store = store
	}
}

// WithFileJobPublisher sets the job publisher
func WithFileJobPublisher(jobs JobPublisher) FileServiceOption {
	return func(s *FileService) {
		s.jobs = jobs
	}
}

// WithFileLogger sets the logger
func WithFileLogger(log *zap.SugaredLogger) FileServiceOption {
	return func(s *FileService) {
		s.log = log
	}
}

// NewFileService creates a new file service
func NewFileService(opts ...FileServiceOption) *FileService {
	s := &FileService{
		log: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateFileRequest describes a file upload. Data is the base64-encoded
// content, required for non-folder types.
type CreateFileRequest struct {
	OwnerID  uuid.UUID
	Name     string
	Type     models.FileType
	ParentID *uuid.UUID
	IsPublic bool
	Data     string
}

// Create validates and persists a new file. Content is decoded and written
// to storage under a fresh locator before the record is inserted. Creating
// an image enqueues exactly one thumbnail job; the job's outcome never
// affects the created record.
func (s *FileService) Create(ctx context.Context, req CreateFileRequest) (*models.File, error) {
	if req.Name == "" {
		return nil, models.NewValidationError("Missing name")
	}
	if !req.Type.Valid() {
		return nil, models.NewValidationError("Missing type")
	}
	if req.Type != models.FileTypeFolder && req.Data == "" {
		return nil, models.NewValidationError("Missing data")
	}

	if req.ParentID != nil {
		parent, err := s.files.GetByID(ctx, *req.ParentID)
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewValidationError("Parent not found")
		}
		if err != nil {
			return nil, fmt.Errorf("loading parent: %w", err)
		}
		if parent.Type != models.FileTypeFolder {
			return nil, models.NewValidationError("Parent is not a folder")
		}
	}

	file := &models.File{
		UserID:   req.OwnerID,
		Name:     req.Name,
		Type:     req.Type,
		ParentID: req.ParentID,
		IsPublic: req.IsPublic,
	}

	if req.Type != models.FileTypeFolder {
		content, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return nil, models.NewValidationError("Invalid data")
		}

		key := uuid.New().String()
		if err := s.store.Save(ctx, key, bytes.NewReader(content)); err != nil {
			return nil, fmt.Errorf("storing content: %w", err)
		}
		file.StoragePath = key
	}

	if err := s.files.Create(ctx, file); err != nil {
		if file.StoragePath != "" {
			// Record insert failed; don't leave the blob orphaned.
			if delErr := s.store.Delete(ctx, file.StoragePath); delErr != nil {
				s.log.Warnw("failed to clean up stored content", "key", file.StoragePath, "error", delErr)
			}
		}
		return nil, fmt.Errorf("creating file record: %w", err)
	}

	if file.Type == models.FileTypeImage {
		if err := s.jobs.PublishThumbnail(ctx, models.ThumbnailJob{FileID: file.ID}); err != nil {
			s.log.Errorw("failed to enqueue thumbnail job", "file_id", file.ID, "error", err)
		}
	}

	return file, nil
}

// Get fetches a file by ID. Private files are only visible to their owner;
// other requesters get ErrForbidden, which the HTTP layer reports as 404.
func (s *FileService) Get(ctx context.Context, requesterID, fileID uuid.UUID) (*models.File, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !file.IsPublic && file.UserID != requesterID {
		return nil, models.ErrForbidden
	}

	return file, nil
}

// List returns the requester's files under the given parent (nil for root),
// paginated with a fixed page size. Pages are zero-based.
func (s *FileService) List(ctx context.Context, requesterID uuid.UUID, parentID *uuid.UUID, page int) ([]*models.File, error) {
	if page < 0 {
		page = 0
	}
	return s.files.ListByParent(ctx, requesterID, parentID, PageSize, page*PageSize)
}

// SetPublic toggles visibility. A file that is absent or not owned by the
// requester is reported as not found. The operation is idempotent.
func (s *FileService) SetPublic(ctx context.Context, requesterID, fileID uuid.UUID, isPublic bool) (*models.File, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.UserID != requesterID {
		return nil, models.ErrNotFound
	}

	if err := s.files.SetPublic(ctx, fileID, isPublic); err != nil {
		return nil, err
	}

	file.IsPublic = isPublic
	return file, nil
}

// Content is a file's raw bytes with its inferred media type.
type Content struct {
	Data []byte
	MIME string
	Name string
}

// GetContent returns a file's content. Size selects a thumbnail variant
// (500, 250 or 100) stored as <locator>_<size>; zero means the original.
// The requester may be uuid.Nil for anonymous access to public files.
func (s *FileService) GetContent(ctx context.Context, requesterID, fileID uuid.UUID, size int) (*Content, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !file.IsPublic && file.UserID != requesterID {
		return nil, models.ErrForbidden
	}

	if file.Type == models.FileTypeFolder {
		return nil, models.NewValidationError("A folder doesn't have content")
	}

	key := file.StoragePath
	if size > 0 {
		key = fmt.Sprintf("%s_%d", key, size)
	}

	rc, err := s.store.Open(ctx, key)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("opening content: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(file.Name))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &Content{
		Data: data,
		MIME: mimeType,
		Name: file.Name,
	}, nil
}
