package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filesmanager-backend/models"
)

// FileRepository handles database operations for files
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// Create creates a new file record
func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (
			user_id, name, type, parent_id, is_public, storage_path
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		file.UserID,
		file.Name,
		file.Type,
		file.ParentID,
		file.IsPublic,
		file.StoragePath,
	).Scan(&file.ID, &file.CreatedAt)

	return err
}

// GetByID retrieves a file by ID
func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	file := &models.File{}
	query := `
		SELECT id, user_id, name, type, parent_id, is_public, storage_path, created_at
		FROM files
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.UserID,
		&file.Name,
		&file.Type,
		&file.ParentID,
		&file.IsPublic,
		&file.StoragePath,
		&file.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return file, nil
}

// ListByParent retrieves the files a user owns under the given parent
// (nil parent means the root), in insertion order.
func (r *FileRepository) ListByParent(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID, limit, offset int) ([]*models.File, error) {
	query := `
		SELECT id, user_id, name, type, parent_id, is_public, storage_path, created_at
		FROM files
		WHERE user_id = $1 AND parent_id IS NOT DISTINCT FROM $2
		ORDER BY created_at, id
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, userID, parentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*models.File
	for rows.Next() {
		file := &models.File{}
		err := rows.Scan(
			&file.ID,
			&file.UserID,
			&file.Name,
			&file.Type,
			&file.ParentID,
			&file.IsPublic,
			&file.StoragePath,
			&file.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// SetPublic updates the visibility flag of a file
func (r *FileRepository) SetPublic(ctx context.Context, id uuid.UUID, isPublic bool) error {
	query := `UPDATE files SET is_public = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, isPublic)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Count returns the total number of files
func (r *FileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM files`).Scan(&count)
	return count, err
}
