package worker

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"filesmanager-backend/models"
)

// thumbnailWidths are the derivative sizes generated for every image,
// stored alongside the original as <locator>_<width>.
var thumbnailWidths = []int{500, 250, 100}

// generateThumbnails loads the original image and writes one scaled
// derivative per configured width.
func (w *Worker) generateThumbnails(ctx context.Context, fileID uuid.UUID) error {
	file, err := w.files.GetByID(ctx, fileID)
	if err != nil {
		return fmt.Errorf("loading file %s: %w", fileID, err)
	}
	if file.Type != models.FileTypeImage {
		w.log.Warnw("thumbnail job for non-image file, skipping", "file_id", fileID, "type", file.Type)
		return nil
	}

	rc, err := w.store.Open(ctx, file.StoragePath)
	if err != nil {
		return fmt.Errorf("opening content of %s: %w", fileID, err)
	}
	defer rc.Close()

	img, err := imaging.Decode(rc)
	if err != nil {
		return fmt.Errorf("decoding image %s: %w", fileID, err)
	}

	format := strings.ToLower(filepath.Ext(file.Name))

	for _, width := range thumbnailWidths {
		thumb := imaging.Resize(img, width, 0, imaging.Lanczos)

		buf := new(bytes.Buffer)
		if err := encodeImage(buf, thumb, format); err != nil {
			return fmt.Errorf("encoding %d-wide thumbnail of %s: %w", width, fileID, err)
		}

		key := fmt.Sprintf("%s_%d", file.StoragePath, width)
		if err := w.store.Save(ctx, key, buf); err != nil {
			return fmt.Errorf("storing %d-wide thumbnail of %s: %w", width, fileID, err)
		}
	}

	w.log.Infow("thumbnails generated", "file_id", fileID, "widths", thumbnailWidths)
	return nil
}

// encodeImage encodes an image with the format matching the original's
// extension, defaulting to JPEG.
func encodeImage(buf *bytes.Buffer, img image.Image, format string) error {
	switch format {
	case ".png":
		return png.Encode(buf, img)
	default:
		return jpeg.Encode(buf, img, nil)
	}
}
