package application

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
)

// UploadedKeys holds the storage keys of a submission's images. Absent images stay empty.
type UploadedKeys struct {
	Before domain.BlobKey
	After  domain.BlobKey
}

// UploadCoordinator stores a submission's attachments one after another.
type UploadCoordinator struct {
	blobs BlobStore
	newID func() (uuid.UUID, error)
}

func NewUploadCoordinator(blobs BlobStore) *UploadCoordinator {
	return &UploadCoordinator{blobs: blobs, newID: uuid.NewV7}
}

// Upload stores before then after. The first failure stops the sequence; blobs already
// written are left in place.
func (c *UploadCoordinator) Upload(ctx context.Context, before, after *Attachment) (UploadedKeys, error) {
	var keys UploadedKeys

	key, err := c.put(ctx, StageBefore, before)
	if err != nil {
		return UploadedKeys{}, err
	}
	keys.Before = key

	key, err = c.put(ctx, StageAfter, after)
	if err != nil {
		return UploadedKeys{}, err
	}
	keys.After = key

	return keys, nil
}

func (c *UploadCoordinator) put(ctx context.Context, stage UploadStage, att *Attachment) (domain.BlobKey, error) {
	if att == nil || att.Body == nil {
		return "", nil
	}
	id, err := c.newID()
	if err != nil {
		return "", &UploadError{Stage: stage, Err: fmt.Errorf("generate key: %w", err)}
	}
	key, err := domain.NewBlobKey(fmt.Sprintf("%s_%s_%s", stage, id.String(), baseFileName(att.FileName)))
	if err != nil {
		return "", &UploadError{Stage: stage, Err: err}
	}
	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := c.blobs.Put(ctx, key.String(), att.Body, att.Size, contentType); err != nil {
		return "", &UploadError{Stage: stage, Err: err}
	}
	return key, nil
}

// baseFileName drops any client-side directory part, including Windows separators.
func baseFileName(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "upload"
	}
	return base
}
