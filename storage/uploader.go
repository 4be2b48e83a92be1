package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored object. Location is the public URL that
// gets persisted on the owning record.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader abstracts the object store holding team images. The service
// layer only ever sees this interface; a nil uploader means image features
// are disabled.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Delete is best effort: callers replacing an object should not fail
	// the request when removal of the old one does not go through.
	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
