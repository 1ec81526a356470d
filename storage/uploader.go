package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// ProfilePictureKey builds the object key for a user's avatar. The timestamp keeps old
// URLs from being served out of CDN caches after a replacement.
func ProfilePictureKey(userID int, ext string, now time.Time) string {
	return fmt.Sprintf("users/%d/avatar_%d%s", userID, now.UnixNano(), ext)
}
