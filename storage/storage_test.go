package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/users/1/a.png", publicURL("https://cdn.example.com", "users/1/a.png"))
	assert.Equal(t, "https://cdn.example.com/media/users/1/a.png", publicURL("https://cdn.example.com/media/", "/users/1/a.png"))
	assert.Empty(t, publicURL("", "users/1/a.png"))
	assert.Empty(t, publicURL("https://cdn.example.com", ""))
}

func TestProfilePictureKey(t *testing.T) {
	now := time.Unix(0, 42)
	assert.Equal(t, "users/7/avatar_42.png", ProfilePictureKey(7, ".png", now))
}

func TestNewCloudflareR2Uploader_RequiresAllFields(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	require.Error(t, err)
}

func TestNewCloudflareR2Uploader_BuildsClient(t *testing.T) {
	u, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{
		AccountID:       "acc",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "avatars",
		PublicBaseURL:   "https://cdn.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/users/1/x.jpg", u.GetPublicURL("users/1/x.jpg"))
}
