package services

import (
	"fmt"
	"strings"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/storage"
	"github.com/shopspring/decimal"
)

// trimOptional trims s and maps an empty result to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func roundTo2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func populateUserDetailsFunc(user *models.User, uploader storage.FileUploader) {
	if user == nil {
		return
	}
	user.PasswordHash = ""
	if user.ProfilePictureKey != nil && *user.ProfilePictureKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*user.ProfilePictureKey)
		if url != "" {
			user.ProfilePictureURL = &url
		}
	}
}

func populateFriendPictureURLFunc(f *models.Friendship, uploader storage.FileUploader) {
	if f == nil || uploader == nil || f.FriendProfilePictureKey == nil || *f.FriendProfilePictureKey == "" {
		return
	}
	url := uploader.GetPublicURL(*f.FriendProfilePictureKey)
	if url != "" {
		f.FriendProfilePictureURL = &url
	}
}

func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported image content type: '%s'", contentType)
	}
}
