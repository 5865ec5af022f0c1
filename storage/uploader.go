package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var ErrUnsupportedContentType = errors.New("unsupported image content type")

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

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageExtension maps an accepted image content type to a file extension.
func ImageExtension(contentType string) (string, error) {
	ct, _, _ := strings.Cut(contentType, ";")
	ext, ok := imageExtensions[strings.TrimSpace(strings.ToLower(ct))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
	return ext, nil
}

// TeamLogoKey is the object key for a team logo, e.g. "logos/teams/itzy/3f9c.png".
func TeamLogoKey(teamID, name, ext string) string {
	return path.Join("logos", "teams", sanitize(teamID), sanitize(name)+ext)
}

// PlayerAvatarKey is the object key for a player avatar.
func PlayerAvatarKey(playerID, name, ext string) string {
	return path.Join("avatars", "players", sanitize(playerID), sanitize(name)+ext)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
