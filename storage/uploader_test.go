package storage

import (
	"errors"
	"net/url"
	"testing"
)

func TestImageExtension(t *testing.T) {
	tests := map[string]string{
		"image/png":                 ".png",
		"image/jpeg":                ".jpg",
		"IMAGE/WEBP":                ".webp",
		"image/gif; charset=binary": ".gif",
	}
	for ct, want := range tests {
		got, err := ImageExtension(ct)
		if err != nil || got != want {
			t.Errorf("ImageExtension(%q) = %q, %v; want %q", ct, got, err, want)
		}
	}
	if _, err := ImageExtension("application/pdf"); !errors.Is(err, ErrUnsupportedContentType) {
		t.Errorf("ImageExtension(pdf) error = %v", err)
	}
}

func TestObjectKeys(t *testing.T) {
	if got := TeamLogoKey("itzy", "abc123", ".png"); got != "logos/teams/itzy/abc123.png" {
		t.Errorf("TeamLogoKey() = %q", got)
	}
	if got := PlayerAvatarKey("../ITZY Fox", "x", ".jpg"); got != "avatars/players/___ITZY_Fox/x.jpg" {
		t.Errorf("PlayerAvatarKey() = %q", got)
	}
}

func TestPublicURL(t *testing.T) {
	base, _ := url.Parse("https://cdn.example.com/media/")
	if got := PublicURL(base, "logos/teams/itzy/a.png"); got != "https://cdn.example.com/media/logos/teams/itzy/a.png" {
		t.Errorf("PublicURL() = %q", got)
	}
	if got := PublicURL(base, "/avatars/x.jpg"); got != "https://cdn.example.com/media/avatars/x.jpg" {
		t.Errorf("PublicURL() with leading slash = %q", got)
	}
	if got := PublicURL(nil, "a"); got != "" {
		t.Errorf("PublicURL(nil) = %q", got)
	}
}
