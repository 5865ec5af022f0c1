package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/storage"
	"github.com/Dosada05/tournament-dashboard/utils"
)

// MaxUploadSize caps logo and avatar files.
const MaxUploadSize = 5 << 20

type UploadInput struct {
	ContentType string
	Body        io.Reader
}

// MediaService stores logos and avatars in object storage and points the
// owning entity at the public URL.
type MediaService interface {
	UploadTeamLogo(ctx context.Context, sessionID, teamID string, input UploadInput) (models.Team, error)
	UploadPlayerAvatar(ctx context.Context, sessionID, playerID string, input UploadInput) (models.Player, error)
}

type mediaService struct {
	store    *EntityStore
	gate     EditGate
	uploader storage.FileUploader
	notifier Notifier
	logger   *slog.Logger
}

// NewMediaService accepts a nil uploader; every upload then fails with
// ErrUploadUnavailable.
func NewMediaService(store *EntityStore, gate EditGate, uploader storage.FileUploader, notifier Notifier, logger *slog.Logger) MediaService {
	if notifier == nil {
		notifier = NopNotifier()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &mediaService{store: store, gate: gate, uploader: uploader, notifier: notifier, logger: logger}
}

func (s *mediaService) UploadTeamLogo(ctx context.Context, sessionID, teamID string, input UploadInput) (models.Team, error) {
	if _, ok := s.store.GetTeamByID(teamID); !ok {
		return models.Team{}, ErrTeamNotFound
	}
	ext, err := s.precheck(input)
	if err != nil {
		return models.Team{}, err
	}

	key := storage.TeamLogoKey(teamID, utils.NewID(""), ext)
	var team models.Team
	err = s.upload(ctx, sessionID, key, input, func(url string) error {
		return s.store.Mutate(func(d *models.Dataset) (bool, error) {
			t := d.TeamByID(teamID)
			if t == nil {
				return false, ErrTeamNotFound
			}
			t.Logo = url
			team = t.Clone()
			return true, nil
		})
	})
	return team, err
}

func (s *mediaService) UploadPlayerAvatar(ctx context.Context, sessionID, playerID string, input UploadInput) (models.Player, error) {
	if _, ok := s.store.GetPlayerByID(playerID); !ok {
		return models.Player{}, ErrPlayerNotFound
	}
	ext, err := s.precheck(input)
	if err != nil {
		return models.Player{}, err
	}

	key := storage.PlayerAvatarKey(playerID, utils.NewID(""), ext)
	var player models.Player
	err = s.upload(ctx, sessionID, key, input, func(url string) error {
		return s.store.Mutate(func(d *models.Dataset) (bool, error) {
			p := d.PlayerByID(playerID)
			if p == nil {
				return false, ErrPlayerNotFound
			}
			p.Avatar = url
			player = *p
			return true, nil
		})
	})
	return player, err
}

func (s *mediaService) precheck(input UploadInput) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadUnavailable
	}
	ext, err := storage.ImageExtension(input.ContentType)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return ext, nil
}

// upload puts the object first and only then mutates the store, so a failed
// upload leaves the data untouched. An object orphaned by a failed mutation
// is removed again.
func (s *mediaService) upload(ctx context.Context, sessionID, key string, input UploadInput, apply func(url string) error) error {
	release, err := s.gate.BeginEdit(sessionID)
	if err != nil {
		return err
	}
	defer release()

	result, err := s.uploader.Upload(ctx, key, input.ContentType, io.LimitReader(input.Body, MaxUploadSize))
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	if err := apply(result.Location); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to remove orphaned upload", slog.String("key", key), slog.Any("error", delErr))
		}
		return err
	}

	s.logger.Info("media uploaded", slog.String("key", key), slog.String("etag", result.ETag))
	s.notifier.Notify(ctx, Notification{
		Event:   EventEditApplied,
		Level:   LevelInfo,
		Message: "image updated",
		Refresh: []string{RefreshAll},
	})
	return nil
}
