package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/utils"
)

// AdminService is whole-entity CRUD on the dashboard collections. Every
// call needs a session in edit mode.
type AdminService interface {
	CreateTeam(ctx context.Context, sessionID string, team models.Team) (models.Team, error)
	ReplaceTeam(ctx context.Context, sessionID string, team models.Team) (models.Team, error)
	DeleteTeam(ctx context.Context, sessionID, teamID string) error

	CreatePlayer(ctx context.Context, sessionID string, player models.Player) (models.Player, error)
	ReplacePlayer(ctx context.Context, sessionID string, player models.Player) (models.Player, error)
	DeletePlayer(ctx context.Context, sessionID, playerID string) error

	CreateBracket(ctx context.Context, sessionID string, bracket models.Bracket) (models.Bracket, error)
	ReplaceBracket(ctx context.Context, sessionID string, bracket models.Bracket) (models.Bracket, error)
	DeleteBracket(ctx context.Context, sessionID, bracketID string) error
}

type adminService struct {
	store    *EntityStore
	gate     EditGate
	notifier Notifier
}

func NewAdminService(store *EntityStore, gate EditGate, notifier Notifier) AdminService {
	if notifier == nil {
		notifier = NopNotifier()
	}
	return &adminService{store: store, gate: gate, notifier: notifier}
}

// mutate runs fn behind the edit gate and announces the change.
func (s *adminService) mutate(ctx context.Context, sessionID, message string, fn func() error) error {
	release, err := s.gate.BeginEdit(sessionID)
	if err != nil {
		return err
	}
	err = fn()
	release()
	if err != nil {
		return err
	}
	s.notifier.Notify(ctx, Notification{
		Event:   EventEditApplied,
		Level:   LevelInfo,
		Message: message,
		Refresh: []string{RefreshAll},
	})
	return nil
}

func (s *adminService) CreateTeam(ctx context.Context, sessionID string, team models.Team) (models.Team, error) {
	if team.ID == "" {
		team.ID = utils.NewID("team")
	}
	if err := validateTeam(team); err != nil {
		return models.Team{}, err
	}
	err := s.mutate(ctx, sessionID, "team created", func() error { return s.store.AddTeam(team) })
	return team, err
}

func (s *adminService) ReplaceTeam(ctx context.Context, sessionID string, team models.Team) (models.Team, error) {
	if err := validateTeam(team); err != nil {
		return models.Team{}, err
	}
	err := s.mutate(ctx, sessionID, "team updated", func() error { return s.store.UpdateTeam(team) })
	return team, err
}

func (s *adminService) DeleteTeam(ctx context.Context, sessionID, teamID string) error {
	return s.mutate(ctx, sessionID, "team deleted", func() error { return s.store.DeleteTeam(teamID) })
}

func (s *adminService) CreatePlayer(ctx context.Context, sessionID string, player models.Player) (models.Player, error) {
	if player.ID == "" {
		player.ID = utils.NewID("player")
	}
	if err := validatePlayer(player); err != nil {
		return models.Player{}, err
	}
	err := s.mutate(ctx, sessionID, "player created", func() error { return s.store.AddPlayer(player) })
	return player, err
}

func (s *adminService) ReplacePlayer(ctx context.Context, sessionID string, player models.Player) (models.Player, error) {
	if err := validatePlayer(player); err != nil {
		return models.Player{}, err
	}
	err := s.mutate(ctx, sessionID, "player updated", func() error { return s.store.UpdatePlayer(player) })
	return player, err
}

func (s *adminService) DeletePlayer(ctx context.Context, sessionID, playerID string) error {
	return s.mutate(ctx, sessionID, "player deleted", func() error { return s.store.DeletePlayer(playerID) })
}

func (s *adminService) CreateBracket(ctx context.Context, sessionID string, bracket models.Bracket) (models.Bracket, error) {
	if bracket.ID == "" {
		bracket.ID = utils.NewID("bracket")
	}
	if err := validateBracket(bracket); err != nil {
		return models.Bracket{}, err
	}
	err := s.mutate(ctx, sessionID, "bracket created", func() error { return s.store.AddBracket(bracket) })
	return bracket, err
}

func (s *adminService) ReplaceBracket(ctx context.Context, sessionID string, bracket models.Bracket) (models.Bracket, error) {
	if err := validateBracket(bracket); err != nil {
		return models.Bracket{}, err
	}
	err := s.mutate(ctx, sessionID, "bracket updated", func() error { return s.store.UpdateBracket(bracket) })
	return bracket, err
}

func (s *adminService) DeleteBracket(ctx context.Context, sessionID, bracketID string) error {
	return s.mutate(ctx, sessionID, "bracket deleted", func() error { return s.store.DeleteBracket(bracketID) })
}

func validateTeam(t models.Team) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: team name is required", ErrValidationFailed)
	}
	seen := make(map[string]struct{}, len(t.Members))
	for _, m := range t.Members {
		if m.ID == "" {
			return fmt.Errorf("%w: member id is required", ErrValidationFailed)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: duplicate member id %s", ErrValidationFailed, m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}

func validatePlayer(p models.Player) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: player name is required", ErrValidationFailed)
	}
	return nil
}

func validateBracket(b models.Bracket) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: bracket name is required", ErrValidationFailed)
	}
	seen := make(map[string]struct{})
	for _, r := range b.Rounds {
		for _, m := range r.Matches {
			if m.ID == "" {
				return fmt.Errorf("%w: match id is required", ErrValidationFailed)
			}
			if _, dup := seen[m.ID]; dup {
				return fmt.Errorf("%w: duplicate match id %s", ErrValidationFailed, m.ID)
			}
			seen[m.ID] = struct{}{}
		}
	}
	return nil
}
