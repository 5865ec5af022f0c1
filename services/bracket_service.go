package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-dashboard/brackets"
	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/utils"
)

type GenerateBracketInput struct {
	ID     string   `json:"id,omitempty"`
	Name   string   `json:"name"`
	Format string   `json:"format"`
	Teams  []string `json:"teams"`
	Legs   int      `json:"legs,omitempty"`
}

type BracketService interface {
	GenerateBracket(ctx context.Context, sessionID string, input GenerateBracketInput) (models.Bracket, error)
}

type bracketService struct {
	store    *EntityStore
	gate     EditGate
	notifier Notifier
}

func NewBracketService(store *EntityStore, gate EditGate, notifier Notifier) BracketService {
	if notifier == nil {
		notifier = NopNotifier()
	}
	return &bracketService{store: store, gate: gate, notifier: notifier}
}

// GenerateBracket builds a bracket from an ordered team list and appends it
// to the store.
func (s *bracketService) GenerateBracket(ctx context.Context, sessionID string, input GenerateBracketInput) (models.Bracket, error) {
	if strings.TrimSpace(input.Name) == "" {
		return models.Bracket{}, fmt.Errorf("%w: bracket name is required", ErrValidationFailed)
	}
	gen, err := brackets.Generator(input.Format)
	if err != nil {
		return models.Bracket{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if input.ID == "" {
		input.ID = utils.NewID("bracket")
	}

	bracket, err := gen.GenerateBracket(ctx, brackets.GenerateBracketParams{
		BracketID: input.ID,
		Name:      input.Name,
		Teams:     input.Teams,
		Legs:      input.Legs,
	})
	if err != nil {
		return models.Bracket{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	release, err := s.gate.BeginEdit(sessionID)
	if err != nil {
		return models.Bracket{}, err
	}
	err = s.store.AddBracket(*bracket)
	release()
	if err != nil {
		return models.Bracket{}, err
	}

	s.notifier.Notify(ctx, Notification{
		Event:   EventEditApplied,
		Level:   LevelInfo,
		Message: fmt.Sprintf("%s bracket %q generated", gen.GetName(), bracket.Name),
		Refresh: []string{RefreshAll},
	})
	return *bracket, nil
}
