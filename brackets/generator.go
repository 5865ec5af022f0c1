package brackets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-dashboard/models"
)

var (
	ErrNotEnoughTeams   = errors.New("at least two teams are required to generate a bracket")
	ErrDuplicateTeam    = errors.New("team names in a bracket must be unique")
	ErrUnknownGenerator = errors.New("unknown bracket format")
)

type GenerateBracketParams struct {
	BracketID string
	Name      string
	// Teams are seeded in order; blank names are rejected.
	Teams []string
	// Legs is how many times each pair meets in a round robin (1 or 2).
	Legs int
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error)

	GetName() string
}

// Generator picks a generator by format name.
func Generator(format string) (BracketGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "single_elimination", "singleelimination":
		return NewSingleEliminationGenerator(), nil
	case "round_robin", "roundrobin":
		return NewRoundRobinGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, format)
	}
}

func validateTeams(teams []string) ([]string, error) {
	seen := make(map[string]struct{}, len(teams))
	out := make([]string, 0, len(teams))
	for _, t := range teams {
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, errors.New("team name must not be empty")
		}
		if _, dup := seen[t]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTeam, t)
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrNotEnoughTeams, len(out))
	}
	return out, nil
}

// matchID keeps ids unique across brackets so edits can look matches up
// without knowing the bracket.
func matchID(bracketID string, round, order int) string {
	return fmt.Sprintf("%s_r%dm%d", bracketID, round, order)
}
