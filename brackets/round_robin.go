package brackets

import (
	"context"

	"github.com/Dosada05/tournament-dashboard/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateBracket pairs every team with every other team once per leg.
// Each leg becomes one round; the second leg swaps sides.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error) {
	teams, err := validateTeams(params.Teams)
	if err != nil {
		return nil, err
	}

	legs := params.Legs
	if legs != 2 {
		legs = 1
	}

	bracket := &models.Bracket{ID: params.BracketID, Name: params.Name}
	for leg := 1; leg <= legs; leg++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		round := models.Round{Name: legName(leg)}
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				home, away := teams[i], teams[j]
				if leg == 2 {
					home, away = away, home
				}
				round.Matches = append(round.Matches, models.Match{
					ID:    matchID(params.BracketID, leg, len(round.Matches)+1),
					Team1: models.MatchSide{Name: models.StringPtr(home)},
					Team2: models.MatchSide{Name: models.StringPtr(away)},
				})
			}
		}
		bracket.Rounds = append(bracket.Rounds, round)
	}
	return bracket, nil
}

func legName(leg int) string {
	if leg == 2 {
		return "第二循环"
	}
	return "第一循环"
}
