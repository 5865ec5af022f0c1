package brackets

import (
	"context"
	"fmt"
	"math"

	"github.com/Dosada05/tournament-dashboard/models"
)

// node is a slot feeding a match: a known team, a bye, or (team == nil)
// the undecided winner of an earlier match.
type node struct {
	team        *string
	byeSentinel bool
}

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateBracket pads the field to a power of two with byes. A team facing
// a bye is moved straight into the next round; sides fed by an undecided
// match stay nil until an admin fills them in. A trailing one-slot round
// holds the champion.
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) (*models.Bracket, error) {
	teams, err := validateTeams(params.Teams)
	if err != nil {
		return nil, err
	}
	n := len(teams)

	numRounds := int(math.Ceil(math.Log2(float64(n))))
	size := 1 << uint(numRounds)

	current := make([]node, size)
	for i := 0; i < size; i++ {
		if i < n {
			current[i] = node{team: models.StringPtr(teams[i])}
		} else {
			current[i] = node{byeSentinel: true}
		}
	}

	bracket := &models.Bracket{ID: params.BracketID, Name: params.Name}
	for r := 1; r <= numRounds; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		round := models.Round{Name: roundName(r, numRounds)}
		next := make([]node, 0, len(current)/2)

		for i := 0; i < len(current); i += 2 {
			a, b := current[i], current[i+1]
			m := models.Match{ID: matchID(params.BracketID, r, len(round.Matches)+1)}

			switch {
			case a.byeSentinel && b.byeSentinel:
				next = append(next, node{byeSentinel: true})
				continue
			case a.byeSentinel:
				m.Team1.Name = b.team
				next = append(next, node{team: b.team})
			case b.byeSentinel:
				m.Team1.Name = a.team
				next = append(next, node{team: a.team})
			default:
				m.Team1.Name = a.team
				m.Team2.Name = b.team
				next = append(next, node{})
			}
			round.Matches = append(round.Matches, m)
		}

		if len(round.Matches) == 0 {
			return nil, fmt.Errorf("internal error: round %d has no matches", r)
		}
		bracket.Rounds = append(bracket.Rounds, round)
		current = next
	}

	champion := models.Match{ID: matchID(params.BracketID, numRounds+1, 1)}
	if len(current) == 1 && current[0].team != nil {
		champion.Team1.Name = current[0].team
	}
	bracket.Rounds = append(bracket.Rounds, models.Round{Name: "冠军", Matches: []models.Match{champion}})

	return bracket, nil
}

func roundName(r, total int) string {
	switch total - r {
	case 0:
		return "决赛"
	case 1:
		return "半决赛"
	default:
		return fmt.Sprintf("第%d轮", r)
	}
}
