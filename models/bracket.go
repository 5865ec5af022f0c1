package models

// Bracket is an elimination tree shown as ordered rounds.
type Bracket struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rounds []Round `json:"rounds"`
}

type Round struct {
	Name    string  `json:"name"`
	Matches []Match `json:"matches"`
}

// Match is a bracket pairing. A nil name means TBD, a nil score means the
// result is not decided yet.
type Match struct {
	ID    string    `json:"id"`
	Team1 MatchSide `json:"team1"`
	Team2 MatchSide `json:"team2"`
}

type MatchSide struct {
	Name  *string `json:"name"`
	Score *int    `json:"score"`
}

// MatchWinner identifies the winning side of a bracket match.
type MatchWinner int

const (
	NoWinner MatchWinner = iota
	WinnerTeam1
	WinnerTeam2
)

// Winner compares the two scores. Ties and undecided scores have no winner.
func (m Match) Winner() MatchWinner {
	if m.Team1.Score == nil || m.Team2.Score == nil {
		return NoWinner
	}
	switch {
	case *m.Team1.Score > *m.Team2.Score:
		return WinnerTeam1
	case *m.Team2.Score > *m.Team1.Score:
		return WinnerTeam2
	}
	return NoWinner
}

// Side returns team1 for 1 and team2 for 2, nil otherwise.
func (m *Match) Side(n int) *MatchSide {
	switch n {
	case 1:
		return &m.Team1
	case 2:
		return &m.Team2
	}
	return nil
}

func (b Bracket) GetID() string { return b.ID }

func (b Bracket) Clone() Bracket {
	c := b
	if b.Rounds == nil {
		return c
	}
	c.Rounds = make([]Round, len(b.Rounds))
	for i, r := range b.Rounds {
		c.Rounds[i] = Round{Name: r.Name}
		if r.Matches == nil {
			continue
		}
		c.Rounds[i].Matches = make([]Match, len(r.Matches))
		for j, m := range r.Matches {
			c.Rounds[i].Matches[j] = Match{ID: m.ID, Team1: m.Team1.clone(), Team2: m.Team2.clone()}
		}
	}
	return c
}

func (s MatchSide) clone() MatchSide {
	var c MatchSide
	if s.Name != nil {
		name := *s.Name
		c.Name = &name
	}
	if s.Score != nil {
		score := *s.Score
		c.Score = &score
	}
	return c
}

// StringPtr and IntPtr are shorthands for building match sides.
func StringPtr(s string) *string { return &s }

func IntPtr(n int) *int { return &n }
