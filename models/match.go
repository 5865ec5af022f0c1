package models

// CurrentMatch is the singleton featured match.
type CurrentMatch struct {
	Title string    `json:"title"`
	Team1 MatchTeam `json:"team1"`
	Team2 MatchTeam `json:"team2"`
}

// MatchTeam is one side of the featured match.
type MatchTeam struct {
	Name       string      `json:"name"`
	Score      int         `json:"score"`
	Stats      []Stat      `json:"stats"`
	Characters []Character `json:"characters"`
}

// Stat keeps the raw display value; Percentage is always derived from it.
type Stat struct {
	Name       string  `json:"name"`
	Value      string  `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Character is a picked game character. FirstChar is the first glyph of
// FullName and is used as the avatar glyph.
type Character struct {
	Name      string `json:"name,omitempty"`
	FirstChar string `json:"firstChar"`
	FullName  string `json:"fullName"`
	Role      Role   `json:"role,omitempty"`
}

// Side returns team1 for 1 and team2 for 2, nil otherwise.
func (m *CurrentMatch) Side(n int) *MatchTeam {
	switch n {
	case 1:
		return &m.Team1
	case 2:
		return &m.Team2
	}
	return nil
}

func (m CurrentMatch) Clone() CurrentMatch {
	c := m
	c.Team1 = m.Team1.clone()
	c.Team2 = m.Team2.clone()
	return c
}

func (t MatchTeam) clone() MatchTeam {
	c := t
	if t.Stats != nil {
		c.Stats = append([]Stat(nil), t.Stats...)
	}
	if t.Characters != nil {
		c.Characters = append([]Character(nil), t.Characters...)
	}
	return c
}
