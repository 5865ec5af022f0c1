package models

// Dataset is everything the dashboard displays. Lookups return pointers
// into the dataset so callers holding the owning lock can mutate in place.
type Dataset struct {
	CompetitionInfo CompetitionInfo `json:"competitionInfo"`
	CurrentMatch    CurrentMatch    `json:"currentMatch"`
	Teams           []Team          `json:"teams"`
	Players         []Player        `json:"players"`
	Brackets        []Bracket       `json:"brackets"`
}

type identifiable interface {
	GetID() string
}

// IndexByID returns the position of the first item with the given id or -1.
func IndexByID[T identifiable](items []T, id string) int {
	for i := range items {
		if items[i].GetID() == id {
			return i
		}
	}
	return -1
}

func (d *Dataset) TeamByID(id string) *Team {
	if i := IndexByID(d.Teams, id); i >= 0 {
		return &d.Teams[i]
	}
	return nil
}

func (d *Dataset) PlayerByID(id string) *Player {
	if i := IndexByID(d.Players, id); i >= 0 {
		return &d.Players[i]
	}
	return nil
}

func (d *Dataset) BracketByID(id string) *Bracket {
	if i := IndexByID(d.Brackets, id); i >= 0 {
		return &d.Brackets[i]
	}
	return nil
}

// MemberByID scans every team's roster. First match wins.
func (d *Dataset) MemberByID(id string) *Member {
	for i := range d.Teams {
		if m := d.Teams[i].MemberByID(id); m != nil {
			return m
		}
	}
	return nil
}

// MatchByID scans every bracket, round and match. First match wins.
func (d *Dataset) MatchByID(id string) *Match {
	for b := range d.Brackets {
		rounds := d.Brackets[b].Rounds
		for r := range rounds {
			for m := range rounds[r].Matches {
				if rounds[r].Matches[m].ID == id {
					return &rounds[r].Matches[m]
				}
			}
		}
	}
	return nil
}

// Clone returns a deep copy that shares no slices with d.
func (d Dataset) Clone() Dataset {
	c := Dataset{
		CompetitionInfo: d.CompetitionInfo,
		CurrentMatch:    d.CurrentMatch.Clone(),
	}
	if d.Teams != nil {
		c.Teams = make([]Team, len(d.Teams))
		for i, t := range d.Teams {
			c.Teams[i] = t.Clone()
		}
	}
	if d.Players != nil {
		c.Players = make([]Player, len(d.Players))
		for i, p := range d.Players {
			c.Players[i] = p.Clone()
		}
	}
	if d.Brackets != nil {
		c.Brackets = make([]Bracket, len(d.Brackets))
		for i, b := range d.Brackets {
			c.Brackets[i] = b.Clone()
		}
	}
	return c
}
