package models

// Team is a roster entry shown on the teams page.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Logo    string   `json:"logo"`
	Members []Member `json:"members"`
}

// Member ids double as the display handle and are expected to be unique
// across all teams.
type Member struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Role     Role   `json:"role"`
}

func (t Team) GetID() string { return t.ID }

func (t Team) Clone() Team {
	c := t
	if t.Members != nil {
		c.Members = append([]Member(nil), t.Members...)
	}
	return c
}

// MemberByID returns a pointer into the member list or nil.
func (t *Team) MemberByID(id string) *Member {
	for i := range t.Members {
		if t.Members[i].ID == id {
			return &t.Members[i]
		}
	}
	return nil
}
