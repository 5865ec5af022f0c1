package models

// Player is a stat card. Team is the denormalized team display name, not a
// reference to Team.ID.
type Player struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Team   string      `json:"team"`
	Role   Role        `json:"role"`
	Avatar string      `json:"avatar"`
	Stats  PlayerStats `json:"stats"`
}

// PlayerStats is the role-dependent stats bag. Hunters use AverageScore,
// Rank, CatchRate, AveragePersons, AverageChairTime and AverageHitPersons;
// survivors use AverageScore, DecodeSpeed, ControlTime and RescuePersons.
type PlayerStats struct {
	AverageScore      int     `json:"averageScore"`
	Rank              int     `json:"rank,omitempty"`
	CatchRate         int     `json:"catchRate,omitempty"`
	AveragePersons    float64 `json:"averagePersons,omitempty"`
	AverageChairTime  float64 `json:"averageChairTime,omitempty"`
	AverageHitPersons float64 `json:"averageHitPersons,omitempty"`
	DecodeSpeed       int     `json:"decodeSpeed,omitempty"`
	ControlTime       float64 `json:"controlTime,omitempty"`
	RescuePersons     float64 `json:"rescuePersons,omitempty"`
}

func (p Player) GetID() string { return p.ID }

func (p Player) Clone() Player { return p }
