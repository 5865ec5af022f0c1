package models

// Avatar CSS classes picked by role.
const (
	AvatarClassHunter   = "hunter-avatar"
	AvatarClassSurvivor = "survivor-avatar"
)

// AvatarClass is hunter-avatar for hunters and survivor-avatar for
// everyone else, coaches included.
func (r Role) AvatarClass() string {
	if r.IsHunter() {
		return AvatarClassHunter
	}
	return AvatarClassSurvivor
}

// DashboardView is the data set plus everything the page derives from it
// for drawing.
type DashboardView struct {
	CompetitionInfo CompetitionInfo  `json:"competitionInfo"`
	CurrentMatch    CurrentMatchView `json:"currentMatch"`
	Teams           []Team           `json:"teams"`
	Players         []PlayerView     `json:"players"`
	Brackets        []BracketView    `json:"brackets"`
	HasChanges      bool             `json:"hasChanges"`
}

type CurrentMatchView struct {
	Title string        `json:"title"`
	Team1 MatchTeamView `json:"team1"`
	Team2 MatchTeamView `json:"team2"`
}

type MatchTeamView struct {
	Name       string          `json:"name"`
	Score      int             `json:"score"`
	Winning    bool            `json:"winning"`
	Stats      []StatView      `json:"stats"`
	Characters []CharacterView `json:"characters"`
}

type StatView struct {
	Stat
	// BarWidth is the percentage clamped to 0..100.
	BarWidth float64 `json:"barWidth"`
}

type CharacterView struct {
	Character
	AvatarClass string `json:"avatarClass"`
}

type PlayerView struct {
	Player
	AvatarClass  string        `json:"avatarClass"`
	Radar        []RadarPoint  `json:"radar"`
	ProgressBars []ProgressBar `json:"progressBars"`
}

// RadarPoint is one axis of a player's radar chart, scaled so the
// reference maximum is 100. Values above the reference are kept.
type RadarPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ProgressBar is one stat row under a player card.
type ProgressBar struct {
	StatID string  `json:"statId"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Width  float64 `json:"width"`
}

type BracketView struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Rounds []RoundView `json:"rounds"`
}

type RoundView struct {
	Name    string      `json:"name"`
	Matches []MatchView `json:"matches"`
}

type MatchView struct {
	Match
	Team1Winner bool `json:"team1Winner"`
	Team2Winner bool `json:"team2Winner"`
}
