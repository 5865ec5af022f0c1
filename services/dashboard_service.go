package services

import (
	"context"
	"math"

	"github.com/Dosada05/tournament-dashboard/models"
)

type DashboardService interface {
	GetDashboard(ctx context.Context) (models.DashboardView, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, teamID string) (models.Team, error)
	ListPlayers(ctx context.Context) ([]models.PlayerView, error)
	GetPlayer(ctx context.Context, playerID string) (models.PlayerView, error)
	ListBrackets(ctx context.Context) ([]models.BracketView, error)
	GetBracket(ctx context.Context, bracketID string) (models.BracketView, error)
}

type dashboardService struct {
	store *EntityStore
}

func NewDashboardService(store *EntityStore) DashboardService {
	return &dashboardService{store: store}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (models.DashboardView, error) {
	if err := ctx.Err(); err != nil {
		return models.DashboardView{}, err
	}
	d := s.store.Snapshot()
	hasChanges := s.store.HasChanges()

	view := models.DashboardView{
		CompetitionInfo: d.CompetitionInfo,
		CurrentMatch:    currentMatchView(d.CurrentMatch),
		Teams:           d.Teams,
		Players:         make([]models.PlayerView, 0, len(d.Players)),
		Brackets:        make([]models.BracketView, 0, len(d.Brackets)),
		HasChanges:      hasChanges,
	}
	if view.Teams == nil {
		view.Teams = []models.Team{}
	}
	for _, p := range d.Players {
		view.Players = append(view.Players, playerView(p))
	}
	for _, b := range d.Brackets {
		view.Brackets = append(view.Brackets, bracketView(b))
	}
	return view, nil
}

func (s *dashboardService) ListTeams(ctx context.Context) ([]models.Team, error) {
	return s.store.Teams(), ctx.Err()
}

func (s *dashboardService) GetTeam(ctx context.Context, teamID string) (models.Team, error) {
	t, ok := s.store.GetTeamByID(teamID)
	if !ok {
		return models.Team{}, ErrTeamNotFound
	}
	return t, ctx.Err()
}

func (s *dashboardService) ListPlayers(ctx context.Context) ([]models.PlayerView, error) {
	players := s.store.Players()
	views := make([]models.PlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, playerView(p))
	}
	return views, ctx.Err()
}

func (s *dashboardService) GetPlayer(ctx context.Context, playerID string) (models.PlayerView, error) {
	p, ok := s.store.GetPlayerByID(playerID)
	if !ok {
		return models.PlayerView{}, ErrPlayerNotFound
	}
	return playerView(p), ctx.Err()
}

func (s *dashboardService) ListBrackets(ctx context.Context) ([]models.BracketView, error) {
	brackets := s.store.Brackets()
	views := make([]models.BracketView, 0, len(brackets))
	for _, b := range brackets {
		views = append(views, bracketView(b))
	}
	return views, ctx.Err()
}

func (s *dashboardService) GetBracket(ctx context.Context, bracketID string) (models.BracketView, error) {
	b, ok := s.store.GetBracketByID(bracketID)
	if !ok {
		return models.BracketView{}, ErrBracketNotFound
	}
	return bracketView(b), ctx.Err()
}

func currentMatchView(m models.CurrentMatch) models.CurrentMatchView {
	return models.CurrentMatchView{
		Title: m.Title,
		Team1: matchTeamView(m.Team1, m.Team1.Score > m.Team2.Score),
		Team2: matchTeamView(m.Team2, m.Team2.Score > m.Team1.Score),
	}
}

func matchTeamView(t models.MatchTeam, winning bool) models.MatchTeamView {
	v := models.MatchTeamView{
		Name:       t.Name,
		Score:      t.Score,
		Winning:    winning,
		Stats:      make([]models.StatView, 0, len(t.Stats)),
		Characters: make([]models.CharacterView, 0, len(t.Characters)),
	}
	for _, st := range t.Stats {
		v.Stats = append(v.Stats, models.StatView{Stat: st, BarWidth: clampPercent(st.Percentage)})
	}
	for _, ch := range t.Characters {
		v.Characters = append(v.Characters, models.CharacterView{Character: ch, AvatarClass: ch.Role.AvatarClass()})
	}
	return v
}

// playerMetric is one stat drawn on a player card, with the value that
// counts as a full bar.
type playerMetric struct {
	statID string
	label  string
	scale  float64
	value  func(models.PlayerStats) float64
}

var hunterMetrics = []playerMetric{
	{"score-value", "平均得分", 15000, func(s models.PlayerStats) float64 { return float64(s.AverageScore) }},
	{"catch-value", "抓人率", 100, func(s models.PlayerStats) float64 { return float64(s.CatchRate) }},
	{"persons-value", "平均淘汰人数", 4, func(s models.PlayerStats) float64 { return s.AveragePersons }},
	{"hit-value", "平均击倒人数", 4, func(s models.PlayerStats) float64 { return s.AverageHitPersons }},
}

var survivorMetrics = []playerMetric{
	{"score-value", "平均得分", 10000, func(s models.PlayerStats) float64 { return float64(s.AverageScore) }},
	{"decode-value", "破译速度", 200, func(s models.PlayerStats) float64 { return float64(s.DecodeSpeed) }},
	{"control-value", "牵制时间", 100, func(s models.PlayerStats) float64 { return s.ControlTime }},
	{"rescue-value", "救人数", 2, func(s models.PlayerStats) float64 { return s.RescuePersons }},
}

func playerView(p models.Player) models.PlayerView {
	metrics := survivorMetrics
	if p.Role.IsHunter() {
		metrics = hunterMetrics
	}

	v := models.PlayerView{
		Player:       p,
		AvatarClass:  p.Role.AvatarClass(),
		Radar:        make([]models.RadarPoint, 0, len(metrics)),
		ProgressBars: make([]models.ProgressBar, 0, len(metrics)),
	}
	for _, m := range metrics {
		raw := m.value(p.Stats)
		ratio := raw / m.scale * 100
		v.Radar = append(v.Radar, models.RadarPoint{Label: m.label, Value: ratio})
		v.ProgressBars = append(v.ProgressBars, models.ProgressBar{
			StatID: m.statID,
			Label:  m.label,
			Value:  raw,
			Width:  clampPercent(ratio),
		})
	}
	return v
}

func bracketView(b models.Bracket) models.BracketView {
	v := models.BracketView{ID: b.ID, Name: b.Name, Rounds: make([]models.RoundView, 0, len(b.Rounds))}
	for _, r := range b.Rounds {
		rv := models.RoundView{Name: r.Name, Matches: make([]models.MatchView, 0, len(r.Matches))}
		for _, m := range r.Matches {
			w := m.Winner()
			rv.Matches = append(rv.Matches, models.MatchView{
				Match:       m,
				Team1Winner: w == models.WinnerTeam1,
				Team2Winner: w == models.WinnerTeam2,
			})
		}
		v.Rounds = append(v.Rounds, rv)
	}
	return v
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(v, 100))
}
