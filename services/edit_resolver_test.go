package services

import (
	"errors"
	"testing"

	"github.com/Dosada05/tournament-dashboard/models"
)

func newLoadedStore(t *testing.T) *EntityStore {
	t.Helper()
	store := NewEntityStore()
	store.replace(DefaultDataset())
	if store.HasChanges() {
		t.Fatalf("freshly loaded store reports changes")
	}
	return store
}

func mustDescriptor(t *testing.T, dataType string, ids models.ScopedIDs) models.FieldDescriptor {
	t.Helper()
	fd, err := models.ParseFieldDescriptor(dataType, ids)
	if err != nil {
		t.Fatalf("ParseFieldDescriptor(%q) error = %v", dataType, err)
	}
	return fd
}

func TestApplyPlayerStatValue(t *testing.T) {
	store := newLoadedStore(t)
	r := NewEditResolver(store)

	fd := mustDescriptor(t, "stat-value", models.ScopedIDs{PlayerID: "ITZY_BaiLu", StatID: "score-value"})
	res, err := r.Apply(fd, "12000")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !res.Mutated || !res.RefreshProgressBars {
		t.Errorf("Apply() result = %+v, want mutated with progress bar refresh", res)
	}
	p, _ := store.GetPlayerByID("ITZY_BaiLu")
	if p.Stats.AverageScore != 12000 {
		t.Errorf("AverageScore = %d, want 12000", p.Stats.AverageScore)
	}
	if !store.HasChanges() {
		t.Errorf("store should be dirty after an edit")
	}

	if _, err := r.Apply(fd, "abc"); err != nil {
		t.Fatalf("Apply(abc) error = %v", err)
	}
	p, _ = store.GetPlayerByID("ITZY_BaiLu")
	if p.Stats.AverageScore != 0 {
		t.Errorf("unparseable score = %d, want 0", p.Stats.AverageScore)
	}
}

func TestApplyMatchStatValueRecomputesPercentage(t *testing.T) {
	store := newLoadedStore(t)
	r := NewEditResolver(store)

	fd := mustDescriptor(t, "team1-stat-value-2", models.ScopedIDs{})
	if _, err := r.Apply(fd, "60秒"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	stat := store.CurrentMatch().Team1.Stats[2]
	if stat.Value != "60秒" || stat.Percentage != 50 {
		t.Errorf("stat = %+v, want value 60秒 at 50%%", stat)
	}

	// No number in the text keeps the previous percentage.
	if _, err := r.Apply(fd, "未知"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	stat = store.CurrentMatch().Team1.Stats[2]
	if stat.Value != "未知" || stat.Percentage != 50 {
		t.Errorf("stat = %+v, want value 未知 at 50%%", stat)
	}
}

func TestApplyMatchScoreFallsBackToZero(t *testing.T) {
	store := newLoadedStore(t)
	r := NewEditResolver(store)

	fd := mustDescriptor(t, "team2-score", models.ScopedIDs{})
	if _, err := r.Apply(fd, "—"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := store.CurrentMatch().Team2.Score; got != 0 {
		t.Errorf("Team2.Score = %d, want 0", got)
	}
}

func TestApplyCharacterUpdatesGlyph(t *testing.T) {
	store := newLoadedStore(t)
	r := NewEditResolver(store)

	fd := mustDescriptor(t, "team2-character-0", models.ScopedIDs{})
	res, err := r.Apply(fd, "杰克")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !res.RefreshAvatars {
		t.Errorf("character edit should ask for avatar refresh")
	}
	ch := store.CurrentMatch().Team2.Characters[0]
	if ch.FullName != "杰克" || ch.FirstChar != "杰" {
		t.Errorf("character = %+v", ch)
	}
}

func TestApplyBracketScore(t *testing.T) {
	store := newLoadedStore(t)
	r := NewEditResolver(store)
	fd := mustDescriptor(t, "match-team1-score", models.ScopedIDs{MatchID: "match1"})

	score := func() *int {
		b, _ := store.GetBracketByID("mainland_a")
		return b.Rounds[0].Matches[0].Team1.Score
	}

	if _, err := r.Apply(fd, "3"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if s := score(); s == nil || *s != 3 {
		t.Errorf("score = %v, want 3", s)
	}

	if _, err := r.Apply(fd, "0"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if s := score(); s == nil || *s != 0 {
		t.Errorf("score = %v, want 0", s)
	}

	if _, err := r.Apply(fd, "待定"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if s := score(); s != nil {
		t.Errorf("score = %d, want nil", *s)
	}
}

func TestApplyMemberNicknameAndRole(t *testing.T) {
	store := newLoadedStore(t)
	r := NewEditResolver(store)

	if _, err := r.Apply(mustDescriptor(t, "member-nickname", models.ScopedIDs{MemberID: "MRC_XC"}), "程程"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := r.Apply(mustDescriptor(t, "member-role", models.ScopedIDs{MemberID: "MRC_XC"}), "求生者"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	team, _ := store.GetTeamByID("mrc")
	m := team.MemberByID("MRC_XC")
	if m == nil || m.Nickname != "程程" || m.Role != models.RoleSurvivor {
		t.Errorf("member = %+v", m)
	}
}

func TestApplyDisplayOnlyKindsLeaveStoreClean(t *testing.T) {
	store := newLoadedStore(t)
	r := NewEditResolver(store)

	for _, fd := range []models.FieldDescriptor{
		mustDescriptor(t, "member-id", models.ScopedIDs{MemberID: "ITZY_Fox"}),
		mustDescriptor(t, "stat-name", models.ScopedIDs{PlayerID: "ITZY_Fox", StatID: "score-value"}),
	} {
		res, err := r.Apply(fd, "anything")
		if err != nil {
			t.Fatalf("Apply(%s) error = %v", fd.Kind, err)
		}
		if res.Mutated {
			t.Errorf("Apply(%s) mutated the store", fd.Kind)
		}
	}
	if store.HasChanges() {
		t.Errorf("display-only edits marked the store dirty")
	}
	if team, _ := store.GetTeamByID("itzy"); team.MemberByID("ITZY_Fox") == nil {
		t.Errorf("member id changed")
	}
}

func TestApplyMissingTargets(t *testing.T) {
	store := newLoadedStore(t)
	r := NewEditResolver(store)

	tests := []struct {
		dataType string
		ids      models.ScopedIDs
		want     error
	}{
		{"team-name", models.ScopedIDs{TeamID: "ghost"}, ErrTeamNotFound},
		{"player-name", models.ScopedIDs{PlayerID: "ghost"}, ErrPlayerNotFound},
		{"member-nickname", models.ScopedIDs{MemberID: "ghost"}, ErrMemberNotFound},
		{"bracket-title", models.ScopedIDs{BracketID: "ghost"}, ErrBracketNotFound},
		{"round-title", models.ScopedIDs{BracketID: "mainland_a", RoundIndex: models.IntPtr(9)}, ErrRoundNotFound},
		{"match-team1-name", models.ScopedIDs{MatchID: "ghost"}, ErrMatchNotFound},
		{"stat-value", models.ScopedIDs{PlayerID: "ITZY_Fox", StatID: "luck-value"}, ErrStatNotFound},
		{"team1-stat-value-9", models.ScopedIDs{}, ErrStatNotFound},
	}
	for _, tt := range tests {
		_, err := r.Apply(mustDescriptor(t, tt.dataType, tt.ids), "x")
		if !errors.Is(err, tt.want) {
			t.Errorf("Apply(%s) error = %v, want %v", tt.dataType, err, tt.want)
		}
	}
	if store.HasChanges() {
		t.Errorf("failed edits marked the store dirty")
	}
}
