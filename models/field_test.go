package models

import (
	"errors"
	"testing"
)

func TestParseFieldDescriptorFixedKinds(t *testing.T) {
	for name, want := range fixedFieldKinds {
		ids := ScopedIDs{
			TeamID: "itzy", PlayerID: "p1", MemberID: "m1", BracketID: "b1",
			MatchID: "match1", StatID: "score-value", RoundIndex: IntPtr(0),
		}
		fd, err := ParseFieldDescriptor(name, ids)
		if err != nil {
			t.Fatalf("ParseFieldDescriptor(%q) error = %v", name, err)
		}
		if fd.Kind != want {
			t.Errorf("ParseFieldDescriptor(%q).Kind = %v, want %v", name, fd.Kind, want)
		}
	}
}

func TestParseFieldDescriptorSideScoped(t *testing.T) {
	tests := []struct {
		dataType string
		ids      ScopedIDs
		kind     FieldKind
		side     int
		index    int
	}{
		{"team1-name", ScopedIDs{}, FieldMatchTeamName, 1, 0},
		{"team2-header", ScopedIDs{}, FieldMatchTeamHeader, 2, 0},
		{"team2-score", ScopedIDs{}, FieldMatchTeamScore, 2, 0},
		{"team1-stat-value-2", ScopedIDs{}, FieldMatchStatValue, 1, 2},
		{"team2-stat-name", ScopedIDs{Index: IntPtr(1)}, FieldMatchStatName, 2, 1},
		{"team1-character-4", ScopedIDs{}, FieldMatchCharacter, 1, 4},
		{"match-team2-score", ScopedIDs{MatchID: "match1"}, FieldBracketMatchTeamScore, 2, 0},
		{"match-team1-name", ScopedIDs{MatchID: "match1"}, FieldBracketMatchTeamName, 1, 0},
	}
	for _, tt := range tests {
		fd, err := ParseFieldDescriptor(tt.dataType, tt.ids)
		if err != nil {
			t.Fatalf("ParseFieldDescriptor(%q) error = %v", tt.dataType, err)
		}
		if fd.Kind != tt.kind || fd.Side != tt.side || fd.Index != tt.index {
			t.Errorf("ParseFieldDescriptor(%q) = kind %v side %d index %d, want %v %d %d",
				tt.dataType, fd.Kind, fd.Side, fd.Index, tt.kind, tt.side, tt.index)
		}
	}
}

func TestParseFieldDescriptorErrors(t *testing.T) {
	tests := []struct {
		dataType string
		ids      ScopedIDs
		want     error
	}{
		{"nonsense", ScopedIDs{}, ErrUnknownFieldKind},
		{"team3-name", ScopedIDs{}, ErrUnknownFieldKind},
		{"team-name", ScopedIDs{}, ErrMissingScopedID},
		{"stat-value", ScopedIDs{PlayerID: "p1"}, ErrMissingScopedID},
		{"round-title", ScopedIDs{BracketID: "b1"}, ErrMissingScopedID},
		{"match-team1-score", ScopedIDs{}, ErrMissingScopedID},
		{"team1-stat-value", ScopedIDs{}, ErrMissingScopedID},
	}
	for _, tt := range tests {
		_, err := ParseFieldDescriptor(tt.dataType, tt.ids)
		if !errors.Is(err, tt.want) {
			t.Errorf("ParseFieldDescriptor(%q) error = %v, want %v", tt.dataType, err, tt.want)
		}
	}
}

func TestFieldDescriptorFromAttributes(t *testing.T) {
	fd, err := FieldDescriptorFromAttributes(map[string]string{
		"data-type":        "round-title",
		"data-bracket-id":  "mainland_a",
		"data-round-index": "2",
	})
	if err != nil {
		t.Fatalf("FieldDescriptorFromAttributes() error = %v", err)
	}
	if fd.Kind != FieldRoundTitle || fd.BracketID != "mainland_a" || fd.RoundIndex == nil || *fd.RoundIndex != 2 {
		t.Fatalf("FieldDescriptorFromAttributes() = %+v", fd)
	}

	_, err = FieldDescriptorFromAttributes(map[string]string{
		"data-type":        "round-title",
		"data-bracket-id":  "mainland_a",
		"data-round-index": "first",
	})
	if !errors.Is(err, ErrInvalidScopedID) {
		t.Fatalf("non-numeric round index error = %v, want %v", err, ErrInvalidScopedID)
	}
}

func TestAllFieldKindsAreNamed(t *testing.T) {
	kinds := AllFieldKinds()
	if len(kinds) != int(fieldKindCount)-1 {
		t.Fatalf("len(AllFieldKinds()) = %d, want %d", len(kinds), int(fieldKindCount)-1)
	}
	seen := make(map[string]bool)
	for _, k := range kinds {
		name := k.String()
		if seen[name] {
			t.Errorf("duplicate kind name %q", name)
		}
		seen[name] = true
	}
}

func TestMatchWinner(t *testing.T) {
	tests := []struct {
		name  string
		match Match
		want  MatchWinner
	}{
		{"undecided", Match{Team1: MatchSide{Score: IntPtr(3)}}, NoWinner},
		{"tie", Match{Team1: MatchSide{Score: IntPtr(1)}, Team2: MatchSide{Score: IntPtr(1)}}, NoWinner},
		{"team1", Match{Team1: MatchSide{Score: IntPtr(3)}, Team2: MatchSide{Score: IntPtr(0)}}, WinnerTeam1},
		{"team2", Match{Team1: MatchSide{Score: IntPtr(0)}, Team2: MatchSide{Score: IntPtr(2)}}, WinnerTeam2},
	}
	for _, tt := range tests {
		if got := tt.match.Winner(); got != tt.want {
			t.Errorf("%s: Winner() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDatasetCloneIsDeep(t *testing.T) {
	d := Dataset{
		Teams: []Team{{ID: "t1", Members: []Member{{ID: "m1", Nickname: "a"}}}},
		Brackets: []Bracket{{ID: "b1", Rounds: []Round{{Matches: []Match{
			{ID: "x", Team1: MatchSide{Name: StringPtr("A"), Score: IntPtr(1)}},
		}}}}},
	}
	c := d.Clone()
	c.Teams[0].Members[0].Nickname = "changed"
	*c.Brackets[0].Rounds[0].Matches[0].Team1.Score = 9

	if d.Teams[0].Members[0].Nickname != "a" {
		t.Errorf("clone shares member slice")
	}
	if *d.Brackets[0].Rounds[0].Matches[0].Team1.Score != 1 {
		t.Errorf("clone shares match score pointer")
	}
}

func TestRoleAvatarClass(t *testing.T) {
	if got := RoleHunter.AvatarClass(); got != AvatarClassHunter {
		t.Errorf("hunter AvatarClass() = %q, want %q", got, AvatarClassHunter)
	}
	for _, r := range []Role{RoleSurvivor, RoleCoach, Role("")} {
		if got := r.AvatarClass(); got != AvatarClassSurvivor {
			t.Errorf("%q AvatarClass() = %q, want %q", r, got, AvatarClassSurvivor)
		}
	}
}
