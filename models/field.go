package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrUnknownFieldKind = errors.New("unknown field kind")
	ErrMissingScopedID  = errors.New("field descriptor is missing a required id")
	ErrInvalidScopedID  = errors.New("field descriptor has an invalid id")
)

// FieldKind enumerates every editable cell on the dashboard.
type FieldKind int

const (
	FieldUnknown FieldKind = iota

	FieldCompetitionTitle
	FieldCompetitionSubtitle
	FieldPrizePool
	FieldTeamsCount
	FieldLocation

	FieldMatchTitle
	FieldMatchTeamName
	FieldMatchTeamHeader
	FieldMatchTeamScore
	FieldMatchStatName
	FieldMatchStatValue
	FieldMatchCharacter

	FieldTeamName
	FieldMemberID
	FieldMemberNickname
	FieldMemberRole

	FieldPlayerName
	FieldPlayerTeam
	FieldPlayerRole
	FieldPlayerStatName
	FieldPlayerStatValue

	FieldBracketTitle
	FieldRoundTitle
	FieldBracketMatchTeamName
	FieldBracketMatchTeamScore

	fieldKindCount
)

// AllFieldKinds lists every known kind in declaration order.
func AllFieldKinds() []FieldKind {
	kinds := make([]FieldKind, 0, fieldKindCount-1)
	for k := FieldUnknown + 1; k < fieldKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Fixed data-type names. Side/index scoped kinds are matched by pattern.
var fixedFieldKinds = map[string]FieldKind{
	"competition-title":    FieldCompetitionTitle,
	"competition-subtitle": FieldCompetitionSubtitle,
	"prize-pool-value":     FieldPrizePool,
	"teams-value":          FieldTeamsCount,
	"location-value":       FieldLocation,
	"match-title":          FieldMatchTitle,
	"team-name":            FieldTeamName,
	"member-id":            FieldMemberID,
	"member-nickname":      FieldMemberNickname,
	"member-role":          FieldMemberRole,
	"player-name":          FieldPlayerName,
	"player-team":          FieldPlayerTeam,
	"player-role":          FieldPlayerRole,
	"stat-name":            FieldPlayerStatName,
	"stat-value":           FieldPlayerStatValue,
	"bracket-title":        FieldBracketTitle,
	"round-title":          FieldRoundTitle,
}

var (
	matchTeamPattern    = regexp.MustCompile(`^team([12])-(name|header|score)$`)
	matchIndexedPattern = regexp.MustCompile(`^team([12])-(stat-name|stat-value|character)(?:-(\d+))?$`)
	bracketSidePattern  = regexp.MustCompile(`^match-team([12])-(name|score)$`)
)

func (k FieldKind) String() string {
	for name, kind := range fixedFieldKinds {
		if kind == k {
			return name
		}
	}
	switch k {
	case FieldMatchTeamName:
		return "teamN-name"
	case FieldMatchTeamHeader:
		return "teamN-header"
	case FieldMatchTeamScore:
		return "teamN-score"
	case FieldMatchStatName:
		return "teamN-stat-name-i"
	case FieldMatchStatValue:
		return "teamN-stat-value-i"
	case FieldMatchCharacter:
		return "teamN-character-i"
	case FieldBracketMatchTeamName:
		return "match-teamN-name"
	case FieldBracketMatchTeamScore:
		return "match-teamN-score"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// ScopedIDs are the ids that locate an edited cell. They mirror the
// data-*-id attributes of the rendered markup.
type ScopedIDs struct {
	TeamID     string `json:"teamId,omitempty"`
	PlayerID   string `json:"playerId,omitempty"`
	MemberID   string `json:"memberId,omitempty"`
	BracketID  string `json:"bracketId,omitempty"`
	MatchID    string `json:"matchId,omitempty"`
	RoundIndex *int   `json:"roundIndex,omitempty"`
	StatID     string `json:"statId,omitempty"`
	Index      *int   `json:"index,omitempty"`
}

// FieldDescriptor identifies one edited cell. Side is 1 or 2 for
// current-match and bracket-match kinds. Index is the list position for
// current-match stat and character kinds.
type FieldDescriptor struct {
	Kind  FieldKind
	Side  int
	Index int
	ScopedIDs
}

// ParseFieldDescriptor resolves a data-type value plus its scoped ids.
func ParseFieldDescriptor(dataType string, ids ScopedIDs) (FieldDescriptor, error) {
	dataType = strings.TrimSpace(dataType)
	fd := FieldDescriptor{ScopedIDs: ids}

	if kind, ok := fixedFieldKinds[dataType]; ok {
		fd.Kind = kind
		return fd, fd.Validate()
	}

	if m := matchTeamPattern.FindStringSubmatch(dataType); m != nil {
		fd.Side = int(m[1][0] - '0')
		switch m[2] {
		case "name":
			fd.Kind = FieldMatchTeamName
		case "header":
			fd.Kind = FieldMatchTeamHeader
		default:
			fd.Kind = FieldMatchTeamScore
		}
		return fd, nil
	}

	if m := matchIndexedPattern.FindStringSubmatch(dataType); m != nil {
		fd.Side = int(m[1][0] - '0')
		switch m[2] {
		case "stat-name":
			fd.Kind = FieldMatchStatName
		case "stat-value":
			fd.Kind = FieldMatchStatValue
		default:
			fd.Kind = FieldMatchCharacter
		}
		switch {
		case m[3] != "":
			idx, err := strconv.Atoi(m[3])
			if err != nil {
				return fd, fmt.Errorf("%w: index %q", ErrInvalidScopedID, m[3])
			}
			fd.Index = idx
		case ids.Index != nil:
			fd.Index = *ids.Index
		default:
			return fd, fmt.Errorf("%w: index for %s", ErrMissingScopedID, dataType)
		}
		return fd, nil
	}

	if m := bracketSidePattern.FindStringSubmatch(dataType); m != nil {
		fd.Side = int(m[1][0] - '0')
		if m[2] == "name" {
			fd.Kind = FieldBracketMatchTeamName
		} else {
			fd.Kind = FieldBracketMatchTeamScore
		}
		return fd, fd.Validate()
	}

	return fd, fmt.Errorf("%w: %q", ErrUnknownFieldKind, dataType)
}

// FieldDescriptorFromAttributes builds a descriptor from the raw data-*
// attributes of an edited element.
func FieldDescriptorFromAttributes(attrs map[string]string) (FieldDescriptor, error) {
	ids := ScopedIDs{
		TeamID:    attrs["data-team-id"],
		PlayerID:  attrs["data-player-id"],
		MemberID:  attrs["data-member-id"],
		BracketID: attrs["data-bracket-id"],
		MatchID:   attrs["data-match-id"],
		StatID:    attrs["data-stat-id"],
	}
	var err error
	if ids.RoundIndex, err = optionalIndex(attrs, "data-round-index"); err != nil {
		return FieldDescriptor{}, err
	}
	if ids.Index, err = optionalIndex(attrs, "data-index"); err != nil {
		return FieldDescriptor{}, err
	}
	return ParseFieldDescriptor(attrs["data-type"], ids)
}

func optionalIndex(attrs map[string]string, key string) (*int, error) {
	raw, ok := attrs[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidScopedID, key, raw)
	}
	return &n, nil
}

// Validate checks that the ids a kind needs are present.
func (fd FieldDescriptor) Validate() error {
	missing := func(name string) error {
		return fmt.Errorf("%w: %s requires %s", ErrMissingScopedID, fd.Kind, name)
	}
	switch fd.Kind {
	case FieldTeamName:
		if fd.TeamID == "" {
			return missing("teamId")
		}
	case FieldMemberID, FieldMemberNickname, FieldMemberRole:
		if fd.MemberID == "" {
			return missing("memberId")
		}
	case FieldPlayerName, FieldPlayerTeam, FieldPlayerRole:
		if fd.PlayerID == "" {
			return missing("playerId")
		}
	case FieldPlayerStatName, FieldPlayerStatValue:
		if fd.PlayerID == "" {
			return missing("playerId")
		}
		if fd.StatID == "" {
			return missing("statId")
		}
	case FieldBracketTitle:
		if fd.BracketID == "" {
			return missing("bracketId")
		}
	case FieldRoundTitle:
		if fd.BracketID == "" {
			return missing("bracketId")
		}
		if fd.RoundIndex == nil {
			return missing("roundIndex")
		}
	case FieldBracketMatchTeamName, FieldBracketMatchTeamScore:
		if fd.MatchID == "" {
			return missing("matchId")
		}
	case FieldUnknown:
		return ErrUnknownFieldKind
	}
	return nil
}

// RefreshesProgressBars reports whether an edit of this kind changes a
// rendered progress bar width.
func (k FieldKind) RefreshesProgressBars() bool {
	return k == FieldMatchStatValue || k == FieldPlayerStatValue
}

// RefreshesAvatars reports whether an edit of this kind changes a rendered
// character avatar glyph.
func (k FieldKind) RefreshesAvatars() bool {
	return k == FieldMatchCharacter
}

// DisplayOnly kinds are editable on screen but never written to the model.
func (k FieldKind) DisplayOnly() bool {
	return k == FieldMemberID || k == FieldPlayerStatName
}
