package services

import (
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-dashboard/models"
)

// EditResult describes what an applied edit did. The refresh flags ask the
// rendering side to recompute progress bar widths or avatar glyphs.
type EditResult struct {
	Kind                models.FieldKind `json:"-"`
	Field               string           `json:"field"`
	Mutated             bool             `json:"mutated"`
	RefreshProgressBars bool             `json:"refresh_progress_bars"`
	RefreshAvatars      bool             `json:"refresh_avatars"`
}

// EditResolver turns an edited cell into a mutation of the entity store.
type EditResolver struct {
	store *EntityStore
}

func NewEditResolver(store *EntityStore) *EditResolver {
	return &EditResolver{store: store}
}

// Apply writes content into the field fd points at. Display-only kinds are
// accepted without touching the model or the dirty flag.
func (r *EditResolver) Apply(fd models.FieldDescriptor, content string) (EditResult, error) {
	res := EditResult{Kind: fd.Kind, Field: fd.Kind.String()}
	if err := fd.Validate(); err != nil {
		return res, err
	}
	if fd.Kind.DisplayOnly() {
		return res, nil
	}

	err := r.store.Mutate(func(d *models.Dataset) (bool, error) {
		if err := applyField(d, fd, content); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return res, err
	}

	res.Mutated = true
	res.RefreshProgressBars = fd.Kind.RefreshesProgressBars()
	res.RefreshAvatars = fd.Kind.RefreshesAvatars()
	return res, nil
}

func applyField(d *models.Dataset, fd models.FieldDescriptor, content string) error {
	switch fd.Kind {
	case models.FieldCompetitionTitle:
		d.CompetitionInfo.Title = content
	case models.FieldCompetitionSubtitle:
		d.CompetitionInfo.Subtitle = content
	case models.FieldPrizePool:
		d.CompetitionInfo.PrizePool = content
	case models.FieldTeamsCount:
		d.CompetitionInfo.Teams = content
	case models.FieldLocation:
		d.CompetitionInfo.Location = content

	case models.FieldMatchTitle:
		d.CurrentMatch.Title = content
	case models.FieldMatchTeamName, models.FieldMatchTeamHeader:
		side, err := currentMatchSide(d, fd.Side)
		if err != nil {
			return err
		}
		side.Name = content
	case models.FieldMatchTeamScore:
		side, err := currentMatchSide(d, fd.Side)
		if err != nil {
			return err
		}
		score, _ := parseLeadingInt(content)
		side.Score = score
	case models.FieldMatchStatName:
		stat, err := currentMatchStat(d, fd)
		if err != nil {
			return err
		}
		stat.Name = content
	case models.FieldMatchStatValue:
		stat, err := currentMatchStat(d, fd)
		if err != nil {
			return err
		}
		stat.Value = content
		if pct, ok := derivePercentage(stat.Name, content); ok {
			stat.Percentage = pct
		}
	case models.FieldMatchCharacter:
		side, err := currentMatchSide(d, fd.Side)
		if err != nil {
			return err
		}
		if fd.Index < 0 || fd.Index >= len(side.Characters) {
			return fmt.Errorf("%w: team%d character %d", ErrNotFound, fd.Side, fd.Index)
		}
		ch := &side.Characters[fd.Index]
		ch.FullName = content
		ch.FirstChar = firstGlyph(content)

	case models.FieldTeamName:
		team := d.TeamByID(fd.TeamID)
		if team == nil {
			return fmt.Errorf("%w: %s", ErrTeamNotFound, fd.TeamID)
		}
		team.Name = content
	case models.FieldMemberNickname:
		member := d.MemberByID(fd.MemberID)
		if member == nil {
			return fmt.Errorf("%w: %s", ErrMemberNotFound, fd.MemberID)
		}
		member.Nickname = content
	case models.FieldMemberRole:
		member := d.MemberByID(fd.MemberID)
		if member == nil {
			return fmt.Errorf("%w: %s", ErrMemberNotFound, fd.MemberID)
		}
		member.Role = models.Role(content)

	case models.FieldPlayerName, models.FieldPlayerTeam, models.FieldPlayerRole:
		player := d.PlayerByID(fd.PlayerID)
		if player == nil {
			return fmt.Errorf("%w: %s", ErrPlayerNotFound, fd.PlayerID)
		}
		switch fd.Kind {
		case models.FieldPlayerName:
			player.Name = content
		case models.FieldPlayerTeam:
			player.Team = content
		default:
			player.Role = models.Role(content)
		}
	case models.FieldPlayerStatValue:
		player := d.PlayerByID(fd.PlayerID)
		if player == nil {
			return fmt.Errorf("%w: %s", ErrPlayerNotFound, fd.PlayerID)
		}
		return applyPlayerStat(&player.Stats, fd.StatID, content)

	case models.FieldBracketTitle:
		bracket := d.BracketByID(fd.BracketID)
		if bracket == nil {
			return fmt.Errorf("%w: %s", ErrBracketNotFound, fd.BracketID)
		}
		bracket.Name = content
	case models.FieldRoundTitle:
		bracket := d.BracketByID(fd.BracketID)
		if bracket == nil {
			return fmt.Errorf("%w: %s", ErrBracketNotFound, fd.BracketID)
		}
		idx := *fd.RoundIndex
		if idx < 0 || idx >= len(bracket.Rounds) {
			return fmt.Errorf("%w: %s round %d", ErrRoundNotFound, fd.BracketID, idx)
		}
		bracket.Rounds[idx].Name = content
	case models.FieldBracketMatchTeamName, models.FieldBracketMatchTeamScore:
		match := d.MatchByID(fd.MatchID)
		if match == nil {
			return fmt.Errorf("%w: %s", ErrMatchNotFound, fd.MatchID)
		}
		side := match.Side(fd.Side)
		if side == nil {
			return fmt.Errorf("%w: side %d", models.ErrInvalidScopedID, fd.Side)
		}
		if fd.Kind == models.FieldBracketMatchTeamName {
			side.Name = models.StringPtr(content)
			return nil
		}
		// Unparseable bracket scores mean "not decided", unlike the
		// featured match which falls back to 0.
		if score, ok := parseLeadingInt(content); ok {
			side.Score = models.IntPtr(score)
		} else {
			side.Score = nil
		}

	case models.FieldMemberID, models.FieldPlayerStatName:
		// display-only, filtered out by Apply
		return nil
	default:
		return fmt.Errorf("%w: %s", models.ErrUnknownFieldKind, fd.Kind)
	}
	return nil
}

func currentMatchSide(d *models.Dataset, n int) (*models.MatchTeam, error) {
	side := d.CurrentMatch.Side(n)
	if side == nil {
		return nil, fmt.Errorf("%w: side %d", models.ErrInvalidScopedID, n)
	}
	return side, nil
}

func currentMatchStat(d *models.Dataset, fd models.FieldDescriptor) (*models.Stat, error) {
	side, err := currentMatchSide(d, fd.Side)
	if err != nil {
		return nil, err
	}
	if fd.Index < 0 || fd.Index >= len(side.Stats) {
		return nil, fmt.Errorf("%w: team%d stat %d", ErrStatNotFound, fd.Side, fd.Index)
	}
	return &side.Stats[fd.Index], nil
}

// applyPlayerStat picks the target stat from the statID prefix before its
// first dash ("score-value" → averageScore).
func applyPlayerStat(stats *models.PlayerStats, statID, content string) error {
	key, _, _ := strings.Cut(statID, "-")

	intValue := func() int {
		n, _ := parseLeadingInt(content)
		return n
	}
	floatValue := func() float64 {
		f, _ := parseLeadingFloat(content)
		return f
	}

	switch key {
	case "score":
		stats.AverageScore = intValue()
	case "catch":
		stats.CatchRate = intValue()
	case "persons":
		stats.AveragePersons = floatValue()
	case "hit":
		stats.AverageHitPersons = floatValue()
	case "decode":
		stats.DecodeSpeed = intValue()
	case "control":
		stats.ControlTime = floatValue()
	case "rescue":
		stats.RescuePersons = floatValue()
	default:
		return fmt.Errorf("%w: %s", ErrStatNotFound, statID)
	}
	return nil
}
