package services

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/Dosada05/tournament-dashboard/models"
)

// Built-in content written to an empty document store on first run, and
// used in memory when loading fails.

func DefaultDataset() models.Dataset {
	return models.Dataset{
		CompetitionInfo: DefaultCompetitionInfo(),
		CurrentMatch:    DefaultCurrentMatch(),
		Teams:           DefaultTeams(),
		Players:         DefaultPlayers(),
		Brackets:        DefaultBrackets(),
	}
}

func DefaultCompetitionInfo() models.CompetitionInfo {
	return models.CompetitionInfo{
		Title:     "东华杯",
		Subtitle:  "第五人格电竞赛事",
		PrizePool: "¥10,000",
		Teams:     "8支战队",
		Location:  "东莞市东华中学",
	}
}

func DefaultCurrentMatch() models.CurrentMatch {
	character := func(name string) models.Character {
		return models.Character{Name: name, FirstChar: firstGlyph(name), FullName: name}
	}
	return models.CurrentMatch{
		Title: "半决赛 - 灵梦战队 vs 幻象战队",
		Team1: models.MatchTeam{
			Name:  "灵梦战队",
			Score: 2,
			Stats: []models.Stat{
				{Name: "密码机解码", Value: "4/5", Percentage: 80},
				{Name: "救援成功率", Value: "67%", Percentage: 67},
				{Name: "平均牵制时间", Value: "98秒", Percentage: 75},
			},
			Characters: []models.Character{
				character("前锋"),
				character("医生"),
				character("机械师"),
				character("佣兵"),
			},
		},
		Team2: models.MatchTeam{
			Name:  "幻象战队",
			Score: 1,
			Stats: []models.Stat{
				{Name: "击倒次数", Value: "10", Percentage: 90},
				{Name: "破坏板子数", Value: "15", Percentage: 85},
				{Name: "首抓击倒用时", Value: "60秒", Percentage: 70},
			},
			Characters: []models.Character{
				{Name: "红蝶", FirstChar: "红", FullName: "红蝶", Role: models.RoleHunter},
			},
		},
	}
}

func DefaultTeams() []models.Team {
	teams := []models.Team{
		{
			ID:   "itzy",
			Name: "ITZY",
			Logo: "itzy-logo.png",
			Members: []models.Member{
				{ID: "ITZY_BaiLu", Nickname: "白露", Role: models.RoleHunter},
				{ID: "ITZY_Fox", Nickname: "Fox", Role: models.RoleSurvivor},
				{ID: "ITZY_zyan", Nickname: "zyan", Role: models.RoleSurvivor},
				{ID: "ITZY_Clover", Nickname: "Clover", Role: models.RoleSurvivor},
				{ID: "ITZY_Dahai", Nickname: "Dahai", Role: models.RoleSurvivor},
				{ID: "ITZY_Member6", Nickname: "队员6", Role: models.RoleSurvivor},
				{ID: "ITZY_Member7", Nickname: "队员7", Role: models.RoleCoach},
			},
		},
		{
			ID:   "mrc",
			Name: "MRC",
			Logo: "mrc-logo.png",
			Members: []models.Member{
				{ID: "MRC_XiaoD", Nickname: "小迪", Role: models.RoleSurvivor},
				{ID: "MRC_Nanako", Nickname: "奈奈", Role: models.RoleSurvivor},
				{ID: "MRC_HuaC", Nickname: "花辞", Role: models.RoleSurvivor},
				{ID: "MRC_Loveleft", Nickname: "余情", Role: models.RoleSurvivor},
				{ID: "MRC_XC", Nickname: "小程", Role: models.RoleHunter},
				{ID: "MRC_ALi", Nickname: "阿乐", Role: models.RoleHunter},
				{ID: "MRC_HengH", Nickname: "哼哼", Role: models.RoleCoach},
			},
		},
	}

	// Placeholder rosters for teams 3..10.
	for n := 3; n <= 10; n++ {
		prefix := fmt.Sprintf("Team%d", n)
		members := make([]models.Member, 0, 7)
		for m := 1; m <= 7; m++ {
			role := models.RoleSurvivor
			switch m {
			case 1, 6:
				role = models.RoleHunter
			case 7:
				role = models.RoleCoach
			}
			members = append(members, models.Member{
				ID:       fmt.Sprintf("%s_Member%d", prefix, m),
				Nickname: fmt.Sprintf("队员%d", m),
				Role:     role,
			})
		}
		teams = append(teams, models.Team{
			ID:      fmt.Sprintf("team%d", n),
			Name:    fmt.Sprintf("战队%d", n),
			Logo:    "default-team-logo.png",
			Members: members,
		})
	}
	return teams
}

func DefaultPlayers() []models.Player {
	players := []models.Player{
		{
			ID: "ITZY_BaiLu", Name: "白露", Team: "ITZY", Role: models.RoleHunter, Avatar: "bailu.jpg",
			Stats: models.PlayerStats{
				AverageScore: 11460, Rank: 3, CatchRate: 36,
				AveragePersons: 2.86, AverageChairTime: 8.57, AverageHitPersons: 2.0,
			},
		},
		{
			ID: "ITZY_Fox", Name: "Fox", Team: "ITZY", Role: models.RoleSurvivor, Avatar: "fox.jpg",
			Stats: models.PlayerStats{AverageScore: 7033, DecodeSpeed: 92, ControlTime: 75.2, RescuePersons: 0.86},
		},
		{
			ID: "ITZY_zyan", Name: "zyan", Team: "ITZY", Role: models.RoleSurvivor, Avatar: "zyan.jpg",
			Stats: models.PlayerStats{AverageScore: 7075, DecodeSpeed: 157, ControlTime: 60.1, RescuePersons: 1.14},
		},
		{
			ID: "ITZY_Clover", Name: "Clover", Team: "ITZY", Role: models.RoleSurvivor, Avatar: "clover.jpg",
			Stats: models.PlayerStats{AverageScore: 6927, DecodeSpeed: 148, ControlTime: 57.9, RescuePersons: 0.79},
		},
		{
			ID: "ITZY_Dahai", Name: "Dahai", Team: "ITZY", Role: models.RoleSurvivor, Avatar: "dahai.jpg",
			Stats: models.PlayerStats{AverageScore: 7767, DecodeSpeed: 166, ControlTime: 57.4, RescuePersons: 0.64},
		},
	}

	// Template players. Fixed seed so every first run seeds the same numbers.
	rng := rand.New(rand.NewPCG(2024, 5))
	for i := 6; i <= 56; i++ {
		prefix, teamName := templateTeam(i)
		role := models.RoleSurvivor
		if i%4 == 0 {
			role = models.RoleHunter
		}

		var stats models.PlayerStats
		if role == models.RoleHunter {
			stats = models.PlayerStats{
				AverageScore:      8000 + rng.IntN(4000),
				Rank:              rng.IntN(10) + 1,
				CatchRate:         rng.IntN(50) + 20,
				AveragePersons:    roundTo(rng.Float64()*3+1, 2),
				AverageChairTime:  roundTo(rng.Float64()*10+5, 2),
				AverageHitPersons: roundTo(rng.Float64()*3+1, 1),
			}
		} else {
			stats = models.PlayerStats{
				AverageScore:  5000 + rng.IntN(3000),
				DecodeSpeed:   rng.IntN(100) + 80,
				ControlTime:   roundTo(rng.Float64()*60+30, 1),
				RescuePersons: roundTo(rng.Float64()*1.5+0.5, 2),
			}
		}

		players = append(players, models.Player{
			ID:     fmt.Sprintf("%s_Player%d", prefix, i),
			Name:   fmt.Sprintf("选手%d", i),
			Team:   teamName,
			Role:   role,
			Avatar: "default-avatar.png",
			Stats:  stats,
		})
	}
	return players
}

func templateTeam(i int) (prefix, name string) {
	switch {
	case i <= 5:
		return "ITZY", "ITZY"
	case i <= 12:
		return "MRC", "MRC"
	case i <= 54:
		n := 3 + (i-13)/7
		return fmt.Sprintf("Team%d", n), fmt.Sprintf("战队%d", n)
	default:
		return "Team9", "战队9"
	}
}

func DefaultBrackets() []models.Bracket {
	side := func(name string) models.MatchSide {
		return models.MatchSide{Name: models.StringPtr(name)}
	}
	match := func(id, team1, team2 string) models.Match {
		return models.Match{ID: id, Team1: side(team1), Team2: side(team2)}
	}
	return []models.Bracket{
		{
			ID:   "mainland_a",
			Name: "大陆赛区A组",
			Rounds: []models.Round{
				{Name: "第一轮", Matches: []models.Match{
					match("match1", "ITZY", "FPX.ZQ"),
					match("match2", "DOUS", "LYMN"),
					match("match3", "Free", "Meow"),
					match("match4", "Tul", "WBG"),
				}},
				{Name: "半决赛第一轮", Matches: []models.Match{
					match("match5", "ITZY", "DOUS"),
					match("match6", "Meow", "WBG"),
				}},
				{Name: "胜者组决赛", Matches: []models.Match{
					match("match7", "DOUS", "Meow"),
				}},
				{Name: "冠军", Matches: []models.Match{
					{ID: "match8", Team1: side("DOUS")},
				}},
			},
		},
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
