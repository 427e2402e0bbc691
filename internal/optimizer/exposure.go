package optimizer

import (
	"fmt"
	"sort"

	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
)

// ExposureConfig caps how concentrated the generated portfolio may get.
// Percentages are of total lineups. Zero caps mean uncapped; an explicit
// per-player override of zero bans the player outright.
type ExposureConfig struct {
	MaxPlayerExposure float64            `json:"max_player_exposure"`
	MaxTeamExposure   float64            `json:"max_team_exposure"`
	PlayerOverrides   map[string]float64 `json:"player_overrides,omitempty"`
}

// ExposureManager tracks portfolio-level exposure across accepted lineups.
type ExposureManager struct {
	config       ExposureConfig
	playerCount  map[string]int
	teamCount    map[string]int
	totalLineups int
}

// NewExposureManager creates an empty exposure tracker.
func NewExposureManager(config ExposureConfig) *ExposureManager {
	return &ExposureManager{
		config:      config,
		playerCount: make(map[string]int),
		teamCount:   make(map[string]int),
	}
}

func (em *ExposureManager) maxPlayerExposure(playerID string) float64 {
	if override, ok := em.config.PlayerOverrides[playerID]; ok {
		return override
	}
	if em.config.MaxPlayerExposure > 0 {
		return em.config.MaxPlayerExposure
	}
	return 100
}

func (em *ExposureManager) maxTeamExposure() float64 {
	if em.config.MaxTeamExposure > 0 {
		return em.config.MaxTeamExposure
	}
	return 100
}

// CanAccept reports whether accepting the lineup keeps every player and
// team under its exposure cap. The first lineup is accepted unless it
// carries a banned player.
func (em *ExposureManager) CanAccept(lineup types.Lineup) bool {
	for _, p := range lineup.AllPlayers() {
		if em.maxPlayerExposure(p.ID) <= 0 {
			return false
		}
	}
	if em.totalLineups == 0 {
		return true
	}

	next := float64(em.totalLineups + 1)
	for _, p := range lineup.AllPlayers() {
		exposure := float64(em.playerCount[p.ID]+1) / next * 100
		if exposure > em.maxPlayerExposure(p.ID) {
			return false
		}
	}
	for team := range lineup.TeamCounts() {
		exposure := float64(em.teamCount[team]+1) / next * 100
		if exposure > em.maxTeamExposure() {
			return false
		}
	}
	return true
}

// Record registers an accepted lineup's players and teams.
func (em *ExposureManager) Record(lineup types.Lineup) {
	for _, p := range lineup.AllPlayers() {
		em.playerCount[p.ID]++
	}
	for team := range lineup.TeamCounts() {
		em.teamCount[team]++
	}
	em.totalLineups++
}

// PlayerExposure is the realized exposure of one player across the
// portfolio.
type PlayerExposure struct {
	PlayerID   string  `json:"player_id"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TeamExposure is the realized exposure of one team across the portfolio.
type TeamExposure struct {
	Team       string  `json:"team"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ExposureReport summarizes realized portfolio exposure.
type ExposureReport struct {
	PlayerExposures []PlayerExposure `json:"player_exposures"`
	TeamExposures   []TeamExposure   `json:"team_exposures"`
	TotalLineups    int              `json:"total_lineups"`
	Violations      []string         `json:"violations"`
}

// Report builds the exposure summary for the accepted portfolio, flagging
// any caps that ended up violated.
func (em *ExposureManager) Report() ExposureReport {
	report := ExposureReport{TotalLineups: em.totalLineups}
	if em.totalLineups == 0 {
		return report
	}

	for playerID, count := range em.playerCount {
		pct := float64(count) / float64(em.totalLineups) * 100
		report.PlayerExposures = append(report.PlayerExposures, PlayerExposure{
			PlayerID:   playerID,
			Count:      count,
			Percentage: pct,
		})
		if pct > em.maxPlayerExposure(playerID) {
			report.Violations = append(report.Violations,
				fmt.Sprintf("player %s at %.1f%% exceeds %.1f%% cap", playerID, pct, em.maxPlayerExposure(playerID)))
		}
	}
	for team, count := range em.teamCount {
		pct := float64(count) / float64(em.totalLineups) * 100
		report.TeamExposures = append(report.TeamExposures, TeamExposure{
			Team:       team,
			Count:      count,
			Percentage: pct,
		})
		if pct > em.maxTeamExposure() {
			report.Violations = append(report.Violations,
				fmt.Sprintf("team %s at %.1f%% exceeds %.1f%% cap", team, pct, em.maxTeamExposure()))
		}
	}

	sort.Slice(report.PlayerExposures, func(i, j int) bool {
		return report.PlayerExposures[i].Percentage > report.PlayerExposures[j].Percentage
	})
	sort.Slice(report.TeamExposures, func(i, j int) bool {
		return report.TeamExposures[i].Percentage > report.TeamExposures[j].Percentage
	})
	return report
}
