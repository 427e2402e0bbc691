package valuation

import (
	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
)

// The five factor scorers. Each is pure, reads only the lineup (and the
// optional historical sidecar) and returns a value in [0, 1].

// ProjectionScore maps total lineup projection (captain at 1.5x) through
// the anchor breakpoints onto [0, 1].
func (e *Engine) ProjectionScore(lineup types.Lineup) float64 {
	total := lineup.TotalProjection()
	a := e.cfg.Anchors

	switch {
	case total >= a.Elite:
		return 1.0
	case total >= a.Good:
		return 0.7 + 0.3*(total-a.Good)/(a.Elite-a.Good)
	case total >= a.Average:
		return 0.4 + 0.3*(total-a.Average)/(a.Good-a.Average)
	case total >= a.Poor:
		return 0.4 * (total - a.Poor) / (a.Average - a.Poor)
	default:
		return 0.0
	}
}

// LeverageScore rewards low mean ownership. An empty lineup has no
// ownership average and takes the worst band rather than the sub-5% band.
func (e *Engine) LeverageScore(lineup types.Lineup) float64 {
	if len(lineup.AllPlayers()) == 0 {
		return 0.2
	}
	return ownershipBand(lineup.AverageOwnership(), [4]float64{5, 10, 20, 30})
}

// ownershipBand maps an ownership percentage onto descending leverage
// steps at the given thresholds: 1.0, 0.8, 0.6, 0.4, then 0.2.
func ownershipBand(ownership float64, thresholds [4]float64) float64 {
	steps := [4]float64{1.0, 0.8, 0.6, 0.4}
	for i, t := range thresholds {
		if ownership < t {
			return steps[i]
		}
	}
	return 0.2
}

// gamePair is a pair of opposing teams both represented in the lineup.
type gamePair struct {
	big   int // larger side's slot count
	small int // smaller side's slot count
}

// gamePairs identifies game stacks: for every rostered player whose
// (stripped) opponent code matches a team also present in the lineup, the
// two team counts form a pair. Each matchup is reported once.
func gamePairs(lineup types.Lineup) []gamePair {
	counts := lineup.TeamCounts()
	seen := make(map[string]bool)
	pairs := make([]gamePair, 0)

	for _, p := range lineup.AllPlayers() {
		if p.IsTeamSlot() || p.Team == "" {
			continue
		}
		opp := p.OpponentTeam()
		if opp == "" || counts[opp] == 0 || counts[p.Team] == 0 {
			continue
		}
		key := p.Team + "@" + opp
		if p.Team > opp {
			key = opp + "@" + p.Team
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		a, b := counts[p.Team], counts[opp]
		if a < b {
			a, b = b, a
		}
		pairs = append(pairs, gamePair{big: a, small: b})
	}
	return pairs
}

// CorrelationScore combines stacking, game-stack, position-synergy, and
// captain-correlation sub-scores.
func (e *Engine) CorrelationScore(lineup types.Lineup) float64 {
	counts := lineup.TeamCounts()
	positions := lineup.TeamPositions()
	pairs := gamePairs(lineup)

	score := 0.40*stackingSubScore(counts, positions, pairs) +
		0.30*gameStackSubScore(pairs) +
		0.20*positionSynergySubScore(counts, positions) +
		0.10*captainSubScore(lineup, counts)

	return clamp(score, 0, 1)
}

// stackingSubScore is driven by the largest single-team count.
func stackingSubScore(counts map[string]int, positions map[string]map[string]bool, pairs []gamePair) float64 {
	maxTeam, maxCount := "", 0
	for team, c := range counts {
		if c > maxCount {
			maxTeam, maxCount = team, c
		}
	}

	switch {
	case maxCount >= 4:
		// A 4-stack carrying both MID and ADC is the premium build.
		if positions[maxTeam][types.PositionMid] && positions[maxTeam][types.PositionADC] {
			return 1.0
		}
		return 0.9
	case maxCount == 3:
		if len(pairs) > 0 {
			return 0.8
		}
		return 0.7
	case maxCount == 2:
		return 0.4
	default:
		return 0.2
	}
}

// gameStackSubScore takes the best game stack across all matchups in the
// lineup.
func gameStackSubScore(pairs []gamePair) float64 {
	best := 0.0
	for _, gp := range pairs {
		var v float64
		switch {
		case gp.big == 4 && gp.small >= 2:
			v = 1.0
		case gp.big == 3 && gp.small >= 2:
			v = 0.8
		case gp.big >= 2 && gp.small >= 1:
			v = 0.6
		}
		if v > best {
			best = v
		}
	}
	return best
}

// positionSynergySubScore credits canonical role synergies per team with
// at least two rostered players, averaged over contributing teams.
func positionSynergySubScore(counts map[string]int, positions map[string]map[string]bool) float64 {
	contributing := 0
	sum := 0.0
	for team, c := range counts {
		if c < 2 {
			continue
		}
		contributing++
		pos := positions[team]
		if pos[types.PositionMid] && pos[types.PositionJungle] {
			sum += 0.3
		}
		if pos[types.PositionADC] && pos[types.PositionSupport] {
			sum += 0.3
		}
		if pos[types.PositionTop] && pos[types.PositionJungle] {
			sum += 0.2
		}
		if pos[types.PositionMid] && pos[types.PositionJungle] && pos[types.PositionADC] {
			sum += 0.2
		}
	}
	if contributing == 0 {
		return 0.5
	}
	return clamp(sum/float64(contributing), 0, 1)
}

// captainSubScore rates how well the captain correlates with the rest of
// the lineup.
func captainSubScore(lineup types.Lineup, counts map[string]int) float64 {
	cpt := lineup.Captain
	c := 0
	if cpt != nil {
		c = counts[cpt.Team]
	}

	var score float64
	switch {
	case c >= 3:
		score = 1.0
	case c >= 2:
		score = 0.7
	default:
		score = 0.3
	}
	if cpt != nil && (cpt.Position == types.PositionMid || cpt.Position == types.PositionADC) {
		score += 0.1
	}
	return clamp(score, 0, 1)
}

// HistoricalScore averages per-player history credits over the players
// that have history. Returns the 0.5 neutral when none do.
func (e *Engine) HistoricalScore(lineup types.Lineup, hist *types.HistoricalData) float64 {
	if hist == nil || len(hist.Players) == 0 {
		return 0.5
	}

	withHistory := 0
	sum := 0.0
	for _, p := range lineup.AllPlayers() {
		h, ok := hist.Players[p.ID]
		if !ok {
			continue
		}
		withHistory++
		if h.Consistency > 0.7 {
			sum += 0.2
		}
		if h.CeilingRate > 0.2 {
			sum += 0.3
		}
		if h.RecentForm > 0 {
			sum += 0.3
		}
		if h.MatchupScore > 0 {
			sum += 0.2
		}
	}
	if withHistory == 0 {
		return 0.5
	}
	return clamp(sum/float64(withHistory), 0, 1)
}

// CeilingScore estimates lineup upside from captain leverage, game
// environment, lineup-wide leverage, team concentration, and per-slot
// volatility.
func (e *Engine) CeilingScore(lineup types.Lineup) float64 {
	pairs := gamePairs(lineup)

	score := 0.25*e.captainLeverageSubScore(lineup) +
		0.25*gameEnvironmentSubScore(lineup, pairs) +
		0.20*ownershipBand(lineup.AverageOwnership(), [4]float64{10, 15, 20, 25}) +
		0.20*concentrationSubScore(lineup, pairs) +
		0.10*e.volatilitySubScore(lineup)

	return clamp(score, 0, 1)
}

// captainLeverageSubScore bands captain ownership, with a bonus for
// carry-role captains. No captain is neutral.
func (e *Engine) captainLeverageSubScore(lineup types.Lineup) float64 {
	cpt := lineup.Captain
	if cpt == nil {
		return 0.5
	}
	score := ownershipBand(cpt.Ownership, [4]float64{5, 10, 20, 30})
	if cpt.Position == types.PositionMid || cpt.Position == types.PositionADC {
		score += 0.1
	}
	return clamp(score, 0, 1)
}

func gameEnvironmentSubScore(lineup types.Lineup, pairs []gamePair) float64 {
	score := 0.5

	mids, adcs := 0, 0
	for _, p := range lineup.AllPlayers() {
		switch p.Position {
		case types.PositionMid:
			mids++
		case types.PositionADC:
			adcs++
		}
	}
	if mids >= 2 || adcs >= 2 {
		score += 0.2
	}
	if len(pairs) > 0 {
		score += 0.3
	}
	return clamp(score, 0, 1)
}

// concentrationSubScore rewards lineups built from few teams, with a bonus
// when a single game supplies five or more slots.
func concentrationSubScore(lineup types.Lineup, pairs []gamePair) float64 {
	unique := len(lineup.TeamCounts())

	var score float64
	switch {
	case unique <= 3:
		score = 1.0
	case unique <= 4:
		score = 0.8
	case unique <= 5:
		score = 0.6
	default:
		score = 0.4
	}
	for _, gp := range pairs {
		if gp.big+gp.small >= 5 {
			score += 0.2
			break
		}
	}
	return clamp(score, 0, 1)
}

// volatilitySubScore averages per-slot volatility, boosted for low-owned
// players.
func (e *Engine) volatilitySubScore(lineup types.Lineup) float64 {
	all := lineup.AllPlayers()
	if len(all) == 0 {
		return e.cfg.VolatilityDefault
	}

	sum := 0.0
	for _, p := range all {
		base, ok := e.cfg.VolatilityByPos[p.Position]
		if !ok {
			base = e.cfg.VolatilityDefault
		}
		if p.Ownership < 10 {
			base += 0.2
		}
		sum += clamp(base, 0, 1)
	}
	return sum / float64(len(all))
}
