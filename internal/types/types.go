package types

import (
	"strings"
	"time"
)

// Roster positions for the six-slot LoL contest format.
const (
	PositionTop     = "TOP"
	PositionJungle  = "JNG"
	PositionMid     = "MID"
	PositionADC     = "ADC"
	PositionSupport = "SUP"
	PositionTeam    = "TEAM"
	PositionCaptain = "CPT"
)

// ReservedTeamCode is the pseudo-team code carried by TEAM slots. It is
// excluded from every team-count aggregation.
const ReservedTeamCode = "TEAM"

// CaptainMultiplier is applied to the captain slot's projected points.
const CaptainMultiplier = 1.5

// Player represents a single roster slot candidate with its projection data.
// Players are immutable within a valuation pass.
type Player struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Position        string  `json:"position"`
	Team            string  `json:"team"`
	Opponent        string  `json:"opponent,omitempty"`
	ProjectedPoints float64 `json:"projected_points"`
	Ownership       float64 `json:"ownership"`
	Salary          int     `json:"salary"`
}

// OpponentTeam returns the opponent team code with any "vs "/"at " schedule
// prefix stripped.
func (p Player) OpponentTeam() string {
	opp := strings.TrimSpace(p.Opponent)
	lower := strings.ToLower(opp)
	if strings.HasPrefix(lower, "vs ") || strings.HasPrefix(lower, "at ") {
		opp = strings.TrimSpace(opp[3:])
	}
	return opp
}

// IsTeamSlot reports whether the player occupies the TEAM pseudo-position.
func (p Player) IsTeamSlot() bool {
	return p.Position == PositionTeam || p.Team == ReservedTeamCode
}

// Lineup is a captain plus a sequence of regular roster slots. Production
// lineups carry exactly five regular players; partial lineups are valid
// inputs during optimization.
type Lineup struct {
	ID      string    `json:"id,omitempty"`
	Captain *Player   `json:"captain,omitempty"`
	Players []*Player `json:"players"`
}

// AllPlayers returns the captain (when present) followed by the regular
// slots, with nil entries filtered out.
func (l Lineup) AllPlayers() []*Player {
	all := make([]*Player, 0, len(l.Players)+1)
	if l.Captain != nil {
		all = append(all, l.Captain)
	}
	for _, p := range l.Players {
		if p != nil {
			all = append(all, p)
		}
	}
	return all
}

// TotalProjection sums projected points with the captain at 1.5x.
func (l Lineup) TotalProjection() float64 {
	total := 0.0
	if l.Captain != nil {
		total += CaptainMultiplier * l.Captain.ProjectedPoints
	}
	for _, p := range l.Players {
		if p != nil {
			total += p.ProjectedPoints
		}
	}
	return total
}

// AverageOwnership returns the mean ownership across all present slots,
// TEAM slots included. Returns 0 for an empty lineup.
func (l Lineup) AverageOwnership() float64 {
	all := l.AllPlayers()
	if len(all) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range all {
		sum += p.Ownership
	}
	return sum / float64(len(all))
}

// TotalSalary sums the salary of every present slot.
func (l Lineup) TotalSalary() int {
	total := 0
	for _, p := range l.AllPlayers() {
		total += p.Salary
	}
	return total
}

// TeamCounts tallies how many slots each team occupies. TEAM pseudo-slots
// and the reserved "TEAM" code are excluded.
func (l Lineup) TeamCounts() map[string]int {
	counts := make(map[string]int)
	for _, p := range l.AllPlayers() {
		if p.IsTeamSlot() || p.Team == "" {
			continue
		}
		counts[p.Team]++
	}
	return counts
}

// TeamPositions returns the set of positions rostered per team, with the
// same exclusions as TeamCounts. The captain contributes its underlying
// role position.
func (l Lineup) TeamPositions() map[string]map[string]bool {
	positions := make(map[string]map[string]bool)
	for _, p := range l.AllPlayers() {
		if p.IsTeamSlot() || p.Team == "" {
			continue
		}
		if positions[p.Team] == nil {
			positions[p.Team] = make(map[string]bool)
		}
		positions[p.Team][p.Position] = true
	}
	return positions
}

// ContestType classifies how a contest pays out.
type ContestType string

const (
	ContestTypeGPP       ContestType = "gpp"
	ContestTypeCash      ContestType = "cash"
	ContestTypeSatellite ContestType = "satellite"
)

// Contest describes the contest a lineup is entered into. Zero-valued
// fields take the documented defaults during valuation: entry fee 5, field
// size 1000, prize pool 0.85 * fieldSize * entryFee.
type Contest struct {
	Name       string  `json:"name,omitempty"`
	EntryFee   float64 `json:"entry_fee"`
	FieldSize  int     `json:"field_size"`
	PrizePool  float64 `json:"prize_pool"`
	MaxEntries int     `json:"max_entries"`
}

// DefaultHistoryAgeDays is assumed when historical data carries no age.
const DefaultHistoryAgeDays = 999

// PlayerHistory holds per-player historical scalars. RecentForm and
// MatchupScore are treated as >0 gates by the scorers.
type PlayerHistory struct {
	Consistency  float64 `json:"consistency"`
	CeilingRate  float64 `json:"ceiling_rate"`
	RecentForm   float64 `json:"recent_form"`
	MatchupScore float64 `json:"matchup_score"`
}

// HistoricalData is an optional sidecar of past-performance data keyed by
// player ID.
type HistoricalData struct {
	SampleSize int                      `json:"sample_size"`
	DaysOld    int                      `json:"days_old"`
	Players    map[string]PlayerHistory `json:"players"`
}

// AgeDays returns DaysOld, substituting the default when unset.
func (h *HistoricalData) AgeDays() int {
	if h == nil || h.DaysOld <= 0 {
		return DefaultHistoryAgeDays
	}
	return h.DaysOld
}

// FinishDistribution holds the probability of finishing inside each
// percentile bucket plus the cash line. Probabilities are monotone:
// Top1 <= Top5 <= Top10 <= Top20 <= Cash.
type FinishDistribution struct {
	Top1  float64 `json:"top_1"`
	Top5  float64 `json:"top_5"`
	Top10 float64 `json:"top_10"`
	Top20 float64 `json:"top_20"`
	Cash  float64 `json:"cash"`
}

// Breakdown is the named EV decomposition surfaced alongside a valuation.
// Probabilities are reported as percentages, EV components in currency.
type Breakdown struct {
	TopFinishEV          float64 `json:"top_finish_ev"`
	CashEV               float64 `json:"cash_ev"`
	BustProbability      float64 `json:"bust_probability"`
	BreakEvenProbability float64 `json:"break_even_probability"`
	DoublingProbability  float64 `json:"doubling_probability"`
}

// FactorScores holds the five factor-scorer outputs, each in [0, 1].
type FactorScores struct {
	Projection  float64 `json:"projection"`
	Leverage    float64 `json:"leverage"`
	Correlation float64 `json:"correlation"`
	Historical  float64 `json:"historical"`
	Ceiling     float64 `json:"ceiling"`
}

// Valuation is the full output of a lineup valuation pass.
type Valuation struct {
	ROI                float64            `json:"roi"`
	ExpectedValue      float64            `json:"expected_value"`
	FinishDistribution FinishDistribution `json:"finish_distribution"`
	LineupStrength     float64            `json:"lineup_strength"`
	Confidence         float64            `json:"confidence"`
	Breakdown          Breakdown          `json:"breakdown"`
	ContestType        ContestType        `json:"contest_type"`
	Factors            FactorScores       `json:"factors"`
}

// ProgressUpdate is streamed to clients while the optimizer runs.
type ProgressUpdate struct {
	Type        string    `json:"type"`
	Progress    float64   `json:"progress"`
	Message     string    `json:"message"`
	CurrentStep string    `json:"current_step"`
	Timestamp   time.Time `json:"timestamp"`
}

// ErrorResponse is the standard error payload for API endpoints.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}
