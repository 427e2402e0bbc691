package valuation

import (
	"github.com/sirupsen/logrus"

	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
	"github.com/derekschultz/lol-dfs-optimizer/pkg/logger"
)

// Engine is the lineup valuation engine. It is stateless apart from its
// configuration tables and is safe for concurrent use; a single Value call
// touches only its inputs and the config.
type Engine struct {
	cfg    Config
	logger *logrus.Entry
}

// NewEngine creates a valuation engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: logger.WithComponent("valuation_engine"),
	}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// normalizeContest fills the documented defaults for missing contest
// fields: entry fee 5, field size 1000, prize pool at an implicit 15% rake.
func (e *Engine) normalizeContest(contest types.Contest) types.Contest {
	if contest.EntryFee <= 0 {
		contest.EntryFee = e.cfg.DefaultEntryFee
	}
	if contest.FieldSize <= 0 {
		contest.FieldSize = e.cfg.DefaultFieldSize
	}
	if contest.PrizePool <= 0 {
		contest.PrizePool = float64(contest.FieldSize) * contest.EntryFee * (1 - e.cfg.DefaultRake)
	}
	return contest
}

// Factors runs the five factor scorers.
func (e *Engine) Factors(lineup types.Lineup, hist *types.HistoricalData) types.FactorScores {
	return types.FactorScores{
		Projection:  e.ProjectionScore(lineup),
		Leverage:    e.LeverageScore(lineup),
		Correlation: e.CorrelationScore(lineup),
		Historical:  e.HistoricalScore(lineup, hist),
		Ceiling:     e.CeilingScore(lineup),
	}
}

// Strength is the weighted composite of the factor scores, clamped to
// [0, 100]. The additive base compresses middling lineups into a
// discriminable mid-band. The historical term is only applied when a
// historical sidecar is present, matching how the factor was originally
// tuned; data-absent runs have a correspondingly smaller dynamic range.
func (e *Engine) Strength(factors types.FactorScores, hasHistory bool) float64 {
	w := e.cfg.Weights
	strength := w.Base +
		w.Projection*factors.Projection +
		w.Leverage*factors.Leverage +
		w.Correlation*factors.Correlation +
		w.Ceiling*factors.Ceiling
	if hasHistory {
		strength += w.Historical * factors.Historical
	}
	return clamp(strength, 0, 100)
}

// Value runs the full valuation pipeline:
// factors -> strength -> finish distribution -> expected value -> ROI.
func (e *Engine) Value(lineup types.Lineup, contest types.Contest, hist *types.HistoricalData) types.Valuation {
	contest = e.normalizeContest(contest)
	contestType := ClassifyContest(contest)

	factors := e.Factors(lineup, hist)
	strength := e.Strength(factors, hist != nil)
	dist := e.ProjectFinish(strength, contest, contestType)
	ev := e.ExpectedValue(dist, contest, contestType)

	valuation := types.Valuation{
		ROI:                ROI(ev, contest.EntryFee),
		ExpectedValue:      ev,
		FinishDistribution: dist,
		LineupStrength:     strength,
		Confidence:         Confidence(hist),
		Breakdown:          BuildBreakdown(dist, contest.EntryFee),
		ContestType:        contestType,
		Factors:            factors,
	}

	e.logger.WithFields(logrus.Fields{
		"lineup_id":    lineup.ID,
		"contest_type": contestType,
		"strength":     strength,
		"roi":          valuation.ROI,
		"ev":           ev,
	}).Debug("Valued lineup")

	return valuation
}
