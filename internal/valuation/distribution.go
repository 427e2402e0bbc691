package valuation

import (
	"math"

	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
)

// ExpectedPercentile maps a strength score onto an expected finish
// percentile through the configured piecewise-linear curve. Lower is a
// better finish.
func (e *Engine) ExpectedPercentile(strength float64) float64 {
	strength = clamp(strength, 0, 100)
	for _, seg := range e.cfg.PercentileCurve {
		if strength >= seg.StrengthLo {
			frac := (strength - seg.StrengthLo) / (seg.StrengthHi - seg.StrengthLo)
			return seg.PctAtLo + frac*(seg.PctAtHi-seg.PctAtLo)
		}
	}
	// Curve covers [0, 100]; unreachable with a well-formed config.
	return 90
}

func logistic(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// topBucketProbability is the capped logistic probability of finishing
// inside the top targetPct of the field.
func (e *Engine) topBucketProbability(targetPct, expectedPct float64, cap float64) float64 {
	p := logistic(e.cfg.LogisticSlope * (targetPct - expectedPct) / e.cfg.LogisticScale)
	return math.Min(p, cap)
}

// bucketCaps returns the quality-adjusted probability ceilings for the
// given field size. Small fields are effectively uncapped.
func (e *Engine) bucketCaps(fieldSize int, expectedPct float64) types.FinishDistribution {
	q := clamp((50-expectedPct)/30, 0.7, 1.5)

	switch {
	case fieldSize > e.cfg.LargeFieldMin:
		c := e.cfg.LargeFieldCaps
		return types.FinishDistribution{Top1: c.Top1 * q, Top5: c.Top5 * q, Top10: c.Top10 * q, Top20: c.Top20 * q}
	case fieldSize > e.cfg.MediumFieldMin:
		c := e.cfg.MediumFieldCaps
		return types.FinishDistribution{Top1: c.Top1 * q, Top5: c.Top5 * q, Top10: c.Top10 * q, Top20: c.Top20 * q}
	default:
		f := e.cfg.SmallFieldCap
		return types.FinishDistribution{Top1: f, Top5: f, Top10: f, Top20: f}
	}
}

// ProjectFinish computes the full finish distribution for a lineup
// strength in the given contest. Bucket probabilities are computed
// independently from the same logistic, then clamped into a monotone
// chain so the EV integration never sees a negative slice.
func (e *Engine) ProjectFinish(strength float64, contest types.Contest, contestType types.ContestType) types.FinishDistribution {
	expected := e.ExpectedPercentile(strength)
	caps := e.bucketCaps(contest.FieldSize, expected)

	dist := types.FinishDistribution{
		Top1:  e.topBucketProbability(1, expected, caps.Top1),
		Top5:  e.topBucketProbability(5, expected, caps.Top5),
		Top10: e.topBucketProbability(10, expected, caps.Top10),
		Top20: e.topBucketProbability(20, expected, caps.Top20),
	}
	dist.Cash = e.cashProbability(expected, dist.Top20, contestType)

	return enforceMonotone(dist)
}

// cashProbability estimates the probability of clearing the cash line.
func (e *Engine) cashProbability(expectedPct, top20 float64, contestType types.ContestType) float64 {
	switch contestType {
	case types.ContestTypeCash:
		switch {
		case expectedPct < 30:
			return 0.75
		case expectedPct < 45:
			return 0.60
		case expectedPct < 55:
			return 0.45
		case expectedPct < 65:
			return 0.30
		default:
			return 0.15
		}
	case types.ContestTypeSatellite:
		return top20
	default:
		// GPP cash lines sit near the top 20%. Decent lineups get a
		// floor so min-cash EV never vanishes entirely.
		p := top20
		if expectedPct <= 50 && p < 0.10 {
			p = 0.10
		}
		return p
	}
}

// enforceMonotone clamps the bucket chain so each nested bucket is at
// least as probable as the one inside it.
func enforceMonotone(d types.FinishDistribution) types.FinishDistribution {
	d.Top5 = math.Max(d.Top5, d.Top1)
	d.Top10 = math.Max(d.Top10, d.Top5)
	d.Top20 = math.Max(d.Top20, d.Top10)
	d.Cash = math.Max(d.Cash, d.Top20)
	return d
}
