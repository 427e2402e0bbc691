package valuation

import (
	"math"
	"strings"

	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
)

// ClassifyContest resolves a contest to its payout style. Name sniffing
// happens only here, at the ingestion boundary; everything downstream works
// with the tagged type.
func ClassifyContest(contest types.Contest) types.ContestType {
	name := strings.ToLower(contest.Name)

	if strings.Contains(name, "satellite") || strings.Contains(name, "qualifier") {
		return types.ContestTypeSatellite
	}
	if strings.Contains(name, "double") || strings.Contains(name, "50/50") || strings.Contains(name, "cash") {
		return types.ContestTypeCash
	}
	// Multi-entry and high-fee contests are tournaments, as is anything
	// the name rules don't catch.
	return types.ContestTypeGPP
}

// payoutTiers picks the field-size-appropriate GPP payout structure.
func (e *Engine) payoutTiers(fieldSize int) PayoutTiers {
	switch {
	case fieldSize >= e.cfg.LargePayoutMin:
		return e.cfg.LargePayout
	case fieldSize >= e.cfg.MediumPayoutMin:
		return e.cfg.MediumPayout
	default:
		return e.cfg.SmallPayout
	}
}

// ExpectedValue integrates the finish distribution against the contest's
// payout structure. The distribution must already be monotone.
func (e *Engine) ExpectedValue(dist types.FinishDistribution, contest types.Contest, contestType types.ContestType) float64 {
	switch contestType {
	case types.ContestTypeCash:
		return dist.Cash * 1.8 * contest.EntryFee
	case types.ContestTypeSatellite:
		return dist.Top20 * 10 * contest.EntryFee
	}

	tiers := e.payoutTiers(contest.FieldSize)
	fieldSize := float64(contest.FieldSize)

	top1Prize := contest.PrizePool * tiers.First
	avgTop5 := contest.PrizePool * 0.08 / (fieldSize * 0.04)
	avgTop10 := contest.PrizePool * 0.06 / (fieldSize * 0.05)
	minCash := contest.EntryFee * 1.8

	return dist.Top1*top1Prize +
		(dist.Top5-dist.Top1)*avgTop5 +
		(dist.Top10-dist.Top5)*avgTop10 +
		(dist.Cash-dist.Top10)*minCash
}

// ROI is the expected return as a percentage of the entry fee, rounded to
// two decimals.
func ROI(expectedValue, entryFee float64) float64 {
	return round2((expectedValue - entryFee) / entryFee * 100)
}

// Confidence scores how much weight to give the valuation based on the
// historical sample behind it. Capped at 0.9; 0.5 without data.
func Confidence(hist *types.HistoricalData) float64 {
	if hist == nil {
		return 0.5
	}

	confidence := 0.5
	if hist.SampleSize > 1000 {
		confidence += 0.2
	} else if hist.SampleSize > 100 {
		confidence += 0.1
	}

	age := hist.AgeDays()
	if age < 7 {
		confidence += 0.2
	} else if age < 30 {
		confidence += 0.1
	}
	return math.Min(confidence, 0.9)
}

// BuildBreakdown produces the named EV decomposition surfaced to users.
func BuildBreakdown(dist types.FinishDistribution, entryFee float64) types.Breakdown {
	return types.Breakdown{
		TopFinishEV:          dist.Top10 * entryFee * 5,
		CashEV:               dist.Cash * entryFee * 0.8,
		BustProbability:      (1 - dist.Cash) * 100,
		BreakEvenProbability: dist.Cash * 100,
		DoublingProbability:  dist.Top10 * 100,
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
