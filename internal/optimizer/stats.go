package optimizer

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// BatchSummary aggregates valuation metrics across a selected portfolio.
type BatchSummary struct {
	Lineups        int     `json:"lineups"`
	MeanROI        float64 `json:"mean_roi"`
	StdDevROI      float64 `json:"stddev_roi"`
	BestROI        float64 `json:"best_roi"`
	WorstROI       float64 `json:"worst_roi"`
	MeanStrength   float64 `json:"mean_strength"`
	MedianStrength float64 `json:"median_strength"`
	MeanNexus      float64 `json:"mean_nexus"`
}

// Summarize computes portfolio-level statistics over ranked lineups.
func Summarize(lineups []RankedLineup) BatchSummary {
	if len(lineups) == 0 {
		return BatchSummary{}
	}

	rois := make([]float64, len(lineups))
	strengths := make([]float64, len(lineups))
	nexus := make([]float64, len(lineups))
	for i, rl := range lineups {
		rois[i] = rl.Valuation.ROI
		strengths[i] = rl.Valuation.LineupStrength
		nexus[i] = rl.NexusScore
	}

	summary := BatchSummary{
		Lineups:   len(lineups),
		MeanROI:   stat.Mean(rois, nil),
		MeanNexus: stat.Mean(nexus, nil),
		BestROI:   rois[0],
		WorstROI:  rois[0],
	}
	if len(rois) > 1 {
		summary.StdDevROI = stat.StdDev(rois, nil)
	}
	for _, roi := range rois {
		if roi > summary.BestROI {
			summary.BestROI = roi
		}
		if roi < summary.WorstROI {
			summary.WorstROI = roi
		}
	}

	summary.MeanStrength = stat.Mean(strengths, nil)
	sort.Float64s(strengths)
	summary.MedianStrength = stat.Quantile(0.5, stat.Empirical, strengths, nil)

	return summary
}
