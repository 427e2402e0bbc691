package valuation

import (
	"math"

	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
)

// NexusScore is the at-a-glance lineup rating shown in lineup tables. It
// is independent of the full valuation pipeline: raw projection scaled by
// an ownership leverage multiplier plus a stack bonus, clamped to the
// display range.
func (e *Engine) NexusScore(lineup types.Lineup) float64 {
	ownership := math.Max(0.001, lineup.AverageOwnership()/100)
	leverage := clamp(1/ownership, 0.6, 1.5)

	stackBonus := 0.0
	for _, count := range lineup.TeamCounts() {
		if count >= 3 {
			stackBonus += float64(count-2) * 3
		}
	}

	baseScore := lineup.TotalProjection() / 10
	return clamp(baseScore*leverage+stackBonus/2, e.cfg.NexusFloor, e.cfg.NexusCeiling)
}
