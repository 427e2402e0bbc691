package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
)

func testPlayer(id, pos, team, opp string, proj, own float64) *types.Player {
	return &types.Player{
		ID:              id,
		Name:            id,
		Position:        pos,
		Team:            team,
		Opponent:        opp,
		ProjectedPoints: proj,
		Ownership:       own,
		Salary:          6000,
	}
}

// gameStackLineup is a 4-stack of T1 (captain MID, with ADC) plus a
// two-player GEN bring-back: total projection 420, all slots at 15% owned.
func gameStackLineup() types.Lineup {
	return types.Lineup{
		Captain: testPlayer("t1-mid", types.PositionMid, "T1", "vs GEN", 60, 15),
		Players: []*types.Player{
			testPlayer("t1-jng", types.PositionJungle, "T1", "vs GEN", 66, 15),
			testPlayer("t1-adc", types.PositionADC, "T1", "vs GEN", 66, 15),
			testPlayer("t1-sup", types.PositionSupport, "T1", "vs GEN", 66, 15),
			testPlayer("gen-top", types.PositionTop, "GEN", "at T1", 66, 15),
			testPlayer("gen-mid", types.PositionMid, "GEN", "at T1", 66, 15),
		},
	}
}

func TestProjectionScore_AnchorBands(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	cases := []struct {
		total float64
		want  float64
	}{
		{300, 0.0},
		{320, 0.0},
		{350, 0.2},
		{380, 0.4},
		{400, 0.55},
		{420, 0.7},
		{435, 0.85},
		{450, 1.0},
		{500, 1.0},
	}
	for _, tc := range cases {
		lineup := types.Lineup{
			Players: []*types.Player{testPlayer("p", types.PositionMid, "T1", "", tc.total, 10)},
		}
		assert.InDelta(t, tc.want, engine.ProjectionScore(lineup), 1e-9, "total projection %.0f", tc.total)
	}
}

func TestLeverageScore_OwnershipBands(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	cases := []struct {
		ownership float64
		want      float64
	}{
		{3, 1.0},
		{5, 0.8},
		{9.9, 0.8},
		{15, 0.6},
		{25, 0.4},
		{40, 0.2},
	}
	for _, tc := range cases {
		lineup := types.Lineup{
			Players: []*types.Player{testPlayer("p", types.PositionMid, "T1", "", 100, tc.ownership)},
		}
		assert.InDelta(t, tc.want, engine.LeverageScore(lineup), 1e-9, "ownership %.1f", tc.ownership)
	}

	assert.InDelta(t, 0.2, engine.LeverageScore(types.Lineup{}), 1e-9, "empty lineup takes the worst band")
}

func TestCorrelationScore_GameStackLineup(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	lineup := gameStackLineup()

	// Stacking: 4-stack with MID+ADC -> 1.0. Game stack: 4v2 -> 1.0.
	// Position synergy: T1 contributes 0.8, GEN 0, averaged -> 0.4.
	// Captain: 4-stack carry captain -> 1.0.
	want := 0.40*1.0 + 0.30*1.0 + 0.20*0.4 + 0.10*1.0
	assert.InDelta(t, want, engine.CorrelationScore(lineup), 1e-9)
}

func TestCorrelationScore_NoStack(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	lineup := types.Lineup{
		Captain: testPlayer("a", types.PositionMid, "T1", "", 60, 5),
		Players: []*types.Player{
			testPlayer("b", types.PositionJungle, "GEN", "", 60, 5),
			testPlayer("c", types.PositionADC, "DK", "", 60, 5),
			testPlayer("d", types.PositionSupport, "KT", "", 60, 5),
			testPlayer("e", types.PositionTop, "HLE", "", 60, 5),
		},
	}

	// Stacking 0.2, no game stack, synergy default 0.5, captain 0.3+0.1.
	want := 0.40*0.2 + 0.30*0 + 0.20*0.5 + 0.10*0.4
	assert.InDelta(t, want, engine.CorrelationScore(lineup), 1e-9)
}

func TestCorrelationScore_ThreeStackPromotedByGameStack(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	threeStack := types.Lineup{
		Captain: testPlayer("a", types.PositionTop, "T1", "", 60, 15),
		Players: []*types.Player{
			testPlayer("b", types.PositionJungle, "T1", "", 60, 15),
			testPlayer("c", types.PositionSupport, "T1", "", 60, 15),
			testPlayer("d", types.PositionADC, "DK", "", 60, 15),
			testPlayer("e", types.PositionMid, "KT", "", 60, 15),
		},
	}
	base := engine.CorrelationScore(threeStack)

	// Same shape, but the DK slot now faces T1.
	withGame := threeStack
	withGame.Players = append([]*types.Player{}, threeStack.Players...)
	withGame.Players[3] = testPlayer("d", types.PositionADC, "DK", "vs T1", 60, 15)

	assert.Greater(t, engine.CorrelationScore(withGame), base)
}

func TestHistoricalScore(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	lineup := gameStackLineup()

	assert.InDelta(t, 0.5, engine.HistoricalScore(lineup, nil), 1e-9, "no sidecar is neutral")

	hist := &types.HistoricalData{
		SampleSize: 500,
		DaysOld:    10,
		Players: map[string]types.PlayerHistory{
			// All four gates hit: 0.2 + 0.3 + 0.3 + 0.2 = 1.0.
			"t1-mid": {Consistency: 0.8, CeilingRate: 0.3, RecentForm: 1, MatchupScore: 1},
			// No gates hit.
			"t1-adc": {Consistency: 0.5, CeilingRate: 0.1, RecentForm: -1, MatchupScore: -2},
		},
	}
	assert.InDelta(t, 0.5, engine.HistoricalScore(lineup, hist), 1e-9, "average over players with history")

	missing := &types.HistoricalData{
		SampleSize: 500,
		Players:    map[string]types.PlayerHistory{"unknown": {Consistency: 1}},
	}
	assert.InDelta(t, 0.5, engine.HistoricalScore(lineup, missing), 1e-9, "no rostered player has history")
}

func TestCeilingScore_GameStackLineup(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Captain leverage 0.6+0.1, game environment 1.0 (two MIDs and a game
	// stack), ownership band 0.6, concentration 1.0+0.2 clamped,
	// volatility mean 3.5/6.
	want := 0.25*0.7 + 0.25*1.0 + 0.20*0.6 + 0.20*1.0 + 0.10*(3.5/6)
	assert.InDelta(t, want, engine.CeilingScore(gameStackLineup()), 1e-9)
}

func TestFactorScores_AllWithinUnitInterval(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	lineups := []types.Lineup{
		{},
		gameStackLineup(),
		{Captain: testPlayer("solo", types.PositionADC, "T1", "", 1000, 99)},
	}
	hist := &types.HistoricalData{
		SampleSize: 2000,
		DaysOld:    3,
		Players: map[string]types.PlayerHistory{
			"solo": {Consistency: 1, CeilingRate: 1, RecentForm: 5, MatchupScore: 5},
		},
	}

	for i, lineup := range lineups {
		factors := engine.Factors(lineup, hist)
		for name, v := range map[string]float64{
			"projection":  factors.Projection,
			"leverage":    factors.Leverage,
			"correlation": factors.Correlation,
			"historical":  factors.Historical,
			"ceiling":     factors.Ceiling,
		} {
			assert.GreaterOrEqual(t, v, 0.0, "lineup %d factor %s", i, name)
			assert.LessOrEqual(t, v, 1.0, "lineup %d factor %s", i, name)
		}
	}
}
