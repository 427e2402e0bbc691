package optimizer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
	"github.com/derekschultz/lol-dfs-optimizer/internal/valuation"
)

// optimizerPool builds a four-team pool with one player per role per team,
// two matches, salaries sized so full lineups fit under the default cap.
func optimizerPool() []types.Player {
	teams := []struct {
		code string
		opp  string
		base float64
	}{
		{"T1", "GEN", 90},
		{"GEN", "T1", 82},
		{"DRX", "KT", 74},
		{"KT", "DRX", 66},
	}
	roles := []struct {
		pos    string
		offset float64
		salary int
	}{
		{types.PositionMid, 8, 8200},
		{types.PositionADC, 5, 7800},
		{types.PositionJungle, 0, 7000},
		{types.PositionTop, -10, 6400},
		{types.PositionSupport, -20, 5200},
	}

	pool := make([]types.Player, 0, len(teams)*len(roles))
	for _, team := range teams {
		for _, role := range roles {
			pool = append(pool, types.Player{
				ID:              fmt.Sprintf("%s-%s", team.code, role.pos),
				Name:            fmt.Sprintf("%s %s", team.code, role.pos),
				Team:            team.code,
				Opponent:        "vs " + team.opp,
				Position:        role.pos,
				ProjectedPoints: team.base + role.offset,
				Ownership:       12,
				Salary:          role.salary,
			})
		}
	}
	return pool
}

func testContest() types.Contest {
	return types.Contest{Name: "LoL $50K Shotcaller", EntryFee: 5, FieldSize: 5000, MaxEntries: 150}
}

func TestWorker_Optimize(t *testing.T) {
	engine := valuation.NewEngine(valuation.DefaultConfig())
	worker := NewWorker(engine, Config{
		NumLineups: 5,
		Candidates: 200,
		Workers:    2,
		RandomSeed: 42,
	})

	result, err := worker.Optimize(context.Background(), optimizerPool(), testContest(), nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Lineups, 5)
	assert.Positive(t, result.Generated)

	seen := make(map[string]bool)
	for _, rl := range result.Lineups {
		lineup := rl.Lineup

		require.NotNil(t, lineup.Captain)
		require.Len(t, lineup.Players, 5)

		roles := make(map[string]bool)
		ids := map[string]bool{lineup.Captain.ID: true}
		for _, p := range lineup.Players {
			require.NotNil(t, p)
			roles[p.Position] = true
			assert.False(t, ids[p.ID], "duplicate player in lineup")
			ids[p.ID] = true
		}
		assert.Len(t, roles, 5, "one player per role")

		assert.LessOrEqual(t, rl.TotalSalary, 50000)
		assert.Equal(t, lineup.TotalSalary(), rl.TotalSalary)

		sig := lineupSignature(lineup)
		assert.False(t, seen[sig], "duplicate lineup in portfolio")
		seen[sig] = true

		assert.GreaterOrEqual(t, rl.NexusScore, 25.0)
		assert.LessOrEqual(t, rl.NexusScore, 65.0)
	}

	for i := 1; i < len(result.Lineups); i++ {
		assert.GreaterOrEqual(t, result.Lineups[i-1].Valuation.ROI, result.Lineups[i].Valuation.ROI,
			"portfolio sorted by ROI")
	}

	assert.Equal(t, 5, result.Exposure.TotalLineups)
	assert.Equal(t, result.Summary.BestROI, result.Lineups[0].Valuation.ROI)
}

func TestWorker_Optimize_Deterministic(t *testing.T) {
	engine := valuation.NewEngine(valuation.DefaultConfig())
	config := Config{NumLineups: 3, Candidates: 100, Workers: 1, RandomSeed: 7}

	first, err := NewWorker(engine, config).Optimize(context.Background(), optimizerPool(), testContest(), nil, nil)
	require.NoError(t, err)
	second, err := NewWorker(engine, config).Optimize(context.Background(), optimizerPool(), testContest(), nil, nil)
	require.NoError(t, err)

	require.Len(t, second.Lineups, len(first.Lineups))
	for i := range first.Lineups {
		assert.Equal(t, lineupSignature(first.Lineups[i].Lineup), lineupSignature(second.Lineups[i].Lineup))
		assert.Equal(t, first.Lineups[i].Valuation.ROI, second.Lineups[i].Valuation.ROI)
	}
}

func TestWorker_Optimize_ExposureCap(t *testing.T) {
	engine := valuation.NewEngine(valuation.DefaultConfig())
	worker := NewWorker(engine, Config{
		NumLineups: 6,
		Candidates: 400,
		Workers:    2,
		RandomSeed: 13,
		Exposure:   ExposureConfig{MaxPlayerExposure: 50},
	})

	result, err := worker.Optimize(context.Background(), optimizerPool(), testContest(), nil, nil)
	require.NoError(t, err)
	require.True(t, len(result.Lineups) > 1, "pool supports multiple lineups under the cap")

	total := len(result.Lineups)
	counts := make(map[string]int)
	for _, rl := range result.Lineups {
		for _, p := range rl.Lineup.AllPlayers() {
			counts[p.ID]++
		}
	}
	for id, count := range counts {
		pct := float64(count) / float64(total) * 100
		assert.LessOrEqualf(t, pct, 50.0+1e-9, "player %s over exposure cap", id)
	}
	assert.Empty(t, result.Exposure.Violations)
}

func TestWorker_Optimize_EmptyPool(t *testing.T) {
	engine := valuation.NewEngine(valuation.DefaultConfig())
	worker := NewWorker(engine, Config{RandomSeed: 1})

	_, err := worker.Optimize(context.Background(), nil, testContest(), nil, nil)
	assert.Error(t, err)
}

func TestWorker_Optimize_MissingRole(t *testing.T) {
	pool := optimizerPool()
	filtered := pool[:0]
	for _, p := range pool {
		if p.Position != types.PositionSupport {
			filtered = append(filtered, p)
		}
	}

	engine := valuation.NewEngine(valuation.DefaultConfig())
	worker := NewWorker(engine, Config{RandomSeed: 1})

	_, err := worker.Optimize(context.Background(), filtered, testContest(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), types.PositionSupport)
}

func TestWorker_Optimize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := valuation.NewEngine(valuation.DefaultConfig())
	worker := NewWorker(engine, Config{RandomSeed: 1})

	_, err := worker.Optimize(ctx, optimizerPool(), testContest(), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorker_ProgressUpdates(t *testing.T) {
	engine := valuation.NewEngine(valuation.DefaultConfig())
	worker := NewWorker(engine, Config{NumLineups: 2, Candidates: 50, Workers: 1, RandomSeed: 3})

	progress := make(chan types.ProgressUpdate, 16)
	_, err := worker.Optimize(context.Background(), optimizerPool(), testContest(), nil, progress)
	require.NoError(t, err)
	close(progress)

	var last float64
	count := 0
	for update := range progress {
		assert.Equal(t, "optimization", update.Type)
		assert.GreaterOrEqual(t, update.Progress, last)
		last = update.Progress
		count++
	}
	assert.Positive(t, count)
	assert.Equal(t, 1.0, last)
}

func TestConfig_Defaults(t *testing.T) {
	config := Config{}.withDefaults()
	assert.Equal(t, 50000, config.SalaryCap)
	assert.Equal(t, 20, config.NumLineups)
	assert.Equal(t, 1000, config.Candidates)
	assert.Equal(t, 4, config.StackSize)
	assert.Equal(t, 1, config.BringBack)
	assert.Equal(t, 4, config.Workers)
}
