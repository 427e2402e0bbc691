package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
)

func stackPool() []types.Player {
	mk := func(id, team, opp, pos string, proj float64) types.Player {
		return types.Player{
			ID:              id,
			Name:            id,
			Team:            team,
			Opponent:        "vs " + opp,
			Position:        pos,
			ProjectedPoints: proj,
			Salary:          7000,
		}
	}
	return []types.Player{
		mk("t1-top", "T1", "GEN", types.PositionTop, 60),
		mk("t1-jng", "T1", "GEN", types.PositionJungle, 70),
		mk("t1-mid", "T1", "GEN", types.PositionMid, 95),
		mk("t1-adc", "T1", "GEN", types.PositionADC, 90),
		mk("t1-sup", "T1", "GEN", types.PositionSupport, 55),
		mk("gen-top", "GEN", "T1", types.PositionTop, 58),
		mk("gen-jng", "GEN", "T1", types.PositionJungle, 65),
		mk("gen-mid", "GEN", "T1", types.PositionMid, 88),
		mk("gen-adc", "GEN", "T1", types.PositionADC, 82),
		mk("gen-sup", "GEN", "T1", types.PositionSupport, 50),
		// Alternate T1 mid, weaker; only the best per role should stack.
		mk("t1-mid2", "T1", "GEN", types.PositionMid, 40),
		// Team slot and teamless entries are not stackable.
		{ID: "t1-team", Team: "T1", Position: types.PositionTeam, ProjectedPoints: 30},
		{ID: "stray", Position: types.PositionMid, ProjectedPoints: 99},
	}
}

func TestStackBuilder_BuildTeamStacks(t *testing.T) {
	sb := NewStackBuilder(stackPool())
	stacks := sb.BuildTeamStacks(4)

	require.Len(t, stacks, 2)
	assert.Equal(t, "T1", stacks[0].Team, "stronger stack sorts first")
	assert.Equal(t, TeamStack, stacks[0].Type)

	roles := make([]string, 0, 4)
	for _, p := range stacks[0].Players {
		roles = append(roles, p.Position)
	}
	assert.Equal(t, []string{
		types.PositionMid, types.PositionADC, types.PositionJungle, types.PositionSupport,
	}, roles, "premium roles fill before TOP")
	assert.InDelta(t, 95+90+70+55, stacks[0].ProjectedPoints, 1e-9)

	for _, s := range stacks {
		for _, p := range s.Players {
			assert.NotEqual(t, "t1-mid2", p.ID, "only the best player per role stacks")
			assert.False(t, p.IsTeamSlot())
		}
	}
}

func TestStackBuilder_BuildTeamStacks_IncompleteTeam(t *testing.T) {
	pool := []types.Player{
		{ID: "a", Team: "T1", Position: types.PositionMid, ProjectedPoints: 90},
		{ID: "b", Team: "T1", Position: types.PositionADC, ProjectedPoints: 80},
	}
	sb := NewStackBuilder(pool)
	assert.Empty(t, sb.BuildTeamStacks(4), "teams without enough distinct roles are skipped")
	assert.Len(t, sb.BuildTeamStacks(2), 1)
}

func TestStackBuilder_BuildGameStacks(t *testing.T) {
	sb := NewStackBuilder(stackPool())
	stacks := sb.BuildGameStacks(4, 1)

	require.Len(t, stacks, 2)
	best := stacks[0]
	assert.Equal(t, GameStack, best.Type)
	assert.Equal(t, "T1", best.Team)
	assert.Equal(t, "T1@GEN", best.Game)
	require.Len(t, best.Players, 5)

	bringBack := best.Players[4]
	assert.Equal(t, "GEN", bringBack.Team)
	assert.Equal(t, "gen-mid", bringBack.ID, "highest-projected opponent comes back")
	assert.InDelta(t, 95+90+70+55+88, best.ProjectedPoints, 1e-9)
}

func TestStackBuilder_BuildGameStacks_NoOpponentInPool(t *testing.T) {
	pool := []types.Player{
		{ID: "a", Team: "T1", Opponent: "vs DRX", Position: types.PositionMid, ProjectedPoints: 90},
		{ID: "b", Team: "T1", Opponent: "vs DRX", Position: types.PositionADC, ProjectedPoints: 80},
	}
	sb := NewStackBuilder(pool)
	assert.Empty(t, sb.BuildGameStacks(2, 1), "no bring-back without the opposing side")
}
