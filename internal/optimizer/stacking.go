package optimizer

import (
	"sort"

	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
)

// StackType distinguishes the seed structures the generator builds around.
type StackType string

const (
	TeamStack StackType = "team"
	GameStack StackType = "game"
)

// Stack is a group of correlated players used to seed lineup generation.
type Stack struct {
	Type            StackType      `json:"type"`
	Team            string         `json:"team"`
	Game            string         `json:"game,omitempty"`
	Players         []types.Player `json:"players"`
	ProjectedPoints float64        `json:"projected_points"`
}

// StackBuilder enumerates candidate stacks from a player pool.
type StackBuilder struct {
	byTeam map[string][]types.Player
}

// NewStackBuilder indexes the pool by team. TEAM pseudo-players are not
// stackable and are left out of the index.
func NewStackBuilder(pool []types.Player) *StackBuilder {
	byTeam := make(map[string][]types.Player)
	for _, p := range pool {
		if p.IsTeamSlot() || p.Team == "" {
			continue
		}
		byTeam[p.Team] = append(byTeam[p.Team], p)
	}
	// Highest projection first within each team, one player per role.
	for team := range byTeam {
		players := byTeam[team]
		sort.Slice(players, func(i, j int) bool {
			return players[i].ProjectedPoints > players[j].ProjectedPoints
		})
		byTeam[team] = players
	}
	return &StackBuilder{byTeam: byTeam}
}

// BuildTeamStacks returns up to one stack of the given size per team,
// built from each team's best player per role, best teams first. MID and
// ADC are taken first so stacks carry the premium role pairing.
func (sb *StackBuilder) BuildTeamStacks(size int) []Stack {
	rolePriority := []string{
		types.PositionMid,
		types.PositionADC,
		types.PositionJungle,
		types.PositionSupport,
		types.PositionTop,
	}

	stacks := make([]Stack, 0, len(sb.byTeam))
	for team, players := range sb.byTeam {
		best := make(map[string]types.Player)
		for _, p := range players {
			if _, ok := best[p.Position]; !ok {
				best[p.Position] = p
			}
		}

		stack := Stack{Type: TeamStack, Team: team}
		for _, role := range rolePriority {
			if len(stack.Players) == size {
				break
			}
			if p, ok := best[role]; ok {
				stack.Players = append(stack.Players, p)
				stack.ProjectedPoints += p.ProjectedPoints
			}
		}
		if len(stack.Players) == size {
			stacks = append(stacks, stack)
		}
	}

	sort.Slice(stacks, func(i, j int) bool {
		return stacks[i].ProjectedPoints > stacks[j].ProjectedPoints
	})
	return stacks
}

// BuildGameStacks pairs each team stack with a bring-back from the
// opposing side of its match, when the pool covers both sides.
func (sb *StackBuilder) BuildGameStacks(primarySize, bringBack int) []Stack {
	teamStacks := sb.BuildTeamStacks(primarySize)
	stacks := make([]Stack, 0, len(teamStacks))

	for _, ts := range teamStacks {
		opp := ts.Players[0].OpponentTeam()
		oppPlayers, ok := sb.byTeam[opp]
		if !ok || len(oppPlayers) < bringBack {
			continue
		}

		gs := Stack{
			Type:            GameStack,
			Team:            ts.Team,
			Game:            ts.Team + "@" + opp,
			Players:         append([]types.Player{}, ts.Players...),
			ProjectedPoints: ts.ProjectedPoints,
		}
		added := 0
		usedRoles := make(map[string]bool)
		for _, p := range oppPlayers {
			if added == bringBack {
				break
			}
			if usedRoles[p.Position] {
				continue
			}
			usedRoles[p.Position] = true
			gs.Players = append(gs.Players, p)
			gs.ProjectedPoints += p.ProjectedPoints
			added++
		}
		if added == bringBack {
			stacks = append(stacks, gs)
		}
	}

	sort.Slice(stacks, func(i, j int) bool {
		return stacks[i].ProjectedPoints > stacks[j].ProjectedPoints
	})
	return stacks
}
