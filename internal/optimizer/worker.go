package optimizer

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/derekschultz/lol-dfs-optimizer/internal/types"
	"github.com/derekschultz/lol-dfs-optimizer/internal/valuation"
	"github.com/derekschultz/lol-dfs-optimizer/pkg/logger"
)

// RosterRoles are the regular slots the generator fills, captain excluded.
var RosterRoles = []string{
	types.PositionTop,
	types.PositionJungle,
	types.PositionMid,
	types.PositionADC,
	types.PositionSupport,
}

// captainRoles are the positions the generator prefers for the captain
// slot, in order.
var captainRoles = []string{
	types.PositionMid,
	types.PositionADC,
	types.PositionJungle,
}

// Config controls a single optimization run.
type Config struct {
	SalaryCap  int            `json:"salary_cap"`
	NumLineups int            `json:"num_lineups"`
	Candidates int            `json:"candidates"`
	StackSize  int            `json:"stack_size"`
	BringBack  int            `json:"bring_back"`
	Workers    int            `json:"workers"`
	Exposure   ExposureConfig `json:"exposure"`
	RandomSeed int64          `json:"random_seed,omitempty"`
}

func (c Config) withDefaults() Config {
	if c.SalaryCap <= 0 {
		c.SalaryCap = 50000
	}
	if c.NumLineups <= 0 {
		c.NumLineups = 20
	}
	if c.Candidates <= 0 {
		c.Candidates = c.NumLineups * 50
	}
	if c.StackSize <= 0 {
		c.StackSize = 4
	}
	if c.BringBack <= 0 {
		c.BringBack = 1
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	return c
}

// RankedLineup is a generated lineup with its valuation attached.
type RankedLineup struct {
	Lineup      types.Lineup    `json:"lineup"`
	Valuation   types.Valuation `json:"valuation"`
	NexusScore  float64         `json:"nexus_score"`
	TotalSalary int             `json:"total_salary"`
}

// Result is the output of an optimization run.
type Result struct {
	Lineups   []RankedLineup `json:"lineups"`
	Exposure  ExposureReport `json:"exposure"`
	Summary   BatchSummary   `json:"summary"`
	Generated int            `json:"generated"`
	Elapsed   time.Duration  `json:"elapsed"`
}

// Worker generates candidate lineups under salary, exposure, and stacking
// constraints and ranks them by valuation-engine ROI. The search is
// stack-seeded weighted random generation; the valuation engine does all
// the scoring.
type Worker struct {
	engine *valuation.Engine
	config Config
	logger *logrus.Entry
	rng    *rand.Rand
}

// NewWorker creates an optimizer worker. A zero RandomSeed seeds from the
// clock.
func NewWorker(engine *valuation.Engine, config Config) *Worker {
	config = config.withDefaults()
	seed := config.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Worker{
		engine: engine,
		config: config,
		logger: logger.WithComponent("optimizer_worker"),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Optimize runs the full generate-score-select loop. Progress updates are
// sent best-effort to the optional progress channel.
func (w *Worker) Optimize(ctx context.Context, pool []types.Player, contest types.Contest, hist *types.HistoricalData, progress chan<- types.ProgressUpdate) (*Result, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("empty player pool")
	}
	start := time.Now()

	byRole := groupByRole(pool)
	for _, role := range RosterRoles {
		if len(byRole[role]) == 0 {
			return nil, fmt.Errorf("player pool has no %s candidates", role)
		}
	}

	builder := NewStackBuilder(pool)
	seeds := builder.BuildGameStacks(w.config.StackSize, w.config.BringBack)
	seeds = append(seeds, builder.BuildTeamStacks(w.config.StackSize)...)

	w.logger.WithFields(logrus.Fields{
		"pool_size":  len(pool),
		"seeds":      len(seeds),
		"candidates": w.config.Candidates,
	}).Info("Starting lineup optimization")

	sendProgress(progress, 0.05, "generating candidates")
	candidates, err := w.generateCandidates(ctx, byRole, seeds)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no valid lineups under salary cap %d", w.config.SalaryCap)
	}

	sendProgress(progress, 0.50, "scoring candidates")
	ranked := w.scoreCandidates(ctx, candidates, contest, hist)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sendProgress(progress, 0.90, "selecting portfolio")
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Valuation.ROI != ranked[j].Valuation.ROI {
			return ranked[i].Valuation.ROI > ranked[j].Valuation.ROI
		}
		return ranked[i].Valuation.LineupStrength > ranked[j].Valuation.LineupStrength
	})

	exposure := NewExposureManager(w.config.Exposure)
	selected := make([]RankedLineup, 0, w.config.NumLineups)
	for _, rl := range ranked {
		if len(selected) == w.config.NumLineups {
			break
		}
		if !exposure.CanAccept(rl.Lineup) {
			continue
		}
		exposure.Record(rl.Lineup)
		selected = append(selected, rl)
	}

	result := &Result{
		Lineups:   selected,
		Exposure:  exposure.Report(),
		Summary:   Summarize(selected),
		Generated: len(candidates),
		Elapsed:   time.Since(start),
	}

	sendProgress(progress, 1.0, "done")
	w.logger.WithFields(logrus.Fields{
		"generated": len(candidates),
		"selected":  len(selected),
		"best_roi":  result.Summary.BestROI,
		"elapsed":   result.Elapsed,
	}).Info("Lineup optimization completed")

	return result, nil
}

func groupByRole(pool []types.Player) map[string][]types.Player {
	byRole := make(map[string][]types.Player)
	for _, p := range pool {
		byRole[p.Position] = append(byRole[p.Position], p)
	}
	return byRole
}

// generateCandidates builds unique, salary-valid lineups. Roughly half are
// seeded from the best stacks; the rest are unseeded for portfolio
// diversity.
func (w *Worker) generateCandidates(ctx context.Context, byRole map[string][]types.Player, seeds []Stack) ([]types.Lineup, error) {
	candidates := make([]types.Lineup, 0, w.config.Candidates)
	seen := make(map[string]bool)

	maxAttempts := w.config.Candidates * 20
	for attempt := 0; attempt < maxAttempts && len(candidates) < w.config.Candidates; attempt++ {
		if attempt%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		var seed *Stack
		if len(seeds) > 0 && w.rng.Intn(2) == 0 {
			seed = &seeds[w.rng.Intn(min(len(seeds), 8))]
		}

		lineup, ok := w.buildLineup(byRole, seed)
		if !ok {
			continue
		}

		sig := lineupSignature(lineup)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		candidates = append(candidates, lineup)
	}
	return candidates, nil
}

// buildLineup fills the five roster roles plus the captain, honoring the
// seed stack and the salary cap.
func (w *Worker) buildLineup(byRole map[string][]types.Player, seed *Stack) (types.Lineup, bool) {
	slots := make(map[string]*types.Player, len(RosterRoles))
	used := make(map[string]bool)
	salary := 0

	if seed != nil {
		for i := range seed.Players {
			p := seed.Players[i]
			if slots[p.Position] != nil {
				continue
			}
			slots[p.Position] = &p
			used[p.ID] = true
			salary += p.Salary
		}
	}

	for _, role := range RosterRoles {
		if slots[role] != nil {
			continue
		}
		p := w.pickWeighted(byRole[role], used, w.config.SalaryCap-salary)
		if p == nil {
			return types.Lineup{}, false
		}
		slots[role] = p
		used[p.ID] = true
		salary += p.Salary
	}

	captain := w.pickCaptain(byRole, used, w.config.SalaryCap-salary)
	if captain == nil {
		return types.Lineup{}, false
	}
	salary += captain.Salary
	if salary > w.config.SalaryCap {
		return types.Lineup{}, false
	}

	players := make([]*types.Player, 0, len(RosterRoles))
	for _, role := range RosterRoles {
		players = append(players, slots[role])
	}
	return types.Lineup{
		ID:      uuid.NewString(),
		Captain: captain,
		Players: players,
	}, true
}

// pickWeighted does projection-weighted random selection among players
// fitting the remaining salary.
func (w *Worker) pickWeighted(pool []types.Player, used map[string]bool, remainingSalary int) *types.Player {
	eligible := make([]types.Player, 0, len(pool))
	totalWeight := 0.0
	for _, p := range pool {
		if used[p.ID] || p.Salary > remainingSalary {
			continue
		}
		eligible = append(eligible, p)
		totalWeight += p.ProjectedPoints + 1
	}
	if len(eligible) == 0 {
		return nil
	}

	r := w.rng.Float64() * totalWeight
	cum := 0.0
	for i := range eligible {
		cum += eligible[i].ProjectedPoints + 1
		if r <= cum {
			return &eligible[i]
		}
	}
	return &eligible[len(eligible)-1]
}

// pickCaptain tries the carry roles in order before falling back to any
// remaining player.
func (w *Worker) pickCaptain(byRole map[string][]types.Player, used map[string]bool, remainingSalary int) *types.Player {
	for _, role := range captainRoles {
		if p := w.pickWeighted(byRole[role], used, remainingSalary); p != nil {
			return p
		}
	}
	for _, role := range RosterRoles {
		if p := w.pickWeighted(byRole[role], used, remainingSalary); p != nil {
			return p
		}
	}
	return nil
}

// scoreCandidates values every candidate through the engine on a small
// worker pool. The engine is stateless, so parallel scoring needs no
// synchronization beyond the result slice indices.
func (w *Worker) scoreCandidates(ctx context.Context, candidates []types.Lineup, contest types.Contest, hist *types.HistoricalData) []RankedLineup {
	ranked := make([]RankedLineup, len(candidates))
	jobs := make(chan int, len(candidates))

	var wg sync.WaitGroup
	for i := 0; i < w.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				lineup := candidates[idx]
				ranked[idx] = RankedLineup{
					Lineup:      lineup,
					Valuation:   w.engine.Value(lineup, contest, hist),
					NexusScore:  w.engine.NexusScore(lineup),
					TotalSalary: lineup.TotalSalary(),
				}
			}
		}()
	}
	for idx := range candidates {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
	return ranked
}

// lineupSignature is an order-independent identity for duplicate detection.
func lineupSignature(lineup types.Lineup) string {
	ids := make([]string, 0, 5)
	for _, p := range lineup.Players {
		if p != nil {
			ids = append(ids, p.ID)
		}
	}
	sort.Strings(ids)
	if lineup.Captain != nil {
		ids = append([]string{"c:" + lineup.Captain.ID}, ids...)
	}
	return strings.Join(ids, "|")
}

func sendProgress(progress chan<- types.ProgressUpdate, frac float64, step string) {
	if progress == nil {
		return
	}
	select {
	case progress <- types.ProgressUpdate{
		Type:        "optimization",
		Progress:    frac,
		CurrentStep: step,
		Timestamp:   time.Now(),
	}:
	default:
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
