// Package sim decides which time-driven actions fire on a game tick.
package sim

import (
	"context"
	"fmt"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/market"
)

// Stage is a named batch of actions built against one World. Later stages
// are planned against the World the earlier ones produced.
type Stage struct {
	Name    string
	Actions []game.Action
}

var sizeMultiplier = map[game.ProjectSize]float64{
	game.SizeSmall:  1,
	game.SizeMedium: 2.5,
	game.SizeLarge:  6,
	game.SizeAAA:    15,
}

// Planner turns elapsed game time into actions. It holds the market
// simulator so consecutive ticks share one random stream.
type Planner struct {
	market *market.Simulator
}

func NewPlanner(m *market.Simulator) *Planner {
	return &Planner{market: m}
}

// Plan returns the stage for step on w. Steps run in order: "time",
// "develop", "ship", "market", "dividends", "achievements".
func (p *Planner) Plan(step string, w game.World) Stage {
	s := Stage{Name: step}
	switch step {
	case "time":
		s.Actions = []game.Action{game.AdvanceTime(1)}
	case "develop":
		s.Actions = []game.Action{game.DevelopProjects(1)}
	case "ship":
		s.Actions = ShipFinished(w)
	case "market":
		if p.market != nil {
			s.Actions = p.market.Step(w)
		}
	case "dividends":
		if w.CurrentDate.Day == 1 {
			s.Actions = market.Dividends(w)
		}
	case "achievements":
		s.Actions = UnlockPending(w)
	}
	return s
}

// Steps lists the stages of one tick in order.
func Steps() []string {
	return []string{"time", "develop", "ship", "market", "dividends", "achievements"}
}

// Tick plans and folds one full tick locally, returning the new World and
// every action applied, in order.
func (p *Planner) Tick(w game.World) (game.World, []game.Action) {
	var applied []game.Action
	for _, step := range Steps() {
		for _, a := range p.Plan(step, w).Actions {
			w = game.Reduce(w, a)
			applied = append(applied, a)
		}
	}
	return w, applied
}

// Apply commits a batch of actions and returns the World they produced.
type Apply func(ctx context.Context, actions []game.Action) (game.World, error)

// Advance runs one tick through apply, planning each stage against the World
// the previous stage returned. Empty stages are skipped. It reports how many
// actions were committed before any failure.
func (p *Planner) Advance(ctx context.Context, w game.World, apply Apply) (game.World, int, error) {
	n := 0
	for _, step := range Steps() {
		st := p.Plan(step, w)
		if len(st.Actions) == 0 {
			continue
		}
		next, err := apply(ctx, st.Actions)
		if err != nil {
			return w, n, fmt.Errorf("%s stage: %w", step, err)
		}
		w = next
		n += len(st.Actions)
	}
	return w, n, nil
}

// Revenue is what a finished project earns on release.
func Revenue(pr game.Project) float64 {
	mult, ok := sizeMultiplier[pr.Size]
	if !ok {
		mult = 1
	}
	return pr.RequiredPoints * (pr.Quality + pr.Popularity) / 100 * mult
}

// ShipFinished completes every project whose progress reached its required
// points and announces the release.
func ShipFinished(w game.World) []game.Action {
	var out []game.Action
	for _, pr := range w.Projects {
		if pr.Shipped || pr.RequiredPoints <= 0 || pr.Progress < pr.RequiredPoints {
			continue
		}
		pr.Shipped = true
		pr.Revenue = Revenue(pr)
		out = append(out,
			game.CompleteProject(pr),
			game.AddNotification(game.Notification{
				Kind:    "project",
				Title:   fmt.Sprintf("%s shipped", pr.Name),
				Message: fmt.Sprintf("Earned %.2f on release.", pr.Revenue),
			}),
		)
	}
	return out
}

// UnlockPending unlocks every achievement whose condition now holds.
func UnlockPending(w game.World) []game.Action {
	var out []game.Action
	for _, a := range game.PendingAchievements(w) {
		out = append(out,
			game.UnlockAchievement(a),
			game.AddNotification(game.Notification{
				Kind:    "achievement",
				Title:   a.Title,
				Message: a.Description,
			}),
		)
	}
	return out
}
