package market

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
)

const (
	MinPrice   = 0.01
	MaxPrice   = 2_000_000_000_000.0
	HistoryLen = 64

	// Volatility a stock is assumed to have when it does not say.
	baseVolatility = 0.035
)

// Simulator moves the stock market one tick at a time. It never touches a
// World; it only proposes actions for the reducer chain.
type Simulator struct {
	dyn Dynamics
	rng *rand.Rand
}

// New builds a simulator for a volatility preset. The same seed replays the
// same price path for the same inputs.
func New(mode string, seed int64) *Simulator {
	return &Simulator{
		dyn: Preset(mode),
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Step returns the actions for one market tick against w: a status update
// carrying the regime and sentiment, the price updates, and one market event
// per extreme shock.
func (s *Simulator) Step(w game.World) []game.Action {
	regime := Regime(w.StockMarket.Regime)
	if regime == "" {
		regime = Neutral
	}
	if s.rng.Float64() < s.dyn.RegimeSwitchProb {
		regime = randomRegime(s.rng.Float64())
	}

	updates := make([]game.StockUpdate, 0, len(w.Stocks))
	var events []game.Action
	var totalRet float64
	for _, st := range w.Stocks {
		u, ret, shock := s.evolve(st, regime)
		updates = append(updates, u)
		totalRet += ret
		if shock != 0 {
			events = append(events, shockEvent(st, shock))
		}
	}

	sentiment := 0.0
	if len(w.Stocks) > 0 {
		sentiment = clamp(totalRet/float64(len(w.Stocks))*10, -1, 1)
	}
	r := string(regime)
	out := []game.Action{game.UpdateMarketStatus(game.MarketStatusUpdate{Regime: &r, Sentiment: &sentiment})}
	if len(updates) > 0 {
		out = append(out, game.UpdateStockPrices(updates...))
	}
	return append(out, events...)
}

func (s *Simulator) evolve(st game.Stock, regime Regime) (game.StockUpdate, float64, float64) {
	scale := 1.0
	if st.Volatility > 0 {
		scale = st.Volatility / baseVolatility
	}
	anchor := st.AnchorPrice
	if anchor <= 0 {
		anchor = st.Price
	}

	anchorRet := 0.30*regime.drift() + s.dyn.AnchorNoiseScale*normalish(s.rng.Float64())
	if s.rng.Float64() < s.dyn.ShockProb*0.20 {
		anchorRet += signedShock(s.rng.Float64(), s.rng.Float64(), s.dyn.ShockScale*0.40)
	}
	nextAnchor := bound(evolvePrice(anchor, anchorRet, s.dyn.MaxDropPerTick))

	ret := regime.drift() + scale*s.dyn.NoiseScale*normalish(s.rng.Float64()) + meanReversion(st.Price, anchor, s.dyn.MeanReversion)
	if s.rng.Float64() < s.dyn.ShockProb {
		ret += signedShock(s.rng.Float64(), s.rng.Float64(), s.dyn.ShockScale)
	}
	var extreme float64
	if s.rng.Float64() < s.dyn.ExtremeShockProb {
		extreme = signedShock(s.rng.Float64(), s.rng.Float64(), s.dyn.ExtremeShockScale)
		ret += extreme
	}
	next := bound(evolvePrice(st.Price, ret, s.dyn.MaxDropPerTick))

	prev := st.Price
	return game.StockUpdate{
		ID:            st.ID,
		Price:         &next,
		PreviousPrice: &prev,
		AnchorPrice:   &nextAnchor,
		History:       appendHistory(st.History, next),
	}, ret, extreme
}

func evolvePrice(price, ret, maxDropPerTick float64) float64 {
	if price <= 0 {
		return MinPrice
	}
	// Bound only the downside; upside can run.
	if ret < -maxDropPerTick {
		ret = -maxDropPerTick
	}
	return price * math.Exp(ret)
}

func appendHistory(history []float64, price float64) []float64 {
	n := len(history) + 1
	if n > HistoryLen {
		n = HistoryLen
	}
	out := make([]float64, 0, n)
	if keep := n - 1; keep > 0 {
		out = append(out, history[len(history)-keep:]...)
	}
	return append(out, price)
}

func shockEvent(st game.Stock, shock float64) game.Action {
	kind, title := "rally", fmt.Sprintf("%s soars", st.Name)
	if shock < 0 {
		kind, title = "crash", fmt.Sprintf("%s plunges", st.Name)
	}
	return game.TriggerMarketEvent(game.MarketEvent{
		Kind:        kind,
		Title:       title,
		Description: fmt.Sprintf("%s moved %+.1f%% on a single tick.", st.ID, (math.Exp(shock)-1)*100),
		StockID:     st.ID,
		Impact:      shock,
	})
}

func bound(p float64) float64 {
	return clamp(p, MinPrice, MaxPrice)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Dividends returns a PAY_DIVIDENDS action per held stock with a yield. The
// yield is annual; a payout covers one month of it at the current price.
func Dividends(w game.World) []game.Action {
	var out []game.Action
	for _, h := range w.Portfolio.Holdings {
		st, ok := w.FindStock(h.StockID)
		if !ok || st.DividendYield <= 0 || h.Quantity <= 0 {
			continue
		}
		if st.LastDividendDate != nil && *st.LastDividendDate == w.CurrentDate {
			continue
		}
		out = append(out, game.PayDividends(st.ID, h.Quantity*st.Price*st.DividendYield/12))
	}
	return out
}
