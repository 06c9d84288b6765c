package game

import "slices"

// StockTypes lists the action types owned by the stock market domain.
func StockTypes() []ActionType {
	return []ActionType{
		TypeBuyStock,
		TypeSellStock,
		TypeUpdateStockPrices,
		TypeUpdatePortfolio,
		TypePayDividends,
		TypeAddWatchlist,
		TypeRemoveWatchlist,
		TypeCreatePriceAlert,
		TypeRemovePriceAlert,
		TypeTriggerMarketEvent,
		TypeUpdateMarketStatus,
	}
}

// ReduceStocks applies a stock market action.
//
// Arithmetic is plain float64 with no intermediate rounding. Quantities and
// prices are not sanitized: zero or negative values are a caller error.
func ReduceStocks(w World, a Action) World {
	switch p := a.Payload.(type) {
	case BuyStockPayload:
		return buyStock(w, TradePayload(p))

	case SellStockPayload:
		return sellStock(w, TradePayload(p))

	case UpdateStockPricesPayload:
		return updateStockPrices(w, p)

	case UpdatePortfolioPayload:
		w.Portfolio = PortfolioUpdate(p).apply(w.Portfolio)

	case PayDividendsPayload:
		w.Money += p.DividendAmount
		w.Portfolio.TotalDividendsReceived += p.DividendAmount
		paidOn := w.CurrentDate
		if stocks, ok := replaceFirst(w.Stocks, stockID(p.StockID), func(s Stock) Stock {
			s.LastDividendDate = &paidOn
			return s
		}); ok {
			w.Stocks = stocks
		}

	case AddWatchlistPayload:
		if slices.Contains(w.Portfolio.Watchlist, string(p)) {
			return w
		}
		w.Portfolio.Watchlist = appendCopy(w.Portfolio.Watchlist, string(p))

	case RemoveWatchlistPayload:
		list, ok := removeAll(w.Portfolio.Watchlist, func(id string) bool { return id == string(p) })
		if !ok {
			return w
		}
		w.Portfolio.Watchlist = list

	case CreatePriceAlertPayload:
		if p.ID == "" || slices.ContainsFunc(w.Portfolio.PriceAlerts, func(al PriceAlert) bool { return al.ID == p.ID }) {
			return w
		}
		w.Portfolio.PriceAlerts = appendCopy(w.Portfolio.PriceAlerts, PriceAlert{
			ID:          p.ID,
			StockID:     p.StockID,
			TargetPrice: p.TargetPrice,
			Direction:   p.Direction,
			Active:      true,
			CreatedDate: w.CurrentDate,
		})

	case RemovePriceAlertPayload:
		alerts, ok := removeAll(w.Portfolio.PriceAlerts, func(al PriceAlert) bool { return al.ID == string(p) })
		if !ok {
			return w
		}
		w.Portfolio.PriceAlerts = alerts

	case TriggerMarketEventPayload:
		evt := MarketEvent(p)
		if evt.Date == (GameDate{}) {
			evt.Date = w.CurrentDate
		}
		w.StockMarket.Events = appendCopy(w.StockMarket.Events, evt)

	case UpdateMarketStatusPayload:
		w.StockMarket = MarketStatusUpdate(p).apply(w.StockMarket)
	}
	return w
}

func buyStock(w World, t TradePayload) World {
	totalCost := t.Quantity * t.Price
	if w.Money < totalCost {
		return w
	}

	holdings, ok := replaceFirst(w.Portfolio.Holdings, holdingOf(t.StockID), func(h Holding) Holding {
		qty := h.Quantity + t.Quantity
		h.AveragePurchasePrice = (h.AveragePurchasePrice*h.Quantity + t.Price*t.Quantity) / qty
		h.Quantity = qty
		return h
	})
	if !ok {
		holdings = appendCopy(w.Portfolio.Holdings, Holding{
			StockID:              t.StockID,
			Quantity:             t.Quantity,
			AveragePurchasePrice: t.Price,
		})
	}

	w.Portfolio.Holdings = holdings
	w.Money -= totalCost
	w.Portfolio.TotalInvested += totalCost
	return w
}

func sellStock(w World, t TradePayload) World {
	h, ok := w.Portfolio.Holding(t.StockID)
	if !ok || h.Quantity < t.Quantity {
		return w
	}

	proceeds := t.Quantity * t.Price
	costBasis := t.Quantity * h.AveragePurchasePrice

	if remaining := h.Quantity - t.Quantity; remaining == 0 {
		w.Portfolio.Holdings, _ = removeAll(w.Portfolio.Holdings, holdingOf(t.StockID))
	} else {
		w.Portfolio.Holdings, _ = replaceFirst(w.Portfolio.Holdings, holdingOf(t.StockID), func(held Holding) Holding {
			held.Quantity = remaining
			return held
		})
	}

	w.Money += proceeds
	w.Portfolio.TotalInvested -= costBasis
	w.Portfolio.RealizedGainLoss += proceeds - costBasis
	return w
}

func updateStockPrices(w World, updates []StockUpdate) World {
	if len(updates) == 0 {
		return w
	}
	byID := make(map[string]StockUpdate, len(updates))
	for _, u := range updates {
		byID[u.ID] = u
	}

	stocks := make([]Stock, len(w.Stocks))
	changed := false
	for i, s := range w.Stocks {
		if u, ok := byID[s.ID]; ok {
			s = u.apply(s)
			changed = true
		}
		stocks[i] = s
	}
	if !changed {
		return w
	}
	w.Stocks = stocks
	return w
}

func (u StockUpdate) apply(s Stock) Stock {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Sector != nil {
		s.Sector = *u.Sector
	}
	if u.Price != nil {
		s.Price = *u.Price
	}
	if u.PreviousPrice != nil {
		s.PreviousPrice = *u.PreviousPrice
	}
	if u.AnchorPrice != nil {
		s.AnchorPrice = *u.AnchorPrice
	}
	if u.History != nil {
		s.History = cloneOrEmpty(u.History)
	}
	if u.Volatility != nil {
		s.Volatility = *u.Volatility
	}
	if u.DividendYield != nil {
		s.DividendYield = *u.DividendYield
	}
	return s
}

func (u PortfolioUpdate) apply(p Portfolio) Portfolio {
	if u.Holdings != nil {
		p.Holdings = cloneOrEmpty(u.Holdings)
	}
	if u.TotalInvested != nil {
		p.TotalInvested = *u.TotalInvested
	}
	if u.RealizedGainLoss != nil {
		p.RealizedGainLoss = *u.RealizedGainLoss
	}
	if u.TotalDividendsReceived != nil {
		p.TotalDividendsReceived = *u.TotalDividendsReceived
	}
	if u.Watchlist != nil {
		p.Watchlist = cloneOrEmpty(u.Watchlist)
	}
	if u.PriceAlerts != nil {
		p.PriceAlerts = cloneOrEmpty(u.PriceAlerts)
	}
	return p
}

func (u MarketStatusUpdate) apply(m MarketStatus) MarketStatus {
	if u.Regime != nil {
		m.Regime = *u.Regime
	}
	if u.Sentiment != nil {
		m.Sentiment = *u.Sentiment
	}
	if u.Open != nil {
		m.Open = *u.Open
	}
	if u.Events != nil {
		m.Events = cloneOrEmpty(u.Events)
	}
	return m
}
