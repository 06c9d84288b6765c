package game

const (
	StartingMoney      = 50000.0
	StartingReputation = 10.0
	StartingMorale     = 100.0
)

// StartDate is the first day of a new game.
var StartDate = GameDate{Year: 1985, Month: 1, Day: 1}

type listing struct {
	id, name, sector string
	price, yield     float64
	volatility       float64
}

var listings = []listing{
	{"COBOLT", "Cobalt Dynamics", "hardware", 130, 0.020, 0.030},
	{"NIMBUS", "Nimbus Labs", "cloud", 95, 0.000, 0.045},
	{"RUSTIC", "Rustic Systems", "software", 115, 0.015, 0.030},
	{"PYLONS", "Pylon Networks", "telecom", 80, 0.035, 0.025},
	{"JAVOLT", "Javolt Cloud", "cloud", 105, 0.010, 0.040},
	{"SWIFTR", "Swiftr Mobile", "mobile", 150, 0.005, 0.050},
	{"NODEON", "Nodeon Runtime", "software", 120, 0.012, 0.035},
	{"VECTRA", "Vectra AI", "ai", 165, 0.000, 0.060},
	{"CYBRON", "Cybron Secure", "security", 140, 0.018, 0.030},
	{"ORBITZ", "Orbitz Space", "aerospace", 180, 0.000, 0.055},
	{"ZENITH", "Zenith Retail", "retail", 75, 0.040, 0.020},
	{"ARCANE", "Arcane Finance", "finance", 145, 0.030, 0.025},
}

// DefaultWorld returns the canonical starting state. Every call builds fresh
// containers so callers never share them.
func DefaultWorld() World {
	stocks := make([]Stock, 0, len(listings))
	for _, l := range listings {
		stocks = append(stocks, Stock{
			ID:            l.id,
			Name:          l.name,
			Sector:        l.sector,
			Price:         l.price,
			PreviousPrice: l.price,
			AnchorPrice:   l.price,
			History:       []float64{l.price},
			Volatility:    l.volatility,
			DividendYield: l.yield,
		})
	}

	return World{
		Money:       StartingMoney,
		Reputation:  StartingReputation,
		Morale:      StartingMorale,
		CurrentDate: StartDate,
		StudioLevel: 1,
		Platforms: []Platform{
			{ID: "pc", Name: "PC", Unlocked: true},
			{ID: "console", Name: "Console"},
			{ID: "handheld", Name: "Handheld"},
			{ID: "mobile", Name: "Mobile"},
			{ID: "vr", Name: "VR"},
		},
		Genres: []Genre{
			{ID: "action", Name: "Action", Unlocked: true},
			{ID: "puzzle", Name: "Puzzle", Unlocked: true},
			{ID: "adventure", Name: "Adventure"},
			{ID: "rpg", Name: "RPG"},
			{ID: "strategy", Name: "Strategy"},
			{ID: "simulation", Name: "Simulation"},
			{ID: "sports", Name: "Sports"},
		},
		Employees:         []Employee{},
		Projects:          []Project{},
		CompletedProjects: []Project{},
		Achievements:      []Achievement{},
		Technologies:      []string{},
		Notifications:     []Notification{},
		Stocks:            stocks,
		Portfolio: Portfolio{
			Holdings:    []Holding{},
			Watchlist:   []string{},
			PriceAlerts: []PriceAlert{},
		},
		StockMarket: MarketStatus{
			Regime: "neutral",
			Open:   true,
			Events: []MarketEvent{},
		},
		GameSpeed: 1,
	}
}
