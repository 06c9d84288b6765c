package game

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// GameDate is a day on the in-game calendar.
type GameDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// AddDays moves the date forward on the Gregorian calendar.
func (d GameDate) AddDays(days int) GameDate {
	t := time.Date(d.Year, time.Month(d.Month), d.Day+days, 0, 0, 0, 0, time.UTC)
	return GameDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (d GameDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// World is the single consolidated snapshot of the studio simulation.
// Transitions never mutate a World in place; every reducer returns a copy
// with fresh containers for the branches it touched.
type World struct {
	Money             float64        `json:"money"`
	Reputation        float64        `json:"reputation"`
	Morale            float64        `json:"morale"`
	CurrentDate       GameDate       `json:"currentDate"`
	StudioLevel       int            `json:"studioLevel"`
	Platforms         []Platform     `json:"platforms"`
	Genres            []Genre        `json:"genres"`
	Employees         []Employee     `json:"employees"`
	Projects          []Project      `json:"projects"`
	CompletedProjects []Project      `json:"completedProjects"`
	Achievements      []Achievement  `json:"achievements"`
	Technologies      []string       `json:"technologies"`
	Notifications     []Notification `json:"notifications"`
	Stocks            []Stock        `json:"stocks"`
	Portfolio         Portfolio      `json:"portfolio"`
	StockMarket       MarketStatus   `json:"stockMarket"`
	Stats             Stats          `json:"stats"`
	GameSpeed         float64        `json:"gameSpeed"`
}

type ProjectSize string

const (
	SizeSmall  ProjectSize = "small"
	SizeMedium ProjectSize = "medium"
	SizeLarge  ProjectSize = "large"
	SizeAAA    ProjectSize = "aaa"
)

// Project is a development effort. It lives in exactly one of
// World.Projects or World.CompletedProjects.
type Project struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Platform       string      `json:"platform"`
	Genre          string      `json:"genre"`
	Size           ProjectSize `json:"size"`
	Progress       float64     `json:"progress"`
	RequiredPoints float64     `json:"requiredPoints"`
	Quality        float64     `json:"quality"`
	Popularity     float64     `json:"popularity"`
	Revenue        float64     `json:"revenue"`
	Shipped        bool        `json:"shipped"`
	StartDate      GameDate    `json:"startDate"`
}

// Employee is a hired worker. AssignedProjectID is a weak reference: an id
// that no longer names a live project reads as unassigned.
type Employee struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Role              string             `json:"role"`
	Skills            map[string]float64 `json:"skills"`
	SkillPoints       float64            `json:"skillPoints"`
	Personality       string             `json:"personality"`
	Salary            float64            `json:"salary"`
	AssignedProjectID string             `json:"assignedProjectId"`
}

// AverageSkill is the mean of the employee's skill ratings. Keys are summed in
// sorted order so the result is identical across replays.
func (e Employee) AverageSkill() float64 {
	if len(e.Skills) == 0 {
		return 0
	}
	var total float64
	for _, k := range slices.Sorted(maps.Keys(e.Skills)) {
		total += e.Skills[k]
	}
	return total / float64(len(e.Skills))
}

type Platform struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Unlocked bool   `json:"unlocked"`
}

type Genre struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Unlocked bool   `json:"unlocked"`
}

type Notification struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Message   string `json:"message"`
}

// Achievement as stored in the World. Unlock conditions live in
// AchievementRules so the World stays plain data.
type Achievement struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Reward      float64 `json:"reward"`
	Unlocked    bool    `json:"unlocked"`
}

type Stock struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Sector           string    `json:"sector"`
	Price            float64   `json:"price"`
	PreviousPrice    float64   `json:"previousPrice"`
	AnchorPrice      float64   `json:"anchorPrice"`
	History          []float64 `json:"history"`
	Volatility       float64   `json:"volatility"`
	DividendYield    float64   `json:"dividendYield"`
	LastDividendDate *GameDate `json:"lastDividendDate,omitempty"`
}

// Holding is the position in one stock. There is at most one per StockID and
// it is removed once its quantity reaches zero.
type Holding struct {
	StockID              string  `json:"stockId"`
	Quantity             float64 `json:"quantity"`
	AveragePurchasePrice float64 `json:"averagePurchasePrice"`
}

type AlertDirection string

const (
	AlertAbove AlertDirection = "above"
	AlertBelow AlertDirection = "below"
)

type PriceAlert struct {
	ID          string         `json:"id"`
	StockID     string         `json:"stockId"`
	TargetPrice float64        `json:"targetPrice"`
	Direction   AlertDirection `json:"direction"`
	Active      bool           `json:"active"`
	CreatedDate GameDate       `json:"createdDate"`
}

type Portfolio struct {
	Holdings               []Holding    `json:"holdings"`
	TotalInvested          float64      `json:"totalInvested"`
	RealizedGainLoss       float64      `json:"realizedGainLoss"`
	TotalDividendsReceived float64      `json:"totalDividendsReceived"`
	Watchlist              []string     `json:"watchlist"`
	PriceAlerts            []PriceAlert `json:"priceAlerts"`
}

// Holding returns the position for stockID, if any.
func (p Portfolio) Holding(stockID string) (Holding, bool) {
	i := slices.IndexFunc(p.Holdings, func(h Holding) bool { return h.StockID == stockID })
	if i < 0 {
		return Holding{}, false
	}
	return p.Holdings[i], true
}

type MarketEvent struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StockID     string   `json:"stockId,omitempty"`
	Impact      float64  `json:"impact"`
	Date        GameDate `json:"date"`
}

type MarketStatus struct {
	Regime    string        `json:"regime"`
	Sentiment float64       `json:"sentiment"`
	Open      bool          `json:"open"`
	Events    []MarketEvent `json:"events"`
}

// Stats only ever grow under normal play.
type Stats struct {
	TotalProjectsCompleted int     `json:"totalProjectsCompleted"`
	TotalRevenue           float64 `json:"totalRevenue"`
	TotalEmployeesHired    int     `json:"totalEmployeesHired"`
}

// FindProject looks up an in-progress project by id.
func (w World) FindProject(id string) (Project, bool) {
	i := slices.IndexFunc(w.Projects, func(p Project) bool { return p.ID == id })
	if i < 0 {
		return Project{}, false
	}
	return w.Projects[i], true
}

// FindStock looks up a listed stock by id.
func (w World) FindStock(id string) (Stock, bool) {
	i := slices.IndexFunc(w.Stocks, func(s Stock) bool { return s.ID == id })
	if i < 0 {
		return Stock{}, false
	}
	return w.Stocks[i], true
}

// AssignedProject resolves the employee's assignment, treating dangling and
// completed-project references as unassigned.
func (w World) AssignedProject(e Employee) (Project, bool) {
	if e.AssignedProjectID == "" {
		return Project{}, false
	}
	return w.FindProject(e.AssignedProjectID)
}

// NetWorth is cash plus holdings marked at current prices.
func (w World) NetWorth() float64 {
	total := w.Money
	for _, h := range w.Portfolio.Holdings {
		if s, ok := w.FindStock(h.StockID); ok {
			total += h.Quantity * s.Price
		}
	}
	return total
}
