package game

import "time"

type ActionType string

// Project domain.
const (
	TypeAddProject      ActionType = "ADD_PROJECT"
	TypeUpdateProject   ActionType = "UPDATE_PROJECT"
	TypeCompleteProject ActionType = "COMPLETE_PROJECT"
	TypeDeleteProject   ActionType = "DELETE_PROJECT"
	TypeDevelopProjects ActionType = "DEVELOP_PROJECTS"
)

// Employee domain.
const (
	TypeHireEmployee   ActionType = "HIRE_EMPLOYEE"
	TypeFireEmployee   ActionType = "FIRE_EMPLOYEE"
	TypeUpdateEmployee ActionType = "UPDATE_EMPLOYEE"
	TypeAssignEmployee ActionType = "ASSIGN_EMPLOYEE"
)

// Stock market domain.
const (
	TypeBuyStock           ActionType = "BUY_STOCK"
	TypeSellStock          ActionType = "SELL_STOCK"
	TypeUpdateStockPrices  ActionType = "UPDATE_STOCK_PRICES"
	TypeUpdatePortfolio    ActionType = "UPDATE_PORTFOLIO"
	TypePayDividends       ActionType = "PAY_DIVIDENDS"
	TypeAddWatchlist       ActionType = "ADD_WATCHLIST"
	TypeRemoveWatchlist    ActionType = "REMOVE_WATCHLIST"
	TypeCreatePriceAlert   ActionType = "CREATE_PRICE_ALERT"
	TypeRemovePriceAlert   ActionType = "REMOVE_PRICE_ALERT"
	TypeTriggerMarketEvent ActionType = "TRIGGER_MARKET_EVENT"
	TypeUpdateMarketStatus ActionType = "UPDATE_MARKET_STATUS"
)

// Notification domain.
const (
	TypeAddNotification       ActionType = "ADD_NOTIFICATION"
	TypeRemoveNotification    ActionType = "REMOVE_NOTIFICATION"
	TypeClearAllNotifications ActionType = "CLEAR_ALL_NOTIFICATIONS"
	TypeUnlockAchievement     ActionType = "UNLOCK_ACHIEVEMENT"
)

// Studio domain.
const (
	TypeSetStudioLevel   ActionType = "SET_STUDIO_LEVEL"
	TypeUpdateTime       ActionType = "UPDATE_TIME"
	TypeAdvanceTime      ActionType = "ADVANCE_TIME"
	TypeUpdateFinance    ActionType = "UPDATE_FINANCE"
	TypeUpdateMorale     ActionType = "UPDATE_MORALE"
	TypeUpdateReputation ActionType = "UPDATE_REPUTATION"
	TypeUpdateStats      ActionType = "UPDATE_STATS"
	TypeUnlockPlatform   ActionType = "UNLOCK_PLATFORM"
	TypeUnlockGenre      ActionType = "UNLOCK_GENRE"
	TypeUnlockTechnology ActionType = "UNLOCK_TECHNOLOGY"
	TypeToggleGameSpeed  ActionType = "TOGGLE_GAME_SPEED"
	TypeResetGame        ActionType = "RESET_GAME"
)

// Payload is the closed set of action payloads. Only types in this package
// implement it.
type Payload interface {
	actionType() ActionType
}

// Action is one serializable instruction for the reducer chain.
type Action struct {
	Type    ActionType
	Payload Payload
}

func newAction(p Payload) Action {
	return Action{Type: p.actionType(), Payload: p}
}

// RawPayload carries the undecoded payload of an action type this build does
// not know. It reduces to a no-op.
type RawPayload []byte

func (RawPayload) actionType() ActionType { return "" }

func (p RawPayload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// Project payloads.

type AddProjectPayload Project

type ProjectUpdate struct {
	Name       *string      `json:"name,omitempty"`
	Platform   *string      `json:"platform,omitempty"`
	Genre      *string      `json:"genre,omitempty"`
	Size       *ProjectSize `json:"size,omitempty"`
	Progress   *float64     `json:"progress,omitempty"`
	Quality    *float64     `json:"quality,omitempty"`
	Popularity *float64     `json:"popularity,omitempty"`
	Revenue    *float64     `json:"revenue,omitempty"`
	Shipped    *bool        `json:"shipped,omitempty"`
}

type UpdateProjectPayload struct {
	ID      string        `json:"id"`
	Updates ProjectUpdate `json:"updates"`
}

type CompleteProjectPayload Project

type DeleteProjectPayload string

type DevelopProjectsPayload struct {
	Ticks float64 `json:"ticks"`
}

func (AddProjectPayload) actionType() ActionType      { return TypeAddProject }
func (UpdateProjectPayload) actionType() ActionType   { return TypeUpdateProject }
func (CompleteProjectPayload) actionType() ActionType { return TypeCompleteProject }
func (DeleteProjectPayload) actionType() ActionType   { return TypeDeleteProject }
func (DevelopProjectsPayload) actionType() ActionType { return TypeDevelopProjects }

// Employee payloads.

type HireEmployeePayload struct {
	Employee
	HiringCost float64 `json:"hiringCost"`
}

type FireEmployeePayload string

type EmployeeUpdate struct {
	Name        *string            `json:"name,omitempty"`
	Role        *string            `json:"role,omitempty"`
	Skills      map[string]float64 `json:"skills"`
	SkillPoints *float64           `json:"skillPoints,omitempty"`
	Personality *string            `json:"personality,omitempty"`
	Salary      *float64           `json:"salary,omitempty"`
}

type UpdateEmployeePayload struct {
	ID      string         `json:"id"`
	Updates EmployeeUpdate `json:"updates"`
}

// AssignEmployeePayload with an empty (or JSON null) ProjectID clears the
// assignment.
type AssignEmployeePayload struct {
	EmployeeID string `json:"employeeId"`
	ProjectID  string `json:"projectId"`
}

func (HireEmployeePayload) actionType() ActionType   { return TypeHireEmployee }
func (FireEmployeePayload) actionType() ActionType   { return TypeFireEmployee }
func (UpdateEmployeePayload) actionType() ActionType { return TypeUpdateEmployee }
func (AssignEmployeePayload) actionType() ActionType { return TypeAssignEmployee }

// Stock market payloads.

type TradePayload struct {
	StockID  string  `json:"stockId"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

type BuyStockPayload TradePayload

type SellStockPayload TradePayload

type StockUpdate struct {
	ID            string    `json:"id"`
	Name          *string   `json:"name,omitempty"`
	Sector        *string   `json:"sector,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	PreviousPrice *float64  `json:"previousPrice,omitempty"`
	AnchorPrice   *float64  `json:"anchorPrice,omitempty"`
	History       []float64 `json:"history"`
	Volatility    *float64  `json:"volatility,omitempty"`
	DividendYield *float64  `json:"dividendYield,omitempty"`
}

type UpdateStockPricesPayload []StockUpdate

type PortfolioUpdate struct {
	Holdings               []Holding    `json:"holdings"`
	TotalInvested          *float64     `json:"totalInvested,omitempty"`
	RealizedGainLoss       *float64     `json:"realizedGainLoss,omitempty"`
	TotalDividendsReceived *float64     `json:"totalDividendsReceived,omitempty"`
	Watchlist              []string     `json:"watchlist"`
	PriceAlerts            []PriceAlert `json:"priceAlerts"`
}

type UpdatePortfolioPayload PortfolioUpdate

type PayDividendsPayload struct {
	StockID        string  `json:"stockId"`
	DividendAmount float64 `json:"dividendAmount"`
}

type AddWatchlistPayload string

type RemoveWatchlistPayload string

type CreatePriceAlertPayload struct {
	ID          string         `json:"id"`
	StockID     string         `json:"stockId"`
	TargetPrice float64        `json:"targetPrice"`
	Direction   AlertDirection `json:"direction"`
}

type RemovePriceAlertPayload string

type TriggerMarketEventPayload MarketEvent

type MarketStatusUpdate struct {
	Regime    *string       `json:"regime,omitempty"`
	Sentiment *float64      `json:"sentiment,omitempty"`
	Open      *bool         `json:"open,omitempty"`
	Events    []MarketEvent `json:"events"`
}

type UpdateMarketStatusPayload MarketStatusUpdate

func (BuyStockPayload) actionType() ActionType           { return TypeBuyStock }
func (SellStockPayload) actionType() ActionType          { return TypeSellStock }
func (UpdateStockPricesPayload) actionType() ActionType  { return TypeUpdateStockPrices }
func (UpdatePortfolioPayload) actionType() ActionType    { return TypeUpdatePortfolio }
func (PayDividendsPayload) actionType() ActionType       { return TypePayDividends }
func (AddWatchlistPayload) actionType() ActionType       { return TypeAddWatchlist }
func (RemoveWatchlistPayload) actionType() ActionType    { return TypeRemoveWatchlist }
func (CreatePriceAlertPayload) actionType() ActionType   { return TypeCreatePriceAlert }
func (RemovePriceAlertPayload) actionType() ActionType   { return TypeRemovePriceAlert }
func (TriggerMarketEventPayload) actionType() ActionType { return TypeTriggerMarketEvent }
func (UpdateMarketStatusPayload) actionType() ActionType { return TypeUpdateMarketStatus }

// Notification payloads.

type AddNotificationPayload Notification

type RemoveNotificationPayload string

type ClearAllNotificationsPayload struct{}

type UnlockAchievementPayload Achievement

func (AddNotificationPayload) actionType() ActionType       { return TypeAddNotification }
func (RemoveNotificationPayload) actionType() ActionType    { return TypeRemoveNotification }
func (ClearAllNotificationsPayload) actionType() ActionType { return TypeClearAllNotifications }
func (UnlockAchievementPayload) actionType() ActionType     { return TypeUnlockAchievement }

// Studio payloads.

type SetStudioLevelPayload int

type DateUpdate struct {
	Year  *int `json:"year,omitempty"`
	Month *int `json:"month,omitempty"`
	Day   *int `json:"day,omitempty"`
}

type UpdateTimePayload DateUpdate

type AdvanceTimePayload struct {
	Days int `json:"days"`
}

// UpdateFinancePayload sets Money outright when present, otherwise adds Amount.
type UpdateFinancePayload struct {
	Money  *float64 `json:"money,omitempty"`
	Amount *float64 `json:"amount,omitempty"`
}

type UpdateMoralePayload float64

type UpdateReputationPayload float64

type StatsUpdate struct {
	TotalProjectsCompleted *int     `json:"totalProjectsCompleted,omitempty"`
	TotalRevenue           *float64 `json:"totalRevenue,omitempty"`
	TotalEmployeesHired    *int     `json:"totalEmployeesHired,omitempty"`
}

type UpdateStatsPayload StatsUpdate

type UnlockPlatformPayload string

type UnlockGenrePayload string

type UnlockTechnologyPayload string

type ToggleGameSpeedPayload float64

type ResetGamePayload struct{}

func (SetStudioLevelPayload) actionType() ActionType   { return TypeSetStudioLevel }
func (UpdateTimePayload) actionType() ActionType       { return TypeUpdateTime }
func (AdvanceTimePayload) actionType() ActionType      { return TypeAdvanceTime }
func (UpdateFinancePayload) actionType() ActionType    { return TypeUpdateFinance }
func (UpdateMoralePayload) actionType() ActionType     { return TypeUpdateMorale }
func (UpdateReputationPayload) actionType() ActionType { return TypeUpdateReputation }
func (UpdateStatsPayload) actionType() ActionType      { return TypeUpdateStats }
func (UnlockPlatformPayload) actionType() ActionType   { return TypeUnlockPlatform }
func (UnlockGenrePayload) actionType() ActionType      { return TypeUnlockGenre }
func (UnlockTechnologyPayload) actionType() ActionType { return TypeUnlockTechnology }
func (ToggleGameSpeedPayload) actionType() ActionType  { return TypeToggleGameSpeed }
func (ResetGamePayload) actionType() ActionType        { return TypeResetGame }

// Action creators. Creators that introduce a new entity mint its id when the
// caller left it empty, so reducers stay free of clocks and randomness.

func AddProject(p Project) Action {
	if p.ID == "" {
		p.ID = NewID()
	}
	return newAction(AddProjectPayload(p))
}

func UpdateProject(id string, updates ProjectUpdate) Action {
	return newAction(UpdateProjectPayload{ID: id, Updates: updates})
}

func CompleteProject(p Project) Action { return newAction(CompleteProjectPayload(p)) }

func DeleteProject(id string) Action { return newAction(DeleteProjectPayload(id)) }

func DevelopProjects(ticks float64) Action {
	return newAction(DevelopProjectsPayload{Ticks: ticks})
}

func HireEmployee(e Employee, hiringCost float64) Action {
	if e.ID == "" {
		e.ID = NewID()
	}
	return newAction(HireEmployeePayload{Employee: e, HiringCost: hiringCost})
}

func FireEmployee(id string) Action { return newAction(FireEmployeePayload(id)) }

func UpdateEmployee(id string, updates EmployeeUpdate) Action {
	return newAction(UpdateEmployeePayload{ID: id, Updates: updates})
}

// AssignEmployee assigns employeeID to projectID; an empty projectID unassigns.
func AssignEmployee(employeeID, projectID string) Action {
	return newAction(AssignEmployeePayload{EmployeeID: employeeID, ProjectID: projectID})
}

func BuyStock(stockID string, quantity, price float64) Action {
	return newAction(BuyStockPayload{StockID: stockID, Quantity: quantity, Price: price})
}

func SellStock(stockID string, quantity, price float64) Action {
	return newAction(SellStockPayload{StockID: stockID, Quantity: quantity, Price: price})
}

func UpdateStockPrices(updates ...StockUpdate) Action {
	return newAction(UpdateStockPricesPayload(updates))
}

func UpdatePortfolio(u PortfolioUpdate) Action { return newAction(UpdatePortfolioPayload(u)) }

func PayDividends(stockID string, amount float64) Action {
	return newAction(PayDividendsPayload{StockID: stockID, DividendAmount: amount})
}

func AddWatchlist(stockID string) Action { return newAction(AddWatchlistPayload(stockID)) }

func RemoveWatchlist(stockID string) Action { return newAction(RemoveWatchlistPayload(stockID)) }

func CreatePriceAlert(stockID string, targetPrice float64, direction AlertDirection) Action {
	return newAction(CreatePriceAlertPayload{
		ID:          NewID(),
		StockID:     stockID,
		TargetPrice: targetPrice,
		Direction:   direction,
	})
}

func RemovePriceAlert(alertID string) Action { return newAction(RemovePriceAlertPayload(alertID)) }

func TriggerMarketEvent(e MarketEvent) Action {
	if e.ID == "" {
		e.ID = NewID()
	}
	return newAction(TriggerMarketEventPayload(e))
}

func UpdateMarketStatus(u MarketStatusUpdate) Action {
	return newAction(UpdateMarketStatusPayload(u))
}

func AddNotification(n Notification) Action {
	if n.ID == "" {
		n.ID = NewID()
	}
	if n.Timestamp == 0 {
		n.Timestamp = time.Now().UnixMilli()
	}
	return newAction(AddNotificationPayload(n))
}

func RemoveNotification(id string) Action { return newAction(RemoveNotificationPayload(id)) }

func ClearAllNotifications() Action { return newAction(ClearAllNotificationsPayload{}) }

func UnlockAchievement(a Achievement) Action { return newAction(UnlockAchievementPayload(a)) }

func SetStudioLevel(level int) Action { return newAction(SetStudioLevelPayload(level)) }

func UpdateTime(u DateUpdate) Action { return newAction(UpdateTimePayload(u)) }

func AdvanceTime(days int) Action { return newAction(AdvanceTimePayload{Days: days}) }

// SetMoney replaces the studio balance.
func SetMoney(money float64) Action { return newAction(UpdateFinancePayload{Money: &money}) }

// AdjustMoney adds amount (possibly negative) to the studio balance.
func AdjustMoney(amount float64) Action {
	return newAction(UpdateFinancePayload{Amount: &amount})
}

func UpdateMorale(value float64) Action { return newAction(UpdateMoralePayload(value)) }

func UpdateReputation(value float64) Action { return newAction(UpdateReputationPayload(value)) }

func UpdateStats(u StatsUpdate) Action { return newAction(UpdateStatsPayload(u)) }

func UnlockPlatform(id string) Action { return newAction(UnlockPlatformPayload(id)) }

func UnlockGenre(id string) Action { return newAction(UnlockGenrePayload(id)) }

func UnlockTechnology(tech string) Action { return newAction(UnlockTechnologyPayload(tech)) }

func ToggleGameSpeed(speed float64) Action { return newAction(ToggleGameSpeedPayload(speed)) }

func ResetGame() Action { return newAction(ResetGamePayload{}) }
