package game

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type wireAction struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type payloadDecoder func(json.RawMessage) (Payload, error)

func decodeAs[T Payload](raw json.RawMessage) (Payload, error) {
	var p T
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return p, nil
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p, nil
}

var payloadDecoders = map[ActionType]payloadDecoder{
	TypeAddProject:      decodeAs[AddProjectPayload],
	TypeUpdateProject:   decodeAs[UpdateProjectPayload],
	TypeCompleteProject: decodeAs[CompleteProjectPayload],
	TypeDeleteProject:   decodeAs[DeleteProjectPayload],
	TypeDevelopProjects: decodeAs[DevelopProjectsPayload],

	TypeHireEmployee:   decodeAs[HireEmployeePayload],
	TypeFireEmployee:   decodeAs[FireEmployeePayload],
	TypeUpdateEmployee: decodeAs[UpdateEmployeePayload],
	TypeAssignEmployee: decodeAs[AssignEmployeePayload],

	TypeBuyStock:           decodeAs[BuyStockPayload],
	TypeSellStock:          decodeAs[SellStockPayload],
	TypeUpdateStockPrices:  decodeAs[UpdateStockPricesPayload],
	TypeUpdatePortfolio:    decodeAs[UpdatePortfolioPayload],
	TypePayDividends:       decodeAs[PayDividendsPayload],
	TypeAddWatchlist:       decodeAs[AddWatchlistPayload],
	TypeRemoveWatchlist:    decodeAs[RemoveWatchlistPayload],
	TypeCreatePriceAlert:   decodeAs[CreatePriceAlertPayload],
	TypeRemovePriceAlert:   decodeAs[RemovePriceAlertPayload],
	TypeTriggerMarketEvent: decodeAs[TriggerMarketEventPayload],
	TypeUpdateMarketStatus: decodeAs[UpdateMarketStatusPayload],

	TypeAddNotification:       decodeAs[AddNotificationPayload],
	TypeRemoveNotification:    decodeAs[RemoveNotificationPayload],
	TypeClearAllNotifications: decodeAs[ClearAllNotificationsPayload],
	TypeUnlockAchievement:     decodeAs[UnlockAchievementPayload],

	TypeSetStudioLevel:   decodeAs[SetStudioLevelPayload],
	TypeUpdateTime:       decodeAs[UpdateTimePayload],
	TypeAdvanceTime:      decodeAs[AdvanceTimePayload],
	TypeUpdateFinance:    decodeAs[UpdateFinancePayload],
	TypeUpdateMorale:     decodeAs[UpdateMoralePayload],
	TypeUpdateReputation: decodeAs[UpdateReputationPayload],
	TypeUpdateStats:      decodeAs[UpdateStatsPayload],
	TypeUnlockPlatform:   decodeAs[UnlockPlatformPayload],
	TypeUnlockGenre:      decodeAs[UnlockGenrePayload],
	TypeUnlockTechnology: decodeAs[UnlockTechnologyPayload],
	TypeToggleGameSpeed:  decodeAs[ToggleGameSpeedPayload],
	TypeResetGame:        decodeAs[ResetGamePayload],
}

// Known reports whether t is part of the action catalogue.
func Known(t ActionType) bool {
	_, ok := payloadDecoders[t]
	return ok
}

func (a Action) MarshalJSON() ([]byte, error) {
	out := wireAction{Type: a.Type}
	if a.Payload != nil {
		raw, err := json.Marshal(a.Payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", a.Type, err)
		}
		out.Payload = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the payload into the variant registered for the
// action type. Unknown types keep their payload as RawPayload.
func (a *Action) UnmarshalJSON(b []byte) error {
	var in wireAction
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if in.Type == "" {
		return fmt.Errorf("action type is required")
	}
	a.Type = in.Type

	decode, ok := payloadDecoders[in.Type]
	if !ok {
		a.Payload = RawPayload(bytes.Clone(in.Payload))
		return nil
	}
	p, err := decode(in.Payload)
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", in.Type, err)
	}
	a.Payload = p
	return nil
}

// ParseAction builds an action from its type name and a JSON payload, the
// shape used by command-line and HTTP callers.
func ParseAction(t ActionType, payload []byte) (Action, error) {
	raw, err := json.Marshal(wireAction{Type: t, Payload: payload})
	if err != nil {
		return Action{}, err
	}
	var a Action
	if err := json.Unmarshal(raw, &a); err != nil {
		return Action{}, err
	}
	return a, nil
}
