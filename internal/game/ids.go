package game

import (
	"time"

	"github.com/google/uuid"
)

// NewID mints an entity id. UUIDv7 leads with a millisecond timestamp and
// fills the rest with random bits.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Stamp fills in ids and timestamps the sender left blank. Actions arriving
// over the wire are stamped before they are journaled.
func Stamp(a Action, now time.Time) Action {
	switch p := a.Payload.(type) {
	case AddProjectPayload:
		if p.ID == "" {
			p.ID = NewID()
		}
		a.Payload = p
	case HireEmployeePayload:
		if p.ID == "" {
			p.ID = NewID()
		}
		a.Payload = p
	case AddNotificationPayload:
		if p.ID == "" {
			p.ID = NewID()
		}
		if p.Timestamp == 0 {
			p.Timestamp = now.UnixMilli()
		}
		a.Payload = p
	case CreatePriceAlertPayload:
		if p.ID == "" {
			p.ID = NewID()
		}
		a.Payload = p
	case TriggerMarketEventPayload:
		if p.ID == "" {
			p.ID = NewID()
		}
		a.Payload = p
	}
	return a
}
