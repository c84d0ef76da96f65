package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AggregateType identifies the entity an outbox event belongs to.
type AggregateType string

// EventType identifies the kind of outbox event.
type EventType string

const (
	AggregatePlayer AggregateType = "player"
	AggregateLedger AggregateType = "ledger"

	EventPlayerRegistered  EventType = "player.registered"
	EventPlayerBanned      EventType = "player.banned"
	EventPlayerUnbanned    EventType = "player.unbanned"
	EventPlayerDeleted     EventType = "player.deleted"
	EventCreditsChanged    EventType = "ledger.credits_changed"
	EventCosmeticPurchased EventType = "ledger.cosmetic_purchased"
)

// OutboxDraft is an event pending publication, written in the same
// transaction as the mutation it describes.
type OutboxDraft struct {
	SeqID         int64           `json:"-"`
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func newDraft(agg AggregateType, aggID string, evt EventType, payload interface{}) OutboxDraft {
	body, _ := json.Marshal(payload)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: agg,
		AggregateID:   aggID,
		EventType:     evt,
		Payload:       body,
		OccurredAt:    time.Now(),
	}
}

// NewPlayerRegisteredEvent creates a player lifecycle event.
func NewPlayerRegisteredEvent(p *Player) OutboxDraft {
	return newDraft(AggregatePlayer, p.ID.String(), EventPlayerRegistered, map[string]string{
		"player_id": p.ID.String(),
		"game_id":   p.GameID,
		"username":  p.Username,
	})
}

// NewCreditsChangedEvent records a balance mutation with its post-update snapshot.
func NewCreditsChangedEvent(playerID uuid.UUID, delta, newBalance int64, reason string) OutboxDraft {
	return newDraft(AggregateLedger, playerID.String(), EventCreditsChanged, map[string]interface{}{
		"player_id":   playerID.String(),
		"delta":       delta,
		"new_balance": newBalance,
		"reason":      reason,
	})
}

// NewCosmeticPurchasedEvent records an atomic debit-and-grant purchase.
func NewCosmeticPurchasedEvent(playerID, cosmeticID uuid.UUID, price, newBalance int64) OutboxDraft {
	return newDraft(AggregateLedger, playerID.String(), EventCosmeticPurchased, map[string]interface{}{
		"player_id":   playerID.String(),
		"cosmetic_id": cosmeticID.String(),
		"price":       price,
		"new_balance": newBalance,
	})
}

// NewPlayerBannedEvent records a ban flag change.
func NewPlayerBannedEvent(playerID uuid.UUID, banned bool) OutboxDraft {
	evt := EventPlayerBanned
	if !banned {
		evt = EventPlayerUnbanned
	}
	return newDraft(AggregatePlayer, playerID.String(), evt, map[string]interface{}{
		"player_id": playerID.String(),
		"banned":    banned,
	})
}

// NewPlayerDeletedEvent records a cascading account deletion.
func NewPlayerDeletedEvent(playerID uuid.UUID) OutboxDraft {
	return newDraft(AggregatePlayer, playerID.String(), EventPlayerDeleted, map[string]string{
		"player_id": playerID.String(),
	})
}
