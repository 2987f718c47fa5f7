// Package journal records the outcome of every rule-engine operation: successful
// mutations and refused ones. Events can be listed and streamed.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names what happened.
type EventType string

const (
	EventCatalogAdded  EventType = "catalog.added"
	EventPokemonCaught EventType = "pokemon.caught"
	EventMoveLearned   EventType = "pokemon.move_learned"
	EventMoveForgotten EventType = "pokemon.move_forgotten"
	EventLevelUp       EventType = "pokemon.level_up"
	EventEvolved       EventType = "pokemon.evolved"
	EventItemUsed      EventType = "pokemon.item_used"
	EventItemHeld      EventType = "pokemon.item_held"
	EventItemTaken     EventType = "pokemon.item_taken"
	EventSwitched      EventType = "pokemon.switched"
	EventReleased      EventType = "pokemon.released"
	EventItemBought    EventType = "trainer.item_bought"
	EventItemSold      EventType = "trainer.item_sold"
	EventItemDiscarded EventType = "trainer.item_discarded"
	EventRuleViolation EventType = "rule.violation"
)

// DefaultLimit is how many events a journal keeps when no limit is configured.
const DefaultLimit = 200

// Event is one journal entry.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      EventType `json:"type"`
	TrainerID int       `json:"trainer_id,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// NewEvent stamps a new event with an id and the current time.
func NewEvent(typ EventType, trainerID int, subject, message string) Event {
	return Event{
		ID:        uuid.New(),
		Type:      typ,
		TrainerID: trainerID,
		Subject:   subject,
		Message:   message,
		At:        time.Now().UTC(),
	}
}

// Journal stores a bounded window of recent events.
type Journal interface {
	Record(ctx context.Context, e Event) error
	// Recent returns up to limit events, oldest first.
	Recent(ctx context.Context, limit int) ([]Event, error)
	// Subscribe delivers events recorded after the call until ctx is done.
	Subscribe(ctx context.Context) (<-chan Event, error)
	Ping(ctx context.Context) error
	Close() error
}
