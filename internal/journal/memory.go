package journal

import (
	"context"
	"sync"
)

// MemoryJournal keeps events in process memory. It is used when no Redis URL is configured.
type MemoryJournal struct {
	mu          sync.Mutex
	events      []Event
	limit       int
	subscribers map[chan Event]struct{}
}

var _ Journal = (*MemoryJournal)(nil)

func NewMemoryJournal(limit int) *MemoryJournal {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryJournal{limit: limit, subscribers: make(map[chan Event]struct{})}
}

func (j *MemoryJournal) Record(_ context.Context, e Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
	if over := len(j.events) - j.limit; over > 0 {
		j.events = append([]Event(nil), j.events[over:]...)
	}
	for ch := range j.subscribers {
		// Slow subscribers miss events rather than block the engine.
		select {
		case ch <- e:
		default:
		}
	}
	return nil
}

func (j *MemoryJournal) Recent(_ context.Context, limit int) ([]Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if limit <= 0 || limit > len(j.events) {
		limit = len(j.events)
	}
	return append([]Event(nil), j.events[len(j.events)-limit:]...), nil
}

func (j *MemoryJournal) Subscribe(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 16)
	j.mu.Lock()
	j.subscribers[ch] = struct{}{}
	j.mu.Unlock()

	go func() {
		<-ctx.Done()
		j.mu.Lock()
		delete(j.subscribers, ch)
		close(ch)
		j.mu.Unlock()
	}()
	return ch, nil
}

func (j *MemoryJournal) Ping(context.Context) error { return nil }
func (j *MemoryJournal) Close() error               { return nil }
