package catalog

import (
	"fmt"
	"strconv"

	"github.com/jwebster45206/pokedex-engine/pkg/trainer"
)

// TrainerManager is the trainer registry. Trainers are mutable, so reads go through
// View and changes through Update, both under the manager's lock.
type TrainerManager struct {
	trainers *collection[*trainer.Trainer]
}

func NewTrainerManager() *TrainerManager {
	return &TrainerManager{
		trainers: newCollection(
			func(t *trainer.Trainer) string { return strconv.Itoa(t.ID) },
			func(t *trainer.Trainer) []string {
				return []string{t.Name, t.Sex, t.Hometown, t.Description, t.Birthdate, strconv.Itoa(t.ID)}
			},
		),
	}
}

func (m *TrainerManager) Add(t *trainer.Trainer) error {
	if err := m.trainers.add(t); err != nil {
		return fmt.Errorf("trainer %d: %w", t.ID, err)
	}
	return nil
}

// Exists reports whether the id is taken.
func (m *TrainerManager) Exists(id int) bool {
	_, ok := m.trainers.get(strconv.Itoa(id))
	return ok
}

// Profiles lists every trainer's profile in registration order.
func (m *TrainerManager) Profiles() []trainer.Profile {
	return profiles(m.trainers.all())
}

// Search matches keyword against name, sex, hometown, description, birthdate and id.
// Results are profiles; use View for the full trainer.
func (m *TrainerManager) Search(keyword string) []trainer.Profile {
	return profiles(m.trainers.search(keyword))
}

func (m *TrainerManager) Len() int { return m.trainers.len() }

// View runs fn with shared access to the trainer. fn must not mutate it.
func (m *TrainerManager) View(id int, fn func(*trainer.Trainer) error) error {
	m.trainers.mu.RLock()
	defer m.trainers.mu.RUnlock()
	t, err := m.lookupLocked(id)
	if err != nil {
		return err
	}
	return fn(t)
}

// Update runs fn with exclusive access to the trainer, so checks and mutations inside fn
// cannot interleave with other requests.
func (m *TrainerManager) Update(id int, fn func(*trainer.Trainer) error) error {
	m.trainers.mu.Lock()
	defer m.trainers.mu.Unlock()
	t, err := m.lookupLocked(id)
	if err != nil {
		return err
	}
	return fn(t)
}

func (m *TrainerManager) lookupLocked(id int) (*trainer.Trainer, error) {
	i, ok := m.trainers.index[strconv.Itoa(id)]
	if !ok {
		return nil, fmt.Errorf("trainer %d: %w", id, ErrNotFound)
	}
	return m.trainers.order[i], nil
}

func profiles(ts []*trainer.Trainer) []trainer.Profile {
	out := make([]trainer.Profile, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Profile)
	}
	return out
}
