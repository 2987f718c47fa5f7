package catalog

import (
	"fmt"

	"github.com/jwebster45206/pokedex-engine/pkg/move"
	"github.com/jwebster45206/pokedex-engine/pkg/typing"
)

// MoveManager is the move catalog.
type MoveManager struct {
	moves *collection[move.Move]
}

func NewMoveManager() *MoveManager {
	return &MoveManager{
		moves: newCollection(
			func(m move.Move) string { return normalizeKey(m.Name()) },
			func(m move.Move) []string { return []string{m.Name(), m.Description()} },
		),
	}
}

func (m *MoveManager) Add(mv move.Move) error {
	if err := m.moves.add(mv); err != nil {
		return fmt.Errorf("move %q: %w", mv.Name(), err)
	}
	return nil
}

func (m *MoveManager) Find(name string) (move.Move, error) {
	mv, ok := m.moves.get(normalizeKey(name))
	if !ok {
		return move.Move{}, fmt.Errorf("move %q: %w", name, ErrNotFound)
	}
	return mv, nil
}

// Exists reports whether the move name is taken.
func (m *MoveManager) Exists(name string) bool {
	_, ok := m.moves.get(normalizeKey(name))
	return ok
}

func (m *MoveManager) All() []move.Move { return m.moves.all() }
func (m *MoveManager) Len() int         { return m.moves.len() }

// Search matches keyword against name and description.
func (m *MoveManager) Search(keyword string) []move.Move {
	return m.moves.search(keyword)
}

// ByType lists moves whose typing contains t.
func (m *MoveManager) ByType(t typing.Type) []move.Move {
	return m.moves.filter(func(mv move.Move) bool { return mv.Typing().Contains(t) })
}

// ByClassification lists HM or TM moves.
func (m *MoveManager) ByClassification(c move.Classification) []move.Move {
	return m.moves.filter(func(mv move.Move) bool { return mv.Classification() == c })
}
