package move

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/pokedex-engine/pkg/typing"
)

// Classification tags a move as HM or TM.
type Classification string

const (
	HM Classification = "HM"
	TM Classification = "TM"
)

var (
	ErrUnknownClassification = errors.New("classification must be HM or TM")
	ErrEmptyName             = errors.New("move name cannot be empty")
	ErrMissingTyping         = errors.New("move must have a primary type")
)

// ParseClassification accepts "hm"/"tm" in any case.
func ParseClassification(s string) (Classification, error) {
	switch Classification(strings.ToUpper(strings.TrimSpace(s))) {
	case HM:
		return HM, nil
	case TM:
		return TM, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClassification, s)
}

// Move is an immutable move record. It is passed by value; catalogs and
// Pokémon hold copies, so nothing can change a move after New returns it.
type Move struct {
	name           string
	description    string
	classification Classification
	typing         typing.Typing
}

// New builds a Move. The typing carries the distinct primary/secondary invariant.
func New(name, description string, class Classification, t typing.Typing) (Move, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Move{}, ErrEmptyName
	}
	if _, err := ParseClassification(string(class)); err != nil {
		return Move{}, err
	}
	if t.IsZero() {
		return Move{}, ErrMissingTyping
	}
	return Move{
		name:           name,
		description:    strings.TrimSpace(description),
		classification: class,
		typing:         t,
	}, nil
}

func (m Move) Name() string                   { return m.name }
func (m Move) Description() string            { return m.description }
func (m Move) Classification() Classification { return m.classification }
func (m Move) Typing() typing.Typing          { return m.typing }

// Is reports whether m and other are the same move. Moves are identified by name, ignoring case.
func (m Move) Is(other Move) bool {
	return strings.EqualFold(m.name, other.name)
}

// Forgettable reports whether a Pokémon may forget the move. HM moves cannot be forgotten.
func (m Move) Forgettable() bool {
	return m.classification != HM
}

func (m Move) String() string {
	return fmt.Sprintf("%s (%s, %s)", m.name, m.classification, m.typing)
}
