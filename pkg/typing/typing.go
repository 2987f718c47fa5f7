package typing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type is an element type, stored lower-case.
type Type string

const (
	Normal   Type = "normal"
	Fire     Type = "fire"
	Water    Type = "water"
	Electric Type = "electric"
	Grass    Type = "grass"
	Ice      Type = "ice"
	Fighting Type = "fighting"
	Poison   Type = "poison"
	Ground   Type = "ground"
	Flying   Type = "flying"
	Psychic  Type = "psychic"
	Bug      Type = "bug"
	Rock     Type = "rock"
	Ghost    Type = "ghost"
	Dragon   Type = "dragon"
	Dark     Type = "dark"
	Steel    Type = "steel"
	Fairy    Type = "fairy"
)

// validTypes is the fixed vocabulary, in display order.
var validTypes = []Type{
	Normal, Fire, Water, Electric, Grass, Ice,
	Fighting, Poison, Ground, Flying, Psychic, Bug,
	Rock, Ghost, Dragon, Dark, Steel, Fairy,
}

var (
	ErrUnknownType   = errors.New("unknown type")
	ErrDuplicateType = errors.New("secondary type must differ from primary type")
)

// IsValidType reports whether s names one of the 18 types, ignoring case and surrounding space.
func IsValidType(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Parse returns the canonical Type for s.
func Parse(s string) (Type, error) {
	needle := strings.TrimSpace(s)
	for _, t := range validTypes {
		if strings.EqualFold(string(t), needle) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// All returns the type vocabulary in display order.
func All() []Type {
	out := make([]Type, len(validTypes))
	copy(out, validTypes)
	return out
}

// ValidTypesString lists the vocabulary for prompts, e.g. "normal, fire, water, ...".
func ValidTypesString() string {
	names := make([]string, len(validTypes))
	for i, t := range validTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Title renders the type for display ("Fire").
func (t Type) Title() string {
	// Casers keep state, so each call gets its own.
	return cases.Title(language.English).String(string(t))
}

// Typing is the one- or two-element type set of a species or move.
// The zero value is invalid; build one with Single, Dual or New.
type Typing struct {
	primary   Type
	secondary Type
}

// Single builds a one-type Typing.
func Single(t Type) Typing {
	return Typing{primary: t}
}

// Dual builds a two-type Typing. The two types must differ.
func Dual(primary, secondary Type) (Typing, error) {
	if primary == secondary {
		return Typing{}, fmt.Errorf("%w: %s", ErrDuplicateType, primary.Title())
	}
	return Typing{primary: primary, secondary: secondary}, nil
}

// New parses a primary type and an optional secondary type (empty string for none).
func New(primary, secondary string) (Typing, error) {
	p, err := Parse(primary)
	if err != nil {
		return Typing{}, fmt.Errorf("invalid primary type: %w", err)
	}
	if strings.TrimSpace(secondary) == "" {
		return Single(p), nil
	}
	s, err := Parse(secondary)
	if err != nil {
		return Typing{}, fmt.Errorf("invalid secondary type: %w", err)
	}
	return Dual(p, s)
}

// MustNew is New for static data; it panics on error.
func MustNew(primary, secondary string) Typing {
	t, err := New(primary, secondary)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Typing) Primary() Type {
	return t.primary
}

// Secondary returns the second type, if any.
func (t Typing) Secondary() (Type, bool) {
	return t.secondary, t.secondary != ""
}

// IsZero reports whether t was never initialised.
func (t Typing) IsZero() bool {
	return t.primary == ""
}

// Types returns the one or two member types, primary first.
func (t Typing) Types() []Type {
	if t.secondary == "" {
		return []Type{t.primary}
	}
	return []Type{t.primary, t.secondary}
}

// Contains reports whether ty is the primary or secondary type.
func (t Typing) Contains(ty Type) bool {
	return ty != "" && (t.primary == ty || t.secondary == ty)
}

// SharesAny reports whether any type of t also appears in other.
func (t Typing) SharesAny(other Typing) bool {
	for _, ty := range t.Types() {
		if other.Contains(ty) {
			return true
		}
	}
	return false
}

// String renders "Fire" or "Fire/Flying".
func (t Typing) String() string {
	if t.secondary == "" {
		return t.primary.Title()
	}
	return t.primary.Title() + "/" + t.secondary.Title()
}

type typingJSON struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

func (t Typing) MarshalJSON() ([]byte, error) {
	return json.Marshal(typingJSON{Primary: string(t.primary), Secondary: string(t.secondary)})
}

// UnmarshalJSON validates both types, so a decoded Typing keeps the distinct-types invariant.
func (t *Typing) UnmarshalJSON(data []byte) error {
	var raw typingJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal typing: %w", err)
	}
	parsed, err := New(raw.Primary, raw.Secondary)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
