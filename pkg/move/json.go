package move

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/pokedex-engine/pkg/typing"
)

// Spec is the serializable form of a Move
type Spec struct {
	Name           string         `json:"name" yaml:"name"`
	Description    string         `json:"description" yaml:"description"`
	Classification Classification `json:"classification" yaml:"classification"`
	PrimaryType    string         `json:"primary_type" yaml:"primary_type"`
	SecondaryType  string         `json:"secondary_type,omitempty" yaml:"secondary_type,omitempty"`
}

// Build validates the spec and returns the Move.
func (s Spec) Build() (Move, error) {
	t, err := typing.New(s.PrimaryType, s.SecondaryType)
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", s.Name, err)
	}
	class, err := ParseClassification(string(s.Classification))
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", s.Name, err)
	}
	return New(s.Name, s.Description, class, t)
}

// ToSpec converts the move back to its serializable form.
func (m Move) ToSpec() Spec {
	spec := Spec{
		Name:           m.name,
		Description:    m.description,
		Classification: m.classification,
		PrimaryType:    string(m.typing.Primary()),
	}
	if sec, ok := m.typing.Secondary(); ok {
		spec.SecondaryType = string(sec)
	}
	return spec
}

func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToSpec())
}

func (m *Move) UnmarshalJSON(data []byte) error {
	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("failed to unmarshal move: %w", err)
	}
	built, err := spec.Build()
	if err != nil {
		return err
	}
	*m = built
	return nil
}
