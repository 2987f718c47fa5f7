package stats

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stat names one of the six base stats.
type Stat string

const (
	HP             Stat = "hp"
	Attack         Stat = "attack"
	Defense        Stat = "defense"
	SpecialAttack  Stat = "special_attack"
	SpecialDefense Stat = "special_defense"
	Speed          Stat = "speed"
)

// All lists the stats in display order.
var All = []Stat{HP, Attack, Defense, SpecialAttack, SpecialDefense, Speed}

var (
	ErrUnknownStat  = errors.New("unknown stat")
	ErrNegativeStat = errors.New("base stats must be non-negative")
)

var statAliases = map[string]Stat{
	"hp":              HP,
	"attack":          Attack,
	"atk":             Attack,
	"defense":         Defense,
	"def":             Defense,
	"special_attack":  SpecialAttack,
	"sp_attack":       SpecialAttack,
	"sp_atk":          SpecialAttack,
	"spatk":           SpecialAttack,
	"special_defense": SpecialDefense,
	"sp_defense":      SpecialDefense,
	"sp_def":          SpecialDefense,
	"spdef":           SpecialDefense,
	"speed":           Speed,
	"spe":             Speed,
}

// ParseStat accepts "HP", "Special Attack", "special-attack", "sp_atk" and similar spellings.
func ParseStat(s string) (Stat, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_", ".", "").Replace(key)
	if st, ok := statAliases[key]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStat, s)
}

// Label is the display name of the stat ("Special Attack").
func (s Stat) Label() string {
	if s == HP {
		return "HP"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "_", " "))
}

// BaseStats holds the six stats of a species or Pokémon.
// After construction, values change only through Adjust, Grow and AdjustAll.
type BaseStats struct {
	HP             int `json:"hp" yaml:"hp"`
	Attack         int `json:"attack" yaml:"attack"`
	Defense        int `json:"defense" yaml:"defense"`
	SpecialAttack  int `json:"special_attack" yaml:"special_attack"`
	SpecialDefense int `json:"special_defense" yaml:"special_defense"`
	Speed          int `json:"speed" yaml:"speed"`
}

// New builds BaseStats, rejecting negative values.
func New(hp, attack, defense, spAttack, spDefense, speed int) (BaseStats, error) {
	s := BaseStats{
		HP:             hp,
		Attack:         attack,
		Defense:        defense,
		SpecialAttack:  spAttack,
		SpecialDefense: spDefense,
		Speed:          speed,
	}
	if err := s.Validate(); err != nil {
		return BaseStats{}, err
	}
	return s, nil
}

// FromFour builds BaseStats from the four-stat form (HP, Attack, Defense, Speed).
// Special Attack and Special Defense start at zero.
func FromFour(hp, attack, defense, speed int) (BaseStats, error) {
	return New(hp, attack, defense, 0, 0, speed)
}

// Validate reports negative fields.
func (s BaseStats) Validate() error {
	for _, st := range All {
		if v := s.Get(st); v < 0 {
			return fmt.Errorf("%w: %s is %d", ErrNegativeStat, st.Label(), v)
		}
	}
	return nil
}

// Total is recomputed from the current fields on every call.
func (s BaseStats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpecialAttack + s.SpecialDefense + s.Speed
}

// Get returns the value of one stat. Unknown stats read as zero.
func (s BaseStats) Get(st Stat) int {
	if p := s.field(st); p != nil {
		return *p
	}
	return 0
}

// Adjust adds delta to one stat. Negative deltas are allowed and the
// result is not clamped, so a stat can drop below zero.
func (s *BaseStats) Adjust(st Stat, delta int) error {
	p := s.field(st)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownStat, st)
	}
	*p += delta
	return nil
}

// AdjustAll adds every field of delta to the matching stat.
func (s *BaseStats) AdjustAll(delta BaseStats) {
	for _, st := range All {
		_ = s.Adjust(st, delta.Get(st))
	}
}

// Grow applies the level-up rule: each stat gains 10% of its current value, truncated.
// Growth compounds across levels.
func (s *BaseStats) Grow() {
	for _, st := range All {
		_ = s.Adjust(st, s.Get(st)/10)
	}
}

// Delta returns target minus s, stat by stat.
func (s BaseStats) Delta(target BaseStats) BaseStats {
	return BaseStats{
		HP:             target.HP - s.HP,
		Attack:         target.Attack - s.Attack,
		Defense:        target.Defense - s.Defense,
		SpecialAttack:  target.SpecialAttack - s.SpecialAttack,
		SpecialDefense: target.SpecialDefense - s.SpecialDefense,
		Speed:          target.Speed - s.Speed,
	}
}

func (s *BaseStats) field(st Stat) *int {
	switch st {
	case HP:
		return &s.HP
	case Attack:
		return &s.Attack
	case Defense:
		return &s.Defense
	case SpecialAttack:
		return &s.SpecialAttack
	case SpecialDefense:
		return &s.SpecialDefense
	case Speed:
		return &s.Speed
	}
	return nil
}
