package stats

import (
	"errors"
	"testing"
)

func TestBaseStats_AdjustUpdatesTotal(t *testing.T) {
	s, err := FromFour(45, 49, 49, 45)
	if err != nil {
		t.Fatalf("FromFour() error = %v", err)
	}
	if got := s.Total(); got != 188 {
		t.Fatalf("Total() = %d, want 188", got)
	}

	if err := s.Adjust(Attack, 10); err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if s.Attack != 59 {
		t.Errorf("Attack = %d, want 59", s.Attack)
	}
	if got := s.Total(); got != 198 {
		t.Errorf("Total() = %d, want 198", got)
	}
}

func TestBaseStats_AdjustIsNotClamped(t *testing.T) {
	// A negative delta larger than the stat leaves the stat below zero.
	s, _ := New(10, 10, 10, 10, 10, 10)
	if err := s.Adjust(Speed, -25); err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if s.Speed != -15 {
		t.Errorf("Speed = %d, want -15", s.Speed)
	}
	if got := s.Total(); got != 35 {
		t.Errorf("Total() = %d, want 35", got)
	}
}

func TestBaseStats_AdjustUnknownStat(t *testing.T) {
	s, _ := New(1, 1, 1, 1, 1, 1)
	if err := s.Adjust(Stat("luck"), 5); !errors.Is(err, ErrUnknownStat) {
		t.Errorf("Adjust() error = %v, want ErrUnknownStat", err)
	}
	if s.Total() != 6 {
		t.Errorf("Total() = %d, want unchanged 6", s.Total())
	}
}

func TestNew_RejectsNegative(t *testing.T) {
	if _, err := New(10, -1, 10, 10, 10, 10); !errors.Is(err, ErrNegativeStat) {
		t.Errorf("New() error = %v, want ErrNegativeStat", err)
	}
}

func TestBaseStats_GrowCompounds(t *testing.T) {
	s, _ := New(100, 55, 9, 20, 30, 45)

	s.Grow()
	want := BaseStats{HP: 110, Attack: 60, Defense: 9, SpecialAttack: 22, SpecialDefense: 33, Speed: 49}
	if s != want {
		t.Fatalf("after first Grow() = %+v, want %+v", s, want)
	}

	s.Grow()
	want = BaseStats{HP: 121, Attack: 66, Defense: 9, SpecialAttack: 24, SpecialDefense: 36, Speed: 53}
	if s != want {
		t.Errorf("after second Grow() = %+v, want %+v", s, want)
	}
}

func TestBaseStats_Delta(t *testing.T) {
	cur, _ := New(45, 49, 49, 65, 65, 45)
	next, _ := New(60, 62, 63, 80, 80, 60)

	d := cur.Delta(next)
	want := BaseStats{HP: 15, Attack: 13, Defense: 14, SpecialAttack: 15, SpecialDefense: 15, Speed: 15}
	if d != want {
		t.Fatalf("Delta() = %+v, want %+v", d, want)
	}

	cur.AdjustAll(d)
	if cur != next {
		t.Errorf("current + delta = %+v, want %+v", cur, next)
	}
}

func TestParseStat(t *testing.T) {
	tests := []struct {
		in   string
		want Stat
	}{
		{"HP", HP},
		{"attack", Attack},
		{"Special Attack", SpecialAttack},
		{"special-defense", SpecialDefense},
		{"Sp. Atk", SpecialAttack},
		{" Speed ", Speed},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStat(tt.in)
			if err != nil {
				t.Fatalf("ParseStat(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseStat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseStat("evasion"); !errors.Is(err, ErrUnknownStat) {
		t.Errorf("ParseStat(evasion) error = %v, want ErrUnknownStat", err)
	}
}

func TestStat_Label(t *testing.T) {
	tests := []struct {
		stat Stat
		want string
	}{
		{HP, "HP"},
		{Attack, "Attack"},
		{SpecialAttack, "Special Attack"},
		{SpecialDefense, "Special Defense"},
		{Speed, "Speed"},
		{Stat(""), ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.stat), func(t *testing.T) {
			if got := tt.stat.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
