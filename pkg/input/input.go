// Package input validates and normalises raw text typed into the console or sent to the API.
// Every failure wraps ErrInvalid.
package input

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/jwebster45206/pokedex-engine/pkg/move"
	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
	"github.com/jwebster45206/pokedex-engine/pkg/typing"
)

var ErrInvalid = errors.New("invalid input")

// Limits on free-text fields.
const (
	MaxMoveName        = 20
	MaxMoveDescription = 120
	MinStat            = 1
	MaxStat            = 255
	BirthdateLayout    = "2006-01-02"
)

var (
	namePattern     = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]*$`)
	dexPattern      = regexp.MustCompile(`^\d{4}$`)
	moveNamePattern = regexp.MustCompile(`^[A-Za-z0-9.\-\s'()]+$`)
	moveDescPattern = regexp.MustCompile(`^[A-Za-z0-9.,'\-()/%\s]+$`)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Name accepts a species, trainer or hometown-style name: a letter followed by
// letters, spaces, periods, apostrophes or hyphens.
func Name(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid("name cannot be empty")
	}
	if !namePattern.MatchString(s) {
		return "", invalid("%q may only contain letters, spaces, periods, apostrophes and hyphens", s)
	}
	return s, nil
}

// Text accepts any non-empty line, trimmed.
func Text(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid("%s cannot be empty", field)
	}
	return s, nil
}

// Dex accepts a four-digit dex number between 0001 and 1010.
func Dex(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !dexPattern.MatchString(s) {
		return 0, invalid("dex number must be four digits, got %q", s)
	}
	n, _ := strconv.Atoi(s)
	if pokemon.ValidateDex(n) != nil {
		return 0, invalid("dex number must be between 0001 and 1010, got %s", s)
	}
	return n, nil
}

// OptionalDex accepts an empty string or "0000" as "none", otherwise behaves like Dex.
func OptionalDex(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" || s == "0000" {
		return pokemon.NoEvolution, nil
	}
	return Dex(s)
}

// Stat accepts a base stat between 1 and 255.
func Stat(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, invalid("stat must be a whole number, got %q", s)
	}
	if n < MinStat || n > MaxStat {
		return 0, invalid("stat must be between %d and %d, got %d", MinStat, MaxStat, n)
	}
	return n, nil
}

// Int accepts a whole number no smaller than minimum.
func Int(field, s string, minimum int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, invalid("%s must be a whole number, got %q", field, s)
	}
	if n < minimum {
		return 0, invalid("%s must be at least %d, got %d", field, minimum, n)
	}
	return n, nil
}

// Confirm accepts Y/N answers, ignoring case.
func Confirm(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, invalid("answer Y or N, got %q", s)
}

// Type accepts one of the 18 type names, ignoring case.
func Type(s string) (typing.Type, error) {
	t, err := typing.Parse(s)
	if err != nil {
		return "", invalid("%q is not a type; valid types: %s", strings.TrimSpace(s), typing.ValidTypesString())
	}
	return t, nil
}

// Typing builds a Typing from a required primary and an optional secondary type.
func Typing(primary, secondary string) (typing.Typing, error) {
	t, err := typing.New(primary, secondary)
	if err != nil {
		return typing.Typing{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return t, nil
}

// MoveName accepts up to 20 letters, digits, spaces and . - ' ( ) and capitalises the first letter.
func MoveName(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "", invalid("move name cannot be empty")
	case utf8.RuneCountInString(s) > MaxMoveName:
		return "", invalid("move name is longer than %d characters", MaxMoveName)
	case !moveNamePattern.MatchString(s):
		return "", invalid("move name may only contain letters, numbers, dashes, apostrophes, periods, parentheses and spaces")
	}
	return capitalize(s), nil
}

// MoveDescription accepts up to 120 characters ending with a period and capitalises the first letter.
func MoveDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "", invalid("description cannot be empty")
	case utf8.RuneCountInString(s) > MaxMoveDescription:
		return "", invalid("description is longer than %d characters", MaxMoveDescription)
	case !moveDescPattern.MatchString(s):
		return "", invalid("description may only contain letters, numbers, spaces and . , - ' ( ) / %%")
	case !strings.HasSuffix(s, "."):
		return "", invalid("description must end with a period")
	}
	return capitalize(s), nil
}

// Classification accepts HM or TM.
func Classification(s string) (move.Classification, error) {
	c, err := move.ParseClassification(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return c, nil
}

// Birthdate accepts YYYY-MM-DD dates that are not in the future.
func Birthdate(s string) (string, error) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(BirthdateLayout, s)
	if err != nil {
		return "", invalid("birthdate must look like 2006-01-21, got %q", s)
	}
	if d.After(time.Now()) {
		return "", invalid("birthdate %s is in the future", s)
	}
	return s, nil
}

// Sex accepts Male or Female in any case.
func Sex(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return "Male", nil
	case "f", "female":
		return "Female", nil
	}
	return "", invalid("sex must be Male or Female, got %q", s)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
