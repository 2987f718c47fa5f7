package runner

import (
	"encoding/json"
	"time"

	"github.com/jwebster45206/pokedex-engine/pkg/trainer"
)

// TrainerVar is the variable holding the id of the trainer seeded for a suite run.
const TrainerVar = "trainer"

// TestSuite defines a complete integration test scenario
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name        string       `json:"name"`
	SeedTrainer *SeedTrainer `json:"seed_trainer,omitempty"` // Used for regular tests
	Steps       []TestStep   `json:"steps,omitempty"`        // Used for regular tests
	Cases       []string     `json:"cases,omitempty"`        // Used for suite tests (list of case files)
}

// SeedTrainer is registered before the first step under a fresh id, available to steps as {{trainer}}.
type SeedTrainer struct {
	trainer.Profile
	Money *int `json:"money,omitempty"`
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep is one request and its expected outcome. {{name}} placeholders in Path and Body
// are replaced with seeded or captured variables.
type TestStep struct {
	Name         string            `json:"name,omitempty"`
	Method       string            `json:"method"`
	Path         string            `json:"path"`
	Body         json.RawMessage   `json:"body,omitempty"`
	Capture      map[string]string `json:"capture,omitempty"` // variable name -> response field path
	Expectations Expectations      `json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	Status int `json:"status"`
	// Fields maps a dotted path ("pokemon.moves.0.name", "lineup.#") to its expected JSON value.
	Fields map[string]any `json:"fields,omitempty"`

	// Response Analysis
	ResponseContains    []string `json:"response_contains,omitempty"`
	ResponseNotContains []string `json:"response_not_contains,omitempty"`
	ResponseRegex       string   `json:"response_regex,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName     string
	StepName     string
	Success      bool
	Error        error
	Duration     time.Duration
	ResponseText string
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job       TestJob
	Results   []TestResult
	Error     error
	Duration  time.Duration
	TrainerID int // ID of the trainer seeded for this run, 0 when none
}
