package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jwebster45206/pokedex-engine/pkg/trainer"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

var placeholder = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Runner executes integration tests against a running pokedex-engine API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode

	// nextTrainer hands out trainer ids so suites never collide, even against a long-running server.
	nextTrainer atomic.Int64
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	r := &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Timeout:           30 * time.Second,
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
	r.nextTrainer.Store(int64(100_000 + rand.IntN(800_000)))
	return r
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	vars := map[string]string{}
	if suite.SeedTrainer != nil {
		id, err := r.seedTrainer(ctx, *suite.SeedTrainer)
		if err != nil {
			result.Error = fmt.Errorf("failed to seed trainer: %w", err)
			result.Duration = time.Since(start)
			return result, result.Error
		}
		result.TrainerID = id
		vars[TrainerVar] = strconv.Itoa(id)
	}

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.executeStep(ctx, step, vars)
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// seedTrainer registers the suite's trainer under a fresh id via POST /v1/trainers
func (r *Runner) seedTrainer(ctx context.Context, seed SeedTrainer) (int, error) {
	seed.ID = int(r.nextTrainer.Add(1))
	if seed.Name == "" {
		seed.Name = "Tester"
	}

	body, err := json.Marshal(seed)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal trainer: %w", err)
	}

	status, respBody, err := r.do(ctx, http.MethodPost, "/v1/trainers", body)
	if err != nil {
		return 0, err
	}
	if status != http.StatusCreated {
		return 0, fmt.Errorf("create trainer returned %d: %s", status, string(respBody))
	}

	var created trainer.Profile
	if err := json.Unmarshal(respBody, &created); err != nil {
		return 0, fmt.Errorf("failed to decode created trainer: %w", err)
	}
	return created.ID, nil
}

// executeStep sends the step's request and checks expectations
func (r *Runner) executeStep(ctx context.Context, step TestStep, vars map[string]string) TestResult {
	start := time.Now()
	result := TestResult{
		StepName: step.Name,
	}
	fail := func(err error) TestResult {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	path, err := expand(step.Path, vars)
	if err != nil {
		return fail(err)
	}
	var body []byte
	if len(step.Body) > 0 {
		expanded, err := expand(string(step.Body), vars)
		if err != nil {
			return fail(err)
		}
		body = []byte(expanded)
	}

	method := step.Method
	if method == "" {
		method = http.MethodGet
	}
	status, respBody, err := r.do(ctx, method, path, body)
	if err != nil {
		return fail(err)
	}
	result.ResponseText = string(respBody)

	var doc any
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &doc); err != nil {
			return fail(fmt.Errorf("response is not JSON: %w", err))
		}
	}

	if err := checkExpectations(step.Expectations, status, doc, result.ResponseText); err != nil {
		return fail(fmt.Errorf("expectation failed: %w", err))
	}

	for name, fieldPath := range step.Capture {
		v, ok := lookup(doc, fieldPath)
		if !ok {
			return fail(fmt.Errorf("capture %s: response has no field %s", name, fieldPath))
		}
		vars[name] = fmt.Sprint(v)
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// expand replaces {{name}} placeholders; an unknown name is an error.
func expand(s string, vars map[string]string) (string, error) {
	var missing []string
	out := placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		v, ok := vars[name]
		if !ok {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("undefined variables: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// lookup walks a decoded JSON document along a dotted path. Numeric segments index
// arrays and "#" yields an array's length.
func lookup(doc any, path string) (any, bool) {
	cur := doc
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			if seg == "#" {
				cur = float64(len(node))
				continue
			}
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// checkExpectations validates the response against the step's expectations
func checkExpectations(exp Expectations, status int, doc any, responseText string) error {
	if exp.Status != 0 && status != exp.Status {
		return fmt.Errorf("expected status %d, got %d: %s", exp.Status, status, responseText)
	}

	for path, expected := range exp.Fields {
		actual, ok := lookup(doc, path)
		if !ok {
			return fmt.Errorf("expected field %s, but it is missing", path)
		}
		if !reflect.DeepEqual(actual, expected) {
			return fmt.Errorf("expected %s to be %v, got %v", path, expected, actual)
		}
	}

	if len(exp.ResponseContains) > 0 {
		lowerResponse := strings.ToLower(responseText)
		for _, expectedText := range exp.ResponseContains {
			if !strings.Contains(lowerResponse, strings.ToLower(expectedText)) {
				return fmt.Errorf("expected response to contain '%s', but it didn't", expectedText)
			}
		}
	}

	if len(exp.ResponseNotContains) > 0 {
		lowerResponse := strings.ToLower(responseText)
		for _, unexpectedText := range exp.ResponseNotContains {
			if strings.Contains(lowerResponse, strings.ToLower(unexpectedText)) {
				return fmt.Errorf("expected response to NOT contain '%s', but it did", unexpectedText)
			}
		}
	}

	if exp.ResponseRegex != "" {
		matched, err := regexp.MatchString(exp.ResponseRegex, responseText)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("response didn't match regex pattern: %s", exp.ResponseRegex)
		}
	}

	return nil
}
