package integration

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jwebster45206/pokedex-engine/integration/runner"
	"github.com/jwebster45206/pokedex-engine/internal/engine"
	"github.com/jwebster45206/pokedex-engine/internal/handlers"
	"github.com/jwebster45206/pokedex-engine/internal/journal"
	"github.com/jwebster45206/pokedex-engine/internal/seed"
	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
)

var caseFlag = flag.String("case", "", "Name of test case to run (from integration/cases/)")
var errFlag = flag.String("err", "continue", "Error handling mode: 'continue' (run all steps) or 'exit' (stop on first failure)")
var runsFlag = flag.Int("runs", 1, "Number of times to run each test suite")

// apiBaseURL returns API_BASE_URL, or starts an in-process API on the embedded seed data.
func apiBaseURL(t *testing.T) string {
	t.Helper()
	if url := os.Getenv("API_BASE_URL"); url != "" {
		return url
	}

	data, err := seed.Default()
	if err != nil {
		t.Fatalf("Failed to load seed data: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	j := journal.NewMemoryJournal(500)
	eng, err := engine.Load(data, pokemon.LegacyDelta, j, logger)
	if err != nil {
		t.Fatalf("Failed to build engine: %v", err)
	}
	srv := httptest.NewServer(handlers.NewRouter(eng, j, logger))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newRunner(t *testing.T) *runner.Runner {
	testRunner := runner.NewRunner(apiBaseURL(t))
	testRunner.Timeout = time.Duration(getIntEnv("TEST_TIMEOUT_SECONDS", 30)) * time.Second
	testRunner.Logger = func(format string, args ...interface{}) {
		t.Logf(format, args...)
	}
	return testRunner
}

func TestIntegrationSuites(t *testing.T) {
	testRunner := newRunner(t)

	testFiles, err := discoverTestFiles("cases")
	if err != nil {
		t.Fatalf("Failed to discover test files: %v", err)
	}
	if len(testFiles) == 0 {
		t.Fatal("No test files found in cases directory")
	}

	var jobs []runner.TestJob
	for _, file := range testFiles {
		expandedJobs, err := runner.LoadTestSuiteWithExpansion(file, "cases")
		if err != nil {
			t.Errorf("Failed to load test suite %s: %v", file, err)
			continue
		}
		jobs = append(jobs, expandedJobs...)
	}
	if len(jobs) == 0 {
		t.Fatal("No valid test suites loaded")
	}

	runJobs(t, testRunner, jobs, 1)
}

// TestSingleSuite allows running individual test suites for debugging
// Supports multiple cases comma-separated: -case "shop,sequences/smoke"
func TestSingleSuite(t *testing.T) {
	if *caseFlag == "" {
		t.Skip("Skipping single suite test (use -case flag to run)")
	}
	if *errFlag != "exit" && *errFlag != "continue" {
		t.Fatalf("Invalid -err flag value: %s (must be 'exit' or 'continue')", *errFlag)
	}
	if *runsFlag < 1 {
		t.Fatalf("Number of runs must be >= 1, got: %d", *runsFlag)
	}

	var jobs []runner.TestJob
	for _, caseName := range strings.Split(*caseFlag, ",") {
		caseName = strings.TrimSpace(caseName)
		if caseName == "" {
			continue
		}
		suiteFile := filepath.Join("cases", caseName)
		if !strings.HasSuffix(suiteFile, ".json") {
			suiteFile += ".json"
		}
		expanded, err := runner.LoadTestSuiteWithExpansion(suiteFile, "cases")
		if err != nil {
			t.Fatalf("Failed to load test suite %s: %v", suiteFile, err)
		}
		jobs = append(jobs, expanded...)
	}
	if len(jobs) == 0 {
		t.Fatalf("No valid test cases found in -case flag: %s", *caseFlag)
	}

	testRunner := newRunner(t)
	testRunner.ErrorHandlingMode = runner.ErrorHandlingMode(*errFlag)
	runJobs(t, testRunner, jobs, *runsFlag)
}

func runJobs(t *testing.T, testRunner *runner.Runner, jobs []runner.TestJob, runs int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var failed []string
	passed := 0
	for run := 1; run <= runs; run++ {
		for i, job := range jobs {
			t.Logf("[%d/%d] Starting test suite: %s (%d steps)", i+1, len(jobs), job.Name, len(job.Suite.Steps))

			result, err := testRunner.RunSuite(ctx, job.Suite)
			if err != nil && result.Error == nil {
				result.Error = err
			}
			if result.TrainerID != 0 {
				t.Logf("Trainer ID: %d", result.TrainerID)
			}

			if result.Error != nil {
				failed = append(failed, fmt.Sprintf("%s (run %d): %v", job.Name, run, result.Error))
				t.Errorf("[%d/%d] FAILED: Test suite '%s' failed: %v", i+1, len(jobs), job.Name, result.Error)
				for _, stepResult := range result.Results {
					if !stepResult.Success {
						t.Errorf("   ✗ %s: %v", stepResult.StepName, stepResult.Error)
					}
				}
				continue
			}
			passed++
			t.Logf("[%d/%d] PASSED: Test suite '%s' completed in %v", i+1, len(jobs), job.Name, result.Duration)
		}
	}

	t.Logf("Integration Test Summary: %d passed, %d failed", passed, len(failed))
	if len(failed) > 0 {
		for _, failure := range failed {
			t.Logf("   - %s", failure)
		}
		t.Fatalf("Integration tests failed")
	}
}

// discoverTestFiles lists the top-level case files; sequences live in subdirectories and run by name.
func discoverTestFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
