package runner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	var doc any
	require.NoError(t, json.Unmarshal([]byte(`{"money": 2000, "lineup": [{"name": "Eevee", "moves": []}], "bag": []}`), &doc))

	tests := []struct {
		path string
		want any
		ok   bool
	}{
		{"money", float64(2000), true},
		{"lineup.#", float64(1), true},
		{"lineup.0.name", "Eevee", true},
		{"lineup.0.moves.#", float64(0), true},
		{"bag.#", float64(0), true},
		{"lineup.1.name", nil, false},
		{"storage", nil, false},
		{"money.value", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := lookup(doc, tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpand(t *testing.T) {
	vars := map[string]string{"trainer": "42", "pid": "abc"}

	got, err := expand("/v1/trainers/{{trainer}}/pokemon/{{pid}}/evolve", vars)
	require.NoError(t, err)
	assert.Equal(t, "/v1/trainers/42/pokemon/abc/evolve", got)

	_, err = expand("/v1/trainers/{{trainer}}/pokemon/{{other}}", vars)
	assert.ErrorContains(t, err, "undefined variables: other")
}

func TestCheckExpectations(t *testing.T) {
	var doc any
	require.NoError(t, json.Unmarshal([]byte(`{"message": "Brock bought Water Stone for 3000", "money": 2000}`), &doc))
	text := `{"message": "Brock bought Water Stone for 3000", "money": 2000}`

	tests := []struct {
		name    string
		exp     Expectations
		wantErr string
	}{
		{name: "all match", exp: Expectations{Status: 200, Fields: map[string]any{"money": float64(2000)}, ResponseContains: []string{"water stone"}}},
		{name: "wrong status", exp: Expectations{Status: 422}, wantErr: "expected status 422, got 200"},
		{name: "wrong field", exp: Expectations{Fields: map[string]any{"money": float64(1)}}, wantErr: "expected money to be 1, got 2000"},
		{name: "missing field", exp: Expectations{Fields: map[string]any{"pokemon.name": "Eevee"}}, wantErr: "pokemon.name"},
		{name: "unwanted text", exp: Expectations{ResponseNotContains: []string{"BOUGHT"}}, wantErr: "NOT contain"},
		{name: "regex", exp: Expectations{ResponseRegex: `for \d+"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkExpectations(tt.exp, http.StatusOK, doc, text)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

// fakeAPI answers just enough of the API for a seeded trainer and one catch.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/trainers", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("POST /v1/trainers/{id}/catch", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "caught", "in_lineup": true,
			"pokemon": map[string]any{"id": "p-" + r.PathValue("id"), "name": "Squirtle"},
		})
	})
	mux.HandleFunc("POST /v1/trainers/{id}/pokemon/{pid}/release", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "released " + r.PathValue("pid")})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunSuite(t *testing.T) {
	r := NewRunner(fakeAPI(t).URL)

	suite := TestSuite{
		Name:        "catch and release",
		SeedTrainer: &SeedTrainer{},
		Steps: []TestStep{
			{
				Name:    "catch",
				Method:  http.MethodPost,
				Path:    "/v1/trainers/{{trainer}}/catch",
				Body:    json.RawMessage(`{"dex": 7}`),
				Capture: map[string]string{"pid": "pokemon.id"},
				Expectations: Expectations{Status: http.StatusOK, Fields: map[string]any{
					"in_lineup": true, "pokemon.name": "Squirtle",
				}},
			},
			{
				Name:         "release",
				Method:       http.MethodPost,
				Path:         "/v1/trainers/{{trainer}}/pokemon/{{pid}}/release",
				Expectations: Expectations{Status: http.StatusOK, ResponseRegex: `released p-\d+`},
			},
		},
	}

	result, err := r.RunSuite(context.Background(), suite)
	require.NoError(t, err)
	assert.Positive(t, result.TrainerID)
	require.Len(t, result.Results, 2)
	for _, step := range result.Results {
		assert.True(t, step.Success, step.StepName)
	}
}

func TestRunSuite_ErrorHandlingModes(t *testing.T) {
	failing := TestSuite{
		Name: "two failures",
		Steps: []TestStep{
			{Name: "missing", Path: "/nope", Expectations: Expectations{Status: http.StatusOK}},
			{Name: "also missing", Path: "/still-nope", Expectations: Expectations{Status: http.StatusOK}},
		},
	}

	tests := []struct {
		mode      ErrorHandlingMode
		wantSteps int
	}{
		{ErrorHandlingContinue, 2},
		{ErrorHandlingExit, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r := NewRunner(fakeAPI(t).URL)
			r.ErrorHandlingMode = tt.mode
			result, err := r.RunSuite(context.Background(), failing)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "step 0 (missing) failed")
			assert.Len(t, result.Results, tt.wantSteps)
		})
	}
}

func TestLoadTestSuiteWithExpansion(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("a.json", `{"name": "A", "steps": [{"path": "/health", "expect": {"status": 200}}]}`)
	write("b.json", `{"name": "B", "steps": []}`)
	write("seq/inner.json", `{"name": "Inner", "cases": ["b.json"]}`)
	write("seq/outer.json", `{"name": "Outer", "cases": ["a.json", "seq/inner.json"]}`)

	jobs, err := LoadTestSuiteWithExpansion(filepath.Join(dir, "seq/outer.json"), dir)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "A", jobs[0].Name)
	assert.Equal(t, "B", jobs[1].Name)

	write("seq/broken.json", `{"name": "Broken", "cases": ["missing.json"]}`)
	_, err = LoadTestSuiteWithExpansion(filepath.Join(dir, "seq/broken.json"), dir)
	assert.ErrorContains(t, err, "missing.json")
}
