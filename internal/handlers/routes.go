package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/pokedex-engine/internal/engine"
	"github.com/jwebster45206/pokedex-engine/internal/journal"
)

// NewRouter wires every endpoint onto a ServeMux and wraps it with request logging.
func NewRouter(e *engine.Engine, j journal.Journal, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /health", NewHealthHandler(j, logger))

	c := NewCatalogHandler(e, logger)
	mux.HandleFunc("GET /v1/pokemon", c.ListSpecies)
	mux.HandleFunc("POST /v1/pokemon", c.CreateSpecies)
	mux.HandleFunc("GET /v1/pokemon/{dex}", c.GetSpecies)
	mux.HandleFunc("GET /v1/moves", c.ListMoves)
	mux.HandleFunc("POST /v1/moves", c.CreateMove)
	mux.HandleFunc("GET /v1/moves/{name}", c.GetMove)
	mux.HandleFunc("GET /v1/items", c.ListItems)
	mux.HandleFunc("POST /v1/items", c.CreateItem)
	mux.HandleFunc("GET /v1/items/{name}", c.GetItem)
	mux.HandleFunc("GET /v1/trainers", c.ListTrainers)
	mux.HandleFunc("POST /v1/trainers", c.CreateTrainer)
	mux.HandleFunc("GET /v1/trainers/{id}", c.GetTrainer)

	t := NewTrainerHandler(e, logger)
	mux.HandleFunc("POST /v1/trainers/{id}/catch", t.trainerRoute(t.Catch))
	mux.HandleFunc("POST /v1/trainers/{id}/buy", t.trainerRoute(t.Buy))
	mux.HandleFunc("POST /v1/trainers/{id}/sell", t.trainerRoute(t.Sell))
	mux.HandleFunc("POST /v1/trainers/{id}/discard", t.trainerRoute(t.Discard))

	const pokemonPath = "POST /v1/trainers/{id}/pokemon/{pid}/"
	mux.HandleFunc(pokemonPath+"learn", t.pokemonRoute(t.Learn, true))
	mux.HandleFunc(pokemonPath+"forget", t.pokemonRoute(t.Forget, true))
	mux.HandleFunc(pokemonPath+"stone", t.pokemonRoute(t.Stone, true))
	mux.HandleFunc(pokemonPath+"use", t.pokemonRoute(t.Use, true))
	mux.HandleFunc(pokemonPath+"hold", t.pokemonRoute(t.Hold, true))
	mux.HandleFunc(pokemonPath+"level-up", t.pokemonRoute(t.LevelUp, false))
	mux.HandleFunc(pokemonPath+"evolve", t.pokemonRoute(t.Evolve, false))
	mux.HandleFunc(pokemonPath+"take-item", t.pokemonRoute(t.TakeItem, false))
	mux.HandleFunc(pokemonPath+"lineup", t.pokemonRoute(t.ToLineup, false))
	mux.HandleFunc(pokemonPath+"storage", t.pokemonRoute(t.ToStorage, false))
	mux.HandleFunc(pokemonPath+"release", t.pokemonRoute(t.Release, false))

	jh := NewJournalHandler(e, logger)
	mux.HandleFunc("GET /v1/journal", jh.List)
	mux.HandleFunc("GET /v1/journal/stream", jh.Stream)

	return RequestLogger(logger, mux)
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Flush keeps the event stream working through the recorder.
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
