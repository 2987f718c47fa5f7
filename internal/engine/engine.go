// Package engine runs Pokédex operations against the catalogs. Each mutation happens under
// the owning trainer's lock and every outcome, including refusals, is written to the journal.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jwebster45206/pokedex-engine/internal/journal"
	"github.com/jwebster45206/pokedex-engine/internal/logger"
	"github.com/jwebster45206/pokedex-engine/internal/seed"
	"github.com/jwebster45206/pokedex-engine/pkg/catalog"
	"github.com/jwebster45206/pokedex-engine/pkg/item"
	"github.com/jwebster45206/pokedex-engine/pkg/move"
	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
	"github.com/jwebster45206/pokedex-engine/pkg/rules"
	"github.com/jwebster45206/pokedex-engine/pkg/trainer"
)

// Engine owns the catalogs and the journal.
type Engine struct {
	species  *catalog.PokemonManager
	moves    *catalog.MoveManager
	items    *catalog.ItemManager
	trainers *catalog.TrainerManager
	journal  journal.Journal
	logger   *slog.Logger
}

// Outcome describes a successful mutation.
type Outcome struct {
	Message   string          `json:"message"`
	Evolved   bool            `json:"evolved,omitempty"`
	InLineup  *bool           `json:"in_lineup,omitempty"`
	Money     int             `json:"money"`
	Pokemon   json.RawMessage `json:"pokemon,omitempty"`
	PokemonID uuid.UUID       `json:"-"`

	subject string
}

// New creates an engine over already populated catalogs.
func New(c seed.Catalogs, j journal.Journal, logger *slog.Logger) *Engine {
	return &Engine{
		species:  c.Pokemon,
		moves:    c.Moves,
		items:    c.Items,
		trainers: c.Trainers,
		journal:  j,
		logger:   logger,
	}
}

// Load builds fresh catalogs from a seed file. Spawned Pokémon evolve under rule.
func Load(f *seed.File, rule pokemon.EvolutionRule, j journal.Journal, logger *slog.Logger) (*Engine, error) {
	c := seed.Catalogs{
		Pokemon:  catalog.NewPokemonManager(pokemon.WithEvolutionRule(rule)),
		Moves:    catalog.NewMoveManager(),
		Items:    catalog.NewItemManager(),
		Trainers: catalog.NewTrainerManager(),
	}
	if err := f.Apply(c); err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}
	logger.Info("Catalogs loaded",
		"species", c.Pokemon.Len(),
		"moves", c.Moves.Len(),
		"items", c.Items.Len(),
		"trainers", c.Trainers.Len(),
		"evolution_rule", rule.String())
	return New(c, j, logger), nil
}

func (e *Engine) Species() *catalog.PokemonManager  { return e.species }
func (e *Engine) Moves() *catalog.MoveManager       { return e.moves }
func (e *Engine) Items() *catalog.ItemManager       { return e.items }
func (e *Engine) Trainers() *catalog.TrainerManager { return e.trainers }

// ViewTrainer runs fn with read access to one trainer.
func (e *Engine) ViewTrainer(id int, fn func(*trainer.Trainer) error) error {
	return e.trainers.View(id, fn)
}

// ViewPokemon runs fn with read access to one of a trainer's Pokémon.
func (e *Engine) ViewPokemon(trainerID int, pid uuid.UUID, fn func(*pokemon.Pokemon) error) error {
	return e.trainers.View(trainerID, func(t *trainer.Trainer) error {
		p, ok := t.FindPokemon(pid)
		if !ok {
			return fmt.Errorf("%s: %w", pid, trainer.ErrUnknownPokemon)
		}
		return fn(p)
	})
}

// AddSpecies adds a species to the catalog.
func (e *Engine) AddSpecies(ctx context.Context, s pokemon.Species) error {
	if err := e.species.Add(s); err != nil {
		return err
	}
	e.record(ctx, journal.EventCatalogAdded, 0, s.Name, fmt.Sprintf("Added species #%04d %s", s.Dex, s.Name))
	return nil
}

// AddMove adds a move to the catalog. Move names are unique regardless of case.
func (e *Engine) AddMove(ctx context.Context, m move.Move) error {
	if err := e.moves.Add(m); err != nil {
		return err
	}
	e.record(ctx, journal.EventCatalogAdded, 0, m.Name(), fmt.Sprintf("Added move %s", m))
	return nil
}

// AddItem adds an item to the catalog.
func (e *Engine) AddItem(ctx context.Context, it *item.Item) error {
	if err := e.items.Add(it); err != nil {
		return err
	}
	e.record(ctx, journal.EventCatalogAdded, 0, it.Name(), fmt.Sprintf("Added item %s", it.Name()))
	return nil
}

// AddTrainer registers a new trainer with an empty bag and no Pokémon.
func (e *Engine) AddTrainer(ctx context.Context, profile trainer.Profile, money int) error {
	t, err := trainer.New(profile, money)
	if err != nil {
		return err
	}
	if err := e.trainers.Add(t); err != nil {
		return err
	}
	e.record(ctx, journal.EventCatalogAdded, t.ID, t.Name, fmt.Sprintf("Registered trainer %d %s", t.ID, t.Name))
	return nil
}

// Journal returns up to limit recent events, oldest first.
func (e *Engine) Journal(ctx context.Context, limit int) ([]journal.Event, error) {
	events, err := e.journal.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return events, nil
}

// Subscribe streams journal events until ctx is done.
func (e *Engine) Subscribe(ctx context.Context) (<-chan journal.Event, error) {
	return e.journal.Subscribe(ctx)
}

// finish journals the result of a mutation. Refusals are journaled as rule violations;
// other errors only propagate.
func (e *Engine) finish(ctx context.Context, typ journal.EventType, trainerID int, out Outcome, err error) (Outcome, error) {
	log := logger.WithTrainer(e.logger, trainerID)
	if err != nil {
		if rules.IsViolation(err) {
			logger.WithError(log, err).Info("Rule violation", "operation", string(typ))
			e.record(ctx, journal.EventRuleViolation, trainerID, out.subject, err.Error())
		}
		return Outcome{}, err
	}
	log.Debug("Operation applied", "operation", string(typ), "message", out.Message)
	e.record(ctx, typ, trainerID, out.subject, out.Message)
	return out, nil
}

// record never fails the caller; a journal outage only costs history.
func (e *Engine) record(ctx context.Context, typ journal.EventType, trainerID int, subject, msg string) {
	if err := e.journal.Record(ctx, journal.NewEvent(typ, trainerID, subject, msg)); err != nil {
		logger.WithError(logger.WithTrainer(e.logger, trainerID), err).Warn("Failed to record journal event", "type", string(typ))
	}
}

func (e *Engine) snapshot(p *pokemon.Pokemon) json.RawMessage {
	data, err := json.Marshal(p)
	if err != nil {
		e.logger.Error("Failed to marshal Pokémon", "error", err, "pokemon_id", p.ID().String())
		return nil
	}
	return data
}
