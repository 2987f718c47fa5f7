package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwebster45206/pokedex-engine/internal/journal"
	"github.com/jwebster45206/pokedex-engine/internal/logger"
	"github.com/jwebster45206/pokedex-engine/pkg/item"
	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
	"github.com/jwebster45206/pokedex-engine/pkg/trainer"
)

// pokemonOp mutates one Pokémon. It fills in the outcome message; the caller adds the
// snapshot and money.
type pokemonOp func(t *trainer.Trainer, p *pokemon.Pokemon, out *Outcome) error

func (e *Engine) mutatePokemon(ctx context.Context, typ journal.EventType, trainerID int, pid uuid.UUID, op pokemonOp) (Outcome, error) {
	var out Outcome
	err := e.trainers.Update(trainerID, func(t *trainer.Trainer) error {
		p, ok := t.FindPokemon(pid)
		if !ok {
			out.subject = pid.String()
			return fmt.Errorf("%s: %w", pid, trainer.ErrUnknownPokemon)
		}
		out.subject = p.Name()
		if err := op(t, p, &out); err != nil {
			return err
		}
		out.PokemonID = p.ID()
		out.Pokemon = e.snapshot(p)
		out.Money = t.Money()
		return nil
	})
	return e.finish(ctx, typ, trainerID, out, err)
}

// CatchPokemon spawns the species at dex for a trainer. It joins the lineup when there
// is room and goes to storage otherwise.
func (e *Engine) CatchPokemon(ctx context.Context, trainerID, dex int) (Outcome, error) {
	species, err := e.species.Find(dex)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{subject: species.Name}
	err = e.trainers.Update(trainerID, func(t *trainer.Trainer) error {
		p, err := e.species.Spawn(dex)
		if err != nil {
			return err
		}
		inLineup := t.AddPokemonToLineup(p)
		where := "lineup"
		if !inLineup {
			where = "storage"
		}
		out.Message = fmt.Sprintf("%s caught %s (level %d); sent to %s", t.Name, p.Name(), p.Level(), where)
		out.InLineup = &inLineup
		out.PokemonID = p.ID()
		out.Pokemon = e.snapshot(p)
		out.Money = t.Money()
		return nil
	})
	return e.finish(ctx, journal.EventPokemonCaught, trainerID, out, err)
}

// TeachMove teaches a catalog move to a Pokémon.
func (e *Engine) TeachMove(ctx context.Context, trainerID int, pid uuid.UUID, moveName string) (Outcome, error) {
	m, err := e.moves.Find(moveName)
	if err != nil {
		return Outcome{}, err
	}
	return e.mutatePokemon(ctx, journal.EventMoveLearned, trainerID, pid, func(_ *trainer.Trainer, p *pokemon.Pokemon, out *Outcome) error {
		if err := p.LearnMove(m); err != nil {
			return err
		}
		out.Message = fmt.Sprintf("%s learned %s", p.Name(), m.Name())
		return nil
	})
}

// ForgetMove removes a move from a Pokémon's move set.
func (e *Engine) ForgetMove(ctx context.Context, trainerID int, pid uuid.UUID, moveName string) (Outcome, error) {
	m, err := e.moves.Find(moveName)
	if err != nil {
		return Outcome{}, err
	}
	return e.mutatePokemon(ctx, journal.EventMoveForgotten, trainerID, pid, func(_ *trainer.Trainer, p *pokemon.Pokemon, out *Outcome) error {
		if err := p.ForgetMove(m); err != nil {
			return err
		}
		out.Message = fmt.Sprintf("%s forgot %s", p.Name(), m.Name())
		return nil
	})
}

// LevelUp raises a Pokémon's level by one. A level-up that reaches the evolution level
// but cannot evolve still counts; the reason is reported in the message.
func (e *Engine) LevelUp(ctx context.Context, trainerID int, pid uuid.UUID) (Outcome, error) {
	return e.mutatePokemon(ctx, journal.EventLevelUp, trainerID, pid, func(_ *trainer.Trainer, p *pokemon.Pokemon, out *Outcome) error {
		before := p.Name()
		evolved, err := p.LevelUp(false, e.species)
		out.Message = e.levelMessage(ctx, before, p, evolved, err)
		out.Evolved = evolved
		return nil
	})
}

// Evolve evolves a Pokémon into its successor regardless of level.
func (e *Engine) Evolve(ctx context.Context, trainerID int, pid uuid.UUID) (Outcome, error) {
	return e.mutatePokemon(ctx, journal.EventEvolved, trainerID, pid, func(_ *trainer.Trainer, p *pokemon.Pokemon, out *Outcome) error {
		before := p.Name()
		if err := p.Evolve(e.species); err != nil {
			return err
		}
		out.Message = fmt.Sprintf("%s evolved into %s", before, p.Name())
		out.Evolved = true
		return nil
	})
}

// EvolveWithStone evolves a Pokémon with a stone of the given type, without taking a
// stone from the bag.
func (e *Engine) EvolveWithStone(ctx context.Context, trainerID int, pid uuid.UUID, stone string) (Outcome, error) {
	return e.mutatePokemon(ctx, journal.EventEvolved, trainerID, pid, func(_ *trainer.Trainer, p *pokemon.Pokemon, out *Outcome) error {
		before := p.Name()
		if err := p.EvolveUsingStone(stone, e.species); err != nil {
			return err
		}
		out.Message = fmt.Sprintf("%s evolved into %s with a %s stone", before, p.Name(), stone)
		out.Evolved = true
		return nil
	})
}

// UseItem uses one unit from the trainer's bag on a Pokémon. The unit is consumed when
// the item takes effect and goes back in the bag when it is refused.
func (e *Engine) UseItem(ctx context.Context, trainerID int, pid uuid.UUID, itemName string) (Outcome, error) {
	return e.mutatePokemon(ctx, journal.EventItemUsed, trainerID, pid, func(t *trainer.Trainer, p *pokemon.Pokemon, out *Outcome) error {
		it, err := t.TakeItem(itemName)
		if err != nil {
			return err
		}
		before, level := p.Name(), p.Level()
		evolved, err := p.UseItem(it, e.species)
		if err != nil && p.Level() == level {
			e.putBack(t, it)
			return err
		}

		switch it.Usage().Kind {
		case item.UsageLevelUp:
			out.Message = e.levelMessage(ctx, before, p, evolved, err)
		case item.UsageStone:
			out.Message = fmt.Sprintf("%s evolved into %s with a %s", before, p.Name(), it.Name())
		default:
			out.Message = fmt.Sprintf("Used %s on %s", it.Name(), p.Name())
		}
		out.Evolved = evolved
		return nil
	})
}

// HoldItem moves one unit from the bag to the Pokémon.
func (e *Engine) HoldItem(ctx context.Context, trainerID int, pid uuid.UUID, itemName string) (Outcome, error) {
	return e.mutatePokemon(ctx, journal.EventItemHeld, trainerID, pid, func(t *trainer.Trainer, p *pokemon.Pokemon, out *Outcome) error {
		it, err := t.TakeItem(itemName)
		if err != nil {
			return err
		}
		if err := p.Hold(it); err != nil {
			e.putBack(t, it)
			return err
		}
		out.Message = fmt.Sprintf("%s is now holding %s", p.Name(), it.Name())
		return nil
	})
}

// TakeHeldItem moves the Pokémon's held item back to the bag.
func (e *Engine) TakeHeldItem(ctx context.Context, trainerID int, pid uuid.UUID) (Outcome, error) {
	return e.mutatePokemon(ctx, journal.EventItemTaken, trainerID, pid, func(t *trainer.Trainer, p *pokemon.Pokemon, out *Outcome) error {
		it, ok := p.TakeHeldItem()
		if !ok {
			return fmt.Errorf("%s: %w", p.Name(), pokemon.ErrNothingToHold)
		}
		if err := t.StoreItem(it); err != nil {
			_ = p.Hold(it)
			return err
		}
		out.Message = fmt.Sprintf("Took %s from %s", it.Name(), p.Name())
		return nil
	})
}

// SwitchToLineup moves a Pokémon from storage to the lineup.
func (e *Engine) SwitchToLineup(ctx context.Context, trainerID int, pid uuid.UUID) (Outcome, error) {
	return e.mutatePokemon(ctx, journal.EventSwitched, trainerID, pid, func(t *trainer.Trainer, p *pokemon.Pokemon, out *Outcome) error {
		if err := t.SwitchToLineup(p.ID()); err != nil {
			return err
		}
		out.Message = fmt.Sprintf("%s moved to the lineup", p.Name())
		return nil
	})
}

// SwitchToStorage moves a Pokémon from the lineup to storage.
func (e *Engine) SwitchToStorage(ctx context.Context, trainerID int, pid uuid.UUID) (Outcome, error) {
	return e.mutatePokemon(ctx, journal.EventSwitched, trainerID, pid, func(t *trainer.Trainer, p *pokemon.Pokemon, out *Outcome) error {
		if err := t.SwitchToStorage(p.ID()); err != nil {
			return err
		}
		out.Message = fmt.Sprintf("%s moved to storage", p.Name())
		return nil
	})
}

// Release removes a Pokémon from the trainer. Its held item is returned to the bag when
// there is room.
func (e *Engine) Release(ctx context.Context, trainerID int, pid uuid.UUID) (Outcome, error) {
	return e.mutatePokemon(ctx, journal.EventReleased, trainerID, pid, func(t *trainer.Trainer, p *pokemon.Pokemon, out *Outcome) error {
		out.Message = fmt.Sprintf("%s released %s", t.Name, p.Name())
		if it, ok := p.TakeHeldItem(); ok {
			if err := t.StoreItem(it); err == nil {
				out.Message += fmt.Sprintf("; %s returned to the bag", it.Name())
			}
		}
		t.ReleasePokemon(p.ID())
		return nil
	})
}

func (e *Engine) levelMessage(ctx context.Context, before string, p *pokemon.Pokemon, evolved bool, err error) string {
	switch {
	case evolved:
		return fmt.Sprintf("%s reached level %d and evolved into %s", before, p.Level(), p.Name())
	case err != nil:
		e.logger.InfoContext(ctx, "Level-up without evolution", "pokemon", p.Name(), "reason", err.Error())
		return err.Error()
	default:
		return fmt.Sprintf("%s reached level %d", p.Name(), p.Level())
	}
}

// putBack returns a unit taken for an operation that was refused.
func (e *Engine) putBack(t *trainer.Trainer, it *item.Item) {
	if err := t.StoreItem(it); err != nil {
		logger.WithError(logger.WithTrainer(e.logger, t.ID), err).Error("Failed to return item to bag", "item", it.Name())
	}
}
