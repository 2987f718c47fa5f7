package engine

import (
	"context"
	"fmt"

	"github.com/jwebster45206/pokedex-engine/internal/journal"
	"github.com/jwebster45206/pokedex-engine/internal/logger"
	"github.com/jwebster45206/pokedex-engine/pkg/trainer"
)

// BuyItem buys one unit from the shop. When the bag is full and discardIndex is not nil,
// the unit at that bag position is dropped to make room.
func (e *Engine) BuyItem(ctx context.Context, trainerID int, itemName string, discardIndex *int) (Outcome, error) {
	it, err := e.items.Find(itemName)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{subject: it.Name()}
	err = e.trainers.Update(trainerID, func(t *trainer.Trainer) error {
		if _, err := e.items.Withdraw(it.Name(), 1); err != nil {
			return err
		}
		var choose trainer.DiscardChooser
		if discardIndex != nil {
			choose = trainer.DiscardAt(*discardIndex)
		}
		before := t.Bag()
		if err := t.BuyItem(it, choose); err != nil {
			if perr := e.items.PutBack(it.Name(), 1); perr != nil {
				logger.WithError(logger.WithTrainer(e.logger, trainerID), perr).Error("Failed to return stock", "item", it.Name())
			}
			return err
		}
		out.Message = fmt.Sprintf("%s bought %s for %d", t.Name, it.Name(), it.BuyingPrice())
		if discardIndex != nil && len(before) >= trainer.BagCapacity {
			out.Message += fmt.Sprintf("; discarded %s", before[*discardIndex].Name())
		}
		out.Money = t.Money()
		return nil
	})
	return e.finish(ctx, journal.EventItemBought, trainerID, out, err)
}

// SellItem sells one unit from the bag back to the shop.
func (e *Engine) SellItem(ctx context.Context, trainerID int, itemName string) (Outcome, error) {
	it, err := e.items.Find(itemName)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{subject: it.Name()}
	err = e.trainers.Update(trainerID, func(t *trainer.Trainer) error {
		if err := t.SellItem(it); err != nil {
			return err
		}
		if _, err := e.items.Restock(it.Name(), 1); err != nil {
			logger.WithError(logger.WithTrainer(e.logger, trainerID), err).Error("Failed to restock sold item", "item", it.Name())
		}
		out.Message = fmt.Sprintf("%s sold %s for %d; %d left", t.Name, it.Name(), it.SellingPrice(), t.CountOf(it.Name()))
		out.Money = t.Money()
		return nil
	})
	return e.finish(ctx, journal.EventItemSold, trainerID, out, err)
}

// DiscardItem throws away the unit at a bag position.
func (e *Engine) DiscardItem(ctx context.Context, trainerID, index int) (Outcome, error) {
	var out Outcome
	err := e.trainers.Update(trainerID, func(t *trainer.Trainer) error {
		it, err := t.DiscardItem(index)
		if err != nil {
			return err
		}
		out.subject = it.Name()
		out.Message = fmt.Sprintf("%s discarded %s", t.Name, it.Name())
		out.Money = t.Money()
		return nil
	})
	return e.finish(ctx, journal.EventItemDiscarded, trainerID, out, err)
}
