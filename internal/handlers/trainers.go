package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/pokedex-engine/internal/engine"
	"github.com/jwebster45206/pokedex-engine/pkg/input"
)

// ActionRequest is the body of the trainer action endpoints. Each endpoint reads only
// the fields it needs.
type ActionRequest struct {
	Dex          int    `json:"dex,omitempty"`
	Item         string `json:"item,omitempty"`
	DiscardIndex *int   `json:"discard_index,omitempty"`
	Index        *int   `json:"index,omitempty"`
	Move         string `json:"move,omitempty"`
	Stone        string `json:"stone,omitempty"`
}

// TrainerHandler runs trainer and Pokémon actions through the engine.
type TrainerHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewTrainerHandler(e *engine.Engine, logger *slog.Logger) *TrainerHandler {
	return &TrainerHandler{engine: e, logger: logger}
}

type trainerAction func(ctx context.Context, trainerID int, req ActionRequest) (engine.Outcome, error)

type pokemonAction func(ctx context.Context, trainerID int, pid uuid.UUID, req ActionRequest) (engine.Outcome, error)

// trainerRoute adapts an action on /v1/trainers/{id}/... to an http.HandlerFunc.
func (h *TrainerHandler) trainerRoute(action trainerAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		var req ActionRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		h.respond(w, r, func() (engine.Outcome, error) { return action(r.Context(), id, req) })
	}
}

// pokemonRoute adapts an action on /v1/trainers/{id}/pokemon/{pid}/... . Actions
// without parameters accept an empty body.
func (h *TrainerHandler) pokemonRoute(action pokemonAction, withBody bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		pid, err := pathUUID(r, "pid")
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		var req ActionRequest
		if withBody {
			if err := decodeBody(r, &req); err != nil {
				writeError(w, r, h.logger, err)
				return
			}
		}
		h.respond(w, r, func() (engine.Outcome, error) { return action(r.Context(), id, pid, req) })
	}
}

func (h *TrainerHandler) respond(w http.ResponseWriter, r *http.Request, run func() (engine.Outcome, error)) {
	out, err := run()
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, out)
}

func (h *TrainerHandler) Catch(ctx context.Context, id int, req ActionRequest) (engine.Outcome, error) {
	if _, err := input.Dex(fmt.Sprintf("%04d", req.Dex)); err != nil {
		return engine.Outcome{}, err
	}
	return h.engine.CatchPokemon(ctx, id, req.Dex)
}

func (h *TrainerHandler) Buy(ctx context.Context, id int, req ActionRequest) (engine.Outcome, error) {
	name, err := input.Text("item", req.Item)
	if err != nil {
		return engine.Outcome{}, err
	}
	return h.engine.BuyItem(ctx, id, name, req.DiscardIndex)
}

func (h *TrainerHandler) Sell(ctx context.Context, id int, req ActionRequest) (engine.Outcome, error) {
	name, err := input.Text("item", req.Item)
	if err != nil {
		return engine.Outcome{}, err
	}
	return h.engine.SellItem(ctx, id, name)
}

func (h *TrainerHandler) Discard(ctx context.Context, id int, req ActionRequest) (engine.Outcome, error) {
	if req.Index == nil {
		return engine.Outcome{}, fmt.Errorf("%w: index is required", input.ErrInvalid)
	}
	return h.engine.DiscardItem(ctx, id, *req.Index)
}

func (h *TrainerHandler) Learn(ctx context.Context, id int, pid uuid.UUID, req ActionRequest) (engine.Outcome, error) {
	name, err := input.Text("move", req.Move)
	if err != nil {
		return engine.Outcome{}, err
	}
	return h.engine.TeachMove(ctx, id, pid, name)
}

func (h *TrainerHandler) Forget(ctx context.Context, id int, pid uuid.UUID, req ActionRequest) (engine.Outcome, error) {
	name, err := input.Text("move", req.Move)
	if err != nil {
		return engine.Outcome{}, err
	}
	return h.engine.ForgetMove(ctx, id, pid, name)
}

func (h *TrainerHandler) Stone(ctx context.Context, id int, pid uuid.UUID, req ActionRequest) (engine.Outcome, error) {
	stone, err := input.Text("stone", req.Stone)
	if err != nil {
		return engine.Outcome{}, err
	}
	return h.engine.EvolveWithStone(ctx, id, pid, stone)
}

func (h *TrainerHandler) Use(ctx context.Context, id int, pid uuid.UUID, req ActionRequest) (engine.Outcome, error) {
	name, err := input.Text("item", req.Item)
	if err != nil {
		return engine.Outcome{}, err
	}
	return h.engine.UseItem(ctx, id, pid, name)
}

func (h *TrainerHandler) Hold(ctx context.Context, id int, pid uuid.UUID, req ActionRequest) (engine.Outcome, error) {
	name, err := input.Text("item", req.Item)
	if err != nil {
		return engine.Outcome{}, err
	}
	return h.engine.HoldItem(ctx, id, pid, name)
}

func (h *TrainerHandler) LevelUp(ctx context.Context, id int, pid uuid.UUID, _ ActionRequest) (engine.Outcome, error) {
	return h.engine.LevelUp(ctx, id, pid)
}

func (h *TrainerHandler) Evolve(ctx context.Context, id int, pid uuid.UUID, _ ActionRequest) (engine.Outcome, error) {
	return h.engine.Evolve(ctx, id, pid)
}

func (h *TrainerHandler) TakeItem(ctx context.Context, id int, pid uuid.UUID, _ ActionRequest) (engine.Outcome, error) {
	return h.engine.TakeHeldItem(ctx, id, pid)
}

func (h *TrainerHandler) ToLineup(ctx context.Context, id int, pid uuid.UUID, _ ActionRequest) (engine.Outcome, error) {
	return h.engine.SwitchToLineup(ctx, id, pid)
}

func (h *TrainerHandler) ToStorage(ctx context.Context, id int, pid uuid.UUID, _ ActionRequest) (engine.Outcome, error) {
	return h.engine.SwitchToStorage(ctx, id, pid)
}

func (h *TrainerHandler) Release(ctx context.Context, id int, pid uuid.UUID, _ ActionRequest) (engine.Outcome, error) {
	return h.engine.Release(ctx, id, pid)
}
