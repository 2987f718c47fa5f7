package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jwebster45206/pokedex-engine/internal/engine"
	"github.com/jwebster45206/pokedex-engine/internal/seed"
	"github.com/jwebster45206/pokedex-engine/pkg/input"
	"github.com/jwebster45206/pokedex-engine/pkg/item"
	"github.com/jwebster45206/pokedex-engine/pkg/move"
	"github.com/jwebster45206/pokedex-engine/pkg/pokemon"
	"github.com/jwebster45206/pokedex-engine/pkg/stats"
	"github.com/jwebster45206/pokedex-engine/pkg/trainer"
)

// CatalogHandler serves the species, move, item and trainer catalogs.
type CatalogHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewCatalogHandler(e *engine.Engine, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{engine: e, logger: logger}
}

// ListSpecies handles GET /v1/pokemon with optional ?name=, ?q= and ?type= filters.
// ?name= is an exact match and answers 404 when nothing has that name.
func (h *CatalogHandler) ListSpecies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	species := h.engine.Species()
	var list []pokemon.Species
	switch {
	case q.Get("name") != "":
		s, err := species.FindByName(q.Get("name"))
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		list = []pokemon.Species{s}
	case q.Get("q") != "":
		list = species.Search(q.Get("q"))
	case q.Get("type") != "":
		t, err := input.Type(q.Get("type"))
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		list = species.ByType(t)
	default:
		list = species.All()
	}
	if list == nil {
		list = []pokemon.Species{}
	}
	writeJSON(w, h.logger, http.StatusOK, list)
}

// GetSpecies handles GET /v1/pokemon/{dex}.
func (h *CatalogHandler) GetSpecies(w http.ResponseWriter, r *http.Request) {
	dex, err := pathInt(r, "dex")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	s, err := h.engine.Species().Find(dex)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, s)
}

// CreateSpecies handles POST /v1/pokemon.
func (h *CatalogHandler) CreateSpecies(w http.ResponseWriter, r *http.Request) {
	var req seed.SpeciesSpec
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	s, err := speciesFromRequest(req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.engine.AddSpecies(r.Context(), s); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.logger.Info("Species added", "dex", s.Dex, "name", s.Name)
	writeJSON(w, h.logger, http.StatusCreated, s)
}

// ListMoves handles GET /v1/moves with optional ?q=, ?type= and ?class= filters.
func (h *CatalogHandler) ListMoves(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	moves := h.engine.Moves()
	var list []move.Move
	switch {
	case q.Get("q") != "":
		list = moves.Search(q.Get("q"))
	case q.Get("type") != "":
		t, err := input.Type(q.Get("type"))
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		list = moves.ByType(t)
	case q.Get("class") != "":
		c, err := input.Classification(q.Get("class"))
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		list = moves.ByClassification(c)
	default:
		list = moves.All()
	}
	if list == nil {
		list = []move.Move{}
	}
	writeJSON(w, h.logger, http.StatusOK, list)
}

// GetMove handles GET /v1/moves/{name}.
func (h *CatalogHandler) GetMove(w http.ResponseWriter, r *http.Request) {
	m, err := h.engine.Moves().Find(r.PathValue("name"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, m)
}

// CreateMove handles POST /v1/moves.
func (h *CatalogHandler) CreateMove(w http.ResponseWriter, r *http.Request) {
	var req move.Spec
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	m, err := moveFromRequest(req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.engine.AddMove(r.Context(), m); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.logger.Info("Move added", "name", m.Name())
	writeJSON(w, h.logger, http.StatusCreated, m)
}

// ListItems handles GET /v1/items with optional ?q= and ?category= filters.
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := h.engine.Items()
	var list []*item.Item
	switch {
	case q.Get("q") != "":
		list = items.Search(q.Get("q"))
	case q.Get("category") != "":
		list = items.ByCategory(q.Get("category"))
	default:
		list = items.All()
	}
	writeJSON(w, h.logger, http.StatusOK, items.Snapshot(list))
}

// GetItem handles GET /v1/items/{name}.
func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.engine.Items().Find(r.PathValue("name"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, h.engine.Items().Snapshot([]*item.Item{it})[0])
}

// CreateItem handles POST /v1/items.
func (h *CatalogHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req item.Spec
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if _, err := input.Text("name", req.Name); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	it, err := req.Build()
	if err != nil {
		writeError(w, r, h.logger, fmt.Errorf("%w: %v", input.ErrInvalid, err))
		return
	}
	if err := h.engine.AddItem(r.Context(), it); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.logger.Info("Item added", "name", it.Name())
	writeJSON(w, h.logger, http.StatusCreated, h.engine.Items().Snapshot([]*item.Item{it})[0])
}

// ListTrainers handles GET /v1/trainers with an optional ?q= filter.
func (h *CatalogHandler) ListTrainers(w http.ResponseWriter, r *http.Request) {
	var list []trainer.Profile
	if q := r.URL.Query().Get("q"); q != "" {
		list = h.engine.Trainers().Search(q)
	} else {
		list = h.engine.Trainers().Profiles()
	}
	if list == nil {
		list = []trainer.Profile{}
	}
	writeJSON(w, h.logger, http.StatusOK, list)
}

// GetTrainer handles GET /v1/trainers/{id}.
func (h *CatalogHandler) GetTrainer(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var data []byte
	err = h.engine.ViewTrainer(id, func(t *trainer.Trainer) error {
		var err error
		data, err = json.Marshal(t)
		return err
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, json.RawMessage(data))
}

// CreateTrainer handles POST /v1/trainers. Money defaults to the starting allowance.
func (h *CatalogHandler) CreateTrainer(w http.ResponseWriter, r *http.Request) {
	var req seed.TrainerSpec
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	profile, err := profileFromRequest(req.Profile)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	money := trainer.DefaultMoney
	if req.Money != nil {
		money = *req.Money
	}
	if err := h.engine.AddTrainer(r.Context(), profile, money); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			err = fmt.Errorf("%w: %v", input.ErrInvalid, err)
		}
		writeError(w, r, h.logger, err)
		return
	}
	h.logger.Info("Trainer registered", "trainer_id", profile.ID, "name", profile.Name)
	writeJSON(w, h.logger, http.StatusCreated, profile)
}

func speciesFromRequest(req seed.SpeciesSpec) (pokemon.Species, error) {
	name, err := input.Name(req.Name)
	if err != nil {
		return pokemon.Species{}, err
	}
	req.Name = name
	if _, err := input.Dex(fmt.Sprintf("%04d", req.Dex)); err != nil {
		return pokemon.Species{}, err
	}
	for _, st := range stats.All {
		if _, err := input.Stat(strconv.Itoa(req.Stats.Get(st))); err != nil {
			return pokemon.Species{}, fmt.Errorf("%s: %w", st.Label(), err)
		}
	}
	if _, err := input.Typing(req.PrimaryType, req.SecondaryType); err != nil {
		return pokemon.Species{}, err
	}
	s, err := req.Build()
	if err != nil {
		return pokemon.Species{}, fmt.Errorf("%w: %v", input.ErrInvalid, err)
	}
	return s, nil
}

func moveFromRequest(req move.Spec) (move.Move, error) {
	var err error
	if req.Name, err = input.MoveName(req.Name); err != nil {
		return move.Move{}, err
	}
	if req.Description, err = input.MoveDescription(req.Description); err != nil {
		return move.Move{}, err
	}
	if req.Classification, err = input.Classification(string(req.Classification)); err != nil {
		return move.Move{}, err
	}
	if _, err := input.Typing(req.PrimaryType, req.SecondaryType); err != nil {
		return move.Move{}, err
	}
	m, err := req.Build()
	if err != nil {
		return move.Move{}, fmt.Errorf("%w: %v", input.ErrInvalid, err)
	}
	return m, nil
}

func profileFromRequest(p trainer.Profile) (trainer.Profile, error) {
	var err error
	if p.Name, err = input.Name(p.Name); err != nil {
		return p, err
	}
	if p.Birthdate != "" {
		if p.Birthdate, err = input.Birthdate(p.Birthdate); err != nil {
			return p, err
		}
	}
	if p.Sex != "" {
		if p.Sex, err = input.Sex(p.Sex); err != nil {
			return p, err
		}
	}
	if p.Hometown != "" {
		if p.Hometown, err = input.Name(p.Hometown); err != nil {
			return p, err
		}
	}
	return p, nil
}
