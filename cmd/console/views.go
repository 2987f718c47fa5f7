package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwebster45206/pokedex-engine/pkg/display"
)

// recentEntries is how much of the journal the console shows.
const recentEntries = 20

func (m *Menu) listSpecies(context.Context, answers) (string, error) {
	return display.Species(m.engine.Species().All()), nil
}

func (m *Menu) searchSpecies(_ context.Context, a answers) (string, error) {
	return display.Species(m.engine.Species().Search(a.str(0))), nil
}

func (m *Menu) speciesByType(_ context.Context, a answers) (string, error) {
	return display.Species(m.engine.Species().ByType(a.typ(0))), nil
}

func (m *Menu) listMoves(context.Context, answers) (string, error) {
	return display.Moves(m.engine.Moves().All()), nil
}

func (m *Menu) searchMoves(_ context.Context, a answers) (string, error) {
	return display.Moves(m.engine.Moves().Search(a.str(0))), nil
}

func (m *Menu) listItems(context.Context, answers) (string, error) {
	items := m.engine.Items()
	return display.Items(items.Snapshot(items.All())), nil
}

func (m *Menu) searchItems(_ context.Context, a answers) (string, error) {
	items := m.engine.Items()
	return display.Items(items.Snapshot(items.Search(a.str(0)))), nil
}

func (m *Menu) listTrainers(context.Context, answers) (string, error) {
	return display.Trainers(m.engine.Trainers().Profiles()), nil
}

func (m *Menu) searchTrainers(_ context.Context, a answers) (string, error) {
	return display.Trainers(m.engine.Trainers().Search(a.str(0))), nil
}

func (m *Menu) recentJournal(ctx context.Context, _ answers) (string, error) {
	events, err := m.engine.Journal(ctx, recentEntries)
	if err != nil {
		return "", err
	}
	if len(events) == 0 {
		return "Nothing has happened yet.", nil
	}
	var b strings.Builder
	for _, ev := range events {
		fmt.Fprintf(&b, "%s  %-18s %s\n", ev.At.Format("15:04:05"), ev.Type, ev.Message)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
