package engine

import (
	"sync"
	"time"

	"dashboard/internal/config"
	"dashboard/internal/models"
)

// State holds everything the dashboard shows. It is built once and never
// mutated; a refresh builds a new State and swaps it in.
type State struct {
	Customers   models.CustomerTable
	Panels      []models.Panel
	Menu        []models.MenuItem
	GeneratedAt time.Time
}

// Panel looks up a chart panel by name.
func (s *State) Panel(name string) (models.Panel, bool) {
	for _, p := range s.Panels {
		if p.Name == name {
			return p, true
		}
	}
	return models.Panel{}, false
}

// BuildState generates the customer table and every configured panel.
// now is the end of the registration window.
func BuildState(cfg *config.Config, now time.Time) *State {
	st := &State{
		Customers:   GenerateCustomers(cfg.Customers.Count, cfg.CustomerSeed(), now),
		Panels:      make([]models.Panel, 0, len(cfg.Charts.Panels)),
		Menu:        make([]models.MenuItem, 0, len(cfg.Menu)),
		GeneratedAt: now,
	}

	for _, p := range cfg.Charts.Panels {
		st.Panels = append(st.Panels, models.Panel{
			Name:   p.Name,
			Title:  p.Title,
			Style:  p.Style,
			Column: p.Column,
			Data:   GenerateTimeSeries(cfg.Charts.Points, cfg.Charts.Series, p.Volatility, p.Seed),
		})
	}

	for i, label := range cfg.Menu {
		st.Menu = append(st.Menu, models.MenuItem{Label: label, Primary: i == 0})
	}
	return st
}

// Store is the explicit application state shared by the HTTP handlers and
// the refresh job. Load returns nil until the first Swap.
type Store struct {
	mu    sync.RWMutex
	state *State
}

func NewStore(initial *State) *Store {
	return &Store{state: initial}
}

func (s *Store) Load() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Swap(st *State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}
