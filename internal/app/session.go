package app

import (
	"sync"

	"salary-dashboard/internal/analysis"
	"salary-dashboard/internal/domain"
)

// Session owns the current selections of the two multi-select controls.
type Session struct {
	app *App

	mu  sync.Mutex
	sel Selections
}

// NewSession starts with every offered value selected. The App must be loaded.
func NewSession(a *App) *Session {
	return &Session{app: a, sel: a.DefaultSelections()}
}

// Select replaces the selection for f. Values the table does not offer are dropped.
func (s *Session) Select(f domain.CategoryField, values []string) analysis.Selection {
	sel := s.app.SelectionFor(f, values)
	s.mu.Lock()
	s.sel[f] = sel
	s.mu.Unlock()
	return sel
}

// Reset restores the default selections.
func (s *Session) Reset() {
	def := s.app.DefaultSelections()
	s.mu.Lock()
	s.sel = def
	s.mu.Unlock()
}

func (s *Session) Selections() Selections {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Clone()
}

// Render re-runs the whole view against the current selections.
func (s *Session) Render() (View, error) {
	return s.app.Render(s.Selections())
}
