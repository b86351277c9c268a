// Package guard holds the Guard type: a named, ordered group of watchers
// plus the command that should run for the paths they derive.
package guard

import (
	"github.com/arthur-debert/guard/pkg/watcher"
)

// DefaultGroup is the group of guards declared without one
const DefaultGroup = "default"

// Guard is an ordered collection of watchers belonging to one automation
// unit. The loader and runner own it; the match engine only reads it.
type Guard struct {
	Name    string
	Group   string
	Run     []string
	Options map[string]interface{}

	watchers []*watcher.Watcher
}

// New creates a guard holding watchers in the given order
func New(name string, watchers ...*watcher.Watcher) *Guard {
	return &Guard{
		Name:     name,
		Group:    DefaultGroup,
		watchers: append([]*watcher.Watcher(nil), watchers...),
	}
}

// Watchers returns the watchers in registration order
func (g *Guard) Watchers() []*watcher.Watcher {
	return g.watchers
}

// SetWatchers replaces the watchers
func (g *Guard) SetWatchers(watchers []*watcher.Watcher) {
	g.watchers = append([]*watcher.Watcher(nil), watchers...)
}

// AddWatcher appends a watcher
func (g *Guard) AddWatcher(w *watcher.Watcher) {
	g.watchers = append(g.watchers, w)
}

// Filter returns the guards whose group is in groups and whose name is in
// names, keeping their order. An empty filter list accepts everything.
func Filter(guards []*Guard, groups, names []string) []*Guard {
	var selected []*Guard
	for _, g := range guards {
		if len(groups) > 0 && !contains(groups, g.Group) {
			continue
		}
		if len(names) > 0 && !contains(names, g.Name) {
			continue
		}
		selected = append(selected, g)
	}
	return selected
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
