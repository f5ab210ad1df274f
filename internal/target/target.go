// Package target tracks the build target selected for each project and
// drives the interactive selection protocol. Selections live for the
// process lifetime; they can be overwritten but never cleared.
package target

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/avocadotools/avx/internal/logging"
)

// ErrAborted indicates the user cancelled an interactive choice. No state
// changed.
var ErrAborted = errors.New("target selection aborted")

// ErrNoTargets indicates the project's volume exposes no targets to choose
// from.
var ErrNoTargets = errors.New("no targets available")

// ChangeFunc is notified after a selection changes.
type ChangeFunc func(folderPath, target string)

// Store maps project folders to their selected target.
type Store struct {
	mu       sync.Mutex
	selected map[string]string
	subs     []ChangeFunc
}

// NewStore creates an empty selection store.
func NewStore() *Store {
	return &Store{selected: make(map[string]string)}
}

// Get returns the selected target for a folder. ok is false when no target
// has been chosen yet.
func (s *Store) Get(folderPath string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.selected[folderPath]
	return t, ok
}

// Set records a selection, overwriting any previous one, and notifies
// subscribers.
func (s *Store) Set(folderPath, target string) {
	s.mu.Lock()
	s.selected[folderPath] = target
	subs := make([]ChangeFunc, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	logging.Info("target selected",
		zap.String("folder", folderPath),
		zap.String("target", target))
	for _, fn := range subs {
		fn(folderPath, target)
	}
}

// Subscribe registers a change listener. Listeners run synchronously on
// the goroutine that called Set.
func (s *Store) Subscribe(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Summary renders the status-indicator text for a set of projects: the
// single project's target (or "no target"), or a configured/total fraction
// when several projects are open.
func (s *Store) Summary(folders []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch len(folders) {
	case 0:
		return "no projects"
	case 1:
		if t, ok := s.selected[folders[0]]; ok {
			return t
		}
		return "no target"
	default:
		configured := 0
		for _, f := range folders {
			if _, ok := s.selected[f]; ok {
				configured++
			}
		}
		return fmt.Sprintf("%d/%d targets", configured, len(folders))
	}
}
