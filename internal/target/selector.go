package target

import (
	"context"
	"fmt"
)

// Lister enumerates the targets available in a project's volume.
// *remote.Explorer satisfies it.
type Lister interface {
	ListTargets(ctx context.Context, folderPath string) []string
}

// Picker resolves interactive choices. The UI layer implements it; a
// non-interactive implementation backs the CLI. Returning an empty string
// or an error means the user cancelled.
type Picker interface {
	PickProject(ctx context.Context, folders []string) (string, error)
	PickTarget(ctx context.Context, folderPath string, candidates []string, current string) (string, error)
}

// Selector runs the target resolution protocol over a Store.
type Selector struct {
	Store  *Store
	Lister Lister
	Picker Picker
}

// Select resolves and records a target for a project. With an empty
// folderPath the project is resolved first: a single open project is used
// directly, several go through the picker. Cancelling at any step returns
// ErrAborted with no side effects.
func (s *Selector) Select(ctx context.Context, folderPath string, projects []string) (string, error) {
	if folderPath == "" {
		switch len(projects) {
		case 0:
			return "", fmt.Errorf("%w: no projects open", ErrAborted)
		case 1:
			folderPath = projects[0]
		default:
			chosen, err := s.Picker.PickProject(ctx, projects)
			if err != nil || chosen == "" {
				return "", ErrAborted
			}
			folderPath = chosen
		}
	}

	candidates := s.Lister.ListTargets(ctx, folderPath)
	if len(candidates) == 0 {
		return "", ErrNoTargets
	}

	current, _ := s.Store.Get(folderPath)
	chosen, err := s.Picker.PickTarget(ctx, folderPath, candidates, current)
	if err != nil || chosen == "" {
		return "", ErrAborted
	}

	s.Store.Set(folderPath, chosen)
	return chosen, nil
}
