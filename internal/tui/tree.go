package tui

import (
	gopath "path"

	"github.com/avocadotools/avx/internal/container"
	"github.com/avocadotools/avx/internal/remote"
)

// treeState is the lazily populated view of one project's volume tree.
type treeState struct {
	expanded map[string]bool
	children map[string][]remote.FileInfo
	failed   map[string]remote.Outcome
	cursor   int
}

func newTreeState() *treeState {
	return &treeState{
		expanded: make(map[string]bool),
		children: make(map[string][]remote.FileInfo),
		failed:   make(map[string]remote.Outcome),
	}
}

// treeRow is one visible line of the flattened tree.
type treeRow struct {
	info        remote.FileInfo
	depth       int
	placeholder string // non-empty for informational rows ("unavailable", "empty")
}

// visible flattens the loaded tree into displayable rows, depth-first,
// honoring expansion state.
func (t *treeState) visible() []treeRow {
	var rows []treeRow
	t.walk(container.Mountpoint, 0, &rows)
	return rows
}

func (t *treeState) walk(dir string, depth int, rows *[]treeRow) {
	if outcome, ok := t.failed[dir]; ok {
		*rows = append(*rows, treeRow{depth: depth, placeholder: placeholderFor(outcome)})
		return
	}
	entries, ok := t.children[dir]
	if !ok {
		*rows = append(*rows, treeRow{depth: depth, placeholder: "loading..."})
		return
	}
	if len(entries) == 0 {
		*rows = append(*rows, treeRow{depth: depth, placeholder: "(empty)"})
		return
	}
	for _, entry := range entries {
		*rows = append(*rows, treeRow{info: entry, depth: depth})
		if entry.IsDir && t.expanded[entry.Path] {
			t.walk(entry.Path, depth+1, rows)
		}
	}
}

func placeholderFor(outcome remote.Outcome) string {
	switch outcome {
	case remote.OutcomeNoContainer:
		return "(volume unavailable)"
	case remote.OutcomeNotFound:
		return "(not found)"
	default:
		return "(could not list)"
	}
}

// clampCursor keeps the cursor inside the visible rows after a reload.
func (t *treeState) clampCursor() {
	n := len(t.visible())
	if t.cursor >= n {
		t.cursor = n - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// parentDir returns the containing directory of an in-volume path.
func parentDir(p string) string {
	return gopath.Dir(p)
}
