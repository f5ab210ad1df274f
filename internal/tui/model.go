package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/avocadotools/avx/internal/container"
	"github.com/avocadotools/avx/internal/registry"
	"github.com/avocadotools/avx/internal/remote"
	"github.com/avocadotools/avx/internal/target"
)

type focusArea int

const (
	focusProjects focusArea = iota
	focusTree
)

// model is the Bubble Tea model for the volume explorer dashboard.
type model struct {
	reg      *registry.Registry
	manager  *container.Manager
	explorer *remote.Explorer
	store    *target.Store

	projects []registry.Project
	cursor   int
	focus    focusArea
	running  map[string]bool // folder → container alive

	trees map[string]*treeState // folder → tree view state

	previewPath    string
	previewContent string

	// Target quick-pick overlay.
	picking      bool
	pickerFolder string
	pickerItems  []string
	pickerCursor int
	filter       textinput.Model

	message  string
	isError  bool
	quitting bool
	width    int
	height   int
}

func newModel(reg *registry.Registry, mgr *container.Manager, explorer *remote.Explorer, store *target.Store) model {
	ti := textinput.New()
	ti.Placeholder = "filter targets"
	ti.CharLimit = 128
	ti.Width = 40

	// Get initial terminal size so the first render isn't at width=0
	w, h, _ := term.GetSize(int(os.Stdout.Fd()))
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	return model{
		reg:      reg,
		manager:  mgr,
		explorer: explorer,
		store:    store,
		projects: reg.Projects(),
		running:  make(map[string]bool),
		trees:    make(map[string]*treeState),
		filter:   ti,
		width:    w,
		height:   h,
	}
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

// selectedProject returns the project under the cursor.
func (m model) selectedProject() (registry.Project, bool) {
	if m.cursor < 0 || m.cursor >= len(m.projects) {
		return registry.Project{}, false
	}
	return m.projects[m.cursor], true
}

// tree returns (creating if needed) the tree state for a folder.
func (m model) tree(folder string) *treeState {
	t, ok := m.trees[folder]
	if !ok {
		t = newTreeState()
		m.trees[folder] = t
	}
	return t
}

// filteredPickerItems applies the textinput filter to the candidates.
func (m model) filteredPickerItems() []string {
	query := m.filter.Value()
	if query == "" {
		return m.pickerItems
	}
	var out []string
	for _, item := range m.pickerItems {
		if containsFold(item, query) {
			out = append(out, item)
		}
	}
	return out
}
