package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avocadotools/avx/internal/container"
	"github.com/avocadotools/avx/internal/remote"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusTickMsg:
		running := make(map[string]bool)
		for _, rec := range m.manager.List() {
			running[rec.FolderPath] = m.manager.IsRunning(context.Background(), rec.Tool, rec.ContainerName)
		}
		m.running = running
		return m, tickCmd()

	case dirLoadedMsg:
		t := m.tree(msg.folder)
		if msg.outcome == remote.OutcomeOK {
			t.children[msg.dir] = msg.entries
			delete(t.failed, msg.dir)
		} else {
			t.failed[msg.dir] = msg.outcome
			delete(t.children, msg.dir)
		}
		t.clampCursor()
		return m, nil

	case fileLoadedMsg:
		if msg.ok {
			m.previewPath = msg.path
			m.previewContent = msg.content
			m.message = ""
		} else {
			m.previewPath = msg.path
			m.previewContent = ""
			m.message = fmt.Sprintf("Could not read %s", msg.path)
			m.isError = false
		}
		return m, nil

	case targetsLoadedMsg:
		if len(msg.targets) == 0 {
			m.message = "No targets found in the build volume"
			m.isError = true
			return m, nil
		}
		m.picking = true
		m.pickerFolder = msg.folder
		m.pickerItems = msg.targets
		m.pickerCursor = 0
		if current, ok := m.store.Get(msg.folder); ok {
			for i, item := range msg.targets {
				if item == current {
					m.pickerCursor = i
					break
				}
			}
		}
		m.filter.SetValue("")
		m.filter.Focus()
		return m, textinput.Blink

	case cleanupDoneMsg:
		delete(m.running, msg.folder)
		m.message = "Explorer container removed"
		m.isError = false
		return m, nil

	case tea.KeyMsg:
		if m.picking {
			return m.handlePickerMode(msg)
		}
		return m.handleNormalMode(msg)
	}

	if m.picking {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleNormalMode handles keys when navigating projects and the tree.
func (m model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "r":
		m.projects = m.reg.Rescan()
		if m.cursor >= len(m.projects) && m.cursor > 0 {
			m.cursor = len(m.projects) - 1
		}
		m.message = fmt.Sprintf("Rescanned: %d project(s)", len(m.projects))
		m.isError = false
		return m, nil

	case "tab":
		if m.focus == focusProjects {
			return m.focusTreePane()
		}
		m.focus = focusProjects
		return m, nil

	case "esc":
		m.focus = focusProjects
		return m, nil

	case "t", "s":
		proj, ok := m.selectedProject()
		if !ok {
			return m, nil
		}
		m.message = "Loading targets..."
		m.isError = false
		return m, m.loadTargets(proj.Folder)

	case "x":
		proj, ok := m.selectedProject()
		if !ok {
			return m, nil
		}
		if _, tracked := m.manager.Lookup(proj.Folder); !tracked {
			m.message = "No explorer container for this project"
			m.isError = false
			return m, nil
		}
		m.message = "Removing explorer container..."
		m.isError = false
		return m, m.cleanup(proj.Folder)

	case "up", "k":
		return m.moveCursor(-1), nil

	case "down", "j":
		return m.moveCursor(1), nil

	case "enter":
		if m.focus == focusProjects {
			return m.focusTreePane()
		}
		return m.activateTreeRow()

	case "h", "left":
		if m.focus == focusTree {
			return m.collapseTreeRow()
		}
		return m, nil
	}

	return m, nil
}

func (m model) moveCursor(delta int) model {
	if m.focus == focusProjects {
		m.cursor += delta
		if m.cursor < 0 {
			m.cursor = 0
		}
		if m.cursor >= len(m.projects) && len(m.projects) > 0 {
			m.cursor = len(m.projects) - 1
		}
		return m
	}

	proj, ok := m.selectedProject()
	if !ok {
		return m
	}
	t := m.tree(proj.Folder)
	rows := t.visible()
	t.cursor += delta
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor >= len(rows) && len(rows) > 0 {
		t.cursor = len(rows) - 1
	}
	return m
}

// focusTreePane switches focus to the tree, loading the volume root on
// first visit.
func (m model) focusTreePane() (tea.Model, tea.Cmd) {
	proj, ok := m.selectedProject()
	if !ok {
		return m, nil
	}
	m.focus = focusTree
	t := m.tree(proj.Folder)
	if _, loaded := t.children[container.Mountpoint]; !loaded {
		return m, m.loadDir(proj.Folder, container.Mountpoint)
	}
	return m, nil
}

// activateTreeRow expands/collapses a directory or previews a file.
func (m model) activateTreeRow() (tea.Model, tea.Cmd) {
	proj, ok := m.selectedProject()
	if !ok {
		return m, nil
	}
	t := m.tree(proj.Folder)
	rows := t.visible()
	if t.cursor >= len(rows) {
		return m, nil
	}
	row := rows[t.cursor]
	if row.placeholder != "" {
		return m, nil
	}

	if row.info.IsDir {
		if t.expanded[row.info.Path] {
			t.expanded[row.info.Path] = false
			return m, nil
		}
		t.expanded[row.info.Path] = true
		if _, loaded := t.children[row.info.Path]; !loaded {
			return m, m.loadDir(proj.Folder, row.info.Path)
		}
		return m, nil
	}

	return m, m.loadFile(proj.Folder, row.info.Path)
}

// collapseTreeRow collapses the directory under the cursor, or jumps to
// its parent entry when already collapsed.
func (m model) collapseTreeRow() (tea.Model, tea.Cmd) {
	proj, ok := m.selectedProject()
	if !ok {
		return m, nil
	}
	t := m.tree(proj.Folder)
	rows := t.visible()
	if t.cursor >= len(rows) {
		return m, nil
	}
	row := rows[t.cursor]

	if row.placeholder == "" && row.info.IsDir && t.expanded[row.info.Path] {
		t.expanded[row.info.Path] = false
		return m, nil
	}

	parent := container.Mountpoint
	if row.placeholder == "" {
		parent = parentDir(row.info.Path)
	}
	for i, r := range rows {
		if r.placeholder == "" && r.info.Path == parent {
			t.cursor = i
			break
		}
	}
	return m, nil
}

// handlePickerMode handles keys while the target quick-pick is open.
func (m model) handlePickerMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.picking = false
		m.filter.Blur()
		m.message = "Target selection cancelled"
		m.isError = false
		return m, nil

	case "up", "ctrl+p":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
		return m, nil

	case "down", "ctrl+n":
		if m.pickerCursor < len(m.filteredPickerItems())-1 {
			m.pickerCursor++
		}
		return m, nil

	case "enter":
		items := m.filteredPickerItems()
		if m.pickerCursor >= len(items) {
			return m, nil
		}
		chosen := items[m.pickerCursor]
		m.store.Set(m.pickerFolder, chosen)
		m.picking = false
		m.filter.Blur()
		m.message = fmt.Sprintf("Target set to %s", chosen)
		m.isError = false
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.pickerCursor >= len(m.filteredPickerItems()) {
		m.pickerCursor = 0
	}
	return m, cmd
}
