package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// loadDir lists a remote directory in the background.
func (m model) loadDir(folder, dir string) tea.Cmd {
	explorer := m.explorer
	return func() tea.Msg {
		entries, outcome := explorer.ListDirectoryEx(context.Background(), folder, dir)
		return dirLoadedMsg{folder: folder, dir: dir, entries: entries, outcome: outcome}
	}
}

// loadFile reads a remote file in the background.
func (m model) loadFile(folder, path string) tea.Cmd {
	explorer := m.explorer
	return func() tea.Msg {
		content, ok := explorer.ReadFile(context.Background(), folder, path)
		return fileLoadedMsg{folder: folder, path: path, content: content, ok: ok}
	}
}

// loadTargets enumerates targets for the picker in the background.
func (m model) loadTargets(folder string) tea.Cmd {
	explorer := m.explorer
	return func() tea.Msg {
		return targetsLoadedMsg{folder: folder, targets: explorer.ListTargets(context.Background(), folder)}
	}
}

// cleanup tears down a folder's container in the background.
func (m model) cleanup(folder string) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		mgr.Cleanup(context.Background(), folder)
		return cleanupDoneMsg{folder: folder}
	}
}
