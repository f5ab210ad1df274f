package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avocadotools/avx/internal/remote"
)

// statusTickMsg triggers a container liveness refresh poll.
type statusTickMsg time.Time

// dirLoadedMsg is sent when a remote directory listing finishes.
type dirLoadedMsg struct {
	folder  string
	dir     string
	entries []remote.FileInfo
	outcome remote.Outcome
}

// fileLoadedMsg is sent when a remote file read finishes.
type fileLoadedMsg struct {
	folder  string
	path    string
	content string
	ok      bool
}

// targetsLoadedMsg carries the target candidates for the picker overlay.
type targetsLoadedMsg struct {
	folder  string
	targets []string
}

// cleanupDoneMsg is sent when a container teardown finishes.
type cleanupDoneMsg struct {
	folder string
}

// tickCmd returns a command that sends a tick every 2 seconds.
func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}
