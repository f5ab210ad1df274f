// Package container manages the lightweight explorer containers that mount
// a project's build volume read-only. At most one container exists per
// project folder; containers are started lazily, reused while alive, and
// torn down best-effort.
package container

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/avocadotools/avx/internal/logging"
	"github.com/avocadotools/avx/internal/volume"
)

const (
	// Mountpoint is where the build volume is mounted inside the
	// explorer container.
	Mountpoint = "/opt/_avocado"

	// Image is the generic base image used for explorer containers. It
	// only needs a shell and coreutils; the project's own SDK image is
	// never used here because it may be large and slow to pull.
	Image = "alpine:3.20"

	namePrefix = "avocado-explorer"

	startWaitTimeout = 30 * time.Second
)

// ErrUnavailable indicates no explorer container could be provided for the
// folder: no state descriptor, a failed start, or a timed-out wait on a
// concurrent start. The underlying cause is logged, not surfaced.
var ErrUnavailable = errors.New("no explorer container available")

// Record is the bookkeeping entry for a started explorer container.
type Record struct {
	ContainerName string
	VolumeName    string
	FolderPath    string
	Tool          volume.Tool
}

// Manager owns the folder→container mapping. All mutation happens through
// its methods; slow container-tool invocations run outside the lock.
type Manager struct {
	mu         sync.Mutex
	runner     Runner
	containers map[string]*Record
	starting   map[string]chan struct{}

	now      func() time.Time
	waitTime time.Duration
}

// NewManager creates a manager using the given runner.
func NewManager(runner Runner) *Manager {
	return &Manager{
		runner:     runner,
		containers: make(map[string]*Record),
		starting:   make(map[string]chan struct{}),
		now:        time.Now,
		waitTime:   startWaitTimeout,
	}
}

// Ensure guarantees a live explorer container for the folder and returns
// its record. If a start for the folder is already in flight, Ensure waits
// for it to settle (bounded) instead of racing a second start.
func (m *Manager) Ensure(ctx context.Context, folderPath string) (*Record, error) {
	for {
		m.mu.Lock()
		if ch, ok := m.starting[folderPath]; ok {
			m.mu.Unlock()
			return m.awaitStart(ctx, folderPath, ch)
		}

		if rec, ok := m.containers[folderPath]; ok {
			name, tool := rec.ContainerName, rec.Tool
			m.mu.Unlock()
			if m.IsRunning(ctx, tool, name) {
				return rec, nil
			}
			logging.Info("explorer container died, evicting",
				zap.String("folder", folderPath),
				zap.String("container", name))
			m.mu.Lock()
			if cur, ok := m.containers[folderPath]; ok && cur.ContainerName == name {
				delete(m.containers, folderPath)
			}
			m.mu.Unlock()
			continue
		}

		ch := make(chan struct{})
		m.starting[folderPath] = ch
		m.mu.Unlock()

		rec, err := m.start(ctx, folderPath)

		m.mu.Lock()
		delete(m.starting, folderPath)
		if err == nil {
			m.containers[folderPath] = rec
		}
		m.mu.Unlock()
		close(ch)

		if err != nil {
			logging.Warn("explorer container start failed",
				zap.String("folder", folderPath),
				zap.Error(err))
			return nil, ErrUnavailable
		}
		logging.Info("explorer container started",
			zap.String("folder", folderPath),
			zap.String("container", rec.ContainerName),
			zap.String("volume", rec.VolumeName))
		return rec, nil
	}
}

// awaitStart waits for a concurrent start to settle and returns whatever it
// produced. The wait is bounded so a hung start cannot suspend callers
// forever; on timeout the caller gets ErrUnavailable even if the start
// later succeeds.
func (m *Manager) awaitStart(ctx context.Context, folderPath string, ch <-chan struct{}) (*Record, error) {
	timer := time.NewTimer(m.waitTime)
	defer timer.Stop()

	select {
	case <-ch:
		m.mu.Lock()
		rec, ok := m.containers[folderPath]
		m.mu.Unlock()
		if !ok {
			return nil, ErrUnavailable
		}
		return rec, nil
	case <-timer.C:
		logging.Warn("timed out waiting for concurrent container start",
			zap.String("folder", folderPath))
		return nil, ErrUnavailable
	case <-ctx.Done():
		return nil, ErrUnavailable
	}
}

func (m *Manager) start(ctx context.Context, folderPath string) (*Record, error) {
	st, err := volume.Load(folderPath)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s-%d-%s", namePrefix, m.now().Unix(), sanitizeName(filepath.Base(folderPath)))
	out, err := m.runner.Run(ctx, st.ContainerTool,
		"run", "-d",
		"--name", name,
		"-v", fmt.Sprintf("%s:%s:ro", st.VolumeName, Mountpoint),
		Image, "sleep", "infinity")
	if err != nil {
		return nil, fmt.Errorf("run failed: %s: %w", out, err)
	}

	return &Record{
		ContainerName: name,
		VolumeName:    st.VolumeName,
		FolderPath:    folderPath,
		Tool:          st.ContainerTool,
	}, nil
}

// IsRunning probes container liveness. Any probe failure, including a
// missing container or an unreachable tool, reads as not running.
func (m *Manager) IsRunning(ctx context.Context, tool volume.Tool, name string) bool {
	out, err := m.runner.Run(ctx, tool, "inspect", "-f", "{{.State.Running}}", name)
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) == "true"
}

// Exec runs an argument vector inside the folder's explorer container,
// ensuring one exists first.
func (m *Manager) Exec(ctx context.Context, folderPath string, argv ...string) (string, error) {
	rec, err := m.Ensure(ctx, folderPath)
	if err != nil {
		return "", err
	}
	args := append([]string{"exec", rec.ContainerName}, argv...)
	return m.runner.Run(ctx, rec.Tool, args...)
}

// ExecShell runs a script through the container's own shell. Use only for
// pipelines that genuinely need a shell; everything else goes through Exec.
func (m *Manager) ExecShell(ctx context.Context, folderPath, script string) (string, error) {
	return m.Exec(ctx, folderPath, "/bin/sh", "-c", script)
}

// Lookup returns the bookkeeping record for a folder, if any.
func (m *Manager) Lookup(folderPath string) (*Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.containers[folderPath]
	return rec, ok
}

// List returns all records sorted by folder path.
func (m *Manager) List() []*Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*Record, 0, len(m.containers))
	for _, rec := range m.containers {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FolderPath < result[j].FolderPath
	})
	return result
}

// Cleanup stops and removes the folder's explorer container. Tool errors
// are swallowed; cleanup commonly runs during teardown where nothing can
// act on them.
func (m *Manager) Cleanup(ctx context.Context, folderPath string) {
	m.mu.Lock()
	rec, ok := m.containers[folderPath]
	if ok {
		delete(m.containers, folderPath)
	}
	m.mu.Unlock()
	if !ok {
		return
	}

	if _, err := m.runner.Run(ctx, rec.Tool, "stop", "-t", "1", rec.ContainerName); err != nil {
		logging.Debug("container stop failed", zap.String("container", rec.ContainerName), zap.Error(err))
	}
	if _, err := m.runner.Run(ctx, rec.Tool, "rm", "-f", rec.ContainerName); err != nil {
		logging.Debug("container rm failed", zap.String("container", rec.ContainerName), zap.Error(err))
	}
	logging.Info("explorer container removed",
		zap.String("folder", folderPath),
		zap.String("container", rec.ContainerName))
}

// CleanupAll tears down every managed container.
func (m *Manager) CleanupAll(ctx context.Context) {
	m.mu.Lock()
	folders := make([]string, 0, len(m.containers))
	for folder := range m.containers {
		folders = append(folders, folder)
	}
	m.mu.Unlock()

	for _, folder := range folders {
		m.Cleanup(ctx, folder)
	}
}

var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// sanitizeName makes a folder basename safe for use in a container name.
func sanitizeName(base string) string {
	s := invalidNameChars.ReplaceAllString(base, "-")
	s = strings.Trim(s, "-.")
	if s == "" {
		s = "project"
	}
	return s
}
