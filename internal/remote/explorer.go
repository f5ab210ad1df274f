// Package remote executes read-only file primitives inside a project's
// explorer container and parses their output into structured records.
// Nothing here assumes a container is already present; every operation
// goes through the lifecycle manager.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/avocadotools/avx/internal/container"
	"github.com/avocadotools/avx/internal/logging"
)

const (
	// TargetRoot is the directory inside the mounted volume whose
	// immediate children are the available build targets.
	TargetRoot = container.Mountpoint + "/target"

	// MaxEntries bounds a single directory listing.
	MaxEntries = 200

	// MaxTargets bounds target enumeration.
	MaxTargets = 50
)

// ErrNoContainer indicates the lifecycle layer could not provide a
// container for the operation.
var ErrNoContainer = errors.New("no container available")

// Session runs commands inside a folder's explorer container.
// *container.Manager satisfies it; tests inject fakes.
type Session interface {
	Exec(ctx context.Context, folderPath string, argv ...string) (string, error)
	ExecShell(ctx context.Context, folderPath, script string) (string, error)
}

// Outcome classifies how a remote operation concluded. The plain accessors
// collapse everything but OutcomeOK into empty results; callers that need
// to render failures differently use the Ex variants.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNoContainer
	OutcomeNotFound
	OutcomeExecFailed
)

// Explorer provides typed listing and reading operations over the volume.
type Explorer struct {
	session Session
}

// NewExplorer creates an explorer backed by the given session.
func NewExplorer(session Session) *Explorer {
	return &Explorer{session: session}
}

// Execute runs an argument vector inside the folder's container.
func (e *Explorer) Execute(ctx context.Context, folderPath string, argv ...string) (string, error) {
	out, err := e.session.Exec(ctx, folderPath, argv...)
	if err != nil {
		if errors.Is(err, container.ErrUnavailable) {
			return "", ErrNoContainer
		}
		return out, err
	}
	return out, nil
}

// ListDirectory lists the immediate children of dir, directories first,
// ties broken by case-aware name order, capped at MaxEntries. Any failure
// yields an empty slice.
func (e *Explorer) ListDirectory(ctx context.Context, folderPath, dir string) []FileInfo {
	entries, _ := e.ListDirectoryEx(ctx, folderPath, dir)
	return entries
}

// ListDirectoryEx is ListDirectory with an explicit outcome.
func (e *Explorer) ListDirectoryEx(ctx context.Context, folderPath, dir string) ([]FileInfo, Outcome) {
	// The stat pipeline needs an in-container shell hop; the directory is
	// the only interpolated value and goes through the quoting routine.
	script := fmt.Sprintf(
		`find %s -maxdepth 1 -mindepth 1 -exec stat -c '%%F|%%s|%%a|%%Y|%%n' {} \; | head -%d`,
		ShellQuote(dir), MaxEntries)

	out, err := e.session.ExecShell(ctx, folderPath, script)
	if err != nil {
		outcome := classify(err, out)
		logging.Debug("listing failed",
			zap.String("folder", folderPath),
			zap.String("dir", dir),
			zap.Error(err))
		return nil, outcome
	}

	entries := ParseListing(out)
	SortEntries(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries, OutcomeOK
}

// ReadFile returns a file's contents, or absent=false on any failure.
func (e *Explorer) ReadFile(ctx context.Context, folderPath, filePath string) (string, bool) {
	content, outcome := e.ReadFileEx(ctx, folderPath, filePath)
	return content, outcome == OutcomeOK
}

// ReadFileEx is ReadFile with an explicit outcome.
func (e *Explorer) ReadFileEx(ctx context.Context, folderPath, filePath string) (string, Outcome) {
	out, err := e.session.Exec(ctx, folderPath, "cat", filePath)
	if err != nil {
		outcome := classify(err, out)
		logging.Debug("read failed",
			zap.String("folder", folderPath),
			zap.String("path", filePath),
			zap.Error(err))
		return "", outcome
	}
	return out, OutcomeOK
}

// PathExists reports whether a path exists inside the volume. Any
// execution failure reads as "does not exist".
func (e *Explorer) PathExists(ctx context.Context, folderPath, path string) bool {
	_, err := e.session.Exec(ctx, folderPath, "test", "-e", path)
	return err == nil
}

// ListTargets enumerates the volume's top-level targets, hidden entries
// filtered, capped at MaxTargets. Empty on any failure.
func (e *Explorer) ListTargets(ctx context.Context, folderPath string) []string {
	targets, _ := e.ListTargetsEx(ctx, folderPath)
	return targets
}

// ListTargetsEx is ListTargets with an explicit outcome.
func (e *Explorer) ListTargetsEx(ctx context.Context, folderPath string) ([]string, Outcome) {
	out, err := e.session.Exec(ctx, folderPath, "ls", "-1", TargetRoot)
	if err != nil {
		return nil, classify(err, out)
	}

	var targets []string
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || strings.HasPrefix(name, ".") {
			continue
		}
		targets = append(targets, name)
		if len(targets) == MaxTargets {
			break
		}
	}
	return targets, OutcomeOK
}

func classify(err error, output string) Outcome {
	if errors.Is(err, container.ErrUnavailable) {
		return OutcomeNoContainer
	}
	if strings.Contains(output, "No such file or directory") ||
		strings.Contains(err.Error(), "No such file or directory") {
		return OutcomeNotFound
	}
	return OutcomeExecFailed
}

// ShellQuote wraps s in POSIX single quotes so it survives the container
// shell unparsed. This is the only escaping routine in the repo; every
// shell hop goes through it.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
