// Package volume reads the per-folder state descriptor written by the
// avocado build tool. The descriptor is owned by the build tool; this
// package never writes it.
package volume

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// StateFile is the descriptor file name inside a project folder.
const StateFile = ".avocado-state"

// ErrNoState indicates the folder has no state descriptor, i.e. the build
// tool has not provisioned a volume for it yet.
var ErrNoState = errors.New("no avocado state for folder")

// Tool is the container tool used to manage the volume.
type Tool string

const (
	ToolDocker Tool = "docker"
	ToolPodman Tool = "podman"
)

// State describes the build volume backing a project folder. It is
// immutable for the lifetime of a started container.
type State struct {
	VolumeName    string `json:"volume_name"`
	SourcePath    string `json:"source_path"`
	ContainerTool Tool   `json:"container_tool"`
}

// Load reads the state descriptor for a project folder.
func Load(folderPath string) (*State, error) {
	path := filepath.Join(folderPath, StateFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoState, folderPath)
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	if s.VolumeName == "" {
		return nil, fmt.Errorf("state for %s has no volume name", folderPath)
	}
	switch s.ContainerTool {
	case ToolDocker, ToolPodman:
	case "":
		s.ContainerTool = ToolDocker
	default:
		return nil, fmt.Errorf("unknown container tool %q", s.ContainerTool)
	}
	return &s, nil
}

// Exists returns true if the folder carries a state descriptor.
func Exists(folderPath string) bool {
	_, err := os.Stat(filepath.Join(folderPath, StateFile))
	return err == nil
}
