// Package registry discovers project folders carrying an avocado
// configuration file and notifies listeners when the project set changes.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/avocadotools/avx/internal/logging"
)

// ConfigFile marks a folder as an avocado project.
const ConfigFile = "avocado.yaml"

// Project is one discovered project folder.
type Project struct {
	Folder        string `yaml:"-"`
	Name          string `yaml:"name"`
	DefaultTarget string `yaml:"default_target"`
}

// ChangeFunc is notified with the full project list after a rescan that
// changed it.
type ChangeFunc func(projects []Project)

// Registry scans a set of root directories for projects. A root that is
// itself a project counts; otherwise its immediate children are checked.
type Registry struct {
	mu       sync.Mutex
	roots    []string
	projects map[string]Project
	subs     []ChangeFunc
}

// New creates a registry over the given roots.
func New(roots ...string) *Registry {
	return &Registry{
		roots:    roots,
		projects: make(map[string]Project),
	}
}

// Rescan walks the roots and rebuilds the project set, notifying
// subscribers if it changed. It returns the current list.
func (r *Registry) Rescan() []Project {
	found := make(map[string]Project)
	for _, root := range r.roots {
		r.scanRoot(root, found)
	}

	r.mu.Lock()
	changed := len(found) != len(r.projects)
	if !changed {
		for folder := range found {
			if _, ok := r.projects[folder]; !ok {
				changed = true
				break
			}
		}
	}
	r.projects = found
	subs := make([]ChangeFunc, len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	projects := r.Projects()
	if changed {
		logging.Info("project set changed", zap.Int("count", len(projects)))
		for _, fn := range subs {
			fn(projects)
		}
	}
	return projects
}

func (r *Registry) scanRoot(root string, found map[string]Project) {
	if p, err := Load(root); err == nil {
		found[p.Folder] = p
		return
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		logging.Debug("scan root unreadable", zap.String("root", root), zap.Error(err))
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if p, err := Load(filepath.Join(root, entry.Name())); err == nil {
			found[p.Folder] = p
		}
	}
}

// Projects returns the discovered projects sorted by folder.
func (r *Registry) Projects() []Project {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Project, 0, len(r.projects))
	for _, p := range r.projects {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Folder < result[j].Folder
	})
	return result
}

// Folders returns the project folder paths, sorted.
func (r *Registry) Folders() []string {
	projects := r.Projects()
	folders := make([]string, len(projects))
	for i, p := range projects {
		folders[i] = p.Folder
	}
	return folders
}

// Subscribe registers a project-set change listener.
func (r *Registry) Subscribe(fn ChangeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
}

// Load reads a single folder's project configuration.
func Load(folderPath string) (Project, error) {
	abs, err := filepath.Abs(folderPath)
	if err != nil {
		return Project{}, err
	}

	data, err := os.ReadFile(filepath.Join(abs, ConfigFile))
	if err != nil {
		return Project{}, fmt.Errorf("reading project config: %w", err)
	}

	p := Project{Folder: abs}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("parsing project config: %w", err)
	}
	if p.Name == "" {
		p.Name = filepath.Base(abs)
	}
	return p, nil
}
