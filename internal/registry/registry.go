// Package registry provides the read-only projects-master lookup table.
// The dataset ships embedded in the binary; a different YAML file with the
// same schema can be loaded via config without changing the contract.
package registry

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/niems-digital/emslog/internal/models"
)

//go:embed projects.yaml
var embeddedProjects []byte

// Registry is an immutable index of projects keyed by normalized code.
type Registry struct {
	projects []models.Project
	byCode   map[string]int
	logger   *slog.Logger
}

// Load builds a registry from the embedded projects-master dataset.
func Load(logger *slog.Logger) (*Registry, error) {
	return load(embeddedProjects, logger)
}

// LoadFile builds a registry from an external YAML file with the same
// record schema as the embedded dataset.
func LoadFile(path string, logger *slog.Logger) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: reading %s: %w", path, err)
	}
	return load(data, logger)
}

func load(data []byte, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var projects []models.Project
	if err := yaml.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("registry: parsing projects dataset: %w", err)
	}

	byCode := make(map[string]int, len(projects))
	for i := range projects {
		key := NormalizeCode(projects[i].Code)
		if key == "" {
			return nil, fmt.Errorf("registry: project entry %d has an empty code", i)
		}
		if _, dup := byCode[key]; dup {
			return nil, fmt.Errorf("registry: duplicate project code %s", key)
		}
		byCode[key] = i
	}

	logger.Debug("registry loaded", "projects", len(projects))
	return &Registry{projects: projects, byCode: byCode, logger: logger}, nil
}

// NormalizeCode canonicalizes a project code for comparison: surrounding
// whitespace is trimmed and the result is uppercased.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup returns the project whose normalized code matches the given code.
// Blank codes and unknown codes report a miss; Lookup never fails.
func (r *Registry) Lookup(code string) (models.Project, bool) {
	key := NormalizeCode(code)
	if key == "" {
		return models.Project{}, false
	}
	i, ok := r.byCode[key]
	if !ok {
		return models.Project{}, false
	}
	return r.projects[i], true
}

// All returns every project in dataset order.
func (r *Registry) All() []models.Project {
	out := make([]models.Project, len(r.projects))
	copy(out, r.projects)
	return out
}

// Len returns the number of registered projects.
func (r *Registry) Len() int { return len(r.projects) }
