package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ProjectConfig is the optional oxidize.toml at a project root. It
// pins crate metadata and extra dependencies for the generated
// Cargo.toml and points at additional mapping packs.
type ProjectConfig struct {
	Crate struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
		Edition string `toml:"edition"`
		Library bool   `toml:"library"`
	} `toml:"crate"`

	// Dependencies maps crate name to a version string or an inline
	// table with version/features/optional.
	Dependencies map[string]depSpec `toml:"dependencies"`

	// Mappings lists directories of extra mapping packs.
	Mappings struct {
		Packs []string `toml:"packs"`
	} `toml:"mappings"`
}

type depSpec struct {
	Version  string
	Features []string
	Optional bool
}

// UnmarshalTOML accepts either "1.0" or { version = "1.0", ... }.
func (d *depSpec) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		d.Version = val
		return nil
	case map[string]any:
		if ver, ok := val["version"].(string); ok {
			d.Version = ver
		}
		if feats, ok := val["features"].([]any); ok {
			for _, f := range feats {
				s, ok := f.(string)
				if !ok {
					return fmt.Errorf("features entries must be strings, got %T", f)
				}
				d.Features = append(d.Features, s)
			}
		}
		if opt, ok := val["optional"].(bool); ok {
			d.Optional = opt
		}
		return nil
	default:
		return fmt.Errorf("dependency spec must be a string or table, got %T", v)
	}
}

var (
	// ErrCrateSectionMissing indicates that [crate] is missing in oxidize.toml.
	ErrCrateSectionMissing = errors.New("missing [crate]")
	// ErrCrateNameMissing indicates that [crate].name is missing or empty.
	ErrCrateNameMissing = errors.New("missing [crate].name")
)

// LoadProjectConfig parses an oxidize.toml.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	var cfg ProjectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("crate") {
		return nil, fmt.Errorf("%s: %w", path, ErrCrateSectionMissing)
	}
	if strings.TrimSpace(cfg.Crate.Name) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrCrateNameMissing)
	}
	return &cfg, nil
}

// ExtraDeps converts the config's dependency table to pinned entries.
func (c *ProjectConfig) ExtraDeps() []Dependency {
	out := make([]Dependency, 0, len(c.Dependencies))
	for name, spec := range c.Dependencies {
		version := spec.Version
		if version == "" {
			version = "*"
		}
		out = append(out, Dependency{
			Name:     name,
			Version:  version,
			Features: spec.Features,
			Optional: spec.Optional,
		})
	}
	return out
}
