package mapping

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// A mapping pack is a TOML file distributed alongside the tool that
// extends the built-in table with third-party API translations:
//
//	name = "requests-pack"
//
//	[mappings."requests.get"]
//	template = "reqwest::blocking::get({arg0}).unwrap()"
//	cargo = ["reqwest@0.12"]
//	fallible = true
//
//	[members."Response.json"]
//	template = "{self}.json::<serde_json::Value>().unwrap()"
//	cargo = ["serde_json"]

var (
	// ErrEmptyTemplate indicates a rule without a template.
	ErrEmptyTemplate = errors.New("mapping rule has empty template")
	// ErrBadKey indicates a rule key without a namespace qualifier.
	ErrBadKey = errors.New("mapping rule key must be \"namespace.member\"")
)

type packEntry struct {
	Template string   `toml:"template"`
	Imports  []string `toml:"imports"`
	Cargo    []string `toml:"cargo"`
	Fallible bool     `toml:"fallible"`
}

type packFile struct {
	Name     string               `toml:"name"`
	Mappings map[string]packEntry `toml:"mappings"`
	Members  map[string]packEntry `toml:"members"`
}

// LoadPack reads and validates a TOML mapping pack.
func LoadPack(path string) (*Table, error) {
	var pf packFile
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	name := pf.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	t := NewTable(name)
	for key, pe := range pf.Mappings {
		e, err := validateEntry(key, pe)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		t.Add(key, e)
	}
	for key, pe := range pf.Members {
		e, err := validateEntry(key, pe)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		t.AddMember(key, e)
	}
	return t, nil
}

func validateEntry(key string, pe packEntry) (Entry, error) {
	if !strings.Contains(key, ".") {
		return Entry{}, fmt.Errorf("%q: %w", key, ErrBadKey)
	}
	if strings.TrimSpace(pe.Template) == "" {
		return Entry{}, fmt.Errorf("%q: %w", key, ErrEmptyTemplate)
	}
	return Entry{
		Template:  pe.Template,
		Imports:   pe.Imports,
		CargoDeps: pe.Cargo,
		Fallible:  pe.Fallible,
	}, nil
}

// LoadPacks loads every *.toml pack in a directory, sorted by file name
// so chain order is deterministic.
func LoadPacks(dir string) ([]*Table, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	tables := make([]*Table, 0, len(paths))
	for _, p := range paths {
		t, err := LoadPack(p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
