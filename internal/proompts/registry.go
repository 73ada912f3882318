package proompts

import (
	"fmt"
	"sort"
)

// registry lists every built-in module in display order. Handlers left nil
// use runDefault.
var registry = []struct {
	file    string
	handler Handler
}{
	{"templates/config.md", handleConfig},
	{"templates/document-codebase.md", nil},
	{"templates/document-deep.md", nil},
	{"templates/document-dir.md", handleDocumentDir},
	{"templates/document-dirs.md", handleDocumentDirs},
	{"templates/document-overview.md", nil},
	{"templates/document-project.md", handleDocumentProject},
	{"templates/execute-plan.md", nil},
	{"templates/generate-plan.md", nil},
	{"templates/lyra.md", nil},
	{"templates/validate-plan.md", nil},
}

// Registry is the loaded set of modules.
type Registry struct {
	modules []*Module
	byName  map[string]*Module
}

// Load parses every embedded template.
func Load() (*Registry, error) {
	r := &Registry{byName: make(map[string]*Module, len(registry))}
	for _, entry := range registry {
		data, err := templateFS.ReadFile(entry.file)
		if err != nil {
			return nil, fmt.Errorf("read template: %w", err)
		}
		m, err := parseModule(entry.file, data)
		if err != nil {
			return nil, err
		}
		if _, dup := r.byName[m.Name]; dup {
			return nil, fmt.Errorf("duplicate module %q", m.Name)
		}
		m.handler = entry.handler
		r.modules = append(r.modules, m)
		r.byName[m.Name] = m
	}
	return r, nil
}

// All returns the modules in registry order.
func (r *Registry) All() []*Module {
	return r.modules
}

// Get looks a module up by name.
func (r *Registry) Get(name string) (*Module, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Names returns the module names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.modules))
	for _, m := range r.modules {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names
}
