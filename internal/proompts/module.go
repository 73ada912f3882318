// Package proompts holds the built-in proompt modules: their templates,
// arguments and the handlers that turn an invocation into an assistant run.
package proompts

import (
	"context"
	"embed"
	"fmt"
	"path"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/fsmiamoto/proompt/internal/prompt"
	"github.com/fsmiamoto/proompt/internal/settings"
	"github.com/fsmiamoto/proompt/internal/validation"
)

//go:embed templates/*.md
var templateFS embed.FS

// ArgType is the value type of an Argument.
type ArgType string

const (
	TypeString  ArgType = "string"
	TypeNumber  ArgType = "number"
	TypeBoolean ArgType = "boolean"
)

// Argument describes one command-line argument of a module.
type Argument struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Required    bool    `yaml:"required"`
	Type        ArgType `yaml:"type"`
	Alias       string  `yaml:"alias"`
	Positional  bool    `yaml:"positional"`
}

// Flag renders the argument the way it is shown in errors,
// e.g. "-i, --start-path" or "--plan-path".
func (a Argument) Flag() string {
	if a.Alias != "" {
		return "-" + a.Alias + ", --" + a.Name
	}
	return "--" + a.Name
}

// VarName is the template variable the argument binds to: start-path
// becomes startPath.
func (a Argument) VarName() string {
	return camelCase(a.Name)
}

func camelCase(s string) string {
	var b strings.Builder
	upper := false
	for _, r := range s {
		if r == '-' || r == '_' {
			upper = b.Len() > 0
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Handler runs one invocation of m.
type Handler func(ctx context.Context, env *Env, m *Module, inv Invocation) error

// Module is an immutable proompt command.
type Module struct {
	Name          string
	Description   string
	Documentation bool // accepts -F/--output-format
	Arguments     []Argument
	Template      string

	handler Handler
}

// Invocation is what the CLI collected for one run of a module.
type Invocation struct {
	Values   map[string]string // raw values keyed by argument name
	Override settings.Override
	DryRun   bool
}

// Run executes the module's handler.
func (m *Module) Run(ctx context.Context, env *Env, inv Invocation) error {
	h := m.handler
	if h == nil {
		h = runDefault
	}
	return h(ctx, env, m, inv)
}

// Positional returns the arguments that may be given positionally, in order.
func (m *Module) Positional() []Argument {
	var out []Argument
	for _, a := range m.Arguments {
		if a.Positional {
			out = append(out, a)
		}
	}
	return out
}

// Bind validates values against the declared arguments and returns them as
// template variables. Missing booleans bind to "false".
func (m *Module) Bind(values map[string]string) (prompt.Vars, error) {
	vars := make(prompt.Vars, len(m.Arguments))
	verr := &validation.Error{Command: m.Name}

	for _, a := range m.Arguments {
		raw, ok := values[a.Name]
		raw = strings.TrimSpace(raw)

		switch a.Type {
		case TypeBoolean:
			b := false
			if ok && raw != "" {
				parsed, err := strconv.ParseBool(raw)
				if err != nil {
					verr.Add(a.Flag(), "expected true or false, got %q", raw)
					continue
				}
				b = parsed
			}
			vars[a.VarName()] = strconv.FormatBool(b)
			continue
		case TypeNumber:
			if ok && raw != "" {
				if _, err := strconv.ParseFloat(raw, 64); err != nil {
					verr.Add(a.Flag(), "expected a number, got %q", raw)
					continue
				}
			}
		}

		if !ok || raw == "" {
			if a.Required {
				verr.Add(a.Flag(), "%s", a.Description)
			}
			continue
		}
		vars[a.VarName()] = raw
	}

	if !verr.Empty() {
		return nil, verr
	}
	return vars, nil
}

type frontmatter struct {
	Name          string     `yaml:"name"`
	Description   string     `yaml:"description"`
	Documentation bool       `yaml:"documentation"`
	Arguments     []Argument `yaml:"arguments"`
}

// parseModule reads a template file: YAML frontmatter between two "---"
// lines followed by the markdown body.
func parseModule(file string, data []byte) (*Module, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(content, "---\n") {
		return nil, fmt.Errorf("%s: missing YAML frontmatter", file)
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, fmt.Errorf("%s: unterminated YAML frontmatter", file)
	}
	head := rest[:end]
	body := strings.TrimPrefix(rest[end+len("\n---"):], "\n")

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(head), &fm); err != nil {
		return nil, fmt.Errorf("%s: parse frontmatter: %w", file, err)
	}

	want := strings.TrimSuffix(path.Base(file), path.Ext(file))
	if fm.Name != want {
		return nil, fmt.Errorf("%s: name %q does not match file name", file, fm.Name)
	}
	if fm.Description == "" {
		return nil, fmt.Errorf("%s: description is required", file)
	}

	seen := map[string]bool{}
	for i := range fm.Arguments {
		a := &fm.Arguments[i]
		if a.Name == "" {
			return nil, fmt.Errorf("%s: argument %d has no name", file, i)
		}
		if a.Type == "" {
			a.Type = TypeString
		}
		switch a.Type {
		case TypeString, TypeNumber, TypeBoolean:
		default:
			return nil, fmt.Errorf("%s: argument %q has unknown type %q", file, a.Name, a.Type)
		}
		if len(a.Alias) > 1 {
			return nil, fmt.Errorf("%s: argument %q alias must be a single character", file, a.Name)
		}
		for _, key := range []string{"--" + a.Name, "-" + a.Alias} {
			if key == "-" {
				continue
			}
			if seen[key] {
				return nil, fmt.Errorf("%s: duplicate flag %s", file, key)
			}
			seen[key] = true
		}
	}

	return &Module{
		Name:          fm.Name,
		Description:   fm.Description,
		Documentation: fm.Documentation,
		Arguments:     fm.Arguments,
		Template:      strings.TrimSpace(body),
	}, nil
}
