package settings

import (
	"fmt"

	"github.com/fsmiamoto/proompt/internal/assistant"
	"github.com/fsmiamoto/proompt/internal/validation"
)

// Flag names reported in validation errors.
const (
	LLMCliFlag       = "-L, --llm-cli"
	OutputFormatFlag = "-F, --output-format"
)

// Reader is the read side of Store, used by Resolver.
type Reader interface {
	Read(scope Scope) Document
}

// Resolver merges built-in defaults, the global file, the project file and
// a per-invocation override, in that order of increasing precedence.
type Resolver struct {
	Store Reader
}

// NewResolver returns a Resolver backed by store.
func NewResolver(store Reader) *Resolver {
	return &Resolver{Store: store}
}

// Resolve returns the effective settings for one invocation. Each file layer
// that exists replaces both fields: a layer that only sets llmCli resets the
// output format to [llmCli].
func (r *Resolver) Resolve(o Override) (Resolved, error) {
	res := Resolved{
		LLMCli:       assistant.Default,
		OutputFormat: []assistant.Assistant{assistant.Default},
	}

	for _, scope := range []Scope{Global, Project} {
		doc := r.Store.Read(scope)
		if !doc.FileExists || doc.Settings == nil {
			continue
		}
		res.LLMCli = doc.Settings.LLMCli
		res.OutputFormat = doc.Settings.EffectiveOutputFormat()
	}

	if o.LLMCli != "" {
		a, err := assistant.Parse(o.LLMCli)
		if err != nil {
			return Resolved{}, validation.New(LLMCliFlag, "invalid value %q; allowed values: %s", o.LLMCli, assistant.Names())
		}
		res.LLMCli = a
	}

	if o.OutputFormat != "" {
		list, err := assistant.ParseList(o.OutputFormat)
		if err != nil {
			return Resolved{}, validation.New(OutputFormatFlag, "invalid value %q; allowed values: %s (comma-separated)", o.OutputFormat, assistant.Names())
		}
		res.OutputFormat = list
	}

	if err := res.Validate(); err != nil {
		return Resolved{}, fmt.Errorf("resolve settings: %w", err)
	}
	return res, nil
}
