// Package prompt turns proompt templates into the text sent to an assistant.
package prompt

import (
	"regexp"
	"sort"
	"strings"
)

// Vars maps placeholder names to their replacement text.
type Vars map[string]string

// Merge returns a new Vars holding v's entries overlaid with other's.
func (v Vars) Merge(other Vars) Vars {
	out := make(Vars, len(v)+len(other))
	for k, val := range v {
		out[k] = val
	}
	for k, val := range other {
		out[k] = val
	}
	return out
}

// Render replaces every {{ name }} placeholder whose name is a key of vars.
// Whitespace inside the braces is optional and names are case-sensitive.
// Placeholders without a matching key are left untouched, and substituted
// values are never expanded again.
func Render(tmpl string, vars Vars) string {
	if len(vars) == 0 || !strings.Contains(tmpl, "{{") {
		return tmpl
	}

	// Longest names first so the alternation never stops at a prefix.
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, regexp.QuoteMeta(name))
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	re := regexp.MustCompile(`\{\{\s*(` + strings.Join(names, "|") + `)\s*\}\}`)
	return re.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := strings.TrimSpace(m[2 : len(m)-2])
		if val, ok := vars[name]; ok {
			return val
		}
		return m
	})
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Placeholders lists the distinct placeholder names in tmpl, in order of
// first appearance.
func Placeholders(tmpl string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}
