package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RulesFileName is the optional per-directory file of maintainer rules.
const RulesFileName = "RULES.md"

const rulesPreamble = `
It is imperative you write the following information verbatim into your output at the end of the file:

## CRITICAL PROJECT RULES FROM %s

**⚠️  MANDATORY COMPLIANCE NOTICE ⚠️**

The following rules are **NON-NEGOTIABLE** and **SUPERSEDE** any patterns, conventions, or practices you may discover in the codebase analysis. These rules come directly from the project maintainers and represent absolute requirements.

**FAILURE TO FOLLOW THESE RULES IS A CRITICAL FAILURE** for any agentic coder working on this project.

---
`

const rulesClosing = `
Remember: These rules are **mandatory** and **non-negotiable**. They override any conflicting information you may find elsewhere in the codebase or documentation.

**END OF CRITICAL PROJECT RULES**
`

// ReadRules returns the trimmed contents of dir/RULES.md. A missing, empty
// or unreadable file yields "" and a nil error unless the failure is
// something other than non-existence.
func ReadRules(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, RulesFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read %s in %q: %w", RulesFileName, dir, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// FormatRules wraps rules in the compliance block. source names where the
// rules came from, e.g. "project root".
func FormatRules(rules, source string) string {
	if rules == "" {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, rulesPreamble, strings.ToUpper(source))
	b.WriteString("\n")
	b.WriteString(rules)
	b.WriteString("\n\n---\n")
	b.WriteString(rulesClosing)
	return b.String()
}

// FormatDirectoryRules formats rules collected from several directories,
// keyed by directory path. Directories are listed in sorted order.
func FormatDirectoryRules(rulesByDir map[string]string) string {
	dirs := make([]string, 0, len(rulesByDir))
	for dir, rules := range rulesByDir {
		if rules != "" {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return ""
	}
	sort.Strings(dirs)

	var b strings.Builder
	fmt.Fprintf(&b, rulesPreamble, "ANALYZED DIRECTORIES")
	for _, dir := range dirs {
		fmt.Fprintf(&b, "\n### Rules from: %s\n\n%s\n\n---\n", dir, rulesByDir[dir])
	}
	b.WriteString("\n")
	b.WriteString(rulesClosing)
	return b.String()
}
