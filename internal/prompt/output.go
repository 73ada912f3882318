package prompt

import (
	"fmt"
	"strings"
)

// OutputVars derives the output-file variables from the documentation
// filenames an invocation should produce (e.g. CLAUDE.md, GEMINI.md).
func OutputVars(fileNames []string) Vars {
	plural := len(fileNames) > 1

	quoted := make([]string, len(fileNames))
	ticked := make([]string, len(fileNames))
	for i, name := range fileNames {
		quoted[i] = `"` + name + `"`
		ticked[i] = "`" + name + "`"
	}

	action, noun := "Create a", "file"
	if plural {
		action, noun = "Create identical", "files"
	}

	return Vars{
		"outputFiles":           strings.Join(ticked, " and "),
		"outputFileList":        strings.Join(fileNames, " and "),
		"outputAction":          action,
		"fileOrFiles":           noun,
		"requiredDocFiles":      strings.Join(quoted, ", "),
		"allRequiredFilesExist": fmt.Sprintf("all required files (%s) exist", strings.Join(fileNames, ", ")),
	}
}
