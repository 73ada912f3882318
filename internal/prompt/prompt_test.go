package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderNoPlaceholders(t *testing.T) {
	tmpl := "Plain text with { braces } and }} stray markers."
	if got := Render(tmpl, Vars{"x": "y"}); got != tmpl {
		t.Errorf("Render() = %q, want unchanged", got)
	}
}

func TestRenderSubstitution(t *testing.T) {
	vars := OutputVars([]string{"CLAUDE.md", "GEMINI.md"})
	if vars["outputFiles"] != "`CLAUDE.md` and `GEMINI.md`" {
		t.Fatalf("outputFiles = %q", vars["outputFiles"])
	}

	got := Render("Write {{outputFiles}} now", vars)
	if want := "Write `CLAUDE.md` and `GEMINI.md` now"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderWhitespaceAndRepeats(t *testing.T) {
	got := Render("{{name}} / {{ name }} / {{   name\t}}", Vars{"name": "x"})
	if got != "x / x / x" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRenderLeavesUnknown(t *testing.T) {
	got := Render("{{known}} {{unknown}} {{Known}}", Vars{"known": "ok"})
	if got != "ok {{unknown}} {{Known}}" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRenderSinglePass(t *testing.T) {
	got := Render("{{a}} {{b}}", Vars{"a": "{{b}}", "b": "B"})
	if got != "{{b}} B" {
		t.Errorf("Render() = %q, want values not re-expanded", got)
	}
}

func TestRenderPrefixNames(t *testing.T) {
	got := Render("{{plan}} {{planPath}}", Vars{"plan": "P", "planPath": "docs/plan.md"})
	if got != "P docs/plan.md" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRenderRegexMetaInKey(t *testing.T) {
	got := Render("{{a.b}} {{axb}}", Vars{"a.b": "dot"})
	if got != "dot {{axb}}" {
		t.Errorf("Render() = %q", got)
	}
}

func TestOutputVarsSingle(t *testing.T) {
	vars := OutputVars([]string{"CLAUDE.md"})
	want := Vars{
		"outputFiles":           "`CLAUDE.md`",
		"outputFileList":        "CLAUDE.md",
		"outputAction":          "Create a",
		"fileOrFiles":           "file",
		"requiredDocFiles":      `"CLAUDE.md"`,
		"allRequiredFilesExist": "all required files (CLAUDE.md) exist",
	}
	for k, v := range want {
		if vars[k] != v {
			t.Errorf("%s = %q, want %q", k, vars[k], v)
		}
	}
}

func TestOutputVarsPlural(t *testing.T) {
	vars := OutputVars([]string{"CLAUDE.md", "GEMINI.md"})
	if vars["outputAction"] != "Create identical" || vars["fileOrFiles"] != "files" {
		t.Errorf("plural vars = %q / %q", vars["outputAction"], vars["fileOrFiles"])
	}
	if vars["requiredDocFiles"] != `"CLAUDE.md", "GEMINI.md"` {
		t.Errorf("requiredDocFiles = %q", vars["requiredDocFiles"])
	}
	if vars["outputFileList"] != "CLAUDE.md and GEMINI.md" {
		t.Errorf("outputFileList = %q", vars["outputFileList"])
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("{{a}} {{ b }} {{a}} {{c.d}}")
	if strings.Join(got, ",") != "a,b" {
		t.Errorf("Placeholders() = %v", got)
	}
}

func TestReadRules(t *testing.T) {
	dir := t.TempDir()

	rules, err := ReadRules(dir)
	if err != nil || rules != "" {
		t.Fatalf("ReadRules() on empty dir = %q, %v", rules, err)
	}

	if err := os.WriteFile(filepath.Join(dir, RulesFileName), []byte("  \n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if rules, _ := ReadRules(dir); rules != "" {
		t.Errorf("blank RULES.md should yield empty, got %q", rules)
	}

	if err := os.WriteFile(filepath.Join(dir, RulesFileName), []byte("\n- never use globals\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rules, err = ReadRules(dir)
	if err != nil {
		t.Fatal(err)
	}
	if rules != "- never use globals" {
		t.Errorf("ReadRules() = %q", rules)
	}
}

func TestFormatRules(t *testing.T) {
	if FormatRules("", "project root") != "" {
		t.Error("empty rules should format to empty string")
	}
	got := FormatRules("- rule one", "project root")
	if !strings.Contains(got, "CRITICAL PROJECT RULES FROM PROJECT ROOT") {
		t.Errorf("missing heading: %s", got)
	}
	if !strings.Contains(got, "- rule one") || !strings.Contains(got, "END OF CRITICAL PROJECT RULES") {
		t.Errorf("missing body or closing: %s", got)
	}
}

func TestFormatDirectoryRules(t *testing.T) {
	if FormatDirectoryRules(map[string]string{"a": ""}) != "" {
		t.Error("no rules should format to empty string")
	}
	got := FormatDirectoryRules(map[string]string{"pkg/b": "rule b", "pkg/a": "rule a"})
	ia := strings.Index(got, "### Rules from: pkg/a")
	ib := strings.Index(got, "### Rules from: pkg/b")
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("expected sorted directory sections, got:\n%s", got)
	}
}
