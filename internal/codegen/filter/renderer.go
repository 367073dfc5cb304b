package filter

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// StubMarker separates the regenerated class section from the append-only
// member-predicate stub section of a generated file.
const StubMarker = "# --- member predicate stubs (append-only) ---"

var stubNamePattern = regexp.MustCompile(`(?m)^def (is_[A-Za-z0-9_]+)\(`)

// Render produces the full source file for a file model. existing is the
// previously generated file content, if any: its stub section is kept
// verbatim and only stubs not already present are appended, so repeated
// runs never duplicate a stub.
func Render(file FileModel, existing []byte) ([]byte, error) {
	tmpl, err := template.New("file.py.tmpl").Funcs(template.FuncMap{
		"predicate":  renderPredicate,
		"stubMarker": func() string { return StubMarker },
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, file); err != nil {
		return nil, fmt.Errorf("render template %s: %w", file.Template, err)
	}

	existingStubs := existingStubSection(existing)
	present := map[string]bool{}
	for _, match := range stubNamePattern.FindAllStringSubmatch(existingStubs, -1) {
		present[match[1]] = true
	}

	var sections []string
	if existingStubs != "" {
		sections = append(sections, existingStubs)
	}
	for _, stub := range file.Stubs {
		if present[stub] {
			continue
		}
		present[stub] = true
		sections = append(sections, fmt.Sprintf("def %s(row):\n    return False", stub))
	}
	if len(sections) > 0 {
		buf.WriteString("\n" + strings.Join(sections, "\n\n"))
	}
	buf.WriteString("\n")

	return buf.Bytes(), nil
}

// existingStubSection returns everything after the stub marker of a
// previously generated file, without the marker line itself.
func existingStubSection(existing []byte) string {
	if len(existing) == 0 {
		return ""
	}
	_, after, found := strings.Cut(string(existing), StubMarker)
	if !found {
		return ""
	}
	return strings.Trim(after, "\n")
}

// renderPredicate renders the cell predicate: an OR-chain of equality
// tests per conjunct, AND-combined across conjuncts.
func renderPredicate(conjuncts []ConjunctModel) string {
	parts := make([]string, 0, len(conjuncts))
	for _, conj := range conjuncts {
		tests := make([]string, 0, len(conj.Codes))
		for _, code := range conj.Codes {
			tests = append(tests, fmt.Sprintf("row.%s == '%s'", conj.Variable, escapeSingleQuotes(code)))
		}
		clause := strings.Join(tests, " or ")
		if len(tests) > 1 {
			clause = "(" + clause + ")"
		}
		parts = append(parts, clause)
	}
	return strings.Join(parts, " and ")
}

func escapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
