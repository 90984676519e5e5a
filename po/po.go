// Package po reads gettext PO catalogs.
//
// Parsing is permissive in the way GNU gettext tooling is: lines that cannot
// be understood are reported as diagnostics and skipped, never rejected.
package po

import (
	"fmt"
)

// Glue joins a message context and a message id into a catalog key.
const Glue = "\x04"

// Key returns the catalog key for msgid in the given context. Messages
// without a context are keyed by their msgid alone; an empty context is
// still a context.
func Key(context, msgid string) string {
	return context + Glue + msgid
}

// Entry holds the translations of a single message.
type Entry struct {
	// PluralID is the untranslated plural source string (msgid_plural).
	PluralID  string
	HasPlural bool
	// Translations holds msgstr[N] at index N. Plain msgstr is index
	// 0. Missing forms are empty strings.
	Translations []string
}

// Translation returns the translation for plural form i, or "" if the entry
// has no such form.
func (e Entry) Translation(i int) string {
	if i < 0 || i >= len(e.Translations) {
		return ""
	}
	return e.Translations[i]
}

// File is the result of parsing a PO catalog.
type File struct {
	// Header holds the fields of the catalog header entry, keyed by
	// lower-cased field name.
	Header map[string]string
	// Entries maps catalog keys (see Key) to their translations. The
	// header entry is not included.
	Entries map[string]Entry
	// Diagnostics lists everything that was skipped while parsing.
	Diagnostics []Diagnostic
}

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind int

const (
	StrangeLine DiagnosticKind = iota
	OrphanContinuation
	DuplicateHeader
	HeaderConflictMarker
	HeaderProblemLine
)

var diagnosticNames = [...]string{
	StrangeLine:          "strange line",
	OrphanContinuation:   "continuation without keyword",
	DuplicateHeader:      "skipping duplicate header line",
	HeaderConflictMarker: "skipping error marker in header",
	HeaderProblemLine:    "problem line in header",
}

func (k DiagnosticKind) String() string {
	if k < 0 || int(k) >= len(diagnosticNames) {
		return fmt.Sprintf("diagnostic(%d)", int(k))
	}
	return diagnosticNames[k]
}

// Diagnostic describes a line that the parser skipped.
type Diagnostic struct {
	// Line is the 1-based line number. For header problems it is the
	// line of the header's msgstr keyword.
	Line int
	Kind DiagnosticKind
	Text string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind, d.Text)
}
