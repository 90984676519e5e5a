package po

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Upper bound for msgstr[N]; larger indexes are reported as strange lines.
const maxPluralForms = 1024

var (
	keywordLine = regexp.MustCompile(`^(msgctxt|msgid_plural|msgid|msgstr)\s+(.*)$`)
	msgstrLine  = regexp.MustCompile(`^msgstr\[(\d+)\]\s+(.*)$`)
	quotedText  = regexp.MustCompile(`^"(.*)"`)
)

// Header fields produced by msgcat when merging conflicting headers.
const conflictMarker = "#-#-#-#-#"

type field int

const (
	noField field = iota
	ctxtField
	idField
	pluralField
	strField
)

// entryBuffer accumulates the fields of the entry being read.
type entryBuffer struct {
	ctxt      string
	hasCtxt   bool
	id        string
	hasID     bool
	plural    string
	hasPlural bool
	strs      map[int]string
	strLine   int
	last      field
	lastIndex int
}

func (b *entryBuffer) set(f field, index int, value string) {
	switch f {
	case ctxtField:
		b.ctxt, b.hasCtxt = value, true
	case idField:
		b.id, b.hasID = value, true
	case pluralField:
		b.plural, b.hasPlural = value, true
	case strField:
		if b.strs == nil {
			b.strs = make(map[int]string)
		}
		b.strs[index] = value
	}
	b.last, b.lastIndex = f, index
}

func (b *entryBuffer) appendLast(value string) {
	switch b.last {
	case ctxtField:
		b.ctxt += value
	case idField:
		b.id += value
	case pluralField:
		b.plural += value
	case strField:
		b.strs[b.lastIndex] += value
	}
}

type parser struct {
	file   *File
	buf    entryBuffer
	header *entryBuffer
}

// dequote strips one layer of surrounding double quotes and unescapes
// embedded quotes. Other escape sequences are kept verbatim.
func dequote(s string) string {
	if m := quotedText.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	return strings.ReplaceAll(s, `\"`, `"`)
}

// Parse parses the PO catalog in text.
func Parse(text string) *File {
	p := parser{file: &File{
		Header:  make(map[string]string),
		Entries: make(map[string]Entry),
	}}
	for i, line := range strings.Split(text, "\n") {
		p.parseLine(i+1, strings.TrimRight(line, "\r"))
	}
	p.flush()
	p.parseHeader()
	return p.file
}

// ParseReader reads r to the end and parses it.
func ParseReader(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

func (p *parser) diag(line int, kind DiagnosticKind, text string) {
	p.file.Diagnostics = append(p.file.Diagnostics, Diagnostic{Line: line, Kind: kind, Text: text})
}

func (p *parser) parseLine(lineno int, line string) {
	if strings.TrimSpace(line) == "" {
		p.flush()
		return
	}
	switch {
	case line[0] == '#':
		return
	case line[0] == '"':
		if p.buf.last == noField {
			p.diag(lineno, OrphanContinuation, line)
			return
		}
		p.buf.appendLast(dequote(line))
		return
	}

	if m := msgstrLine.FindStringSubmatch(line); m != nil {
		index, err := strconv.Atoi(m[1])
		if err != nil || index >= maxPluralForms {
			p.diag(lineno, StrangeLine, line)
			return
		}
		if p.buf.strLine == 0 {
			p.buf.strLine = lineno
		}
		p.buf.set(strField, index, dequote(m[2]))
		return
	}

	m := keywordLine.FindStringSubmatch(line)
	if m == nil {
		p.diag(lineno, StrangeLine, line)
		return
	}
	value := dequote(m[2])
	switch m[1] {
	case "msgctxt":
		p.buf.set(ctxtField, 0, value)
	case "msgid":
		p.buf.set(idField, 0, value)
	case "msgid_plural":
		p.buf.set(pluralField, 0, value)
	case "msgstr":
		if p.buf.strLine == 0 {
			p.buf.strLine = lineno
		}
		p.buf.set(strField, 0, value)
	}
}

// flush stores the buffered entry, if it has a msgid and at least one
// msgstr, and resets the buffer.
func (p *parser) flush() {
	b := p.buf
	p.buf = entryBuffer{}
	if !b.hasID || len(b.strs) == 0 {
		return
	}

	size := 0
	for index := range b.strs {
		if index+1 > size {
			size = index + 1
		}
	}
	entry := Entry{
		PluralID:     b.plural,
		HasPlural:    b.hasPlural,
		Translations: make([]string, size),
	}
	for index, s := range b.strs {
		entry.Translations[index] = s
	}

	key := b.id
	if b.hasCtxt {
		key = Key(b.ctxt, b.id)
	}
	if key == "" {
		p.header = &b
	}
	p.file.Entries[key] = entry
}

// parseHeader moves the entry with the empty key out of Entries and splits
// its translation into header fields.
func (p *parser) parseHeader() {
	entry, ok := p.file.Entries[""]
	if !ok {
		return
	}
	delete(p.file.Entries, "")

	lineno := p.header.strLine
	for _, line := range strings.Split(entry.Translation(0), `\n`) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pos := strings.IndexByte(line, ':')
		if pos < 0 {
			p.diag(lineno, HeaderProblemLine, line)
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:pos]))
		value := strings.TrimLeftFunc(line[pos+1:], unicode.IsSpace)
		if cur, ok := p.file.Header[key]; ok && cur != "" {
			p.diag(lineno, DuplicateHeader, line)
			continue
		}
		if strings.Contains(key, conflictMarker) {
			p.diag(lineno, HeaderConflictMarker, line)
			continue
		}
		p.file.Header[key] = value
	}
}
