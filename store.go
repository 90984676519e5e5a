package gettext

import (
	"fmt"
	"strings"

	"github.com/DanielBaulig/go-gettext/pluralforms"
	"github.com/DanielBaulig/go-gettext/po"
)

// languageTable holds the domains loaded for one language.
type languageTable struct {
	domains map[string]*domainCatalog
	order   []*domainCatalog
}

// domainCatalog is the merged state of every catalog loaded for one
// (language, domain) pair.
type domainCatalog struct {
	name   string
	header map[string]string
	msgs   map[string]po.Entry
	// rule is compiled on the first merge and never replaced.
	rule *pluralforms.Rule
}

func (t *translations) catalog(language, domain string) *domainCatalog {
	table, ok := t.languages[language]
	if !ok {
		return nil
	}
	return table.domains[domain]
}

func (t *translations) getOrCreateCatalog(language, domain string) *domainCatalog {
	table, ok := t.languages[language]
	if !ok {
		table = &languageTable{domains: make(map[string]*domainCatalog)}
		t.languages[language] = table
	}
	c, ok := table.domains[domain]
	if !ok {
		c = &domainCatalog{
			name:   domain,
			header: make(map[string]string),
			msgs:   make(map[string]po.Entry),
		}
		table.domains[domain] = c
		table.order = append(table.order, c)
	}
	return c
}

// Merge adds a parsed catalog to the (language, domain) slot. Header fields
// and entries overwrite those merged earlier. An empty domain means
// DefaultDomain.
//
// The plural rule of a slot is taken from the first merge: either the
// compiled Plural-Forms header or, without one, pluralforms.DefaultRule.
// Later Plural-Forms values are validated but do not replace it. A
// malformed Plural-Forms header fails the merge and leaves the store
// untouched.
//
// Merge copies what it keeps, so f may be modified or reused afterwards.
func (t Translations) Merge(language, domain string, f *po.File) error {
	if f == nil {
		return fmt.Errorf("cannot merge catalog %s/%s: no catalog", language, domain)
	}
	if domain == "" {
		domain = DefaultDomain
	}

	var rule *pluralforms.Rule
	header := make(map[string]string, len(f.Header))
	for k, v := range f.Header {
		header[strings.ToLower(k)] = v
	}
	if pf, ok := header["plural-forms"]; ok {
		r, err := pluralforms.ParseRule(pf)
		if err != nil {
			return fmt.Errorf("cannot merge catalog %s/%s: %w", language, domain, err)
		}
		rule = &r
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	c := t.getOrCreateCatalog(language, domain)
	for k, v := range header {
		c.header[k] = v
	}
	for key, entry := range f.Entries {
		entry.Translations = append([]string(nil), entry.Translations...)
		c.msgs[key] = entry
	}

	switch {
	case c.rule == nil && rule != nil:
		c.rule = rule
	case c.rule == nil:
		defaultRule := pluralforms.DefaultRule
		c.rule = &defaultRule
	case rule != nil && rule.String() != c.rule.String():
		t.logger.Debug().
			Str("language", language).
			Str("domain", domain).
			Str("kept", c.rule.String()).
			Str("ignored", rule.String()).
			Msg("Plural rule already compiled, ignoring new Plural-Forms")
	}
	return nil
}
