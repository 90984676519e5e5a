package gettext

import (
	"github.com/DanielBaulig/go-gettext/pluralforms"
	"github.com/DanielBaulig/go-gettext/po"
)

// Query describes a single message lookup.
type Query struct {
	Language string
	// Domain is searched first. When empty the active domain is used.
	Domain string
	// Context disambiguates identical message ids. It is only
	// consulted when HasContext is set; an empty context is distinct
	// from no context.
	Context    string
	HasContext bool
	MsgID      string
	// Plural is the untranslated plural form. It is only consulted when
	// HasPlural is set.
	Plural    string
	HasPlural bool
	N         int
}

// Resolve returns the translation selected by q.
//
// If the requested domain was loaded for the language only that domain is
// searched, otherwise every domain of the language is searched in load
// order. The first entry with a non-empty translation wins. Without one
// the untranslated strings are used. For plural lookups the plural rule of
// the catalog the entry came from picks the form; a form that is out of
// range or empty falls back to the first form.
func (t Translations) Resolve(q Query) string {
	if q.MsgID == "" {
		return ""
	}
	key := q.MsgID
	if q.HasContext {
		key = po.Key(q.Context, q.MsgID)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	domain := q.Domain
	if domain == "" {
		domain = t.domain
	}
	if domain == "" {
		domain = DefaultDomain
	}

	var search []*domainCatalog
	if table, ok := t.languages[q.Language]; ok {
		if c, ok := table.domains[domain]; ok {
			search = []*domainCatalog{c}
		} else {
			search = table.order
		}
	}

	var (
		candidates []string
		owner      *domainCatalog
	)
	for _, c := range search {
		entry, ok := c.msgs[key]
		if !ok {
			continue
		}
		if owner == nil || entry.Translation(0) != "" {
			candidates, owner = entry.Translations, c
		}
		if entry.Translation(0) != "" {
			break
		}
	}
	if len(candidates) == 0 || candidates[0] == "" {
		candidates = []string{q.MsgID, q.Plural}
	}

	translation := candidates[0]
	if q.HasPlural {
		rule := pluralforms.DefaultRule
		if owner != nil && owner.rule != nil {
			rule = *owner.rule
		}
		if p := rule.Index(q.N); p < len(candidates) && candidates[p] != "" {
			translation = candidates[p]
		}
	}
	return translation
}

func (t Translations) lookup(domain, msgid string) Query {
	return Query{
		Language: t.Locale(),
		Domain:   domain,
		MsgID:    msgid,
	}
}

func (t Translations) lookupPlural(domain, msgid, msgidPlural string, n int) Query {
	q := t.lookup(domain, msgid)
	q.Plural, q.HasPlural, q.N = msgidPlural, true, n
	return q
}

func withContext(msgctxt string, q Query) Query {
	q.Context, q.HasContext = msgctxt, true
	return q
}

// Gettext translates msgid in the active domain and language.
func (t Translations) Gettext(msgid string) string {
	return t.Resolve(t.lookup("", msgid))
}

// DGettext is like Gettext but looks in domain first.
func (t Translations) DGettext(domain, msgid string) string {
	return t.Resolve(t.lookup(domain, msgid))
}

// NGettext translates msgid choosing the plural form for n. Untranslated
// messages fall back to msgid or msgidPlural by the Germanic rule.
func (t Translations) NGettext(msgid, msgidPlural string, n int) string {
	return t.Resolve(t.lookupPlural("", msgid, msgidPlural, n))
}

func (t Translations) DNGettext(domain, msgid, msgidPlural string, n int) string {
	return t.Resolve(t.lookupPlural(domain, msgid, msgidPlural, n))
}

// PGettext translates msgid in the context msgctxt.
func (t Translations) PGettext(msgctxt, msgid string) string {
	return t.Resolve(withContext(msgctxt, t.lookup("", msgid)))
}

func (t Translations) DPGettext(domain, msgctxt, msgid string) string {
	return t.Resolve(withContext(msgctxt, t.lookup(domain, msgid)))
}

func (t Translations) PNGettext(msgctxt, msgid, msgidPlural string, n int) string {
	return t.Resolve(withContext(msgctxt, t.lookupPlural("", msgid, msgidPlural, n)))
}

func (t Translations) DPNGettext(domain, msgctxt, msgid, msgidPlural string, n int) string {
	return t.Resolve(withContext(msgctxt, t.lookupPlural(domain, msgid, msgidPlural, n)))
}
