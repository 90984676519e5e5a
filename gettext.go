// Implements gettext in pure Go with Plural Forms support.

package gettext

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultDomain is used when neither a lookup nor the handle names a domain.
const DefaultDomain = "messages"

// Translations holds the catalogs loaded for every language together with
// the active language and text domain. Use NewTranslations to create an
// instance. Translations is safe for concurrent use.
type Translations struct {
	// As we don't want the mutex protecting the catalogs to be
	// copied, we embed a pointer to an ancillary struct holding our
	// data.
	*translations
}

type translations struct {
	mu        sync.RWMutex
	languages map[string]*languageTable
	language  string
	domain    string
	logger    zerolog.Logger
}

// Option configures a Translations handle.
type Option func(*translations)

// WithLogger sets the logger used to report catalog loading. By default
// nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *translations) {
		t.logger = logger.With().Str("sys", "gettext").Logger()
	}
}

// WithLocale sets the initially active language.
func WithLocale(language string) Option {
	return func(t *translations) {
		t.language = language
	}
}

// WithUserLocale activates the language found in the process environment,
// see UserLanguage.
func WithUserLocale() Option {
	return func(t *translations) {
		t.language = UserLanguage()
	}
}

// WithTextDomain sets the initially active text domain.
func WithTextDomain(domain string) Option {
	return func(t *translations) {
		if domain != "" {
			t.domain = domain
		}
	}
}

// NewTranslations returns an empty handle. The active domain is
// DefaultDomain and the active language is empty unless an option says
// otherwise.
func NewTranslations(opts ...Option) Translations {
	t := &translations{
		languages: make(map[string]*languageTable),
		domain:    DefaultDomain,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return Translations{t}
}

// SetLocale changes the active language. Lookups for a language without
// catalogs return the untranslated strings.
func (t Translations) SetLocale(language string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.language = language
}

// Locale returns the active language.
func (t Translations) Locale() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.language
}

// TextDomain sets the active domain if domain is not empty, and returns the
// domain in effect.
func (t Translations) TextDomain(domain string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if domain != "" {
		t.domain = domain
	}
	return t.domain
}

// Reset drops every loaded catalog. The active language and domain are
// kept.
func (t Translations) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.languages = make(map[string]*languageTable)
}

// Languages returns the sorted list of languages with at least one catalog.
func (t Translations) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	languages := make([]string, 0, len(t.languages))
	for language := range t.languages {
		languages = append(languages, language)
	}
	sort.Strings(languages)
	return languages
}

// Domains returns the domains loaded for language in the order they were
// first loaded. This is the order used when a lookup falls back to
// searching every domain.
func (t Translations) Domains(language string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	table, ok := t.languages[language]
	if !ok {
		return nil
	}
	domains := make([]string, len(table.order))
	for i, c := range table.order {
		domains[i] = c.name
	}
	return domains
}

// Header returns a copy of the merged header of a domain, or nil if the
// domain was never loaded for language.
func (t Translations) Header(language, domain string) map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c := t.catalog(language, domain)
	if c == nil {
		return nil
	}
	header := make(map[string]string, len(c.header))
	for k, v := range c.header {
		header[k] = v
	}
	return header
}
