package gettext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/DanielBaulig/go-gettext/po"
)

// readCatalog maps the file at path and decodes it as a mo file if it
// starts with the mo magic number, or as a PO file otherwise. The mapping
// is released before returning; decoded strings never alias it.
func readCatalog(path string) (*po.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := openMapping(f)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	return decodeCatalog(m.data)
}

func decodeCatalog(data []byte) (*po.File, error) {
	if isMO(data) {
		return parseMO(data)
	}
	return po.Parse(string(data)), nil
}

// isCatalogFile reports whether name looks like a catalog and returns the
// domain it provides.
func isCatalogFile(name string) (domain string, ok bool) {
	switch ext := filepath.Ext(name); ext {
	case ".po", ".mo":
		return strings.TrimSuffix(name, ext), true
	}
	return "", false
}

// LoadData parses a PO or mo catalog and merges it into language. A
// "Domain" header field in the catalog takes precedence over domain.
//
// The returned diagnostics describe lines the parser skipped; they are
// informational and never cause an error.
func (t Translations) LoadData(language, domain string, data []byte) ([]po.Diagnostic, error) {
	f, err := decodeCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("cannot decode catalog %s/%s: %w", language, domain, err)
	}
	return f.Diagnostics, t.load(language, domain, f)
}

// LoadFile reads the catalog at path and merges it into language. The
// domain is the file name without its .po or .mo extension, unless the
// catalog header names one.
func (t Translations) LoadFile(path, language string) ([]po.Diagnostic, error) {
	domain, ok := isCatalogFile(filepath.Base(path))
	if !ok {
		domain = filepath.Base(path)
	}
	f, err := readCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog %s: %w", path, err)
	}
	if err := t.load(language, domain, f); err != nil {
		return f.Diagnostics, fmt.Errorf("%s: %w", path, err)
	}
	return f.Diagnostics, nil
}

func (t Translations) load(language, domain string, f *po.File) error {
	if d := f.Header["domain"]; d != "" {
		domain = d
	}
	if domain == "" {
		domain = DefaultDomain
	}
	f.Header["domain"] = domain

	logger := t.logger.With().Str("language", language).Str("domain", domain).Logger()
	for _, d := range f.Diagnostics {
		logger.Debug().
			Int("line", d.Line).
			Str("kind", d.Kind.String()).
			Msg(d.Text)
	}
	if err := t.Merge(language, domain, f); err != nil {
		logger.Error().Err(err).Msg("Failed to load catalog")
		return err
	}
	logger.Info().
		Int("messages", len(f.Entries)).
		Int("diagnostics", len(f.Diagnostics)).
		Msg("Loaded catalog")
	return nil
}

// localeDirectoryName reports whether name can be a language directory.
// Codeset and modifier suffixes such as ".UTF-8" or "@latin" are ignored
// for the check.
func localeDirectoryName(name string) error {
	base := name
	if i := strings.IndexAny(base, ".@"); i >= 0 {
		base = base[:i]
	}
	_, err := language.Parse(strings.ReplaceAll(base, "_", "-"))
	return err
}

type catalogFile struct {
	path     string
	language string
	domain   string
	file     *po.File
}

// LoadReport describes what LoadLocaleDirectory read besides the catalogs
// themselves.
type LoadReport struct {
	// Diagnostics holds the parser diagnostics of every catalog that has
	// any, keyed by file path.
	Diagnostics map[string][]po.Diagnostic
	// Skipped lists the subdirectories of the root that were not loaded
	// because their names are not language tags.
	Skipped []string
}

// LoadLocaleDirectory loads every catalog found at <root>/<language>/<domain>.po
// (or .mo). Directories whose names are not language tags are skipped and
// listed in the report.
//
// Files are read and parsed concurrently and merged in lexical path order,
// so the domain search order does not depend on scheduling. A read error
// aborts the whole load and nothing is merged; a catalog that cannot be
// merged is skipped and reported in the returned error while the others are
// still loaded. The report is returned whenever the files could be read.
func (t Translations) LoadLocaleDirectory(ctx context.Context, root string) (*LoadReport, error) {
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read locale directory: %w", err)
	}

	report := &LoadReport{Diagnostics: make(map[string][]po.Diagnostic)}
	var files []*catalogFile
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		lang := dir.Name()
		if err := localeDirectoryName(lang); err != nil {
			t.logger.Warn().Err(err).Str("dir", lang).Msg("Skipping non-language directory")
			report.Skipped = append(report.Skipped, filepath.Join(root, lang))
			continue
		}
		entries, err := os.ReadDir(filepath.Join(root, lang))
		if err != nil {
			return nil, fmt.Errorf("cannot read locale directory: %w", err)
		}
		for _, entry := range entries {
			domain, ok := isCatalogFile(entry.Name())
			if !ok || entry.IsDir() {
				continue
			}
			files = append(files, &catalogFile{
				path:     filepath.Join(root, lang, entry.Name()),
				language: lang,
				domain:   domain,
			})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, cf := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := readCatalog(cf.path)
			if err != nil {
				return fmt.Errorf("cannot read catalog %s: %w", cf.path, err)
			}
			cf.file = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var errs []error
	for _, cf := range files {
		if len(cf.file.Diagnostics) > 0 {
			report.Diagnostics[cf.path] = cf.file.Diagnostics
		}
		if err := t.load(cf.language, cf.domain, cf.file); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", cf.path, err))
		}
	}
	return report, errors.Join(errs...)
}
