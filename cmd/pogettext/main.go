// Command pogettext looks up a message in gettext PO or mo catalogs and
// prints its translation.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/DanielBaulig/go-gettext"
)

type options struct {
	LocaleDir string `short:"L" long:"locale-dir" value-name:"DIR" description:"load every catalog in DIR/<language>/<domain>.po"`

	Files []string `short:"f" long:"file" value-name:"FILE" description:"load catalog FILE for the selected language"`

	Language string `short:"l" long:"language" value-name:"LANG" description:"look up translations for LANG (default: from the environment)"`

	Domain string `short:"d" long:"domain" value-name:"DOMAIN" description:"search DOMAIN first"`

	Context string `short:"c" long:"context" value-name:"CONTEXT" description:"message context"`

	Plural string `short:"p" long:"plural" value-name:"MSGID_PLURAL" description:"untranslated plural form, enables plural lookup"`

	N int `short:"n" long:"count" default:"1" value-name:"N" description:"count used to select the plural form"`

	Config string `long:"config" value-name:"FILE" description:"read defaults from the YAML file FILE"`

	Check bool `long:"check" description:"print parser diagnostics of the loaded files"`

	Verbose []bool `short:"v" long:"verbose" description:"log catalog loading, repeat for more detail"`
}

// fileConfig is the YAML configuration file. Command line options take
// precedence over its values.
type fileConfig struct {
	LocaleDir string   `yaml:"locale-dir"`
	Files     []string `yaml:"files"`
	Language  string   `yaml:"language"`
	Domain    string   `yaml:"domain"`
}

func readConfig(path string, opts *options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read configuration file %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("cannot parse configuration file %s: %w", path, err)
	}

	if opts.LocaleDir == "" {
		opts.LocaleDir = cfg.LocaleDir
	}
	if len(opts.Files) == 0 {
		opts.Files = cfg.Files
	}
	if opts.Language == "" {
		opts.Language = cfg.Language
	}
	if opts.Domain == "" {
		opts.Domain = cfg.Domain
	}
	return nil
}

func newLogger(w io.Writer, verbosity int) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	level := zerolog.WarnLevel
	switch {
	case verbosity >= 2:
		level = zerolog.DebugLevel
	case verbosity == 1:
		level = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.DateTime}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// printReport writes the diagnostics of a locale directory load in path
// order, followed by the directories that were not loaded.
func printReport(w io.Writer, report *gettext.LoadReport) {
	paths := make([]string, 0, len(report.Diagnostics))
	for path := range report.Diagnostics {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		for _, d := range report.Diagnostics[path] {
			fmt.Fprintf(w, "%s: %s\n", path, d)
		}
	}
	for _, dir := range report.Skipped {
		fmt.Fprintf(w, "%s: skipped, not a language directory\n", dir)
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[options] MSGID [ARG...]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	if len(rest) == 0 && !opts.Check {
		fmt.Fprintln(stderr, "the required argument `MSGID` was not provided")
		parser.WriteHelp(stderr)
		return 1
	}

	if opts.Config != "" {
		if err := readConfig(opts.Config, &opts); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if opts.Language == "" {
		opts.Language = gettext.UserLanguage()
	}

	logger := newLogger(stderr, len(opts.Verbose))
	trans := gettext.NewTranslations(
		gettext.WithLogger(logger),
		gettext.WithLocale(opts.Language),
		gettext.WithTextDomain(opts.Domain),
	)

	failed := false
	if opts.LocaleDir != "" {
		report, err := trans.LoadLocaleDirectory(context.Background(), opts.LocaleDir)
		if opts.Check && report != nil {
			printReport(stdout, report)
		}
		if err != nil {
			logger.Error().Err(err).Str("dir", opts.LocaleDir).Msg("Cannot load locale directory")
			failed = true
		}
	}
	for _, path := range opts.Files {
		diags, err := trans.LoadFile(path, opts.Language)
		if opts.Check {
			for _, d := range diags {
				fmt.Fprintf(stdout, "%s: %s\n", path, d)
			}
		}
		if err != nil {
			logger.Error().Err(err).Msg("Cannot load catalog")
			failed = true
		}
	}
	if opts.Check {
		if failed {
			return 1
		}
		if len(rest) == 0 {
			return 0
		}
	}

	translation := trans.Resolve(gettext.Query{
		Language:   opts.Language,
		Domain:     opts.Domain,
		Context:    opts.Context,
		HasContext: parser.FindOptionByLongName("context").IsSet(),
		MsgID:      rest[0],
		Plural:     opts.Plural,
		HasPlural:  parser.FindOptionByLongName("plural").IsSet(),
		N:          opts.N,
	})
	strargs := make([]interface{}, len(rest)-1)
	for i, arg := range rest[1:] {
		strargs[i] = arg
	}
	fmt.Fprintln(stdout, gettext.Strargs(translation, strargs...))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
