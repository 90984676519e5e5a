package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestLookupFile(t *testing.T) {
	code, stdout, _ := runCommand("-f", "../../testdata/test.po", "-l", "de", "-d", "test", "Singular")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Numerus 0\n", stdout)

	code, stdout, _ = runCommand("-f", "../../testdata/test.po", "-l", "de", "-d", "test", "-p", "Plural", "-n", "2", "Singular")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Numerus 1\n", stdout)
}

func TestLookupContext(t *testing.T) {
	code, stdout, _ := runCommand("-f", "../../testdata/test.po", "-l", "de", "-d", "test", "-c", "weapon", "bow")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Bogen\n", stdout)

	// An empty context is still a context.
	code, stdout, _ = runCommand("-f", "../../testdata/test.po", "-l", "de", "-d", "test", "-c", "", "Singular")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Singular\n", stdout)
}

func TestLookupStrargs(t *testing.T) {
	code, stdout, _ := runCommand("-f", "../../testdata/01gettext_messages.po", "-l", "de",
		"-p", "%1 apples", "-n", "3", "%1 apple", "3")
	assert.Equal(t, 0, code)
	assert.Equal(t, "3 Äpfel\n", stdout)
}

func TestLookupUntranslated(t *testing.T) {
	code, stdout, _ := runCommand("-f", "../../testdata/test.po", "-l", "de", "not translated %1", "here")
	assert.Equal(t, 0, code)
	assert.Equal(t, "not translated here\n", stdout)
}

func TestLookupLocaleDir(t *testing.T) {
	code, stdout, _ := runCommand("-L", "../../testdata/locale", "-l", "en", "language")
	assert.Equal(t, 0, code)
	assert.Equal(t, "english\n", stdout)
}

func TestConfigFile(t *testing.T) {
	localeDir, err := filepath.Abs("../../testdata/locale")
	require.NoError(t, err)
	config := filepath.Join(t.TempDir(), "pogettext.yaml")
	require.NoError(t, os.WriteFile(config, []byte("locale-dir: "+localeDir+"\nlanguage: de\n"), 0644))

	code, stdout, _ := runCommand("--config", config, "language")
	assert.Equal(t, 0, code)
	assert.Equal(t, "german\n", stdout)

	// Options override the file.
	code, stdout, _ = runCommand("--config", config, "-l", "en", "language")
	assert.Equal(t, 0, code)
	assert.Equal(t, "english\n", stdout)
}

func TestConfigFileErrors(t *testing.T) {
	code, _, stderr := runCommand("--config", filepath.Join(t.TempDir(), "missing.yaml"), "language")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "cannot read configuration file")

	config := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(config, []byte("files: [unterminated\n"), 0644))
	code, _, stderr = runCommand("--config", config, "language")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "cannot parse configuration file")
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.po")
	require.NoError(t, os.WriteFile(path, []byte("msgid \"a\"\nmsgstr \"b\"\ngarbage\n"), 0644))

	code, stdout, _ := runCommand("--check", "-l", "de", "-f", path)
	assert.Equal(t, 0, code)
	assert.Equal(t, path+": line 3: strange line: garbage\n", stdout)
}

func TestCheckLocaleDir(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"de", "templates"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, dir), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, dir, "messages.po"),
			[]byte("garbage line\nmsgid \"a\"\nmsgstr \"b\"\n"), 0644))
	}

	code, stdout, _ := runCommand("--check", "-L", root)
	assert.Equal(t, 0, code)
	assert.Equal(t,
		filepath.Join(root, "de", "messages.po")+": line 1: strange line: garbage line\n"+
			filepath.Join(root, "templates")+": skipped, not a language directory\n",
		stdout)

	// Without --check nothing but the lookup is printed.
	code, stdout, _ = runCommand("-L", root, "-l", "de", "a")
	assert.Equal(t, 0, code)
	assert.Equal(t, "b\n", stdout)
}

func TestCheckLoadError(t *testing.T) {
	code, stdout, stderr := runCommand("--check", "-l", "fr", "-f", "../../testdata/badlocale/fr/broken.po")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Cannot load catalog")
}

func TestVerbose(t *testing.T) {
	code, _, stderr := runCommand("-v", "-f", "../../testdata/test.po", "-l", "de", "Singular")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "Loaded catalog")

	code, _, stderr = runCommand("-f", "../../testdata/test.po", "-l", "de", "Singular")
	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
}

func TestUsage(t *testing.T) {
	code, _, stderr := runCommand("-l", "de")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "MSGID")

	code, stdout, _ := runCommand("--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "--locale-dir")

	code, _, stderr = runCommand("--no-such-option", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no-such-option")
}
