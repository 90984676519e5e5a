package gettext

import (
	"reflect"
	"testing"
)

func assert_equal(t *testing.T, expected string, got string) {
	t.Helper()
	if expected != got {
		t.Logf("%q != %q", expected, got)
		t.Fail()
	}
}

func assertDeepEqual(t *testing.T, expected, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, got) {
		t.Logf("%v != %v", expected, got)
		t.Fail()
	}
}

// loadFixtures loads the catalogs used by most tests into language "de",
// in the order test, messages, domain_inferred.
func loadFixtures(t *testing.T, opts ...Option) Translations {
	t.Helper()
	trans := NewTranslations(append([]Option{WithLocale("de")}, opts...)...)
	for _, file := range []string{
		"testdata/test.po",
		"testdata/01gettext_messages.po",
		"testdata/domain_inferred.po",
	} {
		diags, err := trans.LoadFile(file, "de")
		if err != nil {
			t.Fatal(err)
		}
		if len(diags) != 0 {
			t.Fatalf("%s: unexpected diagnostics %v", file, diags)
		}
	}
	return trans
}
