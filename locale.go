package gettext

import (
	"os"
)

var osGetenv = os.Getenv

// UserLanguage returns the language configured in the process environment,
// consulting LC_ALL, LC_MESSAGES, LANGUAGES and LANG in that order. It
// returns "" if none is set.
//
// The value is returned as is, e.g. "de_DE.UTF-8". Catalogs are looked up
// under exactly that name.
func UserLanguage() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANGUAGES", "LANG"} {
		if lang := osGetenv(name); lang != "" {
			return lang
		}
	}
	return ""
}
