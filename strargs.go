package gettext

import (
	"fmt"
	"strconv"
	"strings"
)

// Strargs substitutes positional placeholders in a translated string.
// "%N" is replaced by args[N-1], "%%" by a single percent sign. Arguments
// that are missing or nil render as nothing, and a '%' followed by
// anything else is dropped.
//
//	Strargs("%2 of %1 (100%%)", "ten", "two") == "two of ten (100%)"
func Strargs(template string, args ...interface{}) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(template, '%')
		if i < 0 {
			b.WriteString(template)
			break
		}
		b.WriteString(template[:i])
		template = template[i+1:]

		if strings.HasPrefix(template, "%") {
			b.WriteByte('%')
			template = template[1:]
			continue
		}

		digits := 0
		for digits < len(template) && template[digits] >= '0' && template[digits] <= '9' {
			digits++
		}
		if digits == 0 {
			continue
		}
		n, err := strconv.Atoi(template[:digits])
		template = template[digits:]
		if err != nil || n < 1 || n > len(args) || args[n-1] == nil {
			continue
		}
		fmt.Fprint(&b, args[n-1])
	}
	return b.String()
}
