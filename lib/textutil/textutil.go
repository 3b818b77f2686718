package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest. Hyphens, spaces and apostrophes all start a new word, so "WRITE-IN"
// becomes "Write-In" and "O'BRIEN" becomes "O'Brien".
func TitleCase(s string) string {
	titled := []rune(cases.Title(language.Und).String(s))
	for i := 1; i < len(titled); i++ {
		if titled[i-1] == '\'' || titled[i-1] == '’' {
			titled[i] = unicode.ToUpper(titled[i])
		}
	}
	return string(titled)
}
