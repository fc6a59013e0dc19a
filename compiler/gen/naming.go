package gen

import (
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CamelCase converts an identifier to upper camel case.
// Example: "user_profiles" -> "UserProfiles".
func CamelCase(raw string) string {
	return inflect.Camelize(raw)
}

// Singular returns the singular form of the camel-cased identifier.
// Irregular and uncountable words keep their case.
// Example: "authors" -> "Author", "people" -> "Person", "news" -> "News".
func Singular(raw string) string {
	return inflection.Singular(CamelCase(raw))
}

// Plural returns the plural form of the camel-cased identifier. The name is
// singularized first, so plural input is left as is.
// Example: "author" -> "Authors", "people" -> "People".
func Plural(raw string) string {
	return inflection.Plural(Singular(raw))
}

// SnakeSingular returns the singular snake-case form of the identifier.
// Example: "BookAuthors" -> "book_author".
func SnakeSingular(raw string) string {
	return inflection.Singular(inflect.Underscore(raw))
}

// SnakePlural returns the plural snake-case form of the identifier.
// Example: "author" -> "authors".
func SnakePlural(raw string) string {
	return inflection.Plural(SnakeSingular(raw))
}

// GoName returns the idiomatic Go field name of a snake-case identifier.
// Each underscore-separated segment is title-cased, and a segment equal to
// "id" is rendered as the acronym "ID".
// Example: "author_id" -> "AuthorID".
func GoName(raw string) string {
	caser := cases.Title(language.English)
	var b strings.Builder
	for _, seg := range strings.Split(inflect.Underscore(raw), "_") {
		if seg == "" {
			continue
		}
		s := caser.String(seg)
		if s == "Id" {
			s = "ID"
		}
		b.WriteString(s)
	}
	return b.String()
}
