package util

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

var langMatcher = language.NewMatcher([]language.Tag{
	language.Spanish, // default
	language.AmericanEnglish,
})

var monthNamesEs = strings.NewReplacer(
	"January", "enero",
	"February", "febrero",
	"March", "marzo",
	"April", "abril",
	"May", "mayo",
	"June", "junio",
	"July", "julio",
	"August", "agosto",
	"September", "septiembre",
	"October", "octubre",
	"November", "noviembre",
	"December", "diciembre",
)

// Lang is a display language for dates.
type Lang int

const (
	Spanish Lang = iota
	English
)

// MatchLang picks the display language from an Accept-Language header value. Spanish is the default.
func MatchLang(acceptLanguage string) Lang {
	_, index := language.MatchStrings(langMatcher, acceptLanguage)
	if index == 1 {
		return English
	}
	return Spanish
}

// FormatDate formats t as a long date, like "19 de octubre de 2026" or "October 19, 2026".
func FormatDate(t time.Time, lang Lang) string {
	t = t.Local()
	switch lang {
	case English:
		return t.Format("January 2, 2006")
	default:
		return monthNamesEs.Replace(t.Format("2 de January de 2006"))
	}
}
