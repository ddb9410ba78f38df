package util

import (
	"strings"
	"time"

	"hrdocs/internal"
)

// Layouts the classification service has been seen returning for Data.
// NormalizedDateLayout is what the export expects.
const NormalizedDateLayout = "2006/01/02"

var dateLayouts = []string{
	"2006-01-02",
	NormalizedDateLayout,
	"02/01/2006",
	"02-01-2006",
	time.RFC3339,
}

// CollapseError trims the value and folds any case variant of the error
// words ("errore", "error") to the canonical token.
func CollapseError(input string) string {
	s := strings.TrimSpace(input)
	if strings.EqualFold(s, "errore") || strings.EqualFold(s, "error") {
		return internal.ErrorToken
	}
	return s
}

// NormalizeName upper-cases a first or last name. Placeholder and error
// tokens pass through already canonical.
func NormalizeName(input string) string {
	s := CollapseError(input)
	return strings.ToUpper(s)
}

// NormalizeCountry capitalizes the first rune and lower-cases the rest.
// This mangles multi-word names ("United States" -> "United states"),
// matching the downstream consumer's existing expectation.
func NormalizeCountry(input string) string {
	s := CollapseError(input)
	if s == "" || s == internal.ErrorToken {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

// NormalizeDate converts any parseable date to YYYY/MM/DD. Placeholder and
// error tokens pass through unchanged; anything else unparseable becomes the
// error token. time.Parse validates the calendar, so 31/02/2024 is an error.
func NormalizeDate(input string) string {
	s := CollapseError(input)
	if s == internal.ErrorToken || strings.ToUpper(s) == internal.NoDatePlaceholder {
		if s != internal.ErrorToken {
			return internal.NoDatePlaceholder
		}
		return s
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.Format(NormalizedDateLayout)
		}
	}
	return internal.ErrorToken
}
