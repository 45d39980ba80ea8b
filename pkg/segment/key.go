package segment

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// keyStripper removes combining diacritic marks after NFD decomposition.
var keyStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// strokedLetters maps letters NFD cannot decompose (stroke, not a combining mark).
var strokedLetters = strings.NewReplacer(
	"ł", "l", "Ł", "L",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
)

// NormalizeKey derives the external identity of a role: diacritic-stripped,
// lowercase, alphanumeric-only characters of the title plus its date range.
// "Specjalista ds. Sprzedaży" and "SPECJALISTA DS. SPRZEDAZY" collide on
// purpose.
func NormalizeKey(title string, dates DateRange) (key string) {
	raw := strokedLetters.Replace(title + dates.String())
	stripped, _, err := transform.String(keyStripper, raw)
	if err != nil {
		stripped = raw
	}

	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	key = b.String()
	return key
}

// KeyFromTitle builds a lookup key from a bare typed title, used to resolve a
// user's explicit role choice against segmented blocks.
func KeyFromTitle(title string) (key string) {
	key = NormalizeKey(title, DateRange{})
	return key
}
