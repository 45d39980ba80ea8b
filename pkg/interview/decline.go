package interview

import (
	"strings"
	"unicode"
)

var declinePhrases = []string{
	"nie wiem", "niewiem", "nie pamiętam", "nie pamietam", "nie powiem",
	"nie mogę podać", "nie moge podac", "nie mogę powiedzieć",
	"nie moge powiedziec", "wolę nie", "wole nie", "wolałbym nie",
	"wolalbym nie", "brak danych", "nie dotyczy", "trudno powiedzieć",
	"trudno powiedziec", "pomiń", "pomin", "pomińmy", "pominmy", "dalej",
	"następne pytanie", "nastepne pytanie",
	"i don't know", "i dont know", "dont know", "don't know", "idk",
	"no idea", "can't share", "cannot share", "can't say", "cannot say",
	"skip", "n/a", "nd.", "n.d.", "brak",
}

// IsDecline classifies a user message as a refusal or non-answer to the most
// recently asked question. A message carrying any digit is never a decline:
// "nie wiem dokładnie, ale około 50" still contains a usable fact.
func IsDecline(text string) (decline bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	if strings.ContainsFunc(trimmed, unicode.IsDigit) {
		return false
	}

	stripped := strings.TrimFunc(trimmed, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
	})
	if stripped == "" {
		// Bare punctuation.
		return true
	}

	lower := strings.ToLower(stripped)
	if lower == "nie" || lower == "no" || lower == "nope" {
		return true
	}
	if len([]rune(lower)) <= 2 {
		return true
	}
	for _, phrase := range declinePhrases {
		if strings.HasPrefix(lower, phrase) {
			return true
		}
	}
	return false
}
