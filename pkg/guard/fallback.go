package guard

import (
	"strings"
	"unicode"

	"github.com/bkrawczyk/cv-coach/pkg/segment"
)

// Fallback synthesizes the rewrite entirely from the allowed-fact text: the
// role block plus collected answers, with no generative step. It is the last
// stage of the repair pipeline and always yields a structurally valid,
// fact-safe document.
func Fallback(role segment.RoleBlock, answers []string) (text string) {
	candidates := fallbackCandidates(role, answers)

	var withNumbers, withoutNumbers []string
	for _, line := range candidates {
		if strings.ContainsFunc(line, unicode.IsDigit) {
			withNumbers = append(withNumbers, line)
		} else {
			withoutNumbers = append(withoutNumbers, line)
		}
	}

	// Variant A leads with quantified lines, variant B with scope lines; the
	// differing padding sets guarantee the variants never collapse into one.
	variantA := capBullets(append(append([]string{}, withNumbers...), withoutNumbers...), paddingA(role.Title))
	variantB := capBullets(append(append([]string{}, withoutNumbers...), withNumbers...), paddingB(role.Title))
	variantB = diverge(variantA, variantB, paddingB(role.Title))

	text = compose(role, variantA, variantB)
	return text
}

// diverge makes sure the two variants differ after bullet-level normalization:
// when both drew the same statements, variant B trades its tail for scope
// filler.
func diverge(variantA, variantB, padding []string) (out []string) {
	out = variantB
	for i := 0; sameBullets(variantA, out) && i < len(padding); i++ {
		if len(out) >= MaxBullets {
			out = out[:len(out)-1]
		}
		out = append(out, padding[i])
		out = dedupeBullets(out)
	}
	return out
}

// fallbackCandidates splits the role body and answers into bullet-sized
// statements.
func fallbackCandidates(role segment.RoleBlock, answers []string) (candidates []string) {
	seen := make(map[string]bool)
	push := func(raw string) {
		line := strings.TrimSpace(bulletMarkRe.ReplaceAllString(strings.TrimSpace(raw), ""))
		line = strings.TrimRight(line, ".")
		if len([]rune(line)) < 8 {
			return
		}
		key := normalizeBullet(line)
		if seen[key] {
			return
		}
		seen[key] = true
		candidates = append(candidates, capitalize(line))
	}

	for _, line := range role.BodyLines {
		for _, sentence := range splitSentences(line) {
			push(sentence)
		}
	}
	for _, answer := range answers {
		for _, sentence := range splitSentences(answer) {
			push(sentence)
		}
	}
	return candidates
}

func splitSentences(text string) (sentences []string) {
	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ';'
	}) {
		for _, sentence := range strings.Split(part, ". ") {
			if strings.TrimSpace(sentence) != "" {
				sentences = append(sentences, sentence)
			}
		}
	}
	return sentences
}

// capBullets trims to the bullet maximum and pads to the minimum with
// fact-safe, numeral-free filler.
func capBullets(bullets []string, padding []string) (capped []string) {
	capped = bullets
	if len(capped) > MaxBullets {
		capped = capped[:MaxBullets]
	}
	for i := 0; len(capped) < MinBullets && i < len(padding); i++ {
		capped = append(capped, padding[i])
	}
	return capped
}

func paddingA(title string) (lines []string) {
	lines = []string{
		"Samodzielna realizacja zadań na stanowisku " + title,
		"Bieżąca współpraca z klientami i zespołem",
		"Dbałość o jakość i terminowość powierzonych zadań",
	}
	return lines
}

func paddingB(title string) (lines []string) {
	lines = []string{
		"Odpowiedzialność za pełen zakres obowiązków roli " + title,
		"Raportowanie efektów pracy przełożonym",
		"Utrzymywanie standardów obsługi i dokumentacji",
	}
	return lines
}

func capitalize(s string) (out string) {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	out = string(runes)
	return out
}
