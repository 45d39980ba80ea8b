// Package guard validates and repairs rewrite text returned by the external
// generator. Nothing the generator produced is trusted verbatim: section
// headers are canonicalized, the "before" quotation is always replaced with
// the source role block, and any numeral that cannot be found in the
// allowed-fact text invalidates the candidate. When validation fails after the
// bounded repair attempts, a deterministic template takes over, so a
// well-formed, fact-safe result is always returned.
package guard

import (
	"regexp"
	"strings"

	"github.com/bkrawczyk/cv-coach/pkg/segment"
)

// Literal output contract.
const (
	VariantALabel = "Wariant A (wyniki):"
	VariantBLabel = "Wariant B (zakres):"

	// CallToAction is the fixed trailing prompt line, appended exactly once.
	CallToAction = "Chcesz dopracować kolejną rolę? Podaj jej numer albo wklej następny fragment CV."

	BulletPrefix = "- "

	MinBullets    = 3
	MaxBullets    = 8
	BeforeLineCap = 12
)

// BeforeHeader renders the literal opening marker of the source quotation.
func BeforeHeader(title string) (header string) {
	header = "=== BEFORE (" + title + ") ==="
	return header
}

// AfterHeader renders the literal opening marker of the rewrite.
func AfterHeader(title string) (header string) {
	header = "=== AFTER (" + title + ") ==="
	return header
}

// bannedCausalPhrases are causal inferences the generator is not allowed to
// invent on the user's behalf.
var bannedCausalPhrases = []string{
	"dzięki czemu", "dzieki czemu", "co zaowocowało", "co zaowocowalo",
	"co przełożyło się", "co przelozylo sie", "w efekcie czego",
	"co doprowadziło do", "co doprowadzilo do",
	"which resulted in", "resulting in", "which led to", "leading to",
	"thanks to which",
}

// Result is a validated (or deterministically rebuilt) rewrite.
type Result struct {
	Text     string
	Problems []string
}

// Valid reports whether the candidate passed every structural and fact check.
func (r Result) Valid() (ok bool) {
	ok = len(r.Problems) == 0
	return ok
}

// ValidateAndRepair cleans a generated rewrite, rebuilds it into the canonical
// shape and checks the structural contract plus the numeric fact allowlist.
// The returned text is always the canonical reconstruction; Problems lists
// what a repair re-invocation must fix.
func ValidateAndRepair(candidate string, role segment.RoleBlock, allowedFacts string) (res Result) {
	cleaned := stripCodeFences(candidate)
	parsed := parseCandidate(cleaned)

	if !parsed.beforeFound {
		res.Problems = append(res.Problems, "missing BEFORE section header")
	}
	if !parsed.afterFound {
		res.Problems = append(res.Problems, "missing AFTER section header")
	}
	if !parsed.variantAFound {
		res.Problems = append(res.Problems, "missing variant A label")
	}
	if !parsed.variantBFound {
		res.Problems = append(res.Problems, "missing variant B label")
	}

	variantA := dedupeBullets(parsed.variantA)
	variantB := dedupeBullets(parsed.variantB)

	if n := len(variantA); parsed.variantAFound && (n < MinBullets || n > MaxBullets) {
		res.Problems = append(res.Problems, "variant A must have 3-8 bullet lines")
	}
	if n := len(variantB); parsed.variantBFound && (n < MinBullets || n > MaxBullets) {
		res.Problems = append(res.Problems, "variant B must have 3-8 bullet lines")
	}
	if parsed.variantAFound && parsed.variantBFound && sameBullets(variantA, variantB) {
		res.Problems = append(res.Problems, "the two variants must differ")
	}

	allowed := allowedNumerals(allowedFacts)
	for _, bullet := range append(append([]string{}, variantA...), variantB...) {
		for _, numeral := range extractNumerals(bullet) {
			if !allowed[numeral] {
				res.Problems = append(res.Problems, "numeral not present in source facts: "+numeral)
			}
		}
		lower := strings.ToLower(bullet)
		for _, phrase := range bannedCausalPhrases {
			if strings.Contains(lower, phrase) {
				res.Problems = append(res.Problems, "banned causal phrase: "+phrase)
			}
		}
	}

	res.Text = compose(role, variantA, variantB)
	return res
}

type parsedCandidate struct {
	beforeFound   bool
	afterFound    bool
	variantAFound bool
	variantBFound bool
	variantA      []string
	variantB      []string
}

var (
	// Headers must carry the parenthesized role title; a bare "Po czym..."
	// sentence in a variant is not a header.
	beforeHeaderRe = regexp.MustCompile(`(?i)^=*\s*(?:BEFORE|PRZED)\s*\(`)
	afterHeaderRe  = regexp.MustCompile(`(?i)^=*\s*(?:AFTER|PO)\s*\(`)
	variantARe     = regexp.MustCompile(`(?i)^\**\s*(?:wariant|wersja|variant)\s*a\b`)
	variantBRe     = regexp.MustCompile(`(?i)^\**\s*(?:wariant|wersja|variant)\s*b\b`)
	bulletMarkRe   = regexp.MustCompile(`^[-*•·–—]+\s*`)
	fenceRe        = regexp.MustCompile("(?m)^```.*$")
)

// parseCandidate walks the generated lines and collects the two variants.
// Anything outside the recognized structure (meta chatter, filler, duplicated
// call-to-action lines) is dropped by reconstruction.
func parseCandidate(text string) (p parsedCandidate) {
	const (
		sectionNone = iota
		sectionBefore
		sectionAfter
		sectionVariantA
		sectionVariantB
	)
	section := sectionNone

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch {
		case beforeHeaderRe.MatchString(trimmed):
			p.beforeFound = true
			section = sectionBefore
			continue
		case afterHeaderRe.MatchString(trimmed):
			p.afterFound = true
			section = sectionAfter
			continue
		case variantARe.MatchString(trimmed):
			p.variantAFound = true
			section = sectionVariantA
			continue
		case variantBRe.MatchString(trimmed):
			p.variantBFound = true
			section = sectionVariantB
			continue
		}

		switch section {
		case sectionVariantA:
			if bullet := cleanBullet(trimmed); bullet != "" {
				p.variantA = append(p.variantA, bullet)
			}
		case sectionVariantB:
			if bullet := cleanBullet(trimmed); bullet != "" {
				p.variantB = append(p.variantB, bullet)
			}
		}
	}
	return p
}

func stripCodeFences(text string) (out string) {
	out = fenceRe.ReplaceAllString(text, "")
	return out
}

// cleanBullet forces a bullet body into shape: markers stripped, whitespace
// trimmed. Call-to-action echoes inside a variant are dropped.
func cleanBullet(line string) (bullet string) {
	bullet = strings.TrimSpace(bulletMarkRe.ReplaceAllString(line, ""))
	if strings.Contains(strings.ToLower(bullet), "kolejną rolę") ||
		strings.Contains(strings.ToLower(bullet), "kolejna role") {
		bullet = ""
	}
	return bullet
}

func dedupeBullets(bullets []string) (unique []string) {
	seen := make(map[string]bool, len(bullets))
	for _, bullet := range bullets {
		key := normalizeBullet(bullet)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, bullet)
	}
	return unique
}

func normalizeBullet(bullet string) (key string) {
	key = strings.ToLower(strings.Join(strings.Fields(bullet), " "))
	key = strings.TrimRight(key, ".")
	return key
}

func sameBullets(a, b []string) (same bool) {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, bullet := range a {
		set[normalizeBullet(bullet)] = true
	}
	for _, bullet := range b {
		if !set[normalizeBullet(bullet)] {
			return false
		}
	}
	return true
}

// compose rebuilds the canonical rewrite document. The before quotation is
// always an exact, line-capped copy of the source role block; the generator's
// literal fidelity is never trusted.
func compose(role segment.RoleBlock, variantA, variantB []string) (doc string) {
	var b strings.Builder

	b.WriteString(BeforeHeader(role.Title))
	b.WriteString("\n")
	for _, line := range beforeQuote(role) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(AfterHeader(role.Title))
	b.WriteString("\n")
	b.WriteString(VariantALabel)
	b.WriteString("\n")
	for _, bullet := range variantA {
		b.WriteString(BulletPrefix + bullet + "\n")
	}
	b.WriteString("\n")
	b.WriteString(VariantBLabel)
	b.WriteString("\n")
	for _, bullet := range variantB {
		b.WriteString(BulletPrefix + bullet + "\n")
	}

	b.WriteString("\n")
	b.WriteString(CallToAction)
	doc = b.String()
	return doc
}

func beforeQuote(role segment.RoleBlock) (lines []string) {
	lines = strings.Split(role.RawText, "\n")
	if len(lines) > BeforeLineCap {
		lines = lines[:BeforeLineCap]
	}
	return lines
}

var numeralRe = regexp.MustCompile(`\d+(?:[ \x{00a0}]\d{3})*(?:[.,]\d+)?`)

// extractNumerals pulls every numeral out of a text in separator-normalized
// form.
func extractNumerals(text string) (numerals []string) {
	for _, match := range numeralRe.FindAllString(text, -1) {
		numerals = append(numerals, NormalizeNumeral(match))
	}
	return numerals
}

// allowedNumerals builds the allowlist from the role block plus collected
// answers.
func allowedNumerals(allowedFacts string) (allowed map[string]bool) {
	allowed = make(map[string]bool)
	for _, numeral := range extractNumerals(allowedFacts) {
		allowed[numeral] = true
	}
	return allowed
}

// NormalizeNumeral maps numeral spellings that denote the same value to one
// canonical form: group separators removed, decimal comma to dot, trailing
// decimal zeros dropped ("1 200" == "1200", "1,5" == "1.50").
func NormalizeNumeral(numeral string) (canonical string) {
	canonical = strings.ReplaceAll(numeral, " ", "")
	canonical = strings.ReplaceAll(canonical, "\u00a0", "")
	canonical = strings.ReplaceAll(canonical, ",", ".")
	if strings.Contains(canonical, ".") {
		canonical = strings.TrimRight(canonical, "0")
		canonical = strings.TrimSuffix(canonical, ".")
	}
	return canonical
}
