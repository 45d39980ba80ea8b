package engine

import (
	"fmt"
	"strings"

	"github.com/bkrawczyk/cv-coach/pkg/domain"
	"github.com/bkrawczyk/cv-coach/pkg/facts"
	"github.com/bkrawczyk/cv-coach/pkg/interview"
	"github.com/bkrawczyk/cv-coach/pkg/segment"
)

const onboardingMessage = `Cześć! Wklej sekcję „Doświadczenie" ze swojego CV (czysty tekst — tytuły stanowisk, firmy, daty i opisy), a pokażę Ci, jakich konkretów w niej brakuje, i pomogę ją przepisać.`

const allDoneMessage = `Wszystkie rozpoznane role zostały już przepisane. Możesz wkleić kolejny fragment CV albo podać tytuł roli, którą chcesz dopracować ponownie.`

const generationErrorMessage = `Nie udało się połączyć z usługą generowania tekstu. Spróbuj ponownie za chwilę — Twoje odpowiedzi nie przepadły, cała rozmowa zostanie uwzględniona.`

// auditResponse renders the numbered role listing with a one-line missing-facts
// summary per role.
func (e *Engine) auditResponse(roles []segment.RoleBlock) (resp Response) {
	shown := auditRoles(roles)

	var b strings.Builder
	fmt.Fprintf(&b, "Znalazłem w Twoim opisie %d %s:\n\n", len(shown), rolesNoun(len(shown)))
	for i, role := range shown {
		line := role.Title
		if dates := role.Dates.String(); dates != "" {
			line += " (" + dates + ")"
		}
		fmt.Fprintf(&b, "%d. %s\n   Brakuje: %s\n", i+1, line, missingSummary(role))
	}
	fmt.Fprintf(&b, "\nWpisz numer 1–%d, aby dopracować wybraną rolę.", len(shown))

	resp = Response{Kind: KindAudit, Text: b.String(), Tag: interview.TagAudit}
	return resp
}

// missingSummary names the fact gaps of a role before any interview answers
// exist.
func missingSummary(role segment.RoleBlock) (summary string) {
	d := domain.Classify(role.Title, role.RawText)
	relevant := domain.AcquisitionRelevant(d, role.RawText)
	fs := facts.Analyze(role.RawText, nil, relevant)

	var missing []string
	if !fs.HasActions {
		missing = append(missing, "konkretów działań")
	}
	if !fs.HasScale {
		missing = append(missing, "skali")
	}
	if fs.NeedsProcess {
		missing = append(missing, "procesu pozyskiwania")
	}
	if !fs.HasResult {
		missing = append(missing, "mierzalnego wyniku")
	}
	if fs.NeedsContext {
		missing = append(missing, "kontekstu porównawczego")
	}
	if len(missing) == 0 {
		summary = "niczego — wygląda kompletnie"
		return summary
	}
	summary = strings.Join(missing, ", ")
	return summary
}

func roleIntro(role segment.RoleBlock) (intro string) {
	intro = "Zaczynamy od roli: " + role.Title
	if dates := role.Dates.String(); dates != "" {
		intro += " (" + dates + ")"
	}
	intro += "."
	return intro
}

func rolesNoun(n int) (noun string) {
	switch {
	case n == 1:
		noun = "rolę"
	case n >= 2 && n <= 4:
		noun = "role"
	default:
		noun = "ról"
	}
	return noun
}
