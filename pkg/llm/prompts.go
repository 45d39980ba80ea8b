package llm

import (
	"fmt"
	"strings"

	"github.com/bkrawczyk/cv-coach/pkg/guard"
	"github.com/bkrawczyk/cv-coach/pkg/segment"
)

// Temperatures for the two generation modes.
const (
	RewriteTemperature = 0.4
	RepairTemperature  = 0.2
)

// RewriteSystemPrompt is the system instruction for the before/after rewrite.
const RewriteSystemPrompt = `Jesteś doradcą kariery przepisującym opisy doświadczenia zawodowego w CV.
Pracujesz WYŁĄCZNIE na faktach podanych przez użytkownika. Nie wolno Ci:
- wymyślać żadnych liczb, procentów ani kwot, których nie ma w materiale źródłowym,
- dopisywać związków przyczynowych ("dzięki czemu", "co zaowocowało"), których użytkownik nie podał,
- zmieniać nazw firm, stanowisk ani dat.
Piszesz po polsku, zwięźle, w punktach zaczynających się od mocnego rzeczownika odczasownikowego lub czasownika.`

// BuildRewritePrompt creates the user instruction for rewriting one role. The
// allowed facts are the role block verbatim plus every collected answer.
func BuildRewritePrompt(role segment.RoleBlock, answers []string) (prompt string) {
	answersSection := "(brak — użytkownik nie dodał nic ponad tekst źródłowy)"
	if len(answers) > 0 {
		answersSection = "- " + strings.Join(answers, "\n- ")
	}

	prompt = fmt.Sprintf(`Przepisz poniższy wpis z CV.

STANOWISKO: %s
TEKST ŹRÓDŁOWY:
%s

ODPOWIEDZI UŻYTKOWNIKA Z WYWIADU:
%s

Zwróć DOKŁADNIE ten format, bez żadnego komentarza przed ani po:

%s
(tu zacytuj tekst źródłowy)

%s
%s
- od %d do %d punktów nastawionych na liczby i wyniki

%s
- od %d do %d punktów opisujących zakres odpowiedzialności

Zasady twarde:
1. Każda liczba w punktach musi występować w tekście źródłowym lub w odpowiedziach użytkownika.
2. Oba warianty muszą się różnić treścią punktów.
3. Każdy punkt zaczyna się od "- ".`,
		role.Title,
		role.RawText,
		answersSection,
		guard.BeforeHeader(role.Title),
		guard.AfterHeader(role.Title),
		guard.VariantALabel,
		guard.MinBullets, guard.MaxBullets,
		guard.VariantBLabel,
		guard.MinBullets, guard.MaxBullets,
	)
	return prompt
}

// BuildRepairPrompt re-invokes the generator after a structurally successful
// but invalid response, naming the exact problems to fix.
func BuildRepairPrompt(role segment.RoleBlock, answers []string, candidate string, problems []string) (prompt string) {
	prompt = fmt.Sprintf(`Twoja poprzednia odpowiedź nie przeszła walidacji. Problemy:
- %s

POPRZEDNIA ODPOWIEDŹ:
%s

Popraw wyłącznie wskazane problemy i zwróć pełną odpowiedź jeszcze raz, w tym samym formacie.

%s`,
		strings.Join(problems, "\n- "),
		candidate,
		BuildRewritePrompt(role, answers),
	)
	return prompt
}
