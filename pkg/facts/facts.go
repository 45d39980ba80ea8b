// Package facts evaluates which quantifiable fact categories are present in a
// role's text plus the answers collected during its interview. Analysis is
// pure and total: the same inputs always produce the same FactSet, and nothing
// is persisted between turns.
package facts

import (
	"regexp"
	"strconv"
	"strings"
)

// FactSet is the per-role gap report, recomputed fresh every turn.
type FactSet struct {
	HasActions bool
	HasScale   bool
	HasResult  bool
	HasProcess bool
	HasContext bool

	// NeedsProcess is set only when the domain flags acquisition relevance.
	NeedsProcess bool
	// NeedsContext is set when a result is stated without a baseline and is
	// not a ceiling statement (100%, zero incidents).
	NeedsContext bool
}

// Analyze computes the FactSet from the union of the role block text and every
// answer the user gave since the role's interview started.
func Analyze(roleText string, answers []string, acquisitionRelevant bool) (fs FactSet) {
	combined := roleText
	if len(answers) > 0 {
		combined += "\n" + strings.Join(answers, "\n")
	}
	lower := strings.ToLower(combined)
	lines := strings.Split(lower, "\n")

	fs.HasActions = detectActions(lower, lines)
	fs.HasScale = detectScale(lines)

	ceiling := detectCeiling(lower)
	fs.HasResult = ceiling || detectResult(lower, lines)
	if fs.HasResult && !ceiling {
		fs.HasContext = detectContext(lower)
		fs.NeedsContext = !fs.HasContext
	}

	if acquisitionRelevant {
		fs.HasProcess = detectProcess(lower, lines)
		fs.NeedsProcess = !fs.HasProcess
	}

	return fs
}

var actionVerbStems = []string{
	"zarządza", "zarzadza", "prowadz", "tworz", "twórz", "wdraża", "wdraza",
	"wdroż", "wdroz", "obsług", "obslug", "koordyn", "pozysk", "realizow",
	"realizuj", "przygotow", "opracow", "negocjo", "sprzedaw", "buduj",
	"budow", "analizow", "analizuj", "planow", "planuj", "organizow",
	"organizuj", "nadzorow", "nadzoruj", "rekrutow", "szkoli", "szkolen",
	"testow", "testuj", "projektow", "raportow", "raportuj", "przeprowadz",
	"kontaktow", "kontaktuj", "doradza", "wspiera", "współprac", "wspolprac",
	"managed", "developed", "created", "implemented", "designed", "led ",
	"built", "maintained", "coordinated", "negotiated", "handled", "prepared",
}

var listLabelRe = regexp.MustCompile(`(?m)^(zakres|obowiązki|obowiazki|zadania|czynności|czynnosci|responsibilities|duties|tasks)\s*:(.+)$`)

// detectActions: verb-stem vocabulary, two or more bullet lines, or a labelled
// comma/semicolon-delimited list of action nouns.
func detectActions(lower string, lines []string) (ok bool) {
	for _, stem := range actionVerbStems {
		if strings.Contains(lower, stem) {
			return true
		}
	}

	bullets := 0
	for _, line := range lines {
		if bulletLineRe.MatchString(strings.TrimSpace(line)) {
			bullets++
		}
	}
	if bullets >= 2 {
		return true
	}

	for _, m := range listLabelRe.FindAllStringSubmatch(lower, -1) {
		if strings.Count(m[2], ",")+strings.Count(m[2], ";") >= 2 {
			return true
		}
	}
	return false
}

var bulletLineRe = regexp.MustCompile(`^[-*•·–—]\s`)

var scaleUnitVocabulary = []string{
	"klient", "zamówie", "zamowie", "zlece", "projekt", "osób", "osob",
	"osobowy", "pracownik", "zespoł", "zespol", "zespół", "sztuk", "szt.",
	"paczek", "przesył", "przesyl", "faktur", "ofert", "połącze", "polacze",
	"telefon", "spotka", "wizyt", "transakc", "umów", "umow", "produkt",
	"miesięcznie", "miesiecznie", "tygodniowo", "dziennie", "rocznie",
	"kwartalnie", "pln", "zł", " zl", "eur", "usd", "tys.", "tys ", "mln", "%",
	"users", "orders", "clients", "customers", "deals", "calls", "tickets",
	"per month", "per week", "per day", "daily", "weekly", "monthly", "annually",
}

// detectScale: a non-date number co-occurring with volume/frequency/unit
// vocabulary on the same line, an explicit "skala:" label, or a bare number
// >= 10 adjacent to a noun.
func detectScale(lines []string) (ok bool) {
	for _, line := range lines {
		if strings.Contains(line, "skala:") || strings.Contains(line, "scale:") {
			return true
		}
		numbers := nonDateNumbers(line)
		if len(numbers) == 0 {
			continue
		}
		for _, unit := range scaleUnitVocabulary {
			if strings.Contains(line, unit) {
				return true
			}
		}
		for _, n := range numbers {
			if n.value >= 10 && n.nounAdjacent {
				return true
			}
		}
	}
	return false
}

var kpiVocabulary = []string{
	"sprzedaż", "sprzedaz", "przychód", "przychod", "przychody", "obrót",
	"obrot", "obroty", "konwersj", "wzrost", "spadek", "redukcj",
	"oszczędnoś", "oszczednos", "marż", "marza", "zysk", "rentownoś",
	"rentownos", "skutecznoś", "skutecznos", "efektywnoś", "efektywnos",
	"realizacja planu", "realizacja celu", "wynik", "kpi", "target",
	"revenue", "growth", "churn", "retention", "nps", "ctr", "roi",
	"conversion", "profit", "quota",
}

var (
	deltaRe   = regexp.MustCompile(`(?:\bz|\bfrom)\s+\d+(?:[.,]\d+)?\s*%?\s+(?:do|to)\s+\d+(?:[.,]\d+)?\s*%?`)
	changeRe  = regexp.MustCompile(`(?:[+-]|\bo\s)\s?\d+(?:[.,]\d+)?\s*(?:%|p\.p\.|pp\b|pkt)`)
	percentRe = regexp.MustCompile(`\d+(?:[.,]\d+)?\s*%`)
)

// detectResult requires a hard signal: KPI vocabulary co-occurring with a
// number, or an explicit numeric delta. Soft phrases ("met the plan",
// "healthy pipeline") without a concrete metric do not count.
func detectResult(lower string, lines []string) (ok bool) {
	if deltaRe.MatchString(lower) || changeRe.MatchString(lower) {
		return true
	}
	for _, line := range lines {
		if len(nonDateNumbers(line)) == 0 && !percentRe.MatchString(line) {
			continue
		}
		for _, kpi := range kpiVocabulary {
			if strings.Contains(line, kpi) {
				return true
			}
		}
	}
	return false
}

var ceilingPhrases = []string{
	"100%", "100 %", "zero incydentów", "zero incydentow", "zero reklamacji",
	"zero błędów", "zero bledow", "zero opóźnień", "zero opoznien",
	"zawsze na czas", "bez opóźnień", "bez opoznien", "bezbłędnie",
	"bezblednie", "zero incidents", "zero defects", "always on time",
	"no incidents",
}

// detectCeiling finds outcome statements already at a natural maximum or
// minimum; they count as a result without requiring a baseline.
func detectCeiling(lower string) (ok bool) {
	for _, phrase := range ceilingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

var contextVocabulary = []string{
	"rok do roku", "r/r", "rdr", "year over year", "year-over-year", "yoy",
	"m/m", "mdm", "miesiąc do miesiąca", "miesiac do miesiaca", "vs ",
	"versus", "w porównaniu", "w porownaniu", "względem", "wzgledem",
	"poprzedni okres", "poprzedniego okresu", "poprzedniego roku",
	"previous period", "previous year", "wobec ", "compared to", "baseline",
	"średnia zespołu", "srednia zespolu", "team average",
}

// detectContext looks for an explicit baseline-to-outcome delta, a
// period-over-period comparator, or relative-comparison language.
func detectContext(lower string) (ok bool) {
	if deltaRe.MatchString(lower) {
		return true
	}
	for _, phrase := range contextVocabulary {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

var processVocabulary = []string{
	"prospecting", "kwalifikacj", "cold call", "cold mail", "zimne telefony",
	"follow-up", "follow up", "domykanie", "domknięcie", "domkniecie",
	"lejek", "pipeline", "generowanie leadów", "generowanie leadow",
	"networking", "polecenia", "rekomendacje", "targi", "linkedin",
	"umawianie spotkań", "umawianie spotkan", "prezentacja oferty",
	"negocjacj", "finalizacj", "onboarding klienta",
}

var numberedStepRe = regexp.MustCompile(`^\d{1,2}[.)]\s`)

// detectProcess: multi-stage acquisition vocabulary (two distinct stages) or
// explicit numbered steps.
func detectProcess(lower string, lines []string) (ok bool) {
	stages := 0
	for _, stage := range processVocabulary {
		if strings.Contains(lower, stage) {
			stages++
			if stages >= 2 {
				return true
			}
		}
	}

	steps := 0
	for _, line := range lines {
		if numberedStepRe.MatchString(strings.TrimSpace(line)) {
			steps++
		}
	}
	ok = steps >= 2
	return ok
}

var numberRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

type numberMatch struct {
	value        float64
	nounAdjacent bool
}

// nonDateNumbers extracts numbers from a line, skipping anything that is part
// of a date token: MM.YYYY forms and standalone 19xx/20xx years.
func nonDateNumbers(line string) (numbers []numberMatch) {
	for _, loc := range numberRe.FindAllStringIndex(line, -1) {
		token := line[loc[0]:loc[1]]
		if isDatePart(line, loc[0], loc[1], token) {
			continue
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
		if err != nil {
			continue
		}
		numbers = append(numbers, numberMatch{
			value:        value,
			nounAdjacent: followedByWord(line[loc[1]:]),
		})
	}
	return numbers
}

func isDatePart(line string, start, end int, token string) (ok bool) {
	// MM.YYYY parses as one numeric token ("03.2021" -> 3.2021); detect the
	// four-digit fraction.
	if dotted := strings.SplitN(strings.ReplaceAll(token, ",", "."), ".", 2); len(dotted) == 2 && len(dotted[1]) == 4 {
		return true
	}
	if len(token) == 4 && (strings.HasPrefix(token, "19") || strings.HasPrefix(token, "20")) {
		return true
	}
	// A number glued to a date separator, e.g. the "03" in "03.2021".
	if end < len(line) && line[end] == '.' && end+5 <= len(line) && allDigits(line[end+1:end+5]) {
		return true
	}
	_ = start
	return false
}

func allDigits(s string) (ok bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	ok = s != ""
	return ok
}

func followedByWord(rest string) (ok bool) {
	trimmed := strings.TrimLeft(rest, " \t")
	if trimmed == "" {
		return false
	}
	r := []rune(trimmed)[0]
	ok = (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127
	return ok
}
