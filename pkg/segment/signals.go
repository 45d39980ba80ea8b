package segment

import (
	"regexp"
	"strings"
	"unicode"
)

// headerSignals is the set of weak signals a header-line decision combines.
// Each predicate is named and individually testable; isHeaderLine composes
// them into the acceptance lattice instead of one monolithic rule.
type headerSignals struct {
	// Hard rejections.
	bullet          bool
	lowerStart      bool
	actionSentence  bool
	bareCompanyCity bool

	// Weak acceptance signals.
	dash            bool
	legalSuffix     bool
	allCaps         bool
	jobKeyword      bool
	titleCase       bool
	nextIsDateRange bool
	inlineDateRange bool

	length int
}

const (
	maxHeaderLen     = 90
	compactHeaderLen = 60
)

var legalSuffixes = []string{
	"sp. z o.o.", "sp. z o. o.", "sp z o.o.", "spółka z o.o.", "spolka z o.o.",
	"s.a.", "sp.j.", "sp. j.", "sp.k.", "sp. k.", "s.c.", "p.s.a.",
	"gmbh", "ltd", "llc", "inc.", "inc,", " inc", "b.v.", "a.g.", "plc", "oy", "s.r.o.",
}

var jobTitleKeywords = []string{
	"specjalista", "specjalistka", "starszy specjalista", "młodszy specjalista",
	"kierownik", "kierowniczka", "dyrektor", "manager", "menedżer", "menadżer",
	"koordynator", "koordynatorka", "asystent", "asystentka", "konsultant",
	"doradca", "handlowiec", "przedstawiciel", "analityk", "programista",
	"inżynier", "inzynier", "tester", "projektant", "grafik", "architekt",
	"lider", "właściciel", "wlasciciel", "założyciel", "zalozyciel", "wspólnik",
	"stażysta", "praktykant", "ekspedient", "sprzedawca", "magazynier",
	"księgowa", "ksiegowa", "księgowy", "rekruter",
	"specialist", "engineer", "developer", "designer", "consultant", "analyst",
	"director", "head of", "lead", "senior", "junior", "intern", "owner",
	"founder", "officer", "coordinator", "administrator", "account",
	"representative", "executive",
}

var actionVerbStems = []string{
	"zarządza", "zarzadza", "odpowiada", "prowadz", "tworz", "twórz",
	"wdraża", "wdraza", "wdroż", "wdroz", "obsług", "obslug", "koordynow",
	"koordynuj", "pozyskiw", "pozyskuj", "realizow", "realizuj", "przygotow",
	"opracow", "negocjow", "negocjuj", "sprzedaw", "analizow", "analizuj",
	"planow", "planuj", "organizow", "organizuj", "nadzorow", "nadzoruj",
	"budow", "buduj", "rekrutow", "szkol", "testow", "testuj", "projektow",
	"raportow", "raportuj", "wspiera", "współprac", "wspolprac", "dbał", "dbal",
	"managed", "manage", "developed", "develop", "created", "create", "led",
	"leads", "built", "build", "implemented", "implement", "designed",
	"responsible", "maintained", "coordinated", "handled",
}

var (
	bulletRe       = regexp.MustCompile(`^[-*•·–—>]\s`)
	numberedRe     = regexp.MustCompile(`^\d{1,2}[.)]\s`)
	dashSepRe      = regexp.MustCompile(`\s[-–—|]\s|\s@\s`)
	dateTokenRe    = regexp.MustCompile(`\d{1,2}\.(?:19|20)\d{2}|(?:19|20)\d{2}`)
	dateRangeRe    = regexp.MustCompile(`(\d{1,2}\.(?:19|20)\d{2}|(?:19|20)\d{2})\s*[-–—]\s*(\d{1,2}\.(?:19|20)\d{2}|(?:19|20)\d{2}|(?i:obecnie|present|nadal|teraz|now|current))`)
	dateOnlyLineRe = regexp.MustCompile(`^\W*(\d{1,2}\.(?:19|20)\d{2}|(?:19|20)\d{2})(\s*[-–—]\s*(\d{1,2}\.(?:19|20)\d{2}|(?:19|20)\d{2}|(?i:obecnie|present|nadal|teraz|now|current)))?\W*$`)
	openTokenRe    = regexp.MustCompile(`^(?i:obecnie|present|nadal|teraz|now|current)\b`)
)

func collectSignals(line, next string) (s headerSignals) {
	trimmed := strings.TrimSpace(line)
	s.length = len([]rune(trimmed))

	s.bullet = bulletRe.MatchString(trimmed) || numberedRe.MatchString(trimmed)
	s.lowerStart = startsLowerOrDigit(trimmed)
	s.actionSentence = isActionSentence(trimmed)
	s.bareCompanyCity = isBareCompanyCity(trimmed)

	s.dash = dashSepRe.MatchString(trimmed)
	s.legalSuffix = hasLegalSuffix(trimmed)
	s.allCaps = isAllCapsLine(trimmed)
	s.jobKeyword = hasJobKeyword(trimmed)
	s.titleCase = titleCaseRatio(trimmed) >= 0.5
	s.nextIsDateRange = isDateRangeLine(next)
	s.inlineDateRange = dateRangeRe.MatchString(trimmed)

	return s
}

// isHeaderLine is the documented priority lattice over the weak signals.
func isHeaderLine(line, next string) (ok bool) {
	s := collectSignals(line, next)

	if s.length == 0 || s.bullet || s.lowerStart || s.actionSentence || s.bareCompanyCity {
		return false
	}

	anyTitleSignal := s.dash || s.legalSuffix || s.allCaps || s.jobKeyword || s.titleCase

	switch {
	case s.nextIsDateRange && s.length <= maxHeaderLen && anyTitleSignal:
		ok = true
	case s.inlineDateRange && s.dash && (s.legalSuffix || s.allCaps || (s.jobKeyword && s.titleCase)):
		ok = true
	case s.dash && s.legalSuffix:
		ok = true
	case s.dash && s.jobKeyword && s.length <= compactHeaderLen && (s.allCaps || s.titleCase):
		ok = true
	}
	return ok
}

func startsLowerOrDigit(line string) (ok bool) {
	for _, r := range line {
		// A leading date token means a date line, not a lowercase sentence;
		// still not a header, so reject it here as well.
		ok = unicode.IsLower(r) || unicode.IsDigit(r)
		return ok
	}
	return false
}

// isActionSentence detects lines that read as a description of work
// ("Zarządzanie zespołem...", "Managed a team of...") rather than a header.
func isActionSentence(line string) (ok bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}
	first := fields[0]
	for _, stem := range actionVerbStems {
		if strings.HasPrefix(first, stem) {
			return true
		}
	}
	return false
}

// isBareCompanyCity catches "Firma XYZ Sp. z o.o., Warszawa" standing alone:
// a company-with-city line that belongs to the block above, not a new header.
func isBareCompanyCity(line string) (ok bool) {
	if dashSepRe.MatchString(line) || dateTokenRe.MatchString(line) {
		return false
	}
	if strings.Count(line, ",") != 1 {
		return false
	}
	parts := strings.SplitN(line, ",", 2)
	city := strings.Fields(strings.TrimSpace(parts[1]))
	if len(city) == 0 || len(city) > 2 {
		return false
	}
	for _, w := range city {
		if !startsUpper(w) {
			return false
		}
	}
	ok = hasLegalSuffix(parts[0]) || !hasJobKeyword(parts[0])
	return ok
}

func hasLegalSuffix(line string) (ok bool) {
	lower := strings.ToLower(line)
	for _, suffix := range legalSuffixes {
		if strings.Contains(lower, suffix) {
			return true
		}
	}
	return false
}

func hasJobKeyword(line string) (ok bool) {
	lower := strings.ToLower(line)
	for _, kw := range jobTitleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isAllCapsLine(line string) (ok bool) {
	letters := 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	ok = letters >= 3
	return ok
}

// titleCaseRatio is the share of significant words starting with an uppercase
// letter. Short connectors (i, w, z, ds., of, and) are not counted.
func titleCaseRatio(line string) (ratio float64) {
	var total, upper int
	for _, word := range strings.Fields(line) {
		word = strings.Trim(word, ",.()|")
		if len([]rune(word)) <= 2 || !unicode.IsLetter(firstRune(word)) {
			continue
		}
		total++
		if startsUpper(word) {
			upper++
		}
	}
	if total == 0 {
		return 0
	}
	ratio = float64(upper) / float64(total)
	return ratio
}

func isDateRangeLine(line string) (ok bool) {
	ok = dateOnlyLineRe.MatchString(strings.TrimSpace(line))
	return ok
}

func startsUpper(word string) (ok bool) {
	r := firstRune(word)
	ok = unicode.IsUpper(r)
	return ok
}

func firstRune(s string) (r rune) {
	for _, c := range s {
		return c
	}
	return 0
}
