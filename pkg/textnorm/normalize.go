package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// Normalize canonicalizes whitespace, line breaks, date tokens and markdown-style
// line decorations in pasted experience text. It is total and idempotent: calling
// it on its own output returns the same string.
//
// The coarse character-level steps run twice: the line-breaking decisions in the
// middle can expose tokens (a date glued to a word, a dash range split across
// lines) that the first coarse pass could not see.
func Normalize(text string) (normalized string) {
	normalized = coarsePass(text)
	normalized = linePass(normalized)
	normalized = coarsePass(normalized)
	normalized = strings.Trim(normalized, "\n")
	return normalized
}

const denseParagraphMinLen = 120

var (
	// Date tokens: MM.YYYY, MM/YYYY or a bare 19xx/20xx year.
	dateTokenPattern = `\d{1,2}[./](?:19|20)\d{2}|(?:19|20)\d{2}`
	openTokenPattern = `(?i:obecnie|present|nadal|teraz|now|current)`

	dateRangeRe = regexp.MustCompile(`(` + dateTokenPattern + `)[ \t]*[-–—][ \t]*(` + dateTokenPattern + `|` + openTokenPattern + `)`)

	slashDateRe = regexp.MustCompile(`\b(\d{1,2})/((?:19|20)\d{2})`)

	glueLetterDateRe = regexp.MustCompile(`(\p{L})(\d{1,2}[./](?:19|20)\d{2})`)
	glueDateLetterRe = regexp.MustCompile(`(\d{1,2}[./](?:19|20)\d{2})(\p{L})`)
	glueLetterYearRe = regexp.MustCompile(`(\p{L})((?:19|20)\d{2})\b`)
	glueYearLetterRe = regexp.MustCompile(`\b((?:19|20)\d{2})(\p{L})`)
	glueDigitOpenRe  = regexp.MustCompile(`(\d)(` + openTokenPattern + `)\b`)
	glueOpenDigitRe  = regexp.MustCompile(`\b(` + openTokenPattern + `)(\d)`)

	blankRunRe = regexp.MustCompile(`\n{3,}`)

	capsAfterSentenceRe = regexp.MustCompile(`([.!?])[ \t]+(\p{Lu}[\p{Lu} ]{3,})`)

	dateRangeLineRe = regexp.MustCompile(`^[ \t]*(` + dateTokenPattern + `)[ \t]*[-–—]`)
)

// coarsePass applies the character-level normalization steps.
func coarsePass(text string) (out string) {
	out = unifyLineBreaks(text)

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		line = strings.TrimLeft(line, " \t")
		line = stripLineDecoration(line)
		line = strings.TrimRight(line, " \t")
		lines[i] = line
	}
	out = strings.Join(lines, "\n")

	out = deglueDates(out)
	out = slashDateRe.ReplaceAllString(out, "$1.$2")
	out = dateRangeRe.ReplaceAllString(out, "$1 – $2")
	out = blankRunRe.ReplaceAllString(out, "\n\n")

	return out
}

// linePass applies the line-breaking decisions. Dedupe and rejoin iterate to
// a fixpoint: merging wrapped lines can expose a consecutive duplicate, and
// dropping a duplicate can make two remaining lines adjacent and mergeable.
// Both steps only ever remove lines, so the loop terminates.
func linePass(text string) (out string) {
	out = splitDenseParagraph(text)
	for {
		prev := out
		out = dedupeConsecutiveLines(out)
		out = rejoinHardWraps(out)
		if out == prev {
			break
		}
	}
	return out
}

func unifyLineBreaks(text string) (out string) {
	out = strings.ReplaceAll(text, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "\n")
	out = strings.ReplaceAll(out, "\u2028", "\n")
	out = strings.ReplaceAll(out, "\u2029", "\n")
	return out
}

// stripLineDecoration removes whole-line italic/bold/quote wrapping. Decorations
// can be nested ("**_text_**"), so it peels until the line stops changing.
func stripLineDecoration(line string) (out string) {
	out = line
	for {
		prev := out
		out = strings.TrimLeft(out, " \t")
		for _, marker := range []string{"**", "__", "*", "_"} {
			if len(out) > 2*len(marker) && strings.HasPrefix(out, marker) && strings.HasSuffix(out, marker) {
				out = strings.TrimSuffix(strings.TrimPrefix(out, marker), marker)
			}
		}
		if strings.HasPrefix(out, "> ") {
			out = out[2:]
		} else if out == ">" {
			out = ""
		}
		if out == prev {
			break
		}
	}
	return out
}

func deglueDates(text string) (out string) {
	out = glueLetterDateRe.ReplaceAllString(text, "$1 $2")
	out = glueDateLetterRe.ReplaceAllString(out, "$1 $2")
	out = glueLetterYearRe.ReplaceAllString(out, "$1 $2")
	out = glueYearLetterRe.ReplaceAllString(out, "$1 $2")
	out = glueDigitOpenRe.ReplaceAllString(out, "$1 $2")
	out = glueOpenDigitRe.ReplaceAllString(out, "$1 $2")
	return out
}

// splitDenseParagraph handles input pasted as one big paragraph: when there are
// almost no line breaks but recognizable date ranges exist, it inserts breaks
// around each range and before all-caps section headers that follow sentence
// punctuation, so the segmenter has lines to work with.
func splitDenseParagraph(text string) (out string) {
	out = text
	if strings.Count(out, "\n") >= 3 || len([]rune(out)) <= denseParagraphMinLen {
		return out
	}
	if !dateRangeRe.MatchString(out) {
		return out
	}

	out = insertBreaksAroundRanges(out)
	out = capsAfterSentenceRe.ReplaceAllString(out, "$1\n$2")
	out = blankRunRe.ReplaceAllString(out, "\n\n")
	return out
}

func insertBreaksAroundRanges(text string) (out string) {
	matches := dateRangeRe.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		before := text[last:m[0]]
		b.WriteString(before)
		if !strings.HasSuffix(b.String(), "\n") && b.Len() > 0 {
			// Keep a header and its inline range on one line when they are
			// joined by a dash or pipe separator.
			trimmed := strings.TrimRight(before, " \t")
			if !strings.HasSuffix(trimmed, "-") && !strings.HasSuffix(trimmed, "–") &&
				!strings.HasSuffix(trimmed, "—") && !strings.HasSuffix(trimmed, "|") {
				b.WriteString("\n")
			}
		}
		b.WriteString(text[m[0]:m[1]])
		rest := text[m[1]:]
		if !strings.HasPrefix(rest, "\n") && rest != "" {
			b.WriteString("\n")
		}
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// dedupeConsecutiveLines removes exact, case- and space-insensitive consecutive
// duplicate lines, keeping the first occurrence.
func dedupeConsecutiveLines(text string) (out string) {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	prevKey := "\x00" // impossible first key
	for _, line := range lines {
		key := strings.ToLower(strings.Join(strings.Fields(line), " "))
		if key != "" && key == prevKey {
			continue
		}
		kept = append(kept, line)
		prevKey = key
	}
	return strings.Join(kept, "\n")
}

const hardWrapMaxLen = 65

// rejoinHardWraps merges continuation lines produced by hard wrapping: a short
// non-bullet, non-heading line that does not end in sentence punctuation,
// followed by a line starting with a lowercase letter, digit or opening paren.
// Runs to a fixpoint so chains of wrapped lines collapse fully.
func rejoinHardWraps(text string) (out string) {
	lines := strings.Split(text, "\n")
	for {
		merged := false
		result := make([]string, 0, len(lines))
		i := 0
		for i < len(lines) {
			curr := lines[i]
			if i+1 < len(lines) && canMergeWith(curr, lines[i+1]) {
				result = append(result, curr+" "+lines[i+1])
				i += 2
				merged = true
				continue
			}
			result = append(result, curr)
			i++
		}
		lines = result
		if !merged {
			break
		}
	}
	return strings.Join(lines, "\n")
}

func canMergeWith(curr, next string) (ok bool) {
	curr = strings.TrimRight(curr, " \t")
	if curr == "" || next == "" {
		return false
	}
	if len([]rune(curr)) > hardWrapMaxLen {
		return false
	}
	if isBulletLine(curr) || isHeadingLine(curr) || isBulletLine(next) || isHeadingLine(next) {
		return false
	}
	// A date-range line under a role header must stay on its own line, in
	// both directions.
	if dateRangeLineRe.MatchString(curr) || dateRangeLineRe.MatchString(next) {
		return false
	}
	last, _ := lastRune(curr)
	if strings.ContainsRune(".!?:;", last) {
		return false
	}
	first := firstRune(next)
	ok = unicode.IsLower(first) || unicode.IsDigit(first) || first == '('
	return ok
}

func isBulletLine(line string) (ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	for _, prefix := range []string{"- ", "* ", "• ", "· ", "– ", "— ", "> "} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	ok = numberedItemRe.MatchString(trimmed)
	return ok
}

var numberedItemRe = regexp.MustCompile(`^\d{1,2}[.)]\s`)

func isHeadingLine(line string) (ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasSuffix(trimmed, ":") {
		return true
	}
	letters := 0
	uppers := 0
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	ok = letters >= 3 && letters == uppers
	return ok
}

func firstRune(s string) (r rune) {
	for _, c := range s {
		return c
	}
	return 0
}

func lastRune(s string) (r rune, ok bool) {
	for _, c := range s {
		r = c
		ok = true
	}
	return r, ok
}
