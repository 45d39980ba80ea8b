package segment

import (
	"strings"
)

// DateRange holds the raw tokens of an employment period. End keeps the
// open-ended marker word ("obecnie", "present") verbatim when Open is set.
type DateRange struct {
	Start string
	End   string
	Open  bool
}

// String renders the canonical "start – end" form used across the UI.
func (r DateRange) String() (s string) {
	switch {
	case r.Start == "" && r.End == "":
		s = ""
	case r.End == "":
		s = r.Start
	case r.Start == "":
		s = r.End
	default:
		s = r.Start + " – " + r.End
	}
	return s
}

// RoleBlock is one job entry carved out of normalized experience text. It is
// immutable once produced; RawText keeps the full source span for verbatim
// quoting in the rewrite output.
type RoleBlock struct {
	Title     string
	Company   string
	Dates     DateRange
	BodyLines []string
	RawText   string
}

// Key returns the normalized identity of the block: diacritic-stripped,
// lowercase, alphanumeric-only title plus date range. Blocks sharing a key are
// duplicates.
func (b RoleBlock) Key() (key string) {
	key = NormalizeKey(b.Title, b.Dates)
	return key
}

// Segment partitions normalized experience text into ordered role blocks.
// It is total: unparseable input yields an empty slice, never an error.
func Segment(normalized string) (blocks []RoleBlock) {
	lines := strings.Split(normalized, "\n")

	var current *RoleBlock
	var rawLines []string

	flush := func() {
		if current == nil {
			return
		}
		finishBlock(current, rawLines)
		blocks = append(blocks, *current)
		current = nil
		rawLines = nil
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}

		if isHeaderLine(line, next) {
			flush()
			block := parseHeader(line)
			rawLines = []string{line}
			if block.Dates == (DateRange{}) && isDateRangeLine(next) {
				block.Dates = parseDateRange(next)
				rawLines = append(rawLines, next)
				i++
			}
			current = &block
			continue
		}

		if current != nil {
			rawLines = append(rawLines, line)
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				current.BodyLines = append(current.BodyLines, trimmed)
			}
		}
	}
	flush()

	blocks = collapseDuplicates(blocks)
	return blocks
}

// finishBlock resolves the implicit open-ended range: a header carrying only a
// start date whose first body line begins with an open marker word runs to the
// present.
func finishBlock(block *RoleBlock, rawLines []string) {
	block.RawText = strings.TrimRight(strings.Join(rawLines, "\n"), "\n")
	if block.Title == "" {
		block.Title = strings.TrimSpace(rawLines[0])
	}

	if block.Dates.Start != "" && block.Dates.End == "" && !block.Dates.Open && len(block.BodyLines) > 0 {
		if m := openTokenRe.FindString(block.BodyLines[0]); m != "" {
			block.Dates.End = strings.ToLower(m)
			block.Dates.Open = true
		}
	}
}

// collapseDuplicates drops blocks whose normalized key was already seen,
// keeping the first occurrence.
func collapseDuplicates(blocks []RoleBlock) (unique []RoleBlock) {
	seen := make(map[string]bool, len(blocks))
	for _, block := range blocks {
		key := block.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, block)
	}
	return unique
}

// parseHeader parses the one-line form "Title − Company[, City] | MM.YYYY – MM.YYYY"
// as well as plain dash-separated headers without an inline range.
func parseHeader(line string) (block RoleBlock) {
	rest := strings.TrimSpace(line)

	if loc := dateRangeRe.FindStringIndex(rest); loc != nil {
		block.Dates = parseDateRange(rest[loc[0]:loc[1]])
		rest = strings.TrimRight(strings.TrimSpace(rest[:loc[0]]), "|-–—@ \t")
		rest = strings.TrimSpace(rest)
	} else if locs := dateTokenRe.FindAllStringIndex(rest, -1); len(locs) > 0 && locs[len(locs)-1][1] == len(rest) {
		// Header ending in a lone start date.
		loc := locs[len(locs)-1]
		block.Dates = DateRange{Start: rest[loc[0]:loc[1]]}
		rest = strings.TrimRight(strings.TrimSpace(rest[:loc[0]]), "|-–—@ \t")
		rest = strings.TrimSpace(rest)
	}

	left, right, found := splitTitleCompany(rest)
	if !found {
		block.Title = rest
		return block
	}

	// A scoring pass decides which side is the title; generators of CV text
	// put the company first about as often as last.
	if titleScore(right) > titleScore(left) {
		left, right = right, left
	}
	block.Title = left
	block.Company = stripTrailingCity(right)
	return block
}

func splitTitleCompany(rest string) (left, right string, found bool) {
	loc := dashSepRe.FindStringIndex(rest)
	if loc == nil {
		return rest, "", false
	}
	left = strings.TrimSpace(rest[:loc[0]])
	right = strings.TrimSpace(rest[loc[1]:])
	found = left != "" && right != ""
	if !found {
		left = rest
		right = ""
	}
	return left, right, found
}

// titleScore rates how much a header side reads as a job title: job-title
// vocabulary, shortness, and the absence of commas and legal entity suffixes.
func titleScore(side string) (score int) {
	if side == "" {
		return -1
	}
	if hasJobKeyword(side) {
		score += 3
	}
	if len(strings.Fields(side)) <= 4 {
		score++
	}
	if !strings.Contains(side, ",") {
		score++
	}
	if !hasLegalSuffix(side) {
		score += 2
	}
	return score
}

// stripTrailingCity removes a ", City" tail from a company side when the tail
// is one or two capitalized words without digits.
func stripTrailingCity(company string) (out string) {
	out = company
	idx := strings.LastIndex(out, ",")
	if idx < 0 {
		return out
	}
	tail := strings.Fields(strings.TrimSpace(out[idx+1:]))
	if len(tail) == 0 || len(tail) > 2 {
		return out
	}
	for _, w := range tail {
		if !startsUpper(w) || strings.ContainsAny(w, "0123456789") {
			return out
		}
	}
	out = strings.TrimSpace(out[:idx])
	return out
}

func parseDateRange(s string) (r DateRange) {
	m := dateRangeRe.FindStringSubmatch(s)
	if m == nil {
		if tok := dateTokenRe.FindString(s); tok != "" {
			r.Start = tok
		}
		return r
	}
	r.Start = m[1]
	r.End = m[2]
	if !strings.ContainsAny(r.End, "0123456789") {
		r.End = strings.ToLower(r.End)
		r.Open = true
	}
	return r
}
