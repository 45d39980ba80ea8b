package interview

import (
	"github.com/bkrawczyk/cv-coach/pkg/facts"
)

const (
	// MaxQuestions is the hard cap of questions per role; reaching it forces
	// the rewrite regardless of remaining gaps.
	MaxQuestions = 6

	maxAskPerKind = 2
)

// Next walks the fixed priority order Actions -> Scale -> Process (when the
// domain is acquisition-relevant) -> Result -> Context and returns the first
// fact kind that is still missing and not closed. ask is false when the role
// is ready for rewriting.
func Next(fs facts.FactSet, st State, acquisitionRelevant bool) (kind FactKind, ask bool) {
	fs = applyLatches(fs, st)

	if st.TotalAsked >= MaxQuestions {
		return kind, false
	}

	checks := []struct {
		kind    FactKind
		missing bool
	}{
		{KindActions, !fs.HasActions},
		{KindScale, !fs.HasScale},
		{KindProcess, acquisitionRelevant && fs.NeedsProcess},
		{KindResult, !fs.HasResult},
		{KindContext, fs.NeedsContext},
	}

	for _, check := range checks {
		if check.missing && !st.Closed(check.kind) {
			return check.kind, true
		}
	}
	return kind, false
}

// applyLatches overlays conversational latches on the pattern-derived FactSet:
// a non-declining answer to a Result or Context question marks the fact
// present even when text patterns miss it, preventing infinite re-asking.
func applyLatches(fs facts.FactSet, st State) (out facts.FactSet) {
	out = fs
	if st.Latched[KindResult] && !out.HasResult {
		out.HasResult = true
		out.NeedsContext = !out.HasContext
	}
	if st.Latched[KindContext] {
		out.HasContext = true
		out.NeedsContext = false
	}
	return out
}
