package interview

// State is the per-role interview bookkeeping, scoped to the conversation
// window since the role's last start marker. It is rebuilt from the transcript
// on every turn and never stored: the same transcript always reproduces the
// same State.
type State struct {
	Asked      map[FactKind]int
	Declined   map[FactKind]int
	TotalAsked int

	// Latched kinds were answered (non-decline) directly after their question
	// and count as present even when pattern detection misses them.
	Latched map[FactKind]bool

	// Answers holds every non-declining user reply in the window; the fact
	// analyzer unions them with the role text.
	Answers []string
}

// NewState returns an all-zero interview state.
func NewState() (st State) {
	st = State{
		Asked:    make(map[FactKind]int),
		Declined: make(map[FactKind]int),
		Latched:  make(map[FactKind]bool),
	}
	return st
}

// Rebuild derives the interview state for roleKey from the transcript. The
// window opens at the role's most recent start-marked question and closes at
// the first tag scoped elsewhere (another role, an audit, a rewrite).
func Rebuild(transcript []Turn, roleKey string) (st State) {
	st = NewState()

	start := -1
	for i, turn := range transcript {
		if turn.Speaker != SpeakerAssistant {
			continue
		}
		if _, key, isStart, ok := ParseAskTag(turn.Tag); ok && key == roleKey && isStart {
			start = i
		}
	}
	if start < 0 {
		return st
	}

	var lastAsked FactKind
	awaiting := false
	for i := start; i < len(transcript); i++ {
		turn := transcript[i]
		if turn.Speaker == SpeakerAssistant {
			kind, key, _, ok := ParseAskTag(turn.Tag)
			if ok && key == roleKey {
				st.Asked[kind]++
				st.TotalAsked++
				lastAsked = kind
				awaiting = true
				continue
			}
			if turn.Tag != "" {
				// Window closed by an audit, a rewrite, or another role.
				break
			}
			continue
		}

		// User turn.
		if awaiting && IsDecline(turn.Text) {
			st.Declined[lastAsked]++
			awaiting = false
			continue
		}
		if !IsDecline(turn.Text) {
			st.Answers = append(st.Answers, turn.Text)
			if awaiting && (lastAsked == KindResult || lastAsked == KindContext) {
				st.Latched[lastAsked] = true
			}
		}
		awaiting = false
	}

	return st
}

// Closed reports whether a fact kind may no longer be asked: one decline or
// two askings close it.
func (st State) Closed(kind FactKind) (closed bool) {
	closed = st.Declined[kind] >= 1 || st.Asked[kind] >= maxAskPerKind
	return closed
}
