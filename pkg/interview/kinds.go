// Package interview drives the per-role question loop: it rebuilds interview
// state from the conversation transcript, classifies declines, and walks the
// fixed fact-kind priority order until the role is ready for rewriting.
package interview

import (
	"strings"
)

// FactKind is one category of missing information tracked per role.
type FactKind string

// Fact kinds in interview priority order.
const (
	KindActions FactKind = "actions"
	KindScale   FactKind = "scale"
	KindProcess FactKind = "process"
	KindResult  FactKind = "result"
	KindContext FactKind = "context"
)

// ParseFactKind parses a fact-kind token from a turn tag.
func ParseFactKind(s string) (kind FactKind, ok bool) {
	switch FactKind(strings.ToLower(s)) {
	case KindActions, KindScale, KindProcess, KindResult, KindContext:
		kind = FactKind(strings.ToLower(s))
		ok = true
	}
	return kind, ok
}

// Speaker identifies who produced a transcript turn.
type Speaker string

// Transcript speakers.
const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one entry of the conversation transcript, supplied wholesale on
// every request. Tag carries the machine-readable marker attached to every
// assistant turn, so state reconstruction never re-parses generated question
// prose.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
	Tag     string  `json:"tag,omitempty"`
}
