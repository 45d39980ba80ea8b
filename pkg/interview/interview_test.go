package interview

import (
	"strings"
	"testing"

	"github.com/bkrawczyk/cv-coach/pkg/domain"
	"github.com/bkrawczyk/cv-coach/pkg/facts"
)

func TestIsDecline(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"nie wiem", true},
		{"Nie pamiętam dokładnie", true},
		{"nie", true},
		{"...", true},
		{"skip", true},
		{"n/a", true},
		{"Nie wiem dokładnie, ale około 50", false},
		{"Pozyskiwałem klientów przez polecenia i targi branżowe", false},
		{"Około pięćdziesięciu klientów miesięcznie", false},
	}
	for _, c := range cases {
		if got := IsDecline(c.text); got != c.want {
			t.Errorf("IsDecline(%q) = %v, expected %v", c.text, got, c.want)
		}
	}
}

func TestAskTagRoundTrip(t *testing.T) {
	tag := AskTag(KindScale, "sprzedawca012020122021", true)
	if tag != "ask:scale:sprzedawca012020122021:start" {
		t.Errorf("Unexpected tag: %q", tag)
	}

	kind, key, start, ok := ParseAskTag(tag)
	if !ok {
		t.Fatal("Expected tag to parse")
	}
	if kind != KindScale || key != "sprzedawca012020122021" || !start {
		t.Errorf("Round trip mismatch: %s %s %v", kind, key, start)
	}

	kind, key, start, ok = ParseAskTag(AskTag(KindActions, "k1", false))
	if !ok || kind != KindActions || key != "k1" || start {
		t.Errorf("Non-start round trip mismatch: %s %s %v %v", kind, key, start, ok)
	}
}

func TestParseAskTagRejectsOtherShapes(t *testing.T) {
	for _, tag := range []string{"", "audit", "onboarding", "rewrite:k1", "ask:bogus:k1", "ask:scale", "ask:scale:k1:start:extra"} {
		if _, _, _, ok := ParseAskTag(tag); ok {
			t.Errorf("Expected %q rejected", tag)
		}
	}
}

func TestParseRewriteTag(t *testing.T) {
	key, ok := ParseRewriteTag(RewriteTag("k1"))
	if !ok || key != "k1" {
		t.Errorf("Expected k1, got %q %v", key, ok)
	}
	if _, ok = ParseRewriteTag("ask:scale:k1"); ok {
		t.Error("Expected ask tag rejected")
	}
	if _, ok = ParseRewriteTag("rewrite:"); ok {
		t.Error("Expected empty key rejected")
	}
}

func TestTagRoleKey(t *testing.T) {
	if key, ok := TagRoleKey("ask:actions:k7:start"); !ok || key != "k7" {
		t.Errorf("Expected k7, got %q %v", key, ok)
	}
	if key, ok := TagRoleKey("rewrite:k9"); !ok || key != "k9" {
		t.Errorf("Expected k9, got %q %v", key, ok)
	}
	if _, ok := TagRoleKey(TagAudit); ok {
		t.Error("Expected audit tag to carry no role key")
	}
}

func TestRebuild(t *testing.T) {
	transcript := []Turn{
		// An earlier interview of the same role; superseded by the later start.
		{Speaker: SpeakerAssistant, Text: "q", Tag: AskTag(KindActions, "k1", true)},
		{Speaker: SpeakerUser, Text: "stara odpowiedź do pominięcia"},

		// Current window.
		{Speaker: SpeakerAssistant, Text: "q", Tag: AskTag(KindActions, "k1", true)},
		{Speaker: SpeakerUser, Text: "Pozyskiwanie klientów i prezentacje oferty"},
		{Speaker: SpeakerAssistant, Text: "q", Tag: AskTag(KindScale, "k1", false)},
		{Speaker: SpeakerUser, Text: "nie wiem"},
		{Speaker: SpeakerAssistant, Text: "q", Tag: AskTag(KindResult, "k1", false)},
		{Speaker: SpeakerUser, Text: "Realizacja planu na 110%"},
	}

	st := Rebuild(transcript, "k1")

	if st.TotalAsked != 3 {
		t.Errorf("Expected 3 questions in window, got %d", st.TotalAsked)
	}
	if st.Asked[KindActions] != 1 || st.Asked[KindScale] != 1 || st.Asked[KindResult] != 1 {
		t.Errorf("Unexpected ask counts: %+v", st.Asked)
	}
	if st.Declined[KindScale] != 1 {
		t.Errorf("Expected one scale decline, got %+v", st.Declined)
	}
	if !st.Latched[KindResult] {
		t.Error("Expected result latched after direct answer")
	}
	if len(st.Answers) != 2 {
		t.Fatalf("Expected 2 answers (decline excluded), got %d: %v", len(st.Answers), st.Answers)
	}
	if st.Answers[0] != "Pozyskiwanie klientów i prezentacje oferty" {
		t.Errorf("Unexpected first answer: %q", st.Answers[0])
	}
}

func TestRebuildWindowClosesOnForeignTag(t *testing.T) {
	transcript := []Turn{
		{Speaker: SpeakerAssistant, Text: "q", Tag: AskTag(KindActions, "k1", true)},
		{Speaker: SpeakerUser, Text: "Obsługa zamówień hurtowych"},
		{Speaker: SpeakerAssistant, Text: "rewrite", Tag: RewriteTag("k2")},
		{Speaker: SpeakerUser, Text: "odpowiedź po zamknięciu okna, 999 sztuk"},
	}

	st := Rebuild(transcript, "k1")
	if st.TotalAsked != 1 {
		t.Errorf("Expected 1 question, got %d", st.TotalAsked)
	}
	if len(st.Answers) != 1 {
		t.Errorf("Expected turns after the foreign tag ignored, got %v", st.Answers)
	}
}

func TestRebuildUnknownRole(t *testing.T) {
	st := Rebuild([]Turn{{Speaker: SpeakerAssistant, Tag: TagAudit}}, "missing")
	if st.TotalAsked != 0 || len(st.Answers) != 0 {
		t.Errorf("Expected zero state for unknown role, got %+v", st)
	}
}

func TestClosed(t *testing.T) {
	st := NewState()
	if st.Closed(KindActions) {
		t.Error("Expected fresh kind open")
	}

	st.Declined[KindActions] = 1
	if !st.Closed(KindActions) {
		t.Error("Expected one decline to close the kind")
	}

	st = NewState()
	st.Asked[KindScale] = 2
	if !st.Closed(KindScale) {
		t.Error("Expected two askings to close the kind")
	}
}

func TestNextPriorityOrder(t *testing.T) {
	st := NewState()

	kind, ask := Next(facts.FactSet{}, st, false)
	if !ask || kind != KindActions {
		t.Errorf("Expected actions first, got %s %v", kind, ask)
	}

	kind, ask = Next(facts.FactSet{HasActions: true}, st, false)
	if !ask || kind != KindScale {
		t.Errorf("Expected scale second, got %s %v", kind, ask)
	}

	kind, ask = Next(facts.FactSet{HasActions: true, HasScale: true, NeedsProcess: true}, st, true)
	if !ask || kind != KindProcess {
		t.Errorf("Expected process before result for acquisition roles, got %s %v", kind, ask)
	}

	// Process need is ignored when the domain is not acquisition-relevant.
	kind, ask = Next(facts.FactSet{HasActions: true, HasScale: true, NeedsProcess: true}, st, false)
	if !ask || kind != KindResult {
		t.Errorf("Expected result when process is irrelevant, got %s %v", kind, ask)
	}

	kind, ask = Next(facts.FactSet{HasActions: true, HasScale: true, HasResult: true, NeedsContext: true}, st, false)
	if !ask || kind != KindContext {
		t.Errorf("Expected context last, got %s %v", kind, ask)
	}

	_, ask = Next(facts.FactSet{HasActions: true, HasScale: true, HasResult: true}, st, false)
	if ask {
		t.Error("Expected no question when nothing is missing")
	}
}

func TestNextSkipsClosedKinds(t *testing.T) {
	st := NewState()
	st.Declined[KindActions] = 1
	st.TotalAsked = 1

	kind, ask := Next(facts.FactSet{}, st, false)
	if !ask || kind != KindScale {
		t.Errorf("Expected declined actions skipped, got %s %v", kind, ask)
	}
}

func TestNextHardCap(t *testing.T) {
	st := NewState()
	st.TotalAsked = MaxQuestions

	_, ask := Next(facts.FactSet{}, st, true)
	if ask {
		t.Error("Expected no question at the hard cap")
	}
}

func TestNextAppliesLatches(t *testing.T) {
	st := NewState()
	st.Latched[KindResult] = true

	// The latched result is treated as present; only context remains.
	kind, ask := Next(facts.FactSet{HasActions: true, HasScale: true}, st, false)
	if !ask || kind != KindContext {
		t.Errorf("Expected context after latched result, got %s %v", kind, ask)
	}

	st.Latched[KindContext] = true
	_, ask = Next(facts.FactSet{HasActions: true, HasScale: true}, st, false)
	if ask {
		t.Error("Expected no question when both result and context are latched")
	}
}

func TestQuestion(t *testing.T) {
	generic := Question(KindScale, domain.Generic, "Magazynier")
	if generic == "" {
		t.Fatal("Expected non-empty question")
	}
	if !strings.Contains(generic, "Magazynier") {
		t.Errorf("Expected role title in question, got %q", generic)
	}

	sales := Question(KindScale, domain.Sales, "Handlowiec")
	if sales == Question(KindScale, domain.Generic, "Handlowiec") {
		t.Error("Expected domain override to differ from generic wording")
	}
	if !strings.Contains(sales, "Handlowiec") {
		t.Errorf("Expected role title in domain question, got %q", sales)
	}

	// Kinds without a domain override fall back to the generic template.
	process := Question(KindProcess, domain.Sales, "Handlowiec")
	if !strings.Contains(process, "Handlowiec") {
		t.Errorf("Expected generic fallback to carry the title, got %q", process)
	}
}
