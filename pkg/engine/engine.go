// Package engine is the transcript-in, response-out coordinator: one request
// carries the whole conversation plus the pinned experience text, one response
// carries the next assistant turn. No state survives between calls — roles,
// fact gaps and interview progress are rederived from the supplied transcript
// every time, so the same transcript always produces the same answer.
package engine

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bkrawczyk/cv-coach/pkg/domain"
	"github.com/bkrawczyk/cv-coach/pkg/facts"
	"github.com/bkrawczyk/cv-coach/pkg/guard"
	"github.com/bkrawczyk/cv-coach/pkg/interview"
	"github.com/bkrawczyk/cv-coach/pkg/llm"
	"github.com/bkrawczyk/cv-coach/pkg/segment"
	"github.com/bkrawczyk/cv-coach/pkg/textnorm"
)

// Generator is the external text-completion collaborator. llm.Client
// implements it; tests substitute fakes. A nil Generator is legal: the rewrite
// path then always uses the deterministic fallback.
type Generator interface {
	Complete(ctx context.Context, system, user string, temperature float64) (text string, err error)
}

// ResponseKind names the shape of the assistant turn being returned.
type ResponseKind string

// Response shapes.
const (
	KindOnboarding ResponseKind = "onboarding"
	KindAudit      ResponseKind = "audit"
	KindQuestion   ResponseKind = "question"
	KindRewrite    ResponseKind = "rewrite"
	KindError      ResponseKind = "error"
)

// Request is one inbound turn: the full conversation so far, the pinned raw
// experience text, and optionally an explicitly chosen role title.
type Request struct {
	Transcript []interview.Turn
	PinnedText string
	ChosenRole string
}

// Response is the next assistant turn. Tag is the machine-readable marker the
// caller must attach to the turn when it goes back into the transcript; Asked
// is set on question turns.
type Response struct {
	Kind  ResponseKind
	Text  string
	Tag   string
	Asked interview.FactKind
}

// maxRepairAttempts bounds re-invocations after structurally successful but
// invalid generator responses. Transport failures are never retried.
const maxRepairAttempts = 2

// maxAuditRoles caps the audit listing length.
const maxAuditRoles = 8

// Engine wires the pipeline together.
type Engine struct {
	gen Generator
	log *slog.Logger
}

// New creates an engine around the given generator.
func New(gen Generator, log *slog.Logger) (e *Engine) {
	if log == nil {
		log = slog.Default()
	}
	e = &Engine{
		gen: gen,
		log: log,
	}
	return e
}

// Respond computes the next assistant turn. It is total: every failure mode
// maps to a user-facing response, and the returned error is reserved for
// programming mistakes (none currently).
func (e *Engine) Respond(ctx context.Context, req Request) (resp Response, err error) {
	roles := e.parseRoles(req.PinnedText)
	if len(roles) == 0 {
		resp = Response{Kind: KindOnboarding, Text: onboardingMessage, Tag: interview.TagOnboarding}
		return resp, err
	}

	if req.ChosenRole != "" {
		role := resolveRole(roles, req.ChosenRole)
		resp = e.startRole(ctx, role)
		return resp, err
	}

	lastTag, lastTagFound := lastAssistantTag(req.Transcript)
	if !lastTagFound {
		if len(roles) == 1 {
			resp = e.startRole(ctx, roles[0])
			return resp, err
		}
		resp = e.auditResponse(roles)
		return resp, err
	}

	switch {
	case lastTag == interview.TagAudit, lastTag == interview.TagOnboarding:
		resp = e.handleSelection(ctx, req, roles)

	case isAskTag(lastTag):
		_, key, _, _ := interview.ParseAskTag(lastTag)
		resp = e.continueRole(ctx, req, roles, key)

	case isRewriteTag(lastTag):
		resp = e.advance(ctx, req, roles)

	default:
		resp = e.auditResponse(roles)
	}
	return resp, err
}

// Audit runs the offline half of the pipeline: segment the pinned text and
// report the fact gaps per role without touching the generator.
func (e *Engine) Audit(pinned string) (resp Response) {
	roles := e.parseRoles(pinned)
	if len(roles) == 0 {
		resp = Response{Kind: KindOnboarding, Text: onboardingMessage, Tag: interview.TagOnboarding}
		return resp
	}
	resp = e.auditResponse(roles)
	return resp
}

// parseRoles runs the text pipeline: optional HTML cleanup, normalization,
// segmentation.
func (e *Engine) parseRoles(pinned string) (roles []segment.RoleBlock) {
	text := pinned
	if textnorm.LooksLikeHTML(text) {
		text = textnorm.CleanHTML(text)
	}
	roles = segment.Segment(textnorm.Normalize(text))
	e.log.Debug("segmented experience text", "roles", len(roles))
	return roles
}

// startRole opens (or reopens) the interview for a role: fresh state, first
// gap question — or an immediate rewrite when nothing is missing.
func (e *Engine) startRole(ctx context.Context, role segment.RoleBlock) (resp Response) {
	d := domain.Classify(role.Title, role.RawText)
	relevant := domain.AcquisitionRelevant(d, role.RawText)
	fs := facts.Analyze(role.RawText, nil, relevant)

	kind, ask := interview.Next(fs, interview.NewState(), relevant)
	if !ask {
		resp = e.rewrite(ctx, role, nil)
		return resp
	}

	text := roleIntro(role) + "\n\n" + interview.Question(kind, d, role.Title)
	resp = Response{
		Kind:  KindQuestion,
		Text:  text,
		Tag:   interview.AskTag(kind, role.Key(), true),
		Asked: kind,
	}
	return resp
}

// continueRole advances an open interview using state rebuilt from the
// transcript window.
func (e *Engine) continueRole(ctx context.Context, req Request, roles []segment.RoleBlock, roleKey string) (resp Response) {
	role, found := roleByKey(roles, roleKey)
	if !found {
		// The pinned text changed under the conversation; start over.
		resp = e.auditResponse(roles)
		return resp
	}

	d := domain.Classify(role.Title, role.RawText)
	relevant := domain.AcquisitionRelevant(d, role.RawText)
	st := interview.Rebuild(req.Transcript, roleKey)
	fs := facts.Analyze(role.RawText, st.Answers, relevant)

	kind, ask := interview.Next(fs, st, relevant)
	if !ask {
		resp = e.rewrite(ctx, role, st.Answers)
		return resp
	}

	resp = Response{
		Kind:  KindQuestion,
		Text:  interview.Question(kind, d, role.Title),
		Tag:   interview.AskTag(kind, roleKey, false),
		Asked: kind,
	}
	return resp
}

// handleSelection interprets the user's reply to an audit listing: a role
// number or a title fragment.
func (e *Engine) handleSelection(ctx context.Context, req Request, roles []segment.RoleBlock) (resp Response) {
	choice := lastUserText(req.Transcript)
	shown := auditRoles(roles)

	if n, convErr := strconv.Atoi(strings.Trim(strings.TrimSpace(choice), ".)")); convErr == nil {
		if n >= 1 && n <= len(shown) {
			resp = e.startRole(ctx, shown[n-1])
			return resp
		}
	}

	if choice != "" {
		if role, found := matchRoleByTitle(roles, choice); found {
			resp = e.startRole(ctx, role)
			return resp
		}
	}

	resp = e.auditResponse(roles)
	return resp
}

// advance moves to the next role that has no completed rewrite yet.
func (e *Engine) advance(ctx context.Context, req Request, roles []segment.RoleBlock) (resp Response) {
	done := rewrittenKeys(req.Transcript)
	for _, role := range roles {
		if !done[role.Key()] {
			resp = e.startRole(ctx, role)
			return resp
		}
	}
	resp = Response{Kind: KindOnboarding, Text: allDoneMessage, Tag: interview.TagOnboarding}
	return resp
}

// rewrite runs the generation + guard pipeline for one role and always yields
// a well-formed document; only transport failures surface as an error
// response.
func (e *Engine) rewrite(ctx context.Context, role segment.RoleBlock, answers []string) (resp Response) {
	allowedFacts := role.RawText
	if len(answers) > 0 {
		allowedFacts += "\n" + strings.Join(answers, "\n")
	}

	if e.gen == nil {
		resp = Response{Kind: KindRewrite, Text: guard.Fallback(role, answers), Tag: interview.RewriteTag(role.Key())}
		return resp
	}

	candidate, genErr := e.gen.Complete(ctx, llm.RewriteSystemPrompt, llm.BuildRewritePrompt(role, answers), llm.RewriteTemperature)
	if genErr != nil {
		e.log.Error("generation call failed", "role", role.Title, "error", genErr)
		resp = Response{Kind: KindError, Text: generationErrorMessage, Tag: interview.TagError}
		return resp
	}

	res := guard.ValidateAndRepair(candidate, role, allowedFacts)
	for attempt := 0; !res.Valid() && attempt < maxRepairAttempts; attempt++ {
		e.log.Warn("rewrite failed validation", "role", role.Title, "attempt", attempt+1, "problems", strings.Join(res.Problems, "; "))
		repaired, repairErr := e.gen.Complete(ctx, llm.RewriteSystemPrompt,
			llm.BuildRepairPrompt(role, answers, candidate, res.Problems), llm.RepairTemperature)
		if repairErr != nil {
			// Mid-repair transport failure: the deterministic fallback keeps
			// this path from ever surfacing a raw error.
			break
		}
		candidate = repaired
		res = guard.ValidateAndRepair(candidate, role, allowedFacts)
	}

	text := res.Text
	if !res.Valid() {
		e.log.Warn("rewrite validation exhausted, using deterministic fallback", "role", role.Title)
		text = guard.Fallback(role, answers)
	}

	resp = Response{Kind: KindRewrite, Text: text, Tag: interview.RewriteTag(role.Key())}
	return resp
}

func lastAssistantTag(transcript []interview.Turn) (tag string, found bool) {
	for i := len(transcript) - 1; i >= 0; i-- {
		turn := transcript[i]
		if turn.Speaker == interview.SpeakerAssistant && turn.Tag != "" {
			return turn.Tag, true
		}
	}
	return "", false
}

func lastUserText(transcript []interview.Turn) (text string) {
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Speaker == interview.SpeakerUser {
			return transcript[i].Text
		}
	}
	return ""
}

func isAskTag(tag string) (ok bool) {
	_, _, _, ok = interview.ParseAskTag(tag)
	return ok
}

func isRewriteTag(tag string) (ok bool) {
	_, ok = interview.ParseRewriteTag(tag)
	return ok
}

func rewrittenKeys(transcript []interview.Turn) (done map[string]bool) {
	done = make(map[string]bool)
	for _, turn := range transcript {
		if turn.Speaker != interview.SpeakerAssistant {
			continue
		}
		if key, ok := interview.ParseRewriteTag(turn.Tag); ok {
			done[key] = true
		}
	}
	return done
}

func roleByKey(roles []segment.RoleBlock, key string) (role segment.RoleBlock, found bool) {
	for _, candidate := range roles {
		if candidate.Key() == key {
			return candidate, true
		}
	}
	return role, false
}

// resolveRole maps an explicitly chosen title to a block: exact key match,
// then nearest partial key match, else a degenerate block carrying the literal
// typed string so processing continues instead of failing.
func resolveRole(roles []segment.RoleBlock, chosen string) (role segment.RoleBlock) {
	chosenKey := segment.KeyFromTitle(chosen)

	for _, candidate := range roles {
		if segment.KeyFromTitle(candidate.Title) == chosenKey {
			return candidate
		}
	}
	if chosenKey != "" {
		for _, candidate := range roles {
			if strings.Contains(candidate.Key(), chosenKey) || strings.Contains(chosenKey, segment.KeyFromTitle(candidate.Title)) {
				return candidate
			}
		}
	}

	role = segment.RoleBlock{Title: chosen, RawText: chosen}
	return role
}

func matchRoleByTitle(roles []segment.RoleBlock, typed string) (role segment.RoleBlock, found bool) {
	typedKey := segment.KeyFromTitle(typed)
	if typedKey == "" {
		return role, false
	}
	for _, candidate := range roles {
		candidateKey := segment.KeyFromTitle(candidate.Title)
		if candidateKey == typedKey || strings.Contains(candidateKey, typedKey) {
			return candidate, true
		}
	}
	return role, false
}

func auditRoles(roles []segment.RoleBlock) (shown []segment.RoleBlock) {
	shown = roles
	if len(shown) > maxAuditRoles {
		shown = shown[:maxAuditRoles]
	}
	return shown
}
