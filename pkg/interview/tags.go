package interview

import (
	"strings"
)

// Role-independent tags.
const (
	TagOnboarding = "onboarding"
	TagAudit      = "audit"
	TagError      = "error"
)

const startSuffix = "start"

// AskTag builds the tag for a question turn: "ask:<kind>:<roleKey>", with a
// ":start" suffix on the opening question of a role's interview. The suffix is
// the role's start marker; everything before it belongs to an earlier
// interview of the same or another role.
func AskTag(kind FactKind, roleKey string, start bool) (tag string) {
	tag = "ask:" + string(kind) + ":" + roleKey
	if start {
		tag += ":" + startSuffix
	}
	return tag
}

// RewriteTag marks the completed rewrite of a role.
func RewriteTag(roleKey string) (tag string) {
	tag = "rewrite:" + roleKey
	return tag
}

// ParseAskTag decodes an ask tag; ok is false for any other tag shape.
func ParseAskTag(tag string) (kind FactKind, roleKey string, start bool, ok bool) {
	parts := strings.Split(tag, ":")
	if len(parts) < 3 || len(parts) > 4 || parts[0] != "ask" {
		return kind, roleKey, start, false
	}
	kind, ok = ParseFactKind(parts[1])
	if !ok {
		return kind, roleKey, start, false
	}
	roleKey = parts[2]
	start = len(parts) == 4 && parts[3] == startSuffix
	return kind, roleKey, start, true
}

// ParseRewriteTag decodes a rewrite tag.
func ParseRewriteTag(tag string) (roleKey string, ok bool) {
	rest, found := strings.CutPrefix(tag, "rewrite:")
	if !found || rest == "" {
		return "", false
	}
	return rest, true
}

// TagRoleKey extracts the role key a tag is scoped to, if any.
func TagRoleKey(tag string) (roleKey string, ok bool) {
	if _, key, _, isAsk := ParseAskTag(tag); isAsk {
		return key, true
	}
	if key, isRewrite := ParseRewriteTag(tag); isRewrite {
		return key, true
	}
	return "", false
}
