// Package preference canonicalizes the user's stated architecture
// preference and, when none was given, infers one best-effort from
// generated advice text.
package preference

import (
	"regexp"
	"strings"
)

const NoPreference = "No preference"

var sentinels = map[string]struct{}{
	"":              {},
	"not sure":      {},
	"no preference": {},
	"none":          {},
}

// Normalize maps raw preference input to its canonical form. Sentinel
// values collapse to NoPreference with unspecified=true; anything else is
// trimmed and suffixed with " Architecture".
func Normalize(raw string) (canonical string, unspecified bool) {
	trimmed := strings.TrimSpace(raw)
	if _, ok := sentinels[strings.ToLower(trimmed)]; ok {
		return NoPreference, true
	}
	return trimmed + " Architecture", false
}

var inferenceVocab = []string{
	"microservices",
	"monolithic",
	"layered",
	"event-driven",
	"service-oriented",
	"client-server",
	"n-tier",
	"hexagonal",
}

var anchorVerbs = regexp.MustCompile(`(?i)\b(recommend(?:ed|s)?|suggest(?:ed|s)?|propos(?:e|ed|es))\b`)

// How many tokens after an anchor verb still count as "recommended".
const inferWindow = 8

// Infer scans generated advice for a style the text itself recommends.
// It looks for a vocabulary term within a few tokens of a recommendation
// verb and returns it title-cased with an " Architecture" suffix. The
// empty string means nothing could be inferred; callers treat that as a
// non-event.
func Infer(text string) string {
	tokens := strings.Fields(text)
	for i, tok := range tokens {
		if !anchorVerbs.MatchString(tok) {
			continue
		}
		end := i + 1 + inferWindow
		if end > len(tokens) {
			end = len(tokens)
		}
		for _, cand := range tokens[i+1 : end] {
			if style, ok := matchVocab(cand); ok {
				return title(style) + " Architecture"
			}
		}
	}
	return ""
}

func matchVocab(token string) (string, bool) {
	cleaned := strings.ToLower(strings.Trim(token, ".,;:!?()[]\"'*`"))
	for _, v := range inferenceVocab {
		if cleaned == v {
			return v, true
		}
	}
	return "", false
}

func title(s string) string {
	// Title-case each hyphen-separated part: "event-driven" → "Event-Driven".
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "-")
}
