package advisor

import "github.com/sandevgo/archie/internal/core"

// ResultKind tags the outcome of an advisory request so callers can
// branch without matching on response strings.
type ResultKind int

const (
	// KindOk is a generated answer.
	KindOk ResultKind = iota
	// KindFiltered means the query fell outside the assistant's domain.
	// The refusal text is canned and the conversation was not touched.
	KindFiltered
	// KindEmptyContext means retrieval found nothing usable. A request
	// for more detail is returned instead of an answer.
	KindEmptyContext
	// KindFailed means the generation backend call failed. Err carries
	// the upstream error; the conversation was not touched.
	KindFailed
)

func (k ResultKind) String() string {
	switch k {
	case KindOk:
		return "ok"
	case KindFiltered:
		return "filtered"
	case KindEmptyContext:
		return "empty_context"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of a structured query or follow-up chat request.
type Result struct {
	Kind           ResultKind
	Response       string
	Sources        []string
	Images         []string
	ConversationID string

	// Preference is the canonical architecture preference, inferred
	// best-effort from the answer when the user stated none. Empty when
	// nothing could be inferred; never affects Response.
	Preference string

	// Err is set only for KindFailed.
	Err error
}

// ADRResult is the outcome of a decision-record request.
type ADRResult struct {
	Kind           ResultKind
	ADR            core.ADR
	Markdown       string
	Sources        []string
	Images         []string
	ConversationID string
	Err            error
}
