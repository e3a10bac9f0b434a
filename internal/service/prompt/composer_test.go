package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandevgo/archie/internal/core"
)

func TestStructuredFieldsFullQuery(t *testing.T) {
	f := StructuredFields{
		SystemType:        "E-commerce platform",
		FunctionalReqs:    []string{"catalog", "checkout"},
		NonFunctionalReqs: []string{"scalability", "availability"},
		Preference:        "microservices",
	}

	got := f.FullQuery()

	want := "System Type: E-commerce platform\n" +
		"Functional Requirements: catalog, checkout\n" +
		"Non-Functional Requirements: scalability, availability\n" +
		"Preferred Architecture: microservices\n" +
		"\nWhat is the best approach?"
	assert.Equal(t, want, got)
}

func TestStructuredFieldsFullQueryWithDescription(t *testing.T) {
	f := StructuredFields{
		SystemType:  "IoT fleet",
		ProjectDesc: "Sensors report every five seconds.",
	}

	got := f.FullQuery()

	assert.Contains(t, got, "Project Description: Sensors report every five seconds.\n")
	assert.True(t, strings.HasSuffix(got, "What is the best approach?"))
}

func TestChatJoinsContextInOrder(t *testing.T) {
	c := NewComposer(6)
	docs := []core.RetrievedDocument{
		{Content: "first passage"},
		{Content: "second passage"},
	}

	got := c.Chat(docs, nil, "full query", "question", "No preference")

	assert.Contains(t, got, "first passage\n\n---\n\nsecond passage")
	assert.Contains(t, got, "Full Query (system description, requirements, or previously recommended architecture):\nfull query")
	assert.Contains(t, got, "Current Question:\nquestion")
}

func TestChatHistoryPlaceholder(t *testing.T) {
	c := NewComposer(6)

	got := c.Chat(nil, nil, "q", "q", "No preference")

	assert.Contains(t, got, "Conversation History:\nNo previous conversation")
}

func TestChatHistoryWindowAndRendering(t *testing.T) {
	c := NewComposer(2)
	history := []core.Turn{
		{Role: core.RoleUser, Content: "oldest"},
		{Role: core.RoleUser, Content: "middle"},
		{Role: core.RoleAssistant, Content: "newest"},
	}

	got := c.Chat(nil, history, "q", "q", "No preference")

	assert.NotContains(t, got, "oldest")
	assert.Contains(t, got, "User: middle\nAssistant: newest")
}

func TestChatAdherenceDirective(t *testing.T) {
	c := NewComposer(6)

	withPref := c.Chat(nil, nil, "q", "q", "microservices Architecture")
	assert.True(t, strings.HasPrefix(withPref, "IMPORTANT: The user has stated a preference for microservices Architecture."))

	noPref := c.Chat(nil, nil, "q", "q", "No preference")
	assert.False(t, strings.HasPrefix(noPref, "IMPORTANT:"))
}

func TestReportContainsAllFields(t *testing.T) {
	c := NewComposer(6)
	f := StructuredFields{
		SystemType:        "Streaming service",
		FunctionalReqs:    []string{"ingest", "playback"},
		NonFunctionalReqs: []string{"low latency"},
		Preference:        "event-driven",
	}

	got := c.Report(f, "event-driven Architecture")

	assert.Contains(t, got, "System Type: Streaming service")
	assert.Contains(t, got, "Functional Requirements: ingest, playback")
	assert.Contains(t, got, "Non-Functional Requirements: low latency")
	assert.Contains(t, got, "Architecture Preference: event-driven")
	assert.True(t, strings.HasPrefix(got, "IMPORTANT:"))
}

func TestReportIncludesProjectDescription(t *testing.T) {
	c := NewComposer(6)
	f := StructuredFields{
		SystemType:  "IoT fleet",
		ProjectDesc: "Sensors report every five seconds.",
	}

	got := c.Report(f, "No preference")

	assert.Contains(t, got, "- Project Description: Sensors report every five seconds.")
}

func TestADRIncludesProjectDescription(t *testing.T) {
	c := NewComposer(6)
	f := StructuredFields{
		SystemType:        "IoT fleet",
		FunctionalReqs:    []string{"telemetry ingest"},
		NonFunctionalReqs: []string{"durability"},
		ProjectDesc:       "Sensors report every five seconds.",
	}

	got := c.ADR(f, nil, "No preference")

	assert.Contains(t, got, "- Project Description: Sensors report every five seconds.")

	withoutDesc := c.ADR(StructuredFields{SystemType: "IoT fleet"}, nil, "No preference")
	assert.NotContains(t, withoutDesc, "Project Description")
}

func TestADRNamesKnownSections(t *testing.T) {
	c := NewComposer(6)
	f := StructuredFields{SystemType: "Payments"}
	docs := []core.RetrievedDocument{{Content: "ctx"}}

	got := c.ADR(f, docs, "No preference")

	for _, section := range []string{"## Context", "## Decision", "## Consequences", "## Alternatives Considered", "## Related Decisions"} {
		assert.Contains(t, got, section)
	}
	assert.Contains(t, got, "Supporting Context:\nctx")
}
