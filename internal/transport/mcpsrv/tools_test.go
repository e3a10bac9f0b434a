package mcpsrv

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/archie/internal/config"
	"github.com/sandevgo/archie/internal/core"
	"github.com/sandevgo/archie/internal/service/advisor"
	"github.com/sandevgo/archie/internal/service/conversation"
	"github.com/sandevgo/archie/internal/service/diagram"
	"github.com/sandevgo/archie/internal/service/prompt"
	"github.com/sandevgo/archie/internal/service/relevance"
	"github.com/sandevgo/archie/internal/service/retrieval"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1}, nil
}

type stubDocIndex struct{}

func (stubDocIndex) Add(_ context.Context, _ core.RetrievedDocument, _ []float32) error {
	return nil
}

func (stubDocIndex) Search(_ context.Context, _ []float32, _ int) ([]core.RetrievedDocument, error) {
	return []core.RetrievedDocument{{Content: "Reference passage.", Source: "docs/ref.md", Score: 0.9}}, nil
}

type stubImageIndex struct{}

func (stubImageIndex) Add(_ context.Context, _ string, _ string, _ []float32) error {
	return nil
}

func (stubImageIndex) Search(_ context.Context, _ []float32, _ int) ([]core.MatchedImage, error) {
	return nil, nil
}

type stubGenerator struct {
	answer string
}

func (s stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return s.answer, nil
}

func newTestAdvisor(answer string) *advisor.Advisor {
	return advisor.New(
		relevance.NewClassifier(),
		retrieval.NewRetriever(stubEmbedder{}, stubDocIndex{}),
		retrieval.NewCitationFormatter(""),
		conversation.NewStore(),
		prompt.NewComposer(6),
		stubGenerator{answer: answer},
		diagram.NewMatcher(stubEmbedder{}, stubImageIndex{}),
		&config.RetrievalConfig{TopK: 5, ImageThreshold: 0.89, ADRImageThreshold: 0.85, ImageTopK: 2},
	)
}

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestAdviceToolHandle(t *testing.T) {
	tool := newAdviceTool(newTestAdvisor("Split along team boundaries."))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"query": "How should I split this monolith?",
	}))

	require.NoError(t, err)
	text := resultText(res)
	assert.Contains(t, text, "Split along team boundaries.")
	assert.Contains(t, text, "Source 1: docs/ref.md")
	assert.Contains(t, text, "conversation_id: ")
}

func TestAdviceToolRequiresQuery(t *testing.T) {
	tool := newAdviceTool(newTestAdvisor("unused"))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))

	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestReportToolHandle(t *testing.T) {
	tool := newReportTool(newTestAdvisor("# Architecture Report\n\nI would recommend a layered design."))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"system_type":                 "IoT fleet",
		"functional_requirements":     "telemetry ingest",
		"non_functional_requirements": "durability",
		"project_description":         "Sensors report every five seconds.",
	}))

	require.NoError(t, err)
	assert.Contains(t, resultText(res), "Architecture Report")
}

func TestReportToolRequiresSystemType(t *testing.T) {
	tool := newReportTool(newTestAdvisor("unused"))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))

	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestADRToolHandle(t *testing.T) {
	tool := newADRTool(newTestAdvisor("## Context\n\nHigh load.\n\n## Decision\n\nGo event-driven.\n"))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"system_type":                 "ticketing system",
		"functional_requirements":     "booking, payments",
		"non_functional_requirements": "availability",
		"architecture_preference":     "event-driven",
	}))

	require.NoError(t, err)
	text := resultText(res)
	assert.Contains(t, text, "## Decision")
	assert.Contains(t, text, "- Status: Proposed")
}

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV("  "))
	assert.Equal(t, []string{"a", "b"}, splitCSV("a, b,"))
}
