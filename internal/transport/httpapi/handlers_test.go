package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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

type stubDocIndex struct {
	docs []core.RetrievedDocument
}

func (s stubDocIndex) Add(_ context.Context, _ core.RetrievedDocument, _ []float32) error {
	return nil
}

func (s stubDocIndex) Search(_ context.Context, _ []float32, _ int) ([]core.RetrievedDocument, error) {
	return s.docs, nil
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

func newTestServer(answer string) (*Server, *conversation.Store) {
	store := conversation.NewStore()
	cfg := &config.RetrievalConfig{TopK: 5, ImageThreshold: 0.89, ADRImageThreshold: 0.85, ImageTopK: 2}
	adv := advisor.New(
		relevance.NewClassifier(),
		retrieval.NewRetriever(stubEmbedder{}, stubDocIndex{docs: []core.RetrievedDocument{
			{Content: "Reference passage.", Source: "docs/patterns.md", Score: 0.9},
		}}),
		retrieval.NewCitationFormatter(""),
		store,
		prompt.NewComposer(6),
		stubGenerator{answer: answer},
		diagram.NewMatcher(stubEmbedder{}, stubImageIndex{}),
		cfg,
	)
	return NewServer(":0", adv), store
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestStructuredQueryEndpoint(t *testing.T) {
	s, store := newTestServer("Use microservices.")

	rec := postJSON(t, s, "/structured-query", map[string]any{
		"system_type":                 "E-commerce platform",
		"functional_requirements":     []string{"catalog", "checkout"},
		"non_functional_requirements": []string{"scalability"},
		"architecture_preference":     "microservices",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp queryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Use microservices.", resp.Response)
	assert.NotEmpty(t, resp.ConversationID)
	assert.False(t, resp.Filtered)
	require.NotEmpty(t, resp.Sources)
	assert.Contains(t, resp.Sources[0], "docs/patterns.md")

	assert.Len(t, store.Get(resp.ConversationID), 2)
}

func TestQueryEndpointFiltered(t *testing.T) {
	s, _ := newTestServer("unused")

	rec := postJSON(t, s, "/query", map[string]any{
		"query": "What's your favorite pizza topping?",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp queryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Filtered)
	assert.Contains(t, resp.Response, "Software Architecture Design")
}

func TestQueryEndpointValidation(t *testing.T) {
	s, _ := newTestServer("unused")

	rec := postJSON(t, s, "/query", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateReportEndpoint(t *testing.T) {
	s, _ := newTestServer("# Architecture Report\n\nI would recommend a layered design.")

	rec := postJSON(t, s, "/generate-report", map[string]any{
		"system_type":                 "IoT fleet",
		"functional_requirements":     []string{"telemetry ingest"},
		"non_functional_requirements": []string{"durability"},
		"project_description":         "Sensors report every five seconds.",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp reportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Report, "Architecture Report")
	assert.Equal(t, "Layered Architecture", resp.Preference)
}

func TestGenerateReportEndpointValidation(t *testing.T) {
	s, _ := newTestServer("unused")

	rec := postJSON(t, s, "/generate-report", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateADREndpoint(t *testing.T) {
	s, store := newTestServer("## Context\n\nHigh load.\n\n## Decision\n\nGo event-driven.\n")
	id := store.NewID()
	store.Append(id, core.Turn{Role: core.RoleUser, Content: "earlier"})

	rec := postJSON(t, s, "/generate-adr", map[string]any{
		"system_type":                 "Ticketing system",
		"functional_requirements":     []string{"booking"},
		"non_functional_requirements": []string{"availability"},
		"architecture_preference":     "event-driven",
		"conversation_id":             id,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp adrResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.ADR, "## Decision")
	assert.Contains(t, resp.ADR, "- Status: Proposed")

	// ADR generation must not grow the conversation.
	assert.Len(t, store.Get(id), 1)
}

func TestConversationEndpoint(t *testing.T) {
	s, store := newTestServer("unused")
	id := store.NewID()
	store.Append(id, core.Turn{Role: core.RoleUser, Content: "hello architecture"})

	req := httptest.NewRequest(http.MethodGet, "/conversations/"+id, nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Conversation []core.Turn `json:"conversation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Conversation, 1)
	assert.Equal(t, "hello architecture", resp.Conversation[0].Content)
}

func TestConversationEndpointNotFound(t *testing.T) {
	s, _ := newTestServer("unused")

	req := httptest.NewRequest(http.MethodGet, "/conversations/missing", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPingEndpoint(t *testing.T) {
	s, _ := newTestServer("unused")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
