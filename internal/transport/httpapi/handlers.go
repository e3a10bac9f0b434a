package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/archie/internal/service/adr"
	"github.com/sandevgo/archie/internal/service/advisor"
	"github.com/sandevgo/archie/internal/service/prompt"
	"github.com/sandevgo/archie/pkg/log"
)

type structuredRequest struct {
	SystemType            string   `json:"system_type"`
	FunctionalReqs        []string `json:"functional_requirements"`
	NonFunctionalReqs     []string `json:"non_functional_requirements"`
	ArchitecturePref      string   `json:"architecture_preference"`
	ProjectDescription    string   `json:"project_description,omitempty"`
	ConversationID        string   `json:"conversation_id,omitempty"`
	ADRStatus             string   `json:"adr_status,omitempty"`
	ADRDeciders           []string `json:"adr_deciders,omitempty"`
}

func (r structuredRequest) fields() prompt.StructuredFields {
	return prompt.StructuredFields{
		SystemType:        r.SystemType,
		FunctionalReqs:    r.FunctionalReqs,
		NonFunctionalReqs: r.NonFunctionalReqs,
		Preference:        r.ArchitecturePref,
		ProjectDesc:       r.ProjectDescription,
	}
}

type queryRequest struct {
	Query          string `json:"query"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type queryResponse struct {
	Response       string   `json:"response"`
	Images         []string `json:"images"`
	Sources        []string `json:"sources"`
	ConversationID string   `json:"conversation_id,omitempty"`
	Filtered       bool     `json:"filtered,omitempty"`
	Preference     string   `json:"preference,omitempty"`
}

type reportResponse struct {
	Report     string   `json:"report"`
	Images     []string `json:"images"`
	Preference string   `json:"preference,omitempty"`
}

type adrResponse struct {
	ADR            string   `json:"adr"`
	Images         []string `json:"images"`
	Sources        []string `json:"sources"`
	ConversationID string   `json:"conversation_id,omitempty"`
}

const generationErrorPrefix = "Error connecting to the AI model: "

func (s *Server) handleStructuredQuery(w http.ResponseWriter, r *http.Request) {
	var req structuredRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SystemType == "" {
		writeError(w, http.StatusBadRequest, "system_type is required")
		return
	}

	res := s.advisor.StructuredQuery(r.Context(), req.fields(), req.ConversationID)
	writeResult(w, r, res)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	res := s.advisor.Chat(r.Context(), req.Query, req.ConversationID)
	writeResult(w, r, res)
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req structuredRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SystemType == "" {
		writeError(w, http.StatusBadRequest, "system_type is required")
		return
	}

	res := s.advisor.GenerateReport(r.Context(), req.fields())
	if res.Kind == advisor.KindFailed {
		log.FromCtx(r.Context()).Error().Err(res.Err).Msg("report generation failed")
		writeJSON(w, http.StatusOK, reportResponse{
			Report: generationErrorPrefix + res.Err.Error(),
			Images: []string{},
		})
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		Report:     res.Response,
		Images:     orEmpty(res.Images),
		Preference: res.Preference,
	})
}

func (s *Server) handleGenerateADR(w http.ResponseWriter, r *http.Request) {
	var req structuredRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SystemType == "" {
		writeError(w, http.StatusBadRequest, "system_type is required")
		return
	}

	status := req.ADRStatus
	if status == "" {
		status = "Proposed"
	}
	meta := adr.Metadata{
		ID:       uuid.NewString(),
		Date:     time.Now().Format(time.DateOnly),
		Status:   status,
		Deciders: req.ADRDeciders,
	}

	res := s.advisor.GenerateADR(r.Context(), req.fields(), req.ConversationID, meta)
	if res.Kind == advisor.KindFailed {
		log.FromCtx(r.Context()).Error().Err(res.Err).Msg("adr generation failed")
		writeJSON(w, http.StatusOK, adrResponse{
			ADR:            generationErrorPrefix + res.Err.Error(),
			Images:         []string{},
			Sources:        []string{},
			ConversationID: res.ConversationID,
		})
		return
	}

	writeJSON(w, http.StatusOK, adrResponse{
		ADR:            res.Markdown,
		Images:         res.Images,
		Sources:        res.Sources,
		ConversationID: res.ConversationID,
	})
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	turns, ok := s.advisor.History(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversation": turns})
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeResult(w http.ResponseWriter, r *http.Request, res advisor.Result) {
	if res.Kind == advisor.KindFailed {
		log.FromCtx(r.Context()).Error().Err(res.Err).Msg("advisory request failed")
		writeJSON(w, http.StatusOK, queryResponse{
			Response:       generationErrorPrefix + res.Err.Error(),
			Images:         []string{},
			Sources:        []string{},
			ConversationID: res.ConversationID,
		})
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Response:       res.Response,
		Images:         orEmpty(res.Images),
		Sources:        orEmpty(res.Sources),
		ConversationID: res.ConversationID,
		Filtered:       res.Kind == advisor.KindFiltered,
		Preference:     res.Preference,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
