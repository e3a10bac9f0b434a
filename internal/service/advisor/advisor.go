// Package advisor orchestrates the advisory pipeline: relevance gate,
// retrieval, deduplication, prompt composition, generation, diagram
// matching and conversation bookkeeping. Transports call only this
// package.
package advisor

import (
	"context"
	"strings"

	"github.com/sandevgo/archie/internal/config"
	"github.com/sandevgo/archie/internal/core"
	"github.com/sandevgo/archie/internal/service/adr"
	"github.com/sandevgo/archie/internal/service/conversation"
	"github.com/sandevgo/archie/internal/service/diagram"
	"github.com/sandevgo/archie/internal/service/preference"
	"github.com/sandevgo/archie/internal/service/prompt"
	"github.com/sandevgo/archie/internal/service/relevance"
	"github.com/sandevgo/archie/internal/service/retrieval"
	"github.com/sandevgo/archie/pkg/log"
)

const refusalText = "❌ This assistant is focused on **Software Architecture Design**. " +
	"Please ask questions related to system architecture, design patterns, or related decisions."

const emptyContextText = "No relevant architectural documents found. " +
	"Could you provide more details about your system?"

type Advisor struct {
	classifier *relevance.Classifier
	retriever  *retrieval.Retriever
	citations  *retrieval.CitationFormatter
	store      *conversation.Store
	composer   *prompt.Composer
	generator  core.Generator
	matcher    *diagram.Matcher
	cfg        *config.RetrievalConfig
}

func New(
	classifier *relevance.Classifier,
	retriever *retrieval.Retriever,
	citations *retrieval.CitationFormatter,
	store *conversation.Store,
	composer *prompt.Composer,
	generator core.Generator,
	matcher *diagram.Matcher,
	cfg *config.RetrievalConfig,
) *Advisor {
	return &Advisor{
		classifier: classifier,
		retriever:  retriever,
		citations:  citations,
		store:      store,
		composer:   composer,
		generator:  generator,
		matcher:    matcher,
		cfg:        cfg,
	}
}

// StructuredQuery runs the full pipeline for a structured request. A new
// conversation is created when no id is supplied. The user and assistant
// turns are appended only after generation succeeds; filtered, empty and
// failed outcomes leave the conversation untouched.
func (a *Advisor) StructuredQuery(ctx context.Context, fields prompt.StructuredFields, conversationID string) Result {
	pref, unspecified := preference.Normalize(fields.Preference)

	if conversationID == "" {
		conversationID = a.store.NewID()
	}

	fullQuery := fields.FullQuery()
	if !a.classifier.Classify(fullQuery) {
		return Result{Kind: KindFiltered, Response: refusalText, ConversationID: conversationID}
	}

	docs, err := a.retrieveUnique(ctx, fullQuery)
	if err != nil {
		return Result{Kind: KindFailed, Err: err, ConversationID: conversationID}
	}
	if len(docs) == 0 {
		return Result{Kind: KindEmptyContext, Response: emptyContextText, ConversationID: conversationID}
	}

	history := a.store.Get(conversationID)
	instruction := a.composer.Chat(docs, history, fullQuery, fullQuery, pref)

	answer, err := a.generator.Generate(ctx, instruction)
	if err != nil {
		return Result{Kind: KindFailed, Err: err, ConversationID: conversationID}
	}

	a.store.Append(conversationID,
		core.Turn{Role: core.RoleUser, Content: fullQuery},
		core.Turn{Role: core.RoleAssistant, Content: answer},
	)

	if unspecified {
		if inferred := preference.Infer(answer); inferred != "" {
			pref = inferred
		}
	}

	return Result{
		Kind:           KindOk,
		Response:       answer,
		Sources:        a.citations.Format(docs),
		Images:         a.matchImages(ctx, pref, a.cfg.ADRImageThreshold),
		ConversationID: conversationID,
		Preference:     pref,
	}
}

// Chat runs the pipeline for a free-form follow-up. With an empty
// conversation id the question is answered statelessly and nothing is
// persisted.
func (a *Advisor) Chat(ctx context.Context, query, conversationID string) Result {
	if !a.classifier.Classify(query) {
		return Result{Kind: KindFiltered, Response: refusalText, ConversationID: conversationID}
	}

	docs, err := a.retrieveUnique(ctx, query)
	if err != nil {
		return Result{Kind: KindFailed, Err: err, ConversationID: conversationID}
	}
	if len(docs) == 0 {
		return Result{Kind: KindEmptyContext, Response: emptyContextText, ConversationID: conversationID}
	}

	history := a.store.Get(conversationID)
	instruction := a.composer.Chat(docs, history, fullQueryFromHistory(history, query), query, preference.NoPreference)

	answer, err := a.generator.Generate(ctx, instruction)
	if err != nil {
		return Result{Kind: KindFailed, Err: err, ConversationID: conversationID}
	}

	if conversationID != "" {
		a.store.Append(conversationID,
			core.Turn{Role: core.RoleUser, Content: query},
			core.Turn{Role: core.RoleAssistant, Content: answer},
		)
	}

	return Result{
		Kind:           KindOk,
		Response:       answer,
		Sources:        a.citations.Format(docs),
		Images:         a.matchImages(ctx, query, a.cfg.ImageThreshold),
		ConversationID: conversationID,
	}
}

// GenerateReport produces the full architecture report for a structured
// request. The report is drafted from the inputs alone, without
// retrieval, and never touches conversation state.
func (a *Advisor) GenerateReport(ctx context.Context, fields prompt.StructuredFields) Result {
	pref, unspecified := preference.Normalize(fields.Preference)

	instruction := a.composer.Report(fields, pref)
	report, err := a.generator.Generate(ctx, instruction)
	if err != nil {
		return Result{Kind: KindFailed, Err: err}
	}

	if unspecified {
		if inferred := preference.Infer(report); inferred != "" {
			pref = inferred
		}
	}

	return Result{
		Kind:       KindOk,
		Response:   report,
		Sources:    []string{},
		Images:     a.matchImages(ctx, pref, a.cfg.ADRImageThreshold),
		Preference: pref,
	}
}

// GenerateADR produces a decision record from the same retrieval and
// generation path. It reads conversation context but never appends to
// it: regenerating a record must not grow the chat history.
func (a *Advisor) GenerateADR(ctx context.Context, fields prompt.StructuredFields, conversationID string, meta adr.Metadata) ADRResult {
	pref, _ := preference.Normalize(fields.Preference)

	searchQuery := strings.Join([]string{
		fields.SystemType,
		strings.Join(fields.FunctionalReqs, " "),
		strings.Join(fields.NonFunctionalReqs, " "),
	}, " ")

	docs, err := a.retrieveUnique(ctx, searchQuery)
	if err != nil {
		return ADRResult{Kind: KindFailed, Err: err, ConversationID: conversationID}
	}

	instruction := a.composer.ADR(fields, docs, pref)
	generated, err := a.generator.Generate(ctx, instruction)
	if err != nil {
		return ADRResult{Kind: KindFailed, Err: err, ConversationID: conversationID}
	}

	record := adr.Assemble(generated, meta)
	return ADRResult{
		Kind:           KindOk,
		ADR:            record,
		Markdown:       adr.Render(record),
		Sources:        a.citations.Format(docs),
		Images:         a.matchImages(ctx, pref, a.cfg.ADRImageThreshold),
		ConversationID: conversationID,
	}
}

// History exposes the stored turns for a conversation id.
func (a *Advisor) History(id string) ([]core.Turn, bool) {
	if !a.store.Exists(id) {
		return nil, false
	}
	return a.store.Get(id), true
}

// NewConversationID mints an id without touching any state.
func (a *Advisor) NewConversationID() string {
	return a.store.NewID()
}

func (a *Advisor) retrieveUnique(ctx context.Context, query string) ([]core.RetrievedDocument, error) {
	docs, err := a.retriever.Retrieve(ctx, query, a.cfg.TopK)
	if err != nil {
		return nil, err
	}
	unique, duplicates := retrieval.Dedupe(docs)
	if len(duplicates) > 0 {
		log.FromCtx(ctx).Debug().Int("dropped", len(duplicates)).Msg("duplicate sources filtered")
	}
	return unique, nil
}

// matchImages never fails a request: diagrams are garnish, and a
// preference of "No preference" is not worth searching on.
func (a *Advisor) matchImages(ctx context.Context, text string, threshold float64) []string {
	if text == "" || text == preference.NoPreference {
		return []string{}
	}
	images, err := a.matcher.Match(ctx, text, threshold, a.cfg.ImageTopK)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("diagram matching failed")
		return []string{}
	}
	return images
}

func fullQueryFromHistory(history []core.Turn, fallback string) string {
	for _, t := range history {
		if t.Role == core.RoleUser {
			return t.Content
		}
	}
	return fallback
}
