package mcpsrv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sandevgo/archie/internal/service/adr"
	"github.com/sandevgo/archie/internal/service/advisor"
	"github.com/sandevgo/archie/internal/service/prompt"
)

// adviceTool handles the architecture_advice MCP tool.
type adviceTool struct {
	advisor *advisor.Advisor
}

func newAdviceTool(adv *advisor.Advisor) *adviceTool {
	return &adviceTool{advisor: adv}
}

func (t *adviceTool) Definition() mcp.Tool {
	return mcp.NewTool("architecture_advice",
		mcp.WithDescription(
			"Ask the architecture advisor a question grounded in its reference corpus. "+
				"Pass the returned conversation_id on follow-up calls to keep context.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Architecture question in natural language"),
		),
		mcp.WithString("conversation_id",
			mcp.Description("Conversation id from a previous call, for follow-ups"),
		),
	)
}

func (t *adviceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	conversationID := req.GetString("conversation_id", "")
	if conversationID == "" {
		conversationID = t.advisor.NewConversationID()
	}

	res := t.advisor.Chat(ctx, query, conversationID)
	if res.Kind == advisor.KindFailed {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", res.Err)), nil
	}

	var b strings.Builder
	b.WriteString(res.Response)
	if len(res.Sources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(res.Sources, "\n"))
	}
	b.WriteString("\n\nconversation_id: " + res.ConversationID)

	return mcp.NewToolResultText(b.String()), nil
}

// reportTool handles the architecture_report MCP tool.
type reportTool struct {
	advisor *advisor.Advisor
}

func newReportTool(adv *advisor.Advisor) *reportTool {
	return &reportTool{advisor: adv}
}

func (t *reportTool) Definition() mcp.Tool {
	return mcp.NewTool("architecture_report",
		mcp.WithDescription(
			"Generate a full architecture report for a system in markdown. "+
				"Requirements are comma-separated lists.",
		),
		mcp.WithString("system_type",
			mcp.Required(),
			mcp.Description("Kind of system being designed, e.g. 'e-commerce platform'"),
		),
		mcp.WithString("functional_requirements",
			mcp.Description("Comma-separated functional requirements"),
		),
		mcp.WithString("non_functional_requirements",
			mcp.Description("Comma-separated quality attributes, e.g. 'scalability, availability'"),
		),
		mcp.WithString("architecture_preference",
			mcp.Description("Preferred architecture style, if any"),
		),
		mcp.WithString("project_description",
			mcp.Description("Free-form project summary"),
		),
	)
}

func (t *reportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	systemType := req.GetString("system_type", "")
	if systemType == "" {
		return mcp.NewToolResultError("'system_type' is required"), nil
	}

	fields := prompt.StructuredFields{
		SystemType:        systemType,
		FunctionalReqs:    splitCSV(req.GetString("functional_requirements", "")),
		NonFunctionalReqs: splitCSV(req.GetString("non_functional_requirements", "")),
		Preference:        req.GetString("architecture_preference", ""),
		ProjectDesc:       req.GetString("project_description", ""),
	}

	res := t.advisor.GenerateReport(ctx, fields)
	if res.Kind == advisor.KindFailed {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", res.Err)), nil
	}
	return mcp.NewToolResultText(res.Response), nil
}

// adrTool handles the generate_adr MCP tool.
type adrTool struct {
	advisor *advisor.Advisor
}

func newADRTool(adv *advisor.Advisor) *adrTool {
	return &adrTool{advisor: adv}
}

func (t *adrTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_adr",
		mcp.WithDescription(
			"Generate an Architecture Decision Record for a system. "+
				"Requirements are comma-separated lists.",
		),
		mcp.WithString("system_type",
			mcp.Required(),
			mcp.Description("Kind of system being designed, e.g. 'e-commerce platform'"),
		),
		mcp.WithString("functional_requirements",
			mcp.Description("Comma-separated functional requirements"),
		),
		mcp.WithString("non_functional_requirements",
			mcp.Description("Comma-separated quality attributes, e.g. 'scalability, availability'"),
		),
		mcp.WithString("architecture_preference",
			mcp.Description("Preferred architecture style, if any"),
		),
		mcp.WithString("conversation_id",
			mcp.Description("Conversation id from architecture_advice, for shared context"),
		),
	)
}

func (t *adrTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	systemType := req.GetString("system_type", "")
	if systemType == "" {
		return mcp.NewToolResultError("'system_type' is required"), nil
	}

	fields := prompt.StructuredFields{
		SystemType:        systemType,
		FunctionalReqs:    splitCSV(req.GetString("functional_requirements", "")),
		NonFunctionalReqs: splitCSV(req.GetString("non_functional_requirements", "")),
		Preference:        req.GetString("architecture_preference", ""),
	}
	meta := adr.Metadata{
		ID:     uuid.NewString(),
		Date:   time.Now().Format(time.DateOnly),
		Status: "Proposed",
	}

	res := t.advisor.GenerateADR(ctx, fields, req.GetString("conversation_id", ""), meta)
	if res.Kind == advisor.KindFailed {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", res.Err)), nil
	}

	out := res.Markdown
	if len(res.Sources) > 0 {
		out += "\n\n" + strings.Join(res.Sources, "\n")
	}
	return mcp.NewToolResultText(out), nil
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
