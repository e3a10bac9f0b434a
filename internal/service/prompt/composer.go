// Package prompt renders the instruction payloads sent to the generation
// backend. Retrieved context, conversation history, structured fields and
// the preference directive all meet here; no other package assembles
// prompt text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/sandevgo/archie/internal/core"
)

const contextSeparator = "\n\n---\n\n"

const historyPlaceholder = "No previous conversation"

const chatTemplate = `You are an AI Software Architecture Assistant helping with application design, architecture, and related best practices.

Use the following comprehensive context and conversation history to answer the user's current question professionally and accurately.

---

Full Query (system description, requirements, or previously recommended architecture):
%s

---

Supporting Context (retrieved content from related documents or architecture references):
%s

---

Conversation History:
%s

---

Current Question:
%s

---

Guidelines for Response:
- Provide a clear, structured, and professional answer.
- Focus on **software architecture, design decisions, trade-offs, scalability, deployment, technology choices, and best practices**.
- Reference the full query or previous recommendations where relevant.
- Include real-world examples, comparisons, or analogies where helpful.
- Suggest technologies, tools, or patterns for implementation if appropriate.
- Avoid repeating earlier recommendations unless they are directly relevant.`

const adherenceDirective = `IMPORTANT: The user has stated a preference for %s. Adhere to this choice in your recommendation unless the supporting context strongly contradicts it, and say so explicitly if it does.

`

const reportTemplate = `You are an expert software architect.

Given the following project inputs, generate a structured software architecture report in markdown format with the following sections:

1. **System Overview** — including system type and a concise project summary.
2. **Functional Requirements** — list them clearly.
3. **Non-Functional Requirements** — list them clearly.
4. **Preferred Architecture Pattern** — include the pattern name and a rationale.
5. **Suggested Technologies** — recommend backend, frontend, database, and other key technologies.
6. **UML Diagrams** — placeholder for component and sequence diagrams.

User Inputs:
- System Type: %s
- Functional Requirements: %s
- Non-Functional Requirements: %s
- Architecture Preference: %s%s

Use formal, professional language and output ONLY markdown content.`

const adrTemplate = `You are an expert software architect writing an Architecture Decision Record.

Using the project inputs and the supporting context below, write the decision record in markdown. Use exactly these second-level headers, in this order, and leave out any section you have nothing substantive to say for:

## Context
## Decision
## Consequences
## Alternatives Considered
## Related Decisions

Project Inputs:
- System Type: %s
- Functional Requirements: %s
- Non-Functional Requirements: %s
- Architecture Preference: %s%s

Supporting Context:
%s

Use formal, professional language and output ONLY markdown content.`

// StructuredFields carries the structured request inputs verbatim. Every
// populated field must surface in the rendered instruction.
type StructuredFields struct {
	SystemType        string
	FunctionalReqs    []string
	NonFunctionalReqs []string
	Preference        string
	ProjectDesc       string
}

// FullQuery renders the fields as the canonical full query text used both
// as the first user turn and as prompt material.
func (f StructuredFields) FullQuery() string {
	var b strings.Builder
	fmt.Fprintf(&b, "System Type: %s\n", f.SystemType)
	fmt.Fprintf(&b, "Functional Requirements: %s\n", strings.Join(f.FunctionalReqs, ", "))
	fmt.Fprintf(&b, "Non-Functional Requirements: %s\n", strings.Join(f.NonFunctionalReqs, ", "))
	fmt.Fprintf(&b, "Preferred Architecture: %s\n", f.Preference)
	if f.ProjectDesc != "" {
		fmt.Fprintf(&b, "Project Description: %s\n", f.ProjectDesc)
	}
	b.WriteString("\nWhat is the best approach?")
	return b.String()
}

type Composer struct {
	historyWindow int
}

func NewComposer(historyWindow int) *Composer {
	return &Composer{historyWindow: historyWindow}
}

// Chat composes the advisory instruction. Context documents keep their
// retrieval order; only the trailing history window is rendered; a
// preference other than "No preference" prepends the adherence
// directive.
func (c *Composer) Chat(docs []core.RetrievedDocument, history []core.Turn, fullQuery, question, preference string) string {
	prompt := fmt.Sprintf(chatTemplate,
		fullQuery,
		joinContext(docs),
		c.renderHistory(history),
		question,
	)
	if preference != "" && preference != "No preference" {
		prompt = fmt.Sprintf(adherenceDirective, preference) + prompt
	}
	return prompt
}

// Report composes the structured architecture report instruction.
func (c *Composer) Report(f StructuredFields, preference string) string {
	prompt := fmt.Sprintf(reportTemplate,
		f.SystemType,
		strings.Join(f.FunctionalReqs, ", "),
		strings.Join(f.NonFunctionalReqs, ", "),
		f.Preference,
		projectDescLine(f),
	)
	if preference != "" && preference != "No preference" {
		prompt = fmt.Sprintf(adherenceDirective, preference) + prompt
	}
	return prompt
}

// ADR composes the decision-record instruction over the same retrieval
// context as the chat path.
func (c *Composer) ADR(f StructuredFields, docs []core.RetrievedDocument, preference string) string {
	prompt := fmt.Sprintf(adrTemplate,
		f.SystemType,
		strings.Join(f.FunctionalReqs, ", "),
		strings.Join(f.NonFunctionalReqs, ", "),
		f.Preference,
		projectDescLine(f),
		joinContext(docs),
	)
	if preference != "" && preference != "No preference" {
		prompt = fmt.Sprintf(adherenceDirective, preference) + prompt
	}
	return prompt
}

// projectDescLine renders the optional description as an input list
// line, or nothing when the request carried none.
func projectDescLine(f StructuredFields) string {
	if f.ProjectDesc == "" {
		return ""
	}
	return "\n- Project Description: " + f.ProjectDesc
}

func joinContext(docs []core.RetrievedDocument) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, d.Content)
	}
	return strings.Join(parts, contextSeparator)
}

func (c *Composer) renderHistory(history []core.Turn) string {
	if len(history) == 0 {
		return historyPlaceholder
	}
	if c.historyWindow > 0 && len(history) > c.historyWindow {
		history = history[len(history)-c.historyWindow:]
	}

	var b strings.Builder
	for i, t := range history {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(capitalize(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Content)
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
