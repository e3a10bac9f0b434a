package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Hello world",
			expected: "Hello world\n",
		},
		{
			name:     "bold text",
			input:    "**bold**",
			expected: "<strong>bold</strong>\n",
		},
		{
			name:     "inline code",
			input:    "`code`",
			expected: "<code>code</code>\n",
		},
		{
			name:     "header tags stripped",
			input:    "# Decision",
			expected: "Decision\n",
		},
		{
			name:     "script tags sanitized",
			input:    "<script>alert('xss')</script>",
			expected: "\n",
		},
		{
			name:     "link",
			input:    "[link](https://example.com)",
			expected: "<a href=\"https://example.com\">link</a>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTelegramHTML([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("MarkdownToTelegramHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMarkdownToWebHTML(t *testing.T) {
	got := MarkdownToWebHTML([]byte("## Context\n\nSome **bold** text"))
	if !strings.Contains(got, "<h2") || !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("unexpected output: %q", got)
	}
	if strings.Contains(MarkdownToWebHTML([]byte("<script>x()</script>")), "script") {
		t.Error("script tag survived sanitization")
	}
}

func TestMarkdownToText(t *testing.T) {
	got := MarkdownToText([]byte("## Decision\n\nUse **microservices** for scaling."))
	if strings.Contains(got, "<") || strings.Contains(got, "**") {
		t.Errorf("markup survived: %q", got)
	}
	if !strings.Contains(got, "microservices") {
		t.Errorf("content lost: %q", got)
	}
}
