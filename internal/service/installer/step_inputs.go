package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// APIKeyStep asks for an API key. Skipped for Ollama, which has none.
type APIKeyStep struct {
	input textinput.Model
}

func NewAPIKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.EchoMode = textinput.EchoPassword
	ti.Placeholder = "sk-..."
	return &APIKeyStep{input: ti}
}

func (s *APIKeyStep) Init() tea.Cmd { return nil }

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	if state.Provider == "ollama" {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		state.APIKey = s.input.Value()
		return nil, nil
	}

	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	return "Enter the API key for your backend:\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
}

// GenerationURLStep asks for the generation backend base URL.
type GenerationURLStep struct {
	input textinput.Model
}

func NewGenerationURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Placeholder = "http://localhost:11434"
	return &GenerationURLStep{input: ti}
}

func (s *GenerationURLStep) Init() tea.Cmd { return nil }

func (s *GenerationURLStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := s.input.Value()
		if val == "" {
			val = s.input.Placeholder
		}
		state.GenerationURL = val
		return nil, nil
	}

	return s, cmd
}

func (s *GenerationURLStep) View(state *InstallState) string {
	return "Enter the generation backend base URL:\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
}

// ModelStep asks for the generation model name.
type ModelStep struct {
	input textinput.Model
}

func NewModelStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Placeholder = "llama3.2:latest"
	return &ModelStep{input: ti}
}

func (s *ModelStep) Init() tea.Cmd { return nil }

func (s *ModelStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := s.input.Value()
		if val == "" {
			val = s.input.Placeholder
		}
		state.GenerationModel = val
		return nil, nil
	}

	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	return "Enter the model to generate advice with:\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
}

// EmbeddingStep asks for the embedding model.
type EmbeddingStep struct {
	input textinput.Model
}

func NewEmbeddingStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Placeholder = "nomic-embed-text"
	return &EmbeddingStep{input: ti}
}

func (s *EmbeddingStep) Init() tea.Cmd { return nil }

func (s *EmbeddingStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := s.input.Value()
		if val == "" {
			val = s.input.Placeholder
		}
		state.EmbeddingModel = val
		return nil, nil
	}

	return s, cmd
}

func (s *EmbeddingStep) View(state *InstallState) string {
	return "Enter the embedding model:\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
}
