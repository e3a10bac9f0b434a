package core

const (
	ArchieName    = "Archie"
	ArchieVersion = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single conversation message. Immutable once appended.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RetrievedDocument is a scored passage returned by the document index.
// Produced fresh per query, never persisted.
type RetrievedDocument struct {
	Content string  `json:"content"`
	Source  string  `json:"source,omitempty"`
	Author  string  `json:"author,omitempty"`
	Creator string  `json:"creator,omitempty"`
	Score   float64 `json:"score"`
}

// MatchedImage is a diagram locator that cleared the similarity threshold.
type MatchedImage struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// ADRSection is one titled block of an assembled decision record.
type ADRSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ADR is an assembled Architecture Decision Record. Identity fields come
// from the caller so regeneration with the same id stays reproducible.
type ADR struct {
	ID       string       `json:"id"`
	Date     string       `json:"date"`
	Status   string       `json:"status"`
	Deciders []string     `json:"deciders,omitempty"`
	Sections []ADRSection `json:"sections"`
}

// Section returns the section with the given title, or nil.
func (a *ADR) Section(title string) *ADRSection {
	for i := range a.Sections {
		if a.Sections[i].Title == title {
			return &a.Sections[i]
		}
	}
	return nil
}
