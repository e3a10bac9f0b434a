// Package relevance gates off-topic queries before any retrieval or
// generation cost is paid.
package relevance

import "strings"

// architectureKeywords is the fixed domain vocabulary. A query counts as
// in-domain when it contains at least one of these, case-insensitively.
var architectureKeywords = []string{
	"architecture", "design pattern", "microservices", "monolith", "event-driven",
	"scalability", "availability", "fault tolerance", "deployment", "api gateway",
	"container", "ci/cd", "load balancing", "domain-driven design", "soa",
	"component", "distributed", "infrastructure", "cloud-native", "system design",
}

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify reports whether the query falls within the assistant's domain.
// Pure substring matching, no side effects.
func (c *Classifier) Classify(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range architectureKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
