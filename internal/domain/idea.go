package domain

import (
	"sort"
	"strings"
	"time"
)

// Idea is the unit of work flowing through the pipeline. Agents treat it
// as read-only; enrichment happens on the Response side.
type Idea struct {
	Concept          string            `json:"concept"`
	Domain           Type              `json:"domain"`
	Keywords         []string          `json:"keywords"`
	DevelopmentStage string            `json:"development_stage"`
	Context          map[string]string `json:"context,omitempty"`
}

// CacheKey returns a stable identity for the idea: the concept plus its
// keywords sorted and comma-joined. Two ideas with the same concept and
// the same keyword set share a key regardless of keyword order.
func (i *Idea) CacheKey() string {
	sorted := make([]string, len(i.Keywords))
	copy(sorted, i.Keywords)
	sort.Strings(sorted)
	return i.Concept + "|" + strings.Join(sorted, ",")
}

// DisplayKeywords joins the keywords in their original order for use in
// prompts and summaries.
func (i *Idea) DisplayKeywords() string {
	return strings.Join(i.Keywords, ", ")
}

// Response is the structured outcome of one agent pass over an idea.
// Coordinators never mutate member responses; merging builds a fresh one.
type Response struct {
	Suggestions         []string `json:"suggestions"`
	Questions           []string `json:"questions"`
	RelatedConcepts     []string `json:"related_concepts"`
	ImplementationSteps []string `json:"implementation_steps"`
	NextStepsTree       string   `json:"next_steps_tree,omitempty"`
	ConceptImage        string   `json:"concept_image,omitempty"`
}

// DevelopedIdea is the full record returned by a development pass:
// the persisted idea plus everything the agents produced.
type DevelopedIdea struct {
	ID          int64     `json:"id"`
	Idea        Idea      `json:"idea"`
	Development Response  `json:"development"`
	Timestamp   time.Time `json:"timestamp"`
}

// SubTask is a delegated unit of work aimed at a specific domain.
type SubTask struct {
	Domain  Type              `json:"domain"`
	Task    string            `json:"task"`
	Context map[string]string `json:"context,omitempty"`
}
