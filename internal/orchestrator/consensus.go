package orchestrator

import (
	"sort"

	"github.com/dusk-indust/ideate/internal/domain"
)

// Consensus returns the entries that appear in at least
// threshold * responseCount of the given lists, deduplicated in
// first-occurrence order.
func Consensus(lists [][]string, threshold float64) []string {
	if len(lists) == 0 {
		return nil
	}

	minCount := threshold * float64(len(lists))
	counts := make(map[string]int)
	var order []string

	for _, list := range lists {
		for _, entry := range list {
			if counts[entry] == 0 {
				order = append(order, entry)
			}
			counts[entry]++
		}
	}

	var out []string
	for _, entry := range order {
		if float64(counts[entry]) >= minCount {
			out = append(out, entry)
		}
	}
	return out
}

// ConsensusSuggestions merges suggestions across responses.
func ConsensusSuggestions(responses []*domain.Response, threshold float64) []string {
	lists := make([][]string, len(responses))
	for i, r := range responses {
		lists[i] = r.Suggestions
	}
	return Consensus(lists, threshold)
}

// ConsensusQuestions merges questions across responses.
func ConsensusQuestions(responses []*domain.Response, threshold float64) []string {
	lists := make([][]string, len(responses))
	for i, r := range responses {
		lists[i] = r.Questions
	}
	return Consensus(lists, threshold)
}

// MergeImplementationSteps merges step lists: steps every response
// agrees on come first in the primary's order, then supporting-only
// steps sorted shortest first. The result is capped at maxMergedSteps.
func MergeImplementationSteps(primary []string, supporting [][]string) []string {
	if len(supporting) == 0 {
		if len(primary) > maxMergedSteps {
			return primary[:maxMergedSteps]
		}
		return primary
	}

	// Steps present in the primary and every supporting response.
	common := make(map[string]bool, len(primary))
	for _, step := range primary {
		common[step] = true
	}
	for _, list := range supporting {
		present := make(map[string]bool, len(list))
		for _, step := range list {
			present[step] = true
		}
		for step := range common {
			if !present[step] {
				delete(common, step)
			}
		}
	}

	merged := make([]string, 0, maxMergedSteps)
	for _, step := range primary {
		if common[step] {
			merged = append(merged, step)
		}
	}

	// Supporting-only contributions, shortest first.
	seen := make(map[string]bool, len(merged))
	for _, step := range merged {
		seen[step] = true
	}
	var unique []string
	for _, list := range supporting {
		for _, step := range list {
			if seen[step] {
				continue
			}
			seen[step] = true
			unique = append(unique, step)
		}
	}
	sort.SliceStable(unique, func(i, j int) bool { return len(unique[i]) < len(unique[j]) })

	merged = append(merged, unique...)
	if len(merged) > maxMergedSteps {
		merged = merged[:maxMergedSteps]
	}
	return merged
}
