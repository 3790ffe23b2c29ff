package agent

import "strings"

// Narrative holds the structured points extracted from a five-paragraph
// analysis. Innovations are kept for inspection but do not flow into
// the response.
type Narrative struct {
	Suggestions     []string
	Questions       []string
	RelatedConcepts []string
	Innovations     []string
}

// maxPointsPerSection caps how many sentences each narrative section
// contributes.
const maxPointsPerSection = 5

// ParseNarrative splits a completion into blank-line-separated
// paragraphs and extracts key points positionally: paragraph 1 is the
// executive summary and is discarded; paragraphs 2-5 become
// suggestions, questions, related concepts, and innovations. Short
// completions are padded with empty paragraphs, never rejected.
func ParseNarrative(text string, p Profile) Narrative {
	paragraphs := splitParagraphs(text)
	for len(paragraphs) < 5 {
		paragraphs = append(paragraphs, "")
	}

	return Narrative{
		Suggestions:     extractPoints(paragraphs[1], p),
		Questions:       extractPoints(paragraphs[2], p),
		RelatedConcepts: extractPoints(paragraphs[3], p),
		Innovations:     extractPoints(paragraphs[4], p),
	}
}

// splitParagraphs splits on blank lines and drops empty paragraphs.
func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// extractPoints splits a paragraph into sentences and keeps the ones
// long enough to carry content and, when the profile has a lexicon,
// mentioning at least one lexicon word.
func extractPoints(text string, p Profile) []string {
	var points []string
	for _, sentence := range strings.Split(text, ".") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= p.MinPointLen {
			continue
		}
		if len(p.Lexicon) > 0 && !mentionsAny(sentence, p.Lexicon) {
			continue
		}
		points = append(points, sentence)
		if len(points) >= maxPointsPerSection {
			break
		}
	}
	return points
}

func mentionsAny(sentence string, words []string) bool {
	lower := strings.ToLower(sentence)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// minBlockLen is the shortest step body kept by block-style parsing.
const minBlockLen = 10

// ParseSteps turns a step completion into a step list according to the
// profile's step style.
func ParseSteps(text string, p Profile) []string {
	switch p.StepStyle {
	case StepBlocks:
		return parseStepBlocks(text, p.MaxSteps)
	default:
		return parseStepLines(text, p.MaxSteps)
	}
}

// parseStepLines keeps every non-empty trimmed line.
func parseStepLines(text string, maxSteps int) []string {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		steps = append(steps, line)
		if maxSteps > 0 && len(steps) >= maxSteps {
			break
		}
	}
	return steps
}

// parseStepBlocks splits on blank lines and keeps the text after the
// first colon of each block, dropping bodies too short to be steps.
func parseStepBlocks(text string, maxSteps int) []string {
	var steps []string
	for _, block := range strings.Split(text, "\n\n") {
		_, body, found := strings.Cut(block, ":")
		if !found {
			continue
		}
		body = strings.TrimSpace(body)
		if len(body) <= minBlockLen {
			continue
		}
		steps = append(steps, body)
		if maxSteps > 0 && len(steps) >= maxSteps {
			break
		}
	}
	return steps
}
