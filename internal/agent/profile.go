package agent

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/ideate/internal/domain"
)

// StepStyle selects how step completions are parsed.
type StepStyle int

const (
	// StepLines parses one step per line.
	StepLines StepStyle = iota
	// StepBlocks parses "Name: details" blocks separated by blank lines.
	StepBlocks
)

// Profile configures a DomainAgent: persona, narrative structure,
// extraction rules, and step parsing. Agents differ only through their
// profile.
type Profile struct {
	Domain  domain.Type
	Persona string

	// Sections describe narrative paragraphs 2-5; paragraph 1 is always
	// an executive summary and is discarded during extraction.
	Sections [4]string

	// Lexicon filters extracted sentences; empty means no filter.
	Lexicon []string

	// MinPointLen is the minimum sentence length kept during extraction.
	MinPointLen int

	StepStyle StepStyle
	MaxSteps  int

	// EnrichFromCode scans fenced code blocks in the concept for extra
	// prompt keywords.
	EnrichFromCode bool
}

// DefaultMinPointLen is the sentence length floor for lexicon-filtered
// profiles.
const DefaultMinPointLen = 15

// Profiles returns the built-in profile for every recognized domain.
func Profiles() map[domain.Type]Profile {
	profiles := []Profile{
		{
			Domain:  domain.Technology,
			Persona: "senior technology architect",
			Sections: [4]string{
				"the technical implementation strategy: required components, architecture, and risks",
				"the critical engineering challenges and how to confront them",
				"the surrounding technology landscape: similar systems and competing approaches",
				"breakthrough possibilities and future technical advantages",
			},
			Lexicon:     []string{"technolog", "system", "develop", "implement", "component", "design"},
			MinPointLen: DefaultMinPointLen,
		},
		{
			Domain:  domain.Business,
			Persona: "business strategy consultant",
			Sections: [4]string{
				"the business model and go-to-market strategy",
				"the open commercial risks and market uncertainties",
				"adjacent markets, competitors, and comparable ventures",
				"growth opportunities and differentiation plays",
			},
			MinPointLen: 10,
		},
		{
			Domain:  domain.HardScience,
			Persona: "research scientist",
			Sections: [4]string{
				"the experimental approach: methods, data, and validation",
				"the open scientific questions and methodological challenges",
				"related research programs and adjacent theory",
				"future research directions this could unlock",
			},
			Lexicon:     []string{"research", "experiment", "method", "analysis", "data", "hypothesis", "theory"},
			MinPointLen: DefaultMinPointLen,
		},
		{
			Domain:  domain.Code,
			Persona: "principal software engineer",
			Sections: [4]string{
				"the software design: interfaces, components, and architecture patterns",
				"the hard implementation questions and trade-offs to resolve",
				"related systems, libraries, and prior art",
				"innovation opportunities in the implementation",
			},
			Lexicon:        []string{"design", "interface", "component", "pattern", "architecture", "user", "code", "implementation"},
			MinPointLen:    DefaultMinPointLen,
			StepStyle:      StepBlocks,
			MaxSteps:       8,
			EnrichFromCode: true,
		},
		{
			Domain:  domain.Literature,
			Persona: "literary editor",
			Sections: [4]string{
				"the narrative craft: character, plot, and structure",
				"the unresolved storytelling questions",
				"comparable works, genres, and traditions",
				"stylistic innovations the work could attempt",
			},
			Lexicon:     []string{"character", "plot", "theme", "narrative", "story", "writing", "genre"},
			MinPointLen: DefaultMinPointLen,
		},
		{
			Domain:  domain.SocialScience,
			Persona: "social science researcher",
			Sections: [4]string{
				"the study design and the populations involved",
				"the open questions about human behavior and measurement",
				"related studies and competing explanations",
				"the broader societal implications",
			},
			MinPointLen: 10,
		},
		{
			Domain:  domain.Arts,
			Persona: "practicing artist and curator",
			Sections: [4]string{
				"the artistic execution: medium, technique, and composition",
				"the unresolved creative decisions",
				"related movements, artists, and visual traditions",
				"creative possibilities the piece could explore",
			},
			Lexicon:     []string{"visual", "color", "composition", "style", "medium", "technique", "artistic"},
			MinPointLen: DefaultMinPointLen,
		},
		{
			Domain:  domain.Philosophy,
			Persona: "philosophy professor",
			Sections: [4]string{
				"the core argument and its conceptual commitments",
				"the strongest objections and open problems",
				"related positions and historical antecedents",
				"transformative possibilities of the view",
			},
			Lexicon:     []string{"philosoph", "concept", "argument", "theory", "ethics", "logic"},
			MinPointLen: DefaultMinPointLen,
		},
		{
			Domain:  domain.Writing,
			Persona: "professional content strategist",
			Sections: [4]string{
				"the content strategy: audience, voice, and channels",
				"the open editorial questions",
				"comparable publications and content formats",
				"success metrics and growth levers",
			},
			Lexicon:     []string{"content", "write", "style", "audience", "edit", "seo", "engage"},
			MinPointLen: DefaultMinPointLen,
		},
	}

	out := make(map[domain.Type]Profile, len(profiles))
	for _, p := range profiles {
		out[p.Domain] = p
	}
	return out
}

// GenericProfile builds a fallback profile for domains without a
// registered specialist.
func GenericProfile(d domain.Type) Profile {
	return Profile{
		Domain:  d,
		Persona: fmt.Sprintf("%s consultant", strings.ReplaceAll(string(d), "_", " ")),
		Sections: [4]string{
			"how the idea could be realized in practice",
			"the open questions that need answers first",
			"related ideas and prior attempts",
			"opportunities the idea opens up",
		},
		MinPointLen: 10,
	}
}

// AnalysisPrompt builds the narrative analysis prompt for an idea.
// extraKeywords come from code scanning and are appended after the
// idea's own keywords.
func (p Profile) AnalysisPrompt(idea *domain.Idea, extraKeywords []string) string {
	keywords := idea.DisplayKeywords()
	if len(extraKeywords) > 0 {
		if keywords != "" {
			keywords += ", "
		}
		keywords += strings.Join(extraKeywords, ", ")
	}

	return fmt.Sprintf(`As a %s, write a narrative analysis of: %s
Keywords: %s

Structure the response as exactly five paragraphs separated by blank lines:

1. An executive summary of the idea's potential.
2. Deep-dive into %s.
3. Address %s.
4. Explore %s.
5. Conclude with %s.

Keep the response precise yet engaging to read.`,
		p.Persona, idea.Concept, keywords,
		p.Sections[0], p.Sections[1], p.Sections[2], p.Sections[3])
}

// StepsPrompt builds the implementation-steps prompt, seeded with up to
// three suggestions from the analysis.
func (p Profile) StepsPrompt(idea *domain.Idea, suggestions []string) string {
	context := suggestions
	if len(context) > 3 {
		context = context[:3]
	}
	var sb strings.Builder
	for _, s := range context {
		sb.WriteString("- ")
		sb.WriteString(s)
		sb.WriteString("\n")
	}

	format := "List the steps in order, one per line, with no numbering."
	if p.StepStyle == StepBlocks {
		format = `Describe each step as "Name: details", separated by blank lines.`
	}

	return fmt.Sprintf(`As a %s, lay out the concrete steps to realize: %s

Context from analysis:
%s
%s`, p.Persona, idea.Concept, sb.String(), format)
}

// DiagramPrompt asks for step relationships in "A -> B" line format.
func (p Profile) DiagramPrompt(idea *domain.Idea, steps []string) string {
	var sb strings.Builder
	for _, s := range steps {
		sb.WriteString("- ")
		sb.WriteString(s)
		sb.WriteString("\n")
	}

	return fmt.Sprintf(`Map the dependencies between these steps for: %s

%s
Return the relationships one per line in the format:
Step1 -> Step2
Step2 -> Step3

Only include the most important connections.`, idea.Concept, sb.String())
}

// ImagePrompt builds a concept-image generation prompt, seeded with up
// to two suggestions from the analysis.
func (p Profile) ImagePrompt(idea *domain.Idea, suggestions []string) string {
	context := suggestions
	if len(context) > 2 {
		context = context[:2]
	}
	var sb strings.Builder
	for _, s := range context {
		sb.WriteString("- ")
		sb.WriteString(s)
		sb.WriteString("\n")
	}

	return fmt.Sprintf(`A clear conceptual illustration of: %s

Visual context:
%sFocus on the core purpose and key components of the concept.`, idea.Concept, sb.String())
}

// ChatPrompt builds a domain-voiced reply prompt for a chat message.
func (p Profile) ChatPrompt(message string) string {
	return fmt.Sprintf(`As a specialized %s agent, respond to this message:

Message: %s

Provide a helpful response focusing on %s-specific insights and recommendations.`,
		p.Domain, message, p.Domain)
}
