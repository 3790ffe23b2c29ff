// Package orchestrator coordinates the idea development pipeline:
// domain classification, agent execution (single or collaborative),
// consensus merging, and persistence.
package orchestrator

// DefaultConsensusThreshold is the fraction of agents that must agree
// for a suggestion or question to survive the merge.
const DefaultConsensusThreshold = 0.5

// maxMergedSteps caps the merged implementation step list.
const maxMergedSteps = 10

// Config tunes collaborative development.
type Config struct {
	// ConsensusThreshold is the agreement fraction for merged
	// suggestions and questions.
	ConsensusThreshold float64
}

// DefaultConfig returns the standard collaboration settings.
func DefaultConfig() Config {
	return Config{
		ConsensusThreshold: DefaultConsensusThreshold,
	}
}

// threshold returns the configured threshold, falling back to the
// default when unset.
func (c Config) threshold() float64 {
	if c.ConsensusThreshold <= 0 {
		return DefaultConsensusThreshold
	}
	return c.ConsensusThreshold
}
