// Package domain defines the core vocabulary shared by agents, the
// orchestrator, and the persistence layer: the closed set of knowledge
// domains, the idea record, and the structured agent response.
package domain

import (
	"fmt"
	"strings"
)

// Type identifies a knowledge domain an idea can belong to.
type Type string

const (
	Technology    Type = "technology"
	Business      Type = "business"
	HardScience   Type = "hard_science"
	Code          Type = "code"
	Literature    Type = "literature"
	SocialScience Type = "social_science"
	Arts          Type = "arts"
	Philosophy    Type = "philosophy"
	Writing       Type = "writing"
)

// All lists every recognized domain in declaration order.
var All = []Type{
	Technology,
	Business,
	HardScience,
	Code,
	Literature,
	SocialScience,
	Arts,
	Philosophy,
	Writing,
}

// Parse normalizes raw into a domain Type. Matching is case-insensitive
// and tolerant of surrounding whitespace.
func Parse(raw string) (Type, error) {
	normalized := Type(strings.ToLower(strings.TrimSpace(raw)))
	for _, t := range All {
		if normalized == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("domain: unknown domain %q", raw)
}

// Valid reports whether t is one of the recognized domains.
func (t Type) Valid() bool {
	for _, known := range All {
		if t == known {
			return true
		}
	}
	return false
}

func (t Type) String() string {
	return string(t)
}
