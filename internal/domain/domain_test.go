package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Type
		wantErr bool
	}{
		{name: "exact", input: "technology", want: Technology},
		{name: "uppercase", input: "TECHNOLOGY", want: Technology},
		{name: "whitespace", input: "  code \n", want: Code},
		{name: "underscore domain", input: "hard_science", want: HardScience},
		{name: "unknown", input: "alchemy", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllValid(t *testing.T) {
	assert.Len(t, All, 9)
	for _, d := range All {
		assert.True(t, d.Valid(), "domain %s should be valid", d)
	}
	assert.False(t, Type("astrology").Valid())
}

func TestIdeaCacheKey(t *testing.T) {
	a := &Idea{Concept: "solar microgrid", Keywords: []string{"solar", "battery", "grid"}}
	b := &Idea{Concept: "solar microgrid", Keywords: []string{"grid", "solar", "battery"}}

	assert.Equal(t, a.CacheKey(), b.CacheKey(), "keyword order must not affect the cache key")

	c := &Idea{Concept: "solar microgrid", Keywords: []string{"solar"}}
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
}

func TestIdeaDisplayKeywords(t *testing.T) {
	i := &Idea{Keywords: []string{"zeta", "alpha", "mid"}}
	assert.Equal(t, "zeta, alpha, mid", i.DisplayKeywords(), "display order must preserve input order")

	empty := &Idea{}
	assert.Equal(t, "", empty.DisplayKeywords())
}
