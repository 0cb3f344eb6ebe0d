package children

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/genealogy-tex/internal/classify"
	"github.com/pdiddy/genealogy-tex/pkg/types"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want types.ChildEntry
	}{
		{
			name: "reference badged",
			line: "(14) ii. Mary SMITH, born 1878",
			want: types.ChildEntry{Marker: types.MarkerReference, Ref: "14", Roman: "ii", Name: "Mary SMITH", Rest: "born 1878"},
		},
		{
			name: "reference badged without rest",
			line: "(15) iii. Peter SMITH",
			want: types.ChildEntry{Marker: types.MarkerReference, Ref: "15", Roman: "iii", Name: "Peter SMITH"},
		},
		{
			name: "roman with comma",
			line: "i. John SMITH, born 1876, died young",
			want: types.ChildEntry{Marker: types.MarkerRoman, Roman: "i", Name: "John SMITH", Rest: "born 1876, died young"},
		},
		{
			name: "roman with was",
			line: "iv. Oswald SMITH was born in 1880",
			want: types.ChildEntry{Marker: types.MarkerRoman, Roman: "iv", Name: "Oswald SMITH", Rest: "born in 1880"},
		},
		{
			name: "roman uppercase",
			line: "VI. Ruth SMITH",
			want: types.ChildEntry{Marker: types.MarkerRoman, Roman: "VI", Name: "Ruth SMITH"},
		},
		{
			name: "roman with linked name",
			line: "ii. [Jane SMITH](#i42), born 1880",
			want: types.ChildEntry{Marker: types.MarkerRoman, Roman: "ii", Name: "[Jane SMITH](#i42)", Rest: "born 1880"},
		},
		{
			name: "fallback comma split",
			line: "Infant SMITH, died at birth",
			want: types.ChildEntry{Marker: types.MarkerNone, Name: "Infant SMITH", Rest: "died at birth"},
		},
		{
			name: "fallback whole line",
			line: "Infant SMITH",
			want: types.ChildEntry{Marker: types.MarkerNone, Name: "Infant SMITH"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.line))
		})
	}
}

func TestParse_RecoversOrdinalSequence(t *testing.T) {
	numerals := []string{"i", "ii", "iii", "iv", "v", "vi", "vii", "viii", "ix", "x"}
	var lines []string
	for i, n := range numerals {
		lines = append(lines, fmt.Sprintf("%s. Child%d SMITH, born 19%02d", n, i, i))
		if i%3 == 0 {
			lines = append(lines, "")
		}
	}

	entries, next := Parse(classify.New("John SMITH"), lines, 0)
	require.Len(t, entries, len(numerals))
	assert.Equal(t, len(lines), next)
	for i, e := range entries {
		assert.Equal(t, numerals[i], e.Roman)
		assert.Equal(t, fmt.Sprintf("Child%d SMITH", i), e.Name)
	}
}

func TestParse_StopsAtSection(t *testing.T) {
	lines := []string{
		"His children were:",
		"i. Mary SMITH",
		"",
		"ii. Ann SMITH, married Peter BROWN",
		"John married second Sarah GREEN.",
		"i. Late SMITH",
	}
	entries, next := Parse(classify.New("John SMITH"), lines, 1)
	require.Len(t, entries, 2)
	assert.Equal(t, "married Peter BROWN", entries[1].Rest)
	assert.Equal(t, 4, next)

	lines = []string{"i. Mary SMITH", "General Notes:", "ii. Ann"}
	entries, next = Parse(classify.New("John SMITH"), lines, 0)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, next)

	lines = []string{"i. Mary SMITH", "Biography: https://example.org"}
	_, next = Parse(classify.New("John SMITH"), lines, 0)
	assert.Equal(t, 1, next)
}
