// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/genealogy-tex/internal/classify"
	"github.com/pdiddy/genealogy-tex/pkg/types"
)

func kinds(secs []types.Section) []types.SectionKind {
	out := make([]types.SectionKind, len(secs))
	for i, s := range secs {
		out[i] = s.Kind
	}
	return out
}

func TestProcess_MarriageInsideNotes(t *testing.T) {
	lines := []string{
		"General Notes:",
		"He was a farmer in Ohio.",
		"John married Mary JONES on 4 May 1875.",
		"",
		"His children were:",
		"i. Anna SMITH, born 1876",
		"ii. [Peter SMITH](#i12), born 1878",
	}
	secs := Process(classify.New("John SMITH"), lines)

	require.Equal(t, []types.SectionKind{
		types.SectionNotes, types.SectionMarriage, types.SectionChildrenHeading,
	}, kinds(secs))

	assert.Equal(t, []string{"He was a farmer in Ohio."}, secs[0].Lines)
	assert.Equal(t, "John married Mary JONES on 4 May 1875.", secs[1].Text)
	assert.True(t, secs[1].Nested)

	heading := secs[2]
	assert.True(t, heading.Nested)
	assert.Equal(t, &types.Heading{Polarity: types.PolarityHis, Plural: true}, heading.Heading)
	require.Len(t, heading.Children, 2)
	assert.Equal(t, "Anna SMITH", heading.Children[0].Name)
	assert.Equal(t, "[Peter SMITH](#i12)", heading.Children[1].Name)
}

func TestProcess_NestedMarriageWithoutChildren(t *testing.T) {
	lines := []string{
		"General Notes: Born on the family farm.",
		"He served in the war.",
		"John married Sarah GREEN in 1880.",
		"They moved west in 1885.",
	}
	secs := Process(classify.New("John SMITH"), lines)

	require.Equal(t, []types.SectionKind{types.SectionNotes, types.SectionMarriage}, kinds(secs))
	assert.Equal(t, []string{
		"Born on the family farm.",
		"He served in the war.",
		"They moved west in 1885.",
	}, secs[0].Lines)
	assert.True(t, secs[1].Nested)
}

func TestProcess_ChildHeadingInsideNotes(t *testing.T) {
	lines := []string{
		"General Notes:",
		"She kept the family bible.",
		"Her child was:",
		"i. Ruth BROWN",
	}
	secs := Process(classify.New("Mary BROWN"), lines)

	require.Equal(t, []types.SectionKind{types.SectionNotes, types.SectionChildrenHeading}, kinds(secs))
	assert.Equal(t, &types.Heading{Polarity: types.PolarityHer}, secs[1].Heading)
	assert.True(t, secs[1].Nested)
	require.Len(t, secs[1].Children, 1)
}

func TestProcess_FullRecord(t *testing.T) {
	lines := []string{
		"",
		"General Notes:",
		"He was a blacksmith.",
		"Biography: https://example.org/smith",
		"John SMITH married Mary JONES in 1875.",
		"Children from this marriage were:",
		"i. Anna SMITH, born 1876",
		"(14) ii. Peter SMITH, born 1878",
		"",
		"John married second Sarah GREEN in 1890.",
		"The child from this marriage was:",
		"i. Late SMITH was born 1892",
	}
	secs := Process(classify.New("John SMITH"), lines)

	require.Equal(t, []types.SectionKind{
		types.SectionNotes,
		types.SectionBiography,
		types.SectionMarriage,
		types.SectionChildrenHeading,
		types.SectionMarriage,
		types.SectionChildrenHeading,
	}, kinds(secs))

	assert.Equal(t, "https://example.org/smith", secs[1].Text)
	assert.False(t, secs[2].Nested)
	assert.Equal(t, &types.Heading{Plural: true}, secs[3].Heading)
	assert.Len(t, secs[3].Children, 2)
	assert.Equal(t, "14", secs[3].Children[1].Ref)
	assert.Equal(t, &types.Heading{}, secs[5].Heading)
	require.Len(t, secs[5].Children, 1)
	assert.Equal(t, "born 1892", secs[5].Children[0].Rest)
}

func TestProcess_BiographyBlock(t *testing.T) {
	lines := []string{
		"Biography:",
		"Wrote a memoir of the crossing.",
		"",
		"https://example.org/memoir",
		"married Mary in 1870",
	}
	secs := Process(classify.New("John SMITH"), lines)

	require.Len(t, secs, 1)
	assert.Equal(t, types.SectionBiography, secs[0].Kind)
	assert.Equal(t, []string{"Wrote a memoir of the crossing.", "https://example.org/memoir"}, secs[0].Lines)
}

func TestProcess_BiographyStopsAtChildHeading(t *testing.T) {
	lines := []string{
		"Biography:",
		"A short life.",
		"His children were:",
		"i. Anna SMITH",
	}
	secs := Process(classify.New("John SMITH"), lines)

	require.Equal(t, []types.SectionKind{types.SectionBiography, types.SectionChildrenHeading}, kinds(secs))
	assert.Len(t, secs[1].Children, 1)
}

func TestProcess_MarriageLookAheadStopsAtSection(t *testing.T) {
	lines := []string{
		"John married Mary JONES.",
		"They had no issue.",
		"General Notes:",
		"He died in Ohio.",
		"His children were:",
		"i. Adopted SMITH",
	}
	secs := Process(classify.New("John SMITH"), lines)

	require.Equal(t, []types.SectionKind{
		types.SectionMarriage, types.SectionNotes, types.SectionChildrenHeading,
	}, kinds(secs))
	assert.Equal(t, []string{"He died in Ohio."}, secs[1].Lines)
}

func TestProcess_MarriedProseIsContent(t *testing.T) {
	lines := []string{
		"In 1875 he married Mary JONES.",
		"His children were:",
		"i. Anna SMITH",
	}
	secs := Process(classify.New("John SMITH"), lines)

	require.Equal(t, []types.SectionKind{types.SectionChildrenHeading}, kinds(secs))
}

func TestProcess_Empty(t *testing.T) {
	assert.Empty(t, Process(classify.New("John SMITH"), nil))
	assert.Empty(t, Process(classify.New("John SMITH"), []string{"", "Just prose."}))
}
