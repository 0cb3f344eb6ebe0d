// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/genealogy-tex/pkg/types"
)

func renderLaTeX(t *testing.T, doc *types.Document) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, LaTeX{}.Render(&buf, doc))
	return buf.String()
}

func TestLaTeX_PersonWithNestedMarriage(t *testing.T) {
	doc := &types.Document{Persons: []types.Person{{
		ID:              "1",
		EntryNumber:     "1",
		Name:            "John SMITH",
		Clause:          "born 1820",
		GenerationTitle: "First Generation",
		Sections: []types.Section{
			{Kind: types.SectionNotes, Lines: []string{"He farmed."}},
			{Kind: types.SectionMarriage, Text: "John married Mary JONES in 1875.", Nested: true},
			{
				Kind:    types.SectionChildrenHeading,
				Nested:  true,
				Heading: &types.Heading{Polarity: types.PolarityHis, Plural: true},
				Children: []types.ChildEntry{
					{Marker: types.MarkerRoman, Roman: "i", Name: "Anna SMITH", Rest: "born 1876"},
				},
			},
		},
	}}}

	want := "\\generationtitle{First Generation}\n\n" +
		"\\entry{1}{1}{\\textbf{John SMITH},}{born 1820}\n\n" +
		"\\noindent \\textbf{General Notes:}\nHe farmed.\n\n" +
		"\n\\marriage{John married Mary JONES in 1875.}\n\n" +
		"\\hischildheadingplural\n\n" +
		"\\childentry{i. \\textbf{Anna SMITH},}{born 1876}\n\n"
	assert.Equal(t, want, renderLaTeX(t, doc))
}

func TestLaTeX_TopLevelMarriageAndBiography(t *testing.T) {
	doc := &types.Document{Persons: []types.Person{{
		ID:          "4",
		EntryNumber: "4",
		Name:        "Ruth BROWN",
		Sections: []types.Section{
			{Kind: types.SectionBiography, Lines: []string{"Kept a diary.", "https://example.org/ruth"}},
			{Kind: types.SectionMarriage, Text: "Ruth BROWN married Carl WEISS."},
			{
				Kind:     types.SectionChildrenHeading,
				Heading:  &types.Heading{},
				Children: []types.ChildEntry{{Marker: types.MarkerNone, Name: "Otto WEISS"}},
			},
		},
	}}}

	want := "\\entry{4}{4}{\\textbf{Ruth BROWN}}{}\n\n" +
		"\\noindent \\textbf{Biography:}\nKept a diary.\n" +
		"\\href{https://example.org/ruth}{\\small\\textcolor{accent}{https://example.org/ruth}}\n\n" +
		"\\marriage{Ruth BROWN married Carl WEISS.}\n\n" +
		"\n\\childrenheadingsingular\n\n" +
		"\\childentry{\\textbf{Otto WEISS}}{}\n\n"
	assert.Equal(t, want, renderLaTeX(t, doc))
}

func TestLaTeX_MarriageAfterNotesGetsBlankLine(t *testing.T) {
	doc := &types.Document{Persons: []types.Person{{
		ID: "2", EntryNumber: "2", Name: "Ann",
		Sections: []types.Section{
			{Kind: types.SectionNotes, Lines: []string{"x"}},
			{Kind: types.SectionMarriage, Text: "Ann married Bob."},
		},
	}}}
	assert.Contains(t, renderLaTeX(t, doc), "x\n\n\n\\marriage{Ann married Bob.}\n\n")
}

func TestLaTeX_SingleLineBiography(t *testing.T) {
	doc := &types.Document{Persons: []types.Person{{
		ID: "3", EntryNumber: "3", Name: "Ann",
		Sections: []types.Section{{Kind: types.SectionBiography, Text: "https://example.org/a_b"}},
	}}}
	assert.Contains(t, renderLaTeX(t, doc),
		"\\noindent \\textbf{Biography:}\n\\href{https://example.org/a_b}{\\small\\textcolor{accent}{https://example.org/a\\_b}}\n\n")
}

func TestLaTeX_Dividers(t *testing.T) {
	doc := &types.Document{Persons: []types.Person{
		{ID: "1", EntryNumber: "1", Name: "A"},
		{ID: "2", EntryNumber: "2", Name: "B"},
		{ID: "3", EntryNumber: "3", Name: "C", GenerationTitle: "Second Generation"},
	}}

	want := "\\entry{1}{1}{\\textbf{A}}{}\n\n" +
		"\\dividerline\n\n" +
		"\\entry{2}{2}{\\textbf{B}}{}\n\n" +
		"\\generationtitle{Second Generation}\n\n" +
		"\\entry{3}{3}{\\textbf{C}}{}\n\n"
	assert.Equal(t, want, renderLaTeX(t, doc))
}

func TestLaTeX_EmptyDocument(t *testing.T) {
	assert.Empty(t, renderLaTeX(t, &types.Document{}))
}

func TestChildEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry types.ChildEntry
		want  string
	}{
		{
			name:  "reference",
			entry: types.ChildEntry{Marker: types.MarkerReference, Ref: "14", Roman: "ii", Name: "Peter SMITH", Rest: "born 1878"},
			want:  "\\childentry{\\badge{14} ii. \\textbf{Peter SMITH},}{born 1878}\n\n",
		},
		{
			name:  "roman without rest",
			entry: types.ChildEntry{Marker: types.MarkerRoman, Roman: "iii", Name: "Late SMITH"},
			want:  "\\childentry{iii. \\textbf{Late SMITH}}{}\n\n",
		},
		{
			name:  "fallback",
			entry: types.ChildEntry{Marker: types.MarkerNone, Name: "Otto", Rest: "d. 1900"},
			want:  "\\childentry{\\textbf{Otto},}{d. 1900}\n\n",
		},
		{
			name:  "linked name",
			entry: types.ChildEntry{Marker: types.MarkerRoman, Roman: "i", Name: "[Peter SMITH](#i12)"},
			want:  "\\childentry{i. \\textcolor{accent}{\\textbf{\\underline{\\hyperlink{person12}{\\breakablename{Peter SMITH}}}}}}{}\n\n",
		},
		{
			name:  "escaped name",
			entry: types.ChildEntry{Marker: types.MarkerRoman, Roman: "i", Name: "A & B"},
			want:  "\\childentry{i. \\textbf{A \\& B}}{}\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChildEntry(tt.entry))
		})
	}
}

func TestHeadingCommand(t *testing.T) {
	assert.Equal(t, `\hischildheadingsingular`, headingCommand(&types.Heading{Polarity: types.PolarityHis}))
	assert.Equal(t, `\herchildheadingplural`, headingCommand(&types.Heading{Polarity: types.PolarityHer, Plural: true}))
	assert.Equal(t, `\childrenheadingplural`, headingCommand(&types.Heading{Plural: true}))
	assert.Equal(t, `\childrenheadingplural`, headingCommand(nil))
}

func TestFor(t *testing.T) {
	r, err := For(types.OutputLaTeX)
	require.NoError(t, err)
	assert.IsType(t, LaTeX{}, r)

	r, err = For(types.OutputYAML)
	require.NoError(t, err)
	assert.IsType(t, YAML{}, r)

	_, err = For("pdf")
	assert.Error(t, err)
}

func sampleDoc() *types.Document {
	return &types.Document{
		Source: "book.txt",
		Mode:   types.ModeAnchored,
		Persons: []types.Person{{
			ID: "1", EntryNumber: "1", Name: "John SMITH", Clause: "born 1820",
			Body: []string{"raw"},
			Sections: []types.Section{
				{Kind: types.SectionMarriage, Text: "John married Mary."},
			},
		}},
	}
}

func TestYAML_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML{}.Render(&buf, sampleDoc()))

	var got types.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Persons, 1)
	assert.Equal(t, "John SMITH", got.Persons[0].Name)
	assert.Nil(t, got.Persons[0].Body)
	assert.NotContains(t, buf.String(), "raw")
}

func TestJSON_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON{}.Render(&buf, sampleDoc()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "anchored", got["mode"])
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  "))
}
