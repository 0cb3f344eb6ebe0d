// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/genealogy-tex/pkg/types"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "John Smith", "John Smith"},
		{
			name: "all control characters",
			in:   `50% & $5 #1 a_b {x} ~ ^ \`,
			want: `50\% \& \$5 \#1 a\_b \{x\} \textasciitilde{} \textasciicircum{} \textbackslash{}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestEscapeURL(t *testing.T) {
	got := EscapeURL("https://example.org/a_b#c?x=1&y=%20~^")
	assert.Equal(t, `https://example.org/a\_b\#c?x=1\&y=\%20\~{}\^{}`, got)
}

func TestParseLink(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantKind types.LinkKind
		wantID   string
	}{
		{"hash person reference", "#i42", types.LinkPerson, "42"},
		{"bare person reference", "i7", types.LinkPerson, "7"},
		{"https url", "https://example.org/x", types.LinkURL, ""},
		{"http url", "http://example.org", types.LinkURL, ""},
		{"unrecognized", "xyz", types.LinkUnrecognized, ""},
		{"word starting with i", "index.html", types.LinkUnrecognized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := ParseLink("label", tt.target)
			assert.Equal(t, tt.wantKind, link.Kind)
			assert.Equal(t, tt.wantID, link.PersonID)
		})
	}
}

func TestLinks(t *testing.T) {
	links := Links("son of [John](#i3) and [Mary](#i4), see [record](https://example.org)")
	require.Len(t, links, 3)
	assert.Equal(t, "John", links[0].Label)
	assert.Equal(t, "3", links[0].PersonID)
	assert.Equal(t, "[Mary](#i4)", links[1].Raw)
	assert.Equal(t, types.LinkURL, links[2].Kind)

	assert.True(t, HasLink("x [a](b) y"))
	assert.False(t, HasLink("no links [here]"))
}

func TestFormat_Links(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "person cross-reference",
			in:   "[Jane Doe](#i42)",
			want: `\textcolor{accent}{\textbf{\underline{\hyperlink{person42}{\breakablename{Jane Doe}}}}}`,
		},
		{
			name: "external url is escaped",
			in:   "[source](https://example.org/x_y)",
			want: `\textcolor{accent}{\href{https://example.org/x\_y}{source}}`,
		},
		{
			name: "unrecognized target stays literal",
			in:   "[Odd](xyz)",
			want: "[Odd](xyz)",
		},
		{
			name: "prose around link is escaped",
			in:   "Smith & Co [Jane](#i7)",
			want: `Smith \& Co \textcolor{accent}{\textbf{\underline{\hyperlink{person7}{\breakablename{Jane}}}}}`,
		},
		{
			name: "no break hints inside command arguments",
			in:   "[Jane and John](#i42)",
			want: `\textcolor{accent}{\textbf{\underline{\hyperlink{person42}{\breakablename{Jane and John}}}}}`,
		},
		{
			name: "no break hints inside a later argument",
			in:   "see [Map of Ohio and Kentucky](https://example.org/m)",
			want: `see \textcolor{accent}{\href{https://example.org/m}{Map of Ohio and Kentucky}}`,
		},
		{
			name: "hints resume after the command",
			in:   "[map](https://example.org/m) of Ohio and Kentucky",
			want: `\textcolor{accent}{\href{https://example.org/m}{map}} of \allowbreak  Ohio and \allowbreak  Kentucky`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestFormat_SoftBreaks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "son of and",
			in:   "John son of Peter and Mary",
			want: `John son of \penalty10\hspace{0pt}  Peter and \allowbreak  Mary`,
		},
		{
			name: "daughter of",
			in:   "Mary daughter of John Smith",
			want: `Mary daughter \allowbreak  of \allowbreak  John Smith`,
		},
		{
			name: "phrase at end of text is left alone",
			in:   "Smith and",
			want: "Smith and",
		},
		{
			name: "no phrases",
			in:   "born 1850 in Ohio",
			want: "born 1850 in Ohio",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestURL(t *testing.T) {
	assert.Equal(t,
		`\href{https://example.org/a_b}{\small\textcolor{accent}{https://example.org/a\_b}}`,
		URL("https://example.org/a_b"))
}
