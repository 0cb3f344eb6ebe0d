// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render emits a parsed Document, either as LaTeX commands for
// the record-book template or as a structured YAML/JSON document.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/genealogy-tex/internal/inline"
	"github.com/pdiddy/genealogy-tex/pkg/types"
)

// Renderer writes a Document to w.
type Renderer interface {
	Render(w io.Writer, doc *types.Document) error
}

// For returns the renderer for an output format.
func For(format types.OutputFormat) (Renderer, error) {
	switch format {
	case types.OutputLaTeX, "":
		return LaTeX{}, nil
	case types.OutputYAML:
		return YAML{}, nil
	case types.OutputJSON:
		return JSON{}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q: use latex, yaml or json", format)
}

// LaTeX renders the command stream expected by the record-book template:
// \generationtitle, \entry, notes and biography blocks, \marriage, the
// six children headings, \childentry and \dividerline.
type LaTeX struct{}

// Render writes every person in order. A divider follows each person
// except the last, and except when the next person opens a generation.
func (LaTeX) Render(w io.Writer, doc *types.Document) error {
	var b strings.Builder
	for i := range doc.Persons {
		writePerson(&b, &doc.Persons[i])
		if i < len(doc.Persons)-1 && doc.Persons[i+1].GenerationTitle == "" {
			b.WriteString("\\dividerline\n\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writePerson(b *strings.Builder, p *types.Person) {
	if p.GenerationTitle != "" {
		fmt.Fprintf(b, "\\generationtitle{%s}\n\n", inline.Escape(p.GenerationTitle))
	}
	b.WriteString(Entry(p))

	var hasNotes, hasBio, afterNestedMarriage bool
	for _, sec := range p.Sections {
		switch sec.Kind {
		case types.SectionNotes:
			hasNotes = true
			b.WriteString("\\noindent \\textbf{General Notes:}\n")
			for _, l := range sec.Lines {
				b.WriteString(inline.Format(l) + "\n")
			}
			b.WriteString("\n")

		case types.SectionBiography:
			hasBio = true
			b.WriteString("\\noindent \\textbf{Biography:}\n")
			if sec.Text != "" {
				b.WriteString(inline.URL(sec.Text) + "\n\n")
				break
			}
			for _, l := range sec.Lines {
				if isURL(l) {
					b.WriteString(inline.URL(l) + "\n")
				} else {
					b.WriteString(inline.Format(l) + "\n")
				}
			}
			b.WriteString("\n")

		case types.SectionMarriage:
			if sec.Nested || (hasNotes && !hasBio) {
				b.WriteString("\n")
			}
			fmt.Fprintf(b, "\\marriage{%s}\n\n", inline.Format(sec.Text))

		case types.SectionChildrenHeading:
			if !(sec.Nested && afterNestedMarriage) {
				b.WriteString("\n")
			}
			b.WriteString(headingCommand(sec.Heading) + "\n\n")
			for _, c := range sec.Children {
				b.WriteString(ChildEntry(c))
			}
		}
		afterNestedMarriage = sec.Kind == types.SectionMarriage && sec.Nested
	}
}

// Entry renders the \entry command of a person: anchor id, display
// number, bolded name and biographical clause.
func Entry(p *types.Person) string {
	name := `\textbf{` + inline.Format(p.Name) + `}`
	if p.Clause == "" {
		return fmt.Sprintf("\\entry{%s}{%s}{%s}{}\n\n", p.ID, p.EntryNumber, name)
	}
	clause := strings.TrimSpace(inline.Format(p.Clause))
	return fmt.Sprintf("\\entry{%s}{%s}{%s,}{%s}\n\n", p.ID, p.EntryNumber, name, clause)
}

// ChildEntry renders one \childentry command. A linked name is rendered
// through its link instead of being bolded.
func ChildEntry(c types.ChildEntry) string {
	var name string
	if inline.HasLink(c.Name) {
		name = inline.Format(c.Name)
	} else {
		name = `\textbf{` + inline.Format(c.Name) + `}`
	}

	var prefix string
	switch c.Marker {
	case types.MarkerReference:
		prefix = `\badge{` + c.Ref + `} ` + c.Roman + ". "
	case types.MarkerRoman:
		prefix = c.Roman + ". "
	}

	if c.Rest == "" {
		return fmt.Sprintf("\\childentry{%s%s}{}\n\n", prefix, name)
	}
	return fmt.Sprintf("\\childentry{%s%s,}{%s}\n\n", prefix, name, inline.Format(c.Rest))
}

// headingCommand selects one of the six children heading commands.
func headingCommand(h *types.Heading) string {
	if h == nil {
		return `\childrenheadingplural`
	}
	number := "singular"
	if h.Plural {
		number = "plural"
	}
	switch h.Polarity {
	case types.PolarityHis:
		return `\hischildheading` + number
	case types.PolarityHer:
		return `\herchildheading` + number
	default:
		return `\childrenheading` + number
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
