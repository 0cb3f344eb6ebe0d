// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package section walks the body of one person and produces its Notes,
// Biography, Marriage and children sections in encounter order.
//
// The walk is a small state machine driven by an explicit cursor: each
// handler receives the index of its triggering line and returns the index
// where scanning resumes, so handlers can hand off to one another (notes
// to marriage to child list) without shared position state.
package section

import (
	"strings"

	"github.com/pdiddy/genealogy-tex/internal/children"
	"github.com/pdiddy/genealogy-tex/internal/classify"
	"github.com/pdiddy/genealogy-tex/pkg/types"
)

// biographyStops are lines that end a Biography block.
var biographyStops = map[string]bool{
	"The child from this marriage was:": true,
	"Children from this marriage were:": true,
	"His child was:":                    true,
	"His children were:":                true,
	"Her child was:":                    true,
	"Her children were:":                true,
}

// handler processes the section triggered at line i and returns the next
// cursor position.
type handler func(p *processor, i int) int

// transitions maps the class of a line seen while scanning the body to
// the handler it triggers. Lines of any other class are skipped.
var transitions = map[classify.Kind]handler{
	classify.NotesHeader:     (*processor).notes,
	classify.BiographyHeader: (*processor).biography,
	classify.Marriage:        func(p *processor, i int) int { return p.marriage(i) },
	classify.ChildrenHeading: func(p *processor, i int) int { return p.childList(i, false) },
}

type processor struct {
	c     *classify.Classifier
	lines []string
	out   []types.Section
}

// Process returns the sections of a person's body. lines excludes the
// header line; c is the classifier for the person's display name.
func Process(c *classify.Classifier, lines []string) []types.Section {
	p := &processor{c: c, lines: lines}
	for i := 0; i < len(p.lines); {
		h, ok := transitions[c.Classify(p.lines[i])]
		if !ok {
			i++
			continue
		}
		i = h(p, i)
	}
	return p.out
}

func (p *processor) line(i int) string {
	return strings.TrimSpace(p.lines[i])
}

// nextNonBlank returns the index of the first non-blank line at or after i.
func (p *processor) nextNonBlank(i int) int {
	for i < len(p.lines) && p.line(i) == "" {
		i++
	}
	return i
}

// notes collects a General Notes block. Collection ends at a Biography
// header or a children heading. Marriage statements inside the block are
// lifted out and emitted after it; when one is directly followed by a
// children heading, the block ends there and the child list follows.
func (p *processor) notes(i int) int {
	sec := types.Section{Kind: types.SectionNotes}
	if first := classify.NotesRemainder(p.line(i)); first != "" {
		sec.Lines = append(sec.Lines, first)
	}

	var marriages []string
	heading := -1
	j := i + 1
	for ; j < len(p.lines); j++ {
		cur := p.line(j)
		if classify.IsBiographyHeader(cur) {
			break
		}
		if p.c.IsMarriage(cur) {
			marriages = append(marriages, cur)
			next := p.nextNonBlank(j + 1)
			if next < len(p.lines) {
				if _, ok := classify.ChildHeading(p.line(next)); ok {
					heading = next
					break
				}
			}
			continue
		}
		if _, ok := classify.ChildHeading(cur); ok {
			heading = j
			break
		}
		if cur != "" {
			sec.Lines = append(sec.Lines, cur)
		}
	}

	p.out = append(p.out, sec)
	for _, m := range marriages {
		p.out = append(p.out, types.Section{Kind: types.SectionMarriage, Text: m, Nested: true})
	}
	if heading >= 0 {
		return p.childList(heading, true)
	}
	return j
}

// biography collects a Biography block. Text on the header line itself is
// a single-line biography, usually a URL.
func (p *processor) biography(i int) int {
	if rest := classify.BiographyRemainder(p.line(i)); rest != "" {
		p.out = append(p.out, types.Section{Kind: types.SectionBiography, Text: rest})
		return i + 1
	}

	sec := types.Section{Kind: types.SectionBiography}
	j := i + 1
	for ; j < len(p.lines); j++ {
		cur := p.line(j)
		if strings.HasPrefix(cur, "married") || biographyStops[cur] {
			break
		}
		if cur != "" {
			sec.Lines = append(sec.Lines, cur)
		}
	}
	p.out = append(p.out, sec)
	return j
}

// marriage emits the marriage statement at line i and looks ahead for
// the children heading that belongs to it. The look-ahead stops at the
// next section start; without a heading scanning resumes after line i.
func (p *processor) marriage(i int) int {
	p.out = append(p.out, types.Section{Kind: types.SectionMarriage, Text: p.line(i)})
	for j := i + 1; j < len(p.lines); j++ {
		cur := p.line(j)
		if _, ok := classify.ChildHeading(cur); ok {
			return p.childList(j, false)
		}
		if p.c.IsSectionStart(cur) {
			break
		}
	}
	return i + 1
}

// childList emits the children heading at line i with the entries that
// follow it and returns the first line after the list.
func (p *processor) childList(i int, nested bool) int {
	h, _ := classify.ChildHeading(p.line(i))
	entries, next := children.Parse(p.c, p.lines, i+1)
	p.out = append(p.out, types.Section{
		Kind:     types.SectionChildrenHeading,
		Heading:  &h,
		Children: entries,
		Nested:   nested,
	})
	return next
}
