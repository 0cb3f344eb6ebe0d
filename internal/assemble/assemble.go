// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble groups the lines of a record book into per-person
// blocks.
//
// A document is anchored when any line starts with ##ANCHOR:i; each
// anchor then opens a person whose identifier is the anchor's digits.
// Otherwise persons are opened by numbered header lines ("12. Name").
// Generation headings are attached to the first person that follows.
package assemble

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/genealogy-tex/internal/classify"
	"github.com/pdiddy/genealogy-tex/pkg/types"
)

// WarningKind categorizes a recoverable assembly problem.
type WarningKind string

const (
	WarnMalformedAnchor WarningKind = "malformed-anchor"
	WarnEmptyEntry      WarningKind = "empty-entry"
)

// Warning describes a line that could not be turned into a person.
type Warning struct {
	Line    int         `json:"line" yaml:"line"`
	Kind    WarningKind `json:"kind" yaml:"kind"`
	Message string      `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Message)
}

// Result is the outcome of assembling one document.
type Result struct {
	Mode     types.AssemblyMode
	Persons  []types.Person
	Warnings []Warning

	// Orphans counts non-blank lines that belong to no person, such as a
	// preamble before the first anchor.
	Orphans int
}

// HasAnchors reports whether any line is an anchor marker.
func HasAnchors(lines []string) bool {
	for _, l := range lines {
		if classify.IsAnchorLike(l) {
			return true
		}
	}
	return false
}

// Assemble splits lines into persons. Persons carry their raw body lines,
// header line first; leading and trailing blank lines are dropped.
// Problems are returned as warnings and logged, never as errors.
func Assemble(lines []string, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.Default()
	}
	a := &assembler{logger: logger}
	if HasAnchors(lines) {
		a.res.Mode = types.ModeAnchored
		a.anchored(lines)
	} else {
		a.res.Mode = types.ModeUnanchored
		a.unanchored(lines)
	}
	if a.res.Orphans > 0 {
		logger.Debug("lines outside any person ignored", "count", a.res.Orphans)
	}
	return a.res
}

type assembler struct {
	logger *slog.Logger
	res    Result

	cur        *types.Person
	title      string // generation title waiting for its first person
	generation string // label in effect for new persons
}

func (a *assembler) anchored(lines []string) {
	for n, raw := range lines {
		line := strings.TrimSpace(raw)

		if classify.IsGenerationTitle(line) {
			a.setGeneration(line, generationLabel(line))
			continue
		}

		if classify.IsAnchorLike(line) {
			a.flush()
			id, ok := classify.AnchorID(line)
			if !ok {
				a.warn(n+1, WarnMalformedAnchor, fmt.Sprintf("could not extract person id from anchor %q", line))
				continue
			}
			a.open(id, n+1)
			continue
		}

		a.add(raw)
	}
	a.flush()
}

func (a *assembler) unanchored(lines []string) {
	for n, raw := range lines {
		line := strings.TrimSpace(raw)

		if label, ok := classify.GenerationLabel(line); ok {
			a.flush()
			a.setGeneration(line, label)
			continue
		}

		if num, ok := classify.PersonNumber(line); ok {
			a.flush()
			a.open(num, n+1)
			a.cur.EntryNumber = num
		}

		a.add(raw)
	}
	a.flush()
}

func (a *assembler) setGeneration(title, label string) {
	a.title = title
	a.generation = label
}

// open starts a new person and hands it the pending generation title.
func (a *assembler) open(id string, line int) {
	a.cur = &types.Person{
		ID:              id,
		Line:            line,
		Generation:      a.generation,
		GenerationTitle: a.title,
	}
	a.title = ""
}

func (a *assembler) add(raw string) {
	if a.cur == nil {
		if strings.TrimSpace(raw) != "" {
			a.res.Orphans++
		}
		return
	}
	a.cur.Body = append(a.cur.Body, raw)
}

// flush closes the current person. A person without any content is
// dropped, and its generation title passes to the next person.
func (a *assembler) flush() {
	p := a.cur
	a.cur = nil
	if p == nil {
		return
	}

	body, skipped := trimBlank(p.Body)
	if len(body) == 0 {
		a.warn(p.Line, WarnEmptyEntry, fmt.Sprintf("person %s has no content", p.ID))
		if p.GenerationTitle != "" && a.title == "" {
			a.title = p.GenerationTitle
		}
		return
	}
	p.Body = body
	if p.Line > 0 {
		p.Line += skipped
		if a.res.Mode == types.ModeAnchored {
			p.Line++ // the anchor line precedes the body
		}
	}
	a.res.Persons = append(a.res.Persons, *p)
}

func (a *assembler) warn(line int, kind WarningKind, msg string) {
	w := Warning{Line: line, Kind: kind, Message: msg}
	a.res.Warnings = append(a.res.Warnings, w)
	a.logger.Warn(msg, "line", line, "kind", string(kind))
}

// trimBlank drops leading and trailing blank lines and reports how many
// leading lines were dropped.
func trimBlank(lines []string) ([]string, int) {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end], start
}

// generationLabel returns the ordinal word of a generation title
// ("Second Generation (Parents)" yields "Second").
func generationLabel(title string) string {
	if f := strings.Fields(title); len(f) > 0 {
		return f[0]
	}
	return ""
}
