// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package children parses the ordered child list that follows a children
// heading ("His children were:").
package children

import (
	"regexp"
	"strings"

	"github.com/pdiddy/genealogy-tex/internal/classify"
	"github.com/pdiddy/genealogy-tex/pkg/types"
)

var (
	// (12) iii. Name, rest
	referencePattern = regexp.MustCompile(`(?i)^\((\d+)\)\s+([ivxlcdm]+)\.\s+(.*?)(?:,\s+(.*))?$`)

	// iii. Name, rest  or  iii. Name was rest
	romanPattern = regexp.MustCompile(`(?i)^([ivxlcdm]+)\.\s+(.*?)(?:(?:,|was)\s+(.*))?$`)
)

// Parse consumes child lines from lines[start:] and returns the entries
// along with the index of the first line not consumed. Blank lines are
// skipped; parsing stops at a General Notes or Biography header or a
// marriage statement for the person c was built for.
func Parse(c *classify.Classifier, lines []string, start int) ([]types.ChildEntry, int) {
	var entries []types.ChildEntry
	k := start
	for ; k < len(lines); k++ {
		line := strings.TrimSpace(lines[k])
		if line == "" {
			continue
		}
		if c.IsSectionStart(line) {
			break
		}
		entries = append(entries, ParseLine(line))
	}
	return entries, k
}

// ParseLine turns one child line into an entry. Every line yields an
// entry; lines without an ordinal marker are split on the first comma.
func ParseLine(line string) types.ChildEntry {
	line = strings.TrimSpace(line)

	if m := referencePattern.FindStringSubmatch(line); m != nil {
		return types.ChildEntry{
			Marker: types.MarkerReference,
			Ref:    m[1],
			Roman:  m[2],
			Name:   strings.TrimSpace(m[3]),
			Rest:   m[4],
		}
	}

	if m := romanPattern.FindStringSubmatch(line); m != nil {
		return types.ChildEntry{
			Marker: types.MarkerRoman,
			Roman:  m[1],
			Name:   strings.TrimSpace(m[2]),
			Rest:   m[3],
		}
	}

	entry := types.ChildEntry{Marker: types.MarkerNone, Name: line}
	if name, rest, ok := strings.Cut(line, ","); ok {
		entry.Name = strings.TrimSpace(name)
		entry.Rest = strings.TrimSpace(rest)
	}
	return entry
}
