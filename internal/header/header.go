// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package header splits a person's header line into an entry number, a
// display name and a trailing biographical clause.
//
// The split is heuristic. Steps run in a fixed order and each one only
// fires when its pattern matches:
//
//  1. a leading entry number ("12." or "12") is split off, and the rest is
//     split on the first comma followed by whitespace;
//  2. a biographical marker word (born, died, married, ...) inside the
//     name moves the marker and what follows into the clause;
//  3. a generational suffix (Jr., Sr., II..X) ends the name, and anything
//     after it moves into the clause;
//  4. " son of " / " daughter of " splits the parentage into the clause;
//  5. otherwise " and " splits the name when "son of"/"daughter of" also
//     occurs in it.
//
// Newly found text is always placed before text found earlier, joined
// with ", ".
package header

import (
	"regexp"
	"strings"
)

var (
	numberedPattern = regexp.MustCompile(`^(\d+)\.?\s+(.*?)(?:,\s+(.*))?$`)
	plainPattern    = regexp.MustCompile(`^(.*?)(?:,\s+(.*))?$`)

	bioMarkerPattern = regexp.MustCompile(
		`(?i)\s+(was born|born|died|baptized|baptised|christened|married|buried|resided)\s+`)

	suffixPattern = regexp.MustCompile(
		`(?i)^(.*?(?:\s+(?:Jr\.|Sr\.|II|III|IV|V|VI|VII|VIII|IX|X)\.?))(?:\s+(.*))?$`)
)

const (
	sonOf      = " son of "
	daughterOf = " daughter of "
)

// Header is the decomposed header line.
type Header struct {
	EntryNumber string
	Name        string
	Clause      string
}

// Split decomposes line. It never fails: a line that matches no pattern
// becomes the name with an empty clause.
func Split(line string) Header {
	line = strings.TrimSpace(line)
	var h Header

	if m := numberedPattern.FindStringSubmatch(line); m != nil {
		h.EntryNumber = strings.TrimSpace(m[1])
		h.Name = strings.TrimSpace(m[2])
		h.Clause = m[3]
	} else if m := plainPattern.FindStringSubmatch(line); m != nil {
		h.Name = strings.TrimSpace(m[1])
		h.Clause = m[2]
	} else {
		h.Name = line
	}

	if loc := bioMarkerPattern.FindStringSubmatchIndex(h.Name); loc != nil {
		marker := h.Name[loc[2]:loc[3]]
		after := h.Name[loc[1]:]
		h.Clause = prepend(strings.TrimSpace(marker+" "+after), h.Clause)
		h.Name = strings.TrimSpace(h.Name[:loc[0]])
	}

	if m := suffixPattern.FindStringSubmatch(h.Name); m != nil {
		h.Name = strings.TrimSpace(m[1])
		if rest := strings.TrimSpace(m[2]); rest != "" {
			h.Clause = prepend(rest, h.Clause)
		}
	}

	switch {
	case strings.Contains(h.Name, sonOf):
		parts := strings.SplitN(h.Name, sonOf, 2)
		h.Name = strings.TrimSpace(parts[0])
		h.Clause = prepend("son of "+parts[1], h.Clause)
	case strings.Contains(h.Name, daughterOf):
		parts := strings.SplitN(h.Name, daughterOf, 2)
		h.Name = strings.TrimSpace(parts[0])
		h.Clause = prepend("daughter of "+parts[1], h.Clause)
	case strings.Contains(h.Name, " and ") &&
		(strings.Contains(h.Name, "son of") || strings.Contains(h.Name, "daughter of")):
		parts := strings.SplitN(h.Name, " and ", 2)
		h.Name = parts[0]
		h.Clause = prepend("and "+parts[1], h.Clause)
	}

	h.Clause = strings.TrimSpace(h.Clause)
	return h
}

// prepend joins newer text in front of older text.
func prepend(newer, older string) string {
	if older == "" {
		return newer
	}
	return newer + ", " + older
}
