// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides what a single record-book line is. The rules
// form an ordered chain evaluated top to bottom; the first match wins:
//
//	anchor > generation title > General Notes > Biography >
//	marriage > children heading > content
//
// A marriage line must mention "married" and begin with the current
// person's full name or first name. Prose that merely mentions a marriage
// falls through to content.
package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/genealogy-tex/pkg/types"
)

// Kind is the category of a line.
type Kind int

const (
	Content Kind = iota
	Anchor
	GenerationTitle
	NotesHeader
	BiographyHeader
	Marriage
	ChildrenHeading
)

func (k Kind) String() string {
	switch k {
	case Anchor:
		return "anchor"
	case GenerationTitle:
		return "generation-title"
	case NotesHeader:
		return "notes-header"
	case BiographyHeader:
		return "biography-header"
	case Marriage:
		return "marriage"
	case ChildrenHeading:
		return "children-heading"
	default:
		return "content"
	}
}

const (
	anchorPrefix    = "##ANCHOR:i"
	notesPrefix     = "General Notes:"
	biographyPrefix = "Biography:"
)

var (
	anchorPattern = regexp.MustCompile(`##ANCHOR:i(\d+)##`)

	generationTitlePattern = regexp.MustCompile(`(?i)^(?:\d+(?:st|nd|rd|th)|` +
		`First|Second|Third|Fourth|Fifth|Sixth|Seventh|Eighth|Ninth|Tenth|` +
		`Eleventh|Twelfth|Thirteenth|Fourteenth|Fifteenth|Sixteenth|Seventeenth|Eighteenth|Nineteenth|` +
		`Twentieth|Thirtieth|Fortieth|Fiftieth|Sixtieth|Seventieth|Eightieth|Ninetieth|Hundredth)` +
		`\s+Generation.*$`)

	// generationLabelPattern is the looser heading used by unanchored files.
	generationLabelPattern = regexp.MustCompile(`^([A-Za-z]+)\s+Generation`)

	// personHeaderPattern starts a person in unanchored files: "12. Name".
	personHeaderPattern = regexp.MustCompile(`^(\d+)\.\s+`)
)

// IsAnchorLike reports whether line looks like an anchor marker, whether
// or not its identifier can be extracted.
func IsAnchorLike(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), anchorPrefix)
}

// AnchorID extracts the person identifier from an anchor marker line.
func AnchorID(line string) (string, bool) {
	m := anchorPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsGenerationTitle reports whether line is a generation heading such as
// "Second Generation (Parents)" or "12th Generation".
func IsGenerationTitle(line string) bool {
	return generationTitlePattern.MatchString(strings.TrimSpace(line))
}

// GenerationLabel returns the leading word of an unanchored generation
// heading ("Third Generation" yields "Third").
func GenerationLabel(line string) (string, bool) {
	m := generationLabelPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// PersonNumber returns the leading number of an unanchored person header.
func PersonNumber(line string) (string, bool) {
	m := personHeaderPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsNotesHeader reports whether line opens a General Notes block.
func IsNotesHeader(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), notesPrefix)
}

// NotesRemainder returns any text following "General Notes:" on the
// header line itself.
func NotesRemainder(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), notesPrefix))
}

// IsBiographyHeader reports whether line opens a Biography block.
func IsBiographyHeader(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), biographyPrefix)
}

// BiographyRemainder returns any text following "Biography:" on the
// header line itself.
func BiographyRemainder(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), biographyPrefix))
}

// ChildHeading classifies a children heading line. It recognizes
// "His child was:", "His children were:", "Her child was:",
// "Her children were:" and any line mentioning a child "from this
// marriage".
func ChildHeading(line string) (types.Heading, bool) {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" || !strings.Contains(lower, "child") {
		return types.Heading{}, false
	}
	switch {
	case strings.HasPrefix(lower, "his child was:"):
		return types.Heading{Polarity: types.PolarityHis}, true
	case strings.HasPrefix(lower, "his children were:"):
		return types.Heading{Polarity: types.PolarityHis, Plural: true}, true
	case strings.HasPrefix(lower, "her child was:"):
		return types.Heading{Polarity: types.PolarityHer}, true
	case strings.HasPrefix(lower, "her children were:"):
		return types.Heading{Polarity: types.PolarityHer, Plural: true}, true
	case strings.Contains(lower, "from this marriage"):
		return types.Heading{Plural: strings.Contains(lower, "children")}, true
	}
	return types.Heading{}, false
}

// Rule pairs a predicate with the kind it assigns.
type Rule struct {
	Kind  Kind
	Match func(c *Classifier, line string) bool
}

// Rules is the precedence chain used by Classify, highest first.
var Rules = []Rule{
	{Anchor, func(_ *Classifier, l string) bool { return IsAnchorLike(l) }},
	{GenerationTitle, func(_ *Classifier, l string) bool { return IsGenerationTitle(l) }},
	{NotesHeader, func(_ *Classifier, l string) bool { return IsNotesHeader(l) }},
	{BiographyHeader, func(_ *Classifier, l string) bool { return IsBiographyHeader(l) }},
	{Marriage, (*Classifier).isMarriage},
	{ChildrenHeading, func(_ *Classifier, l string) bool { _, ok := ChildHeading(l); return ok }},
}

// Classifier classifies lines in the context of one person, whose name
// decides which lines are marriage statements.
type Classifier struct {
	name  string
	first string
}

// New returns a Classifier for the person with the given display name.
func New(personName string) *Classifier {
	name := strings.ToLower(strings.TrimSpace(personName))
	c := &Classifier{name: name}
	if fields := strings.Fields(name); len(fields) > 0 {
		c.first = fields[0]
	}
	return c
}

// Classify returns the kind of the first rule line satisfies.
func (c *Classifier) Classify(line string) Kind {
	line = strings.TrimSpace(line)
	for _, r := range Rules {
		if r.Match(c, line) {
			return r.Kind
		}
	}
	return Content
}

// IsMarriage reports whether line is a marriage statement for the person.
func (c *Classifier) IsMarriage(line string) bool {
	return c.isMarriage(strings.TrimSpace(line))
}

func (c *Classifier) isMarriage(line string) bool {
	if c.name == "" {
		return false
	}
	lower := strings.ToLower(line)
	if !strings.Contains(lower, "married") {
		return false
	}
	return strings.HasPrefix(lower, c.name) || strings.HasPrefix(lower, c.first)
}

// IsSectionStart reports whether line opens a new body section: a
// General Notes or Biography header, or a marriage statement.
func (c *Classifier) IsSectionStart(line string) bool {
	return IsNotesHeader(line) || IsBiographyHeader(line) || c.IsMarriage(line)
}
