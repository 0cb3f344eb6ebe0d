// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the genealogy-tex stages:
// persons assembled from a record book, their body sections, child
// entries, and the configuration structs for each stage.
package types

// Person is one record in the book, created when an anchor or numbered
// header line is recognized.
type Person struct {
	// ID is the opaque reference identifier used for cross-links
	// (the digits of ##ANCHOR:i<digits>##). Unique across a document.
	ID string `json:"id" yaml:"id"`

	// EntryNumber is the display number from the header line. It may
	// differ from ID and need not be unique.
	EntryNumber string `json:"entry_number" yaml:"entry_number"`

	// Name is the display name produced by the header splitter.
	Name string `json:"name" yaml:"name"`

	// Clause is the biographical clause that trails the name, possibly empty.
	Clause string `json:"clause" yaml:"clause"`

	// Generation is the generation label in effect when the person was
	// created (e.g. "Second"). Unanchored documents set it on every person.
	Generation string `json:"generation,omitempty" yaml:"generation,omitempty"`

	// GenerationTitle is the full generation heading line. It is attached
	// to the first person of a generation only.
	GenerationTitle string `json:"generation_title,omitempty" yaml:"generation_title,omitempty"`

	// Line is the 1-based input line number of the person's header line.
	Line int `json:"line" yaml:"line"`

	// Body holds the raw lines of the record, header line first.
	Body []string `json:"-" yaml:"-"`

	// Sections are the Notes, Biography, Marriage and children blocks in
	// the order their triggering lines were encountered.
	Sections []Section `json:"sections,omitempty" yaml:"sections,omitempty"`

	// Links lists the inline links found anywhere in the record, in
	// input order. Set by the parser; the catalog does not store them.
	Links []InlineLink `json:"links,omitempty" yaml:"links,omitempty"`
}

// SectionKind tags the Section variant.
type SectionKind string

const (
	SectionNotes           SectionKind = "notes"
	SectionBiography       SectionKind = "biography"
	SectionMarriage        SectionKind = "marriage"
	SectionChildrenHeading SectionKind = "children"
)

// Polarity says whose children a children heading announces.
type Polarity string

const (
	PolarityNone Polarity = ""
	PolarityHis  Polarity = "his"
	PolarityHer  Polarity = "her"
)

// Heading describes a children heading line such as "His children were:".
type Heading struct {
	Polarity Polarity `json:"polarity,omitempty" yaml:"polarity,omitempty"`
	Plural   bool     `json:"plural" yaml:"plural"`
}

// Section is one block of a person's body.
type Section struct {
	Kind SectionKind `json:"kind" yaml:"kind"`

	// Lines holds the note or biography lines, verbatim and trimmed.
	Lines []string `json:"lines,omitempty" yaml:"lines,omitempty"`

	// Text is the raw marriage sentence, or the content following
	// "Biography:" on the header line itself.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Nested marks marriage and children blocks that were found inside a
	// General Notes block.
	Nested bool `json:"nested,omitempty" yaml:"nested,omitempty"`

	// Heading and Children are set for SectionChildrenHeading.
	Heading  *Heading     `json:"heading,omitempty" yaml:"heading,omitempty"`
	Children []ChildEntry `json:"children,omitempty" yaml:"children,omitempty"`
}

// MarkerKind identifies how a child line was numbered.
type MarkerKind string

const (
	// MarkerReference is "(<ref>) <roman>. <name>".
	MarkerReference MarkerKind = "reference"
	// MarkerRoman is "<roman>. <name>".
	MarkerRoman MarkerKind = "roman"
	// MarkerNone is the comma-split fallback.
	MarkerNone MarkerKind = "none"
)

// ChildEntry is one line of a child list.
type ChildEntry struct {
	Marker MarkerKind `json:"marker" yaml:"marker"`

	// Ref is the decimal reference number of a reference-badged entry.
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty"`

	// Roman is the roman numeral exactly as written.
	Roman string `json:"roman,omitempty" yaml:"roman,omitempty"`

	// Name may contain an inline [label](target) link.
	Name string `json:"name" yaml:"name"`

	// Rest is the trailing descriptive text.
	Rest string `json:"rest,omitempty" yaml:"rest,omitempty"`
}

// LinkKind classifies the target of an inline link.
type LinkKind string

const (
	LinkPerson       LinkKind = "person"
	LinkURL          LinkKind = "url"
	LinkUnrecognized LinkKind = "unrecognized"
)

// InlineLink is a [label](target) occurrence inside prose.
type InlineLink struct {
	Label  string   `json:"label" yaml:"label"`
	Target string   `json:"target" yaml:"target"`
	Kind   LinkKind `json:"kind" yaml:"kind"`

	// PersonID is the referenced identifier when Kind is LinkPerson.
	PersonID string `json:"person_id,omitempty" yaml:"person_id,omitempty"`

	// Raw is the full matched text including brackets.
	Raw string `json:"-" yaml:"-"`
}

// AssemblyMode records how persons were detected in a document.
type AssemblyMode string

const (
	ModeAnchored   AssemblyMode = "anchored"
	ModeUnanchored AssemblyMode = "unanchored"
)

// Document is the ordered sequence of persons read from one input.
type Document struct {
	Source  string       `json:"source,omitempty" yaml:"source,omitempty"`
	Mode    AssemblyMode `json:"mode" yaml:"mode"`
	Persons []Person     `json:"persons" yaml:"persons"`
}
