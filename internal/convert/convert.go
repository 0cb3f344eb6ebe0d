// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the record-book pipeline: read an input, assemble
// persons, split headers, process body sections and render the result.
// It also drives batch runs over a directory of inputs.
package convert

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/genealogy-tex/internal/assemble"
	"github.com/pdiddy/genealogy-tex/internal/classify"
	"github.com/pdiddy/genealogy-tex/internal/header"
	"github.com/pdiddy/genealogy-tex/internal/inline"
	"github.com/pdiddy/genealogy-tex/internal/render"
	"github.com/pdiddy/genealogy-tex/internal/section"
	"github.com/pdiddy/genealogy-tex/internal/source"
	"github.com/pdiddy/genealogy-tex/pkg/types"
)

// Status is the outcome of converting one input.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Options control how inputs are converted.
type Options struct {
	Format types.OutputFormat

	// Force overwrites outputs that already exist. Without it,
	// ConvertFile skips inputs whose output is present.
	Force bool

	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of inputs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any input failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Report describes one successful conversion.
type Report struct {
	Persons  int
	Bytes    int
	Warnings []assemble.Warning
}

// Parse assembles lines into a Document. Each person's first body line
// is split into entry number, name and clause, and the remaining lines
// become sections. Warnings are recoverable and never stop the parse.
func Parse(lines []string, src string, logger *slog.Logger) (*types.Document, []assemble.Warning) {
	res := assemble.Assemble(lines, logger)
	doc := &types.Document{Source: src, Mode: res.Mode, Persons: res.Persons}
	for i := range doc.Persons {
		parsePerson(&doc.Persons[i])
	}
	return doc, res.Warnings
}

func parsePerson(p *types.Person) {
	h := header.Split(strings.TrimSpace(p.Body[0]))
	p.EntryNumber = h.EntryNumber
	p.Name = h.Name
	p.Clause = h.Clause
	p.Sections = section.Process(classify.New(h.Name), p.Body[1:])
	for _, line := range p.Body {
		p.Links = append(p.Links, inline.Links(line)...)
	}
}

// ParseFile reads path and parses it.
func ParseFile(path string, logger *slog.Logger) (*types.Document, []assemble.Warning, error) {
	lines, err := source.ReadLines(path)
	if err != nil {
		return nil, nil, err
	}
	doc, warnings := Parse(lines, path, logger)
	return doc, warnings, nil
}

// Render returns doc in the given output format.
func Render(doc *types.Document, format types.OutputFormat) ([]byte, error) {
	r, err := render.For(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", doc.Source, err)
	}
	return buf.Bytes(), nil
}

// Generate converts the input at in and writes the output to out,
// replacing any existing file.
func Generate(in, out string, opts Options) (Report, error) {
	logger := opts.logger().With("input", in)

	doc, warnings, err := ParseFile(in, logger)
	if err != nil {
		return Report{}, err
	}
	data, err := Render(doc, opts.Format)
	if err != nil {
		return Report{}, err
	}
	if err := source.WriteAtomic(out, data); err != nil {
		return Report{}, err
	}

	logger.Debug("generated output", "output", out, "persons", len(doc.Persons), "mode", doc.Mode)
	return Report{Persons: len(doc.Persons), Bytes: len(data), Warnings: warnings}, nil
}

// ConvertFile converts one input, printing its status to w. An existing
// output is skipped unless opts.Force is set.
func ConvertFile(in, out string, opts Options, w io.Writer) Status {
	name := filepath.Base(in)

	if !opts.Force {
		if _, err := os.Stat(out); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
			return StatusSkipped
		}
	}

	rep, err := Generate(in, out, opts)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s (%s persons, %s", name,
		humanize.Comma(int64(rep.Persons)), humanize.Bytes(uint64(rep.Bytes)))
	if n := len(rep.Warnings); n > 0 {
		fmt.Fprintf(w, ", %s warnings", humanize.Comma(int64(n)))
	}
	fmt.Fprintln(w, ")")
	return StatusConverted
}

// ConvertBatch converts every input in inDir into outDir, printing
// per-file status to w and returning a summary.
func ConvertBatch(inDir, outDir string, opts Options, w io.Writer) (BatchResult, error) {
	inputs, err := Inputs(inDir)
	if err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	for _, in := range inputs {
		out := filepath.Join(outDir, OutputName(in, opts.Format))
		switch ConvertFile(in, out, opts, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// Inputs lists the record-book files in dir (*.txt and *.txt.xz),
// sorted by name.
func Inputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".txt.xz") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// OutputName derives the output filename for an input: the base name
// without .xz and .txt, plus the format's extension.
func OutputName(in string, format types.OutputFormat) string {
	base := filepath.Base(in)
	base = trimSuffixFold(base, ".xz")
	base = trimSuffixFold(base, ".txt")
	return base + format.Extension()
}

func trimSuffixFold(s, suffix string) string {
	if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return s[:len(s)-len(suffix)]
	}
	return s
}
