// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split cuts a large record book into numbered chunk files. Cuts
// are placed just before an anchor line near each target size so that no
// person record is divided between chunks.
package split

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/genealogy-tex/internal/source"
	"github.com/pdiddy/genealogy-tex/pkg/types"
)

// Defaults applied to zero-valued SplitConfig fields.
const (
	DefaultLines     = 7000
	DefaultPrefix    = "split"
	DefaultLookahead = 200
)

// ErrInvalidChunkSize is returned when the lines-per-chunk setting is not
// positive.
var ErrInvalidChunkSize = errors.New("lines per chunk must be positive")

var anchorPattern = regexp.MustCompile(`^##ANCHOR:i\d+##`)

// Span is a half-open range [Start, End) of 0-based line indexes.
type Span struct {
	Start, End int

	// Anchored is false when no anchor was found within the look-ahead
	// window and the cut fell at the exact target line.
	Anchored bool
}

// Chunk is one written (or planned) output file.
type Chunk struct {
	Path string
	Span Span
}

// Result summarizes a split run.
type Result struct {
	TotalLines int
	Chunks     []Chunk
}

func withDefaults(cfg types.SplitConfig) (types.SplitConfig, error) {
	if cfg.Lines <= 0 {
		return cfg, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, cfg.Lines)
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.Lookahead <= 0 {
		cfg.Lookahead = DefaultLookahead
	}
	return cfg, nil
}

// Spans computes chunk boundaries over lines. Each chunk ends just before
// the first anchor line at or after its target end, searching at most
// lookahead lines; the last chunk takes all remaining lines.
func Spans(lines []string, size, lookahead int) []Span {
	var spans []Span
	total := len(lines)
	for start := 0; start < total; {
		target := min(start+size, total)
		if target >= total {
			spans = append(spans, Span{Start: start, End: total, Anchored: true})
			break
		}
		span := Span{Start: start, End: target}
		for i := target; i < min(target+lookahead, total); i++ {
			if anchorPattern.MatchString(strings.TrimSpace(lines[i])) {
				span.End = i
				span.Anchored = true
				break
			}
		}
		spans = append(spans, span)
		start = span.End
	}
	return spans
}

// ChunkPath returns the path of the n-th chunk (1-based).
func ChunkPath(outDir, prefix string, n int) string {
	return filepath.Join(outDir, fmt.Sprintf("%s%d.txt", prefix, n))
}

// Split reads in and writes its chunks into outDir, printing progress to
// w. Chunk contents concatenate back to the decoded input.
func Split(in, outDir string, cfg types.SplitConfig, logger *slog.Logger, w io.Writer) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := withDefaults(cfg)
	if err != nil {
		return Result{}, err
	}

	lines, err := readLines(in)
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	res := Result{TotalLines: len(lines)}
	fmt.Fprintf(w, "Total lines in input file: %s\n", humanize.Comma(int64(len(lines))))

	for n, span := range Spans(lines, cfg.Lines, cfg.Lookahead) {
		if !span.Anchored {
			logger.Warn("no anchor found near cut point, using exact line number",
				"line", span.End, "lookahead", cfg.Lookahead)
		}
		path := ChunkPath(outDir, cfg.Prefix, n+1)
		data := strings.Join(lines[span.Start:span.End], "")
		if err := source.WriteAtomic(path, []byte(data)); err != nil {
			return res, err
		}
		res.Chunks = append(res.Chunks, Chunk{Path: path, Span: span})
		fmt.Fprintf(w, "Created %s with lines %d to %d\n", path, span.Start+1, span.End)
	}

	fmt.Fprintf(w, "Splitting complete. Created %d files.\n", len(res.Chunks))
	return res, nil
}

// Plan reports the chunk files a split of in would create, estimated as
// ceil(total/lines) without searching for anchors. Nothing is written.
func Plan(in, outDir string, cfg types.SplitConfig) (Result, error) {
	cfg, err := withDefaults(cfg)
	if err != nil {
		return Result{}, err
	}
	lines, err := readLines(in)
	if err != nil {
		return Result{}, err
	}

	res := Result{TotalLines: len(lines)}
	count := (len(lines) + cfg.Lines - 1) / cfg.Lines
	for n := 1; n <= count; n++ {
		start := (n - 1) * cfg.Lines
		res.Chunks = append(res.Chunks, Chunk{
			Path: ChunkPath(outDir, cfg.Prefix, n),
			Span: Span{Start: start, End: min(start+cfg.Lines, len(lines))},
		})
	}
	return res, nil
}

// readLines returns the lines of in with their terminators kept.
func readLines(in string) ([]string, error) {
	data, err := source.ReadRaw(in)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	lines := strings.SplitAfter(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
