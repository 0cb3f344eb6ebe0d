// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source reads record-book inputs and writes generated outputs.
// Inputs must be UTF-8 with an optional byte-order mark; they are
// normalized to NFC and transparently decompressed when they end in .xz.
package source

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInputNotFound is returned when an input path does not exist.
var ErrInputNotFound = errors.New("input file not found")

// ErrInvalidEncoding is returned when an input is not valid UTF-8.
var ErrInvalidEncoding = errors.New("input is not valid UTF-8")

// ReadRaw returns the bytes of path, decompressed when it ends in .xz but
// otherwise untouched. The content must be valid UTF-8.
func ReadRaw(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening xz stream %s: %w", path, err)
		}
		r = xr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s at byte %d", ErrInvalidEncoding, path, invalidOffset(data))
	}
	return data, nil
}

// Read returns the text of path with any byte-order mark removed and
// normalized to NFC.
func Read(path string) ([]byte, error) {
	raw, err := ReadRaw(path)
	if err != nil {
		return nil, err
	}
	dec := transform.Chain(unicode.BOMOverride(unicode.UTF8.NewDecoder()), norm.NFC)
	data, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return data, nil
}

// invalidOffset returns the offset of the first byte that does not start
// a valid UTF-8 sequence.
func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}

// ReadLines returns the lines of path without their terminators. A final
// newline does not produce a trailing empty line.
func ReadLines(path string) ([]string, error) {
	data, err := Read(path)
	if err != nil {
		return nil, err
	}
	return Lines(string(data)), nil
}

// Lines splits text on \n, dropping \r before each terminator.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Fingerprint returns the hex BLAKE3 digest of data.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// WriteAtomic writes data to path through a temporary file in the same
// directory, so readers never observe a partial output. Parent
// directories are created as needed.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	name := tmp.Name()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("renaming output %s: %w", path, err)
	}
	return nil
}
