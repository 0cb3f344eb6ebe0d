//go:build mage

// Package main contains Mage build targets for genealogy-tex developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the book workflow expects.
var projectDirs = []string{
	"books",
	"chunks",
	"catalog",
	"build",
}

// Init creates the project directory structure for the book workflow.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "genealogy-tex"
	cmdPkg  = "./cmd/genealogy-tex"
)

func binPath() string {
	return filepath.Join(binDir, binName)
}

// Build compiles the CLI binary into bin/, stamping the version from
// GENEALOGY_TEX_VERSION when set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	args := []string{"build", "-o", binPath()}
	if v := os.Getenv("GENEALOGY_TEX_VERSION"); v != "" {
		args = append(args, "-ldflags", "-X main.version="+v)
	}
	args = append(args, cmdPkg)
	if err := sh.RunV("go", args...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath())
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// skipDir reports directories excluded from the metrics walk.
func skipDir(path string) bool {
	base := filepath.Base(path)
	return path != "." && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == binDir)
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}

// countDocWords counts words in the Markdown files of the tree.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			if skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
		return nil
	})
	return total, err
}

// Books converts every record book in books/ into build/, skipping
// outputs that are already present.
func Books() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath(), "generate", "--batch", "--input-dir", "books", "--output-dir", "build")
}

// Catalog ingests every record book in books/ into the person catalog.
func Catalog() error {
	mg.Deps(Build, Init)
	books, err := filepath.Glob(filepath.Join("books", "*.txt"))
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Println("No books found in books/.")
		return nil
	}
	return sh.RunV(binPath(), append([]string{"catalog", "store"}, books...)...)
}

const sampleBook = `First Generation
##ANCHOR:i1##
1. John SMITH, born 1820 in Ohio, died 1890
General Notes:
He was a blacksmith in [Dayton](https://en.wikipedia.org/wiki/Dayton,_Ohio).
John married Mary JONES in 1845.
His children were:
i. [Anna SMITH](#i2), born 1846
ii. Peter SMITH, born 1848
Second Generation
##ANCHOR:i2##
2. Anna SMITH, born 1846
Biography: https://example.org/anna-smith
`

// Sample writes a small record book to build/sample.txt and converts it
// to build/sample.tex with the freshly built binary.
func Sample() error {
	mg.Deps(Build, Init)
	in := filepath.Join("build", "sample.txt")
	if err := os.WriteFile(in, []byte(sampleBook), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", in, err)
	}
	return sh.RunV(binPath(), "generate", in, filepath.Join("build", "sample.tex"))
}
