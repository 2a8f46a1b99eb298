// Package dictionary feeds tags into an index from word lists and plain text documents.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Adder receives tags from the loaders. *engine.Engine[int] satisfies it.
type Adder interface {
	Add(tag string, value int) error
	Contains(tag string) bool
}

// LoadStats counts what a loader saw and kept.
type LoadStats struct {
	Lines   int // lines read, blank ones included
	Tokens  int // candidate tags seen
	Added   int // tags added
	Skipped int // tags already present
}

// Tokenizer splits document lines into tags.
type Tokenizer struct {
	// Separators lists every rune that ends a token. Empty means whitespace.
	Separators string
	// Lowercase folds tokens to lower case before they are added.
	Lowercase bool
}

// DefaultTokenizer splits on whitespace and common punctuation and lower-cases.
func DefaultTokenizer() Tokenizer {
	return Tokenizer{
		Separators: " \t\r\n,.;:!?\"'()[]{}<>/",
		Lowercase:  true,
	}
}

// Split returns the non-empty tokens of line.
func (t Tokenizer) Split(line string) []string {
	var fields []string
	if t.Separators == "" {
		fields = strings.Fields(line)
	} else {
		fields = strings.FieldsFunc(line, func(r rune) bool {
			return strings.ContainsRune(t.Separators, r)
		})
	}
	if t.Lowercase {
		for i, f := range fields {
			fields[i] = strings.ToLower(f)
		}
	}
	return fields
}

// LoadLines adds each non-blank line of r as a tag valued by its 1-based
// line number. A repeated line keeps the number of its first occurrence.
func LoadLines(r io.Reader, dst Adder) (LoadStats, error) {
	var stats LoadStats
	err := scanLines(r, func(lineNo int, line string) error {
		stats.Lines++
		tag := strings.TrimRight(line, "\r")
		if strings.TrimSpace(tag) == "" {
			return nil
		}
		stats.Tokens++
		return add(dst, tag, lineNo, &stats)
	})
	return stats, err
}

// LoadDocument splits every line of r with tok and adds each new token
// valued by the 1-based line number it first appears on.
func LoadDocument(r io.Reader, tok Tokenizer, dst Adder) (LoadStats, error) {
	var stats LoadStats
	err := scanLines(r, func(lineNo int, line string) error {
		stats.Lines++
		for _, token := range tok.Split(line) {
			stats.Tokens++
			if err := add(dst, token, lineNo, &stats); err != nil {
				return err
			}
		}
		return nil
	})
	return stats, err
}

// LoadFile opens path and loads it with the loader for format.
// FormatAuto picks the format from the file extension.
func LoadFile(path string, format Format, tok Tokenizer, dst Adder) (LoadStats, error) {
	if format == FormatAuto {
		detected, err := DetectFormat(path)
		if err != nil {
			return LoadStats{}, err
		}
		format = detected
	}
	if err := ValidateFile(path, format); err != nil {
		return LoadStats{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return LoadStats{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	start := time.Now()
	var stats LoadStats
	switch format {
	case FormatLines:
		stats, err = LoadLines(file, dst)
	case FormatText:
		stats, err = LoadDocument(file, tok, dst)
	default:
		return LoadStats{}, fmt.Errorf("unsupported format %v for %s", format, path)
	}
	if err != nil {
		return stats, fmt.Errorf("failed to load %s: %w", path, err)
	}

	log.Debugf("Loaded %s as %s: lines=%d tokens=%d added=%d skipped=%d in %v",
		path, format, stats.Lines, stats.Tokens, stats.Added, stats.Skipped, time.Since(start))
	return stats, nil
}

func add(dst Adder, tag string, lineNo int, stats *LoadStats) error {
	if dst.Contains(tag) {
		stats.Skipped++
		return nil
	}
	if err := dst.Add(tag, lineNo); err != nil {
		return fmt.Errorf("line %d: %w", lineNo, err)
	}
	stats.Added++
	return nil
}

func scanLines(r io.Reader, fn func(lineNo int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for lineNo := 1; sc.Scan(); lineNo++ {
		if err := fn(lineNo, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
