package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Format selects how an input file is turned into tags.
type Format int

const (
	FormatAuto  Format = iota // detect from the extension
	FormatLines               // one tag per line
	FormatText                // free text split into tokens
)

// FormatInfo describes a supported input format.
type FormatInfo struct {
	Format      Format
	Name        string
	Description string
	Extensions  []string
}

var supportedFormats = map[Format]FormatInfo{
	FormatLines: {
		Format:      FormatLines,
		Name:        "lines",
		Description: "Word list, one tag per line",
		Extensions:  []string{".lst", ".words", ".dict"},
	},
	FormatText: {
		Format:      FormatText,
		Name:        "text",
		Description: "Plain text document",
		Extensions:  []string{".txt", ".md", ".text"},
	},
}

func (f Format) String() string {
	if f == FormatAuto {
		return "auto"
	}
	if info, ok := supportedFormats[f]; ok {
		return info.Name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a config or flag value to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "lines":
		return FormatLines, nil
	case "text":
		return FormatText, nil
	}
	return FormatAuto, fmt.Errorf("unknown format %q (want auto, lines or text)", name)
}

// DetectFormat picks a format from the extension of filename.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range []Format{FormatLines, FormatText} {
		if slices.Contains(supportedFormats[f].Extensions, ext) {
			return f, nil
		}
	}
	return FormatAuto, fmt.Errorf("unable to detect format for file %s", filename)
}

// ValidateFile checks that format is known and filename exists and is not a directory.
func ValidateFile(filename string, format Format) error {
	info, ok := supportedFormats[format]
	if !ok {
		return fmt.Errorf("unknown format: %v", format)
	}

	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory, expected a %s file", filename, strings.ToLower(info.Description))
	}
	return nil
}
