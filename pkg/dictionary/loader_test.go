package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/tagserve/pkg/engine"
)

func TestTokenizerSplit(t *testing.T) {
	tests := []struct {
		name string
		tok  Tokenizer
		line string
		want []string
	}{
		{"default", DefaultTokenizer(), "Hello, World! (again)", []string{"hello", "world", "again"}},
		{"whitespace only", Tokenizer{}, "  Foo\tbar  baz ", []string{"Foo", "bar", "baz"}},
		{"custom separators", Tokenizer{Separators: "-"}, "a-b--c", []string{"a", "b", "c"}},
		{"keeps case", Tokenizer{Separators: " "}, "Go GO go", []string{"Go", "GO", "go"}},
		{"empty line", DefaultTokenizer(), "", nil},
		{"only separators", DefaultTokenizer(), " ,.;", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tok.Split(tt.line)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadLines(t *testing.T) {
	e := engine.New[int]()
	stats, err := LoadLines(strings.NewReader("apple\nbanana\n\napple\r\ncherry\n"), e)
	require.NoError(t, err)

	assert.Equal(t, LoadStats{Lines: 5, Tokens: 4, Added: 3, Skipped: 1}, stats)
	assert.Equal(t, 3, e.Size())

	for tag, line := range map[string]int{"apple": 1, "banana": 2, "cherry": 5} {
		v, err := e.ValueOf(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, line, v, tag)
	}
}

func TestLoadDocument(t *testing.T) {
	e := engine.New[int]()
	doc := "The quick brown fox.\nA quick (lazy) dog; the end!\n"
	stats, err := LoadDocument(strings.NewReader(doc), DefaultTokenizer(), e)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Lines)
	assert.Equal(t, 10, stats.Tokens)
	assert.Equal(t, 8, stats.Added)
	assert.Equal(t, 2, stats.Skipped)

	v, err := e.ValueOf("the")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = e.ValueOf("lazy")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.False(t, e.Contains("The"))
}

func TestLoadSearchMode(t *testing.T) {
	e := engine.New[int]()
	require.NoError(t, e.ChangeToSearchMode())

	_, err := LoadLines(strings.NewReader("x\n"), e)
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidMode))
	assert.Contains(t, err.Error(), "line 1")
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"words.lst", FormatLines, false},
		{"dir/Words.WORDS", FormatLines, false},
		{"notes.md", FormatText, false},
		{"story.txt", FormatText, false},
		{"image.png", FormatAuto, true},
		{"noext", FormatAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"": FormatAuto, "auto": FormatAuto, "Lines": FormatLines, " text ": FormatText} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseFormat("json")
	assert.Error(t, err)
	assert.Equal(t, "lines", FormatLines.String())
	assert.Equal(t, "auto", FormatAuto.String())
}

func TestLoadFile(t *testing.T) {
	e := engine.New[int]()
	stats, err := LoadFile(filepath.Join("testdata", "fruits.lst"), FormatAuto, DefaultTokenizer(), e)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Added)
	assert.True(t, e.Contains("cherry"))

	e = engine.New[int]()
	stats, err = LoadFile(filepath.Join("testdata", "story.txt"), FormatAuto, DefaultTokenizer(), e)
	require.NoError(t, err)
	assert.Equal(t, 8, stats.Added)
	assert.True(t, e.Contains("quick"))
}

func TestLoadFileForcedFormat(t *testing.T) {
	// A document read as a word list keeps whole lines.
	e := engine.New[int]()
	_, err := LoadFile(filepath.Join("testdata", "story.txt"), FormatLines, DefaultTokenizer(), e)
	require.NoError(t, err)
	assert.True(t, e.Contains("The quick brown fox."))
}

func TestLoadFileErrors(t *testing.T) {
	e := engine.New[int]()

	_, err := LoadFile(filepath.Join("testdata", "missing.lst"), FormatAuto, DefaultTokenizer(), e)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFile("testdata", FormatLines, DefaultTokenizer(), e)
	assert.ErrorContains(t, err, "directory")

	_, err = LoadFile("words.bin", FormatAuto, DefaultTokenizer(), e)
	assert.ErrorContains(t, err, "unable to detect format")

	_, err = LoadFile(filepath.Join("testdata", "fruits.lst"), Format(42), DefaultTokenizer(), e)
	assert.Error(t, err)
	assert.Zero(t, e.Size())
}
