package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/tagserve/pkg/engine"
)

func newHandler(t *testing.T, noFilter bool, tags ...string) (*InputHandler, *bytes.Buffer) {
	t.Helper()
	e := engine.New[int]()
	for i, tag := range tags {
		require.NoError(t, e.Add(tag, i+1))
	}
	require.NoError(t, e.ChangeToSearchMode())

	var buf bytes.Buffer
	return NewInputHandler(e, log.New(&buf), 2, 10, noFilter), &buf
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		in   string
		kind queryKind
		term string
	}{
		{"bat", queryLookup, "bat"},
		{"ba*", queryPrefix, "ba"},
		{"*", queryPrefix, ""},
		{"*as*", queryContains, "as"},
		{"**", queryContains, ""},
		{"*as", queryLookup, "*as"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			kind, term := parseQuery(tt.in)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.term, term)
		})
	}
}

func TestHandleInput(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		noFilter bool
		want     []string
		dontWant []string
	}{
		{name: "found", query: "bat", want: []string{"found on line 2"}},
		{name: "prefix", query: "ba*", want: []string{"Found 3 tags starting with 'ba'", "ball", "base", "... and 1 more"}},
		{name: "prefix none", query: "zz*", want: []string{"No tags starting with 'zz'"}},
		{name: "contains", query: "*as*", want: []string{"Found 1 tags containing 'as'", "base", "(line 3)"}},
		{name: "everything", query: "*", want: []string{"Found 4 tags starting with ''"}},
		{name: "did you mean", query: "batt", want: []string{"'batt' not found, did you mean", "bat", "(line 2)", "Other close tags:", "distance 2"}},
		{name: "filtered", query: "12345", want: []string{"Ignoring query '12345'"}, dontWant: []string{"did you mean"}},
		{name: "unfiltered", query: "12345", noFilter: true, want: []string{"did you mean"}},
		{name: "too long", query: "abcdefghijkl", want: []string{"Query too long: 12 runes, max 10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newHandler(t, tt.noFilter, "ball", "bat", "base", "cat")
			h.handleInput(tt.query)
			out := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.dontWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestAlternatesSkipBest(t *testing.T) {
	h, buf := newHandler(t, false, "ball", "bat", "base")
	h.handleInput("batt")

	out := buf.String()
	others := out[strings.Index(out, "Other close tags:"):]
	assert.NotContains(t, others, "bat ")
	assert.Contains(t, others, " 1. ")
	assert.Contains(t, others, " 2. ")
	assert.NotContains(t, others, " 3. ")
}

func TestHandleInputEmptyIndex(t *testing.T) {
	h, buf := newHandler(t, false)
	h.handleInput("anything")
	assert.Contains(t, buf.String(), "not found")
	assert.Contains(t, buf.String(), engine.ErrEmptyIndex.Error())
}

func TestStart(t *testing.T) {
	h, buf := newHandler(t, false, "ball", "bat")
	require.NoError(t, h.Start(strings.NewReader("bat\n\n   \nba*")))

	assert.Equal(t, 2, h.Requests())
	out := buf.String()
	assert.Contains(t, out, "2 tags indexed")
	assert.Contains(t, out, "found on line 2")
	assert.Contains(t, out, "Found 2 tags starting with 'ba'")
}
