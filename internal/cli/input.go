// Package cli is an interactive query loop over a frozen tag index, handy
// for poking at an input document from a terminal.
package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/tagserve/internal/utils"
	"github.com/bastiangx/tagserve/pkg/engine"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var tagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

type queryKind int

const (
	queryLookup queryKind = iota
	queryPrefix
	queryContains
)

// parseQuery maps "word", "pre*" and "*sub*" to their search kind and term.
func parseQuery(q string) (queryKind, string) {
	switch {
	case len(q) >= 2 && strings.HasPrefix(q, "*") && strings.HasSuffix(q, "*"):
		return queryContains, q[1 : len(q)-1]
	case strings.HasSuffix(q, "*"):
		return queryPrefix, q[:len(q)-1]
	}
	return queryLookup, q
}

// InputHandler reads one query per line and prints what the index knows
// about it. Values are the line numbers the tags were loaded from.
type InputHandler struct {
	index        engine.Searcher[int]
	out          *log.Logger
	limit        int
	maxQuery     int
	noFilter     bool
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler. limit caps
// listed results and alternates; maxQuery caps the query length in runes.
func NewInputHandler(index engine.Searcher[int], out *log.Logger, limit, maxQuery int, noFilter bool) *InputHandler {
	return &InputHandler{
		index:    index,
		out:      out,
		limit:    max(limit, 1),
		maxQuery: maxQuery,
		noFilter: noFilter,
	}
}

// Start runs the prompt loop until r is exhausted.
func (h *InputHandler) Start(r io.Reader) error {
	h.out.Print("tagserve CLI")
	h.out.Printf("%d tags indexed. Type a word, prefix* or *substring* and press Enter (Ctrl+D to exit):", h.index.Size())

	reader := bufio.NewReader(r)
	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if q := strings.TrimSpace(line); q != "" {
			h.handleInput(q)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Requests returns how many queries were handled.
func (h *InputHandler) Requests() int { return h.requestCount }

func (h *InputHandler) handleInput(q string) {
	h.requestCount++
	kind, term := parseQuery(q)

	if h.maxQuery > 0 && len([]rune(term)) > h.maxQuery {
		h.out.Errorf("Query too long: %d runes, max %d", len([]rune(term)), h.maxQuery)
		return
	}
	if !h.noFilter && term != "" && !utils.IsValidQuery(term) {
		h.out.Errorf("Ignoring query '%s'", term)
		return
	}

	start := time.Now()
	defer func() {
		log.Debugf("Took [ %v ] for query '%s'", time.Since(start), q)
	}()

	switch kind {
	case queryPrefix:
		tags, err := h.index.PrefixSearch(term)
		h.printList(tags, err, "starting with", term)
	case queryContains:
		tags, err := h.index.ContainsSearch(term)
		h.printList(tags, err, "containing", term)
	default:
		h.lookup(term)
	}
}

func (h *InputHandler) lookup(word string) {
	if line, err := h.index.ValueOf(word); err == nil {
		h.out.Printf("'%s' found on line %d", tagStyle.Render(word), line)
		return
	}

	best, err := h.index.RelativeSearch(word)
	if err != nil {
		h.out.Errorf("'%s' not found: %v", word, err)
		return
	}
	line, _ := h.index.ValueOf(best)
	h.out.Printf("'%s' not found, did you mean '%s' (line %d)?", word, tagStyle.Render(best), line)

	alts, err := h.index.RelativeSearchN(word, h.limit+1)
	if err != nil {
		return
	}
	printed := 0
	for _, m := range alts {
		if m.Tag == best || printed == h.limit {
			continue
		}
		if printed == 0 {
			h.out.Print("Other close tags:")
		}
		printed++
		line, _ := h.index.ValueOf(m.Tag)
		h.out.Printf("%2d. %-30s (distance %d, line %d)", printed, tagStyle.Render(m.Tag), m.Distance, line)
	}
}

func (h *InputHandler) printList(tags []string, err error, rel, term string) {
	if err != nil {
		h.out.Errorf("Search failed: %v", err)
		return
	}
	if len(tags) == 0 {
		h.out.Warnf("No tags %s '%s'", rel, term)
		return
	}

	h.out.Printf("Found %d tags %s '%s':", len(tags), rel, term)
	for i, tag := range tags[:min(len(tags), h.limit)] {
		line, _ := h.index.ValueOf(tag)
		h.out.Printf("%2d. %-30s (line %d)", i+1, tagStyle.Render(tag), line)
	}
	if rest := len(tags) - h.limit; rest > 0 {
		h.out.Printf("... and %d more", rest)
	}
}
