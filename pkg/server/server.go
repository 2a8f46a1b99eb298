package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/tagserve/pkg/config"
	"github.com/bastiangx/tagserve/pkg/engine"
)

// defaultLimit applies when a request carries no limit.
const defaultLimit = 10

// Options bounds what a single request may ask for.
type Options struct {
	MaxLimit  int
	MaxQuery  int
	CacheSize int
}

// OptionsFromConfig copies the [server] section of cfg.
func OptionsFromConfig(cfg config.ServerConfig) Options {
	return Options{
		MaxLimit:  cfg.MaxLimit,
		MaxQuery:  cfg.MaxQuery,
		CacheSize: cfg.CacheSize,
	}
}

// Server answers msgpack requests against a frozen index.
type Server struct {
	index   engine.Searcher[int]
	opts    Options
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
	cache   *resultCache
	metrics *Metrics

	requests int
}

// NewServer creates a server reading requests from r and writing replies to w.
// A nil m gets a fresh Metrics.
func NewServer(index engine.Searcher[int], r io.Reader, w io.Writer, opts Options, m *Metrics) *Server {
	if m == nil {
		m = NewMetrics()
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = config.DefaultConfig().Server.MaxLimit
	}
	m.IndexSize.Set(float64(index.Size()))

	return &Server{
		index:   index,
		opts:    opts,
		dec:     msgpack.NewDecoder(r),
		enc:     msgpack.NewEncoder(w),
		cache:   newResultCache(opts.CacheSize),
		metrics: m,
	}
}

// Metrics returns the collectors the server records into.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Start sends the ready message and serves requests until the input ends,
// ctx is cancelled or the stream can no longer be decoded.
func (s *Server) Start(ctx context.Context) error {
	log.Debug("Starting Server.")
	if err := s.enc.Encode(StatusResponse{Status: "ready"}); err != nil {
		return fmt.Errorf("send ready: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		var raw msgpack.RawMessage
		if err := s.dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return fmt.Errorf("decode request: %w", err)
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			log.Errorf("Unmarshaling request: %v", err)
			s.sendError("", "invalid msgpack request", CodeBadRequest, "invalid")
			continue
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	s.requests++
	start := time.Now()
	defer func() {
		s.metrics.Duration.WithLabelValues(req.Action).Observe(time.Since(start).Seconds())
	}()

	switch req.Action {
	case ActionHealth:
		s.send(req.Action, StatusResponse{ID: req.ID, Status: "ok"})
		return
	case ActionStats:
		s.send(req.Action, StatsResponse{
			ID:           req.ID,
			Status:       "ok",
			Size:         s.index.Size(),
			Requests:     s.requests,
			CacheEntries: s.cache.len(),
			MaxLimit:     s.opts.MaxLimit,
			MaxQuery:     s.opts.MaxQuery,
		})
		return
	case ActionLookup, ActionPrefix, ActionContains, ActionRelative:
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %q", req.Action), CodeBadRequest, "unknown")
		return
	}

	if !utf8.ValidString(req.Query) {
		s.sendError(req.ID, "query is not valid UTF-8", CodeBadRequest, req.Action)
		return
	}
	if n := utf8.RuneCountInString(req.Query); s.opts.MaxQuery > 0 && n > s.opts.MaxQuery {
		s.sendError(req.ID, fmt.Sprintf("query exceeds maximum length of %d characters", s.opts.MaxQuery), CodeBadRequest, req.Action)
		log.Debugf("Query too long in request %s: %d", req.ID, n)
		return
	}
	limit := s.clampLimit(req.Limit)

	var (
		resp Response
		err  error
	)
	switch req.Action {
	case ActionLookup:
		resp, err = s.lookup(req.Query)
	case ActionPrefix:
		resp, err = s.prefix(req.Query, limit)
	case ActionContains:
		resp, err = s.contains(req.Query, limit)
	case ActionRelative:
		resp, err = s.relative(req.Query, limit)
	}
	if err != nil {
		s.sendError(req.ID, err.Error(), errorCode(err), req.Action)
		return
	}

	resp.ID = req.ID
	resp.Count = len(resp.Tags)
	resp.TimeTaken = time.Since(start).Microseconds()
	s.send(req.Action, resp)
}

func (s *Server) clampLimit(limit int) int {
	if limit < 1 {
		limit = defaultLimit
	}
	return min(limit, s.opts.MaxLimit)
}

func (s *Server) lookup(tag string) (Response, error) {
	v, err := s.index.ValueOf(tag)
	if err != nil {
		return Response{}, err
	}
	return Response{Tags: []string{tag}, Value: &v}, nil
}

func (s *Server) prefix(prefix string, limit int) (Response, error) {
	tags, err := s.index.PrefixSearch(prefix)
	if err != nil {
		return Response{}, err
	}
	return Response{Tags: tags[:min(len(tags), limit)]}, nil
}

func (s *Server) contains(sub string, limit int) (Response, error) {
	matches, err := s.cached(ActionContains, sub, func() ([]engine.Match, error) {
		tags, err := s.index.ContainsSearch(sub)
		if err != nil {
			return nil, err
		}
		matches := make([]engine.Match, len(tags))
		for i, tag := range tags {
			matches[i] = engine.Match{Tag: tag}
		}
		return matches, nil
	})
	if err != nil {
		return Response{}, err
	}
	resp := Response{Tags: make([]string, 0, min(len(matches), limit))}
	for _, m := range matches[:min(len(matches), limit)] {
		resp.Tags = append(resp.Tags, m.Tag)
	}
	return resp, nil
}

// relative caches the MaxLimit closest tags so any smaller limit is a prefix
// of the cached list.
func (s *Server) relative(target string, limit int) (Response, error) {
	matches, err := s.cached(ActionRelative, target, func() ([]engine.Match, error) {
		return s.index.RelativeSearchN(target, s.opts.MaxLimit)
	})
	if err != nil {
		return Response{}, err
	}
	matches = matches[:min(len(matches), limit)]
	resp := Response{
		Tags:      make([]string, len(matches)),
		Distances: make([]int, len(matches)),
	}
	for i, m := range matches {
		resp.Tags[i] = m.Tag
		resp.Distances[i] = m.Distance
	}
	return resp, nil
}

func (s *Server) cached(action, query string, compute func() ([]engine.Match, error)) ([]engine.Match, error) {
	if matches, ok := s.cache.get(action, query); ok {
		s.metrics.CacheHits.Inc()
		return matches, nil
	}
	s.metrics.CacheMisses.Inc()

	matches, err := compute()
	if err != nil {
		return nil, err
	}
	s.cache.set(action, query, matches)
	return matches, nil
}

// PurgeCache drops every memoized result. Needed only if the index is
// rebuilt underneath a running server.
func (s *Server) PurgeCache() {
	s.cache.purge()
	s.metrics.IndexSize.Set(float64(s.index.Size()))
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, engine.ErrKeyNotFound), errors.Is(err, engine.ErrEmptyIndex):
		return CodeNotFound
	case errors.Is(err, engine.ErrInvalidMode):
		return CodeWrongMode
	case errors.Is(err, engine.ErrInvalidTag):
		return CodeBadRequest
	}
	return CodeInternal
}

// send encodes v as the reply to an action and records it in the metrics.
func (s *Server) send(action string, v any) {
	if err := s.enc.Encode(v); err != nil {
		log.Errorf("Encoding response: %v", err)
		s.metrics.Requests.WithLabelValues(action, strconv.Itoa(CodeInternal)).Inc()
		return
	}
	s.metrics.Requests.WithLabelValues(action, "200").Inc()
}

func (s *Server) sendError(id, message string, code int, action string) {
	s.metrics.Requests.WithLabelValues(action, strconv.Itoa(code)).Inc()
	if err := s.enc.Encode(Error{ID: id, Error: message, Code: code}); err != nil {
		log.Errorf("Encoding error response: %v", err)
	}
}
