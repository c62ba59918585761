package tokens

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned when a newer update started before this one
// finished.
var ErrSuperseded = errors.New("superseded by a newer update")

// Session recomputes the summary whenever the file set changes. Each update
// is a full recomputation; a newer update cancels older in-flight ones and
// only the newest completed run is published.
//
// An update's generation is fixed when it begins, so a caller that reads
// files itself must call Begin before reading and Finish afterwards. Update
// does both for files already in memory.
type Session struct {
	agg *Aggregator

	mu         sync.Mutex
	generation uint64 // last generation handed out
	cancel     context.CancelFunc
	latest     *Result
	published  uint64 // generation of latest
}

// NewSession creates a session backed by agg.
func NewSession(agg *Aggregator) *Session {
	return &Session{agg: agg}
}

// Begin reserves the next generation and cancels every older in-flight
// update. The returned context is canceled when a newer update begins; the
// cancel func must be called once the update is finished.
func (s *Session) Begin(ctx context.Context) (context.Context, uint64, context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return runCtx, s.generation, cancel
}

// Finish aggregates files for the update begun as gen and publishes the
// result. It returns ErrSuperseded if another update began after gen; the
// stale result is discarded.
func (s *Session) Finish(ctx context.Context, gen uint64, files []File) (*Result, error) {
	result, err := s.agg.Aggregate(ctx, files)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return nil, ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		return nil, err
	}

	s.latest = result
	s.published = gen
	return result, nil
}

// Update recomputes the summary for files and returns it with its
// generation.
func (s *Session) Update(ctx context.Context, files []File) (*Result, uint64, error) {
	runCtx, gen, cancel := s.Begin(ctx)
	defer cancel()

	result, err := s.Finish(runCtx, gen, files)
	if err != nil {
		return nil, 0, err
	}
	return result, gen, nil
}

// Latest returns the most recently published result and its generation.
// The result is nil until the first update completes.
func (s *Session) Latest() (*Result, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.published
}
