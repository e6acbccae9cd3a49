package analyzer

import (
	"context"
	"sync"

	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
)

// Session serializes analysis requests over one Analyzer with
// last-request-wins semantics: submitting a new record cancels the in-flight
// analysis, and a superseded result is discarded rather than delivered.
type Session struct {
	analyzer types.Analyzer

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	closed     bool

	results chan *types.AnalysisResult
	wg      sync.WaitGroup
}

// NewSession wraps an analyzer in a session. Close must be called to release
// the results channel.
func NewSession(a types.Analyzer) *Session {
	return &Session{
		analyzer: a,
		results:  make(chan *types.AnalysisResult, 1),
	}
}

// Submit starts an analysis of the record. Any in-flight analysis is canceled
// and its result discarded; only the most recent submission ever reaches the
// results channel.
func (s *Session) Submit(record *types.WaveformRecord, spec types.FilterSpec) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.generation++
	gen := s.generation
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer cancel()
		result := s.analyzer.Analyze(ctx, record, spec)
		s.deliver(gen, result)
	}()
}

// deliver holds the session lock across the staleness check and the send so a
// superseded analysis can never drain and replace a fresher result that landed
// between the two. Sends go through deliver only, and the channel is drained
// first, so the send never blocks while the lock is held.
func (s *Session) deliver(gen uint64, result *types.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		s.analyzer.NotifyLoggers(types.DebugLevel, "superseded result discarded", "result", result.ID)
		return
	}

	// Drop the unconsumed previous result so the latest always lands.
	select {
	case <-s.results:
	default:
	}
	select {
	case s.results <- result:
	default:
	}
}

// Results returns the channel that delivers completed analyses. It is closed
// by Close.
func (s *Session) Results() <-chan *types.AnalysisResult {
	return s.results
}

// Close cancels any in-flight analysis, waits for it to wind down, and closes
// the results channel. Submit calls after Close are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()
	close(s.results)
}
