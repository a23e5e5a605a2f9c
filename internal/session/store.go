package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/maxviazov/nba-totals/internal/metrics"
)

// Store owns the current State and hands out generations. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	state State
	next  map[Slice]uint64
	subs  map[chan State]struct{}

	log     zerolog.Logger
	metrics *metrics.Recorder
}

func NewStore(logger zerolog.Logger, rec *metrics.Recorder) *Store {
	l := logger.With().Str("module", "session").Str("component", "store").Logger()
	return &Store{
		next:    make(map[Slice]uint64),
		subs:    make(map[chan State]struct{}),
		log:     l,
		metrics: rec,
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// NextGeneration reserves a new, strictly increasing generation for sl.
func (s *Store) NextGeneration(sl Slice) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[sl]++
	return s.next[sl]
}

// Dispatch applies msg and reports whether it was current. Stale messages are dropped.
func (s *Store) Dispatch(msg Msg) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !Accepts(s.state, msg) {
		sl, gen, _ := msg.meta()
		s.metrics.RecordStale(string(sl))
		s.log.Debug().
			Str("slice", string(sl)).
			Uint64("generation", gen).
			Uint64("current", s.state.generation(sl)).
			Msg("stale message dropped")
		return false
	}
	s.state = Reduce(s.state, msg)
	s.publish()
	return true
}

// Subscribe streams snapshots after every applied message until ctx is done.
// A slow reader only ever sees the newest snapshot; intermediate ones are skipped.
func (s *Store) Subscribe(ctx context.Context) <-chan State {
	ch := make(chan State, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	ch <- s.state
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

// publish must be called with mu held; it is the only sender on subscriber channels.
func (s *Store) publish() {
	for ch := range s.subs {
		select {
		case ch <- s.state:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s.state
		}
	}
}
