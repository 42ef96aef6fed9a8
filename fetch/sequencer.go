// Package fetch guards list fetches against stale responses. Each key
// (one table screen) hands out numbered tickets; starting a new ticket
// cancels the previous in-flight request, and a result is only applied
// if its ticket is still the latest issued.
package fetch

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

type activeFetch struct {
	ctx    context.Context
	cancel context.CancelFunc
	seq    uint64
}

type Sequencer struct {
	fetches map[string]*activeFetch
	nextSeq uint64
	mutex   sync.Mutex
}

func NewSequencer() *Sequencer {
	return &Sequencer{
		fetches: make(map[string]*activeFetch),
	}
}

// Start issues the next ticket for key, cancelling any request still in
// flight for it. The returned context derives from parent and should
// bound the new request.
func (s *Sequencer) Start(parent context.Context, key string) (context.Context, uint64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if existing, exists := s.fetches[key]; exists {
		log.Debug().
			Str("key", key).
			Uint64("seq", existing.seq).
			Msg("Cancelling superseded fetch")
		existing.cancel()
	}

	if parent == nil {
		parent = context.Background()
	}

	s.nextSeq++
	ctx, cancel := context.WithCancel(parent)
	s.fetches[key] = &activeFetch{
		ctx:    ctx,
		cancel: cancel,
		seq:    s.nextSeq,
	}

	return ctx, s.nextSeq
}

// Latest reports whether seq is still the newest ticket for key. Callers
// drop results for which this returns false.
func (s *Sequencer) Latest(key string, seq uint64) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	current, exists := s.fetches[key]
	return exists && current.seq == seq
}

// Finish releases the ticket if it is still current, so a completed
// fetch does not hold a cancel function alive.
func (s *Sequencer) Finish(key string, seq uint64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if current, exists := s.fetches[key]; exists && current.seq == seq {
		current.cancel()
		delete(s.fetches, key)
	}
}
