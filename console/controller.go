// Package console implements the admin console screens: list fetching
// with page correction and stale-response protection, row actions with
// per-row busy tracking, and the form-to-payload builders for the
// create and edit modals.
package console

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/axiomconsultancy/axiom-admin-go/fetch"
)

// ErrRowBusy is returned when a row action is requested while another
// action on the same row is still running.
var ErrRowBusy = errors.New("console: row action already in progress")

// busyTracker records which rows have an action in flight, per screen
// key, so the table can show per-row spinners and duplicate clicks are
// rejected instead of queued.
type busyTracker struct {
	mutex sync.Mutex
	rows  map[string]map[string]struct{}
}

func newBusyTracker() *busyTracker {
	return &busyTracker{
		rows: make(map[string]map[string]struct{}),
	}
}

// mark claims a row for an action. It returns false if the row already
// has one running.
func (b *busyTracker) mark(key, id string) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	ids, exists := b.rows[key]
	if !exists {
		ids = make(map[string]struct{})
		b.rows[key] = ids
	}

	if _, busy := ids[id]; busy {
		return false
	}
	ids[id] = struct{}{}
	return true
}

func (b *busyTracker) unmark(key, id string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if ids, exists := b.rows[key]; exists {
		delete(ids, id)
		if len(ids) == 0 {
			delete(b.rows, key)
		}
	}
}

// busyRows lists the rows with running actions, sorted for stable
// output.
func (b *busyTracker) busyRows(key string) []string {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	ids := b.rows[key]
	if len(ids) == 0 {
		return nil
	}

	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// guarded runs a fetch under a sequencer ticket for key. If a newer
// fetch for the same key is issued while this one runs, the result is
// dropped and ErrSuperseded returned, so a slow old response can never
// overwrite a newer one.
func guarded[T any](seq *fetch.Sequencer, parent context.Context, key string, run func(ctx context.Context) (T, error)) (T, error) {
	ctx, ticket := seq.Start(parent, key)

	out, err := run(ctx)

	if !seq.Latest(key, ticket) {
		var zero T
		return zero, ErrSuperseded
	}
	seq.Finish(key, ticket)

	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
