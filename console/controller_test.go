package console

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/axiomconsultancy/axiom-admin-go/fetch"
)

func TestBusyTrackerRejectsDuplicateActions(t *testing.T) {
	tracker := newBusyTracker()

	if !tracker.mark("users", "user-1") {
		t.Fatal("Expected first mark to succeed")
	}
	if tracker.mark("users", "user-1") {
		t.Error("Expected duplicate mark on the same row to be rejected")
	}
	if !tracker.mark("users", "user-2") {
		t.Error("Expected a different row to be markable")
	}
	if !tracker.mark("agents", "user-1") {
		t.Error("Expected the same row id on a different screen to be markable")
	}

	tracker.unmark("users", "user-1")
	if !tracker.mark("users", "user-1") {
		t.Error("Expected mark to succeed again after unmark")
	}
}

func TestBusyTrackerListsRowsSorted(t *testing.T) {
	tracker := newBusyTracker()
	tracker.mark("users", "zz")
	tracker.mark("users", "aa")
	tracker.mark("users", "mm")

	got := tracker.busyRows("users")
	expected := []string{"aa", "mm", "zz"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected busy rows %v, got %v", expected, got)
	}

	tracker.unmark("users", "aa")
	tracker.unmark("users", "mm")
	tracker.unmark("users", "zz")
	if rows := tracker.busyRows("users"); rows != nil {
		t.Errorf("Expected no busy rows after unmarking, got %v", rows)
	}
}

func TestGuardedDropsSupersededResult(t *testing.T) {
	seq := fetch.NewSequencer()

	started := make(chan struct{})
	release := make(chan struct{})
	type outcome struct {
		value int
		err   error
	}
	results := make(chan outcome, 1)

	go func() {
		value, err := guarded(seq, context.Background(), "agents", func(ctx context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
		results <- outcome{value, err}
	}()

	<-started

	// A second fetch for the same screen supersedes the first.
	value, err := guarded(seq, context.Background(), "agents", func(ctx context.Context) (int, error) {
		return 2, nil
	})
	if err != nil {
		t.Fatalf("Expected the newer fetch to succeed, got %v", err)
	}
	if value != 2 {
		t.Errorf("Expected the newer fetch's value 2, got %d", value)
	}

	close(release)
	old := <-results
	if !errors.Is(old.err, ErrSuperseded) {
		t.Errorf("Expected the stale fetch to report ErrSuperseded, got %v", old.err)
	}
	if old.value != 0 {
		t.Errorf("Expected the stale fetch's value to be dropped, got %d", old.value)
	}
}

func TestGuardedCancelsSupersededContext(t *testing.T) {
	seq := fetch.NewSequencer()

	started := make(chan struct{})
	canceled := make(chan error, 1)

	go func() {
		guarded(seq, context.Background(), "users", func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			canceled <- ctx.Err()
			return 0, ctx.Err()
		})
	}()

	<-started

	// Starting a newer fetch cancels the in-flight one's context, so a
	// stuck backend call aborts instead of running to completion.
	_, err := guarded(seq, context.Background(), "users", func(ctx context.Context) (int, error) {
		return 1, nil
	})
	if err != nil {
		t.Fatalf("Expected the newer fetch to succeed, got %v", err)
	}

	if ctxErr := <-canceled; !errors.Is(ctxErr, context.Canceled) {
		t.Errorf("Expected the superseded context to be canceled, got %v", ctxErr)
	}
}

func TestGuardedDistinctKeysDoNotInterfere(t *testing.T) {
	seq := fetch.NewSequencer()

	first, err := guarded(seq, context.Background(), "agents", func(ctx context.Context) (string, error) {
		return "agents-result", nil
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second, err := guarded(seq, context.Background(), "users", func(ctx context.Context) (string, error) {
		return "users-result", nil
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if first != "agents-result" || second != "users-result" {
		t.Errorf("Expected independent results per screen, got %q and %q", first, second)
	}
}

func TestGuardedReturnsFetchError(t *testing.T) {
	seq := fetch.NewSequencer()
	expected := errors.New("backend unavailable")

	_, err := guarded(seq, context.Background(), "plans", func(ctx context.Context) (int, error) {
		return 0, expected
	})
	if !errors.Is(err, expected) {
		t.Errorf("Expected the fetch error to pass through, got %v", err)
	}
}
