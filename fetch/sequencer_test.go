package fetch

import (
	"context"
	"testing"
)

func TestStart_SupersedesPreviousFetch(t *testing.T) {
	s := NewSequencer()

	ctx1, seq1 := s.Start(context.Background(), "agents")
	_, seq2 := s.Start(context.Background(), "agents")

	if seq2 <= seq1 {
		t.Errorf("Expected sequence numbers to increase, got %d then %d", seq1, seq2)
	}

	select {
	case <-ctx1.Done():
	default:
		t.Error("Expected the superseded context to be cancelled")
	}

	if s.Latest("agents", seq1) {
		t.Error("Expected the superseded ticket to no longer be latest")
	}
	if !s.Latest("agents", seq2) {
		t.Error("Expected the new ticket to be latest")
	}
}

func TestLatest_KeysAreIndependent(t *testing.T) {
	s := NewSequencer()

	ctxAgents, seqAgents := s.Start(context.Background(), "agents")
	_, seqUsers := s.Start(context.Background(), "users")

	select {
	case <-ctxAgents.Done():
		t.Error("Expected a fetch on another key to leave this one running")
	default:
	}

	if !s.Latest("agents", seqAgents) || !s.Latest("users", seqUsers) {
		t.Error("Expected both keys to keep their own latest ticket")
	}
}

func TestFinish_ReleasesOnlyCurrentTicket(t *testing.T) {
	s := NewSequencer()

	_, seq1 := s.Start(context.Background(), "plans")
	_, seq2 := s.Start(context.Background(), "plans")

	s.Finish("plans", seq1) // stale finish must not disturb seq2

	if !s.Latest("plans", seq2) {
		t.Error("Expected a stale finish to leave the current ticket alone")
	}

	s.Finish("plans", seq2)

	if s.Latest("plans", seq2) {
		t.Error("Expected the finished ticket to be released")
	}
}
