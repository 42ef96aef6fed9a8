package server

import (
	"testing"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/session"
)

func TestStateCachePerSession(t *testing.T) {
	cache := newStateCache(axiom.NewClient("http://platform.test", nil))

	alice := session.Session{ID: "sess-alice", Token: "token-alice"}
	bob := session.Session{ID: "sess-bob", Token: "token-bob"}

	first := cache.get(alice)
	if first == nil || first.agents == nil || first.summaries == nil {
		t.Fatal("Expected controllers to be built on first use")
	}

	if cache.get(alice) != first {
		t.Error("Expected the same state on repeat lookups")
	}

	if cache.get(bob) == first {
		t.Error("Expected a separate state per session")
	}
}

func TestStateCacheDropForgetsSession(t *testing.T) {
	cache := newStateCache(axiom.NewClient("http://platform.test", nil))
	sess := session.Session{ID: "sess-1", Token: "token-1"}

	first := cache.get(sess)
	cache.drop(sess.ID)

	if cache.get(sess) == first {
		t.Error("Expected a fresh state after drop")
	}
}
