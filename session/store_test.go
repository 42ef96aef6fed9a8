package session

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/axiomconsultancy/axiom-admin-go/redis"
)

type memoryStorage struct {
	sessions map[string][]byte
	ttls     map[string]time.Duration
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		sessions: make(map[string][]byte),
		ttls:     make(map[string]time.Duration),
	}
}

func (m *memoryStorage) SaveSession(sessionID string, data []byte, ttl time.Duration) error {
	m.sessions[sessionID] = data
	m.ttls[sessionID] = ttl
	return nil
}

func (m *memoryStorage) GetSession(sessionID string) ([]byte, error) {
	data, ok := m.sessions[sessionID]
	if !ok {
		return nil, redis.ErrNotFound
	}
	return data, nil
}

func (m *memoryStorage) DeleteSession(sessionID string) error {
	delete(m.sessions, sessionID)
	delete(m.ttls, sessionID)
	return nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func TestCreate_ExpiryFromTokenClaim(t *testing.T) {
	storage := newMemoryStorage()
	store := NewStore(storage, time.Hour)

	exp := time.Now().Add(2 * time.Hour)
	sess, err := store.Create(signedToken(t, exp), 0, Identity{UserID: "u1", Role: "admin"})
	if err != nil {
		t.Fatalf("Expected create to succeed, got %v", err)
	}

	if sess.TokenExpiry.Unix() != exp.Unix() {
		t.Errorf("Expected expiry from the exp claim %v, got %v", exp, sess.TokenExpiry)
	}

	ttl := storage.ttls[sess.ID]
	if ttl < time.Hour || ttl > 2*time.Hour {
		t.Errorf("Expected stored TTL near two hours, got %v", ttl)
	}
}

func TestCreate_ExpiryFromExpiresIn(t *testing.T) {
	store := NewStore(newMemoryStorage(), time.Hour)

	sess, err := store.Create("opaque-token", 600, Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("Expected create to succeed, got %v", err)
	}

	remaining := time.Until(sess.TokenExpiry)
	if remaining < 9*time.Minute || remaining > 10*time.Minute {
		t.Errorf("Expected roughly ten minutes of validity, got %v", remaining)
	}
}

func TestCreate_ExpiryFallsBackToDefault(t *testing.T) {
	store := NewStore(newMemoryStorage(), 30*time.Minute)

	sess, err := store.Create("opaque-token", 0, Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("Expected create to succeed, got %v", err)
	}

	remaining := time.Until(sess.TokenExpiry)
	if remaining < 29*time.Minute || remaining > 30*time.Minute {
		t.Errorf("Expected the default TTL, got %v", remaining)
	}
}

func TestCreate_RejectsExpiredToken(t *testing.T) {
	store := NewStore(newMemoryStorage(), time.Hour)

	_, err := store.Create(signedToken(t, time.Now().Add(-time.Minute)), 0, Identity{UserID: "u1"})
	if !errors.Is(err, ErrExpired) {
		t.Errorf("Expected ErrExpired for an already expired token, got %v", err)
	}
}

func TestGet_RoundTrip(t *testing.T) {
	store := NewStore(newMemoryStorage(), time.Hour)

	created, err := store.Create("opaque-token", 3600, Identity{
		UserID:   "u1",
		Username: "dana",
		Email:    "dana@example.com",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("Expected create to succeed, got %v", err)
	}

	loaded, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("Expected get to succeed, got %v", err)
	}

	if loaded.Username != "dana" || loaded.Role != "admin" || loaded.Token != "opaque-token" {
		t.Errorf("Expected the stored session back, got %+v", loaded)
	}
	if !loaded.IsAdmin() {
		t.Error("Expected an admin session")
	}
}

func TestGet_ExpiredSessionDeleted(t *testing.T) {
	storage := newMemoryStorage()
	store := NewStore(storage, time.Hour)

	created, err := store.Create("opaque-token", 3600, Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("Expected create to succeed, got %v", err)
	}

	// Rewrite the stored session with a past expiry.
	expired := created
	expired.TokenExpiry = time.Now().Add(-time.Minute)
	data, _ := json.Marshal(expired)
	storage.sessions[created.ID] = data

	if _, err := store.Get(created.ID); !errors.Is(err, ErrExpired) {
		t.Errorf("Expected ErrExpired, got %v", err)
	}

	if _, ok := storage.sessions[created.ID]; ok {
		t.Error("Expected the expired session to be deleted")
	}
}

func TestGet_Missing(t *testing.T) {
	store := NewStore(newMemoryStorage(), time.Hour)

	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
