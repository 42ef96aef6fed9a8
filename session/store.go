package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/axiomconsultancy/axiom-admin-go/redis"
)

var (
	ErrNotFound = errors.New("session: not found")
	ErrExpired  = errors.New("session: expired")
)

// storage is the slice of the redis client the store uses.
type storage interface {
	SaveSession(sessionID string, data []byte, ttl time.Duration) error
	GetSession(sessionID string) ([]byte, error)
	DeleteSession(sessionID string) error
}

// Store persists sessions keyed by an opaque session ID, with a TTL
// matching the platform token's lifetime.
type Store struct {
	storage    storage
	defaultTTL time.Duration
}

// NewStore creates a session store. defaultTTL applies when neither the
// token's exp claim nor the sign-in response provides an expiry.
func NewStore(storage storage, defaultTTL time.Duration) *Store {
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	return &Store{
		storage:    storage,
		defaultTTL: defaultTTL,
	}
}

// Create builds and persists a session for a fresh platform token.
// Expiry preference: the token's own exp claim, then expiresIn seconds
// from the sign-in response, then the store default.
func (st *Store) Create(token string, expiresIn int, identity Identity) (Session, error) {
	expiry, ok := tokenExpiry(token)
	if !ok {
		if expiresIn > 0 {
			expiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
		} else {
			expiry = time.Now().Add(st.defaultTTL)
		}
	}

	sess := Session{
		ID:          uuid.NewString(),
		Token:       token,
		TokenExpiry: expiry,
		UserID:      identity.UserID,
		Username:    identity.Username,
		Email:       identity.Email,
		Role:        identity.Role,
	}

	if sess.Expired() {
		return Session{}, ErrExpired
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := st.storage.SaveSession(sess.ID, data, sess.TTL()); err != nil {
		return Session{}, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info().
		Str("session_id", sess.ID).
		Str("role", sess.Role).
		Time("token_expiry", sess.TokenExpiry).
		Msg("Session created")

	return sess, nil
}

// Get loads a session. Expired sessions are deleted and reported as
// ErrExpired so the caller forces re-authentication.
func (st *Store) Get(sessionID string) (Session, error) {
	data, err := st.storage.GetSession(sessionID)
	if errors.Is(err, redis.ErrNotFound) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if sess.Expired() {
		if err := st.storage.DeleteSession(sessionID); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to delete expired session")
		}
		return Session{}, ErrExpired
	}

	return sess, nil
}

// Delete removes a session at sign-out.
func (st *Store) Delete(sessionID string) error {
	return st.storage.DeleteSession(sessionID)
}
