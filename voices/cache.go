// Package voices caches the platform voice catalog for the agent form's
// voice picker. Catalog fetches merge into the cache by voice ID; search
// fetches return transient results and never touch it.
package voices

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
)

const defaultPageSize = 100

// Lister is the slice of the platform client the cache fetches with.
// Callers pass their own session's client so the cache itself holds no
// credentials.
type Lister interface {
	ListVoices(ctx context.Context, params axiom.ListVoicesParams) (axiom.List[axiom.Voice], error)
}

// snapshotStorage persists the merged catalog across restarts.
type snapshotStorage interface {
	SaveVoicesSnapshot(data []byte, ttl time.Duration) error
	GetVoicesSnapshot() ([]byte, error)
}

// Cache is the merged voice catalog. Merges carry ticket numbers so a
// slow fetch that started before the latest applied merge cannot roll
// the catalog back when it finally lands.
type Cache struct {
	storage     snapshotStorage
	snapshotTTL time.Duration

	mutex     sync.RWMutex
	byID      map[string]axiom.Voice
	order     []string
	mergedSeq uint64
	nextSeq   uint64
}

// NewCache creates an empty cache. storage may be nil; the cache then
// lives only in memory.
func NewCache(storage snapshotStorage, snapshotTTL time.Duration) *Cache {
	if snapshotTTL <= 0 {
		snapshotTTL = time.Hour
	}
	return &Cache{
		storage:     storage,
		snapshotTTL: snapshotTTL,
		byID:        make(map[string]axiom.Voice),
	}
}

// WarmStart seeds the cache from the persisted snapshot, if one exists.
func (c *Cache) WarmStart() {
	if c.storage == nil {
		return
	}

	data, err := c.storage.GetVoicesSnapshot()
	if err != nil {
		return
	}

	var voices []axiom.Voice
	if err := json.Unmarshal(data, &voices); err != nil {
		log.Warn().Err(err).Msg("Discarding unreadable voices snapshot")
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, voice := range voices {
		if _, exists := c.byID[voice.ID]; !exists {
			c.order = append(c.order, voice.ID)
		}
		c.byID[voice.ID] = voice
	}

	log.Info().Int("voices", len(voices)).Msg("Voice catalog warm started from snapshot")
}

// Refresh fetches the catalog and merges it into the cache, returning
// the merged catalog. A refresh superseded by a newer completed merge is
// discarded and the current catalog returned instead.
func (c *Cache) Refresh(ctx context.Context, client Lister) ([]axiom.Voice, error) {
	c.mutex.Lock()
	c.nextSeq++
	seq := c.nextSeq
	c.mutex.Unlock()

	list, err := client.ListVoices(ctx, axiom.ListVoicesParams{PageSize: defaultPageSize})
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	if seq < c.mergedSeq {
		c.mutex.Unlock()
		log.Debug().Uint64("seq", seq).Msg("Discarding stale voice catalog fetch")
		return c.All(), nil
	}

	for _, voice := range list.Items {
		if _, exists := c.byID[voice.ID]; !exists {
			c.order = append(c.order, voice.ID)
		}
		c.byID[voice.ID] = voice
	}
	c.mergedSeq = seq
	merged := c.snapshotLocked()
	c.mutex.Unlock()

	c.persist(merged)

	return merged, nil
}

// Search queries the catalog by name. Results are transient and never
// merged, so a narrow search cannot shrink the cached catalog.
func (c *Cache) Search(ctx context.Context, client Lister, query string) ([]axiom.Voice, error) {
	list, err := client.ListVoices(ctx, axiom.ListVoicesParams{
		Search:   query,
		PageSize: defaultPageSize,
	})
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

// All returns the merged catalog in first-seen order.
func (c *Cache) All() []axiom.Voice {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.snapshotLocked()
}

func (c *Cache) snapshotLocked() []axiom.Voice {
	voices := make([]axiom.Voice, 0, len(c.order))
	for _, id := range c.order {
		voices = append(voices, c.byID[id])
	}
	return voices
}

// Get looks up one voice by ID.
func (c *Cache) Get(id string) (axiom.Voice, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	voice, ok := c.byID[id]
	return voice, ok
}

// Len returns the number of cached voices.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.byID)
}

func (c *Cache) persist(voices []axiom.Voice) {
	if c.storage == nil {
		return
	}

	data, err := json.Marshal(voices)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to marshal voices snapshot")
		return
	}
	if err := c.storage.SaveVoicesSnapshot(data, c.snapshotTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to persist voices snapshot")
	}
}
