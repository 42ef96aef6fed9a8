// Package redis wraps the console's Redis storage: operator sessions,
// saved table layouts, and the voice catalog snapshot.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when a key does not exist or has expired.
var ErrNotFound = errors.New("redis: key not found")

type Client struct {
	rdb *redis.Client
	ctx context.Context
}

func NewClient(addr, password string, db int) Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	client := Client{
		rdb: rdb,
		ctx: context.Background(),
	}

	if err := client.Ping(); err != nil {
		log.Fatal().Err(err).
			Str("addr", addr).
			Int("db", db).
			Msg("Redis connection failed")
	} else {
		log.Info().
			Str("addr", addr).
			Int("db", db).
			Msg("Redis connected successfully")
	}

	return client
}

func (c *Client) Ping() error {
	return c.rdb.Ping(c.ctx).Err()
}

func (c *Client) get(key string) ([]byte, error) {
	data, err := c.rdb.Get(c.ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SaveSession stores a serialized session until its token expires.
func (c *Client) SaveSession(sessionID string, data []byte, ttl time.Duration) error {
	key := fmt.Sprintf("session:%s", sessionID)
	return c.rdb.Set(c.ctx, key, data, ttl).Err()
}

func (c *Client) GetSession(sessionID string) ([]byte, error) {
	return c.get(fmt.Sprintf("session:%s", sessionID))
}

func (c *Client) DeleteSession(sessionID string) error {
	key := fmt.Sprintf("session:%s", sessionID)
	return c.rdb.Del(c.ctx, key).Err()
}

// SaveLayout stores a user's column layout for one screen. Layouts have
// no TTL; they live until the user changes them.
func (c *Client) SaveLayout(userID, screen string, data []byte) error {
	key := fmt.Sprintf("layout:%s:%s", userID, screen)
	return c.rdb.Set(c.ctx, key, data, 0).Err()
}

func (c *Client) GetLayout(userID, screen string) ([]byte, error) {
	return c.get(fmt.Sprintf("layout:%s:%s", userID, screen))
}

// SaveVoicesSnapshot persists the merged voice catalog so a restarted
// console starts warm.
func (c *Client) SaveVoicesSnapshot(data []byte, ttl time.Duration) error {
	return c.rdb.Set(c.ctx, "voices:catalog", data, ttl).Err()
}

func (c *Client) GetVoicesSnapshot() ([]byte, error) {
	return c.get("voices:catalog")
}
