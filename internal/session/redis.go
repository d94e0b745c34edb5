package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores session slots in Redis, the default backing for deployments.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis with short timeouts. ttl bounds how long idle
// session state survives; zero means no expiry.
func NewRedis(addr string, ttl time.Duration) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{client: client, ttl: ttl}
}

// Get decodes the slot value into out.
func (r *Redis) Get(ctx context.Context, sid string, slot Slot, out any) error {
	raw, err := r.client.Get(ctx, key(sid, slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Set stores v in the slot, refreshing the session TTL.
func (r *Redis) Set(ctx context.Context, sid string, slot Slot, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key(sid, slot), raw, r.ttl).Err()
}

// Clear removes the slot value.
func (r *Redis) Clear(ctx context.Context, sid string, slot Slot) error {
	return r.client.Del(ctx, key(sid, slot)).Err()
}

// Healthy verifies Redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.client == nil {
		return false
	}
	return r.client.Ping(ctx).Err() == nil
}
