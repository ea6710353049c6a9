package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	PostKeyPrefix     = "post:%s"
	PostListKeyPrefix = "posts:%s:%d"
	SettingKeyPrefix  = "setting:%s"
)

const (
	PostTTL     = 30 * time.Minute
	PostListTTL = 1 * time.Minute
	SettingTTL  = 10 * time.Minute
)

func PostKey(slug string) string {
	return fmt.Sprintf(PostKeyPrefix, slug)
}

// PostListKey keys a published listing by sort mode and limit.
func PostListKey(sort string, limit int) string {
	return fmt.Sprintf(PostListKeyPrefix, sort, limit)
}

func SettingKey(key string) string {
	return fmt.Sprintf(SettingKeyPrefix, key)
}

// Aside implements the cache-aside pattern: on a hit, dest is populated from
// Redis; on a miss, fetch runs and its result (already written into dest by
// the caller's closure) is stored with the given TTL. A nil client or any
// Redis failure degrades to calling fetch directly.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry; drop it and fall through to the source of truth.
		client.Del(ctx, key)
	} else if err != redis.Nil {
		return fetch()
	}

	if err := fetch(); err != nil {
		return err
	}

	if encoded, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, encoded, ttl)
	}
	return nil
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, slug string) {
	Invalidate(ctx, PostKey(slug))
}

// InvalidatePostLists drops every cached published listing. Called on any
// write that can change listing membership or order.
func InvalidatePostLists(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "posts:*", 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

func InvalidateSetting(ctx context.Context, key string) {
	Invalidate(ctx, SettingKey(key))
}
