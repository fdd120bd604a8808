package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tagKeyPrefix = "cachetag:"
	// InvalidateChannel carries invalidated tags for external consumers.
	InvalidateChannel = "cache:invalidate"
)

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = errors.New("cache: miss")

// Invalidator drops every cached entry registered under any of the tags.
type Invalidator interface {
	Invalidate(ctx context.Context, tags ...string) error
}

// Store is a tagged read-through cache.
type Store interface {
	Invalidator
	Get(ctx context.Context, key string) ([]byte, error)
	Remember(ctx context.Context, key string, value interface{}, ttl time.Duration, tags ...string) error
}

// Nop is the Store used when no cache is configured. Every Get misses.
type Nop struct{}

func (Nop) Invalidate(context.Context, ...string) error { return nil }

func (Nop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }

func (Nop) Remember(context.Context, string, interface{}, time.Duration, ...string) error {
	return nil
}

func TagKey(tag string) string {
	return tagKeyPrefix + tag
}

// TagStore keeps a Redis set per tag holding the cache keys stored under it.
type TagStore struct {
	rdb redis.UniversalClient
}

func NewTagStore(rdb redis.UniversalClient) *TagStore {
	return &TagStore{rdb: rdb}
}

// Get returns the cached value of key, or ErrMiss.
func (s *TagStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return b, nil
}

// Remember stores value under key and registers key with every tag.
func (s *TagStore) Remember(ctx context.Context, key string, value interface{}, ttl time.Duration, tags ...string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, value, ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, TagKey(tag), key)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("remember %s: %w", key, err)
	}
	return nil
}

// Invalidate deletes the keys registered under each tag along with the tag set
// itself, then publishes the tag on InvalidateChannel. It keeps going after a
// failed tag and returns the joined errors.
func (s *TagStore) Invalidate(ctx context.Context, tags ...string) error {
	var errs []error
	for _, tag := range tags {
		if err := s.invalidateTag(ctx, tag); err != nil {
			errs = append(errs, fmt.Errorf("invalidate %s: %w", tag, err))
		}
	}
	return errors.Join(errs...)
}

func (s *TagStore) invalidateTag(ctx context.Context, tag string) error {
	setKey := TagKey(tag)
	members, err := s.rdb.SMembers(ctx, setKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	_, err = s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(members) > 0 {
			pipe.Del(ctx, members...)
		}
		pipe.Del(ctx, setKey)
		pipe.Publish(ctx, InvalidateChannel, tag)
		return nil
	})
	return err
}
