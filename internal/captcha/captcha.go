// Package captcha implements the arithmetic challenge gating comment
// submission. A challenge is two random digits whose sum the visitor must
// type back; answers are held server-side and consumed on first verification.
package captcha

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ChallengeTTL is how long an issued challenge stays answerable.
const ChallengeTTL = 10 * time.Minute

// Challenge is an issued arithmetic prompt.
type Challenge struct {
	ID     string `json:"id"`
	Prompt string `json:"challenge"`
}

// Store persists challenge answers between issue and verify.
type Store interface {
	Save(ctx context.Context, id, answer string, ttl time.Duration) error
	// Consume returns the stored answer and deletes it. A missing or expired
	// id returns ("", false, nil).
	Consume(ctx context.Context, id string) (string, bool, error)
}

// Service issues and verifies challenges.
type Service struct {
	store Store

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Issue generates a fresh challenge and stores its answer.
func (s *Service) Issue(ctx context.Context) (Challenge, error) {
	s.mu.Lock()
	a := s.rng.Intn(10)
	b := s.rng.Intn(10)
	s.mu.Unlock()

	ch := Challenge{
		ID:     uuid.NewString(),
		Prompt: fmt.Sprintf("%d + %d = ?", a, b),
	}
	if err := s.store.Save(ctx, ch.ID, strconv.Itoa(a+b), ChallengeTTL); err != nil {
		return Challenge{}, err
	}
	return ch, nil
}

// Verify consumes the challenge and compares the visitor's answer string
// against the stored sum. Any outcome, pass or fail, invalidates the id;
// a fresh challenge must be issued for the next attempt.
func (s *Service) Verify(ctx context.Context, id, answer string) (bool, error) {
	if id == "" {
		return false, nil
	}
	want, ok, err := s.store.Consume(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return answer == want, nil
}

// RedisStore keeps answers in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func captchaKey(id string) string {
	return "captcha:" + id
}

func (s *RedisStore) Save(ctx context.Context, id, answer string, ttl time.Duration) error {
	return s.client.Set(ctx, captchaKey(id), answer, ttl).Err()
}

func (s *RedisStore) Consume(ctx context.Context, id string) (string, bool, error) {
	answer, err := s.client.GetDel(ctx, captchaKey(id)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return answer, true, nil
}

// MemoryStore is the fallback when Redis is unavailable. Entries expire
// lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	answer    string
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Save(_ context.Context, id, answer string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[id] = memoryEntry{answer: answer, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Consume(_ context.Context, id string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return "", false, nil
	}
	delete(s.entries, id)
	if time.Now().After(e.expiresAt) {
		return "", false, nil
	}
	return e.answer, true, nil
}

// NewStore picks the Redis-backed store when a client is available and the
// in-process store otherwise.
func NewStore(client *redis.Client) Store {
	if client != nil {
		return NewRedisStore(client)
	}
	return NewMemoryStore()
}
