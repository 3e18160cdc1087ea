// Package shoplist manages saved shopping lists and turns them into
// multi-store shopping plans.
package shoplist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/backend-cjenovnik/internal/optimize"
)

// ErrNotFound signals a missing or expired shopping list.
var ErrNotFound = errors.New("shopping list not found")

// List is a saved shopping list.
type List struct {
	ID        string          `json:"id"`
	Items     []optimize.Item `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Store persists shopping lists in Redis as JSON documents with a sliding TTL.
type Store struct {
	R   *redis.Client
	TTL time.Duration
	Now func() time.Time
}

// NewStore builds a Redis-backed list store.
func NewStore(r *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Store{R: r, TTL: ttl, Now: time.Now}
}

func listKey(id string) string { return "shoplist:" + id }

// Create persists a new empty list and returns it.
func (s *Store) Create(ctx context.Context) (*List, error) {
	now := s.Now().UTC()
	list := &List{
		ID:        uuid.NewString(),
		Items:     []optimize.Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get loads a list by id.
func (s *Store) Get(ctx context.Context, id string) (*List, error) {
	raw, err := s.R.Get(ctx, listKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load shopping list: %w", err)
	}
	var list List
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode shopping list: %w", err)
	}
	return &list, nil
}

// Save stores the list back with a refreshed TTL and bumped UpdatedAt.
func (s *Store) Save(ctx context.Context, list *List) error {
	list.UpdatedAt = s.Now().UTC()
	return s.save(ctx, list)
}

// Delete removes a list. Deleting an absent list is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.R.Del(ctx, listKey(id)).Err(); err != nil {
		return fmt.Errorf("delete shopping list: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, list *List) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode shopping list: %w", err)
	}
	if err := s.R.Set(ctx, listKey(list.ID), payload, s.TTL).Err(); err != nil {
		return fmt.Errorf("store shopping list: %w", err)
	}
	return nil
}
