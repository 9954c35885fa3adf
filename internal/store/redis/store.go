package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/myshortcuts/internal/store"
)

// Store implements store.Tree on Redis
type Store struct {
	client *redis.Client
	now    func() time.Time
}

var _ store.Tree = (*Store)(nil)

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		now:    time.Now,
	}
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}

// Get retrieves a node by ID
func (s *Store) Get(ctx context.Context, id string) (store.Node, error) {
	data, err := s.client.Get(ctx, NodeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return store.Node{}, fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return store.Node{}, fmt.Errorf("failed to get node: %w", err)
	}

	var n store.Node
	if err := json.Unmarshal(data, &n); err != nil {
		return store.Node{}, fmt.Errorf("failed to unmarshal node: %w", err)
	}

	return n, nil
}

// Children lists the children of parentID in insertion order
func (s *Store) Children(ctx context.Context, parentID string) ([]store.Node, error) {
	if parentID != "" {
		if _, err := s.Get(ctx, parentID); err != nil {
			return nil, err
		}
	}

	ids, err := s.client.LRange(ctx, ChildrenKey(parentID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}

	return s.getMany(ctx, ids)
}

// Search returns nodes whose title equals title, oldest first
func (s *Store) Search(ctx context.Context, title string) ([]store.Node, error) {
	ids, err := s.client.SMembers(ctx, TitleKey(title)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to search nodes: %w", err)
	}

	nodes, err := s.getMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	// set members come back unordered
	slices.SortStableFunc(nodes, func(a, b store.Node) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	return nodes, nil
}

// Create stores a node and links it under its parent in a single MULTI
func (s *Store) Create(ctx context.Context, p store.CreateParams) (store.Node, error) {
	if p.ParentID != "" {
		parent, err := s.Get(ctx, p.ParentID)
		if err != nil {
			return store.Node{}, err
		}
		if !parent.IsFolder() {
			return store.Node{}, fmt.Errorf("parent %s is not a folder", p.ParentID)
		}
	}

	n := store.Node{
		ID:        uuid.NewString(),
		ParentID:  p.ParentID,
		Title:     p.Title,
		URL:       p.URL,
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}

	data, err := json.Marshal(n)
	if err != nil {
		return store.Node{}, fmt.Errorf("failed to marshal node: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, NodeKey(n.ID), data, 0)
		pipe.RPush(ctx, ChildrenKey(n.ParentID), n.ID)
		pipe.SAdd(ctx, TitleKey(n.Title), n.ID)
		return nil
	})
	if err != nil {
		return store.Node{}, fmt.Errorf("failed to save node: %w", err)
	}

	return n, nil
}

// getMany loads nodes with a single MGET, skipping ids whose document vanished
func (s *Store) getMany(ctx context.Context, ids []string) ([]store.Node, error) {
	nodes := make([]store.Node, 0, len(ids))
	if len(ids) == 0 {
		return nodes, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = NodeKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load nodes: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var n store.Node
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return nil, fmt.Errorf("failed to unmarshal node %s: %w", ids[i], err)
		}
		nodes = append(nodes, n)
	}

	return nodes, nil
}
