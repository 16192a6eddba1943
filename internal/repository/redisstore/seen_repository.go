package redisstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmkor/sparkmatch-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

type seenRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSeenRepository keeps the per-viewer set of dismissed candidates. The
// set expires after ttl, at which point disliked candidates may be offered
// again; dislikes are never written to durable storage.
func NewSeenRepository(client *redis.Client, ttl time.Duration) repository.SeenRepository {
	return &seenRepository{client: client, ttl: ttl}
}

func seenKey(viewerID int64) string {
	return fmt.Sprintf("seen:%d", viewerID)
}

func (r *seenRepository) Add(ctx context.Context, viewerID, targetID int64) error {
	key := seenKey(viewerID)
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, key, targetID)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record dismissal: %w", err)
	}
	return nil
}

func (r *seenRepository) Members(ctx context.Context, viewerID int64) ([]int64, error) {
	raw, err := r.client.SMembers(ctx, seenKey(viewerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load dismissals: %w", err)
	}

	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *seenRepository) Clear(ctx context.Context, viewerID int64) error {
	if err := r.client.Del(ctx, seenKey(viewerID)).Err(); err != nil {
		return fmt.Errorf("failed to clear dismissals: %w", err)
	}
	return nil
}
