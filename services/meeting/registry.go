package meeting

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// joinedKeyPrefix namespaces the per-user set of joined meeting links.
const joinedKeyPrefix = "joinedmeetings:"

// JoinRegistry records which meeting links a user has actually joined. The
// registry lives server side so the meetings view survives cleared browser
// storage and works across devices.
type JoinRegistry interface {
	RecordJoin(ctx context.Context, userID, meetingLink string) error
	JoinedLinks(ctx context.Context, userID string) ([]string, error)
}

type redisJoinRegistry struct {
	client *redis.Client
}

// NewJoinRegistry creates a JoinRegistry backed by the given Redis client.
func NewJoinRegistry(client *redis.Client) JoinRegistry {
	return &redisJoinRegistry{client: client}
}

func (r *redisJoinRegistry) RecordJoin(ctx context.Context, userID, meetingLink string) error {
	if err := r.client.SAdd(ctx, joinedKeyPrefix+userID, meetingLink).Err(); err != nil {
		return fmt.Errorf("failed to record joined meeting for user %s: %w", userID, err)
	}
	return nil
}

func (r *redisJoinRegistry) JoinedLinks(ctx context.Context, userID string) ([]string, error) {
	links, err := r.client.SMembers(ctx, joinedKeyPrefix+userID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list joined meetings for user %s: %w", userID, err)
	}
	return links, nil
}
