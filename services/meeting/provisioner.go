package meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	// roomKeyPrefix namespaces provisioned room records in Redis.
	roomKeyPrefix = "meeting:"

	// roomTTL keeps room records around long enough to cover rescheduled
	// sessions and late transcript uploads.
	roomTTL = 30 * 24 * time.Hour
)

// Provisioner creates and tears down meeting rooms. Every room is bound to
// exactly one booking; replacing a booking's meeting releases the old room
// so stale links stop resolving.
type Provisioner interface {
	// EnsureMeeting provisions a room for the booking and returns its join
	// link.
	EnsureMeeting(ctx context.Context, bookingID string) (string, error)

	// Release tears down the room behind a meeting link. Releasing a link
	// that no longer resolves is not an error.
	Release(ctx context.Context, meetingLink string) error

	// RoomExists reports whether the link still resolves to a live room.
	RoomExists(ctx context.Context, meetingLink string) (bool, error)
}

// roomProvisioner issues rooms as unguessable UUID paths under the public
// base URL and tracks them in Redis.
type roomProvisioner struct {
	client  *redis.Client
	baseURL string
}

// NewRoomProvisioner creates a Provisioner backed by the given Redis client.
func NewRoomProvisioner(client *redis.Client, baseURL string) Provisioner {
	return &roomProvisioner{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (p *roomProvisioner) EnsureMeeting(ctx context.Context, bookingID string) (string, error) {
	roomID := uuid.NewString()
	key := roomKeyPrefix + roomID

	if err := p.client.Set(ctx, key, bookingID, roomTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to provision meeting room: %w", err)
	}
	return fmt.Sprintf("%s/meeting/%s", p.baseURL, roomID), nil
}

func (p *roomProvisioner) Release(ctx context.Context, meetingLink string) error {
	roomID, ok := p.roomID(meetingLink)
	if !ok {
		return nil
	}
	if err := p.client.Del(ctx, roomKeyPrefix+roomID).Err(); err != nil {
		return fmt.Errorf("failed to release meeting room %s: %w", roomID, err)
	}
	return nil
}

func (p *roomProvisioner) RoomExists(ctx context.Context, meetingLink string) (bool, error) {
	roomID, ok := p.roomID(meetingLink)
	if !ok {
		return false, nil
	}
	n, err := p.client.Exists(ctx, roomKeyPrefix+roomID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check meeting room %s: %w", roomID, err)
	}
	return n > 0, nil
}

// roomID extracts the trailing room identifier from a meeting link.
func (p *roomProvisioner) roomID(meetingLink string) (string, bool) {
	idx := strings.LastIndex(meetingLink, "/meeting/")
	if idx < 0 {
		return "", false
	}
	roomID := meetingLink[idx+len("/meeting/"):]
	if roomID == "" || strings.Contains(roomID, "/") {
		return "", false
	}
	return roomID, true
}
