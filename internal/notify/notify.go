// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

/*
Package notify publishes moderation decision events to the notification queue.

The moderation core's contract with notification delivery is fire-and-forget:
a decision that committed to the database is final, and a failure to enqueue
or deliver the notification must never roll it back. The external mail
dispatcher drains the queue out of process.
*/
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DmitryMustk/artdistrict/internal/platform/constants"
)

// Event describes a single moderation decision for downstream delivery.
type Event struct {
	EntityKind  string    `json:"entity_kind"`
	EntityID    string    `json:"entity_id"`
	Decision    string    `json:"decision"`
	Comment     string    `json:"comment,omitempty"`
	ModeratorID string    `json:"moderator_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Dispatcher is the outbound contract the moderation service depends on.
//
// Implementations must be safe for concurrent use.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}

// RedisDispatcher pushes events onto a Redis list drained by the external
// notification worker.
type RedisDispatcher struct {
	client *redis.Client
}

// NewRedisDispatcher creates a Redis-backed event dispatcher.
func NewRedisDispatcher(client *redis.Client) *RedisDispatcher {
	return &RedisDispatcher{client: client}
}

// Dispatch serializes the event and LPUSHes it onto the moderation queue.
func (dispatcher *RedisDispatcher) Dispatch(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: failed to marshal event: %w", err)
	}

	if err := dispatcher.client.LPush(ctx, constants.RedisKeyModerationEvents, payload).Err(); err != nil {
		return fmt.Errorf("notify: failed to enqueue event: %w", err)
	}

	return nil
}

// Nop is a Dispatcher that discards every event. Used in tests and in
// environments without a notification worker.
type Nop struct{}

// Dispatch implements Dispatcher.
func (Nop) Dispatch(ctx context.Context, event Event) error { return nil }
