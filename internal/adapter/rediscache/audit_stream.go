package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

// AuditStream appends audit entries to a capped Redis stream.
type AuditStream struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewAuditStream(client *redis.Client, stream string, maxLen int64) *AuditStream {
	return &AuditStream{client: client, stream: stream, maxLen: maxLen}
}

// auditValues keeps field order stable in the stream entry.
func auditValues(e domain.AuditEntry) []interface{} {
	return []interface{}{
		"actor_id", e.ActorID.String(),
		"role", string(e.Role),
		"action", e.Action,
		"entity", e.Entity,
		"entity_id", e.EntityID.String(),
		"detail", e.Detail,
		"at", e.At.Format(time.RFC3339Nano),
	}
}

func (s *AuditStream) Append(ctx context.Context, entry domain.AuditEntry) error {
	args := &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: auditValues(entry),
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
