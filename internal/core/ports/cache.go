package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/gercamp/internal/core/domain"
)

type ScheduleCache interface {
	Get(ctx context.Context, yurtID uuid.UUID) ([]domain.ScheduleEntry, bool, error)
	Set(ctx context.Context, yurtID uuid.UUID, entries []domain.ScheduleEntry) error
	Invalidate(ctx context.Context, yurtID uuid.UUID) error
}

type AuditSink interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
}
