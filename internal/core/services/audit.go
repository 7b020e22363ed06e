package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srgjo27/gercamp/internal/core/domain"
	"github.com/srgjo27/gercamp/internal/core/ports"
)

// Auditor records who did what. Recording never fails the caller: sink
// errors are logged and dropped.
type Auditor struct {
	sink   ports.AuditSink
	logger *zap.Logger
	now    func() time.Time
}

func NewAuditor(sink ports.AuditSink, logger *zap.Logger) *Auditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auditor{sink: sink, logger: logger, now: time.Now}
}

// withClock returns a copy that stamps entries with now.
func (a *Auditor) withClock(now func() time.Time) *Auditor {
	c := *a
	c.now = now
	return &c
}

func (a *Auditor) Record(ctx context.Context, p domain.Principal, action, entity string, id uuid.UUID, detail string) {
	if a == nil || a.sink == nil {
		return
	}

	entry := domain.AuditEntry{
		ActorID:  p.AccountID,
		Role:     p.Role,
		Action:   action,
		Entity:   entity,
		EntityID: id,
		Detail:   detail,
		At:       a.now().UTC(),
	}
	if err := a.sink.Append(ctx, entry); err != nil {
		a.logger.Warn("audit record dropped",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Stringer("entity_id", id),
			zap.Error(err),
		)
	}
}
