package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuditEntry struct {
	ActorID  uuid.UUID
	Role     Role
	Action   string
	Entity   string
	EntityID uuid.UUID
	Detail   string
	At       time.Time
}
