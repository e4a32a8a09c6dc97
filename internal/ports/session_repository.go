package ports

import (
	"context"

	"github.com/badnails/TestProjectGateway/internal/domain"
)

// SessionRepository is the persisted key-value store behind one scope. Load
// returns the zero StoredSession when nothing is stored.
type SessionRepository interface {
	Load(ctx context.Context, scope domain.Scope) (domain.StoredSession, error)
	Save(ctx context.Context, scope domain.Scope, session domain.StoredSession) error
	Clear(ctx context.Context, scope domain.Scope) error
}
