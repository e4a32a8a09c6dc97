package memory

import (
	"context"
	"sync"

	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/badnails/TestProjectGateway/internal/ports"
)

// Repository keeps sessions in process memory; they end with the process.
type Repository struct {
	mu       sync.RWMutex
	sessions map[domain.Scope]domain.StoredSession
}

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{sessions: map[domain.Scope]domain.StoredSession{}}
}

func (r *Repository) Load(ctx context.Context, scope domain.Scope) (domain.StoredSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredSession{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sessions[scope].Clone(), nil
}

func (r *Repository) Save(ctx context.Context, scope domain.Scope, session domain.StoredSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[scope] = session.Clone()
	return nil
}

func (r *Repository) Clear(ctx context.Context, scope domain.Scope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, scope)
	return nil
}
