package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/badnails/TestProjectGateway/internal/ports"
	goredis "github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "paygate:session"

const (
	fieldTransactionID      = "transactionId"
	fieldUsername           = "username"
	fieldCurrentStep        = "currentStep"
	fieldTransactionDetails = "transactionDetails"
)

// Repository stores each scope's session as a redis hash under <prefix>:<scope>.
// A positive ttl is refreshed on every save.
type Repository struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(client goredis.UniversalClient, prefix string, ttl time.Duration) *Repository {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	return &Repository{client: client, prefix: prefix, ttl: ttl}
}

func (r *Repository) key(scope domain.Scope) string {
	return r.prefix + ":" + string(scope)
}

func (r *Repository) Load(ctx context.Context, scope domain.Scope) (domain.StoredSession, error) {
	fields, err := r.client.HGetAll(ctx, r.key(scope)).Result()
	if err != nil {
		return domain.StoredSession{}, fmt.Errorf("load session %q: %w", scope, err)
	}
	if len(fields) == 0 {
		return domain.StoredSession{}, nil
	}

	session := domain.StoredSession{
		TransactionID: domain.TransactionID(fields[fieldTransactionID]),
		Username:      fields[fieldUsername],
		Step:          domain.Step(fields[fieldCurrentStep]),
	}

	if raw := fields[fieldTransactionDetails]; raw != "" {
		var details domain.TransactionDetails
		if err := json.Unmarshal([]byte(raw), &details); err != nil {
			return domain.StoredSession{}, fmt.Errorf("decode transaction details for session %q: %w", scope, err)
		}
		session.Details = &details
	}

	return session, nil
}

func (r *Repository) Save(ctx context.Context, scope domain.Scope, session domain.StoredSession) error {
	values, err := encodeFields(session)
	if err != nil {
		return fmt.Errorf("encode session %q: %w", scope, err)
	}

	key := r.key(scope)
	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) == 0 {
			return nil
		}
		pipe.HSet(ctx, key, values...)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session %q: %w", scope, err)
	}

	return nil
}

func (r *Repository) Clear(ctx context.Context, scope domain.Scope) error {
	if err := r.client.Del(ctx, r.key(scope)).Err(); err != nil {
		return fmt.Errorf("clear session %q: %w", scope, err)
	}

	return nil
}

// encodeFields returns ordered field/value pairs, skipping empty fields.
func encodeFields(session domain.StoredSession) ([]interface{}, error) {
	values := make([]interface{}, 0, 8)
	if session.TransactionID.Present() {
		values = append(values, fieldTransactionID, session.TransactionID.String())
	}
	if session.Username != "" {
		values = append(values, fieldUsername, session.Username)
	}
	if session.Step != "" {
		values = append(values, fieldCurrentStep, string(session.Step))
	}
	if session.Details != nil {
		raw, err := json.Marshal(session.Details)
		if err != nil {
			return nil, err
		}
		values = append(values, fieldTransactionDetails, string(raw))
	}

	return values, nil
}
