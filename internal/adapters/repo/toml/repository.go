package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/badnails/TestProjectGateway/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	sessionsPathKey    = "store.path"
	sessionsFileMode   = 0o600
	sessionsDirMode    = 0o700
	sessionsConfigDir  = ".paygate"
	sessionsConfigFile = "sessions.toml"
	tempFilePattern    = ".sessions-*.toml.tmp"
)

// Repository stores one session per scope in a single TOML file.
type Repository struct {
	sessionsPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	sessionsPath := cfg.GetString(sessionsPathKey)
	if sessionsPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		sessionsPath = filepath.Join(homeDir, sessionsConfigDir, sessionsConfigFile)
	}

	sessionsPath, err := normalizeSessionsPath(sessionsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{sessionsPath: sessionsPath, mu: lockForPath(sessionsPath)}, nil
}

func (r *Repository) Path() string {
	return r.sessionsPath
}

func (r *Repository) Load(ctx context.Context, scope domain.Scope) (domain.StoredSession, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredSession{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.StoredSession{}, err
	}

	for _, entry := range file.Sessions {
		if entry.Scope == string(scope) {
			return fromSchema(entry)
		}
	}

	return domain.StoredSession{}, nil
}

func (r *Repository) Save(ctx context.Context, scope domain.Scope, session domain.StoredSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(scope, session)
	updated := false
	for i := range file.Sessions {
		if file.Sessions[i].Scope == encoded.Scope {
			file.Sessions[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Sessions = append(file.Sessions, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Clear(ctx context.Context, scope domain.Scope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Sessions[:0]
	for _, entry := range file.Sessions {
		if entry.Scope != string(scope) {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(file.Sessions) {
		return nil
	}
	file.Sessions = kept

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.sessionsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read sessions file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode sessions file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.sessionsPath), sessionsDirMode); err != nil {
		return fmt.Errorf("create sessions directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode sessions file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.sessionsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp sessions file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp sessions file: %w", err)
	}

	if err := tempFile.Chmod(sessionsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp sessions file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp sessions file: %w", err)
	}

	if err := os.Rename(tempName, r.sessionsPath); err != nil {
		return fmt.Errorf("replace sessions file: %w", err)
	}

	cleanup = false

	return nil
}

func normalizeSessionsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve sessions path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(scope domain.Scope, session domain.StoredSession) sessionSchema {
	entry := sessionSchema{
		Scope:         string(scope),
		TransactionID: string(session.TransactionID),
		Username:      session.Username,
		CurrentStep:   string(session.Step),
	}
	if session.Details != nil {
		entry.TransactionDetails = &detailsSchema{
			Amount:      session.Details.Amount.String(),
			BillerName:  session.Details.BillerName,
			Description: session.Details.Description,
		}
	}

	return entry
}

func fromSchema(entry sessionSchema) (domain.StoredSession, error) {
	session := domain.StoredSession{
		TransactionID: domain.TransactionID(entry.TransactionID),
		Username:      entry.Username,
		Step:          domain.Step(entry.CurrentStep),
	}

	if entry.TransactionDetails != nil {
		amount := decimal.Zero
		if entry.TransactionDetails.Amount != "" {
			parsed, err := decimal.NewFromString(entry.TransactionDetails.Amount)
			if err != nil {
				return domain.StoredSession{}, fmt.Errorf("decode amount for scope %q: %w", entry.Scope, err)
			}
			amount = parsed
		}
		session.Details = &domain.TransactionDetails{
			Amount:      amount,
			BillerName:  entry.TransactionDetails.BillerName,
			Description: entry.TransactionDetails.Description,
		}
	}

	return session, nil
}
