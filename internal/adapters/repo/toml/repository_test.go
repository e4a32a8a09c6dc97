package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, sessionsPath string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set("store.path", sessionsPath)

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "sessions.toml"))

	first := domain.StoredSession{
		TransactionID: "T1",
		Username:      "alice",
		Step:          domain.StepPIN,
		Details: &domain.TransactionDetails{
			Amount:      decimal.RequireFromString("50.25"),
			BillerName:  "Acme",
			Description: "Invoice",
		},
	}
	second := domain.StoredSession{TransactionID: "T2", Username: "bob"}

	require.NoError(t, repo.Save(context.Background(), "tab-1", first))
	require.NoError(t, repo.Save(context.Background(), "tab-2", second))

	got, err := repo.Load(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.Equal(t, first.TransactionID, got.TransactionID)
	assert.Equal(t, first.Username, got.Username)
	assert.Equal(t, first.Step, got.Step)
	require.NotNil(t, got.Details)
	assert.True(t, first.Details.Amount.Equal(got.Details.Amount))
	assert.Equal(t, "Acme", got.Details.BillerName)
	assert.Equal(t, "Invoice", got.Details.Description)

	got, err = repo.Load(context.Background(), "tab-2")
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestRepositorySaveReplacesScopeEntry(t *testing.T) {
	t.Parallel()

	sessionsPath := filepath.Join(t.TempDir(), "sessions.toml")
	repo := newTestRepository(t, sessionsPath)

	require.NoError(t, repo.Save(context.Background(), "tab", domain.StoredSession{
		TransactionID: "T1",
		Username:      "alice",
		Step:          domain.StepPIN,
		Details:       &domain.TransactionDetails{BillerName: "Acme"},
	}))
	require.NoError(t, repo.Save(context.Background(), "tab", domain.StoredSession{TransactionID: "T2"}))

	got, err := repo.Load(context.Background(), "tab")
	require.NoError(t, err)
	assert.Equal(t, domain.StoredSession{TransactionID: "T2"}, got)

	data, err := os.ReadFile(sessionsPath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "[[sessions]]"))
	assert.NotContains(t, string(data), "Acme")
}

func TestRepositoryClearRemovesOnlyScope(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "sessions.toml"))

	require.NoError(t, repo.Save(context.Background(), "tab-1", domain.StoredSession{TransactionID: "T1", Username: "alice"}))
	require.NoError(t, repo.Save(context.Background(), "tab-2", domain.StoredSession{TransactionID: "T2"}))

	require.NoError(t, repo.Clear(context.Background(), "tab-1"))
	require.NoError(t, repo.Clear(context.Background(), "tab-1"))

	got, err := repo.Load(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = repo.Load(context.Background(), "tab-2")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionID("T2"), got.TransactionID)
}

func TestRepositoryNeverWritesTransientFields(t *testing.T) {
	t.Parallel()

	sessionsPath := filepath.Join(t.TempDir(), "sessions.toml")
	repo := newTestRepository(t, sessionsPath)

	session := domain.NewSession("T1")
	session.Username = "alice"
	session.PIN = "4321"
	session.Error = "Network error. Please try again."
	require.NoError(t, repo.Save(context.Background(), "tab", session.Stored()))

	data, err := os.ReadFile(sessionsPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "4321")
	assert.NotContains(t, string(data), "Network error")
	assert.NotContains(t, string(data), "current_step")
}

func TestRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRepository(viper.New())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.DefaultScope, domain.StoredSession{TransactionID: "T1"}))

	sessionsPath := filepath.Join(homeDir, ".paygate", "sessions.toml")
	assert.Equal(t, sessionsPath, repo.Path())
	info, err := os.Stat(sessionsPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRepositoryMissingFileBehaviors(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "sessions.toml"))

	got, err := repo.Load(context.Background(), "tab")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	require.NoError(t, repo.Clear(context.Background(), "tab"))
}

func TestRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	sessionsPath := filepath.Join(t.TempDir(), "sessions.toml")
	require.NoError(t, os.WriteFile(sessionsPath, []byte("sessions = ["), 0o600))

	repo := newTestRepository(t, sessionsPath)

	_, err := repo.Load(context.Background(), "tab")
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode sessions file")
}

func TestRepositoryMalformedAmountReturnsError(t *testing.T) {
	t.Parallel()

	sessionsPath := filepath.Join(t.TempDir(), "sessions.toml")
	require.NoError(t, os.WriteFile(sessionsPath, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[[sessions]]",
		"scope = \"tab\"",
		"transaction_id = \"T1\"",
		"current_step = \"pin\"",
		"",
		"[sessions.transaction_details]",
		"amount = \"fifty\"",
		"",
	}, "\n")), 0o600))

	repo := newTestRepository(t, sessionsPath)

	_, err := repo.Load(context.Background(), "tab")
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode amount")
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "sessions.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, "tab", domain.StoredSession{TransactionID: "T1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentSavesAcrossInstancesPreserveAllScopes(t *testing.T) {
	t.Parallel()

	sessionsPath := filepath.Join(t.TempDir(), "sessions.toml")
	repoA := newTestRepository(t, sessionsPath)
	repoB := newTestRepository(t, sessionsPath)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repoA.Save(context.Background(), domain.Scope("a-"+strconv.Itoa(i)), domain.StoredSession{TransactionID: "TA"})
		}
	}()

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repoB.Save(context.Background(), domain.Scope("b-"+strconv.Itoa(i)), domain.StoredSession{TransactionID: "TB"})
		}
	}()

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	for i := 0; i < perRepoWrites; i++ {
		got, err := repoA.Load(context.Background(), domain.Scope("b-"+strconv.Itoa(i)))
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionID("TB"), got.TransactionID)
	}
}

func TestRepositorySaveSerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	sessionsPath := filepath.Join(t.TempDir(), "sessions.toml")
	repo := newTestRepository(t, sessionsPath)

	require.NoError(t, repo.Save(context.Background(), "tab", domain.StoredSession{TransactionID: "T1"}))

	data, err := os.ReadFile(sessionsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "transaction_id")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	sessionsPath := filepath.Join(t.TempDir(), "sessions.toml")
	require.NoError(t, os.WriteFile(sessionsPath, []byte(strings.Join([]string{
		"version = 999",
		"",
		"sessions = []",
		"",
	}, "\n")), 0o600))

	repo := newTestRepository(t, sessionsPath)

	_, err := repo.Load(context.Background(), "tab")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported sessions schema version")
}
