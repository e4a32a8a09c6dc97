package e2e

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeSessionsFixture(home))

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer backend.Close()
	env := []string{"PAYGATE_GATEWAY_BASE_URL=" + backend.URL}

	stdout, stderr, err := runPaygate(t, binaryPath, home, env, "", "session", "show", "--tab", "tab-1")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "step: pin")
	assert.Contains(t, stdout, "biller: Acme")

	stdout, stderr, err = runPaygate(t, binaryPath, home, env, "1234\n\n", "confirm", "--transaction-id", "T1", "--tab", "tab-1")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Amount: $50.25")
	assert.Contains(t, stdout, "Payment Successful!")

	stdout, stderr, err = runPaygate(t, binaryPath, home, env, "", "session", "show", "--tab", "tab-1")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "step: success")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "paygate-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/paygate")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build paygate binary: %s", string(output))
	return binaryPath
}

func runPaygate(t *testing.T, binaryPath, home string, env []string, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(append(os.Environ(), "HOME="+home), env...)
	cmd.Dir = home
	cmd.Stdin = strings.NewReader(stdin)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeSessionsFixture(home string) error {
	configDir := filepath.Join(home, ".paygate")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	sessions := `version = 1

[[sessions]]
scope = "tab-1"
transaction_id = "T1"
username = "alice"
current_step = "pin"

[sessions.transaction_details]
amount = "50.25"
biller_name = "Acme"
description = "Invoice"
`

	return os.WriteFile(filepath.Join(configDir, "sessions.toml"), []byte(sessions), 0o600)
}
