package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/badnails/TestProjectGateway/internal/ports"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsFlowEvents(t *testing.T) {
	t.Parallel()

	recorder := NewRecorder()

	recorder.StepChanged(domain.StepUsername, domain.StepPIN)
	recorder.StepChanged(domain.StepUsername, domain.StepPIN)
	recorder.StepChanged(domain.StepPIN, domain.StepSuccess)
	recorder.GatewayCalled(ports.GatewayValidateUser, ports.GatewayOutcomeSuccess)
	recorder.GatewayCalled(ports.GatewayCompleteTransaction, ports.GatewayOutcomeTransportError)
	recorder.SessionReset()

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.stepTransitions.WithLabelValues("username", "pin")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.stepTransitions.WithLabelValues("pin", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.gatewayRequests.WithLabelValues("validate_user", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.gatewayRequests.WithLabelValues("complete_transaction", "transport_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.sessionResets))
}

func TestRecordersUseIndependentRegistries(t *testing.T) {
	t.Parallel()

	first := NewRecorder()
	second := NewRecorder()

	first.SessionReset()

	assert.Equal(t, 1.0, testutil.ToFloat64(first.sessionResets))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.sessionResets))
}

func TestRecorderHandlerExposesCounters(t *testing.T) {
	t.Parallel()

	recorder := NewRecorder()
	recorder.GatewayCalled(ports.GatewayValidateUser, ports.GatewayOutcomeRejected)

	server := httptest.NewServer(recorder.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `paygate_gateway_requests_total{operation="validate_user",outcome="rejected"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
