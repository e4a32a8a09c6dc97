package ports

import "github.com/badnails/TestProjectGateway/internal/domain"

type GatewayOperation string

const (
	GatewayValidateUser        GatewayOperation = "validate_user"
	GatewayCompleteTransaction GatewayOperation = "complete_transaction"
)

type GatewayOutcome string

const (
	GatewayOutcomeSuccess        GatewayOutcome = "success"
	GatewayOutcomeRejected       GatewayOutcome = "rejected"
	GatewayOutcomeTransportError GatewayOutcome = "transport_error"
)

type FlowObserver interface {
	StepChanged(from, to domain.Step)
	GatewayCalled(op GatewayOperation, outcome GatewayOutcome)
	SessionReset()
}

type NopFlowObserver struct{}

func (NopFlowObserver) StepChanged(domain.Step, domain.Step)            {}
func (NopFlowObserver) GatewayCalled(GatewayOperation, GatewayOutcome) {}
func (NopFlowObserver) SessionReset()                                  {}
