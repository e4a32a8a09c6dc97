package application

import "github.com/badnails/TestProjectGateway/internal/domain"

type Action string

const (
	ActionSubmitUsername Action = "submit_username"
	ActionSubmitPIN      Action = "submit_pin"
	ActionClose          Action = "close"
	ActionRetry          Action = "retry"
)

// ActionFor returns the single user action legal in state.
func ActionFor(state domain.State) Action {
	switch state.(type) {
	case domain.PINState:
		return ActionSubmitPIN
	case domain.SuccessState:
		return ActionClose
	case domain.ErrorState:
		return ActionRetry
	default:
		return ActionSubmitUsername
	}
}
