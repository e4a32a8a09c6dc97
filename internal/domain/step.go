package domain

type Step string

const (
	StepUsername Step = "username"
	StepPIN      Step = "pin"
	StepSuccess  Step = "success"
	StepError    Step = "error"
)

func (s Step) Valid() bool {
	switch s {
	case StepUsername, StepPIN, StepSuccess, StepError:
		return true
	default:
		return false
	}
}

func (s Step) Terminal() bool {
	return s == StepSuccess || s == StepError
}

// State is the tagged variant of the confirmation flow. Each step carries only
// the data it needs; transitions return the next variant.
type State interface {
	Step() Step
	isState()
}

type UsernameState struct{}

type PINState struct {
	Username string
	Details  *TransactionDetails
}

type SuccessState struct {
	Username string
	Details  *TransactionDetails
}

type ErrorState struct {
	Message string
}

func (UsernameState) Step() Step { return StepUsername }
func (PINState) Step() Step      { return StepPIN }
func (SuccessState) Step() Step  { return StepSuccess }
func (ErrorState) Step() Step    { return StepError }

func (UsernameState) isState() {}
func (PINState) isState()      {}
func (SuccessState) isState()  {}
func (ErrorState) isState()    {}

// Validated is the transition taken once the backend accepts the username.
func (UsernameState) Validated(username string, details *TransactionDetails) PINState {
	return PINState{Username: username, Details: details.Clone()}
}

// Completed is the transition taken once the backend accepts the PIN.
func (s PINState) Completed() SuccessState {
	return SuccessState{Username: s.Username, Details: s.Details.Clone()}
}

func NewErrorState(message string) ErrorState {
	if message == "" {
		message = MessageUnexpectedError
	}

	return ErrorState{Message: message}
}
