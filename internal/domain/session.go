package domain

// Scope partitions persisted sessions the way a browser tab partitions its
// session storage.
type Scope string

const DefaultScope Scope = "default"

// Session is the in-memory record of one transaction attempt. PIN and Error are
// transient and never reach a repository.
type Session struct {
	TransactionID TransactionID
	Username      string
	PIN           string
	State         State
	Error         string
}

func NewSession(id TransactionID) Session {
	return Session{TransactionID: id, State: UsernameState{}}
}

func (s Session) Step() Step {
	if s.State == nil {
		return StepUsername
	}

	return s.State.Step()
}

func (s Session) Details() *TransactionDetails {
	switch state := s.State.(type) {
	case PINState:
		return state.Details
	case SuccessState:
		return state.Details
	default:
		return nil
	}
}

// Stored returns the persisted projection of the session. The initial step is
// not written.
func (s Session) Stored() StoredSession {
	stored := StoredSession{
		TransactionID: s.TransactionID,
		Username:      s.Username,
		Details:       s.Details().Clone(),
	}
	if step := s.Step(); step != StepUsername {
		stored.Step = step
	}

	return stored
}

// StoredSession holds exactly the fields kept in session storage.
type StoredSession struct {
	TransactionID TransactionID
	Username      string
	Step          Step
	Details       *TransactionDetails
}

func (s StoredSession) IsZero() bool {
	return s.TransactionID == "" && s.Username == "" && s.Step == "" && s.Details == nil
}

func (s StoredSession) Clone() StoredSession {
	s.Details = s.Details.Clone()
	return s
}
