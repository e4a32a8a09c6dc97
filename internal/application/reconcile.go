package application

import "github.com/badnails/TestProjectGateway/internal/domain"

// Reconciliation is the outcome of comparing the live transaction id with the
// stored session.
type Reconciliation struct {
	Session domain.Session
	// Reset is set when the stored session belongs to another (or no)
	// transaction and must be discarded before anything is written.
	Reset bool
}

// Persist reports whether the reconciled session must be written back.
func (r Reconciliation) Persist() bool {
	return r.Reset && r.Session.TransactionID.Present()
}

// Reconcile decides between restore and reset. Stored fields are restored only
// when the stored id equals currentID; a reset never merges anything.
func Reconcile(currentID domain.TransactionID, stored domain.StoredSession) Reconciliation {
	result := Reconciliation{
		Session: domain.NewSession(currentID),
		Reset:   !currentID.Present() || currentID != stored.TransactionID,
	}

	if !currentID.Present() {
		result.Session.Error = domain.MessageMissingTransactionID
		result.Session.State = domain.NewErrorState(domain.MessageMissingTransactionID)
		return result
	}

	if result.Reset {
		return result
	}

	result.Session.Username = stored.Username
	result.Session.State = restoreState(stored)

	return result
}

func restoreState(stored domain.StoredSession) domain.State {
	switch stored.Step {
	case domain.StepPIN:
		return domain.PINState{Username: stored.Username, Details: stored.Details.Clone()}
	case domain.StepSuccess:
		return domain.SuccessState{Username: stored.Username, Details: stored.Details.Clone()}
	default:
		return domain.UsernameState{}
	}
}
