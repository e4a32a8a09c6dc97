package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/badnails/TestProjectGateway/internal/ports"
)

// Controller drives the confirmation flow for any number of scopes. The
// repository is the source of truth; every action starts by reconciling the
// live transaction id against it.
type Controller struct {
	repo     ports.SessionRepository
	gateway  ports.Gateway
	observer ports.FlowObserver
	logger   *slog.Logger

	mu       sync.Mutex
	inFlight map[domain.Scope]struct{}
}

func NewController(repo ports.SessionRepository, gateway ports.Gateway, observer ports.FlowObserver, logger *slog.Logger) *Controller {
	if observer == nil {
		observer = ports.NopFlowObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		repo:     repo,
		gateway:  gateway,
		observer: observer,
		logger:   logger,
		inFlight: map[domain.Scope]struct{}{},
	}
}

// Load reconciles currentID with the stored session of scope and returns the
// resulting session.
func (c *Controller) Load(ctx context.Context, scope domain.Scope, currentID domain.TransactionID) (domain.Session, error) {
	stored, err := c.repo.Load(ctx, scope)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load stored session: %w", err)
	}

	result := Reconcile(currentID, stored)
	if result.Reset {
		if err := c.repo.Clear(ctx, scope); err != nil {
			return domain.Session{}, fmt.Errorf("clear stored session: %w", err)
		}
		if !stored.IsZero() {
			c.observer.SessionReset()
			c.logger.Info("session reset",
				"scope", scope,
				"previous_transaction_id", stored.TransactionID,
				"transaction_id", currentID,
			)
		}
	}

	if result.Persist() {
		if err := c.save(ctx, scope, result.Session); err != nil {
			return domain.Session{}, err
		}
	}

	return result.Session, nil
}

func (c *Controller) SubmitUsername(ctx context.Context, scope domain.Scope, currentID domain.TransactionID, username string) (domain.Session, error) {
	session, err := c.Load(ctx, scope, currentID)
	if err != nil {
		return session, err
	}

	state, ok := session.State.(domain.UsernameState)
	if !ok {
		return reject(session, domain.ErrActionNotAllowed)
	}

	session.Username = domain.NormalizeUsername(username)
	if err := domain.ValidateUsername(session.Username); err != nil {
		return reject(session, err)
	}

	release, err := c.begin(scope)
	if err != nil {
		return reject(session, err)
	}
	defer release()

	session.Error = ""
	if err := c.save(ctx, scope, session); err != nil {
		return session, err
	}

	result, err := c.gateway.ValidateUser(ctx, ports.ValidateUserRequest{
		TransactionID: session.TransactionID,
		Username:      session.Username,
	})
	if err != nil {
		c.transportFailure(scope, session, ports.GatewayValidateUser, err)
		session.Error = domain.MessageNetworkError
		return session, nil
	}
	if !result.Success {
		c.observer.GatewayCalled(ports.GatewayValidateUser, ports.GatewayOutcomeRejected)
		session.Error = domain.MessageOr(result.Message, domain.MessageUserValidationFailed)
		return session, nil
	}
	c.observer.GatewayCalled(ports.GatewayValidateUser, ports.GatewayOutcomeSuccess)

	c.advance(&session, state.Validated(session.Username, result.Transaction))
	if err := c.save(ctx, scope, session); err != nil {
		return session, err
	}

	return session, nil
}

func (c *Controller) SubmitPIN(ctx context.Context, scope domain.Scope, currentID domain.TransactionID, pin string) (domain.Session, error) {
	session, err := c.Load(ctx, scope, currentID)
	if err != nil {
		return session, err
	}

	state, ok := session.State.(domain.PINState)
	if !ok {
		return reject(session, domain.ErrActionNotAllowed)
	}

	session.PIN = pin
	if err := domain.ValidatePIN(pin); err != nil {
		return reject(session, err)
	}

	release, err := c.begin(scope)
	if err != nil {
		return reject(session, err)
	}
	defer release()

	session.Error = ""
	result, err := c.gateway.CompleteTransaction(ctx, ports.CompleteTransactionRequest{
		TransactionID: session.TransactionID,
		Username:      state.Username,
		PIN:           pin,
	})
	if err != nil {
		c.transportFailure(scope, session, ports.GatewayCompleteTransaction, err)
		session.Error = domain.MessageNetworkError
		return session, nil
	}
	if !result.Success {
		c.observer.GatewayCalled(ports.GatewayCompleteTransaction, ports.GatewayOutcomeRejected)
		session.Error = domain.MessageOr(result.Message, domain.MessageTransactionFailed)
		return session, nil
	}
	c.observer.GatewayCalled(ports.GatewayCompleteTransaction, ports.GatewayOutcomeSuccess)

	c.advance(&session, state.Completed())
	if err := c.save(ctx, scope, session); err != nil {
		return session, err
	}

	return session, nil
}

// Close dismisses a finished flow. The stored session is left for the scope to
// expire with its tab.
func (c *Controller) Close(ctx context.Context, scope domain.Scope, currentID domain.TransactionID) (domain.Session, error) {
	session, err := c.Load(ctx, scope, currentID)
	if err != nil {
		return session, err
	}
	if _, ok := session.State.(domain.SuccessState); !ok {
		return reject(session, domain.ErrActionNotAllowed)
	}

	return session, nil
}

// Retry re-enters reconciliation from the error step, the equivalent of a full
// page reload.
func (c *Controller) Retry(ctx context.Context, scope domain.Scope, currentID domain.TransactionID) (domain.Session, error) {
	stored, err := c.repo.Load(ctx, scope)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load stored session: %w", err)
	}
	if current := Reconcile(currentID, stored).Session; current.Step() != domain.StepError {
		return reject(current, domain.ErrActionNotAllowed)
	}

	return c.Load(ctx, scope, currentID)
}

func (c *Controller) begin(scope domain.Scope) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[scope]; busy {
		return nil, domain.ErrActionInFlight
	}
	c.inFlight[scope] = struct{}{}

	return func() {
		c.mu.Lock()
		delete(c.inFlight, scope)
		c.mu.Unlock()
	}, nil
}

func (c *Controller) advance(session *domain.Session, next domain.State) {
	c.observer.StepChanged(session.Step(), next.Step())
	session.State = next
}

func (c *Controller) save(ctx context.Context, scope domain.Scope, session domain.Session) error {
	if err := c.repo.Save(ctx, scope, session.Stored()); err != nil {
		return fmt.Errorf("save stored session: %w", err)
	}

	return nil
}

func (c *Controller) transportFailure(scope domain.Scope, session domain.Session, op ports.GatewayOperation, err error) {
	c.observer.GatewayCalled(op, ports.GatewayOutcomeTransportError)
	c.logger.Error("gateway request failed",
		"operation", op,
		"scope", scope,
		"transaction_id", session.TransactionID,
		"error", err,
	)
}

func reject(session domain.Session, err error) (domain.Session, error) {
	session.Error = domain.UserMessage(err)
	return session, err
}
