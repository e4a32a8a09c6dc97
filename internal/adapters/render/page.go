package render

import (
	"github.com/badnails/TestProjectGateway/internal/application"
	"github.com/badnails/TestProjectGateway/internal/domain"
)

const (
	Title          = "Secure Payment Gateway"
	NotFoundLabel  = "Not found"
	DetailsHeading = "Transaction Details"
	SuccessHeading = "Payment Successful!"
	SuccessBody    = "Your transaction was processed."
	ErrorHeading   = "Transaction Error"
	BusyLabel      = "Processing..."
	UsernameLabel  = "Username"
	PINLabel       = "PIN"
)

// Page is the front-end neutral view of a session. Banner is the inline error
// shown above a form; the error step shows ErrorMessage in the body instead.
type Page struct {
	TransactionID domain.TransactionID
	Step          domain.Step
	Action        application.Action
	ActionLabel   string
	Banner        string
	Details       *DetailsView
	ErrorMessage  string
}

type DetailsView struct {
	Amount      string
	Biller      string
	Description string
}

func NewPage(session domain.Session) Page {
	page := Page{
		TransactionID: session.TransactionID,
		Step:          session.Step(),
		Action:        application.ActionFor(session.State),
	}
	page.ActionLabel = ActionLabel(page.Action)

	if page.Step != domain.StepError {
		page.Banner = session.Error
	}

	switch state := session.State.(type) {
	case domain.PINState:
		page.Details = newDetailsView(state.Details)
	case domain.ErrorState:
		page.ErrorMessage = domain.MessageOr(domain.MessageOr(state.Message, session.Error), domain.MessageUnexpectedError)
	}

	return page
}

func (p Page) TransactionLabel() string {
	if !p.TransactionID.Present() {
		return NotFoundLabel
	}

	return p.TransactionID.String()
}

func ActionLabel(action application.Action) string {
	switch action {
	case application.ActionSubmitPIN:
		return "Pay Now"
	case application.ActionClose:
		return "Close"
	case application.ActionRetry:
		return "Try Again"
	default:
		return "Continue"
	}
}

func newDetailsView(details *domain.TransactionDetails) *DetailsView {
	return &DetailsView{
		Amount:      "$" + details.AmountLabel(),
		Biller:      details.BillerLabel(),
		Description: details.DescriptionLabel(),
	}
}
