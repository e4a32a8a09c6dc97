package domain

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// TransactionIDParam is the query parameter carrying the transaction identifier.
const TransactionIDParam = "transactionId"

// TransactionID is the opaque key correlating the flow with a backend-initiated
// transaction. The empty value means the identifier is absent.
type TransactionID string

func (id TransactionID) Present() bool {
	return id != ""
}

func (id TransactionID) String() string {
	return string(id)
}

func TransactionIDFromQuery(values url.Values) TransactionID {
	return TransactionID(values.Get(TransactionIDParam))
}

// TransactionIDFromURL reads the identifier from a full page URL or a bare
// query string such as "?transactionId=T1".
func TransactionIDFromURL(raw string) (TransactionID, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse navigation url: %w", err)
	}

	return TransactionIDFromQuery(parsed.Query()), nil
}

type TransactionDetails struct {
	Amount      decimal.Decimal `json:"amount"`
	BillerName  string          `json:"billerName"`
	Description string          `json:"description"`
}

func (d *TransactionDetails) AmountLabel() string {
	if d == nil || d.Amount.IsZero() {
		return "0.00"
	}

	return d.Amount.String()
}

func (d *TransactionDetails) BillerLabel() string {
	if d == nil || d.BillerName == "" {
		return "Unknown"
	}

	return d.BillerName
}

func (d *TransactionDetails) DescriptionLabel() string {
	if d == nil || d.Description == "" {
		return "No description"
	}

	return d.Description
}

func (d *TransactionDetails) Clone() *TransactionDetails {
	if d == nil {
		return nil
	}

	clone := *d
	return &clone
}
