package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/digipos/sellthru-api/internal/domain/entity"
)

// TransactionResponse JSON view of a topup/bucket transaction.
type TransactionResponse struct {
	ID         string          `json:"id"`
	Date       time.Time       `json:"date"`
	Sender     string          `json:"sender"`
	Receiver   string          `json:"receiver"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Remarks    string          `json:"remarks,omitempty"`
	Salesforce string          `json:"salesforce"`
	Tap        string          `json:"tap"`
	OutletID   string          `json:"outlet_id"`
	OutletName string          `json:"outlet_name"`
}

// ListTransactionsRequest query filters for transaction listings.
type ListTransactionsRequest struct {
	PageRequest
	Type     string `query:"type"`
	DateFrom string `query:"date_from"`
	DateTo   string `query:"date_to"`
}

// ToTransactionResponse maps the entity.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID,
		Date:       t.Date,
		Sender:     t.Sender,
		Receiver:   t.Receiver,
		Type:       t.Type,
		Amount:     t.Amount,
		Currency:   t.Currency,
		Remarks:    t.Remarks,
		Salesforce: t.Salesforce,
		Tap:        t.Tap,
		OutletID:   t.OutletID,
		OutletName: t.OutletName,
	}
}
