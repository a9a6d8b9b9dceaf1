package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest represents the request to record a payment. The payer
// is the authenticated caller; PaidAt defaults to now when omitted.
type CreatePaymentRequest struct {
	GroupID int64           `json:"group_id" validate:"required"`
	PayeeID int64           `json:"payee_id" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
	PaidAt  *time.Time      `json:"paid_at,omitempty"`
}

// PaymentResponse represents the response for a payment
type PaymentResponse struct {
	ID            int64           `json:"id"`
	GroupID       int64           `json:"group_id"`
	PayerID       int64           `json:"payer_id"`
	PayerUsername string          `json:"payer_username,omitempty"`
	PayeeID       int64           `json:"payee_id"`
	PayeeUsername string          `json:"payee_username,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference"`
	PaidAt        string          `json:"paid_at"`
	CreatedAt     string          `json:"created_at"`
}

// ToResponse converts a Payment model to a PaymentResponse DTO
func (p *Payment) ToResponse() *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		GroupID:       p.GroupID,
		PayerID:       p.PayerID,
		PayerUsername: p.PayerUsername,
		PayeeID:       p.PayeeID,
		PayeeUsername: p.PayeeUsername,
		Amount:        p.Amount,
		Reference:     p.Reference.String(),
		PaidAt:        p.PaidAt.Format("2006-01-02T15:04:05Z"),
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
