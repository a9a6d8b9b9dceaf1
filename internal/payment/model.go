package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is a direct transfer between two group members, recorded to settle
// debt. Payments are immutable: once created there is no update or delete.
type Payment struct {
	ID        int64           `json:"id"`
	GroupID   int64           `json:"group_id"`
	PayerID   int64           `json:"payer_id"`
	PayeeID   int64           `json:"payee_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reference uuid.UUID       `json:"reference"`
	PaidAt    time.Time       `json:"paid_at"`
	CreatedAt time.Time       `json:"created_at"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
	PayeeUsername string `json:"payee_username,omitempty"`
}
