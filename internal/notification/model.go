package notification

import "time"

// Notification is an in-app notification record. Delivery channels
// (email, push) are out of scope; clients poll the list endpoint.
type Notification struct {
	ID                int64     `json:"id"`
	RecipientID       int64     `json:"recipient_id"`
	Message           string    `json:"message"`
	IsRead            bool      `json:"is_read"`
	RelatedEntityType *string   `json:"related_entity_type,omitempty"`
	RelatedEntityID   *int64    `json:"related_entity_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Related entity types
const (
	EntityTypeExpense = "EXPENSE"
	EntityTypePayment = "PAYMENT"
	EntityTypeGroup   = "GROUP"
)
