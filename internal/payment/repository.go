package payment

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles payment data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new payment into the database
func (r *Repository) Create(ctx context.Context, p *Payment) (*Payment, error) {
	query := `
		INSERT INTO payments (group_id, payer_id, payee_id, amount, reference, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, group_id, payer_id, payee_id, amount, reference, paid_at, created_at
	`

	created := &Payment{}
	err := r.db.QueryRowContext(ctx, query,
		p.GroupID,
		p.PayerID,
		p.PayeeID,
		p.Amount,
		p.Reference,
		p.PaidAt,
	).Scan(
		&created.ID,
		&created.GroupID,
		&created.PayerID,
		&created.PayeeID,
		&created.Amount,
		&created.Reference,
		&created.PaidAt,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return created, nil
}

// GetByID retrieves a payment by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	query := `
		SELECT p.id, p.group_id, p.payer_id, p.payee_id, p.amount, p.reference, p.paid_at, p.created_at,
		       payer.username, payee.username
		FROM payments p
		JOIN users payer ON p.payer_id = payer.id
		JOIN users payee ON p.payee_id = payee.id
		WHERE p.id = $1
	`

	payment := &Payment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&payment.ID,
		&payment.GroupID,
		&payment.PayerID,
		&payment.PayeeID,
		&payment.Amount,
		&payment.Reference,
		&payment.PaidAt,
		&payment.CreatedAt,
		&payment.PayerUsername,
		&payment.PayeeUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

// ListByGroupID retrieves all payments for a group, newest first.
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Payment, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM payments WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	query := `
		SELECT p.id, p.group_id, p.payer_id, p.payee_id, p.amount, p.reference, p.paid_at, p.created_at,
		       payer.username, payee.username
		FROM payments p
		JOIN users payer ON p.payer_id = payer.id
		JOIN users payee ON p.payee_id = payee.id
		WHERE p.group_id = $1
		ORDER BY p.paid_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		payment := &Payment{}
		if err := rows.Scan(
			&payment.ID,
			&payment.GroupID,
			&payment.PayerID,
			&payment.PayeeID,
			&payment.Amount,
			&payment.Reference,
			&payment.PaidAt,
			&payment.CreatedAt,
			&payment.PayerUsername,
			&payment.PayeeUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, total, nil
}

// ListAllByGroupID loads a group's full payment history for balance aggregation.
func (r *Repository) ListAllByGroupID(ctx context.Context, groupID int64) ([]*Payment, error) {
	query := `
		SELECT id, group_id, payer_id, payee_id, amount, reference, paid_at, created_at
		FROM payments
		WHERE group_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		payment := &Payment{}
		if err := rows.Scan(
			&payment.ID,
			&payment.GroupID,
			&payment.PayerID,
			&payment.PayeeID,
			&payment.Amount,
			&payment.Reference,
			&payment.PaidAt,
			&payment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}
