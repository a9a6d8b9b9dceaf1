package notification

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notificationRows(n *Notification) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "recipient_id", "message", "is_read", "related_entity_type", "related_entity_id", "created_at"}).
		AddRow(n.ID, n.RecipientID, n.Message, n.IsRead, n.RelatedEntityType, n.RelatedEntityID, n.CreatedAt)
}

func TestCreateNotification(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	entityType := EntityTypeExpense
	entityID := int64(12)
	want := &Notification{
		ID:                1,
		RecipientID:       5,
		Message:           "You owe 14.30 on a new expense",
		RelatedEntityType: &entityType,
		RelatedEntityID:   &entityID,
		CreatedAt:         time.Now(),
	}

	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(int64(5), want.Message, &entityType, &entityID).
		WillReturnRows(notificationRows(want))

	created, err := repo.Create(context.Background(), &Notification{
		RecipientID:       5,
		Message:           want.Message,
		RelatedEntityType: &entityType,
		RelatedEntityID:   &entityID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, EntityTypeExpense, *created.RelatedEntityType)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByRecipientIDEntityTypeFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	entityType := EntityTypePayment
	entityID := int64(9)
	row := &Notification{
		ID:                3,
		RecipientID:       5,
		Message:           "You received a payment of 12.00",
		RelatedEntityType: &entityType,
		RelatedEntityID:   &entityID,
		CreatedAt:         time.Now(),
	}

	// The entity-type filter must reach both the count and the page query.
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(5), EntityTypePayment).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM notifications").
		WithArgs(int64(5), EntityTypePayment, 20, 0).
		WillReturnRows(notificationRows(row))

	notifications, total, err := repo.ListByRecipientID(context.Background(), 5, 20, 0, ListFilter{EntityType: EntityTypePayment})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, notifications, 1)
	assert.Equal(t, EntityTypePayment, *notifications[0].RelatedEntityType)

	require.NoError(t, mock.ExpectationsWereMet())
}
