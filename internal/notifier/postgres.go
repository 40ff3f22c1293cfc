package notifier

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// PostgresNotifier records notifications as rows; delivery to the user's
// client happens out of band.
type PostgresNotifier struct {
	db *sql.DB
}

// NewPostgres creates a database-backed notification sink.
func NewPostgres(db *sql.DB) *PostgresNotifier {
	return &PostgresNotifier{db: db}
}

var _ Notifier = (*PostgresNotifier)(nil)

func (n *PostgresNotifier) Send(ctx context.Context, userID, category, message string) error {
	const q = `
		INSERT INTO notifications (id, user_id, category, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := n.db.ExecContext(ctx, q, uuid.New().String(), userID, category, message, time.Now().UTC())
	return err
}
