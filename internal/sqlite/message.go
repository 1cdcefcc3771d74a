package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/projeto/internal/domain/message"
	"github.com/rpggio/projeto/internal/repository"
)

// MessageRepository implements message.Repository for SQLite
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Save inserts a new message
func (r *MessageRepository) Save(ctx context.Context, msg *message.Message) error {
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO messages (id, level, text, sticky, created_at, dismissed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		msg.ID,
		string(msg.Level),
		msg.Text,
		msg.Sticky,
		createdAt,
		nullableTime(msg.DismissedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("message %s already exists: %w", msg.ID, repository.ErrInvalidInput)
		}
		return fmt.Errorf("failed to save message: %w", err)
	}

	msg.CreatedAt = createdAt
	return nil
}

// ListPending returns messages not yet dismissed, oldest first
func (r *MessageRepository) ListPending(ctx context.Context) ([]message.Message, error) {
	query := `
		SELECT id, level, text, sticky, created_at
		FROM messages
		WHERE dismissed_at IS NULL
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var msgs []message.Message
	for rows.Next() {
		var msg message.Message
		var level string
		if err := rows.Scan(
			&msg.ID,
			&level,
			&msg.Text,
			&msg.Sticky,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Level = message.Level(level)
		msgs = append(msgs, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return msgs, nil
}

// Get retrieves a message by ID, dismissed or not
func (r *MessageRepository) Get(ctx context.Context, id string) (*message.Message, error) {
	query := `
		SELECT id, level, text, sticky, created_at, dismissed_at
		FROM messages
		WHERE id = ?
	`

	var msg message.Message
	var level string
	var dismissedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&msg.ID,
		&level,
		&msg.Text,
		&msg.Sticky,
		&msg.CreatedAt,
		&dismissedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	msg.Level = message.Level(level)
	if dismissedAt.Valid {
		msg.DismissedAt = &dismissedAt.Time
	}
	return &msg, nil
}

// Dismiss marks a pending message as dismissed
func (r *MessageRepository) Dismiss(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE messages SET dismissed_at = ? WHERE id = ? AND dismissed_at IS NULL`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to dismiss message: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to dismiss message: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DismissAll marks every pending message as dismissed
func (r *MessageRepository) DismissAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE messages SET dismissed_at = ? WHERE dismissed_at IS NULL`,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to dismiss messages: %w", err)
	}
	return result.RowsAffected()
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
