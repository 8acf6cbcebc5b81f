package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/17okk-xie/portfolio/internal/db"
	"github.com/17okk-xie/portfolio/internal/model"
)

// CreateMessage stores a contact form submission.
func CreateMessage(ctx context.Context, d *db.DB, m model.Message) (*model.Message, error) {
	var id int64
	err := d.QueryRowContext(ctx,
		d.Rebind(`INSERT INTO messages (name, email, subject, body) VALUES (?, ?, ?, ?) RETURNING id`),
		m.Name, m.Email, m.Subject, m.Body,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	return GetMessage(ctx, d, id)
}

// GetMessage returns a message by ID, or nil if it does not exist.
func GetMessage(ctx context.Context, d *db.DB, id int64) (*model.Message, error) {
	m := &model.Message{}
	err := d.QueryRowContext(ctx,
		d.Rebind(`SELECT id, name, email, subject, body, created_at FROM messages WHERE id = ?`), id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting message: %w", err)
	}
	return m, nil
}

// ListMessages returns messages newest first, at most limit rows.
func ListMessages(ctx context.Context, d *db.DB, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := d.QueryContext(ctx,
		d.Rebind(`SELECT id, name, email, subject, body, created_at
		 FROM messages ORDER BY created_at DESC, id DESC LIMIT ?`), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Messages adapts the message functions to a repository value.
type Messages struct {
	DB *db.DB
}

func (m Messages) Create(ctx context.Context, msg model.Message) (*model.Message, error) {
	return CreateMessage(ctx, m.DB, msg)
}

func (m Messages) List(ctx context.Context, limit int) ([]model.Message, error) {
	return ListMessages(ctx, m.DB, limit)
}
