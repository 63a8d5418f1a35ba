package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContactMessage is one submitted contact-form entry.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// InsertContactMessage stores a submission, assigning an ID and timestamp
// when unset, and returns the stored message.
func (db *DB) InsertContactMessage(msg ContactMessage) (ContactMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	_, err := db.conn.Exec(`
		INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return ContactMessage{}, fmt.Errorf("insert contact message: %w", err)
	}
	return msg, nil
}

// ListContactMessages returns submissions, newest first.
func (db *DB) ListContactMessages(limit int) ([]ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(`
		SELECT id, name, email, subject, message, created_at
		FROM contact_messages ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []ContactMessage
	for rows.Next() {
		var m ContactMessage
		var created string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &created); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			m.CreatedAt = t
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
