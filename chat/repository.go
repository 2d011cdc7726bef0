package chat

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ChatRepository struct {
	DB *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) CreateSession(s *ChatSession) error {
	query := `INSERT INTO chat_sessions (id, member_id, trial_id, title)
		VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query, s.ID, s.MemberID, s.TrialID, s.Title).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}
	return nil
}

func (r *ChatRepository) GetSessionsByMember(memberID int) ([]ChatSession, error) {
	var sessions []ChatSession
	query := `SELECT * FROM chat_sessions WHERE member_id = $1 ORDER BY updated_at DESC`
	if err := r.DB.Select(&sessions, query, memberID); err != nil {
		return nil, fmt.Errorf("failed to get chat sessions: %w", err)
	}
	return sessions, nil
}

func (r *ChatRepository) GetSessionByID(id uuid.UUID) (*ChatSession, error) {
	var s ChatSession
	err := r.DB.Get(&s, `SELECT * FROM chat_sessions WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	return &s, nil
}

func (r *ChatRepository) TouchSession(id uuid.UUID, title string) error {
	var err error
	if title != "" {
		_, err = r.DB.Exec(`UPDATE chat_sessions SET title = $1, updated_at = NOW() WHERE id = $2`, title, id)
	} else {
		_, err = r.DB.Exec(`UPDATE chat_sessions SET updated_at = NOW() WHERE id = $1`, id)
	}
	if err != nil {
		return fmt.Errorf("failed to touch chat session: %w", err)
	}
	return nil
}

func (r *ChatRepository) DeleteSession(id uuid.UUID) error {
	if _, err := r.DB.Exec(`DELETE FROM chat_messages WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete chat messages: %w", err)
	}
	res, err := r.DB.Exec(`DELETE FROM chat_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chat session: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("chat session not found")
	}
	return nil
}

func (r *ChatRepository) CreateMessage(m *ChatMessage) error {
	query := `INSERT INTO chat_messages (session_id, role, content)
		VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.DB.QueryRow(query, m.SessionID, m.Role, m.Content).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

func (r *ChatRepository) GetMessagesBySession(sessionID uuid.UUID) ([]ChatMessage, error) {
	var messages []ChatMessage
	query := `SELECT * FROM chat_messages WHERE session_id = $1 ORDER BY created_at ASC, id ASC`
	if err := r.DB.Select(&messages, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to get chat messages: %w", err)
	}
	return messages, nil
}
