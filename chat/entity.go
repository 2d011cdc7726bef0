package chat

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	MemberID  int        `db:"member_id" json:"member_id"`
	TrialID   *uuid.UUID `db:"trial_id" json:"trial_id,omitempty"`
	Title     string     `db:"title" json:"title"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

type ChatMessage struct {
	ID        int       `db:"id" json:"id"`
	SessionID uuid.UUID `db:"session_id" json:"session_id"`
	Role      string    `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateSessionRequest struct {
	TrialID *uuid.UUID `json:"trial_id"`
	Title   string     `json:"title"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}
