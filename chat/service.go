package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"themison-be/external"
)

const systemPrompt = "You are a clinical trial assistant for site staff. " +
	"Answer questions about trial operations, protocols and documentation " +
	"concisely. If you are unsure, say so instead of guessing."

// Truncate the context window to the most recent exchanges.
const maxHistoryMessages = 20

type ChatService struct {
	Repo *ChatRepository
	LLM  *external.LLMClient
}

func NewChatService(repo *ChatRepository, llm *external.LLMClient) *ChatService {
	return &ChatService{Repo: repo, LLM: llm}
}

func (s *ChatService) CreateSession(memberID int, req CreateSessionRequest) (*ChatSession, error) {
	session := &ChatSession{
		ID:       uuid.New(),
		MemberID: memberID,
		TrialID:  req.TrialID,
		Title:    req.Title,
	}
	if session.Title == "" {
		session.Title = "New conversation"
	}
	if err := s.Repo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ChatService) GetSessionsByMember(memberID int) ([]ChatSession, error) {
	return s.Repo.GetSessionsByMember(memberID)
}

func (s *ChatService) GetMessages(memberID int, sessionID uuid.UUID) ([]ChatMessage, error) {
	session, err := s.Repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.MemberID != memberID {
		return nil, fmt.Errorf("chat session not found")
	}
	return s.Repo.GetMessagesBySession(sessionID)
}

func (s *ChatService) DeleteSession(memberID int, sessionID uuid.UUID) error {
	session, err := s.Repo.GetSessionByID(sessionID)
	if err != nil {
		return err
	}
	if session == nil || session.MemberID != memberID {
		return fmt.Errorf("chat session not found")
	}
	return s.Repo.DeleteSession(sessionID)
}

// SendMessage persists the user message, streams the assistant reply
// through onDelta and persists the full reply once the stream ends.
func (s *ChatService) SendMessage(ctx context.Context, memberID int, sessionID uuid.UUID, content string, onDelta func(string)) (*ChatMessage, error) {
	session, err := s.Repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.MemberID != memberID {
		return nil, fmt.Errorf("chat session not found")
	}

	history, err := s.Repo.GetMessagesBySession(sessionID)
	if err != nil {
		return nil, err
	}

	userMsg := &ChatMessage{SessionID: sessionID, Role: "user", Content: content}
	if err := s.Repo.CreateMessage(userMsg); err != nil {
		return nil, err
	}

	messages := []external.ChatMessage{{Role: "system", Content: systemPrompt}}
	start := 0
	if len(history) > maxHistoryMessages {
		start = len(history) - maxHistoryMessages
	}
	for _, m := range history[start:] {
		messages = append(messages, external.ChatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, external.ChatMessage{Role: "user", Content: content})

	reply, err := s.LLM.StreamChat(ctx, messages, onDelta)
	if err != nil {
		return nil, fmt.Errorf("failed to get assistant reply: %w", err)
	}

	assistantMsg := &ChatMessage{SessionID: sessionID, Role: "assistant", Content: reply}
	if err := s.Repo.CreateMessage(assistantMsg); err != nil {
		return nil, err
	}

	title := ""
	if len(history) == 0 {
		title = truncateTitle(content)
	}
	if err := s.Repo.TouchSession(sessionID, title); err != nil {
		return nil, err
	}
	return assistantMsg, nil
}

func truncateTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= 60 {
		return content
	}
	return string(runes[:60])
}
