package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"perfai/internal/ai"
)

type TextGenerator interface {
	CompleteChat(ctx context.Context, messages []ai.Message, numPredict int) (string, error)
}

type Service struct {
	store StoreAPI
	ai    TextGenerator
}

func NewService(store StoreAPI, generator TextGenerator) *Service {
	return &Service{store: store, ai: generator}
}

// Send stores the user's message, asks the model for a reply with a bounded
// history window, and stores the assistant's answer. The user message is
// written before the AI call so it survives an AI failure; the AI failure
// itself degrades to a fixed apology instead of erroring.
func (s *Service) Send(ctx context.Context, userID int64, message string) (SendResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return SendResult{}, ErrEmptyMessage
	}

	userMessageID, err := s.store.SaveMessage(ctx, userID, RoleUser, message)
	if err != nil {
		return SendResult{}, fmt.Errorf("save user message: %w", err)
	}

	history, err := s.store.History(ctx, userID, maxHistoryMessages)
	if err != nil {
		slog.Warn("chat history load failed, continuing without context", "userID", userID, "err", err)
		history = []Message{{Role: RoleUser, Content: message}}
	}

	messages := make([]ai.Message, 0, len(history)+1)
	messages = append(messages, ai.Message{Role: RoleSystem, Content: systemPrompt})
	for _, h := range history {
		messages = append(messages, ai.Message{Role: h.Role, Content: h.Content})
	}

	assistantContent, err := s.ai.CompleteChat(ctx, messages, chatNumPredict)
	if err != nil {
		slog.Warn("chat completion failed, substituting apology", "userID", userID, "err", err)
		assistantContent = apologyMessage
	}
	assistantContent = strings.TrimSpace(assistantContent)
	if assistantContent == "" {
		assistantContent = emptyAnswerMessage
	}

	assistantMessageID, err := s.store.SaveMessage(ctx, userID, RoleAssistant, assistantContent)
	if err != nil {
		return SendResult{}, fmt.Errorf("save assistant message: %w", err)
	}

	return SendResult{
		UserMessageID:      userMessageID,
		AssistantMessageID: assistantMessageID,
		AssistantContent:   assistantContent,
		CreatedAt:          time.Now(),
	}, nil
}

// History returns the user's chat history in chronological order. The limit
// is clamped to [1, 200].
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]Message, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	return s.store.History(ctx, userID, limit)
}
