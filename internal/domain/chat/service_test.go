package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"perfai/internal/ai"
)

type fakeStore struct {
	messages []Message
	nextID   int64
	saveErr  error
}

func (f *fakeStore) SaveMessage(ctx context.Context, userID int64, role, content string) (int64, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.nextID++
	f.messages = append(f.messages, Message{
		ID:        f.nextID,
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	return f.nextID, nil
}

func (f *fakeStore) History(ctx context.Context, userID int64, limit int) ([]Message, error) {
	var out []Message
	for _, m := range f.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type fakeChatGenerator struct {
	response  string
	err       error
	gotMsgs   []ai.Message
	callCount int
	onCall    func()
}

func (f *fakeChatGenerator) CompleteChat(ctx context.Context, messages []ai.Message, numPredict int) (string, error) {
	f.callCount++
	f.gotMsgs = messages
	if f.onCall != nil {
		f.onCall()
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeChatGenerator{response: "halo"}
	svc := NewService(store, gen)

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := svc.Send(context.Background(), 1, message)
		if !errors.Is(err, ErrEmptyMessage) {
			t.Fatalf("expected ErrEmptyMessage for %q, got %v", message, err)
		}
	}
	if len(store.messages) != 0 {
		t.Fatalf("rejected input must persist nothing, got %d rows", len(store.messages))
	}
	if gen.callCount != 0 {
		t.Fatal("rejected input must not reach the model")
	}
}

func TestSendPersistsUserMessageBeforeAICall(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeChatGenerator{response: "jawaban"}
	var rowsAtAICall int
	gen.onCall = func() { rowsAtAICall = len(store.messages) }
	svc := NewService(store, gen)

	result, err := svc.Send(context.Background(), 5, "  Apa KPI saya?  ")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if rowsAtAICall != 1 {
		t.Fatalf("user message must be durable before the AI call, saw %d rows", rowsAtAICall)
	}
	if store.messages[0].Role != RoleUser || store.messages[0].Content != "Apa KPI saya?" {
		t.Fatalf("unexpected user row: %+v", store.messages[0])
	}
	if result.AssistantContent != "jawaban" {
		t.Fatalf("unexpected assistant content: %q", result.AssistantContent)
	}
	if result.UserMessageID == 0 || result.AssistantMessageID == 0 {
		t.Fatalf("expected both message IDs, got %+v", result)
	}
}

func TestSendPrependsSystemPrompt(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeChatGenerator{response: "ok"}
	svc := NewService(store, gen)

	if _, err := svc.Send(context.Background(), 2, "halo"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(gen.gotMsgs) == 0 || gen.gotMsgs[0].Role != RoleSystem {
		t.Fatal("first message to the model must be the system prompt")
	}
	if !strings.Contains(gen.gotMsgs[0].Content, "Performance Management") {
		t.Fatalf("system prompt missing domain restriction:\n%s", gen.gotMsgs[0].Content)
	}
}

func TestSendDegradesOnAIFailure(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeChatGenerator{err: errors.New("connection refused")}
	svc := NewService(store, gen)

	result, err := svc.Send(context.Background(), 9, "tolong bantu")
	if err != nil {
		t.Fatalf("AI failure must not surface to the caller: %v", err)
	}
	if result.AssistantContent != apologyMessage {
		t.Fatalf("expected apology substitute, got %q", result.AssistantContent)
	}
	last := store.messages[len(store.messages)-1]
	if last.Role != RoleAssistant || last.Content != apologyMessage {
		t.Fatalf("apology must be persisted as the assistant message, got %+v", last)
	}
}

func TestSendHistoryWindowIsBounded(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeChatGenerator{response: "ok"})

	for i := 0; i < 30; i++ {
		if _, err := svc.Send(context.Background(), 4, "pesan"); err != nil {
			t.Fatalf("send failed: %v", err)
		}
	}

	gen := &fakeChatGenerator{response: "ok"}
	svc = NewService(store, gen)
	if _, err := svc.Send(context.Background(), 4, "terakhir"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	// System prompt plus at most 20 history turns.
	if len(gen.gotMsgs) != maxHistoryMessages+1 {
		t.Fatalf("expected %d messages, got %d", maxHistoryMessages+1, len(gen.gotMsgs))
	}
}

func TestHistoryLimitClamped(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeChatGenerator{response: "ok"})
	for i := 0; i < 5; i++ {
		if _, err := svc.Send(context.Background(), 1, "pesan"); err != nil {
			t.Fatalf("send failed: %v", err)
		}
	}

	history, err := svc.History(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("limit 0 must clamp to 1, got %d messages", len(history))
	}

	history, err = svc.History(context.Background(), 1, 1000)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 10 {
		t.Fatalf("expected all 10 rows under clamped limit, got %d", len(history))
	}
}

func TestHistoryChronologicalOrder(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeChatGenerator{response: "ok"})
	if _, err := svc.Send(context.Background(), 1, "pertama"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := svc.Send(context.Background(), 1, "kedua"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	history, err := svc.History(context.Background(), 1, 50)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	for i := 1; i < len(history); i++ {
		if history[i].ID < history[i-1].ID {
			t.Fatalf("history out of order at %d: %+v", i, history)
		}
	}
	if history[0].Content != "pertama" {
		t.Fatalf("expected oldest message first, got %q", history[0].Content)
	}
}
