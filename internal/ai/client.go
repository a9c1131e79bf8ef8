// Package ai wraps the local Ollama text-completion service. All successful
// calls return trimmed non-empty text; every failure mode is a typed error so
// callers can decide whether it is fatal (performance generation) or
// recoverable (chat).
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"perfai/internal/platform/config"
)

const requestTimeout = 120 * time.Second

// ErrEmptyResponse is returned when the model replied but the content is
// blank after trimming. Usually a wrong model name or a cold Ollama instance.
var ErrEmptyResponse = errors.New("model returned empty content")

// ServiceError covers transport failures, non-JSON bodies, and explicit
// error fields in the service response.
type ServiceError struct {
	Op      string
	Message string
	Timeout bool
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ai %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("ai %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CallRecorder receives the outcome of every completion attempt. Wired to
// the process metrics collector; nil means no recording.
type CallRecorder interface {
	RecordAICall(duration time.Duration, failed bool)
}

type Client struct {
	httpClient  *http.Client
	generateURL string
	chatURL     string
	nativeChat  bool
	model       string
	recorder    CallRecorder
}

func NewClient(cfg config.Config, recorder CallRecorder) *Client {
	generateURL := strings.TrimSpace(cfg.OllamaURL)
	return &Client{
		httpClient:  &http.Client{Timeout: requestTimeout},
		generateURL: generateURL,
		chatURL:     chatURL(generateURL),
		nativeChat:  cfg.OllamaNativeChat,
		model:       cfg.ModelName,
		recorder:    recorder,
	}
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Complete sends a single-prompt completion request and returns the trimmed
// model output. numPredict bounds the generated token count.
func (c *Client) Complete(ctx context.Context, prompt string, numPredict int) (string, error) {
	start := time.Now()
	text, err := c.complete(ctx, prompt, numPredict)
	if c.recorder != nil {
		c.recorder.RecordAICall(time.Since(start), err != nil)
	}
	return text, err
}

func (c *Client) complete(ctx context.Context, prompt string, numPredict int) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: 0.5,
			TopP:        0.9,
			NumPredict:  numPredict,
		},
	})
	if err != nil {
		return "", &ServiceError{Op: "generate", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.generateURL, bytes.NewReader(payload))
	if err != nil {
		return "", &ServiceError{Op: "generate", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ServiceError{Op: "generate", Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ServiceError{Op: "generate", Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var body generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &ServiceError{Op: "generate", Err: err}
	}
	if body.Error != "" {
		return "", &ServiceError{Op: "generate", Message: body.Error}
	}

	text := strings.TrimSpace(body.Response)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// CompleteChat sends a multi-turn conversation to the model. The default
// path flattens it into a single completion prompt: if plain completion
// works, chat works, with no second endpoint to misconfigure. Deployments
// that want the native /api/chat endpoint opt in via OLLAMA_NATIVE_CHAT.
func (c *Client) CompleteChat(ctx context.Context, messages []Message, numPredict int) (string, error) {
	if c.nativeChat {
		start := time.Now()
		text, err := c.completeChat(ctx, messages, numPredict)
		if c.recorder != nil {
			c.recorder.RecordAICall(time.Since(start), err != nil)
		}
		return text, err
	}

	prompt := flattenMessages(messages)
	if strings.TrimSpace(prompt) == "" {
		return "", &ServiceError{Op: "chat", Message: "empty chat prompt"}
	}
	return c.Complete(ctx, prompt, numPredict)
}

type chatRequest struct {
	Model    string          `json:"model"`
	Messages []Message       `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  generateOptions `json:"options"`
}

type chatResponse struct {
	Message Message `json:"message"`
	Error   string  `json:"error"`
}

func (c *Client) completeChat(ctx context.Context, messages []Message, numPredict int) (string, error) {
	var kept []Message
	for _, m := range messages {
		if strings.TrimSpace(m.Content) != "" {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return "", &ServiceError{Op: "chat", Message: "empty chat prompt"}
	}

	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: kept,
		Stream:   false,
		Options: generateOptions{
			Temperature: 0.5,
			TopP:        0.9,
			NumPredict:  numPredict,
		},
	})
	if err != nil {
		return "", &ServiceError{Op: "chat", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(payload))
	if err != nil {
		return "", &ServiceError{Op: "chat", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ServiceError{Op: "chat", Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ServiceError{Op: "chat", Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var body chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &ServiceError{Op: "chat", Err: err}
	}
	if body.Error != "" {
		return "", &ServiceError{Op: "chat", Message: body.Error}
	}

	text := strings.TrimSpace(body.Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// flattenMessages renders a multi-turn conversation as a completion prompt:
// system instructions as a preamble, turns labeled per role, and a trailing
// assistant label for the model to continue from.
func flattenMessages(messages []Message) string {
	var parts []string
	for _, m := range messages {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		switch strings.ToLower(m.Role) {
		case "system":
			parts = append(parts, "Instruksi sistem:\n"+content+"\n")
		case "assistant":
			parts = append(parts, "Asisten: "+content+"\n")
		default:
			parts = append(parts, "User: "+content+"\n")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	parts = append(parts, "Asisten: ")
	return strings.Join(parts, "\n")
}

// chatURL derives the sibling /api/chat endpoint from the configured
// completion URL, for deployments that want the native multi-turn endpoint.
func chatURL(generateURL string) string {
	base := strings.TrimRight(strings.TrimSpace(generateURL), "/")
	if strings.HasSuffix(base, "/generate") {
		return strings.TrimSuffix(base, "/generate") + "/chat"
	}
	if strings.Contains(base, "/api/generate") {
		return strings.Replace(base, "/api/generate", "/api/chat", 1)
	}
	if base == "" {
		base = "http://localhost:11434"
	}
	return base + "/api/chat"
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
