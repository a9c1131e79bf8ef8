package motivation

import (
	"context"
	"fmt"
	"strings"
)

const motivationPrompt = `Anda adalah motivator profesional. Tulis satu kalimat motivasi singkat untuk hari ini (max 2 kalimat). Bahasa Indonesia. Tanpa tanda kutip atau prefix. Langsung kalimat motivasinya saja.`

const motivationNumPredict = 400

type TextGenerator interface {
	Complete(ctx context.Context, prompt string, numPredict int) (string, error)
}

type StoreAPI interface {
	AcquireDaily(ctx context.Context) (DailyTx, error)
}

type Service struct {
	store StoreAPI
	ai    TextGenerator
}

func NewService(store StoreAPI, generator TextGenerator) *Service {
	return &Service{store: store, ai: generator}
}

// GenerateDaily returns today's motivation entry, creating it if no entry
// exists yet. The advisory lock is taken before the existence check so
// concurrent callers serialize on the whole check-then-insert sequence:
// exactly one row per calendar day, every caller gets the same entry.
func (s *Service) GenerateDaily(ctx context.Context) (Entry, error) {
	tx, err := s.store.AcquireDaily(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("acquire daily lock: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	existing, err := tx.Today(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("check today's entry: %w", err)
	}
	if existing != nil {
		// Nothing to write; the deferred rollback releases the lock.
		return *existing, nil
	}

	text, err := s.ai.Complete(ctx, motivationPrompt, motivationNumPredict)
	if err != nil {
		return Entry{}, fmt.Errorf("generate motivation: %w", err)
	}
	text = strings.Trim(strings.TrimSpace(text), `"'`)
	if text == "" {
		return Entry{}, fmt.Errorf("generate motivation: empty text after normalization")
	}

	entry, err := tx.Insert(ctx, text)
	if err != nil {
		return Entry{}, fmt.Errorf("insert motivation: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return Entry{}, fmt.Errorf("commit motivation: %w", err)
	}
	return entry, nil
}
