// README: Chat turn controller; runs one user submission through the completion provider.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"travelchat/internal/ai"
	"travelchat/internal/config"
	"travelchat/internal/locale"
	"travelchat/internal/types"
)

// Turn is the outcome of one submission. Conversation is set even when the
// completion failed, so callers can render the recorded user message.
type Turn struct {
	Conversation *Conversation
	Reply        string
	NewLocations []string
}

type Service struct {
	store Store
	llm   ai.Completer
	cfg   config.LLMConfig

	mu   sync.Mutex
	busy map[types.ID]struct{}
}

func NewService(store Store, llm ai.Completer, cfg config.LLMConfig) *Service {
	return &Service{store: store, llm: llm, cfg: cfg, busy: make(map[types.ID]struct{})}
}

// Open returns the session's conversation, resetting it when none exists or
// when it was started in a different language. A reset while a turn is in
// flight is refused with ErrTurnInProgress; the unchanged conversation is
// returned alongside when one exists.
func (s *Service) Open(ctx context.Context, id types.ID, lang locale.Language) (*Conversation, error) {
	conv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv != nil && conv.Language == lang {
		return conv, nil
	}

	if !s.acquire(id) {
		return conv, ErrTurnInProgress
	}
	defer s.release(id)
	return s.open(ctx, id, lang)
}

// open is Open for callers already holding the session's turn guard.
func (s *Service) open(ctx context.Context, id types.ID, lang locale.Language) (*Conversation, error) {
	conv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv != nil && conv.Language == lang {
		return conv, nil
	}

	if conv != nil {
		slog.Info("session_language_switched", "session", string(id), "from", string(conv.Language), "to", string(lang))
	}
	conv = NewConversation(lang)
	if err := s.store.Save(ctx, id, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// load returns nil without error when the session does not exist.
func (s *Service) load(ctx context.Context, id types.ID) (*Conversation, error) {
	conv, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return conv, err
}

// Submit runs one turn: record the user text, ask the model, record the reply
// and merge the locations it mentions. On completion failure the user message
// stays recorded and the returned error wraps ErrCompletionFailed.
func (s *Service) Submit(ctx context.Context, id types.ID, lang locale.Language, text string) (Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Turn{}, ErrEmptyMessage
	}
	if !s.acquire(id) {
		return Turn{}, ErrTurnInProgress
	}
	defer s.release(id)

	conv, err := s.open(ctx, id, lang)
	if err != nil {
		return Turn{}, err
	}

	conv.AppendUser(text)
	if err := s.store.Save(ctx, id, conv); err != nil {
		return Turn{}, err
	}

	reply, err := s.complete(ctx, conv)
	if err != nil {
		slog.Warn("completion_failed", "session", string(id), "error", err)
		return Turn{Conversation: conv}, fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}

	found := ExtractLocations(reply)
	conv.AppendAssistant(reply)
	conv.MergeLocations(found)
	if err := s.store.Save(ctx, id, conv); err != nil {
		return Turn{}, err
	}

	slog.Info("turn_completed",
		"session", string(id),
		"messages", len(conv.Messages),
		"new_locations", len(found),
		"locations", len(conv.Locations),
	)
	return Turn{Conversation: conv, Reply: reply, NewLocations: found}, nil
}

// ClearLocations empties the session's location list; messages are untouched.
func (s *Service) ClearLocations(ctx context.Context, id types.ID, lang locale.Language) (*Conversation, error) {
	if !s.acquire(id) {
		return nil, ErrTurnInProgress
	}
	defer s.release(id)

	conv, err := s.open(ctx, id, lang)
	if err != nil {
		return nil, err
	}
	conv.ClearLocations()
	if err := s.store.Save(ctx, id, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *Service) complete(ctx context.Context, conv *Conversation) (string, error) {
	if s.llm == nil {
		return "", errors.New("no completion provider configured")
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	msgs := make([]ai.Message, len(conv.Messages))
	for i, m := range conv.Messages {
		msgs[i] = ai.Message{Role: string(m.Role), Content: m.Content}
	}
	return s.llm.Complete(ctx, s.cfg.Model, msgs)
}

func (s *Service) acquire(id types.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.busy[id]; ok {
		return false
	}
	s.busy[id] = struct{}{}
	return true
}

func (s *Service) release(id types.ID) {
	s.mu.Lock()
	delete(s.busy, id)
	s.mu.Unlock()
}
