// README: Conversation state, message roles, and chat errors.
package chat

import (
	"errors"

	"travelchat/internal/locale"
)

var (
	ErrEmptyMessage     = errors.New("empty message")
	ErrCompletionFailed = errors.New("completion failed")
	ErrTurnInProgress   = errors.New("turn in progress")
	ErrNotFound         = errors.New("session not found")
)

// CompletionCause returns the provider error a Submit failure wraps together
// with ErrCompletionFailed, or err itself when there is none.
func CompletionCause(err error) error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return err
	}
	for _, e := range joined.Unwrap() {
		if !errors.Is(e, ErrCompletionFailed) {
			return e
		}
	}
	return err
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the state of one chat session. Messages[0] is always the
// system prompt of Language; Locations holds each extracted place once, in
// first-seen order.
type Conversation struct {
	Language  locale.Language `json:"language"`
	Messages  []Message       `json:"messages"`
	Locations []string        `json:"locations"`
}

// NewConversation returns a conversation freshly reset to lang.
func NewConversation(lang locale.Language) *Conversation {
	c := &Conversation{}
	c.Reset(lang)
	return c
}

// Reset discards all messages and locations and seeds the system prompt for
// lang. The previous state is replaced in a single assignment.
func (c *Conversation) Reset(lang locale.Language) {
	prompt := locale.Lookup(lang).SystemPrompt
	*c = Conversation{
		Language:  lang,
		Messages:  []Message{{Role: RoleSystem, Content: prompt}},
		Locations: []string{},
	}
}

func (c *Conversation) AppendUser(text string) {
	c.Messages = append(c.Messages, Message{Role: RoleUser, Content: text})
}

func (c *Conversation) AppendAssistant(text string) {
	c.Messages = append(c.Messages, Message{Role: RoleAssistant, Content: text})
}

// MergeLocations adds every location not already present. Matching is by
// exact string.
func (c *Conversation) MergeLocations(locations []string) {
	seen := make(map[string]struct{}, len(c.Locations)+len(locations))
	for _, l := range c.Locations {
		seen[l] = struct{}{}
	}
	for _, l := range locations {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		c.Locations = append(c.Locations, l)
	}
}

func (c *Conversation) ClearLocations() {
	c.Locations = []string{}
}

// Visible returns the messages shown to the user (everything but system prompts).
func (c *Conversation) Visible() []Message {
	out := make([]Message, 0, len(c.Messages))
	for _, m := range c.Messages {
		if m.Role == RoleSystem {
			continue
		}
		out = append(out, m)
	}
	return out
}

// SystemPrompt returns the seeded system message, or "" for a zero Conversation.
func (c *Conversation) SystemPrompt() string {
	if len(c.Messages) == 0 || c.Messages[0].Role != RoleSystem {
		return ""
	}
	return c.Messages[0].Content
}

// Clone returns a deep copy.
func (c *Conversation) Clone() *Conversation {
	out := &Conversation{Language: c.Language}
	out.Messages = append([]Message(nil), c.Messages...)
	out.Locations = append([]string{}, c.Locations...)
	return out
}
