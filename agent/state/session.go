package state

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the conversation transcript.
type Turn struct {
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session is the transcript of one conversation with one assistant. It only
// holds chat history; the order ledger deliberately lives outside of it and
// is never persisted.
type Session struct {
	SessionID string    `json:"session_id"`
	Agent     string    `json:"agent"`
	Turns     []Turn    `json:"turns,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrEmptyRole    = errors.New("turn role is empty")
	ErrEmptyContent = errors.New("turn content is empty")
)

func NewSession(sessionID, agent string, now time.Time) *Session {
	return &Session{
		SessionID: sessionID,
		Agent:     agent,
		UpdatedAt: now.UTC(),
	}
}

func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// Append records one turn and touches the session.
func (s *Session) Append(role Role, content string, now time.Time) error {
	if strings.TrimSpace(string(role)) == "" {
		return ErrEmptyRole
	}
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	s.Turns = append(s.Turns, Turn{
		Role:    role,
		Content: content,
		At:      now.UTC(),
	})
	s.Touch(now)
	return nil
}

// LastTurns returns the most recent n turns, oldest first. n <= 0 returns
// the whole transcript.
func (s *Session) LastTurns(n int) []Turn {
	if n <= 0 || n >= len(s.Turns) {
		return append([]Turn(nil), s.Turns...)
	}
	return append([]Turn(nil), s.Turns[len(s.Turns)-n:]...)
}

func (s *Session) Validate() error {
	if strings.TrimSpace(s.SessionID) == "" {
		return ErrInvalidSession
	}
	for i, turn := range s.Turns {
		if turn.Role != RoleUser && turn.Role != RoleAssistant {
			return fmt.Errorf("turn %d has invalid role %q", i, turn.Role)
		}
		if strings.TrimSpace(turn.Content) == "" {
			return fmt.Errorf("turn %d: %w", i, ErrEmptyContent)
		}
	}
	return nil
}
