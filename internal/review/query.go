package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ChatSummary is one chat-list entry as served to clients.
type ChatSummary struct {
	ID        uint64    `json:"id"`
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	Messages  []Message `json:"messages"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QueryService resolves a user by email and formats their sessions for
// display.
type QueryService struct {
	store Store
}

func NewQueryService(store Store) *QueryService {
	return &QueryService{store: store}
}

// ListChatsForEmail returns the user's sessions, most recently updated first.
// An email with no signup is a normal empty result, not an error.
func (q *QueryService) ListChatsForEmail(ctx context.Context, email string) ([]ChatSummary, error) {
	user, err := q.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []ChatSummary{}, nil
		}
		return nil, err
	}

	sessions, err := q.store.ListSessionsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	out := make([]ChatSummary, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		msgs := []Message(s.Messages)
		if msgs == nil {
			msgs = []Message{}
		}
		out = append(out, ChatSummary{
			ID:        s.ID,
			SessionID: s.SessionID,
			Name:      displayName(s),
			Messages:  msgs,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return out, nil
}

const displayNameMaxRunes = 60

// displayName derives a chat title from the first user message with content,
// scanning in original order: first line only, capped at 60 runes. Sessions
// without such a message fall back to "Chat {id}".
func displayName(s *Session) string {
	for _, m := range s.Messages {
		if m.Role != RoleUser || m.Content == "" {
			continue
		}
		line := m.Content
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimRight(line, "\r")
		if r := []rune(line); len(r) > displayNameMaxRunes {
			line = string(r[:displayNameMaxRunes])
		}
		return line
	}
	return fmt.Sprintf("Chat %d", s.ID)
}
