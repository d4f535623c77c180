package review

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"codementor-backend/internal/common"
)

// ErrMessagesRequired is returned when a turn arrives without a message list.
// Shape validation of individual messages happens at the HTTP layer.
var ErrMessagesRequired = errors.New("messages list is required")

// SessionManager implements the turn-submission contract: resolve or mint a
// session token, replace the transcript wholesale, attach an owner when the
// email resolves, persist.
type SessionManager struct {
	store Store
}

func NewSessionManager(store Store) *SessionManager {
	return &SessionManager{store: store}
}

// SubmitTurn persists one chat turn and returns the session token the caller
// should reuse on the next turn.
//
// The caller sends the complete transcript every time; msgs overwrites
// whatever the session held before. An empty sessionID mints a fresh ULID
// (collision odds are treated as negligible, no re-check). An owner set on an
// earlier turn stays attached when email is empty; a resolving email
// overwrites any previous owner.
func (m *SessionManager) SubmitTurn(ctx context.Context, sessionID string, msgs []Message, email string) (string, error) {
	if msgs == nil {
		return "", ErrMessagesRequired
	}

	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		var err error
		sid, err = common.NewULID()
		if err != nil {
			return "", err
		}
	}

	sess, _, err := m.store.GetOrCreateSession(ctx, sid)
	if err != nil {
		return "", err
	}

	sess.Messages = datatypes.NewJSONSlice(msgs)

	if email != "" {
		user, err := m.store.FindUserByEmail(ctx, email)
		switch {
		case err == nil:
			sess.UserID = &user.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// unknown email: the turn stays anonymous
		default:
			return "", err
		}
	}

	if err := m.store.SaveSession(ctx, sess); err != nil {
		return "", err
	}
	return sid, nil
}
