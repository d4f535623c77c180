package review

import (
	"context"

	"codementor-backend/internal/models"
)

// Store is the persistence surface the chat services run against. The gorm
// implementation is Repo; tests may substitute any backend that keeps the
// same contract.
//
// Absence of data is reported with gorm.ErrRecordNotFound; callers treat it
// as a normal empty result, never as a failure.
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error

	// GetOrCreateSession returns the session for sessionID, creating it with
	// an empty transcript when none exists. The bool reports creation.
	GetOrCreateSession(ctx context.Context, sessionID string) (*Session, bool, error)
	SaveSession(ctx context.Context, s *Session) error

	// ListSessionsForUser returns the user's sessions ordered by updated
	// timestamp descending.
	ListSessionsForUser(ctx context.Context, userID uint64) ([]Session, error)
}
