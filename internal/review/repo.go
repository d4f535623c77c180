package review

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"codementor-backend/internal/models"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// FindUserByEmail returns the lowest-id user with the given email. The schema
// does not forbid duplicate emails; callers get the first match.
func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// GetOrCreateSession resolves the duplicate-row race with the unique index on
// session_id: when the insert loses to a concurrent creator, the conflict
// error triggers a refetch of the winner's row.
func (r *Repo) GetOrCreateSession(ctx context.Context, sessionID string) (*Session, bool, error) {
	var s Session
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&s).Error
	if err == nil {
		return &s, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	fresh := &Session{
		SessionID: sessionID,
		Messages:  datatypes.NewJSONSlice([]Message{}),
	}
	createErr := r.db.WithContext(ctx).Create(fresh).Error
	if createErr == nil {
		return fresh, true, nil
	}

	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&s).Error; err != nil {
		return nil, false, createErr
	}
	return &s, false, nil
}

// SaveSession writes the full session row and bumps the updated timestamp.
// Concurrent saves of the same session are last-writer-wins.
func (r *Repo) SaveSession(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *Repo) ListSessionsForUser(ctx context.Context, userID uint64) ([]Session, error) {
	var sessions []Session
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
