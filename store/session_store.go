package store

import (
	"errors"
	"fmt"
	"time"

	"avolkov/resume-api/model"
	"avolkov/resume-api/security"

	"gorm.io/gorm"
)

var (
	// ErrNoActiveSession means every session of the user has expired or
	// been deleted.
	ErrNoActiveSession = errors.New("no active session")

	// ErrNoSession means the user has no session rows at all.
	ErrNoSession = errors.New("no session found")
)

// SessionStore persists session rows. A session is active while its
// expires_at lies in the future, nothing else is consulted. Several
// rows per user may coexist.
type SessionStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSessionStore(db *gorm.DB, ttl time.Duration) *SessionStore {
	return &SessionStore{db: db, ttl: ttl}
}

// Create inserts a session for token expiring exactly ttl from now.
// The row stores the token's digest, never the token.
func (s *SessionStore) Create(userID, token string) (*model.Session, error) {
	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID, %w", err)
	}

	now := time.Now()
	sess := &model.Session{
		ID:        id,
		UserID:    userID,
		TokenHash: security.TokenDigest(token),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.db.Create(sess).Error; err != nil {
		return nil, fmt.Errorf("failed to create session, %w", err)
	}

	return sess, nil
}

// FindActive returns the newest session of the user whose expiry still
// lies in the future.
func (s *SessionStore) FindActive(userID string) (*model.Session, error) {
	var sess model.Session

	err := s.db.
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at desc").
		First(&sess).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSession
		}

		return nil, fmt.Errorf("failed to look up session, %w", err)
	}

	return &sess, nil
}

// Latest returns the newest session row regardless of expiry. The
// session status endpoint reports on it even when it has lapsed.
func (s *SessionStore) Latest(userID string) (*model.Session, error) {
	var sess model.Session

	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		First(&sess).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}

		return nil, fmt.Errorf("failed to look up session, %w", err)
	}

	return &sess, nil
}

// DeleteAll removes every session row of the user. Logout calls this,
// revoking all tokens at once.
func (s *SessionStore) DeleteAll(userID string) (int64, error) {
	r := s.db.Where("user_id = ?", userID).Delete(&model.Session{})
	if r.Error != nil {
		return 0, fmt.Errorf("failed to delete sessions, %w", r.Error)
	}

	return r.RowsAffected, nil
}

// PurgeExpired removes every lapsed session in one DELETE so readers
// never observe a half-removed row, and reports how many went away.
// Calling it twice in a row removes nothing the second time.
func (s *SessionStore) PurgeExpired() (int64, error) {
	r := s.db.Where("expires_at <= ?", time.Now()).Delete(&model.Session{})
	if r.Error != nil {
		return 0, fmt.Errorf("failed to purge sessions, %w", r.Error)
	}

	return r.RowsAffected, nil
}

// CountAll reports the number of session rows for the status endpoint.
func (s *SessionStore) CountAll() (int64, error) {
	var n int64
	err := s.db.Model(&model.Session{}).Count(&n).Error
	return n, err
}
