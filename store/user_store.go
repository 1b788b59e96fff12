package store

import (
	"errors"
	"fmt"

	"avolkov/resume-api/model"
	"avolkov/resume-api/security"

	"gorm.io/gorm"
)

var (
	// ErrEmailTaken is returned when registering an already known email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so callers can't tell accounts apart by probing.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStore persists user identities. Passwords only ever enter it in
// plaintext through Register/Verify arguments and leave as argon2id
// hashes.
type UserStore struct {
	db    *gorm.DB
	argon *security.ArgonHash
}

func NewUserStore(db *gorm.DB, argon *security.ArgonHash) *UserStore {
	return &UserStore{db: db, argon: argon}
}

// Register stores a new user with a salted hash of password. Emails are
// unique, a duplicate answers ErrEmailTaken.
func (s *UserStore) Register(email, password, name string) (*model.User, error) {
	hash, err := s.argon.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID, %w", err)
	}

	user := &model.User{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}

		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	return user, nil
}

// Verify checks email+password against the stored hash. Any mismatch,
// including an email that was never registered, answers the same
// ErrInvalidCredentials.
func (s *UserStore) Verify(email, password string) (*model.User, error) {
	var user model.User

	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	ok, err := s.argon.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// CountAll reports the number of registered users for the status
// endpoint.
func (s *UserStore) CountAll() (int64, error) {
	var n int64
	err := s.db.Model(&model.User{}).Count(&n).Error
	return n, err
}
