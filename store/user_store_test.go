package store

import (
	"strings"
	"testing"

	"avolkov/resume-api/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_Register(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, security.NewArgonHash())

	user, err := users.Register("anna@example.com", "correct horse", "Anna")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Equal(t, "Anna", user.Name)

	// Plaintext never lands in the row
	assert.NotContains(t, user.PasswordHash, "correct horse")
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$argon2id$"))
}

func TestUserStore_RegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, security.NewArgonHash())

	_, err := users.Register("anna@example.com", "correct horse", "Anna")
	require.NoError(t, err)

	_, err = users.Register("anna@example.com", "other password", "Not Anna")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserStore_Verify(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, security.NewArgonHash())

	created, err := users.Register("anna@example.com", "correct horse", "Anna")
	require.NoError(t, err)

	user, err := users.Verify("anna@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestUserStore_VerifyFailuresIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, security.NewArgonHash())

	_, err := users.Register("anna@example.com", "correct horse", "Anna")
	require.NoError(t, err)

	_, wrongPass := users.Verify("anna@example.com", "wrong password")
	_, noUser := users.Verify("nobody@example.com", "correct horse")

	// Same sentinel for both, nothing to enumerate accounts with
	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), noUser.Error())
}
