package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artmarkt/marketplace-api/internal/domain"
	"github.com/artmarkt/marketplace-api/internal/service"
)

func TestSignupHashesPassword(t *testing.T) {
	env := newMarketTestEnv(t, 1)

	// Fixture accounts were created through Signup; the stored password is a
	// bcrypt hash, never the plaintext.
	stored, err := env.users.FindByID(context.Background(), env.seller.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "passw0rd123", stored.Password)
	assert.NotEmpty(t, stored.Password)
}

func TestLogin(t *testing.T) {
	env := newMarketTestEnv(t, 1)
	auth := env.auth
	ctx := context.Background()

	user, err := auth.Login(ctx, "seller@test.local", "passw0rd123")
	require.NoError(t, err)
	assert.Equal(t, env.seller.ID, user.ID)

	_, err = auth.Login(ctx, "seller@test.local", "not-the-password")
	assert.ErrorIs(t, err, service.ErrWrongPassword)

	_, err = auth.Login(ctx, "ghost@test.local", "passw0rd123")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newMarketTestEnv(t, 1)

	_, err := env.auth.Signup(context.Background(), domain.User{
		Email:    "seller@test.local",
		Name:     "Impostor",
		Password: "passw0rd123",
	})
	assert.ErrorIs(t, err, service.ErrUserEmailExists)
}
