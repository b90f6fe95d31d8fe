package dao_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artmarkt/marketplace-api/internal/repository/dao"
)

func TestUserInsertAndFind(t *testing.T) {
	db := openTestDB(t)
	users := dao.NewUserDAO(db)
	ctx := context.Background()

	inserted, err := users.Insert(ctx, dao.User{Email: "jane@test.local", Password: "hash", Name: "Jane"})
	require.NoError(t, err)
	assert.NotZero(t, inserted.ID)
	assert.Zero(t, inserted.Balance)

	byID, err := users.FindByID(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@test.local", byID.Email)

	byEmail, err := users.FindByEmail(ctx, "jane@test.local")
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, byEmail.ID)

	_, err = users.FindByID(ctx, 999)
	assert.ErrorIs(t, err, dao.ErrUserNotFound)

	_, err = users.FindByEmail(ctx, "nobody@test.local")
	assert.ErrorIs(t, err, dao.ErrUserNotFound)
}

func TestCreditBalance(t *testing.T) {
	db := openTestDB(t)
	users := dao.NewUserDAO(db)
	ctx := context.Background()

	user, err := users.Insert(ctx, dao.User{Email: "jane@test.local", Password: "hash", Name: "Jane"})
	require.NoError(t, err)

	require.NoError(t, users.CreditBalance(ctx, user.ID, 250))
	require.NoError(t, users.CreditBalance(ctx, user.ID, 50))

	found, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 300, found.Balance)
}

func TestCreditBalanceRejectsNonPositiveAmounts(t *testing.T) {
	db := openTestDB(t)
	users := dao.NewUserDAO(db)
	ctx := context.Background()

	user, err := users.Insert(ctx, dao.User{Email: "jane@test.local", Password: "hash", Name: "Jane"})
	require.NoError(t, err)

	assert.ErrorIs(t, users.CreditBalance(ctx, user.ID, 0), dao.ErrNonPositiveAmount)
	assert.ErrorIs(t, users.CreditBalance(ctx, user.ID, -10), dao.ErrNonPositiveAmount)

	found, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, found.Balance)
}

func TestCreditBalanceUnknownUser(t *testing.T) {
	db := openTestDB(t)
	users := dao.NewUserDAO(db)

	err := users.CreditBalance(context.Background(), 77, 100)
	assert.ErrorIs(t, err, dao.ErrUserNotFound)
}
