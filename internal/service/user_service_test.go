package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet-api/internal/domain"
)

func TestRegisterNormalizesAndStripsHash(t *testing.T) {
	users, _ := newTestUserService(openTestDB(t))

	user, err := users.Register(context.Background(), RegisterInput{
		Email:     "  Ada@Example.COM ",
		Password:  "secret",
		FirstName: " Ada ",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Empty(t, user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	users, _ := newTestUserService(openTestDB(t))
	ctx := context.Background()

	cases := map[string]RegisterInput{
		"missing email":     {Password: "p", FirstName: "a", LastName: "b"},
		"invalid email":     {Email: "nope", Password: "p", FirstName: "a", LastName: "b"},
		"missing password":  {Email: "a@b.c", FirstName: "a", LastName: "b"},
		"missing firstName": {Email: "a@b.c", Password: "p", LastName: "b"},
		"missing lastName":  {Email: "a@b.c", Password: "p", FirstName: "a"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := users.Register(ctx, in)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err), err.Error())
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users, _ := newTestUserService(openTestDB(t))
	registerUser(t, users, "ada@example.com")

	_, err := users.Register(context.Background(), RegisterInput{
		Email:     "ADA@example.com",
		Password:  "other",
		FirstName: "A",
		LastName:  "L",
	})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.True(t, domain.IsValidation(err))
}

func TestLogin(t *testing.T) {
	users, tokens := newTestUserService(openTestDB(t))
	registered := registerUser(t, users, "ada@example.com")
	ctx := context.Background()

	session, err := users.Login(ctx, "Ada@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.Empty(t, session.User.PasswordHash)

	claims, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)

	_, err = users.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = users.Login(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = users.Login(ctx, "", "secret")
	assert.True(t, domain.IsValidation(err))
}

func TestGetByID(t *testing.T) {
	users, _ := newTestUserService(openTestDB(t))
	registered := registerUser(t, users, "ada@example.com")

	user, err := users.GetByID(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	_, err = users.GetByID(context.Background(), registered.ID+100)
	assert.True(t, domain.IsNotFound(err))
}
