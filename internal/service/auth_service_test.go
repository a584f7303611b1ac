package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studysync/studysync-backend/internal/config"
	"github.com/studysync/studysync-backend/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // minimum cost keeps the test fast
	}
}

func TestRegister_CreatesUserAndToken(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(testConfig(), users)

	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "Tar.Heel@unc.edu",
		Password: "hunter22a",
		Major:    " Computer Science ",
		GradYear: 2027,
	})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "tar.heel@unc.edu", resp.User.Email, "email stored lower-cased")
	assert.Equal(t, "Computer Science", resp.User.Major)
	assert.Equal(t, "Computer Science 2027", resp.User.DisplayName)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(testConfig(), users)

	req := &model.RegisterRequest{
		Email: "dup@unc.edu", Password: "hunter22a", Major: "Math", GradYear: 2026,
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(testConfig(), users)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email: "login@unc.edu", Password: "hunter22a", Major: "Math", GradYear: 2026,
	})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &model.LoginRequest{
			Email: "LOGIN@unc.edu", Password: "hunter22a",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &model.LoginRequest{
			Email: "login@unc.edu", Password: "wrong-pass1",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &model.LoginRequest{
			Email: "nobody@unc.edu", Password: "hunter22a",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("DeactivatedAccount", func(t *testing.T) {
		for _, u := range users.users {
			u.IsActive = false
		}
		_, err := svc.Login(context.Background(), &model.LoginRequest{
			Email: "login@unc.edu", Password: "hunter22a",
		})
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestGetCurrentUser(t *testing.T) {
	user := csUser("u1")
	user.DisplayName = "Computer Science 2027"
	users := newFakeUserStore(user)
	svc := NewAuthService(testConfig(), users)

	view, err := svc.GetCurrentUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", view.ID)
	assert.Equal(t, "Computer Science 2027", view.DisplayName)

	_, err = svc.GetCurrentUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := NewAuthService(testConfig(), newFakeUserStore())

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		otherCfg := testConfig()
		otherCfg.JWTSecret = "other-secret"
		other := NewAuthService(otherCfg, newFakeUserStore())

		token, err := other.GenerateToken("u1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}
