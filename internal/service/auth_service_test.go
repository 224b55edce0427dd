package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(RegisterReq{
		FIO:      "Ivan Petrov",
		Email:    "ivan@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, user.RoleName())
	assert.NotEqual(t, "secret123", user.Password)

	resp, err := env.auth.Login(LoginReq{Email: "ivan@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	claims, err := util.ParseJWT(resp.Token, env.cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.createStudent(t, "dup@example.com")

	_, err := env.auth.Register(RegisterReq{
		FIO:      "Other",
		Email:    "dup@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createStudent(t, "wp@example.com")

	_, err := env.auth.Login(LoginReq{Email: "wp@example.com", Password: "bad-password"})
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login(LoginReq{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
