package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository/memory"
	"github.com/jwalitptl/clinic-api/internal/service/event"
	"github.com/jwalitptl/clinic-api/pkg/auth"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/security"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

func newTestService(t *testing.T) (*Service, *event.Recorder) {
	t.Helper()
	events := &event.Recorder{}
	tokens := auth.NewJWTService("test-secret", time.Hour)
	svc := NewService(memory.NewStore(), validator.New(), events, security.NewBcryptHasher(4), tokens, time.Hour)
	return svc, events
}

func registerRequest() model.RegisterUserRequest {
	return model.RegisterUserRequest{
		Name:     "Grace Hopper",
		Phone:    "0123456789",
		Email:    "Grace@Clinic.test",
		Password: "secret123",
		Role:     model.RoleDoctor,
	}
}

func TestCreateUser(t *testing.T) {
	svc, events := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "grace hopper", user.Name)
	assert.Equal(t, "grace@clinic.test", user.Email)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.Equal(t, []string{"user.created"}, events.Types())

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}

func TestCreateUserConflictListsFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Name = "someone else"
	_, err = svc.CreateUser(ctx, dup)
	require.ErrorIs(t, err, apperrors.ErrConflict)

	appErr, _ := apperrors.As(err)
	assert.Equal(t, []string{"email", "phone"}, appErr.Duplicates)

	users, err := svc.ListUsers(ctx, model.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newTestService(t)

	req := registerRequest()
	req.Email = "not-an-email"
	req.Role = "Janitor"
	_, err := svc.CreateUser(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	appErr, _ := apperrors.As(err)
	require.Len(t, appErr.Fields, 2)
	assert.Equal(t, "email", appErr.Fields[0].Field)
	assert.Equal(t, "role", appErr.Fields[1].Field)
}

func TestUpdateUserKeepsPasswordWhenOmitted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, registerRequest())
	require.NoError(t, err)
	originalHash := user.PasswordHash

	updated, err := svc.UpdateUser(ctx, user.ID, model.UpdateUserRequest{
		Name:  "grace b hopper",
		Phone: user.Phone,
		Email: user.Email,
		Role:  model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, originalHash, updated.PasswordHash)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	updated, err = svc.UpdateUser(ctx, user.ID, model.UpdateUserRequest{
		Name:     updated.Name,
		Phone:    updated.Phone,
		Email:    updated.Email,
		Password: "another-secret",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, updated.PasswordHash)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, model.LoginRequest{Email: "grace@clinic.test", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "grace@clinic.test", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "nobody@clinic.test", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	_, err = svc.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
