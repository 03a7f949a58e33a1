package service

import (
	"context"
	"testing"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	users := &fakeUsers{m: map[int64]*models.User{}}
	svc := NewUserService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "tharun", "secret-pass")
	require.NoError(t, err)
	assert.NotZero(t, user.UserId)
	assert.NotEqual(t, "secret-pass", user.PasswordHash, "password must be hashed")

	logged, err := svc.Login(ctx, "tharun", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.UserId, logged.UserId)

	_, err = svc.Login(ctx, "tharun", "wrong")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Login(ctx, "nobody", "secret-pass")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	users := &fakeUsers{m: map[int64]*models.User{}}
	svc := NewUserService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "tharun", "secret-pass")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "tharun", "other-pass")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterRequiresFields(t *testing.T) {
	svc := NewUserService(&fakeUsers{m: map[int64]*models.User{}})

	_, err := svc.Register(context.Background(), "", "pass")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), "name", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
