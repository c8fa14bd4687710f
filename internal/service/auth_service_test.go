package service

import (
	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/testhelpers"
	"mock_interview_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func TestAuthService_RegisterLogin(t *testing.T) {
	svc := NewAuthService(repository.NewUserRepository(testhelpers.NewTestDB(t)), testConfig())

	user := &model.User{Name: "Lin", Email: "lin@example.com", Password: "s3cret!"}
	require.NoError(t, svc.Register(user))
	assert.NotEqual(t, "s3cret!", user.Password)

	err := svc.Register(&model.User{Name: "Lin", Email: "lin@example.com", Password: "x"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	token, logged, err := svc.Login("lin@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := svc.Authenticate("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = svc.Login("lin@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, _, err = svc.Login("ghost@example.com", "s3cret!")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc := NewAuthService(nil, testConfig())

	_, err := svc.Authenticate("")
	assert.ErrorIs(t, err, util.ErrUnauthenticated)
	_, err = svc.Authenticate("Basic abc")
	assert.ErrorIs(t, err, util.ErrUnauthenticated)
	_, err = svc.Authenticate("Bearer ")
	assert.ErrorIs(t, err, util.ErrUnauthenticated)
	_, err = svc.Authenticate("Bearer not.a.jwt")
	assert.ErrorIs(t, err, util.ErrInvalidToken)

	user := &model.User{Email: "a@b.c"}
	user.ID = "user-1"
	token, err := util.GenerateJWT(user, "other-secret", time.Hour)
	require.NoError(t, err)
	_, err = svc.Authenticate("Bearer " + token)
	assert.ErrorIs(t, err, util.ErrInvalidToken)
}

func TestAuthService_NotConfigured(t *testing.T) {
	svc := NewAuthService(nil, testConfig())

	assert.ErrorIs(t, svc.Register(&model.User{}), util.ErrNotConfigured)
	_, _, err := svc.Login("a", "b")
	assert.ErrorIs(t, err, util.ErrNotConfigured)
	_, err = svc.GetUser("x")
	assert.ErrorIs(t, err, util.ErrNotConfigured)
}
