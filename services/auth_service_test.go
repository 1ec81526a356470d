package services

import (
	"context"
	"testing"

	"github.com/rookieryder/golf-backend/models"
	"github.com/rookieryder/golf-backend/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: " alice ",
		Email:    "Alice@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RolePlayer, user.Role)
	assert.Empty(t, user.PasswordHash)

	require.NotNil(t, repo.created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("correct horse")))
}

func TestRegister_Validation(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "nope", Password: "short"})
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "username")
	assert.Contains(t, v.Fields, "email")
	assert.Contains(t, v.Fields, "password")
}

func TestRegister_Conflicts(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{createErr: repositories.ErrUserUsernameConflict})
	_, err := svc.Register(context.Background(), RegisterInput{Username: "a", Email: "a@b.co", Password: "12345678"})
	assert.ErrorIs(t, err, ErrUsernameConflict)

	svc = NewAuthService(&fakeUserRepo{createErr: repositories.ErrUserEmailConflict})
	_, err = svc.Register(context.Background(), RegisterInput{Username: "a", Email: "a@b.co", Password: "12345678"})
	assert.ErrorIs(t, err, ErrUserEmailConflict)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUserRepo{users: map[int]*models.User{
		1: {ID: 1, Username: "bob", PasswordHash: string(hash), Role: models.RoleAdmin},
	}}
	svc := NewAuthService(repo)

	user, err := svc.Login(context.Background(), LoginInput{Username: "bob", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Login(context.Background(), LoginInput{Username: "bob", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
