package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/internal/db"
)

func setupUserAuthTest(t *testing.T) (UserAuthService, *gorm.DB) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	svc := NewUserAuthService(
		repository.NewUserRepository(testDB),
		repository.NewRefreshTokenRepository(testDB),
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
	return svc, testDB
}

func signup(name string) SignupInput {
	return SignupInput{
		Email:     name + "@example.com",
		Password:  "password123",
		FirstName: "Test",
		LastName:  "Customer",
	}
}

func TestUserAuthService_Signup(t *testing.T) {
	svc, testDB := setupUserAuthTest(t)
	defer db.CleanupTestDB(testDB)

	result, err := svc.Signup(signup("amira"), "127.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.Equal(t, "amira@example.com", result.User.Email)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	// Email addresses are normalised before the uniqueness check
	input := signup("other")
	input.Email = "  AMIRA@Example.com "
	_, err = svc.Signup(input, "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestUserAuthService_Signup_Validation(t *testing.T) {
	svc, testDB := setupUserAuthTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name    string
		mutate  func(*SignupInput)
		wantErr error
	}{
		{
			name:    "malformed email",
			mutate:  func(in *SignupInput) { in.Email = "not-an-email" },
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "short password",
			mutate:  func(in *SignupInput) { in.Password = "short" },
			wantErr: ErrPasswordTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := signup("candidate")
			tt.mutate(&input)
			_, err := svc.Signup(input, "127.0.0.1", "test-agent")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserAuthService_Login(t *testing.T) {
	svc, testDB := setupUserAuthTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.Signup(signup("login"), "127.0.0.1", "test-agent")
	require.NoError(t, err)

	result, err := svc.Login("login@example.com", "password123", "127.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)

	_, err = svc.Login("login@example.com", "wrong-password", "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown accounts fail the same way as bad passwords
	_, err = svc.Login("ghost@example.com", "password123", "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserAuthService_RefreshRotation(t *testing.T) {
	svc, testDB := setupUserAuthTest(t)
	defer db.CleanupTestDB(testDB)

	result, err := svc.Signup(signup("rotate"), "127.0.0.1", "test-agent")
	require.NoError(t, err)
	original := result.Tokens.RefreshToken

	rotated, err := svc.Refresh(original, "127.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.NotEqual(t, original, rotated.RefreshToken)

	// A replayed token fails on its second use
	_, err = svc.Refresh(original, "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// An access token is never accepted as a refresh token
	_, err = svc.Refresh(rotated.AccessToken, "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestUserAuthService_Logout(t *testing.T) {
	svc, testDB := setupUserAuthTest(t)
	defer db.CleanupTestDB(testDB)

	result, err := svc.Signup(signup("leaver"), "127.0.0.1", "test-agent")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(result.Tokens.RefreshToken))
	_, err = svc.Refresh(result.Tokens.RefreshToken, "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestUserAuthService_ChangePassword(t *testing.T) {
	svc, testDB := setupUserAuthTest(t)
	defer db.CleanupTestDB(testDB)

	result, err := svc.Signup(signup("changer"), "127.0.0.1", "test-agent")
	require.NoError(t, err)
	userID := result.User.ID

	err = svc.ChangePassword(userID, "wrong-password", "new-password-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(userID, "password123", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	require.NoError(t, svc.ChangePassword(userID, "password123", "new-password-1"))

	// Old refresh tokens are revoked on password change
	_, err = svc.Refresh(result.Tokens.RefreshToken, "127.0.0.1", "test-agent")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = svc.Login("changer@example.com", "new-password-1", "127.0.0.1", "test-agent")
	assert.NoError(t, err)
}

func TestUserAuthService_UpdateProfile(t *testing.T) {
	svc, testDB := setupUserAuthTest(t)
	defer db.CleanupTestDB(testDB)

	result, err := svc.Signup(signup("profile"), "127.0.0.1", "test-agent")
	require.NoError(t, err)

	newsletter := true
	updated, err := svc.UpdateProfile(result.User.ID, "Noor", "Ali", "+44 20 0000 0000", &newsletter)
	require.NoError(t, err)
	assert.Equal(t, "Noor", updated.FirstName)
	assert.True(t, updated.NewsletterSubscribed)

	_, err = svc.GetProfile(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
