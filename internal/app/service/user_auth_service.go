package service

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/util"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SignupInput struct {
	Email                string
	Password             string
	FirstName            string
	LastName             string
	Phone                string
	NewsletterSubscribed bool
}

type AuthResult struct {
	User   *model.User     `json:"user"`
	Tokens *util.TokenPair `json:"tokens"`
}

type UserAuthService interface {
	Signup(input SignupInput, ip, userAgent string) (*AuthResult, error)
	Login(email, password, ip, userAgent string) (*AuthResult, error)
	Refresh(refreshToken, ip, userAgent string) (*util.TokenPair, error)
	Logout(refreshToken string) error
	GetProfile(userID uint) (*model.User, error)
	UpdateProfile(userID uint, firstName, lastName, phone string, newsletter *bool) (*model.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
}

type userAuthService struct {
	userRepo      repository.UserRepository
	tokenRepo     repository.RefreshTokenRepository
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewUserAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) UserAuthService {
	return &userAuthService{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *userAuthService) issueTokens(user *model.User, ip, userAgent string) (*util.TokenPair, error) {
	tokens, err := util.GenerateTokenPair(user.ID, user.Email, "customer", s.jwtSecret, s.accessExpiry, s.refreshExpiry)
	if err != nil {
		return nil, err
	}

	record := &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: util.HashToken(tokens.RefreshToken),
		UserAgent: userAgent,
		IPAddress: ip,
		ExpiresAt: time.Now().Add(s.refreshExpiry),
	}
	if err := s.tokenRepo.Create(record); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *userAuthService) Signup(input SignupInput, ip, userAgent string) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	verificationExpiry := time.Now().Add(24 * time.Hour)
	user := &model.User{
		Email:                 email,
		PasswordHash:          hash,
		FirstName:             input.FirstName,
		LastName:              input.LastName,
		Phone:                 input.Phone,
		NewsletterSubscribed:  input.NewsletterSubscribed,
		VerificationToken:     uuid.NewString(),
		VerificationExpiresAt: &verificationExpiry,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
	})
	// mail delivery is not wired up yet; the token is persisted so the
	// verification flow can be completed once a sender exists
	logger.Info("Verification email skipped, no mail sender configured", map[string]interface{}{
		"user_id": user.ID,
	})

	tokens, err := s.issueTokens(user, ip, userAgent)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

func (s *userAuthService) Login(email, password, ip, userAgent string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !util.VerifyPassword(password, user.PasswordHash) {
		logger.Warn("User login failed", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user, ip, userAgent)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
	})
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Refresh rotates the refresh token: the presented token is revoked and a
// fresh pair is issued, so a replayed token fails on its second use.
func (s *userAuthService) Refresh(refreshToken, ip, userAgent string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if claims.TokenType != util.TokenTypeRefresh {
		return nil, ErrInvalidRefreshToken
	}

	hash := util.HashToken(refreshToken)
	record, err := s.tokenRepo.FindValidByHash(hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	user, err := s.userRepo.FindByID(record.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if err := s.tokenRepo.Revoke(hash); err != nil {
		return nil, err
	}

	return s.issueTokens(user, ip, userAgent)
}

func (s *userAuthService) Logout(refreshToken string) error {
	return s.tokenRepo.Revoke(util.HashToken(refreshToken))
}

func (s *userAuthService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userAuthService) UpdateProfile(userID uint, firstName, lastName, phone string, newsletter *bool) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Phone = phone
	if newsletter != nil {
		user.NewsletterSubscribed = *newsletter
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword rotates the password and revokes every refresh token, so
// other devices have to sign in again.
func (s *userAuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !util.VerifyPassword(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllForUser(userID); err != nil {
		logger.Warn("Failed to revoke refresh tokens after password change", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	logger.Info("User password changed", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
