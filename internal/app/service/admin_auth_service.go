package service

import (
	"errors"
	"time"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrSessionInvalid     = errors.New("session invalid")
	ErrAdminNotFound      = errors.New("admin user not found")
)

type AdminLoginResult struct {
	Token string           `json:"token"`
	Admin *model.AdminUser `json:"admin"`
}

// DashboardStats is the back-office landing page summary
type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	ActiveProducts int64           `json:"active_products"`
	TotalWatches   int64           `json:"total_watches"`
	TotalUsers     int64           `json:"total_users"`
	RecentProducts []model.Product `json:"recent_products"`
}

type AdminAuthService interface {
	Login(email, password, ip, userAgent string) (*AdminLoginResult, error)
	Authenticate(token string) (*model.AdminUser, error)
	Logout(token string) error
	ChangePassword(adminID uint, token, currentPassword, newPassword string) error
	GetProfile(adminID uint) (*model.AdminUser, error)
	UpdateProfile(adminID uint, firstName, lastName, avatarURL string) (*model.AdminUser, error)
	GetDashboardStats() (*DashboardStats, error)
}

type adminAuthService struct {
	adminRepo     repository.AdminUserRepository
	sessionRepo   repository.AdminSessionRepository
	productRepo   repository.ProductRepository
	watchRepo     repository.WatchRepository
	userRepo      repository.UserRepository
	jwtSecret     string
	sessionExpiry time.Duration
}

func NewAdminAuthService(
	adminRepo repository.AdminUserRepository,
	sessionRepo repository.AdminSessionRepository,
	productRepo repository.ProductRepository,
	watchRepo repository.WatchRepository,
	userRepo repository.UserRepository,
	jwtSecret string,
	sessionExpiry time.Duration,
) AdminAuthService {
	return &adminAuthService{
		adminRepo:     adminRepo,
		sessionRepo:   sessionRepo,
		productRepo:   productRepo,
		watchRepo:     watchRepo,
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		sessionExpiry: sessionExpiry,
	}
}

func (s *adminAuthService) Login(email, password, ip, userAgent string) (*AdminLoginResult, error) {
	logger.Info("Admin login attempt", map[string]interface{}{
		"email": email,
	})

	admin, err := s.adminRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !util.VerifyPassword(password, admin.PasswordHash) {
		logger.Warn("Admin login failed", map[string]interface{}{
			"email": email,
		})
		return nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := util.GenerateAdminToken(admin.ID, admin.Email, string(admin.Role), s.jwtSecret, s.sessionExpiry)
	if err != nil {
		return nil, err
	}

	// login is a natural point to shed this admin's dead sessions
	if err := s.sessionRepo.DeleteExpiredForAdmin(admin.ID); err != nil {
		logger.Warn("Failed to delete expired admin sessions", map[string]interface{}{
			"admin_user_id": admin.ID,
			"error":         err.Error(),
		})
	}

	session := &model.AdminSession{
		AdminUserID: admin.ID,
		TokenHash:   util.HashToken(token),
		IPAddress:   ip,
		UserAgent:   userAgent,
		IsActive:    true,
		ExpiresAt:   time.Now().Add(s.sessionExpiry),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	now := time.Now()
	admin.LastLoginAt = &now
	admin.LoginCount++
	if err := s.adminRepo.Update(admin); err != nil {
		logger.Warn("Failed to record admin login", map[string]interface{}{
			"admin_user_id": admin.ID,
			"error":         err.Error(),
		})
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"admin_user_id": admin.ID,
		"role":          admin.Role,
	})

	return &AdminLoginResult{Token: token, Admin: admin}, nil
}

// Authenticate verifies the JWT and its backing session row. Both must pass:
// a valid token whose session was deactivated is rejected.
func (s *adminAuthService) Authenticate(token string) (*model.AdminUser, error) {
	claims, err := util.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	if claims.TokenType != util.TokenTypeAdmin {
		return nil, ErrSessionInvalid
	}

	session, err := s.sessionRepo.FindActiveByTokenHash(util.HashToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}

	admin := session.AdminUser
	if admin == nil || !admin.IsActive {
		return nil, ErrAccountDisabled
	}
	return admin, nil
}

func (s *adminAuthService) Logout(token string) error {
	if err := s.sessionRepo.Deactivate(util.HashToken(token)); err != nil {
		logger.Error("Failed to deactivate admin session", err)
		return err
	}
	return nil
}

// ChangePassword rotates the admin's password and kills every other session
func (s *adminAuthService) ChangePassword(adminID uint, token, currentPassword, newPassword string) error {
	admin, err := s.adminRepo.FindByID(adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		return err
	}

	if !util.VerifyPassword(currentPassword, admin.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	admin.PasswordHash = hash
	admin.PasswordChangedAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}

	if err := s.sessionRepo.DeactivateOthers(adminID, util.HashToken(token)); err != nil {
		logger.Warn("Failed to deactivate other admin sessions", map[string]interface{}{
			"admin_user_id": adminID,
			"error":         err.Error(),
		})
	}

	logger.Info("Admin password changed", map[string]interface{}{
		"admin_user_id": adminID,
	})
	return nil
}

func (s *adminAuthService) GetProfile(adminID uint) (*model.AdminUser, error) {
	admin, err := s.adminRepo.FindByID(adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (s *adminAuthService) UpdateProfile(adminID uint, firstName, lastName, avatarURL string) (*model.AdminUser, error) {
	admin, err := s.adminRepo.FindByID(adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	admin.FirstName = firstName
	admin.LastName = lastName
	admin.AvatarURL = avatarURL
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *adminAuthService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalProducts, err = s.productRepo.Count(); err != nil {
		return nil, err
	}
	if stats.ActiveProducts, err = s.productRepo.CountActive(); err != nil {
		return nil, err
	}
	if stats.TotalWatches, err = s.watchRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, err
	}
	if stats.RecentProducts, err = s.productRepo.Recent(5); err != nil {
		return nil, err
	}

	return stats, nil
}
