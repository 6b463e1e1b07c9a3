package repository

import (
	"time"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"gorm.io/gorm"
)

type AdminUserRepository interface {
	Create(admin *model.AdminUser) error
	FindByID(id uint) (*model.AdminUser, error)
	FindByEmail(email string) (*model.AdminUser, error)
	Update(admin *model.AdminUser) error
	Count() (int64, error)
}

type AdminSessionRepository interface {
	Create(session *model.AdminSession) error
	FindActiveByTokenHash(tokenHash string) (*model.AdminSession, error)
	Deactivate(tokenHash string) error
	DeactivateOthers(adminUserID uint, keepTokenHash string) error
	DeleteExpiredForAdmin(adminUserID uint) error
	PurgeStale() (int64, error)
}

type adminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) Create(admin *model.AdminUser) error {
	logger.Debug("Creating admin user in database", map[string]interface{}{
		"email": admin.Email,
		"role":  admin.Role,
	})

	if err := r.db.Create(admin).Error; err != nil {
		logger.Error("Failed to create admin user in database", err, map[string]interface{}{
			"email": admin.Email,
		})
		return err
	}
	return nil
}

func (r *adminUserRepository) FindByID(id uint) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := r.db.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminUserRepository) FindByEmail(email string) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := r.db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminUserRepository) Update(admin *model.AdminUser) error {
	if err := r.db.Save(admin).Error; err != nil {
		logger.Error("Failed to update admin user in database", err, map[string]interface{}{
			"admin_user_id": admin.ID,
		})
		return err
	}
	return nil
}

func (r *adminUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.AdminUser{}).Count(&count).Error
	return count, err
}

type adminSessionRepository struct {
	db *gorm.DB
}

func NewAdminSessionRepository(db *gorm.DB) AdminSessionRepository {
	return &adminSessionRepository{db: db}
}

func (r *adminSessionRepository) Create(session *model.AdminSession) error {
	logger.Debug("Creating admin session in database", map[string]interface{}{
		"admin_user_id": session.AdminUserID,
		"expires_at":    session.ExpiresAt,
	})

	if err := r.db.Create(session).Error; err != nil {
		logger.Error("Failed to create admin session in database", err, map[string]interface{}{
			"admin_user_id": session.AdminUserID,
		})
		return err
	}
	return nil
}

// FindActiveByTokenHash loads an active, unexpired session with its admin
func (r *adminSessionRepository) FindActiveByTokenHash(tokenHash string) (*model.AdminSession, error) {
	var session model.AdminSession
	err := r.db.
		Where("token_hash = ? AND is_active = ? AND expires_at > ?", tokenHash, true, time.Now()).
		Preload("AdminUser").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *adminSessionRepository) Deactivate(tokenHash string) error {
	return r.db.Model(&model.AdminSession{}).
		Where("token_hash = ?", tokenHash).
		Update("is_active", false).Error
}

// DeactivateOthers invalidates every session of an admin except one,
// used when the admin changes their password
func (r *adminSessionRepository) DeactivateOthers(adminUserID uint, keepTokenHash string) error {
	return r.db.Model(&model.AdminSession{}).
		Where("admin_user_id = ? AND token_hash <> ?", adminUserID, keepTokenHash).
		Update("is_active", false).Error
}

func (r *adminSessionRepository) DeleteExpiredForAdmin(adminUserID uint) error {
	return r.db.
		Where("admin_user_id = ? AND expires_at <= ?", adminUserID, time.Now()).
		Delete(&model.AdminSession{}).Error
}

// PurgeStale hard-deletes expired and deactivated sessions across all admins
func (r *adminSessionRepository) PurgeStale() (int64, error) {
	result := r.db.
		Where("expires_at <= ? OR is_active = ?", time.Now(), false).
		Delete(&model.AdminSession{})
	if result.Error != nil {
		logger.Error("Failed to purge stale admin sessions", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
