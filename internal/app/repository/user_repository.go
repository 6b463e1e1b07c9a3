package repository

import (
	"time"

	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	ExistsByEmail(email string) (bool, error)
	Update(user *model.User) error
	Count() (int64, error)
}

type RefreshTokenRepository interface {
	Create(token *model.RefreshToken) error
	FindValidByHash(tokenHash string) (*model.RefreshToken, error)
	Revoke(tokenHash string) error
	RevokeAllForUser(userID uint) error
	RevokeOthers(userID uint, keepTokenHash string) error
	PurgeStale() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(token *model.RefreshToken) error {
	if err := r.db.Create(token).Error; err != nil {
		logger.Error("Failed to create refresh token in database", err, map[string]interface{}{
			"user_id": token.UserID,
		})
		return err
	}
	return nil
}

// FindValidByHash loads an unrevoked, unexpired refresh token by its hash
func (r *refreshTokenRepository) FindValidByHash(tokenHash string) (*model.RefreshToken, error) {
	var token model.RefreshToken
	err := r.db.
		Where("token_hash = ? AND revoked = ? AND expires_at > ?", tokenHash, false, time.Now()).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) Revoke(tokenHash string) error {
	return r.db.Model(&model.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (r *refreshTokenRepository) RevokeAllForUser(userID uint) error {
	return r.db.Model(&model.RefreshToken{}).
		Where("user_id = ?", userID).
		Update("revoked", true).Error
}

// RevokeOthers revokes every refresh token of a user except one,
// used when the user changes their password
func (r *refreshTokenRepository) RevokeOthers(userID uint, keepTokenHash string) error {
	return r.db.Model(&model.RefreshToken{}).
		Where("user_id = ? AND token_hash <> ?", userID, keepTokenHash).
		Update("revoked", true).Error
}

// PurgeStale hard-deletes expired and revoked refresh tokens
func (r *refreshTokenRepository) PurgeStale() (int64, error) {
	result := r.db.
		Where("expires_at <= ? OR revoked = ?", time.Now(), true).
		Delete(&model.RefreshToken{})
	if result.Error != nil {
		logger.Error("Failed to purge stale refresh tokens", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
