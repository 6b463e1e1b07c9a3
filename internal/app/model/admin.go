package model

import (
	"time"

	"gorm.io/gorm"
)

type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super_admin"
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleEditor     AdminRole = "editor"
)

type AdminUser struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	Email             string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string         `gorm:"not null" json:"-"`
	FirstName         string         `gorm:"not null" json:"first_name"`
	LastName          string         `gorm:"not null" json:"last_name"`
	Role              AdminRole      `gorm:"type:varchar(20);default:'editor'" json:"role"`
	AvatarURL         string         `json:"avatar_url"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt       *time.Time     `json:"last_login_at,omitempty"`
	LoginCount        int            `gorm:"default:0" json:"login_count"`
	PasswordChangedAt *time.Time     `json:"password_changed_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Sessions []AdminSession `gorm:"foreignKey:AdminUserID" json:"-"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// AdminSession is the server-side record behind an admin JWT.
// The JWT alone is never sufficient; the row must be active and unexpired.
type AdminSession struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	AdminUserID uint      `gorm:"index;not null" json:"admin_user_id"`
	TokenHash   string    `gorm:"uniqueIndex;not null" json:"-"`
	IPAddress   string    `json:"ip_address"`
	UserAgent   string    `json:"user_agent"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	ExpiresAt   time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	AdminUser *AdminUser `gorm:"foreignKey:AdminUserID" json:"admin_user,omitempty"`
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}

// Expired reports whether the session's expiry is in the past
func (s *AdminSession) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
