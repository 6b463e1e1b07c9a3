package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                     uint           `gorm:"primarykey" json:"id"`
	Email                  string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash           string         `gorm:"not null" json:"-"`
	FirstName              string         `gorm:"not null" json:"first_name"`
	LastName               string         `gorm:"not null" json:"last_name"`
	Phone                  string         `json:"phone"`
	NewsletterSubscribed   bool           `gorm:"default:false" json:"newsletter_subscribed"`
	EmailVerified          bool           `gorm:"default:false" json:"email_verified"`
	VerificationToken      string         `json:"-"`
	VerificationExpiresAt  *time.Time     `json:"-"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`

	Favorites []Favorite `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// RefreshToken is a persisted storefront refresh token, stored by hash
type RefreshToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	TokenHash string    `gorm:"uniqueIndex;not null" json:"-"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_product" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
