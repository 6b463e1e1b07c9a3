package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RingType is a style taxonomy for rings (solitaire, halo, signet, ...)
type RingType struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (RingType) TableName() string {
	return "ring_types"
}

type Gemstone struct {
	ID            uint             `gorm:"primarykey" json:"id"`
	Name          string           `gorm:"not null" json:"name"`
	Slug          string           `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string           `gorm:"type:text" json:"description"`
	Color         string           `json:"color"`
	Hardness      string           `json:"hardness"`
	PricePerCarat *decimal.Decimal `gorm:"type:decimal(10,2)" json:"price_per_carat,omitempty"`
	ImageURL      string           `json:"image_url"`
	IsActive      bool             `gorm:"default:true" json:"is_active"`
	SortOrder     int              `gorm:"default:0" json:"sort_order"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (Gemstone) TableName() string {
	return "gemstones"
}

// StoneType is the coarser sibling of Gemstone (diamond, coloured stone, pearl)
type StoneType struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (StoneType) TableName() string {
	return "stone_types"
}

type Metal struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Slug            string          `gorm:"uniqueIndex;not null" json:"slug"`
	Description     string          `gorm:"type:text" json:"description"`
	ColorCode       string          `gorm:"type:varchar(7)" json:"color_code"`
	PriceMultiplier decimal.Decimal `gorm:"type:decimal(10,2);default:1" json:"price_multiplier"`
	ImageURL        string          `json:"image_url"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	SortOrder       int             `gorm:"default:0" json:"sort_order"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Metal) TableName() string {
	return "metals"
}
