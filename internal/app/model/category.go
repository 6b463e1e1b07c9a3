package model

import (
	"time"

	"gorm.io/gorm"
)

type CategoryType string

const (
	CategoryTypeMain        CategoryType = "main"
	CategoryTypeSubType     CategoryType = "sub_type"
	CategoryTypeSubGemstone CategoryType = "sub_gemstone"
	CategoryTypeSubMetal    CategoryType = "sub_metal"
	CategoryTypeSubEternity CategoryType = "sub_eternity"
)

// Category levels form a three-tier tree: 0 main, 1 group, 2 item.
// A child's level must be exactly parent.level + 1.
const (
	CategoryLevelMain  = 0
	CategoryLevelGroup = 1
	CategoryLevelItem  = 2
)

type Category struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description     string         `gorm:"type:text" json:"description"`
	ImageURL        string         `json:"image_url"`
	ParentID        *uint          `gorm:"index" json:"parent_id,omitempty"`
	Level           int            `gorm:"not null;default:0" json:"level"`
	CategoryType    CategoryType   `gorm:"type:varchar(20);default:'main'" json:"category_type"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	SortOrder       int            `gorm:"default:0" json:"sort_order"`
	MetaTitle       string         `json:"meta_title"`
	MetaDescription string         `gorm:"type:text" json:"meta_description"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`

	// populated by queries, not a column
	ProductCount int64 `gorm:"-" json:"product_count,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
