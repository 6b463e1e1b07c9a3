package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID               uint             `gorm:"primarykey" json:"id"`
	Name             string           `gorm:"not null" json:"name"`
	Slug             string           `gorm:"uniqueIndex;not null" json:"slug"`
	SKU              string           `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Description      string           `gorm:"type:text" json:"description"`
	ShortDescription string           `gorm:"type:text" json:"short_description"`
	BasePrice        decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"base_price"`
	SalePrice        *decimal.Decimal `gorm:"type:decimal(10,2)" json:"sale_price,omitempty"`
	Currency         string           `gorm:"type:varchar(3);default:'GBP'" json:"currency"`
	CategoryID       uint             `gorm:"index;not null" json:"category_id"`
	CollectionID     *uint            `gorm:"index" json:"collection_id,omitempty"`
	IsActive         bool             `gorm:"default:true" json:"is_active"`
	IsFeatured       bool             `gorm:"default:false" json:"is_featured"`
	InStock          bool             `gorm:"default:true" json:"in_stock"`
	StockQuantity    int              `gorm:"default:0" json:"stock_quantity"`
	Weight           *decimal.Decimal `gorm:"type:decimal(10,2)" json:"weight,omitempty"`
	Dimensions       string           `json:"dimensions"`
	CareInstructions string           `gorm:"type:text" json:"care_instructions"`
	WarrantyInfo     string           `gorm:"type:text" json:"warranty_info"`
	MetaTitle        string           `json:"meta_title"`
	MetaDescription  string           `gorm:"type:text" json:"meta_description"`
	SortOrder        int              `gorm:"default:0" json:"sort_order"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`

	Category   *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Collection *Collection `gorm:"foreignKey:CollectionID" json:"collection,omitempty"`

	Images   []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Videos   []ProductVideo   `gorm:"foreignKey:ProductID" json:"videos,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`

	RingTypes []RingType `gorm:"many2many:product_ring_types;" json:"ring_types,omitempty"`
	Gemstones []Gemstone `gorm:"many2many:product_gemstones;" json:"gemstones,omitempty"`
	Metals    []Metal    `gorm:"many2many:product_metals;" json:"metals,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

type ProductImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	AltText   string    `json:"alt_text"`
	Title     string    `json:"title"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

type ProductVideo struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	VideoURL  string    `gorm:"not null" json:"video_url"`
	Title     string    `json:"title"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductVideo) TableName() string {
	return "product_videos"
}

type ProductVariant struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	ProductID       uint            `gorm:"index;not null" json:"product_id"`
	VariantName     string          `gorm:"not null" json:"variant_name"`
	SKU             string          `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	PriceAdjustment decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"price_adjustment"`
	MetalType       string          `json:"metal_type"`
	MetalColor      string          `json:"metal_color"`
	Size            string          `json:"size"`
	GemstoneType    string          `json:"gemstone_type"`
	GemstoneCarat   string          `json:"gemstone_carat"`
	StockQuantity   int             `gorm:"default:0" json:"stock_quantity"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// ProductSize is a category-scoped size option ("K", "52", "7 inch")
type ProductSize struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CategoryID uint      `gorm:"index;not null" json:"category_id"`
	SizeName   string    `gorm:"not null" json:"size_name"`
	SizeValue  string    `json:"size_value"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	SortOrder  int       `gorm:"default:0" json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (ProductSize) TableName() string {
	return "product_sizes"
}

// EffectivePrice returns the sale price when set, otherwise the base price
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.BasePrice
}

// PrimaryImageURL returns the primary image, falling back to the first image
func (p *Product) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.ImageURL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].ImageURL
	}
	return ""
}
