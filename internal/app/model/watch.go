package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WatchGender string

const (
	WatchGenderMen      WatchGender = "men"
	WatchGenderWomen    WatchGender = "women"
	WatchGenderUnisex   WatchGender = "unisex"
	WatchGenderChildren WatchGender = "children"
)

type WatchType string

const (
	WatchTypeAnalog  WatchType = "analog"
	WatchTypeDigital WatchType = "digital"
	WatchTypeHybrid  WatchType = "hybrid"
	WatchTypeSmart   WatchType = "smart"
)

type WatchStyle string

const (
	WatchStyleDress    WatchStyle = "dress"
	WatchStyleSport    WatchStyle = "sport"
	WatchStyleCasual   WatchStyle = "casual"
	WatchStyleLuxury   WatchStyle = "luxury"
	WatchStyleDiving   WatchStyle = "diving"
	WatchStyleAviation WatchStyle = "aviation"
	WatchStyleMilitary WatchStyle = "military"
)

type WatchAvailability string

const (
	WatchInStock      WatchAvailability = "in_stock"
	WatchLowStock     WatchAvailability = "low_stock"
	WatchOutOfStock   WatchAvailability = "out_of_stock"
	WatchPreOrder     WatchAvailability = "pre_order"
	WatchDiscontinued WatchAvailability = "discontinued"
)

type WatchImageType string

const (
	WatchImageProduct   WatchImageType = "product"
	WatchImageLifestyle WatchImageType = "lifestyle"
	WatchImageDetail    WatchImageType = "detail"
	WatchImagePackaging WatchImageType = "packaging"
)

type WatchBrand struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"uniqueIndex;not null" json:"name"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string         `gorm:"type:text" json:"description"`
	LogoURL       string         `json:"logo_url"`
	FoundedYear   *int           `json:"founded_year,omitempty"`
	CountryOrigin string         `json:"country_origin"`
	WebsiteURL    string         `json:"website_url"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	SortOrder     int            `gorm:"default:0" json:"sort_order"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Collections []WatchCollection `gorm:"foreignKey:BrandID" json:"collections,omitempty"`
}

func (WatchBrand) TableName() string {
	return "watch_brands"
}

type WatchCollection struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	BrandID        uint           `gorm:"index;not null;uniqueIndex:idx_watch_collections_brand_slug" json:"brand_id"`
	Name           string         `gorm:"not null" json:"name"`
	Slug           string         `gorm:"not null;uniqueIndex:idx_watch_collections_brand_slug" json:"slug"`
	Description    string         `gorm:"type:text" json:"description"`
	ImageURL       string         `json:"image_url"`
	TargetAudience WatchGender    `gorm:"type:varchar(10);default:'unisex'" json:"target_audience"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	IsFeatured     bool           `gorm:"default:false" json:"is_featured"`
	SortOrder      int            `gorm:"default:0" json:"sort_order"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Brand   *WatchBrand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Watches []Watch     `gorm:"foreignKey:CollectionID" json:"watches,omitempty"`

	// populated by queries, not a column
	WatchCount int64 `gorm:"-" json:"watch_count,omitempty"`
}

func (WatchCollection) TableName() string {
	return "watch_collections"
}

type Watch struct {
	ID              uint              `gorm:"primarykey" json:"id"`
	BrandID         uint              `gorm:"index;not null" json:"brand_id"`
	CollectionID    *uint             `gorm:"index" json:"collection_id,omitempty"`
	Name            string            `gorm:"not null" json:"name"`
	Slug            string            `gorm:"uniqueIndex;not null" json:"slug"`
	SKU             string            `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	ModelNumber     string            `gorm:"uniqueIndex" json:"model_number"`
	Description     string            `gorm:"type:text" json:"description"`
	BasePrice       decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"base_price"`
	SalePrice       *decimal.Decimal  `gorm:"type:decimal(10,2)" json:"sale_price,omitempty"`
	Currency        string            `gorm:"type:varchar(3);default:'GBP'" json:"currency"`
	Gender          WatchGender       `gorm:"type:varchar(10);default:'unisex'" json:"gender"`
	WatchType       WatchType         `gorm:"type:varchar(10);default:'analog'" json:"watch_type"`
	Style           WatchStyle        `gorm:"type:varchar(10)" json:"style"`
	WarrantyYears   int               `gorm:"default:2" json:"warranty_years"`
	Availability    WatchAvailability `gorm:"type:varchar(15);default:'in_stock'" json:"availability_status"`
	StockQuantity   int               `gorm:"default:0" json:"stock_quantity"`
	IsActive        bool              `gorm:"default:true" json:"is_active"`
	IsFeatured      bool              `gorm:"default:false" json:"is_featured"`
	MetaTitle       string            `json:"meta_title"`
	MetaDescription string            `gorm:"type:text" json:"meta_description"`
	SortOrder       int               `gorm:"default:0" json:"sort_order"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`

	Brand         *WatchBrand         `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Collection    *WatchCollection    `gorm:"foreignKey:CollectionID" json:"collection,omitempty"`
	Images        []WatchImage        `gorm:"foreignKey:WatchID" json:"images,omitempty"`
	Specification *WatchSpecification `gorm:"foreignKey:WatchID" json:"specification,omitempty"`
	Variants      []WatchVariant      `gorm:"foreignKey:WatchID" json:"variants,omitempty"`
}

func (Watch) TableName() string {
	return "watches"
}

type WatchImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	WatchID   uint           `gorm:"index;not null" json:"watch_id"`
	ImageURL  string         `gorm:"not null" json:"image_url"`
	ImageType WatchImageType `gorm:"type:varchar(10);default:'product'" json:"image_type"`
	AltText   string         `json:"alt_text"`
	IsPrimary bool           `gorm:"default:false" json:"is_primary"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (WatchImage) TableName() string {
	return "watch_images"
}

// WatchSpecification is the 1:1 technical sheet for a watch
type WatchSpecification struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	WatchID         uint      `gorm:"uniqueIndex;not null" json:"watch_id"`
	Movement        string    `json:"movement"`
	CaseMaterial    string    `json:"case_material"`
	CaseDiameter    string    `json:"case_diameter"`
	CaseThickness   string    `json:"case_thickness"`
	DialColor       string    `json:"dial_color"`
	CrystalMaterial string    `json:"crystal_material"`
	StrapMaterial   string    `json:"strap_material"`
	StrapColor      string    `json:"strap_color"`
	WaterResistance string    `json:"water_resistance"`
	PowerReserve    string    `json:"power_reserve"`
	Functions       string    `gorm:"type:text" json:"functions"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (WatchSpecification) TableName() string {
	return "watch_specifications"
}

type WatchVariant struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	WatchID         uint            `gorm:"index;not null" json:"watch_id"`
	VariantName     string          `gorm:"not null" json:"variant_name"`
	SKU             string          `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	PriceAdjustment decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"price_adjustment"`
	StrapMaterial   string          `json:"strap_material"`
	StrapColor      string          `json:"strap_color"`
	DialColor       string          `json:"dial_color"`
	CaseSize        string          `json:"case_size"`
	StockQuantity   int             `gorm:"default:0" json:"stock_quantity"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (WatchVariant) TableName() string {
	return "watch_variants"
}
