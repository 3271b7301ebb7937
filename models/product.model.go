package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product statuses. "inactive" is a lifecycle state, not a deletion marker;
// removal from the catalog is a hard delete.
const (
	ProductStatusAvailable = "available"
	ProductStatusSold      = "sold"
	ProductStatusPending   = "pending"
	ProductStatusInactive  = "inactive"
)

var ProductCategories = []string{"Electronics", "Fashion", "Home", "Sports", "Books", "Automotive", "Other"}

var ProductConditions = []string{"Excellent", "Good", "Fair", "Poor"}

// ProductImage is one entry of the ordered images array. The first entry is
// the canonical display image.
type ProductImage struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id,omitempty"` // storage id (e.g. Cloudinary)
	Alt      string `json:"alt"`
}

type SellerInfo struct {
	Name   string  `gorm:"size:100;not null" json:"name"`
	Email  string  `gorm:"size:100;not null" json:"email"`
	Phone  string  `gorm:"size:20" json:"phone,omitempty"`
	UserID *string `gorm:"size:36" json:"user_id,omitempty"`
}

type Location struct {
	City    string `gorm:"size:100;not null" json:"city"`
	State   string `gorm:"size:100;not null" json:"state"`
	ZipCode string `gorm:"size:20" json:"zip_code,omitempty"`
}

type Product struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Title       string  `gorm:"size:100;not null" json:"title"`
	Description string  `gorm:"size:1000;not null" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Condition   string  `gorm:"size:20;not null" json:"condition"`
	Category    string  `gorm:"size:50;index:idx_products_category_status" json:"category"`
	Status      string  `gorm:"default:'available';size:20;index:idx_products_category_status" json:"status"`
	Views       int64   `gorm:"default:0" json:"views"`
	Featured    bool    `gorm:"default:false" json:"featured"`

	Images datatypes.JSONSlice[ProductImage] `json:"images"`
	Tags   datatypes.JSONSlice[string]       `json:"tags"`

	Seller   SellerInfo `gorm:"embedded;embeddedPrefix:seller_" json:"seller"`
	Location Location   `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	// Derived at read time: first image URL, or empty string. Not stored.
	ImageURL string `gorm:"-" json:"image_url"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// AfterFind projects the canonical display image for API consumers.
func (p *Product) AfterFind(tx *gorm.DB) error {
	if len(p.Images) > 0 {
		p.ImageURL = p.Images[0].URL
	}
	return nil
}

// Favorite links a user to a product they saved. The composite unique index
// gives favorites their set semantics.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID string    `gorm:"size:36;not null;uniqueIndex:idx_favorites_product_user" json:"product_id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_favorites_product_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
