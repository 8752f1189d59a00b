package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Brand groups categories and products under one commercial mark
type Brand struct {
	Base
	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	Categories []Category `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	Products   []Product  `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

// Category belongs to exactly one Brand. Deleting the brand removes the
// category and, transitively, its products (database-enforced cascade).
type Category struct {
	Base
	Name     string    `gorm:"type:varchar(255);not null" json:"name"`
	BrandID  uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id"`
	Brand    *Brand    `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE" json:"brand,omitempty"`
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

// Product is a sellable article identified by a unique commercial reference
type Product struct {
	Base
	Ref               string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"ref"`
	Label             string          `gorm:"type:varchar(255);not null" json:"label"`
	PurchasePriceUnit decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"purchase_price_unit"`
	SalePriceUnit     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sale_price_unit"`
	PurchasePriceCase decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"purchase_price_case"`
	SalePriceCase     decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"sale_price_case"`
	Weight            decimal.Decimal `gorm:"type:decimal(10,3);default:0" json:"weight"`
	UnitsPerCase      int             `gorm:"type:int;default:1" json:"units_per_case"`
	Active            bool            `gorm:"default:true" json:"active"`
	BrandID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"brand_id"`
	Brand             *Brand          `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE" json:"brand,omitempty"`
	CategoryID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Category          *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
}

// Promotion offers OfferedQty of one product for every PromotedQty bought of
// another. Both product references cascade on product deletion.
type Promotion struct {
	Base
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product          *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	OfferedProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"offered_product_id"`
	OfferedProduct   *Product  `gorm:"foreignKey:OfferedProductID;constraint:OnDelete:CASCADE" json:"offered_product,omitempty"`
	PromotedQty      int       `gorm:"type:int;not null" json:"promoted_qty"`
	OfferedQty       int       `gorm:"type:int;not null" json:"offered_qty"`
	Active           bool      `gorm:"default:true" json:"active"`
}
