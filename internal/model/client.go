package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ville is a city grouping sectors and clients
type Ville struct {
	Base
	Name     string    `gorm:"type:varchar(255);not null" json:"name"`
	Secteurs []Secteur `gorm:"foreignKey:VilleID;constraint:OnDelete:CASCADE" json:"secteurs,omitempty"`
	Clients  []Client  `gorm:"foreignKey:VilleID;constraint:OnDelete:SET NULL" json:"clients,omitempty"`
}

// Secteur is a delivery sector within a city
type Secteur struct {
	Base
	Name    string    `gorm:"type:varchar(255);not null" json:"name"`
	VilleID uuid.UUID `gorm:"type:uuid;not null;index" json:"ville_id"`
	Ville   *Ville    `gorm:"foreignKey:VilleID;constraint:OnDelete:CASCADE" json:"ville,omitempty"`
}

// Commercial is a sales agent identified by a unique code
type Commercial struct {
	Base
	Code     string   `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	FullName string   `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone    string   `gorm:"type:varchar(50)" json:"phone"`
	Clients  []Client `gorm:"foreignKey:CommercialID;constraint:OnDelete:SET NULL" json:"clients,omitempty"`
}

// Client is a customer account. Its city/sector/agent references are
// detached (SET NULL) rather than cascaded when the parent is removed,
// so client history survives reorganizations.
type Client struct {
	Base
	Code            string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	FullName        string          `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone           string          `gorm:"type:varchar(50)" json:"phone"`
	SpecialDiscount decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"special_discount"`
	Percentage      decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"percentage"`
	VilleID         *uuid.UUID      `gorm:"type:uuid;index" json:"ville_id"`
	Ville           *Ville          `gorm:"foreignKey:VilleID;constraint:OnDelete:SET NULL" json:"ville,omitempty"`
	SecteurID       *uuid.UUID      `gorm:"type:uuid;index" json:"secteur_id"`
	Secteur         *Secteur        `gorm:"foreignKey:SecteurID;constraint:OnDelete:SET NULL" json:"secteur,omitempty"`
	CommercialID    *uuid.UUID      `gorm:"type:uuid;index" json:"commercial_id"`
	Commercial      *Commercial     `gorm:"foreignKey:CommercialID;constraint:OnDelete:SET NULL" json:"commercial,omitempty"`
}
