package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transporteur is a haulage operator bringing stock into the warehouse
type Transporteur struct {
	Base
	DriverName  string       `gorm:"type:varchar(255);not null" json:"driver_name"`
	Plate       string       `gorm:"type:varchar(50);not null" json:"plate"`
	NationalID  string       `gorm:"type:varchar(50)" json:"national_id"`
	Phone       string       `gorm:"type:varchar(50)" json:"phone"`
	VehicleType string       `gorm:"type:varchar(100)" json:"vehicle_type"`
	Entrees     []StockEntry `gorm:"foreignKey:TransporteurID;constraint:OnDelete:CASCADE" json:"entrees,omitempty"`
}

// Livreur is a delivery driver
type Livreur struct {
	Base
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Phone string `gorm:"type:varchar(50)" json:"phone"`
}

// StockEntry records a stock-in movement ("entrée") of one product delivered
// by one transporteur. Removed with its product or transporteur.
type StockEntry struct {
	Base
	Ref            string          `gorm:"type:varchar(100);not null;index" json:"ref"`
	PurchasePrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"purchase_price"`
	Quantity       int             `gorm:"type:int;not null" json:"quantity"`
	BLNumber       string          `gorm:"type:varchar(100)" json:"bl_number"` // delivery note (bon de livraison)
	LoadDate       *time.Time      `json:"load_date"`
	UnloadDate     *time.Time      `json:"unload_date"`
	ShortageQty    int             `gorm:"type:int;default:0" json:"shortage_qty"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product        *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	TransporteurID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transporteur_id"`
	Transporteur   *Transporteur   `gorm:"foreignKey:TransporteurID;constraint:OnDelete:CASCADE" json:"transporteur,omitempty"`
}

func (StockEntry) TableName() string { return "entrees" }
