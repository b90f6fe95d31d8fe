package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// LedgerEvent is append-only: rows are inserted inside the listing and
// settlement transactions and are never updated or deleted. seller_id and
// buyer_id are indexed so per-principal history queries avoid a full scan.
type LedgerEvent struct {
	ID uint `gorm:"primaryKey"`

	Type     string `gorm:"not null"`
	ItemID   uint   `gorm:"not null;index"`
	AssetID  uint   `gorm:"not null"`
	Price    int64  `gorm:"not null"`
	SellerID uint   `gorm:"not null;index"`
	BuyerID  *uint  `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
}

func (LedgerEvent) TableName() string {
	return "ledger_events"
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) FindBySellerID(ctx context.Context, sellerID uint) ([]LedgerEvent, error) {
	var events []LedgerEvent

	result := d.db.WithContext(ctx).Where("seller_id = ?", sellerID).Order("id").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByBuyerID(ctx context.Context, buyerID uint) ([]LedgerEvent, error) {
	var events []LedgerEvent

	result := d.db.WithContext(ctx).Where("buyer_id = ?", buyerID).Order("id").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}
