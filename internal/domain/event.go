package domain

import "time"

type LedgerEventType string

const (
	EventOffered LedgerEventType = "Offered"
	EventBought  LedgerEventType = "Bought"
)

// LedgerEvent is one row of the append-only audit log. Rows are written in
// settlement order and are immutable once appended. BuyerID is nil for
// Offered events.
type LedgerEvent struct {
	ID        uint            `json:"id"`
	Type      LedgerEventType `json:"type"`
	ItemID    uint            `json:"item_id"`
	AssetID   uint            `json:"asset_id"`
	Price     int64           `json:"price"`
	SellerID  uint            `json:"seller_id"`
	BuyerID   *uint           `json:"buyer_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
