package domain

import "time"

// Listing is one marketplace item. ItemIDs are dense sequential integers in
// creation order. Price is in smallest currency units and immutable; Sold
// flips false to true exactly once and is never reversed.
type Listing struct {
	ItemID    uint      `json:"item_id"`
	AssetID   uint      `json:"asset_id"`
	Price     int64     `json:"price"`
	SellerID  uint      `json:"seller_id"`
	Sold      bool      `json:"sold"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalPrice is the one fee rule for the whole service: price plus
// price*feePercent/100, with the fee truncated to whole smallest currency
// units. Every caller (settlement, quoting, display) must go through this
// function so that settled and displayed amounts never diverge.
func TotalPrice(price, feePercent int64) int64 {
	return price + price*feePercent/100
}
