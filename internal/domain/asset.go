package domain

import "time"

// Asset is a non-fungible digital asset. IDs are dense sequential integers
// assigned at mint time; the URI points at off-chain metadata and never
// changes after creation. Assets are never destroyed.
type Asset struct {
	ID        uint      `json:"id"`
	OwnerID   uint      `json:"owner_id"`
	URI       string    `json:"uri"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Approval grants the operator the right to move any asset the owner holds,
// current and future. It is created and revoked explicitly by the owner and
// never implies ownership.
type Approval struct {
	OwnerID    uint `json:"owner_id"`
	OperatorID uint `json:"operator_id"`
	AllAssets  bool `json:"all_assets"`
}
