package response

import "github.com/artmarkt/marketplace-api/internal/domain"

// MarketInfo exposes the deployment constants of the marketplace plus the
// current item count.
type MarketInfo struct {
	FeePercent      int64 `json:"fee_percent"`
	FeeAccountID    uint  `json:"fee_account_id"`
	EscrowAccountID uint  `json:"escrow_account_id"`
	ItemCount       int64 `json:"item_count"`
}

type TotalPrice struct {
	ItemID     uint  `json:"item_id"`
	Price      int64 `json:"price"`
	FeePercent int64 `json:"fee_percent"`
	TotalPrice int64 `json:"total_price"`
}

type Approval struct {
	OwnerID    uint `json:"owner_id"`
	OperatorID uint `json:"operator_id"`
	AllAssets  bool `json:"all_assets"`
}

type Events struct {
	Events []domain.LedgerEvent `json:"events"`
}
