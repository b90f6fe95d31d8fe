package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateListingRequest struct {
	AssetID uint  `json:"asset_id"`
	Price   int64 `json:"price"`
}

func (req *CreateListingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AssetID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Price, validation.Required, validation.Min(int64(1))),
	)
}

type PurchaseRequest struct {
	// Payment is the attached amount in smallest currency units. Settlement
	// rejects it when it cannot cover price plus fee.
	Payment int64 `json:"payment"`
}

func (req *PurchaseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Payment, validation.Required, validation.Min(int64(1))),
	)
}

type TransferRequest struct {
	FromID  uint `json:"from_id"`
	ToID    uint `json:"to_id"`
	AssetID uint `json:"asset_id"`
}

func (req *TransferRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FromID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.ToID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.AssetID, validation.Required, validation.Min(uint(1))),
	)
}
