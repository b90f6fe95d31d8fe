package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type MintAssetRequest struct {
	URI string `json:"uri"`
}

func (req *MintAssetRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.URI, validation.Required, is.URL),
	)
}

type SetApprovalRequest struct {
	OperatorID uint  `json:"operator_id"`
	Approved   *bool `json:"approved"`
}

func (req *SetApprovalRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.OperatorID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Approved, validation.NotNil),
	)
}
