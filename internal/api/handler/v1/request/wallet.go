package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type DepositRequest struct {
	Amount          int64  `json:"amount"`
	PaymentMethodID string `json:"payment_method_id"`
}

func (req *DepositRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.PaymentMethodID, validation.Required),
	)
}
