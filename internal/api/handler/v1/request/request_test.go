package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artmarkt/marketplace-api/internal/api/handler/v1/request"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := request.SignupRequest{
		Email:           "jane@example.com",
		Password:        "passw0rd123",
		ConfirmPassword: "passw0rd123",
		Name:            "Jane",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *request.SignupRequest)
	}{
		{
			name:   "missing email",
			mutate: func(r *request.SignupRequest) { r.Email = "" },
		},
		{
			name:   "malformed email",
			mutate: func(r *request.SignupRequest) { r.Email = "not-an-email" },
		},
		{
			name:   "password too short",
			mutate: func(r *request.SignupRequest) { r.Password = "pw1"; r.ConfirmPassword = "pw1" },
		},
		{
			name:   "password without digits",
			mutate: func(r *request.SignupRequest) { r.Password = "passwords"; r.ConfirmPassword = "passwords" },
		},
		{
			name:   "password without letters",
			mutate: func(r *request.SignupRequest) { r.Password = "12345678"; r.ConfirmPassword = "12345678" },
		},
		{
			name:   "confirm mismatch",
			mutate: func(r *request.SignupRequest) { r.ConfirmPassword = "different1" },
		},
		{
			name:   "name too short",
			mutate: func(r *request.SignupRequest) { r.Name = "J" },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestMintAssetRequestValidate(t *testing.T) {
	assert.NoError(t, (&request.MintAssetRequest{URI: "https://meta.example.com/1.json"}).Validate())
	assert.Error(t, (&request.MintAssetRequest{}).Validate())
	assert.Error(t, (&request.MintAssetRequest{URI: "::not a url::"}).Validate())
}

func TestSetApprovalRequestValidate(t *testing.T) {
	approved := true
	assert.NoError(t, (&request.SetApprovalRequest{OperatorID: 2, Approved: &approved}).Validate())

	revoked := false
	assert.NoError(t, (&request.SetApprovalRequest{OperatorID: 2, Approved: &revoked}).Validate())

	assert.Error(t, (&request.SetApprovalRequest{OperatorID: 0, Approved: &approved}).Validate())
	assert.Error(t, (&request.SetApprovalRequest{OperatorID: 2}).Validate())
}

func TestCreateListingRequestValidate(t *testing.T) {
	assert.NoError(t, (&request.CreateListingRequest{AssetID: 1, Price: 100}).Validate())
	assert.Error(t, (&request.CreateListingRequest{AssetID: 0, Price: 100}).Validate())
	assert.Error(t, (&request.CreateListingRequest{AssetID: 1, Price: 0}).Validate())
	assert.Error(t, (&request.CreateListingRequest{AssetID: 1, Price: -5}).Validate())
}

func TestPurchaseRequestValidate(t *testing.T) {
	assert.NoError(t, (&request.PurchaseRequest{Payment: 101}).Validate())
	assert.Error(t, (&request.PurchaseRequest{Payment: 0}).Validate())
	assert.Error(t, (&request.PurchaseRequest{Payment: -1}).Validate())
}

func TestTransferRequestValidate(t *testing.T) {
	assert.NoError(t, (&request.TransferRequest{FromID: 1, ToID: 2, AssetID: 3}).Validate())
	assert.Error(t, (&request.TransferRequest{FromID: 0, ToID: 2, AssetID: 3}).Validate())
	assert.Error(t, (&request.TransferRequest{FromID: 1, ToID: 0, AssetID: 3}).Validate())
	assert.Error(t, (&request.TransferRequest{FromID: 1, ToID: 2, AssetID: 0}).Validate())
}

func TestDepositRequestValidate(t *testing.T) {
	assert.NoError(t, (&request.DepositRequest{Amount: 500, PaymentMethodID: "pm_card_visa"}).Validate())
	assert.Error(t, (&request.DepositRequest{Amount: 0, PaymentMethodID: "pm_card_visa"}).Validate())
	assert.Error(t, (&request.DepositRequest{Amount: 500}).Validate())
}
