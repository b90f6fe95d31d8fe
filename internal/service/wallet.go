package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/artmarkt/marketplace-api/internal/config"
	"github.com/artmarkt/marketplace-api/internal/domain"
)

var (
	ErrPaymentNotSucceeded = errors.New("payment was not confirmed by the payment provider")
)

type WalletUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	CreditBalance(ctx context.Context, userID uint, amount int64) error
}

// WalletService converts card payments into ledger credit. It is the only
// component that talks to Stripe; the settlement engine works purely on the
// internal balances it feeds.
type WalletService struct {
	repo     WalletUserRepository
	conf     *config.StripeConfig
	payments *client.API
}

func NewWalletService(repo WalletUserRepository, conf *config.StripeConfig) *WalletService {
	sc := &client.API{}
	sc.Init(conf.SecretKey, nil)

	return &WalletService{
		repo:     repo,
		conf:     conf,
		payments: sc,
	}
}

// Deposit charges the user's payment method for amount smallest currency
// units and credits the balance once the charge succeeds.
func (s *WalletService) Deposit(ctx context.Context, userID uint, amount int64, paymentMethodID string) (domain.User, error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(s.conf.Currency),
		PaymentMethod: stripe.String(paymentMethodID),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx

	intent, err := s.payments.PaymentIntents.New(params)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.payments.PaymentIntents.New -> %w", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return domain.User{}, ErrPaymentNotSucceeded
	}

	if err := s.repo.CreditBalance(ctx, userID, amount); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.CreditBalance -> %w", err)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}
