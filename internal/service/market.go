package service

import (
	"context"
	"fmt"

	"github.com/artmarkt/marketplace-api/internal/domain"
	"github.com/artmarkt/marketplace-api/internal/repository"
)

var (
	ErrInvalidPrice        = repository.ErrInvalidPrice
	ErrNotApproved         = repository.ErrNotApproved
	ErrListingNotFound     = repository.ErrListingNotFound
	ErrAlreadySold         = repository.ErrAlreadySold
	ErrInsufficientPayment = repository.ErrInsufficientPayment
	ErrInsufficientFunds   = repository.ErrInsufficientFunds
)

type MarketRepository interface {
	CreateListing(ctx context.Context, listing domain.Listing, escrowAccountID uint) (domain.Listing, error)
	FindListingByID(ctx context.Context, itemID uint) (domain.Listing, error)
	FindAllListings(ctx context.Context) ([]domain.Listing, error)
	CountListings(ctx context.Context) (int64, error)
	Settle(ctx context.Context, itemID, buyerID uint, payment, feePercent int64, feeAccountID, escrowAccountID uint) (domain.Listing, error)
	FindEventsBySellerID(ctx context.Context, sellerID uint) ([]domain.LedgerEvent, error)
	FindEventsByBuyerID(ctx context.Context, buyerID uint) ([]domain.LedgerEvent, error)
}

// MarketService is the listing ledger and settlement engine. The fee
// parameters and the two system accounts (fee recipient and escrow holder)
// are fixed at startup.
type MarketService struct {
	repo MarketRepository

	feePercent      int64
	feeAccountID    uint
	escrowAccountID uint
}

func NewMarketService(repo MarketRepository, feePercent int64, feeAccountID, escrowAccountID uint) *MarketService {
	return &MarketService{
		repo:            repo,
		feePercent:      feePercent,
		feeAccountID:    feeAccountID,
		escrowAccountID: escrowAccountID,
	}
}

func (s *MarketService) FeePercent() int64 {
	return s.feePercent
}

func (s *MarketService) FeeAccountID() uint {
	return s.feeAccountID
}

func (s *MarketService) EscrowAccountID() uint {
	return s.escrowAccountID
}

// CreateListing offers an asset for sale. The asset moves into escrow and an
// Offered event is appended, all inside one commit; a rejected listing
// leaves no trace.
func (s *MarketService) CreateListing(ctx context.Context, sellerID, assetID uint, price int64) (domain.Listing, error) {
	if price <= 0 {
		return domain.Listing{}, ErrInvalidPrice
	}

	created, err := s.repo.CreateListing(ctx, domain.Listing{
		AssetID:  assetID,
		Price:    price,
		SellerID: sellerID,
	}, s.escrowAccountID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("s.repo.CreateListing -> %w", err)
	}

	return created, nil
}

func (s *MarketService) GetListing(ctx context.Context, itemID uint) (domain.Listing, error) {
	listing, err := s.repo.FindListingByID(ctx, itemID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("s.repo.FindListingByID -> %w", err)
	}

	return listing, nil
}

func (s *MarketService) GetListings(ctx context.Context) ([]domain.Listing, error) {
	listings, err := s.repo.FindAllListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllListings -> %w", err)
	}

	return listings, nil
}

func (s *MarketService) ItemCount(ctx context.Context) (int64, error) {
	count, err := s.repo.CountListings(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountListings -> %w", err)
	}

	return count, nil
}

// GetTotalPrice quotes price plus marketplace fee for a listing, using the
// same integer rule settlement applies.
func (s *MarketService) GetTotalPrice(ctx context.Context, itemID uint) (int64, error) {
	listing, err := s.repo.FindListingByID(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.FindListingByID -> %w", err)
	}

	return domain.TotalPrice(listing.Price, s.feePercent), nil
}

// Purchase settles a listing for the buyer. Every check happens before any
// mutation and the whole effect bundle (sold flag, custody transfer, payment
// split, Bought event) commits atomically or not at all.
func (s *MarketService) Purchase(ctx context.Context, buyerID, itemID uint, payment int64) (domain.Listing, error) {
	settled, err := s.repo.Settle(ctx, itemID, buyerID, payment, s.feePercent, s.feeAccountID, s.escrowAccountID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("s.repo.Settle -> %w", err)
	}

	return settled, nil
}

func (s *MarketService) GetSellerHistory(ctx context.Context, sellerID uint) ([]domain.LedgerEvent, error) {
	events, err := s.repo.FindEventsBySellerID(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindEventsBySellerID -> %w", err)
	}

	return events, nil
}

func (s *MarketService) GetBuyerHistory(ctx context.Context, buyerID uint) ([]domain.LedgerEvent, error) {
	events, err := s.repo.FindEventsByBuyerID(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindEventsByBuyerID -> %w", err)
	}

	return events, nil
}
