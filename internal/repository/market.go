package repository

import (
	"context"
	"fmt"

	"github.com/artmarkt/marketplace-api/internal/domain"
	"github.com/artmarkt/marketplace-api/internal/repository/dao"
)

var (
	ErrInvalidPrice        = dao.ErrInvalidPrice
	ErrNotApproved         = dao.ErrNotApproved
	ErrListingNotFound     = dao.ErrListingNotFound
	ErrAlreadySold         = dao.ErrAlreadySold
	ErrInsufficientPayment = dao.ErrInsufficientPayment
)

type ListingDAO interface {
	InsertWithEscrow(ctx context.Context, listing dao.Listing, escrowAccountID uint) (dao.Listing, error)
	FindByID(ctx context.Context, itemID uint) (dao.Listing, error)
	FindAll(ctx context.Context) ([]dao.Listing, error)
	Count(ctx context.Context) (int64, error)
	Settle(ctx context.Context, itemID, buyerID uint, payment, feePercent int64, feeAccountID, escrowAccountID uint) (dao.Listing, error)
}

type EventDAO interface {
	FindBySellerID(ctx context.Context, sellerID uint) ([]dao.LedgerEvent, error)
	FindByBuyerID(ctx context.Context, buyerID uint) ([]dao.LedgerEvent, error)
}

type MarketRepository struct {
	listings ListingDAO
	events   EventDAO
}

func NewMarketRepository(listings ListingDAO, events EventDAO) *MarketRepository {
	return &MarketRepository{
		listings: listings,
		events:   events,
	}
}

func (r *MarketRepository) CreateListing(ctx context.Context, listing domain.Listing, escrowAccountID uint) (domain.Listing, error) {
	created, err := r.listings.InsertWithEscrow(ctx, dao.Listing{
		AssetID:  listing.AssetID,
		Price:    listing.Price,
		SellerID: listing.SellerID,
	}, escrowAccountID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("r.listings.InsertWithEscrow -> %w", err)
	}

	return r.listingDaoToDomain(created), nil
}

func (r *MarketRepository) FindListingByID(ctx context.Context, itemID uint) (domain.Listing, error) {
	found, err := r.listings.FindByID(ctx, itemID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("r.listings.FindByID -> %w", err)
	}

	return r.listingDaoToDomain(found), nil
}

func (r *MarketRepository) FindAllListings(ctx context.Context) ([]domain.Listing, error) {
	found, err := r.listings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.listings.FindAll -> %w", err)
	}

	listings := make([]domain.Listing, len(found))
	for i, l := range found {
		listings[i] = r.listingDaoToDomain(l)
	}

	return listings, nil
}

func (r *MarketRepository) CountListings(ctx context.Context) (int64, error) {
	count, err := r.listings.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.listings.Count -> %w", err)
	}

	return count, nil
}

func (r *MarketRepository) Settle(ctx context.Context, itemID, buyerID uint, payment, feePercent int64, feeAccountID, escrowAccountID uint) (domain.Listing, error) {
	settled, err := r.listings.Settle(ctx, itemID, buyerID, payment, feePercent, feeAccountID, escrowAccountID)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("r.listings.Settle -> %w", err)
	}

	return r.listingDaoToDomain(settled), nil
}

func (r *MarketRepository) FindEventsBySellerID(ctx context.Context, sellerID uint) ([]domain.LedgerEvent, error) {
	found, err := r.events.FindBySellerID(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("r.events.FindBySellerID -> %w", err)
	}

	return r.eventsDaoToDomain(found), nil
}

func (r *MarketRepository) FindEventsByBuyerID(ctx context.Context, buyerID uint) ([]domain.LedgerEvent, error) {
	found, err := r.events.FindByBuyerID(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("r.events.FindByBuyerID -> %w", err)
	}

	return r.eventsDaoToDomain(found), nil
}

func (r *MarketRepository) listingDaoToDomain(l dao.Listing) domain.Listing {
	return domain.Listing{
		ItemID:    l.ID,
		AssetID:   l.AssetID,
		Price:     l.Price,
		SellerID:  l.SellerID,
		Sold:      l.Sold,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func (r *MarketRepository) eventsDaoToDomain(daoEvents []dao.LedgerEvent) []domain.LedgerEvent {
	events := make([]domain.LedgerEvent, len(daoEvents))
	for i, e := range daoEvents {
		events[i] = domain.LedgerEvent{
			ID:        e.ID,
			Type:      domain.LedgerEventType(e.Type),
			ItemID:    e.ItemID,
			AssetID:   e.AssetID,
			Price:     e.Price,
			SellerID:  e.SellerID,
			BuyerID:   e.BuyerID,
			CreatedAt: e.CreatedAt,
		}
	}

	return events
}
