package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/artmarkt/marketplace-api/internal/domain"
)

var (
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrNotApproved         = errors.New("marketplace is not approved to transfer the asset")
	ErrListingNotFound     = errors.New("item does not exist")
	ErrAlreadySold         = errors.New("item already sold!")
	ErrInsufficientPayment = errors.New("not enough ether to cover item price and market fee")
)

// Listing is one marketplace item. The primary key is the dense sequential
// item id. sold flips false to true exactly once, inside Settle.
type Listing struct {
	ID uint `gorm:"primaryKey"`

	AssetID  uint  `gorm:"not null;index"`
	Price    int64 `gorm:"not null"`
	SellerID uint  `gorm:"not null;index"`
	Sold     bool  `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ListingDAO struct {
	db *gorm.DB
}

func NewListingDAO(db *gorm.DB) *ListingDAO {
	return &ListingDAO{
		db: db,
	}
}

// InsertWithEscrow creates a listing and moves its asset into marketplace
// custody as one unit: verify the seller owns the asset, verify the escrow
// account holds an active grant from the seller, reassign the asset to the
// escrow account, insert the listing row and append the Offered event. Any
// failed check aborts the transaction with no observable effect.
func (d *ListingDAO) InsertWithEscrow(ctx context.Context, listing Listing, escrowAccountID uint) (Listing, error) {
	if listing.Price <= 0 {
		return Listing{}, ErrInvalidPrice
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset Asset
		if err := tx.First(&asset, listing.AssetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}

			return err
		}

		if asset.OwnerID != listing.SellerID {
			return ErrNotAuthorized
		}

		var approval Approval
		err := tx.Where("owner_id = ? AND operator_id = ? AND all_assets = ?",
			listing.SellerID, escrowAccountID, true).
			First(&approval).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotApproved
			}

			return err
		}

		result := tx.Model(&Asset{}).
			Where("id = ? AND owner_id = ?", listing.AssetID, listing.SellerID).
			Update("owner_id", escrowAccountID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotAuthorized
		}

		if err := tx.Create(&listing).Error; err != nil {
			return err
		}

		event := LedgerEvent{
			Type:     string(domain.EventOffered),
			ItemID:   listing.ID,
			AssetID:  listing.AssetID,
			Price:    listing.Price,
			SellerID: listing.SellerID,
		}

		return tx.Create(&event).Error
	})
	if err != nil {
		return Listing{}, err
	}

	return listing, nil
}

func (d *ListingDAO) FindByID(ctx context.Context, itemID uint) (Listing, error) {
	var listing Listing

	result := d.db.WithContext(ctx).First(&listing, itemID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Listing{}, ErrListingNotFound
		}

		return Listing{}, result.Error
	}

	return listing, nil
}

func (d *ListingDAO) FindAll(ctx context.Context) ([]Listing, error) {
	var listings []Listing

	result := d.db.WithContext(ctx).Order("id").Find(&listings)
	if result.Error != nil {
		return nil, result.Error
	}

	return listings, nil
}

func (d *ListingDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Listing{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Settle commits a purchase as one indivisible unit: mark sold, move the
// asset from escrow to the buyer, debit the buyer by price+fee, credit the
// seller with the price and the fee account with the fee, append the Bought
// event. Each mutation is a guarded UPDATE so a lost race (double purchase,
// drained balance) aborts the whole transaction; rejection is total.
func (d *ListingDAO) Settle(ctx context.Context, itemID, buyerID uint, payment, feePercent int64, feeAccountID, escrowAccountID uint) (Listing, error) {
	var listing Listing

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&listing, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}

			return err
		}

		if listing.Sold {
			return ErrAlreadySold
		}

		total := domain.TotalPrice(listing.Price, feePercent)
		if payment < total {
			return ErrInsufficientPayment
		}

		result := tx.Model(&Listing{}).
			Where("id = ? AND sold = ?", itemID, false).
			Update("sold", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadySold
		}

		result = tx.Model(&Asset{}).
			Where("id = ? AND owner_id = ?", listing.AssetID, escrowAccountID).
			Update("owner_id", buyerID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAssetNotFound
		}

		// The buyer is debited exactly the total; any excess payment stays
		// with the buyer.
		result = tx.Model(&User{}).
			Where("id = ? AND balance >= ?", buyerID, total).
			Update("balance", gorm.Expr("balance - ?", total))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientFunds
		}

		result = tx.Model(&User{}).
			Where("id = ?", listing.SellerID).
			Update("balance", gorm.Expr("balance + ?", listing.Price))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		result = tx.Model(&User{}).
			Where("id = ?", feeAccountID).
			Update("balance", gorm.Expr("balance + ?", total-listing.Price))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		listing.Sold = true

		event := LedgerEvent{
			Type:     string(domain.EventBought),
			ItemID:   listing.ID,
			AssetID:  listing.AssetID,
			Price:    listing.Price,
			SellerID: listing.SellerID,
			BuyerID:  &buyerID,
		}

		return tx.Create(&event).Error
	})
	if err != nil {
		return Listing{}, err
	}

	return listing, nil
}
