package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/artmarkt/marketplace-api/internal/domain"
	"github.com/artmarkt/marketplace-api/internal/repository"
	"github.com/artmarkt/marketplace-api/internal/repository/dao"
	"github.com/artmarkt/marketplace-api/internal/service"
)

// marketTestEnv wires the real service stack over an in-memory database so
// tests cover the full listing lifecycle the way the server runs it.
type marketTestEnv struct {
	assets *service.AssetService
	market *service.MarketService
	auth   *service.AuthService
	users  *dao.UserDAO

	seller domain.User
	buyer  domain.User
	fee    domain.User
	escrow domain.User
}

func newMarketTestEnv(t *testing.T, feePercent int64) *marketTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dao.InitTables(db))

	userDAO := dao.NewUserDAO(db)
	userRepo := repository.NewUserRepository(userDAO)
	auth := service.NewAuthService(userRepo)

	ctx := context.Background()
	signup := func(email, name string) domain.User {
		user, err := auth.Signup(ctx, domain.User{Email: email, Name: name, Password: "passw0rd123"})
		require.NoError(t, err)
		return user
	}

	env := &marketTestEnv{
		auth:   auth,
		users:  userDAO,
		seller: signup("seller@test.local", "Seller"),
		buyer:  signup("buyer@test.local", "Buyer"),
		fee:    signup("fees@test.local", "Fees"),
		escrow: signup("escrow@test.local", "Escrow"),
	}

	assetRepo := repository.NewAssetRepository(dao.NewAssetDAO(db))
	env.assets = service.NewAssetService(assetRepo, nil)

	marketRepo := repository.NewMarketRepository(dao.NewListingDAO(db), dao.NewEventDAO(db))
	env.market = service.NewMarketService(marketRepo, feePercent, env.fee.ID, env.escrow.ID)

	return env
}

// list mints an asset for the seller, grants the escrow account and offers
// the asset at price.
func (e *marketTestEnv) list(t *testing.T, price int64) domain.Listing {
	t.Helper()

	ctx := context.Background()

	asset, err := e.assets.Mint(ctx, e.seller.ID, "https://meta.test.local/art.json")
	require.NoError(t, err)

	_, err = e.assets.SetApprovalForAll(ctx, e.seller.ID, e.escrow.ID, true)
	require.NoError(t, err)

	listing, err := e.market.CreateListing(ctx, e.seller.ID, asset.ID, price)
	require.NoError(t, err)

	return listing
}

func (e *marketTestEnv) balance(t *testing.T, userID uint) int64 {
	t.Helper()

	user, err := e.users.FindByID(context.Background(), userID)
	require.NoError(t, err)

	return user.Balance
}

func TestCreateListingRejectsNonPositivePrice(t *testing.T) {
	env := newMarketTestEnv(t, 1)
	ctx := context.Background()

	asset, err := env.assets.Mint(ctx, env.seller.ID, "https://meta.test.local/art.json")
	require.NoError(t, err)

	_, err = env.market.CreateListing(ctx, env.seller.ID, asset.ID, 0)
	assert.ErrorIs(t, err, service.ErrInvalidPrice)

	_, err = env.market.CreateListing(ctx, env.seller.ID, asset.ID, -1)
	assert.ErrorIs(t, err, service.ErrInvalidPrice)

	count, err := env.market.ItemCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateListingRequiresEscrowApproval(t *testing.T) {
	env := newMarketTestEnv(t, 1)
	ctx := context.Background()

	asset, err := env.assets.Mint(ctx, env.seller.ID, "https://meta.test.local/art.json")
	require.NoError(t, err)

	_, err = env.market.CreateListing(ctx, env.seller.ID, asset.ID, 100)
	assert.ErrorIs(t, err, service.ErrNotApproved)

	// A revoked grant is as good as none.
	_, err = env.assets.SetApprovalForAll(ctx, env.seller.ID, env.escrow.ID, false)
	require.NoError(t, err)
	_, err = env.market.CreateListing(ctx, env.seller.ID, asset.ID, 100)
	assert.ErrorIs(t, err, service.ErrNotApproved)
}

func TestCreateListingMovesAssetIntoEscrow(t *testing.T) {
	env := newMarketTestEnv(t, 1)
	ctx := context.Background()

	listing := env.list(t, 100)
	assert.Equal(t, uint(1), listing.ItemID)
	assert.False(t, listing.Sold)

	asset, err := env.assets.GetAsset(ctx, listing.AssetID)
	require.NoError(t, err)
	assert.Equal(t, env.escrow.ID, asset.OwnerID)

	history, err := env.market.GetSellerHistory(ctx, env.seller.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.EventOffered, history[0].Type)
	assert.Equal(t, listing.ItemID, history[0].ItemID)
}

func TestGetTotalPriceMatchesSettlement(t *testing.T) {
	env := newMarketTestEnv(t, 1)
	ctx := context.Background()

	listing := env.list(t, 200)

	total, err := env.market.GetTotalPrice(ctx, listing.ItemID)
	require.NoError(t, err)
	assert.EqualValues(t, 202, total)

	require.NoError(t, env.users.CreditBalance(ctx, env.buyer.ID, 500))

	// Paying one unit below the quote is rejected; the quote itself clears.
	_, err = env.market.Purchase(ctx, env.buyer.ID, listing.ItemID, total-1)
	assert.ErrorIs(t, err, service.ErrInsufficientPayment)

	settled, err := env.market.Purchase(ctx, env.buyer.ID, listing.ItemID, total)
	require.NoError(t, err)
	assert.True(t, settled.Sold)
}

func TestPurchaseSettlesAtomically(t *testing.T) {
	env := newMarketTestEnv(t, 1)
	ctx := context.Background()

	listing := env.list(t, 200)
	require.NoError(t, env.users.CreditBalance(ctx, env.buyer.ID, 500))

	settled, err := env.market.Purchase(ctx, env.buyer.ID, listing.ItemID, 300)
	require.NoError(t, err)
	assert.True(t, settled.Sold)

	asset, err := env.assets.GetAsset(ctx, listing.AssetID)
	require.NoError(t, err)
	assert.Equal(t, env.buyer.ID, asset.OwnerID)

	// Buyer paid exactly price+fee; the seller got the price, the fee
	// account the fee, and the excess stayed with the buyer.
	assert.EqualValues(t, 298, env.balance(t, env.buyer.ID))
	assert.EqualValues(t, 200, env.balance(t, env.seller.ID))
	assert.EqualValues(t, 2, env.balance(t, env.fee.ID))

	bought, err := env.market.GetBuyerHistory(ctx, env.buyer.ID)
	require.NoError(t, err)
	require.Len(t, bought, 1)
	assert.Equal(t, domain.EventBought, bought[0].Type)
	require.NotNil(t, bought[0].BuyerID)
	assert.Equal(t, env.buyer.ID, *bought[0].BuyerID)
}

func TestPurchaseUnknownItem(t *testing.T) {
	env := newMarketTestEnv(t, 1)
	ctx := context.Background()

	env.list(t, 100)
	require.NoError(t, env.users.CreditBalance(ctx, env.buyer.ID, 500))

	count, err := env.market.ItemCount(ctx)
	require.NoError(t, err)

	for _, itemID := range []uint{0, uint(count) + 1} {
		_, err := env.market.Purchase(ctx, env.buyer.ID, itemID, 500)
		assert.ErrorIs(t, err, service.ErrListingNotFound)
	}
}

func TestPurchaseSoldItem(t *testing.T) {
	env := newMarketTestEnv(t, 1)
	ctx := context.Background()

	listing := env.list(t, 100)
	require.NoError(t, env.users.CreditBalance(ctx, env.buyer.ID, 500))

	_, err := env.market.Purchase(ctx, env.buyer.ID, listing.ItemID, 101)
	require.NoError(t, err)

	_, err = env.market.Purchase(ctx, env.seller.ID, listing.ItemID, 101)
	assert.ErrorIs(t, err, service.ErrAlreadySold)
}

func TestPurchaseWithEmptyWallet(t *testing.T) {
	env := newMarketTestEnv(t, 1)
	ctx := context.Background()

	listing := env.list(t, 100)

	_, err := env.market.Purchase(ctx, env.buyer.ID, listing.ItemID, 101)
	assert.ErrorIs(t, err, service.ErrInsufficientFunds)

	// Nothing moved.
	found, err := env.market.GetListing(ctx, listing.ItemID)
	require.NoError(t, err)
	assert.False(t, found.Sold)
	assert.EqualValues(t, 0, env.balance(t, env.seller.ID))
}

func TestGetListingsOrderedByItemID(t *testing.T) {
	env := newMarketTestEnv(t, 1)
	ctx := context.Background()

	first := env.list(t, 100)
	second := env.list(t, 250)

	listings, err := env.market.GetListings(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, first.ItemID, listings[0].ItemID)
	assert.Equal(t, second.ItemID, listings[1].ItemID)
	assert.EqualValues(t, 250, listings[1].Price)
}
