package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/artmarkt/marketplace-api/internal/api/handler/v1/request"
	"github.com/artmarkt/marketplace-api/internal/api/handler/v1/response"
	"github.com/artmarkt/marketplace-api/internal/domain"
	"github.com/artmarkt/marketplace-api/internal/service"
)

type MarketService interface {
	CreateListing(ctx context.Context, sellerID, assetID uint, price int64) (domain.Listing, error)
	GetListing(ctx context.Context, itemID uint) (domain.Listing, error)
	GetListings(ctx context.Context) ([]domain.Listing, error)
	ItemCount(ctx context.Context) (int64, error)
	GetTotalPrice(ctx context.Context, itemID uint) (int64, error)
	Purchase(ctx context.Context, buyerID, itemID uint, payment int64) (domain.Listing, error)
	GetSellerHistory(ctx context.Context, sellerID uint) ([]domain.LedgerEvent, error)
	GetBuyerHistory(ctx context.Context, buyerID uint) ([]domain.LedgerEvent, error)
	FeePercent() int64
	FeeAccountID() uint
	EscrowAccountID() uint
}

type MarketHandler struct {
	svc MarketService
}

func NewMarketHandler(svc MarketService) *MarketHandler {
	return &MarketHandler{
		svc: svc,
	}
}

// HandleCreateListing godoc
// @Summary      Offer an asset for sale at a fixed price
// @Description  Moves the asset into marketplace escrow and appends an Offered event.
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateListingRequest  true  "request body"
// @Success      201      {object}  domain.Listing
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /listings [post]
// @Security BearerAuth
func (h *MarketHandler) HandleCreateListing(ctx *gin.Context) {
	callerID, respErr := getCallerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	listing, err := h.svc.CreateListing(ctx.Request.Context(), callerID, req.AssetID, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPrice):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidPrice))
		case errors.Is(err, service.ErrAssetNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAssetNotFound))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))
		case errors.Is(err, service.ErrNotApproved):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotApproved))
		default:
			err = fmt.Errorf("HandleCreateListing -> h.svc.CreateListing -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, listing)
}

// HandleGetListings godoc
// @Summary      List every marketplace item
// @Tags         listings
// @Produce      json
// @Success      200  {array}   domain.Listing
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /listings [get]
// @Security BearerAuth
func (h *MarketHandler) HandleGetListings(ctx *gin.Context) {
	listings, err := h.svc.GetListings(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetListings -> h.svc.GetListings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, listings)
}

// HandleGetListing godoc
// @Summary      Get one marketplace item
// @Tags         listings
// @Produce      json
// @Param        itemID  path      int  true  "item ID"
// @Success      200     {object}  domain.Listing
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /listings/{itemID} [get]
// @Security BearerAuth
func (h *MarketHandler) HandleGetListing(ctx *gin.Context) {
	itemID, err := strconv.ParseUint(ctx.Param("itemID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid item ID: %w", err)))
		return
	}

	listing, err := h.svc.GetListing(ctx.Request.Context(), uint(itemID))
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrListingNotFound))
			return
		}

		err = fmt.Errorf("HandleGetListing -> h.svc.GetListing -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, listing)
}

// HandleGetTotalPrice godoc
// @Summary      Quote the total price (price plus marketplace fee) of an item
// @Tags         listings
// @Produce      json
// @Param        itemID  path      int  true  "item ID"
// @Success      200     {object}  response.TotalPrice
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /listings/{itemID}/total-price [get]
// @Security BearerAuth
func (h *MarketHandler) HandleGetTotalPrice(ctx *gin.Context) {
	itemID, err := strconv.ParseUint(ctx.Param("itemID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid item ID: %w", err)))
		return
	}

	listing, err := h.svc.GetListing(ctx.Request.Context(), uint(itemID))
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrListingNotFound))
			return
		}

		err = fmt.Errorf("HandleGetTotalPrice -> h.svc.GetListing -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	total, err := h.svc.GetTotalPrice(ctx.Request.Context(), uint(itemID))
	if err != nil {
		err = fmt.Errorf("HandleGetTotalPrice -> h.svc.GetTotalPrice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.TotalPrice{
		ItemID:     listing.ItemID,
		Price:      listing.Price,
		FeePercent: h.svc.FeePercent(),
		TotalPrice: total,
	})
}

// HandlePurchase godoc
// @Summary      Purchase an item
// @Description  Settles the sale atomically: the asset leaves escrow for the buyer,
// @Description  the seller receives the price and the fee account the fee.
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        itemID   path      int                      true  "item ID"
// @Param        request  body      request.PurchaseRequest  true  "request body"
// @Success      200      {object}  domain.Listing
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      402      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /listings/{itemID}/purchase [post]
// @Security BearerAuth
func (h *MarketHandler) HandlePurchase(ctx *gin.Context) {
	callerID, respErr := getCallerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	itemID, err := strconv.ParseUint(ctx.Param("itemID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid item ID: %w", err)))
		return
	}

	var req request.PurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	listing, err := h.svc.Purchase(ctx.Request.Context(), callerID, uint(itemID), req.Payment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrListingNotFound))
		case errors.Is(err, service.ErrAlreadySold):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadySold))
		case errors.Is(err, service.ErrInsufficientPayment):
			response.RenderErr(ctx, response.ErrPaymentRequired(service.ErrInsufficientPayment))
		case errors.Is(err, service.ErrInsufficientFunds):
			response.RenderErr(ctx, response.ErrPaymentRequired(service.ErrInsufficientFunds))
		default:
			err = fmt.Errorf("HandlePurchase -> h.svc.Purchase -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, listing)
}

// HandleGetMarketInfo godoc
// @Summary      Get the marketplace's fee parameters and item count
// @Tags         market
// @Produce      json
// @Success      200  {object}  response.MarketInfo
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /market [get]
// @Security BearerAuth
func (h *MarketHandler) HandleGetMarketInfo(ctx *gin.Context) {
	count, err := h.svc.ItemCount(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetMarketInfo -> h.svc.ItemCount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MarketInfo{
		FeePercent:      h.svc.FeePercent(),
		FeeAccountID:    h.svc.FeeAccountID(),
		EscrowAccountID: h.svc.EscrowAccountID(),
		ItemCount:       count,
	})
}

// HandleGetEvents godoc
// @Summary      Query the audit log by seller or buyer
// @Tags         market
// @Produce      json
// @Param        seller  query     int  false  "seller ID"
// @Param        buyer   query     int  false  "buyer ID"
// @Success      200     {object}  response.Events
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *MarketHandler) HandleGetEvents(ctx *gin.Context) {
	sellerRaw := ctx.Query("seller")
	buyerRaw := ctx.Query("buyer")

	var (
		events []domain.LedgerEvent
		err    error
	)

	switch {
	case sellerRaw != "":
		sellerID, parseErr := strconv.ParseUint(sellerRaw, 10, 64)
		if parseErr != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid seller ID: %w", parseErr)))
			return
		}
		events, err = h.svc.GetSellerHistory(ctx.Request.Context(), uint(sellerID))
	case buyerRaw != "":
		buyerID, parseErr := strconv.ParseUint(buyerRaw, 10, 64)
		if parseErr != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid buyer ID: %w", parseErr)))
			return
		}
		events, err = h.svc.GetBuyerHistory(ctx.Request.Context(), uint(buyerID))
	default:
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("either seller or buyer query parameter is required")))
		return
	}

	if err != nil {
		err = fmt.Errorf("HandleGetEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.Events{Events: events})
}
