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
	"github.com/artmarkt/marketplace-api/internal/pkg/metadata"
	"github.com/artmarkt/marketplace-api/internal/service"
)

type AssetService interface {
	Mint(ctx context.Context, callerID uint, uri string) (domain.Asset, error)
	GetAsset(ctx context.Context, id uint) (domain.Asset, error)
	GetAssetsByOwner(ctx context.Context, ownerID uint) ([]domain.Asset, error)
	SetApprovalForAll(ctx context.Context, callerID, operatorID uint, enabled bool) (domain.Approval, error)
	Transfer(ctx context.Context, callerID, fromID, toID, assetID uint) (domain.Asset, error)
	ResolveMetadata(ctx context.Context, assetID uint) (metadata.AssetMetadata, error)
}

type AssetHandler struct {
	svc AssetService
}

func NewAssetHandler(svc AssetService) *AssetHandler {
	return &AssetHandler{
		svc: svc,
	}
}

// HandleMintAsset godoc
// @Summary      Mint a new asset owned by the caller
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request  body      request.MintAssetRequest  true  "request body"
// @Success      201      {object}  domain.Asset
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /assets [post]
// @Security BearerAuth
func (h *AssetHandler) HandleMintAsset(ctx *gin.Context) {
	callerID, respErr := getCallerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.MintAssetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	asset, err := h.svc.Mint(ctx.Request.Context(), callerID, req.URI)
	if err != nil {
		err = fmt.Errorf("HandleMintAsset -> h.svc.Mint -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, asset)
}

// HandleGetAsset godoc
// @Summary      Get an asset's owner and URI
// @Tags         assets
// @Produce      json
// @Param        assetID  path      int  true  "asset ID"
// @Success      200      {object}  domain.Asset
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /assets/{assetID} [get]
// @Security BearerAuth
func (h *AssetHandler) HandleGetAsset(ctx *gin.Context) {
	assetID, err := strconv.ParseUint(ctx.Param("assetID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid asset ID: %w", err)))
		return
	}

	asset, err := h.svc.GetAsset(ctx.Request.Context(), uint(assetID))
	if err != nil {
		if errors.Is(err, service.ErrAssetNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAssetNotFound))
			return
		}

		err = fmt.Errorf("HandleGetAsset -> h.svc.GetAsset -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, asset)
}

// HandleListAssets godoc
// @Summary      List assets, optionally filtered by owner
// @Tags         assets
// @Produce      json
// @Param        owner_id  query     int  false  "owner ID"
// @Success      200       {array}   domain.Asset
// @Failure      400       {object}  response.Err
// @Failure      401       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /assets [get]
// @Security BearerAuth
func (h *AssetHandler) HandleListAssets(ctx *gin.Context) {
	callerID, respErr := getCallerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ownerID := callerID
	if raw := ctx.Query("owner_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid owner ID: %w", err)))
			return
		}
		ownerID = uint(parsed)
	}

	assets, err := h.svc.GetAssetsByOwner(ctx.Request.Context(), ownerID)
	if err != nil {
		err = fmt.Errorf("HandleListAssets -> h.svc.GetAssetsByOwner -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, assets)
}

// HandleGetAssetMetadata godoc
// @Summary      Resolve the off-chain metadata behind an asset's URI
// @Tags         assets
// @Produce      json
// @Param        assetID  path      int  true  "asset ID"
// @Success      200      {object}  metadata.AssetMetadata
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      502      {object}  response.Err
// @Router       /assets/{assetID}/metadata [get]
// @Security BearerAuth
func (h *AssetHandler) HandleGetAssetMetadata(ctx *gin.Context) {
	assetID, err := strconv.ParseUint(ctx.Param("assetID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid asset ID: %w", err)))
		return
	}

	meta, err := h.svc.ResolveMetadata(ctx.Request.Context(), uint(assetID))
	if err != nil {
		if errors.Is(err, service.ErrAssetNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAssetNotFound))
			return
		}

		// The metadata host is an external collaborator; its failures never
		// touch ledger state.
		response.RenderErr(ctx, response.ErrBadGateway(fmt.Errorf("resolving metadata: %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, meta)
}

// HandleSetApproval godoc
// @Summary      Grant or revoke an operator's right to move the caller's assets
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request  body      request.SetApprovalRequest  true  "request body"
// @Success      200      {object}  response.Approval
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /assets/approvals [post]
// @Security BearerAuth
func (h *AssetHandler) HandleSetApproval(ctx *gin.Context) {
	callerID, respErr := getCallerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SetApprovalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	approval, err := h.svc.SetApprovalForAll(ctx.Request.Context(), callerID, req.OperatorID, *req.Approved)
	if err != nil {
		err = fmt.Errorf("HandleSetApproval -> h.svc.SetApprovalForAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.Approval{
		OwnerID:    approval.OwnerID,
		OperatorID: approval.OperatorID,
		AllAssets:  approval.AllAssets,
	})
}

// HandleTransferAsset godoc
// @Summary      Transfer an asset, as its owner or an approved operator
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request  body      request.TransferRequest  true  "request body"
// @Success      200      {object}  domain.Asset
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /assets/transfer [post]
// @Security BearerAuth
func (h *AssetHandler) HandleTransferAsset(ctx *gin.Context) {
	callerID, respErr := getCallerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.TransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	asset, err := h.svc.Transfer(ctx.Request.Context(), callerID, req.FromID, req.ToID, req.AssetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssetNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrAssetNotFound))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))
		default:
			err = fmt.Errorf("HandleTransferAsset -> h.svc.Transfer -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, asset)
}
