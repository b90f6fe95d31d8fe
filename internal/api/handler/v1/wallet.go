package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artmarkt/marketplace-api/internal/api/handler/v1/request"
	"github.com/artmarkt/marketplace-api/internal/api/handler/v1/response"
	"github.com/artmarkt/marketplace-api/internal/domain"
	"github.com/artmarkt/marketplace-api/internal/service"
)

type WalletService interface {
	Deposit(ctx context.Context, userID uint, amount int64, paymentMethodID string) (domain.User, error)
}

type WalletHandler struct {
	svc WalletService
}

func NewWalletHandler(svc WalletService) *WalletHandler {
	return &WalletHandler{
		svc: svc,
	}
}

// HandleDeposit godoc
// @Summary      Buy ledger credit with a card payment
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      request.DepositRequest  true  "request body"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      402      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /wallet/deposit [post]
// @Security BearerAuth
func (h *WalletHandler) HandleDeposit(ctx *gin.Context) {
	callerID, respErr := getCallerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DepositRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.Deposit(ctx.Request.Context(), callerID, req.Amount, req.PaymentMethodID)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotSucceeded) {
			response.RenderErr(ctx, response.ErrPaymentRequired(service.ErrPaymentNotSucceeded))
			return
		}

		err = fmt.Errorf("HandleDeposit -> h.svc.Deposit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}
