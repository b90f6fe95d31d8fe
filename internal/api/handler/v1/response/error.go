package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the error envelope every failed request renders. Messages for the
// ledger's rejection errors are fixed strings callers match on, so they are
// passed through verbatim.
type Err struct {
	HTTPStatusCode int    `json:"-"`
	ErrorMsg       string `json:"error"`
}

func (e *Err) Error() string {
	return e.ErrorMsg
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("server error",
			zap.Int("status", err.HTTPStatusCode),
			zap.String("error", err.ErrorMsg),
			zap.String("path", ctx.FullPath()),
		)
	}

	ctx.AbortWithStatusJSON(err.HTTPStatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusBadRequest,
		ErrorMsg:       err.Error(),
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		ErrorMsg:       err.Error(),
	}
}

func ErrPaymentRequired(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusPaymentRequired,
		ErrorMsg:       err.Error(),
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusForbidden,
		ErrorMsg:       err.Error(),
	}
}

func ErrNotFound(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		ErrorMsg:       err.Error(),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusConflict,
		ErrorMsg:       err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return &Err{
		HTTPStatusCode: http.StatusInternalServerError,
		ErrorMsg:       "internal server error",
	}
}

func ErrBadGateway(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusBadGateway,
		ErrorMsg:       err.Error(),
	}
}
