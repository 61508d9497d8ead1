package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stable error codes the API contract promises. Clients branch on Code,
// never on message text.
const (
	CodeValidationError       = "validation_error"
	CodeSessionFull           = "session_full"
	CodeScheduleConflict      = "schedule_conflict"
	CodeDuplicateRegistration = "duplicate_registration"
	CodeAlreadyCheckedIn      = "already_checked_in"
	CodeNotConfirmed          = "not_confirmed"
	CodeSessionNotActive      = "session_not_active"
	CodeTokenExpired          = "token_expired"
	CodeNotFound              = "not_found"
	CodeUnauthorized          = "unauthorized"
	CodePermissionDenied      = "permission_denied"
	CodeTooManyRequests       = "too_many_requests"
	CodeInternalError         = "internal_error"
)

type Err struct {
	statusCode int

	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, err *Err) {
	ctx.JSON(err.statusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		statusCode: http.StatusBadRequest,
		Code:       CodeValidationError,
		Message:    err.Error(),
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		statusCode: http.StatusUnauthorized,
		Code:       CodeUnauthorized,
		Message:    err.Error(),
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		statusCode: http.StatusForbidden,
		Code:       CodePermissionDenied,
		Message:    err.Error(),
	}
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	return &Err{
		statusCode: http.StatusNotFound,
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%v with %v (%v) not found", resource, key, value),
	}
}

func ErrTooManyRequests(err error) *Err {
	return &Err{
		statusCode: http.StatusTooManyRequests,
		Code:       CodeTooManyRequests,
		Message:    err.Error(),
	}
}

// ErrInternalServerError logs the wrapped cause and hands the client a
// generic message.
func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return &Err{
		statusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "something went wrong",
	}
}

// ErrConflict renders a business-rule violation under its stable code.
func ErrConflict(code string, err error) *Err {
	return &Err{
		statusCode: http.StatusConflict,
		Code:       code,
		Message:    err.Error(),
	}
}

// ErrUnprocessable renders a rejected-but-well-formed submission (full
// session, schedule conflict) under its stable code.
func ErrUnprocessable(code string, err error) *Err {
	return &Err{
		statusCode: http.StatusUnprocessableEntity,
		Code:       code,
		Message:    err.Error(),
	}
}
