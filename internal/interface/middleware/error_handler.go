package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koseha/ryg-web-sub000/pkg/apperror"
	"github.com/koseha/ryg-web-sub000/pkg/logger"
)

// ErrorResponse はエラーレスポンス構造を定義します
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// ErrorBody はエラー本体を定義します
type ErrorBody struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラーです
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		// 内部エラーの原因はログのみに出力し、レスポンスには含めない
		if appErr.HTTPStatus >= 500 {
			logger.Error(c.Request().Context(), "internal error", "error", appErr.Error())
		}
		writeError(c, appErr.HTTPStatus, string(appErr.Code), appErr.Message, appErr.Details)
		return
	}

	// Echo HTTPErrorの場合（ルート不一致、メソッド不一致、バインド失敗など）
	var he *echo.HTTPError
	if errors.As(err, &he) {
		writeError(c, he.Code, httpErrorCode(he.Code), fmt.Sprintf("%v", he.Message), nil)
		return
	}

	logger.Error(c.Request().Context(), "unknown error", "error", err.Error())
	writeError(c, http.StatusInternalServerError, string(apperror.CodeInternalError), "internal server error", nil)
}

func writeError(c echo.Context, status int, code, message string, details []apperror.FieldError) {
	response := ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, response)
	}
	if err != nil {
		logger.Error(c.Request().Context(), "failed to write error response", "error", err)
	}
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return string(apperror.CodeInvalidRequest)
	case http.StatusUnauthorized:
		return string(apperror.CodeUnauthorized)
	case http.StatusForbidden:
		return string(apperror.CodeForbidden)
	case http.StatusNotFound:
		return string(apperror.CodeNotFound)
	case http.StatusConflict:
		return string(apperror.CodeConflict)
	case http.StatusTooManyRequests:
		return string(apperror.CodeRateLimitExceeded)
	case http.StatusServiceUnavailable:
		return string(apperror.CodeServiceUnavailable)
	}
	if status >= 500 {
		return string(apperror.CodeInternalError)
	}
	return string(apperror.CodeInvalidRequest)
}
