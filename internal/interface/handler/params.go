package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/koseha/ryg-web-sub000/internal/interface/middleware"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

// parseUUIDParam はパスパラメータをUUIDとして解析します
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewFieldValidationError(name, "must be a valid UUID")
	}
	return id, nil
}

// currentUserID は認証済みユーザーのIDを返します
func currentUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.GetUserUUID(c)
	if !ok {
		return uuid.Nil, apperror.NewUnauthorizedError("invalid token")
	}
	return userID, nil
}

// bindAndValidate はリクエストをバインドして検証します
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperror.NewInvalidRequestError("invalid request body")
	}
	return c.Validate(req)
}
