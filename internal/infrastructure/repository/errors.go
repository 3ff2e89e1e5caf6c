package repository

import (
	"errors"

	"github.com/koseha/ryg-web-sub000/internal/infrastructure/database"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

// toAppError はBaseRepository.HandleErrorの結果をアプリケーションエラーに変換します
// resourceはNotFound時のリソース名、conflictMessageは一意制約違反時のメッセージ
func toAppError(err error, resource, conflictMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return apperror.NewNotFoundError(resource)
	case errors.Is(err, database.ErrOwnerExists):
		return apperror.NewInvariantViolationError("league already has an owner")
	case errors.Is(err, database.ErrConflict):
		return apperror.NewConflictError(conflictMessage)
	default:
		return apperror.NewInternalError(err)
	}
}
