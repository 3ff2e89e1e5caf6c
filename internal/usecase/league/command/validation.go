package command

import (
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

// fieldError は値オブジェクトの検証エラーをフィールド付きのバリデーションエラーに変換します
func fieldError(field string, err error) error {
	return apperror.NewFieldValidationError(field, err.Error())
}
