package service

import (
	"errors"

	"github.com/adscript/adscript-backend/internal/common"
	"gorm.io/gorm"
)

// translate maps storage errors onto service sentinels; notFound is the sentinel for a missing row
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return common.ErrDuplicate
	default:
		return err
	}
}
