package repository

import (
	"errors"

	"gorm.io/gorm"
)

// Typed storage errors. Services translate these into the apperror taxonomy
// so callers never see gorm sentinels.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("record already exists")
)

// translate maps gorm sentinels onto repository errors. Relies on
// gorm.Config.TranslateError for driver-level duplicate-key detection.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	default:
		return err
	}
}
