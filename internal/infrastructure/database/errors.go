package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	appErrors "medreminder/internal/pkg/errors"
)

// wrap classifies a gorm error: record-not-found becomes ErrNotFound, anything
// else ErrStore.
func wrap(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", appErrors.ErrNotFound, msg)
	}
	return fmt.Errorf("%w: failed to %s: %w", appErrors.ErrStore, msg, err)
}
