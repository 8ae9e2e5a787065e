package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Page is a window over a recipient's notifications, newest first.
type Page struct {
	Skip  int    `validate:"gte=0"`
	Limit int    `validate:"gte=1"`
	Type  string `validate:"omitempty,oneof=like comment follow system"`
}

// ValidatePage checks p against the allowed bounds. maxLimit <= 0 disables the upper bound.
func ValidatePage(p Page, maxLimit int) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPagination, err.Error())
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		return fmt.Errorf("%w: limit must be at most %d", ErrInvalidPagination, maxLimit)
	}
	return nil
}
