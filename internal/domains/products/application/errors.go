package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/coffee-admin/internal/domains/products/domain"
)

var (
	// ErrInvalidInput signals the form violated a product rule.
	ErrInvalidInput = errors.New("invalid product input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNameRequired) ||
		errors.Is(err, domain.ErrPriceRequired) ||
		errors.Is(err, domain.ErrThumbnailRequired) ||
		errors.Is(err, domain.ErrUnknownContinent) ||
		errors.Is(err, domain.ErrNationalityMismatch) ||
		errors.Is(err, domain.ErrTooManyOptions) ||
		errors.Is(err, domain.ErrTooFewOptions) ||
		errors.Is(err, domain.ErrOptionValueRequired) ||
		errors.Is(err, domain.ErrNegativeOption) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// userText is the warning shown for a rejected form.
func userText(err error) string {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return "enter a product name"
	case errors.Is(err, domain.ErrPriceRequired):
		return "enter a base price"
	case errors.Is(err, domain.ErrThumbnailRequired):
		return "add a thumbnail image"
	case errors.Is(err, domain.ErrUnknownContinent):
		return "choose a continent from the list"
	case errors.Is(err, domain.ErrNationalityMismatch):
		return "choose a country of the selected continent"
	case errors.Is(err, domain.ErrTooManyOptions):
		return "up to 4 options"
	case errors.Is(err, domain.ErrTooFewOptions):
		return "at least one option"
	case errors.Is(err, domain.ErrOptionValueRequired):
		return "every option needs a weight"
	case errors.Is(err, domain.ErrNegativeOption):
		return "option price and stock cannot be negative"
	}
	return err.Error()
}
