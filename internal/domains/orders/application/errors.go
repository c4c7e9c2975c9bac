package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/coffee-admin/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the form or request violated an order rule.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrMemberRequired) ||
		errors.Is(err, domain.ErrLinesRequired) ||
		errors.Is(err, domain.ErrTooManyLines) ||
		errors.Is(err, domain.ErrProductRequired) ||
		errors.Is(err, domain.ErrOptionRequired) ||
		errors.Is(err, domain.ErrVariantUnresolved) ||
		errors.Is(err, domain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

func userText(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidStatus):
		return "choose a valid status"
	case errors.Is(err, domain.ErrMemberRequired):
		return "choose a member"
	case errors.Is(err, domain.ErrLinesRequired):
		return "at least one item"
	case errors.Is(err, domain.ErrTooManyLines):
		return fmt.Sprintf("up to %d items", domain.MaxLines)
	case errors.Is(err, domain.ErrProductRequired), errors.Is(err, domain.ErrOptionRequired):
		return "choose a product and option for every item"
	case errors.Is(err, domain.ErrVariantUnresolved):
		return "the selected option cannot be ordered"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "quantity must be at least 1"
	}
	return err.Error()
}
