package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/coffee-admin/internal/domains/members/domain"
)

var (
	// ErrInvalidInput signals the form violated a member rule.
	ErrInvalidInput = errors.New("invalid member input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmailRequired) ||
		errors.Is(err, domain.ErrEmailInvalid) ||
		errors.Is(err, domain.ErrPasswordRequired) ||
		errors.Is(err, domain.ErrNameRequired) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

func userText(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmailRequired):
		return "enter an email"
	case errors.Is(err, domain.ErrEmailInvalid):
		return "enter a valid email"
	case errors.Is(err, domain.ErrPasswordRequired):
		return "enter a password"
	case errors.Is(err, domain.ErrNameRequired):
		return "enter a name"
	}
	return err.Error()
}
