package fakeapi

import (
	"errors"

	membersdomain "github.com/Apurer/coffee-admin/internal/domains/members/domain"
	membersports "github.com/Apurer/coffee-admin/internal/domains/members/ports"
	ordersdomain "github.com/Apurer/coffee-admin/internal/domains/orders/domain"
	ordersports "github.com/Apurer/coffee-admin/internal/domains/orders/ports"
	productsdomain "github.com/Apurer/coffee-admin/internal/domains/products/domain"
	productsports "github.com/Apurer/coffee-admin/internal/domains/products/ports"
	"github.com/Apurer/coffee-admin/internal/platform/blob"
	apierrors "github.com/Apurer/coffee-admin/internal/shared/errors"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

var validationErrors = []error{
	productsdomain.ErrNameRequired,
	productsdomain.ErrPriceRequired,
	productsdomain.ErrThumbnailRequired,
	productsdomain.ErrUnknownContinent,
	productsdomain.ErrNationalityMismatch,
	productsdomain.ErrTooManyOptions,
	productsdomain.ErrTooFewOptions,
	productsdomain.ErrOptionValueRequired,
	productsdomain.ErrNegativeOption,
	membersdomain.ErrEmailRequired,
	membersdomain.ErrEmailInvalid,
	membersdomain.ErrPasswordRequired,
	membersdomain.ErrNameRequired,
	ordersdomain.ErrInvalidStatus,
	ordersdomain.ErrMemberRequired,
	ordersdomain.ErrLinesRequired,
	ordersdomain.ErrTooManyLines,
	ordersdomain.ErrVariantUnresolved,
	ordersdomain.ErrInvalidQuantity,
}

var notFoundErrors = []error{
	productsports.ErrNotFound,
	membersports.ErrNotFound,
	ordersports.ErrNotFound,
	blob.ErrNotFound,
}

// mapDomainError turns gateway errors into problem details.
func mapDomainError(err error) (apierrors.ProblemDetail, bool) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return apierrors.ErrNotFound.WithDetail(err.Error()), true
		}
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return apierrors.ErrValidation.WithDetail(err.Error()), true
		}
	}
	switch {
	case errors.Is(err, membersports.ErrDuplicateEmail):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, resource.ErrUnsupported):
		return apierrors.ErrUnsupported.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
