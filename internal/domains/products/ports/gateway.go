package ports

import (
	"errors"

	"github.com/Apurer/coffee-admin/internal/domains/products/domain"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

var ErrNotFound = errors.New("product not found")

// Gateway reads and writes products on the backend.
type Gateway = resource.Gateway[domain.Product, domain.Payload]
