package ports

import (
	"errors"

	"github.com/Apurer/coffee-admin/internal/domains/members/domain"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

var (
	ErrNotFound       = errors.New("member not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Gateway reads and writes members on the backend.
type Gateway = resource.Gateway[domain.Member, domain.Payload]
