package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Apurer/coffee-admin/internal/shared/localtime"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email is not a valid address")
	ErrPasswordRequired = errors.New("password is required for a new member")
	ErrNameRequired     = errors.New("member name is required")
)

// rules checks email with the same tag the store validates Payload.Email with.
var rules = validator.New()

// Member is a registered customer.
type Member struct {
	MemberID  int64          `json:"memberId"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	CreatedAt localtime.Time `json:"createdAt"`
	UpdatedAt localtime.Time `json:"updatedAt"`
}

// Key implements resource.Item.
func (m Member) Key() int64 { return m.MemberID }

// Payload is the create/update body. An empty password is omitted so an
// update keeps the stored one.
type Payload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Validate applies the member rules in order. creating requires a password.
func (p Payload) Validate(creating bool) error {
	email := strings.TrimSpace(p.Email)
	if email == "" {
		return ErrEmailRequired
	}
	if err := rules.Var(email, "email"); err != nil {
		return ErrEmailInvalid
	}
	if creating && p.Password == "" {
		return ErrPasswordRequired
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	return nil
}
