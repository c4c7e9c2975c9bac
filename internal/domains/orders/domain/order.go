package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/coffee-admin/internal/shared/localtime"
)

var (
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrMemberRequired    = errors.New("order member is required")
	ErrLinesRequired     = errors.New("an order needs at least one line")
	ErrTooManyLines      = errors.New("too many order lines")
	ErrProductRequired   = errors.New("order line product is required")
	ErrOptionRequired    = errors.New("order line option is required")
	ErrVariantUnresolved = errors.New("order line option does not resolve to a variant")
	ErrInvalidQuantity   = errors.New("order line quantity must be at least 1")
)

// Line bounds on the order form.
const (
	MaxLines = 10
	MinLines = 1
)

// Status is the order lifecycle state. Any status may follow any other.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipping  Status = "SHIPPING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists every status in tab order.
var Statuses = []Status{StatusPending, StatusPaid, StatusShipping, StatusCompleted, StatusCancelled}

var displayNames = map[Status]string{
	StatusPending:   "대기",
	StatusPaid:      "결제완료",
	StatusShipping:  "배송중",
	StatusCompleted: "완료",
	StatusCancelled: "취소",
}

// DisplayName is the label the backend sends as statusDisplayName.
func (s Status) DisplayName() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := displayNames[s]
	return ok
}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	return s, nil
}

// MemberSummary is the ordering member as embedded in an order.
type MemberSummary struct {
	MemberID int64  `json:"memberId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// OrderItem is one purchased variant.
type OrderItem struct {
	OrderItemID int64  `json:"orderItemId"`
	VariantID   int64  `json:"variantId"`
	ProductName string `json:"productName"`
	OptionValue string `json:"optionValue"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int    `json:"unitPrice"`
	Subtotal    int    `json:"subtotal"`
}

// Order is the order record returned by the backend.
type Order struct {
	OrderID           int64          `json:"orderId"`
	Member            MemberSummary  `json:"member"`
	Status            Status         `json:"status"`
	StatusDisplayName string         `json:"statusDisplayName"`
	TotalAmount       int            `json:"totalAmount"`
	ShippingAddress   string         `json:"shippingAddress"`
	OrderDate         localtime.Time `json:"orderDate"`
	UpdatedAt         localtime.Time `json:"updatedAt"`
	Items             []OrderItem    `json:"items"`
}

// Key implements resource.Item.
func (o Order) Key() int64 { return o.OrderID }

// Quantity is the number of units across all lines.
func (o Order) Quantity() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// LineInput is one requested variant.
type LineInput struct {
	VariantID int64 `json:"variantId" validate:"gt=0"`
	Quantity  int   `json:"quantity" validate:"gte=1"`
}

// Payload is the create body for POST /api/orders.
type Payload struct {
	MemberID        int64       `json:"memberId" validate:"gt=0"`
	ShippingAddress string      `json:"shippingAddress"`
	Items           []LineInput `json:"items" validate:"min=1,max=10,dive"`
}

// Validate checks the payload the way the backend does.
func (p Payload) Validate() error {
	if p.MemberID <= 0 {
		return ErrMemberRequired
	}
	if len(p.Items) < MinLines {
		return ErrLinesRequired
	}
	if len(p.Items) > MaxLines {
		return ErrTooManyLines
	}
	for _, it := range p.Items {
		if it.VariantID <= 0 {
			return ErrVariantUnresolved
		}
		if it.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	return nil
}
