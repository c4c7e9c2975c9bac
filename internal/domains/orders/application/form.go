package application

import (
	"context"
	"fmt"
	"strings"

	members "github.com/Apurer/coffee-admin/internal/domains/members/domain"
	"github.com/Apurer/coffee-admin/internal/domains/orders/domain"
	products "github.com/Apurer/coffee-admin/internal/domains/products/domain"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

// MemberLookup reads the already fetched member collection.
type MemberLookup interface {
	Find(id int64) (members.Member, bool)
}

// ProductLookup reads the already fetched product collection.
type ProductLookup interface {
	Find(id int64) (products.Product, bool)
}

// Saver is the part of the order store a form submits to.
type Saver interface {
	Save(ctx context.Context, payload domain.Payload, id *int64) (domain.Order, error)
}

// Line is one order row: a product, then one of its options.
type Line struct {
	ProductID int64 `yaml:"productId"`
	OptionID  int64 `yaml:"optionId"`
	Quantity  int   `yaml:"quantity"`
}

// Draft is the editable state of the order form.
type Draft struct {
	MemberID        int64  `yaml:"memberId"`
	ShippingAddress string `yaml:"shippingAddress,omitempty"`
	Lines           []Line `yaml:"items"`
}

func emptyDraft() Draft {
	return Draft{Lines: []Line{{Quantity: 1}}}
}

// Form composes a new order from the member and product collections.
type Form struct {
	draft      Draft
	autoFilled bool
	members    MemberLookup
	products   ProductLookup
	notifier   resource.Notifier
	onCancel   func()
}

// NewForm starts an empty order form reading members from m and products from p.
func NewForm(n resource.Notifier, m MemberLookup, p ProductLookup, onCancel func()) *Form {
	return &Form{draft: emptyDraft(), members: m, products: p, notifier: n, onCancel: onCancel}
}

// Draft returns a copy of the current state.
func (f *Form) Draft() Draft {
	d := f.draft
	d.Lines = append([]Line(nil), f.draft.Lines...)
	return d
}

// SetDraft replaces the whole draft, e.g. from a YAML file. A provided
// address counts as typed by hand.
func (f *Form) SetDraft(d Draft) {
	if len(d.Lines) == 0 {
		d.Lines = []Line{{Quantity: 1}}
	}
	f.draft = d
	f.autoFilled = false
	if d.ShippingAddress == "" && d.MemberID != 0 {
		f.fillAddress()
	}
}

// SelectMember sets the ordering member. The shipping address is replaced
// with the member's address when it is empty or was filled automatically.
func (f *Form) SelectMember(id int64) {
	f.draft.MemberID = id
	f.fillAddress()
}

// SetAddress records a hand-typed address, which stops auto-fill.
func (f *Form) SetAddress(addr string) {
	f.draft.ShippingAddress = addr
	f.autoFilled = false
}

func (f *Form) fillAddress() {
	if f.draft.ShippingAddress != "" && !f.autoFilled {
		return
	}
	addr := ""
	if m, ok := f.members.Find(f.draft.MemberID); ok {
		addr = m.Address
	}
	f.draft.ShippingAddress = addr
	f.autoFilled = true
}

// AddLine appends an empty row.
func (f *Form) AddLine() bool {
	if len(f.draft.Lines) >= domain.MaxLines {
		f.notifier.Post(resource.KindWarning, userText(domain.ErrTooManyLines))
		return false
	}
	f.draft.Lines = append(f.draft.Lines, Line{Quantity: 1})
	return true
}

// RemoveLine drops row i unless it is the last one.
func (f *Form) RemoveLine(i int) bool {
	if len(f.draft.Lines) <= domain.MinLines {
		f.notifier.Post(resource.KindWarning, userText(domain.ErrLinesRequired))
		return false
	}
	if i < 0 || i >= len(f.draft.Lines) {
		return false
	}
	f.draft.Lines = append(f.draft.Lines[:i:i], f.draft.Lines[i+1:]...)
	return true
}

// SetLineProduct picks the product of row i. Changing it clears the option.
func (f *Form) SetLineProduct(i int, productID int64) bool {
	if i < 0 || i >= len(f.draft.Lines) {
		return false
	}
	line := &f.draft.Lines[i]
	if line.ProductID != productID {
		line.ProductID = productID
		line.OptionID = 0
	}
	return true
}

// SetLineOption picks the option of row i. It reports false for an unknown row.
func (f *Form) SetLineOption(i int, optionID int64) bool {
	if i < 0 || i >= len(f.draft.Lines) {
		return false
	}
	f.draft.Lines[i].OptionID = optionID
	return true
}

// SetLineQuantity sets the quantity of row i. Bounds are checked on submit.
func (f *Form) SetLineQuantity(i, qty int) bool {
	if i < 0 || i >= len(f.draft.Lines) {
		return false
	}
	f.draft.Lines[i].Quantity = qty
	return true
}

// Options lists the options available to row i.
func (f *Form) Options(i int) []products.Option {
	if i < 0 || i >= len(f.draft.Lines) {
		return nil
	}
	p, ok := f.products.Find(f.draft.Lines[i].ProductID)
	if !ok {
		return nil
	}
	return append([]products.Option(nil), p.Options...)
}

// Payload validates the draft and resolves every line to a variant. A line
// whose option has no known variant blocks the submission.
func (f *Form) Payload() (domain.Payload, error) {
	p, err := f.build()
	if err != nil {
		f.notifier.Post(resource.KindError, userText(err))
		return domain.Payload{}, mapError(err)
	}
	return p, nil
}

func (f *Form) build() (domain.Payload, error) {
	d := f.draft
	if d.MemberID <= 0 {
		return domain.Payload{}, domain.ErrMemberRequired
	}
	if _, ok := f.members.Find(d.MemberID); !ok {
		return domain.Payload{}, domain.ErrMemberRequired
	}
	if len(d.Lines) < domain.MinLines {
		return domain.Payload{}, domain.ErrLinesRequired
	}
	for _, line := range d.Lines {
		if line.ProductID == 0 {
			return domain.Payload{}, domain.ErrProductRequired
		}
		if line.OptionID == 0 {
			return domain.Payload{}, domain.ErrOptionRequired
		}
	}
	p := domain.Payload{MemberID: d.MemberID, ShippingAddress: strings.TrimSpace(d.ShippingAddress)}
	for i, line := range d.Lines {
		variant, err := f.resolve(line)
		if err != nil {
			return domain.Payload{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		p.Items = append(p.Items, domain.LineInput{VariantID: variant, Quantity: line.Quantity})
	}
	if err := p.Validate(); err != nil {
		return domain.Payload{}, err
	}
	return p, nil
}

func (f *Form) resolve(line Line) (int64, error) {
	product, ok := f.products.Find(line.ProductID)
	if !ok {
		return 0, domain.ErrVariantUnresolved
	}
	opt, ok := product.FindOption(line.OptionID)
	if !ok || opt.VariantID == nil || *opt.VariantID <= 0 {
		return 0, domain.ErrVariantUnresolved
	}
	return *opt.VariantID, nil
}

// Submit creates the order. Fields are kept when the save is rejected.
func (f *Form) Submit(ctx context.Context, s Saver) (domain.Order, error) {
	p, err := f.Payload()
	if err != nil {
		return domain.Order{}, err
	}
	saved, err := s.Save(ctx, p, nil)
	if err != nil {
		return domain.Order{}, err
	}
	f.draft = emptyDraft()
	f.autoFilled = false
	return saved, nil
}

// Cancel resets the form and runs the cancel callback.
func (f *Form) Cancel() {
	f.draft = emptyDraft()
	f.autoFilled = false
	if f.onCancel != nil {
		f.onCancel()
	}
}
