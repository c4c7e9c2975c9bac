package domain

import (
	"context"
	"errors"
	"io"
	"strings"
)

var (
	ErrNameRequired        = errors.New("product name is required")
	ErrPriceRequired       = errors.New("base price must be greater than zero")
	ErrThumbnailRequired   = errors.New("thumbnail image is required")
	ErrUnknownContinent    = errors.New("continent is not in the catalog")
	ErrNationalityMismatch = errors.New("nationality does not belong to the selected continent")
	ErrTooManyOptions      = errors.New("a product can have at most 4 options")
	ErrTooFewOptions       = errors.New("a product needs at least one option")
	ErrOptionValueRequired = errors.New("option value is required")
	ErrNegativeOption      = errors.New("option extra price and stock must not be negative")
)

// Image is a detail image already stored by the backend.
type Image struct {
	ImageID   int64  `json:"imageId"`
	ImageURL  string `json:"imageUrl"`
	SortOrder int    `json:"sortOrder"`
}

// Option is a purchasable weight of a product. VariantID is the backend
// identifier order lines refer to; older backends omit it.
type Option struct {
	OptionID    int64  `json:"optionId"`
	OptionValue string `json:"optionValue"`
	ExtraPrice  int    `json:"extraPrice"`
	Stock       int    `json:"stock"`
	VariantID   *int64 `json:"variantId,omitempty"`
}

// Product is the catalog entry returned by the backend.
type Product struct {
	ProductID    int64    `json:"productId"`
	ProductName  string   `json:"productName"`
	BasePrice    int      `json:"basePrice"`
	Type         string   `json:"type"`
	Continent    string   `json:"continent"`
	Nationality  string   `json:"nationality"`
	ThumbnailImg string   `json:"thumbnailImg"`
	DetailImg    string   `json:"detailImg,omitempty"`
	DetailImages []Image  `json:"detailImages"`
	Options      []Option `json:"options"`
}

// Key implements resource.Item.
func (p Product) Key() int64 { return p.ProductID }

// FindOption looks up one of the product's options.
func (p Product) FindOption(optionID int64) (Option, bool) {
	for _, o := range p.Options {
		if o.OptionID == optionID {
			return o, true
		}
	}
	return Option{}, false
}

// OptionInput is one option row sent on create or update.
type OptionInput struct {
	OptionValue string `json:"optionValue" yaml:"optionValue" validate:"required"`
	ExtraPrice  int    `json:"extraPrice" yaml:"extraPrice" validate:"gte=0"`
	Stock       int    `json:"stock" yaml:"stock" validate:"gte=0"`
}

// Upload is a binary attachment opened only while the request body is
// written.
type Upload struct {
	Filename    string
	ContentType string
	Open        func(ctx context.Context) (io.ReadCloser, error)
}

// Payload is the multipart create/update body. Only new images travel as
// uploads; images the backend already holds are left untouched.
type Payload struct {
	ProductName  string `validate:"required"`
	BasePrice    int    `validate:"gt=0"`
	Continent    string
	Nationality  string
	Type         string
	Thumbnail    *Upload       `validate:"-"`
	DetailImages []Upload      `validate:"-"`
	Options      []OptionInput `validate:"min=1,max=4,dive"`
}

// Validate applies the payload rules in order and returns the first failure.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.ProductName) == "" {
		return ErrNameRequired
	}
	if p.BasePrice <= 0 {
		return ErrPriceRequired
	}
	if err := CheckOrigin(p.Continent, p.Nationality); err != nil {
		return err
	}
	if len(p.Options) > MaxOptions {
		return ErrTooManyOptions
	}
	if len(p.Options) < MinOptions {
		return ErrTooFewOptions
	}
	for _, o := range p.Options {
		if strings.TrimSpace(o.OptionValue) == "" {
			return ErrOptionValueRequired
		}
		if o.ExtraPrice < 0 || o.Stock < 0 {
			return ErrNegativeOption
		}
	}
	return nil
}
