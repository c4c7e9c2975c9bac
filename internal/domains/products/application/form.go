package application

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/Apurer/coffee-admin/internal/domains/products/domain"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

// ImageOpener reads a local image reference (a file path or s3:// URL).
type ImageOpener interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// OpenerFunc adapts a plain function, such as a client download, to ImageOpener.
type OpenerFunc func(ctx context.Context, ref string) (io.ReadCloser, error)

// Open calls fn.
func (fn OpenerFunc) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	return fn(ctx, ref)
}

// Saver is the part of the product store a form submits to.
type Saver interface {
	Save(ctx context.Context, payload domain.Payload, id *int64) (domain.Product, error)
}

// DetailImage is one row of the detail image list. Rows loaded from the
// backend carry URL; rows added in the form carry Ref. An update replaces
// the stored list, so kept rows are sent again in their current order.
type DetailImage struct {
	ImageID int64  `yaml:"imageId,omitempty"`
	URL     string `yaml:"url,omitempty"`
	Ref     string `yaml:"ref,omitempty"`
}

// IsNew reports whether the row still has to be uploaded.
func (d DetailImage) IsNew() bool { return d.Ref != "" }

// Draft is the editable state of the product form. It is also the YAML
// document accepted by --file and written when a save fails.
type Draft struct {
	ProductID    *int64               `yaml:"productId,omitempty"`
	ProductName  string               `yaml:"productName"`
	BasePrice    int                  `yaml:"basePrice"`
	Continent    string               `yaml:"continent,omitempty"`
	Nationality  string               `yaml:"nationality,omitempty"`
	Type         string               `yaml:"type,omitempty"`
	Thumbnail    string               `yaml:"thumbnail,omitempty"`
	ThumbnailURL string               `yaml:"thumbnailUrl,omitempty"`
	DetailImages []DetailImage        `yaml:"detailImages,omitempty"`
	Options      []domain.OptionInput `yaml:"options"`
}

// EmptyDraft is the create-mode default.
func EmptyDraft() Draft {
	return Draft{Options: []domain.OptionInput{domain.DefaultOption()}}
}

// DraftOf copies an existing product into an edit-mode draft.
func DraftOf(p domain.Product) Draft {
	id := p.ProductID
	d := Draft{
		ProductID:    &id,
		ProductName:  p.ProductName,
		BasePrice:    p.BasePrice,
		Continent:    p.Continent,
		Nationality:  p.Nationality,
		Type:         p.Type,
		ThumbnailURL: p.ThumbnailImg,
	}
	for _, img := range p.DetailImages {
		d.DetailImages = append(d.DetailImages, DetailImage{ImageID: img.ImageID, URL: img.ImageURL})
	}
	for _, o := range p.Options {
		d.Options = append(d.Options, domain.OptionInput{
			OptionValue: o.OptionValue,
			ExtraPrice:  o.ExtraPrice,
			Stock:       o.Stock,
		})
	}
	if len(d.Options) == 0 {
		d.Options = []domain.OptionInput{domain.DefaultOption()}
	}
	return d
}

// Form is the product create/edit form.
type Form struct {
	draft    Draft
	notifier resource.Notifier
	opener   ImageOpener
	stored   ImageOpener
	onCancel func()
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithOpener sets how new image references are read at submit time.
func WithOpener(o ImageOpener) FormOption {
	return func(f *Form) {
		f.opener = o
	}
}

// WithStoredOpener sets how images already held by the backend are read
// when an edit sends them again.
func WithStoredOpener(o ImageOpener) FormOption {
	return func(f *Form) {
		f.stored = o
	}
}

// WithCancel registers the callback run by Cancel.
func WithCancel(fn func()) FormOption {
	return func(f *Form) {
		f.onCancel = fn
	}
}

// NewForm starts a create-mode form that reports problems to n.
func NewForm(n resource.Notifier, opts ...FormOption) *Form {
	f := &Form{draft: EmptyDraft(), notifier: n}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Load switches the form to edit mode for p, or back to create mode when p
// is nil.
func (f *Form) Load(p *domain.Product) {
	if p == nil {
		f.draft = EmptyDraft()
		return
	}
	f.draft = DraftOf(*p)
}

// SetDraft replaces the whole draft, e.g. from a YAML file.
func (f *Form) SetDraft(d Draft) {
	if len(d.Options) == 0 {
		d.Options = []domain.OptionInput{domain.DefaultOption()}
	}
	f.draft = d
}

// Draft returns a copy of the current state.
func (f *Form) Draft() Draft {
	d := f.draft
	d.DetailImages = append([]DetailImage(nil), f.draft.DetailImages...)
	d.Options = append([]domain.OptionInput(nil), f.draft.Options...)
	return d
}

// Editing reports whether the form edits an existing product.
func (f *Form) Editing() bool { return f.draft.ProductID != nil }

// SetName sets the product name.
func (f *Form) SetName(name string) { f.draft.ProductName = name }

// SetPrice sets the base price in won.
func (f *Form) SetPrice(price int) { f.draft.BasePrice = price }

// SetType sets the process type.
func (f *Form) SetType(t string) { f.draft.Type = t }

// SetNationality sets the origin country. It must belong to the continent.
func (f *Form) SetNationality(n string) { f.draft.Nationality = n }

// SetContinent changes the continent and clears the nationality.
func (f *Form) SetContinent(c string) {
	if f.draft.Continent == c {
		return
	}
	f.draft.Continent = c
	f.draft.Nationality = ""
}

// AddOption appends a row with the next unused weight.
func (f *Form) AddOption() bool {
	if len(f.draft.Options) >= domain.MaxOptions {
		f.warn(domain.ErrTooManyOptions)
		return false
	}
	used := make([]string, 0, len(f.draft.Options))
	for _, o := range f.draft.Options {
		used = append(used, o.OptionValue)
	}
	f.draft.Options = append(f.draft.Options, domain.OptionInput{OptionValue: domain.NextWeight(used)})
	return true
}

// RemoveOption drops row i unless it is the last one.
func (f *Form) RemoveOption(i int) bool {
	if len(f.draft.Options) <= domain.MinOptions {
		f.warn(domain.ErrTooFewOptions)
		return false
	}
	if i < 0 || i >= len(f.draft.Options) {
		return false
	}
	f.draft.Options = append(f.draft.Options[:i:i], f.draft.Options[i+1:]...)
	return true
}

// SetOption overwrites row i.
func (f *Form) SetOption(i int, o domain.OptionInput) bool {
	if i < 0 || i >= len(f.draft.Options) {
		return false
	}
	f.draft.Options[i] = o
	return true
}

// SetThumbnail selects a new thumbnail to upload.
func (f *Form) SetThumbnail(ref string) { f.draft.Thumbnail = ref }

// ClearThumbnail drops both the new and the stored thumbnail preview.
func (f *Form) ClearThumbnail() {
	f.draft.Thumbnail = ""
	f.draft.ThumbnailURL = ""
}

// AddDetailImages appends new images in the given order.
func (f *Form) AddDetailImages(refs ...string) {
	for _, ref := range refs {
		if ref = strings.TrimSpace(ref); ref != "" {
			f.draft.DetailImages = append(f.draft.DetailImages, DetailImage{Ref: ref})
		}
	}
}

// RemoveDetail drops detail image i.
func (f *Form) RemoveDetail(i int) bool {
	if i < 0 || i >= len(f.draft.DetailImages) {
		return false
	}
	f.draft.DetailImages = append(f.draft.DetailImages[:i:i], f.draft.DetailImages[i+1:]...)
	return true
}

// MoveDetail swaps image i with its neighbour in direction delta (-1 or +1).
// Moving past either end does nothing.
func (f *Form) MoveDetail(i, delta int) bool {
	j := i + delta
	n := len(f.draft.DetailImages)
	if (delta != -1 && delta != 1) || i < 0 || i >= n || j < 0 || j >= n {
		return false
	}
	imgs := f.draft.DetailImages
	imgs[i], imgs[j] = imgs[j], imgs[i]
	return true
}

// Validate checks the form in display order and posts the first failure.
func (f *Form) Validate() error {
	d := f.draft
	var err error
	switch {
	case strings.TrimSpace(d.ProductName) == "":
		err = domain.ErrNameRequired
	case d.BasePrice <= 0:
		err = domain.ErrPriceRequired
	case !f.Editing() && d.Thumbnail == "":
		err = domain.ErrThumbnailRequired
	}
	if err == nil {
		err = f.payload().Validate()
	}
	if err != nil {
		f.notifier.Post(resource.KindError, userText(err))
		return mapError(err)
	}
	return nil
}

// Payload validates the form and converts it to the request body. New
// images become uploads that are opened only while the body is written.
func (f *Form) Payload() (domain.Payload, error) {
	if err := f.Validate(); err != nil {
		return domain.Payload{}, err
	}
	return f.payload(), nil
}

// Submit sends the payload. A rejected save keeps every field so the user
// can retry; a successful one resets the form.
func (f *Form) Submit(ctx context.Context, s Saver) (domain.Product, error) {
	payload, err := f.Payload()
	if err != nil {
		return domain.Product{}, err
	}
	saved, err := s.Save(ctx, payload, f.draft.ProductID)
	if err != nil {
		return domain.Product{}, err
	}
	f.draft = EmptyDraft()
	return saved, nil
}

// Cancel resets the form and runs the cancel callback.
func (f *Form) Cancel() {
	f.draft = EmptyDraft()
	if f.onCancel != nil {
		f.onCancel()
	}
}

func (f *Form) payload() domain.Payload {
	d := f.draft
	p := domain.Payload{
		ProductName: strings.TrimSpace(d.ProductName),
		BasePrice:   d.BasePrice,
		Continent:   d.Continent,
		Nationality: d.Nationality,
		Type:        d.Type,
		Options:     append([]domain.OptionInput(nil), d.Options...),
	}
	if d.Thumbnail != "" {
		up := upload(f.opener, d.Thumbnail)
		p.Thumbnail = &up
	}
	for _, img := range d.DetailImages {
		if img.IsNew() {
			p.DetailImages = append(p.DetailImages, upload(f.opener, img.Ref))
		} else {
			p.DetailImages = append(p.DetailImages, upload(f.stored, img.URL))
		}
	}
	return p
}

func upload(opener ImageOpener, ref string) domain.Upload {
	return domain.Upload{
		Filename: path.Base(ref),
		Open: func(ctx context.Context) (io.ReadCloser, error) {
			if opener == nil {
				return nil, errNoOpener
			}
			return opener.Open(ctx, ref)
		},
	}
}

var errNoOpener = errors.New("no image opener configured")

func (f *Form) warn(err error) {
	f.notifier.Post(resource.KindWarning, userText(err))
}
