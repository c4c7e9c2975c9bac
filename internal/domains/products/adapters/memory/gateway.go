package memory

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"sync"

	"github.com/Apurer/coffee-admin/internal/domains/products/domain"
	"github.com/Apurer/coffee-admin/internal/domains/products/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// UploadStore keeps uploaded image bytes under a relative name.
type UploadStore interface {
	Put(ctx context.Context, name string, r io.Reader) error
}

// Gateway is an in-memory product backend. Uploaded images are written to
// the upload store and referenced by their relative name, the way the real
// backend stores paths under /uploads.
type Gateway struct {
	mu        sync.RWMutex
	products  map[int64]domain.Product
	uploads   UploadStore
	nextID    int64
	nextOpt   int64
	nextImage int64
}

func NewGateway(uploads UploadStore) *Gateway {
	return &Gateway{products: map[int64]domain.Product{}, uploads: uploads}
}

// List returns products newest first.
func (g *Gateway) List(_ context.Context) ([]domain.Product, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	list := make([]domain.Product, 0, len(g.products))
	for _, p := range g.products {
		list = append(list, clone(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID > list[j].ProductID })
	return list, nil
}

func (g *Gateway) Get(_ context.Context, id int64) (domain.Product, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.products[id]
	if !ok {
		return domain.Product{}, ports.ErrNotFound
	}
	return clone(p), nil
}

func (g *Gateway) Create(ctx context.Context, payload domain.Payload) (domain.Product, error) {
	if err := payload.Validate(); err != nil {
		return domain.Product{}, err
	}
	if payload.Thumbnail == nil {
		return domain.Product{}, domain.ErrThumbnailRequired
	}

	g.mu.Lock()
	g.nextID++
	id := g.nextID
	g.mu.Unlock()

	p := domain.Product{ProductID: id}
	if err := g.apply(ctx, &p, payload); err != nil {
		return domain.Product{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.products[id] = p
	return clone(p), nil
}

func (g *Gateway) Update(ctx context.Context, id int64, payload domain.Payload) (domain.Product, error) {
	if err := payload.Validate(); err != nil {
		return domain.Product{}, err
	}
	g.mu.RLock()
	existing, ok := g.products[id]
	g.mu.RUnlock()
	if !ok {
		return domain.Product{}, ports.ErrNotFound
	}
	p := clone(existing)
	if err := g.apply(ctx, &p, payload); err != nil {
		return domain.Product{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.products[id] = p
	return clone(p), nil
}

func (g *Gateway) Delete(_ context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(g.products, id)
	return nil
}

// Variant finds the product and option a variant identifier belongs to.
func (g *Gateway) Variant(variantID int64) (domain.Product, domain.Option, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, p := range g.products {
		for _, o := range p.Options {
			if o.VariantID != nil && *o.VariantID == variantID {
				return clone(p), o, true
			}
		}
	}
	return domain.Product{}, domain.Option{}, false
}

func (g *Gateway) apply(ctx context.Context, p *domain.Product, payload domain.Payload) error {
	p.ProductName = payload.ProductName
	p.BasePrice = payload.BasePrice
	p.Continent = payload.Continent
	p.Nationality = payload.Nationality
	p.Type = payload.Type

	if payload.Thumbnail != nil {
		name, err := g.store(ctx, p.ProductID, "thumb", *payload.Thumbnail)
		if err != nil {
			return err
		}
		p.ThumbnailImg = name
	}
	// Detail images are replaced by the uploaded set, like the real backend.
	p.DetailImages = nil
	p.DetailImg = ""
	for _, up := range payload.DetailImages {
		g.mu.Lock()
		g.nextImage++
		imageID := g.nextImage
		g.mu.Unlock()
		name, err := g.store(ctx, p.ProductID, fmt.Sprintf("detail%d", imageID), up)
		if err != nil {
			return err
		}
		p.DetailImages = append(p.DetailImages, domain.Image{
			ImageID:   imageID,
			ImageURL:  name,
			SortOrder: len(p.DetailImages),
		})
	}
	if len(p.DetailImages) > 0 {
		p.DetailImg = p.DetailImages[0].ImageURL
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	p.Options = p.Options[:0:0]
	for _, in := range payload.Options {
		g.nextOpt++
		variant := g.nextOpt
		p.Options = append(p.Options, domain.Option{
			OptionID:    g.nextOpt,
			OptionValue: in.OptionValue,
			ExtraPrice:  in.ExtraPrice,
			Stock:       in.Stock,
			VariantID:   &variant,
		})
	}
	return nil
}

func (g *Gateway) store(ctx context.Context, id int64, kind string, up domain.Upload) (string, error) {
	if up.Open == nil {
		return "", fmt.Errorf("upload %q has no content", up.Filename)
	}
	rc, err := up.Open(ctx)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", up.Filename, err)
	}
	defer rc.Close()
	name := path.Join("products", fmt.Sprint(id), kind+"-"+path.Base(up.Filename))
	if g.uploads == nil {
		_, err = io.Copy(io.Discard, rc)
		return name, err
	}
	if err := g.uploads.Put(ctx, name, rc); err != nil {
		return "", err
	}
	return name, nil
}

func clone(p domain.Product) domain.Product {
	p.DetailImages = append([]domain.Image(nil), p.DetailImages...)
	p.Options = append([]domain.Option(nil), p.Options...)
	return p
}
