package coffee

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/Apurer/coffee-admin/internal/domains/products/domain"
	"github.com/Apurer/coffee-admin/internal/domains/products/ports"
)

const productsPath = "/api/products"

var _ ports.Gateway = (*ProductsAPI)(nil)

// ProductsAPI implements the product gateway over multipart requests.
type ProductsAPI struct {
	c *Client
}

func (a *ProductsAPI) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := a.c.doJSON(ctx, http.MethodGet, productsPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ProductsAPI) Create(ctx context.Context, p domain.Payload) (domain.Product, error) {
	return a.send(ctx, http.MethodPost, productsPath, p)
}

func (a *ProductsAPI) Update(ctx context.Context, id int64, p domain.Payload) (domain.Product, error) {
	target, err := resourcePath(productsPath, id)
	if err != nil {
		return domain.Product{}, err
	}
	return a.send(ctx, http.MethodPut, target, p)
}

func (a *ProductsAPI) Delete(ctx context.Context, id int64) error {
	target, err := resourcePath(productsPath, id)
	if err != nil {
		return err
	}
	return a.c.doJSON(ctx, http.MethodDelete, target, nil, nil, nil)
}

func (a *ProductsAPI) send(ctx context.Context, method, target string, p domain.Payload) (domain.Product, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeProductForm(ctx, mw, p))
	}()

	req, err := a.c.newRequest(ctx, method, target, nil, pr)
	if err != nil {
		pr.Close()
		return domain.Product{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out domain.Product
	if err := a.c.decode(req, &out); err != nil {
		pr.CloseWithError(err)
		return domain.Product{}, err
	}
	return out, nil
}

// writeProductForm streams the multipart body. Each upload is opened right
// before its part is written and closed right after.
func writeProductForm(ctx context.Context, mw *multipart.Writer, p domain.Payload) error {
	options := p.Options
	if options == nil {
		options = []domain.OptionInput{}
	}
	encoded, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	fields := []struct{ name, value string }{
		{"productName", p.ProductName},
		{"basePrice", strconv.Itoa(p.BasePrice)},
		{"continent", p.Continent},
		{"nationality", p.Nationality},
		{"type", p.Type},
		{"options", string(encoded)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return err
		}
	}
	if p.Thumbnail != nil {
		if err := writeUpload(ctx, mw, "thumbnail", *p.Thumbnail); err != nil {
			return err
		}
	}
	for _, up := range p.DetailImages {
		if err := writeUpload(ctx, mw, "detailImages", up); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writeUpload(ctx context.Context, mw *multipart.Writer, field string, up domain.Upload) error {
	if up.Open == nil {
		return fmt.Errorf("%s %q has no content", field, up.Filename)
	}
	rc, err := up.Open(ctx)
	if err != nil {
		return fmt.Errorf("open %s %q: %w", field, up.Filename, err)
	}
	defer rc.Close()

	contentType := up.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(up.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     field,
		"filename": up.Filename,
	}))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("write %s %q: %w", field, up.Filename, err)
	}
	return nil
}
