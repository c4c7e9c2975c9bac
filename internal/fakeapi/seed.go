package fakeapi

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	membersdomain "github.com/Apurer/coffee-admin/internal/domains/members/domain"
	ordersdomain "github.com/Apurer/coffee-admin/internal/domains/orders/domain"
	productsdomain "github.com/Apurer/coffee-admin/internal/domains/products/domain"
)

//go:embed testdata/seed.yaml
var defaultSeed []byte

// Fixture is the YAML document loaded by Seed.
type Fixture struct {
	Members  []membersdomain.Payload `yaml:"members"`
	Products []struct {
		Name        string                       `yaml:"name"`
		Price       int                          `yaml:"price"`
		Continent   string                       `yaml:"continent"`
		Nationality string                       `yaml:"nationality"`
		Type        string                       `yaml:"type"`
		Options     []productsdomain.OptionInput `yaml:"options"`
	} `yaml:"products"`
	Orders []struct {
		Member int    `yaml:"member"`
		Status string `yaml:"status"`
		Lines  []struct {
			Product  int `yaml:"product"`
			Option   int `yaml:"option"`
			Quantity int `yaml:"quantity"`
		} `yaml:"lines"`
	} `yaml:"orders"`
}

// SeedDefault loads the bundled demo catalog.
func SeedDefault(ctx context.Context, b *Backend) error {
	return Seed(ctx, b, defaultSeed)
}

// Seed creates the fixture's members, products and orders through the
// gateways. Orders refer to members and products by 0-based position and
// to options by position within the product.
func Seed(ctx context.Context, b *Backend, doc []byte) error {
	var fx Fixture
	if err := yaml.Unmarshal(doc, &fx); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}

	memberIDs := make([]int64, 0, len(fx.Members))
	for _, m := range fx.Members {
		saved, err := b.Members.Create(ctx, m)
		if err != nil {
			return fmt.Errorf("seed member %s: %w", m.Email, err)
		}
		memberIDs = append(memberIDs, saved.MemberID)
	}

	products := make([]productsdomain.Product, 0, len(fx.Products))
	for _, p := range fx.Products {
		thumb := placeholder(strings.ReplaceAll(strings.ToLower(p.Name), " ", "-") + ".png")
		saved, err := b.Products.Create(ctx, productsdomain.Payload{
			ProductName: p.Name,
			BasePrice:   p.Price,
			Continent:   p.Continent,
			Nationality: p.Nationality,
			Type:        p.Type,
			Thumbnail:   &thumb,
			Options:     p.Options,
		})
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
		products = append(products, saved)
	}

	for i, o := range fx.Orders {
		if o.Member < 0 || o.Member >= len(memberIDs) {
			return fmt.Errorf("seed order %d: unknown member %d", i, o.Member)
		}
		payload := ordersdomain.Payload{MemberID: memberIDs[o.Member]}
		for _, l := range o.Lines {
			if l.Product < 0 || l.Product >= len(products) || l.Option < 0 || l.Option >= len(products[l.Product].Options) {
				return fmt.Errorf("seed order %d: unknown product option %d/%d", i, l.Product, l.Option)
			}
			opt := products[l.Product].Options[l.Option]
			payload.Items = append(payload.Items, ordersdomain.LineInput{VariantID: *opt.VariantID, Quantity: l.Quantity})
		}
		saved, err := b.Orders.Create(ctx, payload)
		if err != nil {
			return fmt.Errorf("seed order %d: %w", i, err)
		}
		if o.Status != "" {
			status, err := ordersdomain.ParseStatus(o.Status)
			if err != nil {
				return fmt.Errorf("seed order %d: %w", i, err)
			}
			if _, err := b.Orders.UpdateStatus(ctx, saved.OrderID, status); err != nil {
				return fmt.Errorf("seed order %d: %w", i, err)
			}
		}
	}
	return nil
}

func placeholder(name string) productsdomain.Upload {
	return productsdomain.Upload{
		Filename:    name,
		ContentType: "image/png",
		Open: func(context.Context) (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader([]byte("\x89PNG\r\n\x1a\n"))), nil
		},
	}
}
