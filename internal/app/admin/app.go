package admin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/Apurer/coffee-admin/internal/clients/http/coffee"
	membersapp "github.com/Apurer/coffee-admin/internal/domains/members/application"
	membersdomain "github.com/Apurer/coffee-admin/internal/domains/members/domain"
	ordersobs "github.com/Apurer/coffee-admin/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/coffee-admin/internal/domains/orders/application"
	productsapp "github.com/Apurer/coffee-admin/internal/domains/products/application"
	productsdomain "github.com/Apurer/coffee-admin/internal/domains/products/domain"
	"github.com/Apurer/coffee-admin/internal/platform/blob"
	"github.com/Apurer/coffee-admin/internal/platform/drafts"
	platformobservability "github.com/Apurer/coffee-admin/internal/platform/observability"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
	resourceobs "github.com/Apurer/coffee-admin/internal/shared/resource/observability"
)

// ServiceName identifies the admin client in traces.
const ServiceName = "coffee-admin"

// App is the wired admin client: one service per resource sharing a
// status board, plus draft storage and image sources.
type App struct {
	cfg      Config
	logger   *slog.Logger
	board    *resource.Board
	client   *coffee.Client
	products *productsapp.Service
	members  *membersapp.Service
	orders   *ordersapp.Service
	drafts   *drafts.Store
	images   blob.Source
	shutdown func(context.Context) error
}

// New wires the admin client for cfg. Logs go to logOut.
func New(ctx context.Context, cfg Config, logOut io.Writer) (*App, error) {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Config{
		ServiceName: ServiceName,
		LogLevel:    cfg.LogLevel,
		LogOutput:   logOut,
		Exporter:    cfg.Exporter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := instruments.Logger

	client, err := coffee.New(cfg.APIURL, coffee.WithTimeout(cfg.HTTPTimeout))
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	images, err := buildImageSource(ctx, cfg)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	board := resource.NewBoard(cfg.MessageTTL, nil)
	storeOpts := []resource.Option{
		resource.WithBoard(board),
		resource.WithLogger(logger),
		resource.WithValidator(validator.New()),
	}
	obsOpts := func(scope string) []resourceobs.Option {
		return []resourceobs.Option{
			resourceobs.WithLogger(logger),
			resourceobs.WithTracer(instruments.Tracer(scope)),
			resourceobs.WithMeter(instruments.Meter(scope)),
		}
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		board:  board,
		client: client,
		products: productsapp.NewService(
			resourceobs.New[productsdomain.Product, productsdomain.Payload](client.Products(), "products", obsOpts("internal.domains.products")...),
			cfg.PageSize, storeOpts...,
		),
		members: membersapp.NewService(
			resourceobs.New[membersdomain.Member, membersdomain.Payload](client.Members(), "members", obsOpts("internal.domains.members")...),
			cfg.PageSize, storeOpts...,
		),
		orders: ordersapp.NewService(
			ordersobs.New(client.Orders(), obsOpts("internal.domains.orders")...),
			cfg.PageSize, storeOpts...,
		),
		drafts:   drafts.New(cfg.DraftsDir),
		images:   images,
		shutdown: shutdown,
	}, nil
}

// Close flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	return a.shutdown(ctx)
}

// Board is the status board shared by every store and form.
func (a *App) Board() *resource.Board { return a.board }

// buildImageSource resolves new image references: local paths relative to
// the working directory, s3://bucket/key when S3 is configured.
func buildImageSource(ctx context.Context, cfg Config) (blob.Source, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	local, err := blob.NewFilesystem(wd)
	if err != nil {
		return nil, err
	}
	router := blob.Router{Local: local}
	if cfg.S3.Region != "" || cfg.S3.Endpoint != "" {
		s3src, err := blob.NewS3(ctx, blob.S3Config{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		router.S3 = s3src
	}
	return router, nil
}
