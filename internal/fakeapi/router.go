// Package fakeapi serves the coffee shop REST API from memory so the admin
// client can be run and tested without the real backend.
package fakeapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	membersmemory "github.com/Apurer/coffee-admin/internal/domains/members/adapters/memory"
	ordersmemory "github.com/Apurer/coffee-admin/internal/domains/orders/adapters/memory"
	productsmemory "github.com/Apurer/coffee-admin/internal/domains/products/adapters/memory"
	"github.com/Apurer/coffee-admin/internal/platform/blob"
	apierrors "github.com/Apurer/coffee-admin/internal/shared/errors"
)

// ServiceName identifies the fake API in traces.
const ServiceName = "coffee-fake-api"

// Backend is the in-memory state behind the router.
type Backend struct {
	Products *productsmemory.Gateway
	Members  *membersmemory.Gateway
	Orders   *ordersmemory.Gateway
	Uploads  blob.Store
}

// NewBackend wires the memory gateways together. Orders read members and
// product variants from the other two.
func NewBackend(uploads blob.Store, now func() time.Time) *Backend {
	if uploads == nil {
		uploads = blob.NewMemory()
	}
	products := productsmemory.NewGateway(uploads)
	members := membersmemory.NewGateway(now)
	return &Backend{
		Products: products,
		Members:  members,
		Orders:   ordersmemory.NewGateway(members, products, now),
		Uploads:  uploads,
	}
}

type routerOptions struct {
	logger   *slog.Logger
	tracing  bool
	validate *validator.Validate
}

// Option configures the router.
type Option func(*routerOptions)

func WithLogger(logger *slog.Logger) Option {
	return func(o *routerOptions) {
		o.logger = logger
	}
}

// WithTracing adds otelgin spans for every request.
func WithTracing() Option {
	return func(o *routerOptions) {
		o.tracing = true
	}
}

// NewRouter exposes backend under /api and /uploads.
func NewRouter(backend *Backend, opts ...Option) *gin.Engine {
	o := routerOptions{logger: slog.Default(), validate: validator.New()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if o.tracing {
		router.Use(otelgin.Middleware(ServiceName))
	}
	router.Use(requestLogger(o.logger))

	responder := apierrors.NewResponder("", mapDomainError)
	h := &handlers{backend: backend, responder: responder, validate: o.validate, logger: o.logger}

	api := router.Group("/api")
	api.GET("/products", h.listProducts)
	api.POST("/products", h.createProduct)
	api.PUT("/products/:id", h.updateProduct)
	api.DELETE("/products/:id", h.deleteProduct)

	api.GET("/members", h.listMembers)
	api.POST("/members", h.createMember)
	api.PUT("/members/:id", h.updateMember)
	api.DELETE("/members/:id", h.deleteMember)

	api.GET("/orders", h.listOrders)
	api.POST("/orders", h.createOrder)
	api.PATCH("/orders/:id/status", h.updateOrderStatus)
	api.DELETE("/orders/:id", h.deleteOrder)

	router.GET("/uploads/*path", h.serveUpload)
	router.NoRoute(func(c *gin.Context) {
		responder.Respond(c, apierrors.ErrNotFound.WithDetail("no route for "+c.Request.Method+" "+c.Request.URL.Path))
	})
	return router
}

type handlers struct {
	backend   *Backend
	responder *apierrors.Responder
	validate  *validator.Validate
	logger    *slog.Logger
}

// parseID binds the :id path parameter the way generated servers do.
func (h *handlers) parseID(c *gin.Context) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil || id <= 0 {
		h.responder.BadRequest(c, "invalid id "+c.Param("id"))
		return 0, false
	}
	return id, true
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", requestID),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
		}
		logger.LogAttrs(c.Request.Context(), level, "request", attrs...)
	}
}
