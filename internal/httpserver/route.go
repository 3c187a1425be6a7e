package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/factory_registry/pkg/db"
	middleware "github.com/Skotchmaster/factory_registry/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/factory_registry/pkg/middleware/logging"

	"github.com/Skotchmaster/factory_registry/internal/models"
	"github.com/Skotchmaster/factory_registry/internal/service"
	"github.com/Skotchmaster/factory_registry/internal/transport"
)

type Deps struct {
	Services     *service.Services
	DB           *gorm.DB
	Auth         *middleware.BearerMiddleware
	Logger       *slog.Logger
	RateLimitRPS float64
}

// New builds the echo instance with middleware and every entity route mounted.
func New(d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	if d.Logger != nil {
		e.Use(loggingmw.RequestLogger(d.Logger))
	}
	e.Use(echomw.CORS())
	if d.RateLimitRPS > 0 {
		store := echomw.NewRateLimiterMemoryStore(rate.Limit(d.RateLimitRPS))
		e.Use(echomw.RateLimiter(store))
	}

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := pkgdb.Ping(ctx, d.DB); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	var writeMW []echo.MiddlewareFunc
	if d.Auth != nil && d.Auth.Enabled() {
		writeMW = append(writeMW, d.Auth.RequireAuth)
	}

	s := d.Services
	Mount(e, &EntityHTTP[models.User, transport.UserRequest]{Svc: s.Users}, writeMW...)
	Mount(e, &EntityHTTP[models.Product, transport.ProductRequest]{Svc: s.Products}, writeMW...)
	Mount(e, &EntityHTTP[models.Order, transport.OrderRequest]{Svc: s.Orders}, writeMW...)
	Mount(e, &EntityHTTP[models.Shipment, transport.ShipmentRequest]{Svc: s.Shipments}, writeMW...)
	Mount(e, &EntityHTTP[models.Contract, transport.ContractRequest]{Svc: s.Contracts}, writeMW...)
	Mount(e, &EntityHTTP[models.Workshop, transport.WorkshopRequest]{Svc: s.Workshops}, writeMW...)
	Mount(e, &EntityHTTP[models.Good, transport.GoodRequest]{Svc: s.Goods}, writeMW...)
}

func Mount[M service.Keyed, P service.Payload[M]](e *echo.Echo, h *EntityHTTP[M, P], writeMW ...echo.MiddlewareFunc) {
	g := e.Group("/" + h.Svc.Desc.Path)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, writeMW...)
	g.PUT("/:id", h.Update, writeMW...)
	g.DELETE("/:id", h.Delete, writeMW...)
}
