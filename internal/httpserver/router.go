package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/format"
	"storefront/internal/logger"
	"storefront/internal/notify"
	catalogrepo "storefront/internal/repository/catalog"
	"storefront/internal/repository/kv"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
)

type cartService interface {
	Summary(ctx context.Context) cartsvc.Summary
	Add(ctx context.Context, in cartsvc.AddInput) error
	Remove(ctx context.Context, id domain.ID) error
	SetQuantity(ctx context.Context, id domain.ID, qty int) error
	Clear(ctx context.Context) error
}

type catalogService interface {
	Browse(ctx context.Context, c catalogsvc.Criteria) (*catalogsvc.Listing, error)
	Offers(ctx context.Context) ([]domain.Product, error)
	Detail(ctx context.Context, id domain.ID) (*catalogsvc.Detail, error)
	Product(ctx context.Context, id domain.ID) (*domain.Product, error)
	Orders(ctx context.Context, userID domain.ID) ([]domain.Order, error)
}

type subscriber interface {
	Subscribe(h notify.Handler) (unsubscribe func())
}

// Deps are the collaborators the routes need.
type Deps struct {
	CartSvc     cartService
	CatalogSvc  catalogService
	Events      subscriber
	Prices      *format.PriceFormatter
	Images      format.ImageResolver
	Storage     kv.Pinger
	CORSOrigins []string

	// closing ends open event streams once the server starts shutting down.
	closing <-chan struct{}
}

// buildRouter wires routes for the API.
func buildRouter(log *zap.Logger, deps Deps) (*gin.Engine, error) {
	if deps.CartSvc == nil || deps.CatalogSvc == nil || deps.Events == nil {
		return nil, errors.New("httpserver: cart, catalog and events are required")
	}
	if deps.Prices == nil {
		deps.Prices = format.NewPriceFormatter(format.DefaultLocale)
	}

	router := gin.New()
	router.Use(logger.RequestID(), logger.Gin(log), logger.Recovery(log))
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  deps.CORSOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders:  []string{"Origin", "Content-Type", logger.RequestIDHeader},
			ExposeHeaders: []string{logger.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Storage))

	h := &handlers{deps: deps}

	cart := router.Group("/cart")
	cart.GET("", h.getCart)
	cart.DELETE("", h.clearCart)
	cart.POST("/items", h.addItem)
	cart.PUT("/items/:id", h.setQuantity)
	cart.DELETE("/items/:id", h.removeItem)
	cart.POST("/products/:id", h.addProduct)
	cart.GET("/events", h.cartEvents)

	router.GET("/products", h.browse)
	router.GET("/products/:id", h.productDetail)
	router.GET("/offers", h.offers)
	router.GET("/orders/:userId", h.orders)

	router.GET("/format/price", h.formatPrice)
	router.GET("/format/image", h.formatImage)
	router.GET("/format/images/remove", h.removeImage)
	router.GET("/format/images/append", h.appendImage)

	return router, nil
}

type handlers struct {
	deps Deps
}

// writeError maps domain errors onto status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.As(err, new(*catalogrepo.StatusError)):
		status = http.StatusBadGateway
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

var errBadRequest = errors.New("bad request")
