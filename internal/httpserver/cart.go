package httpserver

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type addItemRequest struct {
	ID       domain.ID     `json:"id"`
	Name     string        `json:"nombre"`
	Price    domain.Amount `json:"precio"`
	Image    string        `json:"imagen"`
	Quantity any           `json:"cantidad"`
}

type addProductRequest struct {
	Quantity   any `json:"cantidad"`
	ImageIndex int `json:"imageIndex"`
}

type setQuantityRequest struct {
	Quantity any `json:"cantidad"`
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.CartSvc.Summary(c.Request.Context()))
}

func (h *handlers) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	err := h.deps.CartSvc.Add(c.Request.Context(), cartsvc.AddInput{
		ID:        req.ID,
		Name:      req.Name,
		UnitPrice: req.Price,
		ImageRef:  req.Image,
		Quantity:  cartsvc.QuantityOf(req.Quantity),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.deps.CartSvc.Summary(c.Request.Context()))
}

// addProduct adds a catalog product with the image the shopper was looking at.
func (h *handlers) addProduct(c *gin.Context) {
	var req addProductRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
	}
	ctx := c.Request.Context()
	p, err := h.deps.CatalogSvc.Product(ctx, domain.ParseID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	err = h.deps.CartSvc.Add(ctx, cartsvc.AddInput{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageRef:  h.deps.Images.Resolve(p.Images, req.ImageIndex),
		Quantity:  cartsvc.QuantityOf(req.Quantity),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.deps.CartSvc.Summary(ctx))
}

func (h *handlers) setQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	qty, ok := wholeNumber(req.Quantity)
	if !ok {
		writeError(c, fmt.Errorf("%w: cantidad must be a whole number", errBadRequest))
		return
	}
	if err := h.deps.CartSvc.SetQuantity(c.Request.Context(), domain.ParseID(c.Param("id")), qty); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.deps.CartSvc.Summary(c.Request.Context()))
}

func (h *handlers) removeItem(c *gin.Context) {
	if err := h.deps.CartSvc.Remove(c.Request.Context(), domain.ParseID(c.Param("id"))); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.deps.CartSvc.Summary(c.Request.Context()))
}

func (h *handlers) clearCart(c *gin.Context) {
	if err := h.deps.CartSvc.Clear(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func wholeNumber(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		if x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
			return 0, false
		}
		return int(x), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		return n, err == nil
	default:
		return 0, false
	}
}
