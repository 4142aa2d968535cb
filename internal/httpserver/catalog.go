package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/format"
	catalogsvc "storefront/internal/service/catalog"
)

func (h *handlers) browse(c *gin.Context) {
	listing, err := h.deps.CatalogSvc.Browse(c.Request.Context(), catalogsvc.Criteria{
		CategoryID: c.Query("categoriaId"),
		SearchTerm: c.Query("buscar"),
		Genre:      c.Query("genero"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// detailResponse adds the resolved carousel images to a product detail.
type detailResponse struct {
	*catalogsvc.Detail
	Gallery []string `json:"galeria"`
}

func (h *handlers) productDetail(c *gin.Context) {
	d, err := h.deps.CatalogSvc.Detail(c.Request.Context(), domain.ParseID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	gallery := h.deps.Images.ResolveAll(d.Product.Images)
	if len(gallery) == 0 {
		gallery = []string{h.deps.Images.Resolve("", 0)}
	}
	c.JSON(http.StatusOK, detailResponse{Detail: d, Gallery: gallery})
}

func (h *handlers) offers(c *gin.Context) {
	products, err := h.deps.CatalogSvc.Offers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handlers) orders(c *gin.Context) {
	orders, err := h.deps.CatalogSvc.Orders(c.Request.Context(), domain.ParseID(c.Param("userId")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *handlers) formatPrice(c *gin.Context) {
	var value any
	if raw, ok := c.GetQuery("value"); ok {
		value = raw
	}
	c.JSON(http.StatusOK, gin.H{"text": h.deps.Prices.Format(value)})
}

// formatImage resolves one image of raw. step=next or step=prev moves index
// through the list first, wrapping at either end.
func (h *handlers) formatImage(c *gin.Context) {
	raw := c.Query("raw")
	index, _ := strconv.Atoi(c.Query("index"))
	n := len(format.SplitImages(raw))
	switch c.Query("step") {
	case "next":
		index = format.NextIndex(index, n)
	case "prev":
		index = format.PrevIndex(index, n)
	}
	if index < 0 || index >= n {
		index = 0
	}
	c.JSON(http.StatusOK, gin.H{"url": h.deps.Images.Resolve(raw, index), "index": index})
}

func (h *handlers) removeImage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"raw": format.RemoveImage(c.Query("raw"), c.Query("url"))})
}

func (h *handlers) appendImage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"raw": format.AppendImage(c.Query("raw"), c.Query("url"))})
}
