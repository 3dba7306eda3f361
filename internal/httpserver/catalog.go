package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hk-storefront/internal/domain"
)

func listProductsHandler(cat catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		first, _ := strconv.Atoi(c.DefaultQuery("first", "20"))
		products, err := cat.Products(c.Request.Context(), first)
		if err != nil {
			catalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func productHandler(cat catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := cat.ProductByHandle(c.Request.Context(), c.Param("handle"))
		if err != nil {
			catalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

type byHandlesRequest struct {
	Handles []string `json:"handles" binding:"required"`
}

func productsByHandlesHandler(cat catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req byHandlesRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Handles) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "handles required"})
			return
		}
		products, err := cat.ProductsByHandles(c.Request.Context(), req.Handles)
		if err != nil {
			catalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func collectionHandler(cat catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		first, _ := strconv.Atoi(c.DefaultQuery("first", "50"))
		collection, err := cat.CollectionByHandle(c.Request.Context(), c.Param("handle"), first)
		if err != nil {
			catalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, collection)
	}
}

func catalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrRemoteUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commerce backend unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog lookup failed"})
	}
}
