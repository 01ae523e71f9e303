package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/service"
	apperrors "github.com/jafarshop/catalogapi/pkg/errors"
)

// Shopify identification headers. Both must be present before any remote
// call is attempted.
const (
	HeaderShopDomain  = "X-Shopify-Shop-Domain"
	HeaderAccessToken = "X-Shopify-Access-Token"
)

// HandleCreateProduct handles POST /shopify/products: one desired-state spec
// in, one fully created product (or the first stage's failure) out.
func HandleCreateProduct(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := c.GetHeader(HeaderShopDomain)
		token := c.GetHeader(HeaderAccessToken)
		if shop == "" || token == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": (&apperrors.ErrMissingHeaders{}).Error(),
			})
			return
		}

		var spec domain.ProductSpec
		if err := c.ShouldBindJSON(&spec); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "validation failed",
				"error":   err.Error(),
			})
			return
		}

		if err := spec.Validate(); err != nil {
			var vErr *apperrors.ErrValidation
			if errors.As(err, &vErr) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"success": false,
					"message": vErr.Message,
					"errors":  vErr.Fields,
				})
				return
			}
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "validation failed",
				"error":   err.Error(),
			})
			return
		}

		data, err := products.CreateProduct(c.Request.Context(), shop, token, &spec)
		if err != nil {
			logger.Error("Product creation pipeline failed",
				zap.String("shop", shop),
				zap.Error(err),
			)
			status, envelope := failureEnvelope(err)
			c.JSON(status, envelope)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}

// failureEnvelope maps a pipeline error to the response envelope and status:
// upstream HTTP statuses propagate, everything else is a 500 (404 when the
// store has no fulfillment location). The original error kind and diagnostic
// payload are preserved for caller visibility.
func failureEnvelope(err error) (int, gin.H) {
	var noLoc *apperrors.ErrNoLocations
	var userErrs *apperrors.UserErrors
	var gqlErr *apperrors.GraphQLError
	var upstream *apperrors.UpstreamError

	switch {
	case errors.As(err, &noLoc):
		return http.StatusNotFound, gin.H{
			"success": false,
			"message": noLoc.Error(),
		}

	case errors.As(err, &userErrs):
		return http.StatusInternalServerError, gin.H{
			"success": false,
			"message": fmt.Sprintf("shopify.%s.userErrors", userErrs.Operation),
			"errors":  userErrs.Errors,
		}

	case errors.As(err, &gqlErr):
		return http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "GraphQL errors",
			"errors":  gqlErr.Messages,
		}

	case errors.As(err, &upstream):
		status := http.StatusInternalServerError
		if upstream.Status != 0 {
			status = upstream.Status
		}
		envelope := gin.H{
			"success": false,
			"message": "Shopify request failed",
			"error":   err.Error(),
		}
		if upstream.Body != "" {
			if json.Valid([]byte(upstream.Body)) {
				envelope["response"] = json.RawMessage(upstream.Body)
			} else {
				envelope["response"] = upstream.Body
			}
		}
		return status, envelope

	default:
		return http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Unexpected error",
			"error":   err.Error(),
		}
	}
}
