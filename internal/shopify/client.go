package shopify

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/config"
	apperrors "github.com/jafarshop/catalogapi/pkg/errors"
)

// Client is the Shopify Admin API gateway. One pooled HTTP client is shared
// across all calls; the shop domain and access token are per-call arguments
// because they arrive in request headers, not configuration.
type Client struct {
	apiVersion string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Shopify Admin API client
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger: logger,
	}
}

// baseURL builds the Admin API base for a shop. A domain carrying a scheme is
// used verbatim (tests point this at local servers); anything else is assumed
// to be a plain myshopify domain.
func (c *Client) baseURL(shop string) string {
	shop = strings.TrimSuffix(strings.TrimSpace(shop), "/")
	if strings.Contains(shop, "://") {
		return fmt.Sprintf("%s/admin/api/%s", shop, c.apiVersion)
	}
	return fmt.Sprintf("https://%s/admin/api/%s", shop, c.apiVersion)
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []TopLevelError `json:"errors,omitempty"`
}

// TopLevelError represents a protocol-level GraphQL error
type TopLevelError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// Execute executes a GraphQL query/mutation against the shop's Admin API.
// Transport failures and non-200 responses come back as *UpstreamError,
// top-level GraphQL errors as *GraphQLError.
func (c *Client) Execute(ctx context.Context, shop, token, query string, variables map[string]interface{}) (*GraphQLResponse, error) {
	url := c.baseURL(shop) + "/graphql.json"

	jsonData, err := json.Marshal(GraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Shopify GraphQL request failed", zap.String("shop", shop), zap.Error(err))
		return nil, &apperrors.UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.UpstreamError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Shopify GraphQL request returned non-200",
			zap.String("shop", shop),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &apperrors.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	if len(graphQLResp.Errors) > 0 {
		messages := make([]string, len(graphQLResp.Errors))
		for i, gqlErr := range graphQLResp.Errors {
			messages[i] = gqlErr.Message
		}
		return nil, &apperrors.GraphQLError{Messages: messages}
	}

	return &graphQLResp, nil
}

// REST issues a JSON REST call under the shop's Admin API base. The raw
// response body is returned on 2xx; everything else is an *UpstreamError.
func (c *Client) REST(ctx context.Context, method, shop, token, path string, payload interface{}) ([]byte, error) {
	url := c.baseURL(shop) + "/" + strings.TrimPrefix(path, "/")

	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Shopify REST request failed",
			zap.String("shop", shop),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &apperrors.UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.UpstreamError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Shopify REST request returned non-2xx",
			zap.String("shop", shop),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &apperrors.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// FirstLocationID fetches the store's fulfillment locations and returns the
// first one's id. No tie-break policy beyond list order.
func (c *Client) FirstLocationID(ctx context.Context, shop, token string) (int64, error) {
	body, err := c.REST(ctx, http.MethodGet, shop, token, "locations.json", nil)
	if err != nil {
		return 0, err
	}

	var result struct {
		Locations []struct {
			ID int64 `json:"id"`
		} `json:"locations"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("failed to parse locations response: %w", err)
	}

	if len(result.Locations) == 0 {
		return 0, &apperrors.ErrNoLocations{}
	}

	return result.Locations[0].ID, nil
}

// VariantUpdate is the REST variant patch payload (PUT variants/{id}.json)
type VariantUpdate struct {
	ID                  int64   `json:"id"`
	Price               *string `json:"price,omitempty"`
	SKU                 *string `json:"sku,omitempty"`
	InventoryManagement *string `json:"inventory_management,omitempty"`
}

// UpdateVariant patches a variant by its GID via the REST API
func (c *Client) UpdateVariant(ctx context.Context, shop, token, variantGID string, update VariantUpdate) error {
	numericID := NumericID(variantGID)
	if numericID == 0 {
		return fmt.Errorf("invalid variant GID: %s", variantGID)
	}
	update.ID = numericID

	path := fmt.Sprintf("variants/%d.json", numericID)
	_, err := c.REST(ctx, http.MethodPut, shop, token, path, map[string]interface{}{
		"variant": update,
	})
	return err
}

// CreateProductImage creates one product image via the REST API and returns
// the platform-assigned image id.
func (c *Client) CreateProductImage(ctx context.Context, shop, token, productGID, src string, alt *string) (int64, error) {
	numericID := NumericID(productGID)
	if numericID == 0 {
		return 0, fmt.Errorf("invalid product GID: %s", productGID)
	}

	image := map[string]interface{}{"src": src}
	if alt != nil && *alt != "" {
		image["alt"] = *alt
	}

	path := fmt.Sprintf("products/%d/images.json", numericID)
	body, err := c.REST(ctx, http.MethodPost, shop, token, path, map[string]interface{}{
		"image": image,
	})
	if err != nil {
		return 0, err
	}

	var result struct {
		Image struct {
			ID int64 `json:"id"`
		} `json:"image"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("failed to parse image response: %w", err)
	}

	return result.Image.ID, nil
}

// SetInventoryLevel sets the available quantity of an inventory item at a
// location via the REST API.
func (c *Client) SetInventoryLevel(ctx context.Context, shop, token, inventoryItemGID string, locationID int64, available int) error {
	numericID := NumericID(inventoryItemGID)
	if numericID == 0 {
		return fmt.Errorf("invalid inventory item GID: %s", inventoryItemGID)
	}

	_, err := c.REST(ctx, http.MethodPost, shop, token, "inventory_levels/set.json", map[string]interface{}{
		"inventory_item_id": numericID,
		"location_id":       locationID,
		"available":         available,
	})
	return err
}

// NumericID extracts the numeric ID from a Shopify GID
// (e.g. gid://shopify/ProductVariant/123 -> 123). Returns 0 when the GID
// carries no numeric tail.
func NumericID(gid string) int64 {
	parts := strings.Split(gid, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == "" {
			continue
		}
		if n, err := strconv.ParseInt(parts[i], 10, 64); err == nil {
			return n
		}
		return 0
	}
	return 0
}
