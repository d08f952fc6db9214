// internal/stockx/client.go
package stockx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/javajoker/repricer-backend/internal/config"
)

// APIError carries the status code from a failed marketplace call so callers
// can tell throttling and missing resources apart.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stockx API error: status %d: %s", e.StatusCode, e.Body)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	cfg        config.StockXConfig
	auth       *AuthService
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

func NewClient(cfg config.StockXConfig, auth *AuthService, logger *logrus.Logger) *Client {
	return &Client{
		cfg:  cfg,
		auth: auth,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst),
		logger:  logger,
	}
}

// SearchProducts queries the catalog endpoint. The response's products array
// is returned as raw payloads for the mapper.
func (c *Client) SearchProducts(ctx context.Context, query string, pageNumber, pageSize int) ([]map[string]interface{}, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("pageNumber", strconv.Itoa(pageNumber))
	params.Set("pageSize", strconv.Itoa(pageSize))

	body, err := c.get(ctx, "/v2/catalog/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Products []map[string]interface{} `json:"products"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return envelope.Products, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (map[string]interface{}, error) {
	body, err := c.get(ctx, "/v2/catalog/products/"+url.PathEscape(productID))
	if err != nil {
		return nil, err
	}
	return decodeObject(body, "product")
}

func (c *Client) GetProductVariants(ctx context.Context, productID string) ([]map[string]interface{}, error) {
	body, err := c.get(ctx, "/v2/catalog/products/"+url.PathEscape(productID)+"/variants")
	if err != nil {
		return nil, err
	}
	return decodeArray(body, "variants")
}

func (c *Client) GetVariantMarketData(ctx context.Context, productID, variantID, currencyCode string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("currencyCode", currencyCode)
	path := fmt.Sprintf("/v2/catalog/products/%s/variants/%s/market-data?%s",
		url.PathEscape(productID), url.PathEscape(variantID), params.Encode())

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeObject(body, "market data")
}

func (c *Client) GetListings(ctx context.Context, pageNumber, pageSize int) ([]map[string]interface{}, error) {
	params := url.Values{}
	params.Set("pageNumber", strconv.Itoa(pageNumber))
	params.Set("pageSize", strconv.Itoa(pageSize))

	body, err := c.get(ctx, "/v2/selling/listings?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return decodeArray(body, "listings")
}

func (c *Client) CreateListing(ctx context.Context, payload map[string]interface{}) (map[string]interface{}, error) {
	body, err := c.send(ctx, http.MethodPost, "/v2/selling/listings", payload)
	if err != nil {
		return nil, err
	}
	return decodeObject(body, "listing")
}

func (c *Client) UpdateListing(ctx context.Context, listingID string, payload map[string]interface{}) (map[string]interface{}, error) {
	body, err := c.send(ctx, http.MethodPatch, "/v2/selling/listings/"+url.PathEscape(listingID), payload)
	if err != nil {
		return nil, err
	}
	return decodeObject(body, "listing")
}

func (c *Client) DeleteListing(ctx context.Context, listingID string) error {
	_, err := c.send(ctx, http.MethodDelete, "/v2/selling/listings/"+url.PathEscape(listingID), nil)
	return err
}

// get performs an authenticated GET with the shared rate limiter applied.
// A 401 clears the token cache and retries exactly once.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.send(ctx, http.MethodGet, path, nil)
}

func (c *Client) send(ctx context.Context, method, path string, payload map[string]interface{}) ([]byte, error) {
	body, retried, err := c.doOnce(ctx, method, path, payload)
	if err == nil {
		return body, nil
	}

	apiErr, ok := err.(*APIError)
	if !ok || apiErr.StatusCode != http.StatusUnauthorized || retried {
		return nil, err
	}

	c.logger.WithField("path", path).Warn("StockX returned 401, refreshing token and retrying")
	c.auth.ClearTokenCache()

	body, _, err = c.doOnce(ctx, method, path, payload)
	return body, err
}

func (c *Client) doOnce(ctx context.Context, method, path string, payload map[string]interface{}) ([]byte, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	token, err := c.auth.GetAccessToken(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to obtain access token: %w", err)
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, false, fmt.Errorf("failed to encode request payload: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIURL+path, reqBody)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, &APIError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	return body, false, nil
}

func decodeObject(body []byte, what string) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", what, err)
	}
	return obj, nil
}

func decodeArray(body []byte, key string) ([]map[string]interface{}, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", key, err)
	}

	raw, ok := envelope[key]
	if !ok {
		// Some endpoints return a bare array.
		var items []map[string]interface{}
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("response has no %q field", key)
		}
		return items, nil
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s array: %w", key, err)
	}
	return items, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
