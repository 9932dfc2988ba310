package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/pkg/errors"
)

const (
	productsPath    = "/api/v1/entities/products"
	newestFirstSort = "-created_at"
)

// Client calls the products entity REST API
type Client struct {
	baseURL    string
	token      string
	fetchLimit int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a products API HTTP client. token may be empty.
func NewClient(baseURL, token string, fetchLimit int, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fetchLimit < 1 {
		fetchLimit = 1000
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		fetchLimit: fetchLimit,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// ProductInput is the write payload for create and update
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Stock       int     `json:"stock"`
}

// FetchProducts returns the full raw catalog for a storefront refresh, newest first
func (c *Client) FetchProducts(ctx context.Context) ([]map[string]interface{}, error) {
	return c.ListProducts(ctx, c.fetchLimit, newestFirstSort)
}

// ListProducts fetches up to limit raw product records. sort uses the
// backend's syntax, e.g. "-created_at"; empty leaves the backend default.
func (c *Client) ListProducts(ctx context.Context, limit int, sort string) ([]map[string]interface{}, error) {
	u, err := c.endpoint(productsPath)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if sort != "" {
		q.Set("sort", sort)
	}
	u.RawQuery = q.Encode()

	body, err := c.do(ctx, http.MethodGet, u.String(), nil, "")
	if err != nil {
		return nil, err
	}
	return ParseProductList(body)
}

// GetProduct fetches one raw product record
func (c *Client) GetProduct(ctx context.Context, id int64) (map[string]interface{}, error) {
	u, err := c.endpoint(productPath(id))
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodGet, u.String(), nil, strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}
	return parseRecord(body)
}

// CreateProduct creates a product and returns the stored record
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (map[string]interface{}, error) {
	u, err := c.endpoint(productsPath)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodPost, u.String(), payload, "")
	if err != nil {
		return nil, err
	}
	return parseRecord(body)
}

// UpdateProduct replaces a product's fields and returns the stored record
func (c *Client) UpdateProduct(ctx context.Context, id int64, in ProductInput) (map[string]interface{}, error) {
	u, err := c.endpoint(productPath(id))
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodPut, u.String(), payload, strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}
	return parseRecord(body)
}

// DeleteProduct removes a product
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	u, err := c.endpoint(productPath(id))
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodDelete, u.String(), nil, strconv.FormatInt(id, 10))
	return err
}

func productPath(id int64) string {
	return productsPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) endpoint(path string) (*url.URL, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("products client not configured: base URL required")
	}
	return url.Parse(c.baseURL + path)
}

// do sends the request and returns the body of a 2xx response.
// resourceID names the product for not-found errors.
func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte, resourceID string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Products API request failed", zap.Error(err), zap.String("method", method), zap.String("url", rawURL))
		return nil, fmt.Errorf("products API %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read products API response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound && resourceID != "" {
		return nil, &errors.ErrNotFound{Resource: "product", ID: resourceID}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Products API returned non-2xx",
			zap.String("method", method), zap.String("url", rawURL), zap.Int("status", resp.StatusCode))
		return nil, &errors.ErrUpstream{StatusCode: resp.StatusCode, Detail: parseDetail(body)}
	}
	return body, nil
}

// ParseProductList extracts the raw records from a list response.
// The backend answers {"items": [...]}; {"data": [...]} and a bare array are accepted too.
// Elements that are not objects become empty records so the normalizer
// defaults them instead of one bad element failing the whole list.
func ParseProductList(raw []byte) ([]map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []interface{}
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to parse product list: %w", err)
		}
		return toRecords(items), nil
	}
	var out struct {
		Items []interface{} `json:"items"`
		Data  []interface{} `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("failed to parse product list: %w", err)
	}
	if out.Items != nil {
		return toRecords(out.Items), nil
	}
	if out.Data != nil {
		return toRecords(out.Data), nil
	}
	return []map[string]interface{}{}, nil
}

func toRecords(items []interface{}) []map[string]interface{} {
	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			m = map[string]interface{}{}
		}
		records = append(records, m)
	}
	return records
}

func parseRecord(raw []byte) (map[string]interface{}, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]interface{}{}, nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	// some deployments wrap the record as {"data": {...}}
	if inner, ok := out["data"].(map[string]interface{}); ok {
		return inner, nil
	}
	return out, nil
}

// parseDetail pulls the backend's error "detail", which is either a string
// or a list of validation errors with "msg" fields.
func parseDetail(body []byte) string {
	var out struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return strings.TrimSpace(string(body))
	}
	switch d := out.Detail.(type) {
	case string:
		return d
	case []interface{}:
		msgs := make([]string, 0, len(d))
		for _, item := range d {
			if m, ok := item.(map[string]interface{}); ok {
				if msg, ok := m["msg"].(string); ok {
					msgs = append(msgs, msg)
				}
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
