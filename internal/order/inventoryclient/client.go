package inventoryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const serviceName = "inventory-service"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnavailable       = errors.New("inventory service unavailable")
)

// Product mirrors the inventory service's product representation.
type Product struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Category  string  `json:"category"`
}

type Client interface {
	GetProduct(ctx context.Context, productID string) (*Product, error)
	AdjustStock(ctx context.Context, productID string, delta int) error
}

// ServiceResolver looks up the base URL of a service instance. The consul
// client satisfies this.
type ServiceResolver interface {
	ServiceURL(serviceName string) (string, error)
}

type httpClient struct {
	resolver    ServiceResolver
	fallbackURL string
	client      *http.Client
}

// New builds an HTTP client for the inventory service. resolver may be nil,
// in which case fallbackURL is always used; resolution failures also fall
// back to it.
func New(resolver ServiceResolver, fallbackURL string) Client {
	return &httpClient{
		resolver:    resolver,
		fallbackURL: fallbackURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *httpClient) baseURL() string {
	if c.resolver != nil {
		if url, err := c.resolver.ServiceURL(serviceName); err == nil {
			return url
		}
	}
	return c.fallbackURL
}

func (c *httpClient) GetProduct(ctx context.Context, productID string) (*Product, error) {
	url := fmt.Sprintf("%s/products/%s", c.baseURL(), productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("product %s: %w", productID, ErrProductNotFound)
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to decode product response: %w", err)
	}

	return &product, nil
}

func (c *httpClient) AdjustStock(ctx context.Context, productID string, delta int) error {
	url := fmt.Sprintf("%s/products/%s/stock", c.baseURL(), productID)

	body, err := json.Marshal(map[string]int{"quantity": delta})
	if err != nil {
		return fmt.Errorf("failed to marshal stock update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("product %s: %w", productID, ErrProductNotFound)
	case http.StatusBadRequest:
		// The inventory service also answers 400 for malformed payloads,
		// so only a stock rejection maps to ErrInsufficientStock.
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error == "Insufficient stock" {
			return fmt.Errorf("product %s: %w", productID, ErrInsufficientStock)
		}
		return fmt.Errorf("inventory service rejected stock update for product %s: %s", productID, apiErr.Error)
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
}
