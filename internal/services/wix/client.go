package wix

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storesync/internal/config"
	"storesync/internal/logger"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// ErrAPI is returned when the catalog API answers with a non-2xx status or
// an unusable body.
var ErrAPI = errors.New("wix api error")

type Client struct {
	http   *resty.Client
	logger *logger.Logger
}

func NewClient(cfg config.WixConfig, logger *logger.Logger) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(30*time.Second).
		SetAuthToken(cfg.APIToken).
		SetHeader("wix-site-id", cfg.SiteID).
		SetHeader("Content-Type", "application/json")
	c.JSONMarshal = json.Marshal
	c.JSONUnmarshal = json.Unmarshal

	return &Client{
		http:   c,
		logger: logger,
	}
}

// CreateProduct creates a catalog product and returns its id.
func (c *Client) CreateProduct(ctx context.Context, product *Product) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createProductRequest{Product: product}).
		Post("/stores/v1/products")
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: create product: %d - %s", ErrAPI, resp.StatusCode(), resp.String())
	}

	id := gjson.GetBytes(resp.Body(), "product.id").String()
	if id == "" {
		return "", fmt.Errorf("%w: create product: response has no product id", ErrAPI)
	}

	c.logger.Debug("Created product %s (%q)", id, product.Name)
	return id, nil
}

// AddMedia attaches the given image URLs to an existing product.
func (c *Client) AddMedia(ctx context.Context, productID string, urls []string) error {
	media := make([]mediaItem, 0, len(urls))
	for _, u := range urls {
		media = append(media, mediaItem{URL: u})
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", productID).
		SetBody(addMediaRequest{Media: media}).
		Post("/stores/v1/products/{id}/media")
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: add media to %s: %d - %s", ErrAPI, productID, resp.StatusCode(), resp.String())
	}
	return nil
}
