package ebay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"storesync/internal/config"
	"storesync/internal/logger"
	"storesync/internal/models"
	"storesync/internal/ratelimit"

	"github.com/goccy/go-json"
)

const findingServiceVersion = "1.13.0"

// Client pages through a store's listings with the Finding API.
type Client struct {
	baseURL    string
	appID      string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	logger     *logger.Logger
}

func NewClient(cfg config.EbayConfig, limiter *ratelimit.Limiter, logger *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.FindingURL,
		appID:   cfg.AppID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// FindItemsInStore fetches one page of a store's listings. An empty result
// set yields a nil slice and no error.
func (c *Client) FindItemsInStore(ctx context.Context, storeName string, pageSize, page int) ([]models.ListingSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("OPERATION-NAME", "findItemsIneBayStores")
	q.Set("SERVICE-VERSION", findingServiceVersion)
	q.Set("SECURITY-APPNAME", c.appID)
	q.Set("RESPONSE-DATA-FORMAT", "JSON")
	q.Set("REST-PAYLOAD", "")
	q.Set("storeName", storeName)
	q.Set("paginationInput.entriesPerPage", strconv.Itoa(pageSize))
	q.Set("paginationInput.pageNumber", strconv.Itoa(page))
	q.Set("outputSelector(0)", "PictureURLSuperSize")
	q.Set("outputSelector(1)", "PictureURLLarge")
	req.URL.RawQuery = q.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed: %d - %s", resp.StatusCode, string(body))
	}

	if len(body) == 0 {
		return nil, nil
	}

	var findingResp findingResponse
	if err := json.Unmarshal(body, &findingResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := findingResp.body()
	if result == nil {
		return nil, nil
	}
	if first(result.Ack) == ackFailure {
		return nil, fmt.Errorf("search failed: %s", result.errorText())
	}

	items := result.items()
	summaries := make([]models.ListingSummary, 0, len(items))
	for _, it := range items {
		summaries = append(summaries, it.toSummary())
	}

	c.logger.Debug("Store %s page %d returned %d listings", storeName, page, len(summaries))
	return summaries, nil
}
