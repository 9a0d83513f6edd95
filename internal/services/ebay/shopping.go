package ebay

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storesync/internal/config"
	"storesync/internal/logger"
	"storesync/internal/models"
	"storesync/internal/ratelimit"
)

const (
	ackFailure         = "Failure"
	shoppingAPIVersion = "863"
	detailSelectors    = "Description,ItemSpecifics,Variations,Details,ShippingCosts"
)

// ErrDetailFailure is returned when the detail API acknowledges a call as
// failed.
var ErrDetailFailure = errors.New("item detail lookup failed")

var invalidTokenMarkers = []string{
	"Invalid token",
	"IAF token supplied is invalid",
}

var invalidTokenCodes = map[string]bool{
	"1.32": true,
	"1.33": true,
}

type getSingleItemRequest struct {
	XMLName         xml.Name `xml:"urn:ebay:apis:eBLBaseComponents GetSingleItemRequest"`
	ItemID          string   `xml:"ItemID"`
	IncludeSelector string   `xml:"IncludeSelector"`
}

// ShoppingClient looks up full item records with GetSingleItem.
type ShoppingClient struct {
	endpoint   string
	appID      string
	siteID     string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	session    *Session
	logger     *logger.Logger
}

func NewShoppingClient(cfg config.EbayConfig, session *Session, limiter *ratelimit.Limiter, logger *logger.Logger) *ShoppingClient {
	return &ShoppingClient{
		endpoint: cfg.ShoppingURL,
		appID:    cfg.AppID,
		siteID:   cfg.SiteID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: limiter,
		session: session,
		logger:  logger,
	}
}

// GetItem fetches the detail record for one listing. A rejected token is
// refreshed and the call retried exactly once.
func (c *ShoppingClient) GetItem(ctx context.Context, itemID string) (*models.ListingDetail, error) {
	token, err := c.session.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	body, status, err := c.call(ctx, itemID, token)
	if err != nil {
		return nil, err
	}

	if hasInvalidTokenMarker(body) {
		c.logger.Warn("Detail call for item %s rejected the application token, refreshing and retrying once", itemID)
		token, err = c.session.RefreshIfCurrent(ctx, token, "invalid_token")
		if err != nil {
			return nil, err
		}
		body, status, err = c.call(ctx, itemID, token)
		if err != nil {
			return nil, err
		}
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf("API request failed: %d - %s", status, string(body))
	}

	var itemResp getSingleItemResponse
	if err := xml.Unmarshal(body, &itemResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if itemResp.Ack == ackFailure {
		refresh := false
		for _, e := range itemResp.Errors {
			c.logger.Error("Detail call for item %s failed: code=%s severity=%s short=%q long=%q",
				itemID, e.ErrorCode, e.SeverityCode, e.ShortMessage, e.LongMessage)
			if invalidTokenCodes[strings.TrimSpace(e.ErrorCode)] {
				refresh = true
			}
		}
		if refresh {
			if _, err := c.session.RefreshIfCurrent(ctx, token, "error_code"); err != nil {
				c.logger.Error("Token refresh after detail failure: %v", err)
			}
		}
		return nil, fmt.Errorf("%w: item %s", ErrDetailFailure, itemID)
	}

	if itemResp.Item == nil {
		return nil, fmt.Errorf("%w: item %s missing from response", ErrDetailFailure, itemID)
	}

	return itemResp.Item.toDetail(), nil
}

func (c *ShoppingClient) call(ctx context.Context, itemID, token string) ([]byte, int, error) {
	payload, err := xml.Marshal(getSingleItemRequest{
		ItemID:          itemID,
		IncludeSelector: detailSelectors,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		bytes.NewReader(append([]byte(xml.Header), payload...)))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-EBAY-API-IAF-TOKEN", token)
	req.Header.Set("X-EBAY-API-APP-ID", c.appID)
	req.Header.Set("X-EBAY-API-SITE-ID", c.siteID)
	req.Header.Set("X-EBAY-API-CALL-NAME", "GetSingleItem")
	req.Header.Set("X-EBAY-API-VERSION", shoppingAPIVersion)
	req.Header.Set("X-EBAY-API-REQUEST-ENCODING", "xml")
	req.Header.Set("Content-Type", "text/xml")

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func hasInvalidTokenMarker(body []byte) bool {
	for _, marker := range invalidTokenMarkers {
		if bytes.Contains(body, []byte(marker)) {
			return true
		}
	}
	return false
}
