package ebay

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"storesync/internal/config"
	"storesync/internal/logger"
	"storesync/internal/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemXML = `<?xml version="1.0" encoding="UTF-8"?>
<GetSingleItemResponse xmlns="urn:ebay:apis:eBLBaseComponents">
  <Ack>Success</Ack>
  <Item>
    <ItemID>110</ItemID>
    <Title>Vintage Camera</Title>
    <Description>&lt;p&gt;Works great&lt;/p&gt;</Description>
    <GalleryURL>https://i.ebayimg.com/thumbs/images/g/abc/s-l140.jpg</GalleryURL>
    <PictureURL>https://i.ebayimg.com/images/g/abc/s-l500.jpg</PictureURL>
    <PictureURL>https://i.ebayimg.com/images/g/def/s-l500.jpg</PictureURL>
    <Quantity>3</Quantity>
    <ConditionDisplayName>Used</ConditionDisplayName>
    <ItemSpecifics>
      <NameValueList><Name>Brand</Name><Value>Canon</Value></NameValueList>
      <NameValueList><Name>Color</Name><Value>Black</Value><Value>Silver</Value></NameValueList>
    </ItemSpecifics>
    <ReturnPolicy>
      <ReturnsAccepted>Returns Accepted</ReturnsAccepted>
      <ReturnsWithin>30 Days</ReturnsWithin>
    </ReturnPolicy>
    <Variations>
      <Pictures>
        <VariationSpecificName>Color</VariationSpecificName>
        <VariationSpecificPictureSet>
          <VariationSpecificValue>Black</VariationSpecificValue>
          <PictureURL>https://i.ebayimg.com/images/g/blk/s-l64.jpg</PictureURL>
        </VariationSpecificPictureSet>
      </Pictures>
    </Variations>
    <ShippingPackageDetails>
      <WeightMajor unit="lbs">2</WeightMajor>
      <WeightMinor unit="oz">8</WeightMinor>
    </ShippingPackageDetails>
  </Item>
</GetSingleItemResponse>`

const invalidTokenXML = `<?xml version="1.0" encoding="UTF-8"?>
<GetSingleItemResponse xmlns="urn:ebay:apis:eBLBaseComponents">
  <Ack>Failure</Ack>
  <Errors>
    <ShortMessage>Invalid token.</ShortMessage>
    <LongMessage>Invalid token. Please specify a valid token as HTTP header.</LongMessage>
    <ErrorCode>1.33</ErrorCode>
    <SeverityCode>Error</SeverityCode>
  </Errors>
</GetSingleItemResponse>`

const expiredCodeXML = `<?xml version="1.0" encoding="UTF-8"?>
<GetSingleItemResponse xmlns="urn:ebay:apis:eBLBaseComponents">
  <Ack>Failure</Ack>
  <Errors>
    <ShortMessage>Token not available.</ShortMessage>
    <LongMessage>The application token has expired.</LongMessage>
    <ErrorCode>1.32</ErrorCode>
    <SeverityCode>Error</SeverityCode>
  </Errors>
</GetSingleItemResponse>`

type shoppingStub struct {
	mu        sync.Mutex
	responses []string
	tokens    []string
	items     []string
}

func (s *shoppingStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var req getSingleItemRequest
	body, _ := io.ReadAll(r.Body)
	_ = xml.Unmarshal(body, &req)

	s.tokens = append(s.tokens, r.Header.Get("X-EBAY-API-IAF-TOKEN"))
	s.items = append(s.items, req.ItemID)

	idx := len(s.tokens) - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	w.Header().Set("Content-Type", "text/xml")
	w.Write([]byte(s.responses[idx]))
}

func (s *shoppingStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

func newShoppingClient(t *testing.T, stub *shoppingStub) (*ShoppingClient, *fakeFetcher) {
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	fetcher := &fakeFetcher{}
	session := NewSession(fetcher, logger.NewNop())
	cfg := config.EbayConfig{ShoppingURL: server.URL, AppID: "app-1", SiteID: "0"}
	return NewShoppingClient(cfg, session, ratelimit.New(0), logger.NewNop()), fetcher
}

func TestGetItemParsesDetail(t *testing.T) {
	stub := &shoppingStub{responses: []string{itemXML}}
	client, fetcher := newShoppingClient(t, stub)

	detail, err := client.GetItem(context.Background(), "110")
	require.NoError(t, err)

	assert.Equal(t, []string{"110"}, stub.items)
	assert.Equal(t, []string{"token-1"}, stub.tokens)
	assert.Equal(t, 1, fetcher.Calls())

	assert.Equal(t, "110", detail.ItemID)
	assert.Equal(t, "<p>Works great</p>", detail.Description)
	assert.Equal(t, "3", detail.Quantity)
	assert.Equal(t, "Canon", detail.Brand())
	require.Len(t, detail.ItemSpecifics, 2)
	assert.Equal(t, []string{"Black", "Silver"}, detail.ItemSpecifics[1].Values)
	assert.Equal(t, "30 Days", detail.Policy().ReturnsWithin)
	assert.Equal(t, "", detail.Policy().Refund)
	require.Len(t, detail.Variations, 1)
	assert.Equal(t, "Black", detail.Variations[0].SpecificValue)
	assert.Equal(t, "2", detail.WeightMajor)
	assert.Equal(t, "8", detail.WeightMinor)
	assert.Len(t, detail.Images(), 4)
}

func TestGetItemRetriesOnceAfterInvalidToken(t *testing.T) {
	stub := &shoppingStub{responses: []string{invalidTokenXML, itemXML}}
	client, fetcher := newShoppingClient(t, stub)

	detail, err := client.GetItem(context.Background(), "110")
	require.NoError(t, err)
	assert.Equal(t, "110", detail.ItemID)

	assert.Equal(t, []string{"token-1", "token-2"}, stub.tokens)
	assert.Equal(t, 2, fetcher.Calls())
}

func TestGetItemDoesNotRetryTwice(t *testing.T) {
	stub := &shoppingStub{responses: []string{invalidTokenXML}}
	client, _ := newShoppingClient(t, stub)

	_, err := client.GetItem(context.Background(), "110")
	assert.ErrorIs(t, err, ErrDetailFailure)
	assert.Equal(t, 2, stub.Calls())
}

func TestGetItemFailureCodeRefreshesToken(t *testing.T) {
	stub := &shoppingStub{responses: []string{expiredCodeXML}}
	client, fetcher := newShoppingClient(t, stub)

	_, err := client.GetItem(context.Background(), "110")
	assert.ErrorIs(t, err, ErrDetailFailure)

	assert.Equal(t, 1, stub.Calls())
	assert.Equal(t, 2, fetcher.Calls())
}

func TestGetItemMalformedBody(t *testing.T) {
	stub := &shoppingStub{responses: []string{"<not xml"}}
	client, _ := newShoppingClient(t, stub)

	_, err := client.GetItem(context.Background(), "110")
	assert.ErrorContains(t, err, "failed to decode response")
}
