package ebay

import (
	"encoding/xml"
	"strings"

	"storesync/internal/models"

	"github.com/spf13/cast"
)

// Finding API (JSON). Every scalar arrives wrapped in a single-element array.

type findingResponse struct {
	FindItemsIneBayStoresResponse []findItemsResponse `json:"findItemsIneBayStoresResponse"`
}

type findItemsResponse struct {
	Ack              []string              `json:"ack"`
	ErrorMessage     []findingErrorMessage `json:"errorMessage"`
	SearchResult     []searchResult        `json:"searchResult"`
	PaginationOutput []paginationOutput    `json:"paginationOutput"`
}

type findingErrorMessage struct {
	Error []struct {
		ErrorID []string `json:"errorId"`
		Message []string `json:"message"`
	} `json:"error"`
}

type searchResult struct {
	Count string        `json:"@count"`
	Item  []findingItem `json:"item"`
}

type paginationOutput struct {
	PageNumber   []string `json:"pageNumber"`
	TotalPages   []string `json:"totalPages"`
	TotalEntries []string `json:"totalEntries"`
}

type findingItem struct {
	ItemID              []string           `json:"itemId"`
	Title               []string           `json:"title"`
	GalleryURL          []string           `json:"galleryURL"`
	PictureURLSuperSize []string           `json:"pictureURLSuperSize"`
	PictureURLLarge     []string           `json:"pictureURLLarge"`
	ViewItemURL         []string           `json:"viewItemURL"`
	SellingStatus       []sellingStatus    `json:"sellingStatus"`
	Condition           []findingCondition `json:"condition"`
}

type sellingStatus struct {
	CurrentPrice          []findingAmount `json:"currentPrice"`
	ConvertedCurrentPrice []findingAmount `json:"convertedCurrentPrice"`
}

type findingAmount struct {
	CurrencyID string `json:"@currencyId"`
	Value      string `json:"__value__"`
}

type findingCondition struct {
	ConditionDisplayName []string `json:"conditionDisplayName"`
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func (r *findingResponse) body() *findItemsResponse {
	if r == nil || len(r.FindItemsIneBayStoresResponse) == 0 {
		return nil
	}
	return &r.FindItemsIneBayStoresResponse[0]
}

func (r *findItemsResponse) items() []findingItem {
	if r == nil || len(r.SearchResult) == 0 {
		return nil
	}
	return r.SearchResult[0].Item
}

func (r *findItemsResponse) errorText() string {
	var msgs []string
	for _, em := range r.ErrorMessage {
		for _, e := range em.Error {
			msgs = append(msgs, first(e.ErrorID)+": "+first(e.Message))
		}
	}
	return strings.Join(msgs, "; ")
}

func toMoney(amounts []findingAmount) *models.Money {
	if len(amounts) == 0 {
		return nil
	}
	value, err := cast.ToFloat64E(strings.TrimSpace(amounts[0].Value))
	if err != nil {
		return nil
	}
	return &models.Money{Value: value, Currency: amounts[0].CurrencyID}
}

func (it findingItem) toSummary() models.ListingSummary {
	summary := models.ListingSummary{
		ItemID:      first(it.ItemID),
		Title:       first(it.Title),
		GalleryURL:  first(it.GalleryURL),
		ViewItemURL: first(it.ViewItemURL),
	}
	for _, u := range [][]string{it.PictureURLSuperSize, it.PictureURLLarge} {
		if p := first(u); p != "" {
			summary.PictureURLs = append(summary.PictureURLs, p)
		}
	}
	if len(it.SellingStatus) > 0 {
		summary.CurrentPrice = toMoney(it.SellingStatus[0].CurrentPrice)
		summary.ConvertedCurrentPrice = toMoney(it.SellingStatus[0].ConvertedCurrentPrice)
	}
	if len(it.Condition) > 0 {
		summary.Condition = first(it.Condition[0].ConditionDisplayName)
	}
	return summary
}

// Shopping API GetSingleItem (XML).

type getSingleItemResponse struct {
	XMLName xml.Name        `xml:"GetSingleItemResponse"`
	Ack     string          `xml:"Ack"`
	Errors  []shoppingError `xml:"Errors"`
	Item    *shoppingItem   `xml:"Item"`
}

type shoppingError struct {
	ShortMessage string `xml:"ShortMessage"`
	LongMessage  string `xml:"LongMessage"`
	ErrorCode    string `xml:"ErrorCode"`
	SeverityCode string `xml:"SeverityCode"`
}

type shoppingItem struct {
	ItemID               string   `xml:"ItemID"`
	Title                string   `xml:"Title"`
	Description          string   `xml:"Description"`
	GalleryURL           string   `xml:"GalleryURL"`
	PictureURL           []string `xml:"PictureURL"`
	Quantity             string   `xml:"Quantity"`
	ConditionDisplayName string   `xml:"ConditionDisplayName"`

	PictureDetails *struct {
		GalleryURL string   `xml:"GalleryURL"`
		PictureURL []string `xml:"PictureURL"`
	} `xml:"PictureDetails"`

	ItemSpecifics *struct {
		NameValueList []struct {
			Name  string   `xml:"Name"`
			Value []string `xml:"Value"`
		} `xml:"NameValueList"`
	} `xml:"ItemSpecifics"`

	ReturnPolicy *struct {
		ReturnsAccepted    string `xml:"ReturnsAccepted"`
		ReturnsWithin      string `xml:"ReturnsWithin"`
		Refund             string `xml:"Refund"`
		ShippingCostPaidBy string `xml:"ShippingCostPaidBy"`
	} `xml:"ReturnPolicy"`

	Variations *struct {
		Pictures []struct {
			VariationSpecificName       string `xml:"VariationSpecificName"`
			VariationSpecificPictureSet []struct {
				VariationSpecificValue string   `xml:"VariationSpecificValue"`
				PictureURL             []string `xml:"PictureURL"`
			} `xml:"VariationSpecificPictureSet"`
		} `xml:"Pictures"`
	} `xml:"Variations"`

	ShippingPackageDetails *struct {
		WeightMajor string `xml:"WeightMajor"`
		WeightMinor string `xml:"WeightMinor"`
	} `xml:"ShippingPackageDetails"`
}

func (it *shoppingItem) toDetail() *models.ListingDetail {
	if it == nil {
		return nil
	}
	detail := &models.ListingDetail{
		ItemID:               strings.TrimSpace(it.ItemID),
		Title:                it.Title,
		Description:          it.Description,
		GalleryURL:           strings.TrimSpace(it.GalleryURL),
		PictureURLs:          it.PictureURL,
		Quantity:             strings.TrimSpace(it.Quantity),
		ConditionDisplayName: it.ConditionDisplayName,
	}
	if pd := it.PictureDetails; pd != nil {
		detail.PictureDetails = &models.PictureDetails{
			GalleryURL:  strings.TrimSpace(pd.GalleryURL),
			PictureURLs: pd.PictureURL,
		}
	}
	if is := it.ItemSpecifics; is != nil {
		for _, nv := range is.NameValueList {
			detail.ItemSpecifics = append(detail.ItemSpecifics, models.NameValue{
				Name:   strings.TrimSpace(nv.Name),
				Values: nv.Value,
			})
		}
	}
	if rp := it.ReturnPolicy; rp != nil {
		detail.ReturnPolicy = &models.ReturnPolicy{
			ReturnsAccepted:    strings.TrimSpace(rp.ReturnsAccepted),
			ReturnsWithin:      strings.TrimSpace(rp.ReturnsWithin),
			Refund:             strings.TrimSpace(rp.Refund),
			ShippingCostPaidBy: strings.TrimSpace(rp.ShippingCostPaidBy),
		}
	}
	if v := it.Variations; v != nil {
		for _, pics := range v.Pictures {
			for _, set := range pics.VariationSpecificPictureSet {
				detail.Variations = append(detail.Variations, models.VariationPictureSet{
					SpecificName:  pics.VariationSpecificName,
					SpecificValue: set.VariationSpecificValue,
					PictureURLs:   set.PictureURL,
				})
			}
		}
	}
	if sp := it.ShippingPackageDetails; sp != nil {
		detail.WeightMajor = strings.TrimSpace(sp.WeightMajor)
		detail.WeightMinor = strings.TrimSpace(sp.WeightMinor)
	}
	return detail
}
