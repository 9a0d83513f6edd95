package models

import "strings"

// BrandSpecificName is the item specific that carries the listing brand.
const BrandSpecificName = "Brand"

type Money struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// ListingSummary is one search result from the store search.
type ListingSummary struct {
	ItemID                string   `json:"item_id"`
	Title                 string   `json:"title"`
	GalleryURL            string   `json:"gallery_url"`
	PictureURLs           []string `json:"picture_urls"`
	CurrentPrice          *Money   `json:"current_price"`
	ConvertedCurrentPrice *Money   `json:"converted_current_price"`
	Condition             string   `json:"condition"`
	ViewItemURL           string   `json:"view_item_url"`
}

type NameValue struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type PictureDetails struct {
	GalleryURL  string   `json:"gallery_url"`
	PictureURLs []string `json:"picture_urls"`
}

type ReturnPolicy struct {
	ReturnsAccepted    string `json:"returns_accepted"`
	ReturnsWithin      string `json:"returns_within"`
	Refund             string `json:"refund"`
	ShippingCostPaidBy string `json:"shipping_cost_paid_by"`
}

// VariationPictureSet is the picture set attached to one variation value
// (e.g. Color=Red).
type VariationPictureSet struct {
	SpecificName  string   `json:"specific_name"`
	SpecificValue string   `json:"specific_value"`
	PictureURLs   []string `json:"picture_urls"`
}

// ListingDetail is the full item record returned by the detail lookup.
// Every nested field is optional.
type ListingDetail struct {
	ItemID               string                `json:"item_id"`
	Title                string                `json:"title"`
	Description          string                `json:"description"`
	GalleryURL           string                `json:"gallery_url"`
	PictureURLs          []string              `json:"picture_urls"`
	PictureDetails       *PictureDetails       `json:"picture_details"`
	ItemSpecifics        []NameValue           `json:"item_specifics"`
	ReturnPolicy         *ReturnPolicy         `json:"return_policy"`
	Quantity             string                `json:"quantity"`
	Variations           []VariationPictureSet `json:"variations"`
	ConditionDisplayName string                `json:"condition_display_name"`
	WeightMajor          string                `json:"weight_major"`
	WeightMinor          string                `json:"weight_minor"`
}

// EnrichedListing is the unit handed from the enricher to the mapper.
// Detail is nil when the detail lookup failed and Partial is set.
type EnrichedListing struct {
	Summary *ListingSummary `json:"summary"`
	Detail  *ListingDetail  `json:"detail"`
	Images  []string        `json:"images"`
	Partial bool            `json:"partial"`
}

func (d *ListingDetail) Specifics() []NameValue {
	if d == nil {
		return nil
	}
	return d.ItemSpecifics
}

// Brand returns the value of the "Brand" item specific, or "".
func (d *ListingDetail) Brand() string {
	for _, nv := range d.Specifics() {
		if nv.Name == BrandSpecificName && len(nv.Values) > 0 {
			return strings.TrimSpace(nv.Values[0])
		}
	}
	return ""
}

func (d *ListingDetail) Policy() ReturnPolicy {
	if d == nil || d.ReturnPolicy == nil {
		return ReturnPolicy{}
	}
	return *d.ReturnPolicy
}

// Images returns every picture URL carried by the detail record in
// document order: top-level pictures, gallery, picture details, variations.
func (d *ListingDetail) Images() []string {
	if d == nil {
		return nil
	}
	var urls []string
	urls = append(urls, d.PictureURLs...)
	urls = append(urls, d.GalleryURL)
	if d.PictureDetails != nil {
		urls = append(urls, d.PictureDetails.GalleryURL)
		urls = append(urls, d.PictureDetails.PictureURLs...)
	}
	for _, v := range d.Variations {
		urls = append(urls, v.PictureURLs...)
	}
	return urls
}

// Images returns the gallery and picture URLs of the search result.
func (s *ListingSummary) Images() []string {
	if s == nil {
		return nil
	}
	urls := make([]string, 0, len(s.PictureURLs)+1)
	urls = append(urls, s.GalleryURL)
	urls = append(urls, s.PictureURLs...)
	return urls
}

func (e *EnrichedListing) Title() string {
	if e == nil {
		return ""
	}
	if e.Summary != nil && e.Summary.Title != "" {
		return e.Summary.Title
	}
	if e.Detail != nil {
		return e.Detail.Title
	}
	return ""
}

func (e *EnrichedListing) ItemID() string {
	if e == nil {
		return ""
	}
	if e.Summary != nil && e.Summary.ItemID != "" {
		return e.Summary.ItemID
	}
	if e.Detail != nil {
		return e.Detail.ItemID
	}
	return ""
}

// Condition prefers the summary's condition label over the detail's.
func (e *EnrichedListing) Condition() string {
	if e == nil {
		return ""
	}
	if e.Summary != nil && e.Summary.Condition != "" {
		return e.Summary.Condition
	}
	if e.Detail != nil {
		return e.Detail.ConditionDisplayName
	}
	return ""
}
