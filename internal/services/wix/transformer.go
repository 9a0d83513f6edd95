package wix

import (
	"fmt"
	"strings"

	"storesync/internal/config"
	"storesync/internal/models"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

const (
	maxNameLength  = 80
	sectionBreak   = "<br>"
	ouncesPerPound = 16
)

type Transformer struct {
	descriptionMax   int
	metaMax          int
	defaultCurrency  string
	brandPlaceholder string
}

func NewTransformer(cfg config.SyncConfig) *Transformer {
	return &Transformer{
		descriptionMax:   cfg.DescriptionMaxLength,
		metaMax:          cfg.MetaDescriptionMax,
		defaultCurrency:  cfg.DefaultCurrency,
		brandPlaceholder: cfg.BrandPlaceholder,
	}
}

// TransformListing converts an enriched listing into a catalog product.
// Every nested source field is optional; missing values fall back to
// defaults.
func (t *Transformer) TransformListing(listing *models.EnrichedListing) *Product {
	var summary *models.ListingSummary
	var detail *models.ListingDetail
	if listing != nil {
		summary = listing.Summary
		detail = listing.Detail
	}

	title := strings.TrimSpace(listing.Title())
	brand := detail.Brand()
	condition := strings.TrimSpace(listing.Condition())

	price, currency := t.price(summary)

	product := &Product{
		Name:        truncate(title, maxNameLength),
		ProductType: ProductTypePhysical,
		PriceData: PriceData{
			Price:    price,
			Currency: currency,
		},
		SKU:     uuid.NewString(),
		Visible: true,
		Weight:  weight(detail),
		Ribbon:  condition,
		Brand:   brand,
		Stock: Stock{
			TrackInventory:  true,
			Quantity:        quantity(detail),
			InStock:         true,
			InventoryStatus: string(models.AvailabilityInStock),
		},
		AdditionalInfoSections: []InfoSection{
			{Title: SectionItemSpecifics, Description: specificsSection(detail)},
			{Title: SectionReturnPolicy, Description: returnPolicySection(detail)},
		},
		SEOData: t.seo(title, condition, brand),
	}

	if detail != nil {
		product.Description = truncate(detail.Description, t.descriptionMax)
	}
	if product.Brand == "" {
		product.Brand = t.brandPlaceholder
	}

	return product
}

func (t *Transformer) price(summary *models.ListingSummary) (float64, string) {
	var value float64
	currency := t.defaultCurrency
	if summary == nil {
		return value, currency
	}

	// Current price wins, converted price is the fallback
	switch {
	case summary.CurrentPrice != nil:
		value = summary.CurrentPrice.Value
	case summary.ConvertedCurrentPrice != nil:
		value = summary.ConvertedCurrentPrice.Value
	}
	switch {
	case summary.CurrentPrice != nil && summary.CurrentPrice.Currency != "":
		currency = summary.CurrentPrice.Currency
	case summary.ConvertedCurrentPrice != nil && summary.ConvertedCurrentPrice.Currency != "":
		currency = summary.ConvertedCurrentPrice.Currency
	}
	return value, currency
}

func (t *Transformer) seo(title, condition, brand string) *SEOData {
	var parts []string
	for _, p := range []string{condition, brand, title} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	meta := truncate(strings.Join(parts, " "), t.metaMax)

	return &SEOData{
		Tags: []SEOTag{
			{Type: "title", Children: title},
			{Type: "meta", Props: map[string]string{
				"name":    "description",
				"content": strings.TrimSpace(meta),
			}},
		},
	}
}

func quantity(detail *models.ListingDetail) int {
	if detail == nil {
		return 1
	}
	q, err := cast.ToIntE(strings.TrimSpace(detail.Quantity))
	if err != nil || q <= 0 {
		return 1
	}
	return q
}

// weight converts the package weight (pounds + ounces) to pounds.
func weight(detail *models.ListingDetail) float64 {
	if detail == nil {
		return 0
	}
	lbs, err := cast.ToFloat64E(detail.WeightMajor)
	if err != nil || lbs < 0 {
		lbs = 0
	}
	oz, err := cast.ToFloat64E(detail.WeightMinor)
	if err != nil || oz < 0 {
		oz = 0
	}
	return lbs + oz/ouncesPerPound
}

func specificsSection(detail *models.ListingDetail) string {
	var lines []string
	for _, nv := range detail.Specifics() {
		name := strings.TrimSpace(nv.Name)
		if name == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", name, strings.Join(nv.Values, ", ")))
	}
	return strings.Join(lines, sectionBreak)
}

func returnPolicySection(detail *models.ListingDetail) string {
	policy := detail.Policy()
	fields := []struct {
		label string
		value string
	}{
		{"Returns Accepted", policy.ReturnsAccepted},
		{"Return Period", policy.ReturnsWithin},
		{"Refund", policy.Refund},
		{"Return Shipping Paid By", policy.ShippingCostPaidBy},
	}

	var lines []string
	for _, f := range fields {
		if f.value != "" {
			lines = append(lines, f.label+": "+f.value)
		}
	}
	return strings.Join(lines, sectionBreak)
}

// truncate cuts s to at most max runes. A non-positive max disables the cap.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
