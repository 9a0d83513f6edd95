package wix

const (
	ProductTypePhysical = "physical"

	SectionItemSpecifics = "Item Specifics"
	SectionReturnPolicy  = "Return Policy"
)

// Product is the Stores v1 catalog product payload.
type Product struct {
	Name                   string        `json:"name" validate:"required,max=80"`
	ProductType            string        `json:"productType" validate:"required,oneof=physical digital"`
	PriceData              PriceData     `json:"priceData"`
	Description            string        `json:"description,omitempty"`
	SKU                    string        `json:"sku" validate:"required,uuid4"`
	Visible                bool          `json:"visible"`
	Weight                 float64       `json:"weight" validate:"gte=0"`
	Ribbon                 string        `json:"ribbon,omitempty"`
	Brand                  string        `json:"brand,omitempty"`
	Stock                  Stock         `json:"stock"`
	AdditionalInfoSections []InfoSection `json:"additionalInfoSections,omitempty" validate:"dive"`
	SEOData                *SEOData      `json:"seoData,omitempty"`
}

type PriceData struct {
	Price    float64 `json:"price" validate:"gte=0"`
	Currency string  `json:"currency" validate:"required,len=3"`
}

type Stock struct {
	TrackInventory  bool   `json:"trackInventory"`
	Quantity        int    `json:"quantity" validate:"gt=0"`
	InStock         bool   `json:"inStock"`
	InventoryStatus string `json:"inventoryStatus" validate:"required"`
}

type InfoSection struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type SEOData struct {
	Tags []SEOTag `json:"tags"`
}

// SEOTag is a head tag. Title tags carry their text in Children, meta tags
// in Props.
type SEOTag struct {
	Type     string            `json:"type"`
	Children string            `json:"children,omitempty"`
	Props    map[string]string `json:"props,omitempty"`
	Custom   bool              `json:"custom"`
	Disabled bool              `json:"disabled"`
}

// Section returns the info section with the given title, or nil.
func (p *Product) Section(title string) *InfoSection {
	if p == nil {
		return nil
	}
	for i := range p.AdditionalInfoSections {
		if p.AdditionalInfoSections[i].Title == title {
			return &p.AdditionalInfoSections[i]
		}
	}
	return nil
}

// MetaDescription returns the content of the description meta tag.
func (p *Product) MetaDescription() string {
	if p == nil || p.SEOData == nil {
		return ""
	}
	for _, tag := range p.SEOData.Tags {
		if tag.Type == "meta" && tag.Props["name"] == "description" {
			return tag.Props["content"]
		}
	}
	return ""
}

type createProductRequest struct {
	Product *Product `json:"product"`
}

type mediaItem struct {
	URL string `json:"url"`
}

type addMediaRequest struct {
	Media []mediaItem `json:"media"`
}
