package competitor

// Reason is one piece of reasoning behind the chosen competitor brand.
type Reason struct {
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

// BrandResult is the step-1 output: the strongest competitor brand plus the
// reasoning and the alternatives the model considered.
type BrandResult struct {
	Brand                  string   `json:"brand"`
	Reasons                []Reason `json:"reasons"`
	AlternativesConsidered []string `json:"alternatives_considered"`
}

// CategoryResult is the step-2 output describing the source product itself.
type CategoryResult struct {
	ProductName string `json:"product_name"`
	Brand       string `json:"brand"`
	Price       string `json:"price,omitempty"`
	Category    string `json:"category"`
}

// Result merges the three discovery steps. Constructed once per discovery
// call and returned to the caller; never persisted.
type Result struct {
	SourceProductName      string   `json:"source_product_name"`
	SourceBrand            string   `json:"source_brand"`
	SourceCategory         string   `json:"source_category"`
	SourcePrice            string   `json:"source_price,omitempty"`
	CompetitorURL          string   `json:"competitor_url"`
	CompetitorProductName  string   `json:"competitor_product_name"`
	CompetitorBrand        string   `json:"competitor_brand"`
	Reasons                []Reason `json:"reasons"`
	AlternativesConsidered []string `json:"other_competitors_considered"`
}
