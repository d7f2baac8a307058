// Package analysis implements the PDP comparison pipeline: one structured
// call comparing a source page against a reference page, validated against
// the report schema at the boundary.
package analysis

// TitleAnalysis scores the product title of a single page.
type TitleAnalysis struct {
	TitleText       string   `json:"title_text"`
	CharacterCount  int      `json:"character_count"`
	KeywordRichness int      `json:"keyword_richness"`
	Clarity         int      `json:"clarity"`
	EmotionalAppeal int      `json:"emotional_appeal"`
	Observations    []string `json:"observations"`
}

// DescriptionAnalysis scores the product description.
type DescriptionAnalysis struct {
	HasBulletPoints     bool     `json:"has_bullet_points"`
	BulletPointCount    int      `json:"bullet_point_count"`
	DescriptionLength   int      `json:"description_length"`
	BenefitFocused      int      `json:"benefit_focused"`
	Readability         int      `json:"readability"`
	Completeness        int      `json:"completeness"`
	UniqueSellingPoints []string `json:"unique_selling_points"`
	Observations        []string `json:"observations"`
}

// ImageAnalysis scores the product imagery.
type ImageAnalysis struct {
	ImageCount         int      `json:"image_count"`
	HasLifestyleImages bool     `json:"has_lifestyle_images"`
	HasDetailShots     bool     `json:"has_detail_shots"`
	HasSizeReference   bool     `json:"has_size_reference"`
	HasVideo           bool     `json:"has_video"`
	ImageQualityScore  int      `json:"image_quality_score"`
	ImageVarietyScore  int      `json:"image_variety_score"`
	Observations       []string `json:"observations"`
}

// PricingAnalysis scores price presentation.
type PricingAnalysis struct {
	PriceDisplayed        string   `json:"price_displayed"`
	HasOriginalPrice      bool     `json:"has_original_price"`
	HasDiscountBadge      bool     `json:"has_discount_badge"`
	HasPromotionalOffer   bool     `json:"has_promotional_offer"`
	PriceVisibilityScore  int      `json:"price_visibility_score"`
	ValuePropositionScore int      `json:"value_proposition_score"`
	Observations          []string `json:"observations"`
}

// ReviewsAnalysis scores social proof. Rating and count are optional since
// not every page shows them.
type ReviewsAnalysis struct {
	AverageRating             *float64 `json:"average_rating,omitempty"`
	ReviewCount               *int     `json:"review_count,omitempty"`
	HasReviewSummary          bool     `json:"has_review_summary"`
	HasReviewImages           bool     `json:"has_review_images"`
	HasSellerResponses        bool     `json:"has_seller_responses"`
	HasVerifiedPurchaseBadges bool     `json:"has_verified_purchase_badges"`
	SocialProofScore          int      `json:"social_proof_score"`
	Observations              []string `json:"observations"`
}

// SEOAnalysis scores search-engine readiness.
type SEOAnalysis struct {
	HasStructuredData    bool     `json:"has_structured_data"`
	KeywordUsageScore    int      `json:"keyword_usage_score"`
	BreadcrumbNavigation bool     `json:"breadcrumb_navigation"`
	URLStructureScore    int      `json:"url_structure_score"`
	Observations         []string `json:"observations"`
}

// CTAAnalysis scores the call-to-action surface.
type CTAAnalysis struct {
	PrimaryCTAText              string   `json:"primary_cta_text"`
	CTAVisibilityScore          int      `json:"cta_visibility_score"`
	HasUrgencyElements          bool     `json:"has_urgency_elements"`
	HasTrustBadges              bool     `json:"has_trust_badges"`
	HasGuaranteeInfo            bool     `json:"has_guarantee_info"`
	SecondaryCTAs               []string `json:"secondary_ctas"`
	ConversionOptimizationScore int      `json:"conversion_optimization_score"`
	Observations                []string `json:"observations"`
}

// PDPAnalysis is the complete single-page analysis.
type PDPAnalysis struct {
	URL                 string              `json:"url"`
	ProductName         string              `json:"product_name"`
	Brand               *string             `json:"brand,omitempty"`
	Category            *string             `json:"category,omitempty"`
	TitleAnalysis       TitleAnalysis       `json:"title_analysis"`
	DescriptionAnalysis DescriptionAnalysis `json:"description_analysis"`
	ImageAnalysis       ImageAnalysis       `json:"image_analysis"`
	PricingAnalysis     PricingAnalysis     `json:"pricing_analysis"`
	ReviewsAnalysis     ReviewsAnalysis     `json:"reviews_analysis"`
	SEOAnalysis         SEOAnalysis         `json:"seo_analysis"`
	CTAAnalysis         CTAAnalysis         `json:"cta_analysis"`
	OverallScore        int                 `json:"overall_score"`
	Strengths           []string            `json:"strengths"`
	Weaknesses          []string            `json:"weaknesses"`
}

// ComparisonDimension compares one dimension across the two pages.
type ComparisonDimension struct {
	Dimension      string `json:"dimension"`
	SourceScore    int    `json:"source_score"`
	ReferenceScore int    `json:"reference_score"`
	Winner         string `json:"winner"` // source, reference, or tie
	GapAnalysis    string `json:"gap_analysis"`
}

// CompetitiveComparison holds the cross-page comparison.
type CompetitiveComparison struct {
	TitleComparison       ComparisonDimension `json:"title_comparison"`
	DescriptionComparison ComparisonDimension `json:"description_comparison"`
	ImageComparison       ComparisonDimension `json:"image_comparison"`
	PricingComparison     ComparisonDimension `json:"pricing_comparison"`
	ReviewsComparison     ComparisonDimension `json:"reviews_comparison"`
	SEOComparison         ComparisonDimension `json:"seo_comparison"`
	CTAComparison         ComparisonDimension `json:"cta_comparison"`
	OverallSourceScore    int                 `json:"overall_source_score"`
	OverallReferenceScore int                 `json:"overall_reference_score"`
	CompetitivePosition   string              `json:"competitive_position"`
}

// ImprovementRecommendation is one prioritized action for the source page.
type ImprovementRecommendation struct {
	Priority             string  `json:"priority"` // critical, high, medium, low
	Dimension            string  `json:"dimension"`
	Recommendation       string  `json:"recommendation"`
	Rationale            string  `json:"rationale"`
	ImplementationEffort string  `json:"implementation_effort"`
	ExpectedImpact       string  `json:"expected_impact"`
	ExampleFromReference *string `json:"example_from_reference,omitempty"`
}

// AnalysisReport is the full comparison output.
type AnalysisReport struct {
	AnalysisTimestamp string                      `json:"analysis_timestamp"`
	SourcePDP         PDPAnalysis                 `json:"source_pdp"`
	ReferencePDP      PDPAnalysis                 `json:"reference_pdp"`
	Comparison        CompetitiveComparison       `json:"comparison"`
	Recommendations   []ImprovementRecommendation `json:"recommendations"`
	ExecutiveSummary  string                      `json:"executive_summary"`
}
