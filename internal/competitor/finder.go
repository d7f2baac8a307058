// Package competitor implements the competitor-discovery pipeline: brand
// selection, category extraction, then a web-search-backed URL resolution
// ranked by citation scoring.
package competitor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/madhavthaker/pdp-comp-analysis/internal/citations"
	"github.com/madhavthaker/pdp-comp-analysis/internal/llm"
	"github.com/madhavthaker/pdp-comp-analysis/internal/prompts"
)

// StructuredClient covers the structured-output calls of steps 1 and 2.
type StructuredClient interface {
	CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, result interface{}) error
}

// SearchClient covers the annotated web-search call of step 3.
type SearchClient interface {
	SearchWeb(ctx context.Context, prompt string) (*llm.SearchResponse, error)
}

// Finder runs the three-step discovery pipeline. The steps are strictly
// sequential: step 3's prompt depends on the outputs of steps 1 and 2.
type Finder struct {
	structured StructuredClient
	search     SearchClient
	logger     *zap.Logger
}

func NewFinder(structured StructuredClient, search SearchClient, logger *zap.Logger) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{structured: structured, search: search, logger: logger}
}

// Discover resolves the best competitor product page for sourceURL. A
// failure in any step aborts the remaining steps; an extraction failure in
// step 3 degrades to the sentinel citation instead of an error, which the
// caller must check for via citations.IsSentinel.
func (f *Finder) Discover(ctx context.Context, sourceURL string) (*Result, error) {
	if err := validateURL(sourceURL); err != nil {
		return nil, err
	}

	brand, err := f.findBrand(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("brand selection failed: %w", err)
	}
	f.logger.Info("competitor brand selected",
		zap.String("source_url", sourceURL),
		zap.String("brand", brand.Brand))

	category, err := f.extractCategory(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("category extraction failed: %w", err)
	}
	f.logger.Info("product category extracted",
		zap.String("category", category.Category),
		zap.String("product_name", category.ProductName))

	best, err := f.findCompetitorURL(ctx, brand.Brand, category.Category)
	if err != nil {
		return nil, fmt.Errorf("competitor URL discovery failed: %w", err)
	}
	f.logger.Info("competitor URL resolved",
		zap.String("competitor_url", best.URL),
		zap.String("competitor_product", best.Title))

	return &Result{
		SourceProductName:      category.ProductName,
		SourceBrand:            category.Brand,
		SourceCategory:         category.Category,
		SourcePrice:            category.Price,
		CompetitorURL:          best.URL,
		CompetitorProductName:  best.Title,
		CompetitorBrand:        brand.Brand,
		Reasons:                brand.Reasons,
		AlternativesConsidered: brand.AlternativesConsidered,
	}, nil
}

func (f *Finder) findBrand(ctx context.Context, sourceURL string) (*BrandResult, error) {
	var result BrandResult
	prompt := prompts.BrandSelection(sourceURL)
	if err := f.structured.CompleteStructured(ctx, prompts.DiscoverySystem, prompt, &result); err != nil {
		return nil, err
	}
	if result.Brand == "" {
		return nil, fmt.Errorf("empty brand in structured response")
	}
	return &result, nil
}

func (f *Finder) extractCategory(ctx context.Context, sourceURL string) (*CategoryResult, error) {
	var result CategoryResult
	prompt := prompts.CategoryExtraction(sourceURL)
	if err := f.structured.CompleteStructured(ctx, prompts.DiscoverySystem, prompt, &result); err != nil {
		return nil, err
	}
	if result.Category == "" {
		return nil, fmt.Errorf("empty category in structured response")
	}
	return &result, nil
}

func (f *Finder) findCompetitorURL(ctx context.Context, brand, category string) (citations.Citation, error) {
	prompt := prompts.CompetitorSearch(brand, category)
	resp, err := f.search.SearchWeb(ctx, prompt)
	if err != nil {
		return citations.Citation{}, err
	}

	cits := citations.Extract(resp)
	return citations.SelectBest(cits, brand), nil
}

func validateURL(rawURL string) error {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return fmt.Errorf("invalid URL %q: must start with http:// or https://", rawURL)
	}
	return nil
}
