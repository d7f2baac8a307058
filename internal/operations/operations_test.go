package operations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madhavthaker/pdp-comp-analysis/internal/analysis"
	"github.com/madhavthaker/pdp-comp-analysis/internal/competitor"
	"github.com/madhavthaker/pdp-comp-analysis/internal/llm"
)

type stubStructured struct {
	brand    competitor.BrandResult
	category competitor.CategoryResult
	err      error
}

func (s *stubStructured) CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, result interface{}) error {
	if s.err != nil {
		return s.err
	}
	switch r := result.(type) {
	case *competitor.BrandResult:
		*r = s.brand
	case *competitor.CategoryResult:
		*r = s.category
	}
	return nil
}

type stubSearch struct {
	resp *llm.SearchResponse
	err  error
}

func (s *stubSearch) SearchWeb(ctx context.Context, prompt string) (*llm.SearchResponse, error) {
	return s.resp, s.err
}

type stubCompletion struct {
	payload []byte
	err     error
	called  bool
	gotUser string
}

func (s *stubCompletion) CompleteStructuredRaw(ctx context.Context, systemPrompt, userPrompt string, shape interface{}) ([]byte, error) {
	s.called = true
	s.gotUser = userPrompt
	return s.payload, s.err
}

func validReportPayload(t *testing.T) []byte {
	t.Helper()

	pdp := func(url string) analysis.PDPAnalysis {
		return analysis.PDPAnalysis{
			URL:                 url,
			ProductName:         "Widget",
			TitleAnalysis:       analysis.TitleAnalysis{TitleText: "Widget", KeywordRichness: 5, Clarity: 5, EmotionalAppeal: 5},
			DescriptionAnalysis: analysis.DescriptionAnalysis{BenefitFocused: 5, Readability: 5, Completeness: 5},
			ImageAnalysis:       analysis.ImageAnalysis{ImageQualityScore: 5, ImageVarietyScore: 5},
			PricingAnalysis:     analysis.PricingAnalysis{PriceVisibilityScore: 5, ValuePropositionScore: 5},
			ReviewsAnalysis:     analysis.ReviewsAnalysis{SocialProofScore: 5},
			SEOAnalysis:         analysis.SEOAnalysis{KeywordUsageScore: 5, URLStructureScore: 5},
			CTAAnalysis:         analysis.CTAAnalysis{PrimaryCTAText: "Buy", CTAVisibilityScore: 5, ConversionOptimizationScore: 5},
			OverallScore:        50,
		}
	}
	dim := analysis.ComparisonDimension{Dimension: "title", SourceScore: 5, ReferenceScore: 5, Winner: "tie"}

	report := analysis.AnalysisReport{
		SourcePDP:    pdp("https://a.com/p/1"),
		ReferencePDP: pdp("https://b.com/p/2"),
		Comparison: analysis.CompetitiveComparison{
			TitleComparison:       dim,
			DescriptionComparison: dim,
			ImageComparison:       dim,
			PricingComparison:     dim,
			ReviewsComparison:     dim,
			SEOComparison:         dim,
			CTAComparison:         dim,
			OverallSourceScore:    50,
			OverallReferenceScore: 50,
		},
		Recommendations:  []analysis.ImprovementRecommendation{},
		ExecutiveSummary: "even match",
	}

	payload, err := json.Marshal(report)
	require.NoError(t, err)
	return payload
}

func newOps(structured *stubStructured, search *stubSearch, completion *stubCompletion) *Operations {
	finder := competitor.NewFinder(structured, search, nil)
	analyzer := analysis.NewAnalyzer(completion, nil)
	return New(finder, analyzer, nil)
}

func discoverySuccess() (*stubStructured, *stubSearch) {
	structured := &stubStructured{
		brand:    competitor.BrandResult{Brand: "Acme"},
		category: competitor.CategoryResult{ProductName: "Widget", Brand: "B", Category: "keyboard"},
	}
	search := &stubSearch{
		resp: &llm.SearchResponse{
			Items: []llm.OutputItem{{Blocks: []llm.ContentBlock{{
				Annotations: []llm.Annotation{{
					Type:  llm.AnnotationTypeURLCitation,
					URL:   "https://acme.com/products/keyboard-x",
					Title: "Keyboard X",
				}},
			}}}},
		},
	}
	return structured, search
}

func TestFindCompetitor(t *testing.T) {
	structured, search := discoverySuccess()
	ops := newOps(structured, search, &stubCompletion{})

	result, err := ops.FindCompetitor(context.Background(), "https://a.com/p/1")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com/products/keyboard-x", result.CompetitorURL)
}

func TestFindCompetitorWrapsError(t *testing.T) {
	cause := errors.New("provider down")
	ops := newOps(&stubStructured{err: cause}, &stubSearch{}, &stubCompletion{})

	_, err := ops.FindCompetitor(context.Background(), "https://a.com/p/1")
	require.Error(t, err)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "find-competitor", opErr.Op)
	assert.ErrorIs(t, err, cause)
}

func TestAnalyzeComparison(t *testing.T) {
	completion := &stubCompletion{payload: validReportPayload(t)}
	ops := newOps(&stubStructured{}, &stubSearch{}, completion)

	report, err := ops.AnalyzeComparison(context.Background(), "https://a.com/p/1", "https://b.com/p/2")
	require.NoError(t, err)
	assert.NotEmpty(t, report.AnalysisTimestamp)
}

func TestAnalyzeSingleChainsDiscoveryIntoComparison(t *testing.T) {
	structured, search := discoverySuccess()
	completion := &stubCompletion{payload: validReportPayload(t)}
	ops := newOps(structured, search, completion)

	result, err := ops.AnalyzeSingle(context.Background(), "https://a.com/p/1")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com/products/keyboard-x", result.Discovery.CompetitorURL)
	assert.NotNil(t, result.Comparison)

	// The discovered URL must be fed into the comparison prompt as reference.
	assert.Contains(t, completion.gotUser, "https://acme.com/products/keyboard-x")
}

func TestAnalyzeSingleFailsOnSentinelDiscovery(t *testing.T) {
	structured := &stubStructured{
		brand:    competitor.BrandResult{Brand: "Acme"},
		category: competitor.CategoryResult{ProductName: "Widget", Brand: "B", Category: "keyboard"},
	}
	search := &stubSearch{resp: &llm.SearchResponse{OutputText: "no links"}}
	completion := &stubCompletion{payload: validReportPayload(t)}
	ops := newOps(structured, search, completion)

	_, err := ops.AnalyzeSingle(context.Background(), "https://a.com/p/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no competitor product page found")
	assert.False(t, completion.called)
}

func TestAnalyzeSingleDiscardsDiscoveryOnComparisonFailure(t *testing.T) {
	structured, search := discoverySuccess()
	completion := &stubCompletion{err: errors.New("comparison blew up")}
	ops := newOps(structured, search, completion)

	result, err := ops.AnalyzeSingle(context.Background(), "https://a.com/p/1")
	require.Error(t, err)
	assert.Nil(t, result)
}
