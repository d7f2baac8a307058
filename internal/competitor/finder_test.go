package competitor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madhavthaker/pdp-comp-analysis/internal/citations"
	"github.com/madhavthaker/pdp-comp-analysis/internal/llm"
)

type fakeStructured struct {
	brand       BrandResult
	category    CategoryResult
	brandErr    error
	categoryErr error

	calls []string
}

func (f *fakeStructured) CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, result interface{}) error {
	switch r := result.(type) {
	case *BrandResult:
		f.calls = append(f.calls, "brand")
		if f.brandErr != nil {
			return f.brandErr
		}
		*r = f.brand
	case *CategoryResult:
		f.calls = append(f.calls, "category")
		if f.categoryErr != nil {
			return f.categoryErr
		}
		*r = f.category
	default:
		return errors.New("unexpected result type")
	}
	return nil
}

type fakeSearch struct {
	resp   *llm.SearchResponse
	err    error
	prompt string
	called bool
}

func (f *fakeSearch) SearchWeb(ctx context.Context, prompt string) (*llm.SearchResponse, error) {
	f.called = true
	f.prompt = prompt
	return f.resp, f.err
}

func annotatedResponse(cits ...llm.Annotation) *llm.SearchResponse {
	return &llm.SearchResponse{
		Items: []llm.OutputItem{
			{Blocks: []llm.ContentBlock{{Annotations: cits}}},
		},
	}
}

func TestDiscoverEndToEnd(t *testing.T) {
	structured := &fakeStructured{
		brand: BrandResult{
			Brand:                  "Acme",
			Reasons:                []Reason{{Reason: "market leader", Detail: "largest share"}},
			AlternativesConsidered: []string{"Rival Co"},
		},
		category: CategoryResult{
			ProductName: "Heavyweight Hoodie",
			Brand:       "Talentless",
			Category:    "wireless keyboard",
			Price:       "$49.99",
		},
	}
	search := &fakeSearch{
		resp: annotatedResponse(
			llm.Annotation{Type: llm.AnnotationTypeURLCitation, URL: "https://acme.com/blogs/news"},
			llm.Annotation{Type: llm.AnnotationTypeURLCitation, URL: "https://acme.com/products/keyboard-x", Title: "Keyboard X"},
		),
	}

	result, err := NewFinder(structured, search, nil).Discover(context.Background(), "https://talentless.co/products/hoodie")
	require.NoError(t, err)

	assert.Equal(t, "https://acme.com/products/keyboard-x", result.CompetitorURL)
	assert.Equal(t, "Keyboard X", result.CompetitorProductName)
	assert.Equal(t, "Acme", result.CompetitorBrand)
	assert.Equal(t, "Heavyweight Hoodie", result.SourceProductName)
	assert.Equal(t, "Talentless", result.SourceBrand)
	assert.Equal(t, "wireless keyboard", result.SourceCategory)
	assert.Equal(t, "$49.99", result.SourcePrice)
	assert.Equal(t, []string{"Rival Co"}, result.AlternativesConsidered)
	require.Len(t, result.Reasons, 1)

	// Step 3's prompt is built from steps 1 and 2.
	assert.Contains(t, search.prompt, "Acme")
	assert.Contains(t, search.prompt, "wireless keyboard")
	assert.Equal(t, []string{"brand", "category"}, structured.calls)
}

func TestDiscoverRejectsNonHTTPURL(t *testing.T) {
	structured := &fakeStructured{}
	search := &fakeSearch{}

	_, err := NewFinder(structured, search, nil).Discover(context.Background(), "ftp://example.com/product")
	require.Error(t, err)
	assert.Empty(t, structured.calls)
	assert.False(t, search.called)
}

func TestDiscoverBrandFailureAbortsPipeline(t *testing.T) {
	cause := errors.New("provider down")
	structured := &fakeStructured{brandErr: cause}
	search := &fakeSearch{}

	_, err := NewFinder(structured, search, nil).Discover(context.Background(), "https://a.com/p")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"brand"}, structured.calls)
	assert.False(t, search.called)
}

func TestDiscoverCategoryFailureAbortsBeforeSearch(t *testing.T) {
	structured := &fakeStructured{
		brand:       BrandResult{Brand: "Acme"},
		categoryErr: errors.New("timeout"),
	}
	search := &fakeSearch{}

	_, err := NewFinder(structured, search, nil).Discover(context.Background(), "https://a.com/p")
	require.Error(t, err)
	assert.False(t, search.called)
}

func TestDiscoverSearchFailurePropagates(t *testing.T) {
	structured := &fakeStructured{
		brand:    BrandResult{Brand: "Acme"},
		category: CategoryResult{ProductName: "X", Brand: "B", Category: "keyboard"},
	}
	search := &fakeSearch{err: errors.New("search unavailable")}

	_, err := NewFinder(structured, search, nil).Discover(context.Background(), "https://a.com/p")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "competitor URL discovery failed"))
}

func TestDiscoverDegradesToSentinelOnNoCitations(t *testing.T) {
	structured := &fakeStructured{
		brand:    BrandResult{Brand: "Acme"},
		category: CategoryResult{ProductName: "X", Brand: "B", Category: "keyboard"},
	}
	search := &fakeSearch{resp: &llm.SearchResponse{OutputText: "nothing useful"}}

	result, err := NewFinder(structured, search, nil).Discover(context.Background(), "https://a.com/p")
	require.NoError(t, err)
	assert.Equal(t, citations.SentinelURL, result.CompetitorURL)
	assert.Equal(t, citations.SentinelTitle, result.CompetitorProductName)
}

func TestDiscoverFallsBackToTextScan(t *testing.T) {
	structured := &fakeStructured{
		brand:    BrandResult{Brand: "Acme"},
		category: CategoryResult{ProductName: "X", Brand: "B", Category: "keyboard"},
	}
	search := &fakeSearch{resp: &llm.SearchResponse{
		OutputText: "Best match: https://acme.com/products/keyboard-pro plus https://other.com/blogs/post",
	}}

	result, err := NewFinder(structured, search, nil).Discover(context.Background(), "https://a.com/p")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com/products/keyboard-pro", result.CompetitorURL)
	assert.Empty(t, result.CompetitorProductName)
}

func TestDiscoverRejectsEmptyBrand(t *testing.T) {
	structured := &fakeStructured{brand: BrandResult{Brand: ""}}
	search := &fakeSearch{}

	_, err := NewFinder(structured, search, nil).Discover(context.Background(), "https://a.com/p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brand")
}
