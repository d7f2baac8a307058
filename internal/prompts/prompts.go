// Package prompts renders the natural-language prompts for the discovery
// and comparison calls. Templates are parsed once at package init and URLs
// are interpolated verbatim.
package prompts

import (
	"strings"
	"text/template"
)

// System prompts for the structured calls.
const (
	DiscoverySystem  = "You are an expert e-commerce competitive intelligence analyst. Always provide accurate, real competitor URLs that are currently accessible."
	ComparisonSystem = "You are an expert e-commerce analyst specializing in PDP optimization and competitive analysis. Always provide thorough, actionable insights."
)

var (
	brandTmpl = template.Must(template.New("brand").Parse(
		`What is the brand name of the best in class competitor for this product? {{.SourceURL}}

Identify the single strongest competitor brand, explain your reasoning, and list the other brands you considered.`))

	categoryTmpl = template.Must(template.New("category").Parse(
		`What is the core product category of this product? {{.SourceURL}}

Describe it as a short product category description (e.g. 'Wireless mechanical keyboard'), and extract the product name, brand, and displayed price if visible.`))

	competitorSearchTmpl = template.Must(template.New("competitorSearch").Parse(
		`Your task: Find me a product from the brand "{{.Brand}}" that is a "{{.Category}}".

I need the product title that is on a specific PRODUCT PAGE (PDP) from {{.Brand}}'s official website.

Requirements:
- Product title must be from {{.Brand}}'s official website
- Product URL should contain /products/ or /product/ in the path
- Include the citation for the PDP (not the category page, not the homepage, not the blog post) that contains the product title you found!`))

	comparisonTmpl = template.Must(template.New("comparison").Parse(
		`Analyze and compare these two Product Detail Pages (PDPs):

SOURCE PDP (the page to improve): {{.SourceURL}}
REFERENCE PDP (the competitor benchmark): {{.ReferenceURL}}

Visit both pages and produce a complete competitive analysis:
1. Analyze each page's title, description, images, pricing, reviews, SEO, and call-to-action, scoring each dimension 1-10 with concrete observations.
2. Compare the two pages dimension by dimension, naming a winner (source, reference, or tie) and the gap for each.
3. Give each page an overall score from 1-100.
4. Produce prioritized improvement recommendations (critical, high, medium, or low) for the source page, with rationale, implementation effort, expected impact, and examples from the reference page where relevant.
5. Finish with an executive summary of the competitive position.`))
)

// BrandSelection renders the step-1 prompt asking for the best competitor
// brand for the product at sourceURL.
func BrandSelection(sourceURL string) string {
	return render(brandTmpl, map[string]string{"SourceURL": sourceURL})
}

// CategoryExtraction renders the step-2 prompt asking for the product's
// core category.
func CategoryExtraction(sourceURL string) string {
	return render(categoryTmpl, map[string]string{"SourceURL": sourceURL})
}

// CompetitorSearch renders the step-3 web-search prompt for a product page
// from the given brand in the given category.
func CompetitorSearch(brand, category string) string {
	return render(competitorSearchTmpl, map[string]string{"Brand": brand, "Category": category})
}

// Comparison renders the analysis prompt naming both URLs explicitly in
// their source and reference roles.
func Comparison(sourceURL, referenceURL string) string {
	return render(comparisonTmpl, map[string]string{
		"SourceURL":    sourceURL,
		"ReferenceURL": referenceURL,
	})
}

func render(tmpl *template.Template, data map[string]string) string {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		// Templates are static and data is a flat string map; execution
		// cannot fail on well-formed templates.
		return ""
	}
	return sb.String()
}
