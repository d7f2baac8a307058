package analysis

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// reportSchema enforces the boundary invariants on the provider payload:
// every dimension score sits in [1,10], overall scores in [1,100], and
// recommendation priorities come from the fixed enumeration. Free-text
// content is not constrained beyond type.
const reportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["source_pdp", "reference_pdp", "comparison", "recommendations", "executive_summary"],
  "definitions": {
    "score10": {"type": "integer", "minimum": 1, "maximum": 10},
    "score100": {"type": "integer", "minimum": 1, "maximum": 100},
    "stringList": {"type": ["array", "null"], "items": {"type": "string"}},
    "titleAnalysis": {
      "type": "object",
      "required": ["title_text", "keyword_richness", "clarity", "emotional_appeal"],
      "properties": {
        "keyword_richness": {"$ref": "#/definitions/score10"},
        "clarity": {"$ref": "#/definitions/score10"},
        "emotional_appeal": {"$ref": "#/definitions/score10"},
        "observations": {"$ref": "#/definitions/stringList"}
      }
    },
    "descriptionAnalysis": {
      "type": "object",
      "required": ["benefit_focused", "readability", "completeness"],
      "properties": {
        "benefit_focused": {"$ref": "#/definitions/score10"},
        "readability": {"$ref": "#/definitions/score10"},
        "completeness": {"$ref": "#/definitions/score10"},
        "unique_selling_points": {"$ref": "#/definitions/stringList"},
        "observations": {"$ref": "#/definitions/stringList"}
      }
    },
    "imageAnalysis": {
      "type": "object",
      "required": ["image_quality_score", "image_variety_score"],
      "properties": {
        "image_quality_score": {"$ref": "#/definitions/score10"},
        "image_variety_score": {"$ref": "#/definitions/score10"},
        "observations": {"$ref": "#/definitions/stringList"}
      }
    },
    "pricingAnalysis": {
      "type": "object",
      "required": ["price_visibility_score", "value_proposition_score"],
      "properties": {
        "price_visibility_score": {"$ref": "#/definitions/score10"},
        "value_proposition_score": {"$ref": "#/definitions/score10"},
        "observations": {"$ref": "#/definitions/stringList"}
      }
    },
    "reviewsAnalysis": {
      "type": "object",
      "required": ["social_proof_score"],
      "properties": {
        "social_proof_score": {"$ref": "#/definitions/score10"},
        "observations": {"$ref": "#/definitions/stringList"}
      }
    },
    "seoAnalysis": {
      "type": "object",
      "required": ["keyword_usage_score", "url_structure_score"],
      "properties": {
        "keyword_usage_score": {"$ref": "#/definitions/score10"},
        "url_structure_score": {"$ref": "#/definitions/score10"},
        "observations": {"$ref": "#/definitions/stringList"}
      }
    },
    "ctaAnalysis": {
      "type": "object",
      "required": ["cta_visibility_score", "conversion_optimization_score"],
      "properties": {
        "cta_visibility_score": {"$ref": "#/definitions/score10"},
        "conversion_optimization_score": {"$ref": "#/definitions/score10"},
        "observations": {"$ref": "#/definitions/stringList"}
      }
    },
    "pdpAnalysis": {
      "type": "object",
      "required": ["url", "product_name", "title_analysis", "description_analysis",
                   "image_analysis", "pricing_analysis", "reviews_analysis",
                   "seo_analysis", "cta_analysis", "overall_score"],
      "properties": {
        "url": {"type": "string"},
        "product_name": {"type": "string"},
        "title_analysis": {"$ref": "#/definitions/titleAnalysis"},
        "description_analysis": {"$ref": "#/definitions/descriptionAnalysis"},
        "image_analysis": {"$ref": "#/definitions/imageAnalysis"},
        "pricing_analysis": {"$ref": "#/definitions/pricingAnalysis"},
        "reviews_analysis": {"$ref": "#/definitions/reviewsAnalysis"},
        "seo_analysis": {"$ref": "#/definitions/seoAnalysis"},
        "cta_analysis": {"$ref": "#/definitions/ctaAnalysis"},
        "overall_score": {"$ref": "#/definitions/score100"},
        "strengths": {"$ref": "#/definitions/stringList"},
        "weaknesses": {"$ref": "#/definitions/stringList"}
      }
    },
    "comparisonDimension": {
      "type": "object",
      "required": ["dimension", "source_score", "reference_score", "winner"],
      "properties": {
        "source_score": {"$ref": "#/definitions/score10"},
        "reference_score": {"$ref": "#/definitions/score10"},
        "winner": {"type": "string", "enum": ["source", "reference", "tie"]},
        "gap_analysis": {"type": "string"}
      }
    }
  },
  "properties": {
    "analysis_timestamp": {"type": "string"},
    "source_pdp": {"$ref": "#/definitions/pdpAnalysis"},
    "reference_pdp": {"$ref": "#/definitions/pdpAnalysis"},
    "comparison": {
      "type": "object",
      "required": ["title_comparison", "description_comparison", "image_comparison",
                   "pricing_comparison", "reviews_comparison", "seo_comparison",
                   "cta_comparison", "overall_source_score", "overall_reference_score"],
      "properties": {
        "title_comparison": {"$ref": "#/definitions/comparisonDimension"},
        "description_comparison": {"$ref": "#/definitions/comparisonDimension"},
        "image_comparison": {"$ref": "#/definitions/comparisonDimension"},
        "pricing_comparison": {"$ref": "#/definitions/comparisonDimension"},
        "reviews_comparison": {"$ref": "#/definitions/comparisonDimension"},
        "seo_comparison": {"$ref": "#/definitions/comparisonDimension"},
        "cta_comparison": {"$ref": "#/definitions/comparisonDimension"},
        "overall_source_score": {"$ref": "#/definitions/score100"},
        "overall_reference_score": {"$ref": "#/definitions/score100"},
        "competitive_position": {"type": "string"}
      }
    },
    "recommendations": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["priority", "dimension", "recommendation"],
        "properties": {
          "priority": {"type": "string", "enum": ["critical", "high", "medium", "low"]},
          "dimension": {"type": "string"},
          "recommendation": {"type": "string"},
          "rationale": {"type": "string"},
          "implementation_effort": {"type": "string"},
          "expected_impact": {"type": "string"}
        }
      }
    },
    "executive_summary": {"type": "string"}
  }
}`

var compiledReportSchema = gojsonschema.NewStringLoader(reportSchema)

// ValidateReportPayload checks a raw provider payload against the report
// schema before it is parsed into an AnalysisReport.
func ValidateReportPayload(payload []byte) error {
	result, err := gojsonschema.Validate(compiledReportSchema, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("report payload failed validation: %v", errs)
	}

	return nil
}
