package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/madhavthaker/pdp-comp-analysis/internal/prompts"
)

// CompletionClient is the slice of the LLM client the analyzer needs: one
// schema-constrained completion returning the raw payload for boundary
// validation.
type CompletionClient interface {
	CompleteStructuredRaw(ctx context.Context, systemPrompt, userPrompt string, shape interface{}) ([]byte, error)
}

// Analyzer runs the comparison pipeline.
type Analyzer struct {
	client CompletionClient
	logger *zap.Logger
}

func NewAnalyzer(client CompletionClient, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{client: client, logger: logger}
}

// Compare issues one structured call comparing the source page against the
// reference page, validates the payload against the report schema, and
// stamps the timestamp if the provider left it empty.
func (a *Analyzer) Compare(ctx context.Context, sourceURL, referenceURL string) (*AnalysisReport, error) {
	prompt := prompts.Comparison(sourceURL, referenceURL)

	a.logger.Info("running comparison analysis",
		zap.String("source_url", sourceURL),
		zap.String("reference_url", referenceURL))

	payload, err := a.client.CompleteStructuredRaw(ctx, prompts.ComparisonSystem, prompt, &AnalysisReport{})
	if err != nil {
		return nil, fmt.Errorf("comparison call failed: %w", err)
	}

	if err := ValidateReportPayload(payload); err != nil {
		return nil, err
	}

	var report AnalysisReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to parse analysis report: %w", err)
	}

	if report.AnalysisTimestamp == "" {
		report.AnalysisTimestamp = time.Now().UTC().Format(time.RFC3339)
	}

	a.logger.Info("comparison analysis complete",
		zap.Int("source_score", report.Comparison.OverallSourceScore),
		zap.Int("reference_score", report.Comparison.OverallReferenceScore),
		zap.Int("recommendations", len(report.Recommendations)))

	return &report, nil
}
