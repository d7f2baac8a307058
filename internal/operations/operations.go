// Package operations provides a unified interface over the discovery and
// comparison pipelines, shared by the HTTP server, the CLI and the MCP
// server.
package operations

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/madhavthaker/pdp-comp-analysis/internal/analysis"
	"github.com/madhavthaker/pdp-comp-analysis/internal/citations"
	"github.com/madhavthaker/pdp-comp-analysis/internal/competitor"
)

// Operations bundles the two pipelines behind the three public operations.
type Operations struct {
	finder   *competitor.Finder
	analyzer *analysis.Analyzer
	logger   *zap.Logger
}

func New(finder *competitor.Finder, analyzer *analysis.Analyzer, logger *zap.Logger) *Operations {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Operations{finder: finder, analyzer: analyzer, logger: logger}
}

// FindCompetitor runs the discovery pipeline for sourceURL. The result may
// carry the sentinel URL when no usable citation was found; callers decide
// whether that is an error for their surface.
func (o *Operations) FindCompetitor(ctx context.Context, sourceURL string) (*competitor.Result, error) {
	result, err := o.finder.Discover(ctx, sourceURL)
	if err != nil {
		return nil, &OperationError{Op: "find-competitor", URL: sourceURL, Cause: err}
	}
	return result, nil
}

// AnalyzeComparison runs the comparison pipeline for an explicit
// source/reference pair.
func (o *Operations) AnalyzeComparison(ctx context.Context, sourceURL, referenceURL string) (*analysis.AnalysisReport, error) {
	report, err := o.analyzer.Compare(ctx, sourceURL, referenceURL)
	if err != nil {
		return nil, &OperationError{Op: "analyze", URL: sourceURL, Cause: err}
	}
	return report, nil
}

// AnalyzeSingle chains discovery and comparison: the discovered competitor
// URL becomes the reference. A sentinel discovery result or a comparison
// failure fails the whole operation; the discovery result is not returned
// partially.
func (o *Operations) AnalyzeSingle(ctx context.Context, sourceURL string) (*SingleResult, error) {
	discovery, err := o.finder.Discover(ctx, sourceURL)
	if err != nil {
		return nil, &OperationError{Op: "analyze-single", URL: sourceURL, Cause: err}
	}

	if citations.IsSentinelURL(discovery.CompetitorURL) {
		return nil, &OperationError{
			Op:    "analyze-single",
			URL:   sourceURL,
			Cause: fmt.Errorf("no competitor product page found"),
		}
	}

	report, err := o.analyzer.Compare(ctx, sourceURL, discovery.CompetitorURL)
	if err != nil {
		return nil, &OperationError{Op: "analyze-single", URL: sourceURL, Cause: err}
	}

	return &SingleResult{Discovery: discovery, Comparison: report}, nil
}
