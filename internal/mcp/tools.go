package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcp "github.com/metoro-io/mcp-golang"

	"github.com/madhavthaker/pdp-comp-analysis/internal/operations"
)

// RegisterTools registers the discovery and comparison operations as tools.
func RegisterTools(server *mcp.Server, ops *operations.Operations) error {
	err := server.RegisterTool(
		"find_competitor",
		"Find the best competitor product page for an e-commerce product URL",
		func(args struct {
			URL string `json:"url" jsonschema:"required,description=Product page URL to find a competitor for"`
		}) (*mcp.ToolResponse, error) {
			result, err := ops.FindCompetitor(context.Background(), args.URL)
			if err != nil {
				return nil, err
			}

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to encode result: %w", err)
			}

			return mcp.NewToolResponse(mcp.NewTextContent(string(data))), nil
		},
	)
	if err != nil {
		return err
	}

	err = server.RegisterTool(
		"analyze_pdp",
		"Compare a source product page against a reference competitor page",
		func(args struct {
			SourceURL    string `json:"source_url" jsonschema:"required,description=Product page to improve"`
			ReferenceURL string `json:"reference_url" jsonschema:"required,description=Competitor page to benchmark against"`
		}) (*mcp.ToolResponse, error) {
			report, err := ops.AnalyzeComparison(context.Background(), args.SourceURL, args.ReferenceURL)
			if err != nil {
				return nil, err
			}

			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to encode report: %w", err)
			}

			return mcp.NewToolResponse(mcp.NewTextContent(string(data))), nil
		},
	)
	if err != nil {
		return err
	}

	err = server.RegisterTool(
		"analyze_single",
		"Discover the best competitor for a product page and compare against it",
		func(args struct {
			URL string `json:"url" jsonschema:"required,description=Product page URL to analyze"`
		}) (*mcp.ToolResponse, error) {
			result, err := ops.AnalyzeSingle(context.Background(), args.URL)
			if err != nil {
				return nil, err
			}

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to encode result: %w", err)
			}

			return mcp.NewToolResponse(mcp.NewTextContent(string(data))), nil
		},
	)
	if err != nil {
		return err
	}

	return nil
}
