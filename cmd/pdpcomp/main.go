package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/madhavthaker/pdp-comp-analysis/internal/analysis"
	"github.com/madhavthaker/pdp-comp-analysis/internal/competitor"
	"github.com/madhavthaker/pdp-comp-analysis/internal/config"
	"github.com/madhavthaker/pdp-comp-analysis/internal/llm"
	"github.com/madhavthaker/pdp-comp-analysis/internal/logging"
	"github.com/madhavthaker/pdp-comp-analysis/internal/mcp"
	"github.com/madhavthaker/pdp-comp-analysis/internal/operations"
	"github.com/madhavthaker/pdp-comp-analysis/internal/server"
)

func main() {
	var (
		help          bool
		serve         bool
		mcpMode       bool
		findURL       string
		analyzeURL    string
		referenceURL  string
		analyzeSingle string
		output        string
		port          int
		token         string
	)

	flag.BoolVar(&help, "help", false, "Show help message")
	flag.BoolVar(&help, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&serve, "serve", false, "Run the HTTP API server")
	flag.BoolVar(&mcpMode, "mcp", false, "Run as MCP server for AI assistants (requires stdio connection)")
	flag.StringVar(&findURL, "find-competitor", "", "Find the best competitor for a product page URL")
	flag.StringVar(&analyzeURL, "analyze", "", "Source product page URL to analyze (requires -reference)")
	flag.StringVar(&referenceURL, "reference", "", "Reference competitor URL for -analyze")
	flag.StringVar(&analyzeSingle, "analyze-single", "", "Discover a competitor for a URL and compare against it")
	flag.StringVar(&output, "o", "", "Write the JSON result to a file instead of stdout")
	flag.IntVar(&port, "port", 0, "Port for the HTTP API server (overrides PORT env var)")
	flag.StringVar(&token, "token", "", "Optional auth token for the HTTP API (overrides TOKEN env var)")
	flag.Parse()

	if help {
		printUsage()
		os.Exit(0)
	}

	if mcpMode {
		if err := mcp.RunServer(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if port != 0 {
		cfg.Port = port
	}
	if token != "" {
		cfg.Token = token
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	structured := llm.NewClient(cfg.OpenRouterKey, cfg.Model)
	search := llm.NewSearchClient(cfg.OpenAIKey, cfg.SearchModel)
	finder := competitor.NewFinder(structured, search, logger)
	analyzer := analysis.NewAnalyzer(structured, logger)
	ops := operations.New(finder, analyzer, logger)

	ctx := context.Background()

	switch {
	case serve:
		runServer(ctx, cfg, ops, logger)
	case findURL != "":
		result, err := ops.FindCompetitor(ctx, findURL)
		exitOnError(err)
		writeResult(result, output)
	case analyzeURL != "":
		if referenceURL == "" {
			fmt.Fprintln(os.Stderr, "Error: -analyze requires -reference")
			os.Exit(2)
		}
		report, err := ops.AnalyzeComparison(ctx, analyzeURL, referenceURL)
		exitOnError(err)
		writeResult(report, output)
	case analyzeSingle != "":
		result, err := ops.AnalyzeSingle(ctx, analyzeSingle)
		exitOnError(err)
		writeResult(result, output)
	default:
		printUsage()
		os.Exit(2)
	}
}

func runServer(ctx context.Context, cfg *config.Config, ops *operations.Operations, logger *zap.Logger) {
	apiServer := server.NewServer(cfg.Port, cfg.Token, cfg.FrontendURL, ops, logger)

	go func() {
		if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("API server error", zap.Error(err))
		}
	}()
	logger.Info("API server started", zap.Int("port", cfg.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error stopping server", zap.Error(err))
	}
}

func writeResult(result any, output string) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		os.Exit(1)
	}

	if output == "" {
		fmt.Println(string(data))
		return
	}

	if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}
	fmt.Printf("Result written to %s\n", output)
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println("pdpcomp - PDP competitive analysis")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s [flags]\n", os.Args[0])
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  OPENROUTER_API_KEY   OpenRouter API key (structured analysis calls)")
	fmt.Println("  OPENAI_API_KEY       OpenAI API key (web-search discovery step)")
	fmt.Println("  MODEL                Model for structured calls")
	fmt.Println("  SEARCH_MODEL         Model for the web-search step")
	fmt.Println("  PORT                 HTTP API port")
	fmt.Println("  TOKEN                Optional bearer token for the HTTP API")
	fmt.Println("  FRONTEND_URL         Allowed CORS origin for the deployed frontend")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s -find-competitor \"https://shop.com/products/widget\"\n", os.Args[0])
	fmt.Printf("  %s -analyze \"https://shop.com/p/1\" -reference \"https://rival.com/p/2\" -o report.json\n", os.Args[0])
	fmt.Printf("  %s -analyze-single \"https://shop.com/products/widget\"\n", os.Args[0])
	fmt.Printf("  %s -serve\n", os.Args[0])
}
