package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prosewatch/prosewatch/internal/model"
	"github.com/prosewatch/prosewatch/internal/pipeline"
	"github.com/prosewatch/prosewatch/internal/worker"
	"github.com/spf13/cobra"
)

var (
	inlineText  string
	outJSON     string
	outMD       string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	noRobots    bool
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|url|-]",
	Short: "Analyze a text, file, or web page for machine-generated prose",
	Long: `Analyze scores one input from 0 (reads human) to 100 (reads
machine-generated), with a factor breakdown and every flagged phrase.

The input is a file path, an http(s) URL, or "-" for stdin. Inline text
can be passed with --text instead.

Example:
  prosewatch analyze essay.txt
  prosewatch analyze https://example.com/post --json report.json
  cat draft.md | prosewatch analyze -
  prosewatch analyze --text "Many believe it stands as a testament."
  prosewatch analyze essay.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&inlineText, "text", "", "analyze this text instead of a file or URL")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (\"-\" for stdout)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (\"-\" for stdout)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags (URL inputs only)
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", model.DefaultConfig().HTTP.UserAgent, "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch and analysis)")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip the robots.txt check")
	analyzeCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an LLM reviewer brief (never affects the score)")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// configFromFlags builds the pipeline configuration shared by analyze
// and batch.
func configFromFlags() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.HTTP.RespectRobots = !noRobots
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama needs no API key.
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		default:
			return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", llmProvider)
		}
	}

	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if inlineText == "" && len(args) == 0 {
		return fmt.Errorf("nothing to analyze: pass a file, URL, \"-\" for stdin, or --text")
	}
	if inlineText != "" && len(args) > 0 {
		return fmt.Errorf("pass either --text or an input argument, not both")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := configFromFlags()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)

	var report *model.Report
	switch {
	case inlineText != "":
		report, err = p.AnalyzeText(ctx, inlineText)
	case args[0] == "-":
		report, err = p.AnalyzeStdin(ctx, os.Stdin)
	case worker.IsURL(args[0]):
		if verbose {
			fmt.Fprintf(os.Stderr, "Fetching: %s\n", args[0])
		}
		report, err = p.AnalyzeURL(ctx, args[0])
	default:
		report, err = p.AnalyzeFile(ctx, args[0])
	}
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzed %d words, %d pattern matches\n",
			report.Result.WordCount, report.Result.TotalMatches())
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "Generated LLM brief using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
