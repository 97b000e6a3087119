package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/prosewatch/prosewatch/internal/model"
	"github.com/prosewatch/prosewatch/internal/pipeline"
	"github.com/prosewatch/prosewatch/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple inputs from a list file in parallel",
	Long: `Batch analyzes many inputs concurrently:
- Read inputs from a list file (one file path or URL per line)
- Analyze them in parallel with a configurable worker count
- Write one JSON and Markdown report per input
- Print a ranking of all inputs, highest score first

Example:
  prosewatch batch inputs.txt
  prosewatch batch inputs.txt --concurrency 10 --output-dir ./reports
  prosewatch batch inputs.txt --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./prosewatch-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().DurationVar(&timeout, "fetch-timeout", 30*time.Second, "timeout for individual URL fetches")
	batchCmd.Flags().StringVar(&userAgent, "ua", model.DefaultConfig().HTTP.UserAgent, "HTTP User-Agent")
	batchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch and analysis)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip the robots.txt check")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an LLM reviewer brief per input (never affects scores)")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := configFromFlags()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	fmt.Fprintf(os.Stderr, "Input file:  %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir:  %s\n", outputDir)
	if llmEnabled {
		fmt.Fprintf(os.Stderr, "LLM:         %s/%s\n", llmProvider, llmModel)
	}
	fmt.Fprintln(os.Stderr)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	var reports []*model.Report
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Input, result.Error)
			continue
		}

		slug := sanitizeFilename(result.Input)
		if err := renderer.RenderJSON(result.Report, filepath.Join(outputDir, slug+".json")); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write JSON: %v\n", result.Input, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, filepath.Join(outputDir, slug+".md")); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write Markdown: %v\n", result.Input, err)
			continue
		}

		reports = append(reports, result.Report)
	}

	// Ranking, most suspicious first.
	pipeline.SortByScore(reports)
	fmt.Println()
	fmt.Println(" score  verdict                 source")
	for _, report := range reports {
		fmt.Println(pipeline.SummaryLine(report))
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d  Analyzed: %d  Failed: %d  Reports: %s\n",
		len(results), len(reports), failureCount, outputDir)

	return nil
}

// sanitizeFilename turns an input (path or URL) into a safe report
// filename.
func sanitizeFilename(input string) string {
	s := input
	if worker.IsURL(input) {
		if parsed, err := url.Parse(input); err == nil {
			s = parsed.Host + "_" + strings.Trim(parsed.Path, "/")
		}
	} else {
		s = filepath.Base(s)
		s = strings.TrimSuffix(s, filepath.Ext(s))
	}

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)
	s = strings.Trim(s, "_-.")

	if s == "" {
		s = "report"
	}
	if len(s) > 100 {
		s = s[:100]
	}

	return s
}
