package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prosewatch/prosewatch/internal/cache"
	"github.com/prosewatch/prosewatch/internal/llm"
	"github.com/prosewatch/prosewatch/internal/model"
	"github.com/prosewatch/prosewatch/internal/score"
)

// Pipeline turns an input (text, file, URL, stdin) into a report: it
// resolves the source to prose, runs the analyzer, and attaches the
// optional reviewer brief. The brief is generated after scoring and
// never feeds back into the result.
type Pipeline struct {
	fetcher   *Fetcher
	analyzer  *score.Analyzer
	explainer *llm.Explainer // nil when no provider is configured
	cache     cache.Cache    // nil when caching is disabled
	renderer  *Renderer
	config    *model.Config
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	var explainer *llm.Explainer
	if cfg.LLM.Provider != "" {
		e, err := llm.NewExplainer(llm.ConfigFromModel(cfg.LLM, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			explainer = e
		}
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			c = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			c = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	return &Pipeline{
		fetcher:   NewFetcher(cfg.HTTP, cfg.RateLimit),
		analyzer:  score.NewAnalyzer(),
		explainer: explainer,
		cache:     c,
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
	}
}

// AnalyzeText analyzes raw text passed directly on the command line.
func (p *Pipeline) AnalyzeText(ctx context.Context, text string) (*model.Report, error) {
	return p.analyze(ctx, text, "text", model.SourceText, nil)
}

// AnalyzeFile analyzes the contents of a local file.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return p.analyze(ctx, string(data), path, model.SourceFile, nil)
}

// AnalyzeStdin analyzes text read from the given reader.
func (p *Pipeline) AnalyzeStdin(ctx context.Context, r io.Reader) (*model.Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	return p.analyze(ctx, string(data), "stdin", model.SourceStdin, nil)
}

// AnalyzeURL fetches a page, extracts its visible prose and analyzes it.
// Fetched pages are cached by URL so repeat runs skip the network.
func (p *Pipeline) AnalyzeURL(ctx context.Context, rawURL string) (*model.Report, error) {
	var (
		rawHTML string
		meta    *model.FetchMeta
	)

	pageKey := cache.URLKey(rawURL)
	if p.cache != nil {
		if cached, found := p.cache.Get(pageKey); found {
			var page cachedPage
			if err := json.Unmarshal(cached, &page); err == nil {
				rawHTML = page.HTML
				meta = &page.Meta
			}
		}
	}

	if rawHTML == "" {
		fetched, err := p.fetcher.Fetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		rawHTML = fetched.HTML
		meta = &fetched.Meta

		if p.cache != nil {
			if encoded, err := json.Marshal(cachedPage{HTML: rawHTML, Meta: *meta}); err == nil {
				_ = p.cache.Set(pageKey, encoded, p.config.Cache.TTL)
			}
		}
	}

	text, err := ExtractText(rawHTML)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	return p.analyze(ctx, text, rawURL, model.SourceURL, meta)
}

// cachedPage is the cache encoding for a fetched page.
type cachedPage struct {
	HTML string          `json:"html"`
	Meta model.FetchMeta `json:"meta"`
}

func (p *Pipeline) analyze(ctx context.Context, text, source string, kind model.SourceKind, meta *model.FetchMeta) (*model.Report, error) {
	result, err := p.analysisFor(text)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		Source:     source,
		SourceKind: kind,
		AnalyzedAt: time.Now().UTC(),
		FetchMeta:  meta,
		Result:     *result,
	}

	// The brief is advisory only and runs after the score is final.
	if p.explainer != nil && p.explainer.IsEnabled() {
		brief, err := p.explainer.GenerateBrief(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM brief generation failed: %v\n", err)
		} else if brief != nil {
			report.LLM = brief
		}
	}

	return report, nil
}

// analysisFor runs the engine, consulting the cache first. Identical
// text always produces identical results, so the cache stores the
// result keyed by a digest of the text.
func (p *Pipeline) analysisFor(text string) (*model.AnalysisResult, error) {
	textKey := cache.TextKey(text)
	if p.cache != nil {
		if cached, found := p.cache.Get(textKey); found {
			var result model.AnalysisResult
			if err := json.Unmarshal(cached, &result); err == nil {
				return &result, nil
			}
		}
	}

	result, err := p.analyzer.Analyze(text)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if encoded, err := json.Marshal(result); err == nil {
			_ = p.cache.Set(textKey, encoded, p.config.Cache.TTL)
		}
	}

	return result, nil
}

// RenderReport writes the report to the requested outputs and prints a
// summary to stdout.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}
