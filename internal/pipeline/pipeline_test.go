package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prosewatch/prosewatch/internal/model"
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.HTTP.RespectRobots = false
	cfg.RateLimit.RequestsPerSecond = 0
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = ""
	return cfg
}

const aiSoundingText = `Many believe the festival stands as a testament to the region's enduring heritage. Experts argue that its impact reflects broader cultural trends, ensuring continued relevance. The event plays a vital role in local life, fostering community pride and shaping a better future for generations.`

func TestPipeline_AnalyzeText(t *testing.T) {
	p := NewPipeline(testConfig())

	report, err := p.AnalyzeText(context.Background(), aiSoundingText)
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if report.SourceKind != model.SourceText {
		t.Errorf("expected source kind text, got %s", report.SourceKind)
	}
	if report.AnalyzedAt.IsZero() {
		t.Error("expected AnalyzedAt to be set")
	}
	if report.FetchMeta != nil {
		t.Error("expected no fetch meta for text input")
	}
	if report.Result.Score <= 0 {
		t.Errorf("expected positive score for AI-sounding text, got %.1f", report.Result.Score)
	}
	if len(report.Result.Patterns) == 0 {
		t.Error("expected pattern matches")
	}
	if report.LLM != nil {
		t.Error("expected no LLM brief when provider is unset")
	}
}

func TestPipeline_AnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "essay.txt")
	if err := os.WriteFile(path, []byte(aiSoundingText), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewPipeline(testConfig())

	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}

	if report.SourceKind != model.SourceFile {
		t.Errorf("expected source kind file, got %s", report.SourceKind)
	}
	if report.Source != path {
		t.Errorf("expected source %s, got %s", path, report.Source)
	}

	if _, err := p.AnalyzeFile(context.Background(), filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPipeline_AnalyzeStdin(t *testing.T) {
	p := NewPipeline(testConfig())

	report, err := p.AnalyzeStdin(context.Background(), strings.NewReader(aiSoundingText))
	if err != nil {
		t.Fatalf("AnalyzeStdin failed: %v", err)
	}

	if report.SourceKind != model.SourceStdin {
		t.Errorf("expected source kind stdin, got %s", report.SourceKind)
	}
	if report.Source != "stdin" {
		t.Errorf("expected source stdin, got %s", report.Source)
	}
}

func TestPipeline_AnalyzeURL(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprintf(w, "<html><body><article><p>%s</p></article></body></html>", aiSoundingText)
	}))
	defer server.Close()

	p := NewPipeline(testConfig())

	report, err := p.AnalyzeURL(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("AnalyzeURL failed: %v", err)
	}

	if report.SourceKind != model.SourceURL {
		t.Errorf("expected source kind url, got %s", report.SourceKind)
	}
	if report.FetchMeta == nil {
		t.Fatal("expected fetch meta for URL input")
	}
	if report.FetchMeta.StatusCode != 200 {
		t.Errorf("expected status 200, got %d", report.FetchMeta.StatusCode)
	}
	if len(report.Result.Patterns) == 0 {
		t.Error("expected pattern matches from page prose")
	}

	// Second run should come from the page cache.
	if _, err := p.AnalyzeURL(context.Background(), server.URL); err != nil {
		t.Fatalf("cached AnalyzeURL failed: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 fetch, got %d", hits.Load())
	}
}

func TestPipeline_CacheDisabled(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = fmt.Fprint(w, "<html><body><p>Plain enough text here.</p></body></html>")
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Cache.Enabled = false
	p := NewPipeline(cfg)

	for i := 0; i < 2; i++ {
		if _, err := p.AnalyzeURL(context.Background(), server.URL); err != nil {
			t.Fatalf("AnalyzeURL failed: %v", err)
		}
	}
	if hits.Load() != 2 {
		t.Errorf("expected 2 fetches without cache, got %d", hits.Load())
	}
}

func TestPipeline_TextResultCached(t *testing.T) {
	p := NewPipeline(testConfig())

	first, err := p.AnalyzeText(context.Background(), aiSoundingText)
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}
	second, err := p.AnalyzeText(context.Background(), aiSoundingText)
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if first.Result.Score != second.Result.Score {
		t.Errorf("expected identical scores, got %.1f and %.1f", first.Result.Score, second.Result.Score)
	}
	if len(first.Result.Patterns) != len(second.Result.Patterns) {
		t.Error("expected identical pattern lists")
	}
}

func TestRenderer_Markdown(t *testing.T) {
	p := NewPipeline(testConfig())

	report, err := p.AnalyzeText(context.Background(), aiSoundingText)
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	md := NewRenderer(true).markdown(report)

	for _, want := range []string{"# Prose Analysis", "## Factors", "## Flagged Patterns", "Sentence variety (low = uniform)"} {
		if !strings.Contains(md, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}
	if !strings.Contains(md, "Generated by prosewatch") {
		t.Error("expected footer")
	}

	mdNoFooter := NewRenderer(false).markdown(report)
	if strings.Contains(mdNoFooter, "Generated by prosewatch") {
		t.Error("expected no footer")
	}
}

func TestRenderer_JSONFile(t *testing.T) {
	p := NewPipeline(testConfig())

	report, err := p.AnalyzeText(context.Background(), aiSoundingText)
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := NewRenderer(true).RenderJSON(report, path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"score"`) {
		t.Error("expected JSON to contain score field")
	}
}

func TestSortByScore(t *testing.T) {
	reports := []*model.Report{
		{Source: "low", Result: model.AnalysisResult{Score: 10}},
		{Source: "high", Result: model.AnalysisResult{Score: 90}},
		{Source: "mid", Result: model.AnalysisResult{Score: 50}},
	}

	SortByScore(reports)

	if reports[0].Source != "high" || reports[2].Source != "low" {
		t.Errorf("unexpected order: %s, %s, %s", reports[0].Source, reports[1].Source, reports[2].Source)
	}
}
