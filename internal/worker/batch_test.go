package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prosewatch/prosewatch/internal/model"
)

type mockRunner struct {
	shouldError bool
}

func (m *mockRunner) AnalyzeURL(ctx context.Context, url string) (*model.Report, error) {
	time.Sleep(10 * time.Millisecond)
	if m.shouldError {
		return nil, errors.New("analyze error")
	}
	return &model.Report{
		Source:     url,
		SourceKind: model.SourceURL,
	}, nil
}

func (m *mockRunner) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	time.Sleep(10 * time.Millisecond)
	if m.shouldError {
		return nil, errors.New("analyze error")
	}
	return &model.Report{
		Source:     path,
		SourceKind: model.SourceFile,
	}, nil
}

func TestBatchProcessor_Process(t *testing.T) {
	processor := NewBatchProcessor(&mockRunner{}, 2)

	inputs := []string{"http://example.com/a", "http://example.com/b", "essay.txt"}
	results := processor.Process(context.Background(), inputs)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	kinds := make(map[model.SourceKind]int)
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Input, res.Error)
			continue
		}
		if res.Report == nil {
			t.Errorf("expected report for %s", res.Input)
			continue
		}
		kinds[res.Report.SourceKind]++
	}

	if kinds[model.SourceURL] != 2 {
		t.Errorf("expected 2 URL inputs, got %d", kinds[model.SourceURL])
	}
	if kinds[model.SourceFile] != 1 {
		t.Errorf("expected 1 file input, got %d", kinds[model.SourceFile])
	}
}

func TestBatchProcessor_ProcessErrors(t *testing.T) {
	processor := NewBatchProcessor(&mockRunner{shouldError: true}, 2)

	results := processor.Process(context.Background(), []string{"http://example.com", "draft.md"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error == nil {
			t.Errorf("expected error for %s", res.Input)
		}
		if res.Report != nil {
			t.Errorf("expected nil report for failed input %s", res.Input)
		}
	}
}

func TestBatchProcessor_ProcessEmpty(t *testing.T) {
	processor := NewBatchProcessor(&mockRunner{}, 2)

	results := processor.Process(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "inputs.txt")

	content := `# inputs
http://example.com/one

essay.txt
http://example.com/one
`
	if err := os.WriteFile(listPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(&mockRunner{}, 2)
	results, err := processor.ProcessFile(context.Background(), listPath)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	// Comment, blank line and duplicate are skipped.
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestReadInputList(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "inputs.txt")

	content := `http://a.example
# skip me
http://b.example
http://a.example

notes/review.txt
`
	if err := os.WriteFile(listPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	inputs, err := ReadInputList(listPath)
	if err != nil {
		t.Fatalf("ReadInputList failed: %v", err)
	}

	want := []string{"http://a.example", "http://b.example", "notes/review.txt"}
	if len(inputs) != len(want) {
		t.Fatalf("expected %d inputs, got %d: %v", len(want), len(inputs), inputs)
	}
	for i, w := range want {
		if inputs[i] != w {
			t.Errorf("input %d: expected %q, got %q", i, w, inputs[i])
		}
	}

	if _, err := ReadInputList(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestIsURL(t *testing.T) {
	cases := map[string]bool{
		"http://example.com":  true,
		"https://example.com": true,
		"essay.txt":           false,
		"/tmp/draft.md":       false,
		"ftp://example.com":   false,
	}
	for input, want := range cases {
		if got := IsURL(input); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", input, got, want)
		}
	}
}
