package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/prosewatch/prosewatch/internal/model"
)

// Runner analyzes a single input. The pipeline implements it.
type Runner interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Report, error)
	AnalyzeURL(ctx context.Context, url string) (*model.Report, error)
}

// AnalyzeJob analyzes one input, which is either a URL or a local path.
type AnalyzeJob struct {
	Input  string
	Runner Runner
}

// Execute runs the analysis for the job's input.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	var (
		report *model.Report
		err    error
	)
	if IsURL(j.Input) {
		report, err = j.Runner.AnalyzeURL(ctx, j.Input)
	} else {
		report, err = j.Runner.AnalyzeFile(ctx, j.Input)
	}
	return &AnalyzeResult{
		Input:  j.Input,
		Report: report,
		Error:  err,
	}
}

// AnalyzeResult is the outcome of one batch input.
type AnalyzeResult struct {
	Input  string
	Report *model.Report
	Error  error
}

// GetError returns the error from the analysis, if any.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple inputs concurrently.
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given concurrency.
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// Process analyzes the given inputs and returns one result per input.
// Result order follows completion, not submission.
func (b *BatchProcessor) Process(ctx context.Context, inputs []string) []*AnalyzeResult {
	if len(inputs) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, input := range inputs {
		pool.Submit(&AnalyzeJob{
			Input:  input,
			Runner: b.runner,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessFile reads inputs from a list file and analyzes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*AnalyzeResult, error) {
	inputs, err := ReadInputList(listPath)
	if err != nil {
		return nil, fmt.Errorf("read input list: %w", err)
	}

	return b.Process(ctx, inputs), nil
}

// ReadInputList reads inputs from a file, one per line. Blank lines and
// lines starting with # are skipped; duplicates keep first occurrence.
func ReadInputList(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}

// IsURL reports whether the input should be fetched rather than read
// from disk.
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}
