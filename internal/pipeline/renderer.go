package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/prosewatch/prosewatch/internal/model"
)

// Renderer writes reports as JSON, Markdown, or a terminal summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON. Path "-" means stdout.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// RenderMarkdown writes the report as a Markdown document.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	md := r.markdown(report)

	if path == "-" {
		_, err := os.Stdout.WriteString(md)
		return err
	}

	return os.WriteFile(path, []byte(md), 0o644)
}

func (r *Renderer) markdown(report *model.Report) string {
	result := report.Result

	var b strings.Builder

	fmt.Fprintf(&b, "# Prose Analysis: %s\n\n", report.Source)
	fmt.Fprintf(&b, "**Score: %.1f/100** — %s\n\n", result.Score, result.Verdict())
	fmt.Fprintf(&b, "Analyzed %s", report.AnalyzedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, " · %d words · %d sentences\n\n", result.WordCount, result.SentenceCount)

	b.WriteString("## Factors\n\n")
	b.WriteString("| Factor | Score |\n|---|---|\n")
	fmt.Fprintf(&b, "| Repetition | %.0f |\n", result.Factors.Repetition)
	fmt.Fprintf(&b, "| Formal tone | %.0f |\n", result.Factors.FormalTone)
	fmt.Fprintf(&b, "| Sentence variety (low = uniform) | %.0f |\n", result.Factors.SentenceVariety)
	fmt.Fprintf(&b, "| Vocabulary | %.0f |\n", result.Factors.Vocabulary)
	fmt.Fprintf(&b, "| Structure | %.0f |\n\n", result.Factors.Structure)

	if len(result.Patterns) > 0 {
		fmt.Fprintf(&b, "## Flagged Patterns (%d)\n\n", result.TotalMatches())
		b.WriteString("| Category | Phrase | Count |\n|---|---|---|\n")
		for _, p := range result.Patterns {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", p.Category, p.Phrase, p.Count)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("## Flagged Patterns\n\nNone.\n\n")
	}

	if report.LLM != nil && report.LLM.Enabled && report.LLM.BriefMD != "" {
		fmt.Fprintf(&b, "## Reviewer Brief (%s, advisory only)\n\n%s\n\n", report.LLM.Provider, report.LLM.BriefMD)
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by prosewatch. Scores describe stylistic signals, not proof of authorship.\n")
	}

	return b.String()
}

// RenderSummary prints a terminal summary to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	result := report.Result

	fmt.Println()
	fmt.Printf("Source:   %s\n", report.Source)
	fmt.Printf("Score:    %.1f/100  (%s)\n", result.Score, result.Verdict())
	fmt.Printf("Text:     %d words, %d sentences\n", result.WordCount, result.SentenceCount)
	fmt.Println()

	fmt.Println("Factors (0-100, higher = more machine-like):")
	fmt.Printf("  repetition        %5.1f\n", result.Factors.Repetition)
	fmt.Printf("  formal tone       %5.1f\n", result.Factors.FormalTone)
	fmt.Printf("  sentence variety  %5.1f\n", result.Factors.SentenceVariety)
	fmt.Printf("  vocabulary        %5.1f\n", result.Factors.Vocabulary)
	fmt.Printf("  structure         %5.1f\n", result.Factors.Structure)
	fmt.Println()

	if len(result.Patterns) == 0 {
		fmt.Println("No flagged patterns.")
	} else {
		fmt.Printf("Flagged patterns (%d occurrences):\n", result.TotalMatches())
		for _, category := range categoryOrder(result.Patterns) {
			fmt.Printf("  %s:\n", category)
			for _, p := range result.Patterns {
				if p.Category == category {
					fmt.Printf("    %q x%d\n", p.Phrase, p.Count)
				}
			}
		}
	}

	if report.LLM != nil {
		fmt.Println()
		if report.LLM.Enabled && report.LLM.BriefMD != "" {
			fmt.Printf("Reviewer brief (%s, advisory only):\n%s\n", report.LLM.Provider, report.LLM.BriefMD)
		}
		for _, warning := range report.LLM.Warnings {
			fmt.Printf("  note: %s\n", warning)
		}
	}
}

// categoryOrder lists the categories present, keeping first-seen order.
func categoryOrder(patterns []model.PatternMatch) []model.PatternCategory {
	seen := make(map[model.PatternCategory]bool)
	var order []model.PatternCategory
	for _, p := range patterns {
		if !seen[p.Category] {
			seen[p.Category] = true
			order = append(order, p.Category)
		}
	}
	return order
}

// SummaryLine is the one-line form used by batch output, sortable by
// score descending.
func SummaryLine(report *model.Report) string {
	return fmt.Sprintf("%6.1f  %-22s  %s", report.Result.Score, report.Result.Verdict(), report.Source)
}

// SortByScore orders reports by score, highest first.
func SortByScore(reports []*model.Report) {
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Result.Score > reports[j].Result.Score
	})
}
