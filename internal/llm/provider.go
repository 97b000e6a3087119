package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/prosewatch/prosewatch/internal/model"
)

// Provider generates reviewer briefs from analysis reports. The brief is
// commentary for a human reviewer; it never feeds back into the score.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Brief generates a short reviewer brief for the report.
	Brief(ctx context.Context, req BriefRequest) (*BriefResponse, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// BriefRequest is the input for brief generation.
type BriefRequest struct {
	// Report is the analysis report to explain.
	Report model.Report

	// Prompt overrides the default prompt when set.
	Prompt string

	// Model selects a provider-specific model.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// BriefResponse is the generated brief.
type BriefResponse struct {
	// Brief is the generated markdown text.
	Brief string

	// Model is the model that produced it.
	Model string

	// TokensUsed tracks token consumption.
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "ollama", or "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for hosted providers.
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama).
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int

	// Proxy settings.
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults with the provider disabled.
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildPrompt constructs the default brief prompt from a report.
func BuildPrompt(report model.Report) string {
	result := report.Result

	var b strings.Builder
	b.WriteString(`You are reviewing the output of an automated stylometric analysis. The analysis flags phrasing patterns common in machine-generated prose and scores the text from 0 (reads human) to 100 (reads machine-generated).

RULES:
1. Do not re-score the text or dispute the score. The score is final.
2. Explain, in plain language, what the flagged patterns are and why a
   careful human editor would look at them.
3. If few or no patterns were flagged, say the stylistic evidence is thin.
4. Do not claim the text IS machine-generated. Describe signals only.

`)

	fmt.Fprintf(&b, "Analysis:\n- Source: %s\n- Score: %.1f/100 (%s)\n- Words: %d, sentences: %d\n- Pattern matches: %d\n",
		report.Source, result.Score, result.Verdict(), result.WordCount, result.SentenceCount, result.TotalMatches())

	b.WriteString("\nFlagged patterns:\n")
	if len(result.Patterns) == 0 {
		b.WriteString("(none)\n")
	}
	for i, p := range result.Patterns {
		if i >= 15 {
			fmt.Fprintf(&b, "... and %d more\n", len(result.Patterns)-15)
			break
		}
		fmt.Fprintf(&b, "- [%s] %q x%d\n", p.Category, p.Phrase, p.Count)
	}

	f := result.Factors
	fmt.Fprintf(&b, "\nStyle factors (0-100, higher = more machine-like):\n- repetition: %.0f\n- formal tone: %.0f\n- sentence variety: %.0f\n- vocabulary: %.0f\n- structure: %.0f\n",
		f.Repetition, f.FormalTone, f.SentenceVariety, f.Vocabulary, f.Structure)

	b.WriteString("\nWrite a 3-5 sentence brief for the reviewer, in markdown.")

	return b.String()
}
