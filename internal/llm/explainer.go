package llm

import (
	"context"
	"fmt"

	"github.com/prosewatch/prosewatch/internal/model"
)

// Explainer wraps a Provider and turns analysis reports into reviewer
// briefs. A nil provider disables it.
type Explainer struct {
	provider Provider
	config   Config
}

// NewExplainer creates an explainer from configuration.
func NewExplainer(config Config) (*Explainer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Explainer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured.
func (e *Explainer) IsEnabled() bool {
	return e.provider != nil
}

// ProviderName returns the configured provider name, or "".
func (e *Explainer) ProviderName() string {
	if e.provider == nil {
		return ""
	}
	return e.provider.Name()
}

// GenerateBrief produces a brief for the report. When the explainer is
// disabled it returns (nil, nil); when the provider is unreachable it
// returns a disabled brief with a warning instead of failing the run.
func (e *Explainer) GenerateBrief(ctx context.Context, report model.Report) (*model.LLMBrief, error) {
	if e.provider == nil {
		return nil, nil
	}

	if !e.provider.IsAvailable(ctx) {
		return &model.LLMBrief{
			Enabled:  false,
			Provider: e.provider.Name(),
			Warnings: []string{fmt.Sprintf("provider %s is not available", e.provider.Name())},
		}, nil
	}

	resp, err := e.provider.Brief(ctx, BriefRequest{
		Report:    report,
		Model:     e.config.Model,
		MaxTokens: e.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate brief: %w", err)
	}

	return &model.LLMBrief{
		Enabled:  true,
		Provider: e.provider.Name(),
		Model:    resp.Model,
		BriefMD:  resp.Brief,
		Warnings: []string{fmt.Sprintf("Tokens used: %d", resp.TokensUsed)},
	}, nil
}
