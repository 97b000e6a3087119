package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prosewatch/prosewatch/internal/model"
)

type mockProvider struct {
	name      string
	available bool
	response  *BriefResponse
	err       error
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Brief(ctx context.Context, req BriefRequest) (*BriefResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func sampleReport() model.Report {
	return model.Report{
		Source:     "essay.txt",
		SourceKind: model.SourceFile,
		Result: model.AnalysisResult{
			Score: 62.5,
			Patterns: []model.PatternMatch{
				{Category: model.CategoryVagueAttribution, Phrase: "many believe", Count: 2, Score: 30},
				{Category: model.CategoryWatchWord, Phrase: "ensuring", Count: 1, Score: 20},
			},
			WordCount:     180,
			SentenceCount: 9,
		},
	}
}

func TestNewExplainer_Disabled(t *testing.T) {
	explainer, err := NewExplainer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if explainer.IsEnabled() {
		t.Error("expected explainer to be disabled")
	}
	if explainer.ProviderName() != "" {
		t.Error("expected empty provider name when disabled")
	}

	brief, err := explainer.GenerateBrief(context.Background(), sampleReport())
	if err != nil {
		t.Errorf("expected no error when disabled, got %v", err)
	}
	if brief != nil {
		t.Error("expected nil brief when disabled")
	}
}

func TestNewExplainer_UnknownProvider(t *testing.T) {
	if _, err := NewExplainer(Config{Provider: "frontier-9000"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestExplainer_ProviderUnavailable(t *testing.T) {
	explainer := &Explainer{
		provider: &mockProvider{name: "test-provider", available: false},
	}

	brief, err := explainer.GenerateBrief(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if brief == nil {
		t.Fatal("expected brief object with warnings")
	}
	if brief.Enabled {
		t.Error("expected brief marked disabled")
	}

	found := false
	for _, warning := range brief.Warnings {
		if strings.Contains(warning, "not available") {
			found = true
		}
	}
	if !found {
		t.Error("expected warning about provider availability")
	}
}

func TestExplainer_GenerateBrief(t *testing.T) {
	explainer := &Explainer{
		provider: &mockProvider{
			name:      "test-provider",
			available: true,
			response: &BriefResponse{
				Brief:      "The flagged phrasing leans on vague attribution.",
				Model:      "test-model",
				TokensUsed: 150,
			},
		},
		config: Config{Model: "test-model"},
	}

	brief, err := explainer.GenerateBrief(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if brief == nil {
		t.Fatal("expected a brief")
	}

	if !brief.Enabled {
		t.Error("expected brief to be enabled")
	}
	if brief.Provider != "test-provider" {
		t.Errorf("expected provider test-provider, got %s", brief.Provider)
	}
	if brief.Model != "test-model" {
		t.Errorf("expected model test-model, got %s", brief.Model)
	}
	if brief.BriefMD != "The flagged phrasing leans on vague attribution." {
		t.Errorf("unexpected brief text: %s", brief.BriefMD)
	}

	foundTokens := false
	for _, warning := range brief.Warnings {
		if strings.Contains(warning, "Tokens used") {
			foundTokens = true
		}
	}
	if !foundTokens {
		t.Error("expected token usage note")
	}
}

func TestExplainer_ProviderError(t *testing.T) {
	explainer := &Explainer{
		provider: &mockProvider{
			name:      "test-provider",
			available: true,
			err:       errors.New("rate limited"),
		},
	}

	if _, err := explainer.GenerateBrief(context.Background(), sampleReport()); err == nil {
		t.Error("expected provider error to propagate")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleReport())

	for _, want := range []string{"62.5", "many believe", "ensuring", "essay.txt"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to mention %q", want)
		}
	}
	if !strings.Contains(prompt, "Do not re-score") {
		t.Error("expected prompt to forbid re-scoring")
	}
}

func TestBuildPrompt_NoPatterns(t *testing.T) {
	report := model.Report{
		Source: "clean.txt",
		Result: model.AnalysisResult{Patterns: []model.PatternMatch{}},
	}

	prompt := BuildPrompt(report)
	if !strings.Contains(prompt, "(none)") {
		t.Error("expected prompt to note the absence of patterns")
	}
}
