package model

import "time"

// Report wraps one engine result with caller-side metadata. The engine
// itself never stamps time or source: both belong to the pipeline.
type Report struct {
	Source     string     `json:"source"`               // file path, URL, or "stdin"
	SourceKind SourceKind `json:"source_kind"`          // text, file, url, stdin
	AnalyzedAt time.Time  `json:"analyzed_at"`          // attached by the caller
	FetchMeta  *FetchMeta `json:"fetch_meta,omitempty"` // present for URL sources only

	Result AnalysisResult `json:"result"`

	LLM *LLMBrief `json:"llm,omitempty"` // optional LLM brief (never affects the score)
}

// SourceKind classifies where the analyzed text came from.
type SourceKind string

const (
	SourceText  SourceKind = "text"
	SourceFile  SourceKind = "file"
	SourceURL   SourceKind = "url"
	SourceStdin SourceKind = "stdin"
)

// FetchMeta contains HTTP metadata from fetching a URL source.
type FetchMeta struct {
	StatusCode   int    `json:"status_code"`
	ContentType  string `json:"content_type,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
	ETag         string `json:"etag,omitempty"`
	FinalURL     string `json:"final_url,omitempty"`
}

// LLMBrief contains an optional LLM-written reviewer brief.
// CRITICAL: this never affects scoring and is clearly separated.
type LLMBrief struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"` // openai, ollama
	Model    string   `json:"model,omitempty"`
	BriefMD  string   `json:"brief_md,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
