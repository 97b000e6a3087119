package pipeline

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prosewatch/prosewatch/internal/model"
	"github.com/prosewatch/prosewatch/internal/util"
	"github.com/prosewatch/prosewatch/internal/worker"
)

// ErrRobotsDisallowed is returned when robots.txt forbids the fetch.
var ErrRobotsDisallowed = errors.New("fetch disallowed by robots.txt")

// fetchSleepFunc is replaceable for tests.
var fetchSleepFunc = time.Sleep

const fetchMaxAttempts = 3

// Fetcher retrieves pages for URL sources. It honors robots.txt and a
// per-host rate limit when configured with them.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil disables the robots gate
	limiter    *worker.Limiter     // nil disables rate limiting
}

// NewFetcher builds a fetcher from the HTTP and rate-limit config.
func NewFetcher(cfg model.HTTPConfig, rl model.RateLimitConfig) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	var limiter *worker.Limiter
	if rl.RequestsPerSecond > 0 {
		limiter = worker.NewLimiter(rl.RequestsPerSecond, rl.Burst)
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    robots,
		limiter:   limiter,
	}
}

// FetchResult contains the fetched page and its HTTP metadata.
type FetchResult struct {
	HTML string
	Meta model.FetchMeta
}

// Fetch retrieves the page at rawURL, retrying transient failures. The
// robots gate and per-host rate limit apply to every attempt.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchMaxAttempts; attempt++ {
		result, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryableFetchError(err) {
			return nil, err
		}
		if attempt < fetchMaxAttempts {
			fetchSleepFunc(time.Duration(attempt) * time.Second)
		}
	}
	return nil, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (*FetchResult, error) {
	crawlDelay := time.Duration(0)
	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrRobotsDisallowed, rawURL)
		}
		crawlDelay = delay
	}

	if f.limiter != nil {
		if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	meta := model.FetchMeta{
		StatusCode:   resp.StatusCode,
		ContentType:  resp.Header.Get("Content-Type"),
		LastModified: resp.Header.Get("Last-Modified"),
		ETag:         resp.Header.Get("ETag"),
		FinalURL:     resp.Request.URL.String(),
	}

	return &FetchResult{
		HTML: string(body),
		Meta: meta,
	}, nil
}

// isRetryableFetchError reports whether a fetch failure is worth another
// attempt: transport errors and throttling/server statuses are, client
// errors and robots denials are not.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRobotsDisallowed) {
		return false
	}

	msg := err.Error()
	for _, status := range []string{"429", "500", "502", "503", "504"} {
		if strings.Contains(msg, "unexpected status: "+status) {
			return true
		}
	}
	if strings.Contains(msg, "unexpected status:") {
		return false
	}
	return strings.HasPrefix(msg, "fetch:")
}
