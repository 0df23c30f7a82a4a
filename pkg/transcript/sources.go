package transcript

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Source is one strategy for finding an existing transcript for an episode,
// consulted before falling back to speech-to-text. Lookup returns the
// transcript text and true on a hit; a miss is (_, false, nil). Errors are
// treated as misses by the chain.
type Source interface {
	Name() string
	Lookup(ctx context.Context, episodeURL string) (string, bool, error)
}

// Chain tries an ordered list of transcript sources and returns the first
// hit. An empty chain always misses, which keeps transcript lookup strictly
// optional.
type Chain struct {
	sources []Source
}

// NewChain creates a lookup chain over the given sources, in order.
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

// Lookup consults each source in order and returns the first transcript
// found along with the name of the source that produced it.
func (c *Chain) Lookup(ctx context.Context, episodeURL string) (text, source string, ok bool) {
	for _, s := range c.sources {
		t, hit, err := s.Lookup(ctx, episodeURL)
		if err != nil {
			log.Printf("[WARN] Transcript source %s failed for %s: %v", s.Name(), episodeURL, err)
			continue
		}
		if hit && strings.TrimSpace(t) != "" {
			return t, s.Name(), true
		}
	}
	return "", "", false
}

// FetchOptions configures the URL transcript source.
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
	MaxSize   int64
}

// DefaultFetchOptions returns default fetch options.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		Timeout:   30 * time.Second,
		UserAgent: "PodBriefAPI/1.0",
		MaxSize:   10 * 1024 * 1024,
	}
}

// URLSource fetches plain-text transcripts published at a known URL pattern,
// resolved per episode by the resolve function.
type URLSource struct {
	client  *http.Client
	options FetchOptions
	resolve func(episodeURL string) string
}

// NewURLSource creates a transcript source that downloads from the URL
// produced by resolve. A resolve returning "" is a miss.
func NewURLSource(options FetchOptions, resolve func(episodeURL string) string) *URLSource {
	return &URLSource{
		client: &http.Client{
			Timeout: options.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        5,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		options: options,
		resolve: resolve,
	}
}

// Name identifies this source in logs.
func (s *URLSource) Name() string { return "url" }

// Lookup downloads the transcript at the resolved URL.
func (s *URLSource) Lookup(ctx context.Context, episodeURL string) (string, bool, error) {
	target := s.resolve(episodeURL)
	if target == "" {
		return "", false, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return "", false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.options.UserAgent)
	req.Header.Set("Accept", "text/plain,text/vtt,*/*")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("fetching transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if resp.ContentLength > s.options.MaxSize {
		return "", false, fmt.Errorf("transcript too large: %d bytes (max %d)", resp.ContentLength, s.options.MaxSize)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.options.MaxSize))
	if err != nil {
		return "", false, fmt.Errorf("reading transcript: %w", err)
	}

	return string(body), true, nil
}
