package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Service errors
var (
	ErrInvalidEpisodeURL = errors.New("invalid episode URL")
	ErrLookupFailed      = errors.New("episode metadata lookup failed")
)

// defaultDuration is assumed when no provider reports a real one
const defaultDuration = 3600

// Config configures the metadata lookup providers
type Config struct {
	OEmbedBaseURL     string
	SearchBaseURL     string
	SearchAPIKey      string // empty disables paid search enrichment
	Timeout           time.Duration
	RequestsPerMinute int // paid search throttle
}

type service struct {
	client        *http.Client
	oembedBaseURL string
	searchBaseURL string
	searchAPIKey  string
	limiter       *rate.Limiter
}

// NewService creates a metadata lookup service
func NewService(cfg Config) Service {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}

	return &service{
		client:        &http.Client{Timeout: cfg.Timeout},
		oembedBaseURL: cfg.OEmbedBaseURL,
		searchBaseURL: cfg.SearchBaseURL,
		searchAPIKey:  cfg.SearchAPIKey,
		limiter:       rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm),
	}
}

// oembedResponse is the subset of the Spotify oEmbed payload we read
type oembedResponse struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// searchResponse is the subset of the episode-search payload we read
type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	TitleOriginal       string        `json:"title_original"`
	DescriptionOriginal string        `json:"description_original"`
	Audio               string        `json:"audio"`
	AudioLengthSec      int           `json:"audio_length_sec"`
	Thumbnail           string        `json:"thumbnail"`
	PubDateMs           int64         `json:"pub_date_ms"`
	Podcast             searchPodcast `json:"podcast"`
}

type searchPodcast struct {
	TitleOriginal string `json:"title_original"`
}

func (s *service) Lookup(ctx context.Context, episodeURL string) (*EpisodeMetadata, error) {
	if !strings.Contains(episodeURL, "spotify.com/episode/") {
		return nil, ErrInvalidEpisodeURL
	}

	meta, err := s.lookupOEmbed(ctx, episodeURL)
	if err != nil {
		return nil, err
	}

	if s.searchAPIKey == "" {
		log.Printf("[DEBUG] Search API key not configured, returning oEmbed metadata only")
		return meta, nil
	}

	// Paid enrichment is best-effort: oEmbed data stands on failure
	if err := s.enrichFromSearch(ctx, meta); err != nil {
		log.Printf("[WARN] Episode search enrichment failed: %v", err)
	}

	return meta, nil
}

func (s *service) lookupOEmbed(ctx context.Context, episodeURL string) (*EpisodeMetadata, error) {
	reqURL := fmt.Sprintf("%s?url=%s", s.oembedBaseURL, url.QueryEscape(episodeURL))

	var payload oembedResponse
	if err := s.getJSON(ctx, reqURL, nil, &payload); err != nil {
		return nil, fmt.Errorf("%w: oEmbed: %v", ErrLookupFailed, err)
	}

	title := payload.Title
	if title == "" {
		title = "Unknown Episode"
	}

	// Spotify formats oEmbed titles as "Episode • Show"
	showName := ""
	if idx := strings.Index(title, " • "); idx >= 0 {
		showName = title[idx+len(" • "):]
		title = title[:idx]
	}

	return &EpisodeMetadata{
		Title:        title,
		ShowName:     showName,
		Duration:     defaultDuration,
		ThumbnailURL: payload.ThumbnailURL,
	}, nil
}

func (s *service) enrichFromSearch(ctx context.Context, meta *EpisodeMetadata) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	query := meta.Title
	if meta.ShowName != "" {
		query = meta.Title + " " + meta.ShowName
	}

	reqURL := fmt.Sprintf("%s/search?q=%s&type=episode", s.searchBaseURL, url.QueryEscape(query))

	var payload searchResponse
	headers := map[string]string{"X-ListenAPI-Key": s.searchAPIKey}
	if err := s.getJSON(ctx, reqURL, headers, &payload); err != nil {
		return err
	}

	if len(payload.Results) == 0 {
		log.Printf("[DEBUG] No search results for %q", query)
		return nil
	}

	match := bestMatch(payload.Results, meta.Title, meta.ShowName)

	if match.AudioLengthSec > 0 {
		meta.Duration = match.AudioLengthSec
	}
	if match.Audio != "" {
		meta.AudioURL = match.Audio
	}
	if match.Podcast.TitleOriginal != "" {
		meta.ShowName = match.Podcast.TitleOriginal
	}
	if match.DescriptionOriginal != "" {
		meta.Description = match.DescriptionOriginal
	}
	if match.PubDateMs > 0 {
		published := time.UnixMilli(match.PubDateMs).UTC()
		meta.PublishDate = &published
	}
	if len(match.Thumbnail) > len(meta.ThumbnailURL) {
		meta.ThumbnailURL = match.Thumbnail
	}

	if meta.AudioURL != "" {
		if size, err := s.probeAudioSize(ctx, meta.AudioURL); err != nil {
			log.Printf("[WARN] Failed to probe audio file size: %v", err)
		} else {
			meta.AudioFileSize = size
		}
	}

	return nil
}

// bestMatch picks the search result that most plausibly is the episode:
// exact title with compatible show, then title containment with compatible
// show, then the first result.
func bestMatch(results []searchResult, title, showName string) searchResult {
	titleLower := normalize(title)
	showLower := normalize(showName)

	for _, r := range results {
		rTitle := normalize(r.TitleOriginal)
		rShow := normalize(r.Podcast.TitleOriginal)
		if rTitle == titleLower && (showLower == "" || strings.Contains(rShow, showLower) || strings.Contains(showLower, rShow)) {
			return r
		}
	}

	if showLower != "" {
		for _, r := range results {
			rTitle := normalize(r.TitleOriginal)
			rShow := normalize(r.Podcast.TitleOriginal)
			if strings.Contains(rTitle, titleLower) && (strings.Contains(rShow, showLower) || strings.Contains(showLower, rShow)) {
				return r
			}
		}
	}

	return results[0]
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *service) probeAudioSize(ctx context.Context, audioURL string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, audioURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.ContentLength < 0 {
		return 0, nil
	}
	return resp.ContentLength, nil
}

func (s *service) getJSON(ctx context.Context, reqURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
