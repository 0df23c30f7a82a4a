package metadata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const episodeURL = "https://open.spotify.com/episode/4rOoJ6Egrf8K2IrywzwOMk"

func oembedServer(t *testing.T, title, thumbnail string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("url"))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"title":         title,
			"thumbnail_url": thumbnail,
		})
	}))
}

func TestLookup_InvalidURL(t *testing.T) {
	svc := NewService(Config{})

	_, err := svc.Lookup(context.Background(), "https://example.com/watch?v=abc")
	assert.ErrorIs(t, err, ErrInvalidEpisodeURL)
}

func TestLookup_OEmbedOnly(t *testing.T) {
	oembed := oembedServer(t, "The Big Episode • Great Show", "https://i.scdn.co/thumb.jpg")
	defer oembed.Close()

	svc := NewService(Config{
		OEmbedBaseURL: oembed.URL,
		Timeout:       5 * time.Second,
	})

	meta, err := svc.Lookup(context.Background(), episodeURL)
	require.NoError(t, err)

	assert.Equal(t, "The Big Episode", meta.Title)
	assert.Equal(t, "Great Show", meta.ShowName)
	assert.Equal(t, 3600, meta.Duration) // default without enrichment
	assert.Equal(t, "https://i.scdn.co/thumb.jpg", meta.ThumbnailURL)
	assert.Empty(t, meta.AudioURL)
}

func TestLookup_OEmbedError(t *testing.T) {
	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer oembed.Close()

	svc := NewService(Config{OEmbedBaseURL: oembed.URL, Timeout: 5 * time.Second})

	_, err := svc.Lookup(context.Background(), episodeURL)
	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestLookup_SearchEnrichment(t *testing.T) {
	oembed := oembedServer(t, "The Big Episode • Great Show", "thumb")
	defer oembed.Close()

	audioCDN := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.Header().Set("Content-Length", "52428800")
	}))
	defer audioCDN.Close()

	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-ListenAPI-Key"))
		assert.Equal(t, "The Big Episode Great Show", r.URL.Query().Get("q"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"title_original":       "Some Other Episode",
					"audio":                "https://cdn.example.com/other.mp3",
					"audio_length_sec":     100,
					"podcast":              map[string]any{"title_original": "Other Show"},
				},
				{
					"title_original":       "The Big Episode",
					"description_original": "A very big episode.",
					"audio":                audioCDN.URL + "/big.mp3",
					"audio_length_sec":     2725,
					"thumbnail":            "https://cdn.example.com/better-thumbnail.jpg",
					"pub_date_ms":          int64(1700000000000),
					"podcast":              map[string]any{"title_original": "Great Show"},
				},
			},
		})
	}))
	defer search.Close()

	svc := NewService(Config{
		OEmbedBaseURL:     oembed.URL,
		SearchBaseURL:     search.URL,
		SearchAPIKey:      "test-key",
		Timeout:           5 * time.Second,
		RequestsPerMinute: 600,
	})

	meta, err := svc.Lookup(context.Background(), episodeURL)
	require.NoError(t, err)

	// The exact title match wins over the first result
	assert.Equal(t, "The Big Episode", meta.Title)
	assert.Equal(t, "Great Show", meta.ShowName)
	assert.Equal(t, 2725, meta.Duration)
	assert.Equal(t, "A very big episode.", meta.Description)
	assert.Equal(t, audioCDN.URL+"/big.mp3", meta.AudioURL)
	assert.Equal(t, int64(52428800), meta.AudioFileSize)
	assert.Equal(t, "https://cdn.example.com/better-thumbnail.jpg", meta.ThumbnailURL)
	require.NotNil(t, meta.PublishDate)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), *meta.PublishDate)
}

func TestLookup_SearchFailureKeepsOEmbed(t *testing.T) {
	oembed := oembedServer(t, "The Big Episode • Great Show", "thumb")
	defer oembed.Close()

	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer search.Close()

	svc := NewService(Config{
		OEmbedBaseURL:     oembed.URL,
		SearchBaseURL:     search.URL,
		SearchAPIKey:      "test-key",
		Timeout:           5 * time.Second,
		RequestsPerMinute: 600,
	})

	meta, err := svc.Lookup(context.Background(), episodeURL)
	require.NoError(t, err)
	assert.Equal(t, "The Big Episode", meta.Title)
	assert.Equal(t, 3600, meta.Duration)
}

func TestBestMatch(t *testing.T) {
	results := []searchResult{
		{TitleOriginal: "First Result"},
		{TitleOriginal: "my episode extended cut", Podcast: searchPodcast{TitleOriginal: "My Show"}},
		{TitleOriginal: "My Episode", Podcast: searchPodcast{TitleOriginal: "My Show Network"}},
	}

	t.Run("exact title with compatible show", func(t *testing.T) {
		match := bestMatch(results, "my episode", "My Show")
		assert.Equal(t, "My Episode", match.TitleOriginal)
	})

	t.Run("substring fallback", func(t *testing.T) {
		partial := results[:2]
		match := bestMatch(partial, "my episode", "My Show")
		assert.Equal(t, "my episode extended cut", match.TitleOriginal)
	})

	t.Run("first result fallback", func(t *testing.T) {
		match := bestMatch(results, "completely different", "Nope")
		assert.Equal(t, "First Result", match.TitleOriginal)
	})
}
