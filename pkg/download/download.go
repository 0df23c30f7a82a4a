package download

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Options configures the download behavior
type Options struct {
	MaxSize      int64         // Maximum file size in bytes (0 = no limit)
	Timeout      time.Duration // Download timeout
	ProgressFunc ProgressFunc  // Optional progress callback
	UserAgent    string        // User agent string
	RequireAudio bool          // Validate content-type is audio
}

// ProgressFunc is called during download to report progress
type ProgressFunc func(downloaded, total int64)

// DefaultOptions returns default download options
func DefaultOptions() Options {
	return Options{
		MaxSize:      1024 * 1024 * 1024,
		Timeout:      5 * time.Minute,
		UserAgent:    "PodBriefAPI/1.0",
		RequireAudio: true,
	}
}

// Result contains a downloaded audio file held in memory. Episode audio is
// passed straight to the transcription provider, so nothing touches disk.
type Result struct {
	Data        []byte
	ContentType string
	Size        int64
	Filename    string
}

// Downloader fetches podcast audio over HTTP
type Downloader struct {
	client  *http.Client
	options Options
}

// NewDownloader creates a new downloader with the given options
func NewDownloader(options Options) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: options.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				DisableCompression:  true, // Don't compress audio
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		options: options,
	}
}

// Fetch downloads a URL into memory
func (d *Downloader) Fetch(ctx context.Context, url string) (*Result, error) {
	log.Printf("[DEBUG] Starting download from %s", url)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", d.options.UserAgent)
	req.Header.Set("Accept", "audio/*,*/*")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if d.options.RequireAudio && !isAudioContentType(contentType) {
		return nil, fmt.Errorf("invalid content type: %s", contentType)
	}

	contentLength := resp.ContentLength
	if d.options.MaxSize > 0 && contentLength > d.options.MaxSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", contentLength, d.options.MaxSize)
	}

	data, err := d.readAll(resp.Body, contentLength)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}

	log.Printf("[DEBUG] Downloaded %d bytes from %s", len(data), url)

	return &Result{
		Data:        data,
		ContentType: contentType,
		Size:        int64(len(data)),
		Filename:    FilenameFromURL(url),
	}, nil
}

// ProbeSize issues a HEAD request and returns the reported audio size in
// bytes. Returns 0 when the server does not advertise a length.
func (d *Downloader) ProbeSize(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, "HEAD", url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", d.options.UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to probe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if resp.ContentLength < 0 {
		return 0, nil
	}
	return resp.ContentLength, nil
}

// readAll buffers the response body with optional progress and size cap
func (d *Downloader) readAll(src io.Reader, totalSize int64) ([]byte, error) {
	reader := src
	if d.options.ProgressFunc != nil && totalSize > 0 {
		reader = &progressReader{
			reader:   src,
			total:    totalSize,
			callback: d.options.ProgressFunc,
		}
	}

	// Cap the read one byte past the limit so oversized bodies whose
	// Content-Length was missing still get rejected.
	if d.options.MaxSize > 0 {
		reader = &io.LimitedReader{
			R: reader,
			N: d.options.MaxSize + 1,
		}
	}

	var buf bytes.Buffer
	if totalSize > 0 {
		buf.Grow(int(totalSize))
	}
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, err
	}

	if d.options.MaxSize > 0 && int64(buf.Len()) > d.options.MaxSize {
		return nil, fmt.Errorf("file too large: exceeds %d bytes", d.options.MaxSize)
	}

	return buf.Bytes(), nil
}

// FilenameFromURL derives a plausible audio filename from a URL. Providers
// use the extension to pick a decoder, so a real one matters.
func FilenameFromURL(url string) string {
	name := url
	if idx := strings.Index(name, "?"); idx > 0 {
		name = name[:idx]
	}
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" || !hasAudioExtension(name) {
		return "audio.mp3"
	}
	return name
}

// isAudioContentType checks if content type is audio
func isAudioContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.HasPrefix(contentType, "audio/") ||
		contentType == "application/octet-stream" // Some servers use this for audio
}

// hasAudioExtension checks if the filename carries a known audio extension
func hasAudioExtension(name string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return false
	}
	ext := strings.ToLower(name[idx+1:])
	validExts := []string{"mp3", "m4a", "aac", "ogg", "wav", "flac", "opus", "webm"}
	for _, valid := range validExts {
		if ext == valid {
			return true
		}
	}
	return false
}

// progressReader wraps a reader to report progress
type progressReader struct {
	reader     io.Reader
	total      int64
	downloaded int64
	callback   ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.downloaded += int64(n)
		if pr.callback != nil {
			pr.callback(pr.downloaded, pr.total)
		}
	}
	return n, err
}
