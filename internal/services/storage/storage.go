package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const audioContentType = "audio/mpeg"

// Config configures the audio store
type Config struct {
	Bucket string
	Region string
	// KeyPrefix is prepended to object keys, e.g. "summaries"
	KeyPrefix string
	// PublicBaseURL overrides the derived public URL base when the bucket
	// sits behind a CDN or S3-compatible provider
	PublicBaseURL string
	// UsePathStyle forces path-style addressing for S3-compatible providers
	UsePathStyle bool
}

// objectPutter is the slice of the S3 client the store needs, kept narrow
// so tests can stub it
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store persists synthesized summary audio to object storage
type Store struct {
	client objectPutter
	cfg    Config
	now    func() time.Time
}

// New creates an audio store using the default AWS configuration chain
func New(ctx context.Context, cfg Config) (*Store, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Store{client: client, cfg: cfg, now: time.Now}, nil
}

// SaveSummaryAudio uploads MP3 bytes under a time-based collision-resistant
// key and returns the object's public URL
func (s *Store) SaveSummaryAudio(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("no audio to store")
	}

	key := s.summaryKey()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(audio),
		ContentType: aws.String(audioContentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading summary audio: %w", err)
	}

	url := s.publicURL(key)
	log.Printf("[DEBUG] Stored %d bytes of summary audio at %s", len(audio), url)

	return url, nil
}

// summaryKey builds a millisecond-timestamped object key
func (s *Store) summaryKey() string {
	name := fmt.Sprintf("summary-%d.mp3", s.now().UnixMilli())
	if s.cfg.KeyPrefix == "" {
		return name
	}
	return strings.TrimSuffix(s.cfg.KeyPrefix, "/") + "/" + name
}

func (s *Store) publicURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
