package s3

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"tailor-backend/internal/shared/storage/object"
	"tailor-backend/internal/shared/util"
)

// Store implements object.Uploader using Amazon S3.
type Store struct {
	client        *s3.Client
	bucket        string
	prefix        string
	region        string
	publicBaseURL string
}

// New creates a new S3-backed uploader. publicBaseURL overrides the default
// virtual-hosted object URL, for buckets fronted by a CDN.
func New(ctx context.Context, region, bucket, prefix, publicBaseURL string) (object.Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Store{
		client:        s3.NewFromConfig(cfg),
		bucket:        bucket,
		prefix:        strings.Trim(strings.TrimSpace(prefix), "/"),
		region:        region,
		publicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
	}, nil
}

// Upload streams a local file to the bucket and returns its public URL.
func (s *Store) Upload(ctx context.Context, localPath string, destName string, contentType string) (string, error) {
	sanitized, err := util.SanitizeFileName(destName)
	if err != nil {
		return "", fmt.Errorf("sanitize dest name: %w", err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	key := sanitized
	if s.prefix != "" {
		key = s.prefix + "/" + sanitized
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, key, err)
	}

	return s.publicURL(key), nil
}

func (s *Store) publicURL(key string) string {
	escaped := url.PathEscape(key)
	// PathEscape encodes "/" inside prefixes; undo that for key separators.
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}

var _ object.Uploader = (*Store)(nil)
