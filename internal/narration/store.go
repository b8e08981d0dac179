package narration

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StoreOptions configures the narration asset bucket. Endpoint is optional
// and points at any S3-compatible store; CustomDomain overrides the public
// URL host.
type StoreOptions struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	CustomDomain    string
}

// Store keeps one narration asset per calendar date, content-addressed as
// <date>.mp3. Uploads overwrite, so regenerating a day's audio is safe.
type Store struct {
	client       *s3.Client
	bucket       string
	region       string
	endpoint     string
	customDomain string
}

func NewStore(opts StoreOptions) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" || strings.TrimSpace(opts.Region) == "" {
		return nil, fmt.Errorf("incomplete audio store config: bucket and region are required")
	}

	s3opts := s3.Options{
		Region: opts.Region,
	}
	if opts.AccessKeyID != "" {
		s3opts.Credentials = credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")
	}
	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint != "" {
		s3opts.BaseEndpoint = aws.String(endpoint)
		s3opts.UsePathStyle = true
	}

	return &Store{
		client:       s3.New(s3opts),
		bucket:       opts.Bucket,
		region:       opts.Region,
		endpoint:     endpoint,
		customDomain: strings.TrimRight(strings.TrimSpace(opts.CustomDomain), "/"),
	}, nil
}

func objectKey(date string) string {
	return date + ".mp3"
}

// Upload stores the audio for the given date and returns its public URL.
func (s *Store) Upload(ctx context.Context, date string, audio []byte) (string, error) {
	key := objectKey(date)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(audio),
		ContentType: aws.String("audio/mpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading narration asset: %w", err)
	}

	return s.PublicURL(date), nil
}

// Delete removes the narration asset for the given date.
func (s *Store) Delete(ctx context.Context, date string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(date)),
	})
	if err != nil {
		return fmt.Errorf("deleting narration asset: %w", err)
	}
	return nil
}

// PublicURL builds the retrieval URL for a date's asset.
func (s *Store) PublicURL(date string) string {
	key := objectKey(date)
	if s.customDomain != "" {
		return s.customDomain + "/" + key
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
