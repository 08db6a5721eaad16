package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"filebox-api/config"
	"filebox-api/internal/infrastructure/storage"
)

// Provider stores objects in an S3-compatible bucket (AWS, R2, MinIO).
type Provider struct {
	logger     *zap.Logger
	client     *s3.Client
	presign    *s3.PresignClient
	bucket     string
	region     string
	cdnBaseURL string
}

func New(ctx context.Context, logger *zap.Logger, cfg config.S3) (*Provider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("s3 client initialized", zap.String("bucket", cfg.Bucket), zap.String("region", cfg.Region))

	return &Provider{
		logger:     logger,
		client:     client,
		presign:    s3.NewPresignClient(client),
		bucket:     cfg.Bucket,
		region:     cfg.Region,
		cdnBaseURL: cfg.CDNBaseURL,
	}, nil
}

func (p *Provider) Upload(ctx context.Context, in storage.UploadInput) (*storage.UploadResult, error) {
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(in.Key),
		Body:        bytes.NewReader(in.Body),
		ContentType: aws.String(in.ContentType),
		Metadata: map[string]string{
			"original-name": in.FileName,
			"uploaded-at":   time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("s3 put object failed: %w", err)
	}

	return &storage.UploadResult{
		Key:     in.Key,
		Locator: p.URL(in.Key),
		Kind:    storage.KindS3,
	}, nil
}

// Delete is idempotent: a missing object reports (false, nil), while
// genuine permission or network failures propagate.
func (p *Provider) Delete(ctx context.Context, key string) (bool, error) {
	exists, err := p.Exists(ctx, key)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	_, err = p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, fmt.Errorf("s3 delete object failed: %w", err)
	}

	return true, nil
}

func (p *Provider) Exists(ctx context.Context, key string) (bool, error) {
	_, err := p.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// URL returns the CDN URL when a content-delivery domain is
// configured, otherwise a direct bucket URL. Never contains
// credentials.
func (p *Provider) URL(key string) string {
	if p.cdnBaseURL != "" {
		return fmt.Sprintf("%s/%s", p.cdnBaseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
}

func (p *Provider) Kind() storage.Kind { return storage.KindS3 }

func (p *Provider) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (p *Provider) PresignPut(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
