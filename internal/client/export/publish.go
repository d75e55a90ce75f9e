package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// S3Settings configures the optional publish target (any S3-compatible
// backend, e.g. MinIO).
type S3Settings struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// Enabled reports whether a publish target is configured.
func (s S3Settings) Enabled() bool { return s.Bucket != "" }

// Publisher uploads built exports to object storage.
type Publisher struct {
	settings S3Settings
}

func NewPublisher(settings S3Settings) *Publisher {
	return &Publisher{settings: settings}
}

func (p *Publisher) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(p.settings.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.settings.RootUser,
			p.settings.RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if p.settings.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(p.settings.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return client, nil
}

// storageKey spreads published archives over date-based prefixes.
func storageKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("exports/%d/%d/%d/%v_%s", d.Year(), d.Month(), d.Day(), uuid.New(), filename)
}

// Publish uploads the archive and returns its storage key.
func (p *Publisher) Publish(ctx context.Context, r Result) (string, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client init: %w", err)
	}

	bucket := p.settings.Bucket
	key := storageKey(r.Filename)
	contentType := "application/zip"

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(r.Data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("uploading export: %w", err)
	}
	return key, nil
}
