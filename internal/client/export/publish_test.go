package export

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

func TestS3SettingsEnabled(t *testing.T) {
	require.False(t, S3Settings{}.Enabled())
	require.True(t, S3Settings{Bucket: "hub"}.Enabled())
}

func TestPublishUploadsArchive(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPut := putObject
	defer func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		putObject = origPut
	}()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}

	var captured *s3.PutObjectInput
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		captured = in
		return &s3.PutObjectOutput{}, nil
	}

	p := NewPublisher(S3Settings{
		RootUser:     "admin",
		RootPassword: "secret",
		Bucket:       "hub-exports",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000/",
	})

	key, err := p.Publish(context.Background(), Result{
		Filename: "i18n_export_2026-08-30T12-00-00Z.zip",
		Data:     []byte("PK..."),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(key, "exports/"))
	require.True(t, strings.HasSuffix(key, "_i18n_export_2026-08-30T12-00-00Z.zip"))

	require.NotNil(t, captured)
	require.Equal(t, "hub-exports", aws.ToString(captured.Bucket))
	require.Equal(t, key, aws.ToString(captured.Key))
	require.Equal(t, "application/zip", aws.ToString(captured.ContentType))

	body, err := io.ReadAll(captured.Body)
	require.NoError(t, err)
	require.Equal(t, "PK...", string(body))
}

func TestPublishUploadError(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origPut := putObject
	defer func() {
		loadDefaultAWSConfig = origLoad
		putObject = origPut
	}()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return nil, errors.New("access denied")
	}

	p := NewPublisher(S3Settings{Bucket: "hub-exports", Region: "us-east-1"})
	_, err := p.Publish(context.Background(), Result{Filename: "x.zip", Data: []byte("z")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "access denied")
}
