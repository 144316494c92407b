package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archiver uploads generated reports to an S3-compatible bucket. A nil
// Archiver disables archiving; report downloads still work.
type Archiver struct {
	client *s3.Client
	bucket string
}

// NewArchiver builds an S3 client against a custom endpoint (works with R2
// and MinIO as well as AWS). Returns nil when unconfigured.
func NewArchiver(endpoint, bucket, accessKey, secretKey string) *Archiver {
	if endpoint == "" || bucket == "" || accessKey == "" {
		return nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		log.Printf("[Archive] AWS config failed, archiving disabled: %v", err)
		return nil
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	return &Archiver{client: client, bucket: bucket}
}

// Upload stores one object. Failures are returned for the caller to log;
// archiving is best-effort and never fails the report request.
func (a *Archiver) Upload(ctx context.Context, key, contentType string, data []byte) error {
	if a == nil {
		return nil
	}
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
