package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/madhava-poojari/dashboard-web/internal/models"
)

// R2Archive puts payloads into a Cloudflare R2 bucket.
type R2Archive struct {
	client     *s3.Client
	bucketName string
}

// NewR2Archive creates an R2Archive client.
// endpoint should be "https://<account-id>.r2.cloudflarestorage.com".
func NewR2Archive(accessKeyID, secretAccessKey, endpoint, bucketName string) *R2Archive {
	cfg := aws.Config{
		Region: "auto",
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"", // session token, unused by R2
		),
		BaseEndpoint: aws.String(endpoint),
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// R2 requires path-style addressing
		o.UsePathStyle = true
	})

	return &R2Archive{client: client, bucketName: bucketName}
}

func (ra *R2Archive) SaveProgressLog(ctx context.Context, studentID string, log models.ProgressLog) (string, error) {
	if len(log) == 0 {
		return "", ErrEmptyLog
	}
	key := progressLogKey(studentID, time.Now())

	_, err := ra.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ra.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(log),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}
	return key, nil
}
