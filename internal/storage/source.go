package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ReadSource reads an article from a local path or an s3://bucket/key URL.
func ReadSource(ctx context.Context, target string) ([]byte, error) {
	if !strings.HasPrefix(target, s3Scheme) {
		return os.ReadFile(target)
	}

	bucket, key, err := ParseS3URL(target)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("invalid S3 URL %q: missing object key", target)
	}
	client, err := NewS3Client(ctx, S3ConfigFromEnv())
	if err != nil {
		return nil, err
	}
	return getObject(ctx, client, bucket, key)
}

func getObject(ctx context.Context, client objectGetter, bucket, key string) ([]byte, error) {
	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get file from S3: %w", err)
	}
	defer result.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, result.Body); err != nil {
		return nil, fmt.Errorf("failed to read file contents: %w", err)
	}

	return buf.Bytes(), nil
}
