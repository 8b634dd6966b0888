// Package storage persists generated articles to a local directory or an S3
// bucket.
package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrOutputExists is returned when the target already holds an object with
// the same name. Existing output is never overwritten.
var ErrOutputExists = errors.New("output already exists")

// Sink stores a named document and returns where it was written.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// Open returns the sink for target, which is either a directory path or an
// s3://bucket/prefix URL. S3 credentials come from the environment.
func Open(ctx context.Context, target string) (Sink, error) {
	if strings.HasPrefix(target, s3Scheme) {
		bucket, prefix, err := ParseS3URL(target)
		if err != nil {
			return nil, err
		}
		client, err := NewS3Client(ctx, S3ConfigFromEnv())
		if err != nil {
			return nil, err
		}
		return NewS3Sink(client, bucket, prefix), nil
	}
	return NewLocalSink(target), nil
}
