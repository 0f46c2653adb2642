package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/contribgraph/backend/internal/util"
	"github.com/contribgraph/backend/pkg/loader"
)

// GetObjectAPI is the subset of *s3.Client the loader needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3SourceLoader is a SourceLoader that reads source files from an S3
// bucket. File paths are joined to Prefix to form the object key.
//
// This loader is useful when the spreadsheet exports are dropped into a
// bucket instead of the server's filesystem.
type S3SourceLoader struct {
	bucket  string
	prefix  string
	client  GetObjectAPI
	retries int
	delay   time.Duration
}

// NewS3SourceLoaderParams configures a new S3SourceLoader.
//
// Retries is the number of GetObject attempts for transient failures
// (missing objects are never retried).
type NewS3SourceLoaderParams struct {
	Bucket  string
	Prefix  string
	Client  GetObjectAPI
	Retries int
	Delay   time.Duration
}

// NewS3SourceLoader creates a new S3SourceLoader.
//
// Example:
//
//	client, err := storage.NewS3Client(ctx)
//	l := s3.NewS3SourceLoader(s3.NewS3SourceLoaderParams{
//		Bucket: "contributors",
//		Prefix: "csv",
//		Client: client,
//	})
//	file := loader.NewSourceFile("internal", "contributeurices_int.csv", l)
//	content, err := file.GetBytes(ctx)
func NewS3SourceLoader(params NewS3SourceLoaderParams) *S3SourceLoader {
	return &S3SourceLoader{
		bucket:  params.Bucket,
		prefix:  params.Prefix,
		client:  params.Client,
		retries: params.Retries,
		delay:   params.Delay,
	}
}

func (l *S3SourceLoader) key(filePath string) string {
	if l.prefix == "" {
		return filePath
	}
	return path.Join(l.prefix, filePath)
}

// GetFileBytes retrieves the object backing file from the configured bucket.
func (l *S3SourceLoader) GetFileBytes(ctx context.Context, file loader.SourceFile) ([]byte, error) {
	if l.client == nil {
		return nil, errors.New("s3 loader: no client configured")
	}
	key := l.key(file.FilePath)

	return util.RetryWithContext(ctx, l.retries, l.delay, isNotFound, func(ctx context.Context) ([]byte, error) {
		out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(l.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			if isNotFound(err) {
				return nil, fmt.Errorf("s3://%s/%s: %w", l.bucket, key, loader.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to get s3://%s/%s: %w", l.bucket, key, err)
		}
		defer out.Body.Close()

		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, out.Body); err != nil {
			return nil, fmt.Errorf("failed to read s3://%s/%s: %w", l.bucket, key, err)
		}
		return buf.Bytes(), nil
	})
}

func isNotFound(err error) bool {
	if errors.Is(err, loader.ErrNotFound) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}
