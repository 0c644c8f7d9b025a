package loader

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client used by the S3 loader.
// *s3.Client satisfies it.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 reads targets as objects of a bucket.
//
// Example usage:
//
//	client := loader.NewS3Client("eu-north-1", "")
//	l := loader.NewS3(client, "my-site", "fragments/")
type S3 struct {
	client  S3API
	bucket  string
	prefix  string
	maxSize int64
}

// NewS3 creates a loader reading objects under prefix in bucket.
func NewS3(client S3API, bucket, prefix string) *S3 {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// WithMaxSize limits the object size. Zero means no limit.
func (l *S3) WithMaxSize(n int64) *S3 {
	l.maxSize = n
	return l
}

// Key returns the object key for a resource.
func (l *S3) Key(resource string) string {
	return l.prefix + strings.TrimPrefix(resource, "/")
}

// Fetch implements Loader. NoSuchKey reports StatusError 404; other
// service errors with an HTTP status report that status.
func (l *S3) Fetch(ctx context.Context, resource string) ([]byte, error) {
	if _, ok := cleanResource(resource); !ok {
		return nil, &StatusError{Resource: resource, Status: http.StatusBadRequest}
	}

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.Key(resource)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, &StatusError{Resource: resource, Status: http.StatusNotFound, Err: err}
		}
		var respErr interface{ HTTPStatusCode() int }
		if errors.As(err, &respErr) {
			return nil, &StatusError{Resource: resource, Status: respErr.HTTPStatusCode(), Err: err}
		}
		return nil, err
	}
	defer out.Body.Close()

	return readAll(out.Body, l.maxSize)
}

// NewS3Client creates an S3 client for region. A non-empty endpoint selects
// an S3-compatible service (MinIO, LocalStack) with path-style addressing.
// Credentials come from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
// AWS_SESSION_TOKEN; without them requests are anonymous.
func NewS3Client(region, endpoint string) *s3.Client {
	opts := s3.Options{
		Region:      region,
		Credentials: envCredentials(),
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials() aws.CredentialsProvider {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.AnonymousCredentials{}
	}
	creds := aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return creds, nil
	})
}
