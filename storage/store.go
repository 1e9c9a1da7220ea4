package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gcs "cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"google.golang.org/api/option"
)

// ObjectStore is the minimal blob-store surface the adapter needs. Two
// implementations exist: Cloudflare R2 (current) and GCS (previous). Tests
// substitute a fake.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Delete(ctx context.Context, key string) error
}

type r2Store struct {
	client *s3.Client
	bucket string
}

func (s *r2Store) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *r2Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func newR2Store(ctx context.Context, bucket string) (*r2Store, error) {
	accessKey := os.Getenv("R2_ACCESS_KEY_ID")
	secretKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	endpoint := os.Getenv("R2_ENDPOINT") // https://<account-id>.r2.cloudflarestorage.com

	if accessKey == "" || secretKey == "" || endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true // required for R2
	})
	return &r2Store{client: client, bucket: bucket}, nil
}

type gcsStore struct {
	client *gcs.Client
	bucket string
}

func (s *gcsStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (s *gcsStore) Delete(ctx context.Context, key string) error {
	return s.client.Bucket(s.bucket).Object(key).Delete(ctx)
}

func newGCSStore(ctx context.Context, bucket string) (*gcsStore, error) {
	credentialsPath := os.Getenv("CREDENTIALS_FILE_LOCATION")
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	client, err := gcs.NewClient(ctx,
		option.WithAuthCredentialsFile(option.ServiceAccount, filepath.Join(wd, credentialsPath)))
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &gcsStore{client: client, bucket: bucket}, nil
}

// NewBucketFromEnv builds the one Bucket the app uses, picking the backend
// from STORAGE_BACKEND ("r2" default, "gcs" for the legacy bucket).
func NewBucketFromEnv(ctx context.Context) (*Bucket, error) {
	bucket := os.Getenv("STORAGE_BUCKET")
	publicBase := os.Getenv("STORAGE_PUBLIC_BASE") // e.g. https://media.shaadicloset.com/shaadicloset-media
	if bucket == "" || publicBase == "" {
		return nil, fmt.Errorf("missing STORAGE_BUCKET or STORAGE_PUBLIC_BASE env vars")
	}

	var (
		store ObjectStore
		err   error
	)
	switch os.Getenv("STORAGE_BACKEND") {
	case "", "r2":
		store, err = newR2Store(ctx, bucket)
	case "gcs":
		store, err = newGCSStore(ctx, bucket)
	default:
		err = fmt.Errorf("unknown STORAGE_BACKEND %q", os.Getenv("STORAGE_BACKEND"))
	}
	if err != nil {
		return nil, err
	}
	return NewBucket(store, bucket, publicBase)
}
