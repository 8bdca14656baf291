package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	ErrBucketRequired = errors.New("s3 bucket required")
)

// Store implementa objectstore.Store contra un bucket privado.
// Las credenciales salen de la cadena default del SDK (env, perfil, rol).
type Store struct {
	client  *awss3.Client
	presign *awss3.PresignClient
	bucket  string
}

type Config struct {
	Bucket string
	Region string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, ErrBucketRequired
	}

	var opts []func(*awsconfig.LoadOptions) error
	if region := strings.TrimSpace(cfg.Region); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg)
	return &Store{
		client:  client,
		presign: awss3.NewPresignClient(client),
		bucket:  bucket,
	}, nil
}

func (s *Store) Put(ctx context.Context, key string, contentType string, data []byte) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("s3: key required")
	}

	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func (s *Store) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("s3: key required")
	}
	if expiry <= 0 {
		expiry = time.Hour
	}

	req, err := s.presign.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", key, err)
	}
	return req.URL, nil
}
