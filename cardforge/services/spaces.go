// services/spaces.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/cardatelier/cardforge/cardforge"
)

const presignExpiry = 15 * time.Minute

// SpacesService stores uploaded player photos in a DigitalOcean Spaces
// bucket and hands out URLs the card layouts can reference.
type SpacesService struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	region    string
	AssetRoot string
}

func NewSpacesService(cfg cardforge.SpacesConfig) *SpacesService {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		panic(fmt.Sprintf("Unable to load Spaces config: %v", err))
	}

	client := s3.NewFromConfig(awsCfg)

	return &SpacesService{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		AssetRoot: strings.TrimPrefix(cfg.AssetRoot, "/"),
	}
}

// Upload stores an asset under the configured root and returns its public URL.
func (s *SpacesService) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	fullKey := s.objectKey(key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &fullKey,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", fullKey, err)
	}
	return s.PublicURL(key), nil
}

func (s *SpacesService) Delete(ctx context.Context, key string) error {
	fullKey := s.objectKey(key)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &fullKey,
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", fullKey, err)
	}
	return nil
}

// PresignGet returns a time-limited download URL for a private asset.
func (s *SpacesService) PresignGet(ctx context.Context, key string) (string, error) {
	fullKey := s.objectKey(key)
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &fullKey,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", fullKey, err)
	}
	return req.URL, nil
}

func (s *SpacesService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, s.objectKey(key))
}

func (s *SpacesService) objectKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.AssetRoot == "" {
		return key
	}
	return s.AssetRoot + "/" + key
}

func (s *SpacesService) GetBucket() string {
	return s.bucket
}

func (s *SpacesService) GetRegion() string {
	return s.region
}
