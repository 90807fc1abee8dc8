package screenshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

//go:generate moq -out mocks/put_object.go -pkg mocks -skip-ensure -fmt goimports . PutObjectAPI

// PutObjectAPI is the part of the s3 client used by the uploader
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// UploaderParams for s3 uploader creation
type UploaderParams struct {
	Bucket    string
	Region    string
	Endpoint  string // custom s3-compatible endpoint, path style addressing is used with it
	AccessKey string // default credential chain is used if empty
	SecretKey string
	PublicURL string // base of returned urls, bucket virtual host if empty
}

// Uploader stores images in an s3 bucket
type Uploader struct {
	client    PutObjectAPI
	bucket    string
	publicURL string
}

// NewUploader makes an uploader with an s3 client built from params
func NewUploader(ctx context.Context, p UploaderParams) (*Uploader, error) {
	if p.Bucket == "" {
		return nil, errors.New("bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(p.Region)}
	if p.AccessKey != "" && p.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(p.AccessKey, p.SecretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if p.Endpoint != "" {
			o.BaseEndpoint = aws.String(p.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewUploaderWithClient(client, p), nil
}

// NewUploaderWithClient makes an uploader on top of the given client
func NewUploaderWithClient(client PutObjectAPI, p UploaderParams) *Uploader {
	publicURL := strings.TrimSuffix(p.PublicURL, "/")
	switch {
	case publicURL != "":
	case p.Endpoint != "":
		publicURL = strings.TrimSuffix(p.Endpoint, "/") + "/" + p.Bucket
	default:
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", p.Bucket, p.Region)
	}
	return &Uploader{client: client, bucket: p.Bucket, publicURL: publicURL}
}

// Upload puts a png image under key and returns its public url
func (u *Uploader) Upload(ctx context.Context, key string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty image")
	}
	key = strings.TrimPrefix(key, "/")
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("image/png"),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("put %s/%s: %w", u.bucket, key, err)
	}
	return u.publicURL + "/" + key, nil
}
