package screenshot

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postdigest/pkg/screenshot/mocks"
)

func TestUploader_Upload(t *testing.T) {
	var body []byte
	client := &mocks.PutObjectAPIMock{PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		var err error
		body, err = io.ReadAll(params.Body)
		require.NoError(t, err)
		return &s3.PutObjectOutput{}, nil
	}}
	u := NewUploaderWithClient(client, UploaderParams{Bucket: "shots", Region: "us-east-1"})

	url, err := u.Upload(context.Background(), "/screenshots/20250116/1001.png", []byte("png-data"))
	require.NoError(t, err)
	assert.Equal(t, "https://shots.s3.us-east-1.amazonaws.com/screenshots/20250116/1001.png", url)
	assert.Equal(t, []byte("png-data"), body)

	require.Len(t, client.PutObjectCalls(), 1)
	in := client.PutObjectCalls()[0].Params
	assert.Equal(t, "shots", aws.ToString(in.Bucket))
	assert.Equal(t, "screenshots/20250116/1001.png", aws.ToString(in.Key))
	assert.Equal(t, "image/png", aws.ToString(in.ContentType))
}

func TestUploader_PublicURL(t *testing.T) {
	tbl := []struct {
		name   string
		params UploaderParams
		want   string
	}{
		{name: "explicit", params: UploaderParams{Bucket: "b", PublicURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/k.png"},
		{name: "custom endpoint", params: UploaderParams{Bucket: "b", Endpoint: "http://minio:9000"},
			want: "http://minio:9000/b/k.png"},
		{name: "aws", params: UploaderParams{Bucket: "b", Region: "eu-west-1"},
			want: "https://b.s3.eu-west-1.amazonaws.com/k.png"},
	}
	client := &mocks.PutObjectAPIMock{PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return &s3.PutObjectOutput{}, nil
	}}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			url, err := NewUploaderWithClient(client, tt.params).Upload(context.Background(), "k.png", []byte("x"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, url)
		})
	}
}

func TestUploader_Errors(t *testing.T) {
	client := &mocks.PutObjectAPIMock{PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("access denied")
	}}
	u := NewUploaderWithClient(client, UploaderParams{Bucket: "shots"})

	_, err := u.Upload(context.Background(), "k.png", nil)
	require.Error(t, err)
	assert.Empty(t, client.PutObjectCalls())

	_, err = u.Upload(context.Background(), "k.png", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put shots/k.png")

	_, err = NewUploader(context.Background(), UploaderParams{})
	require.Error(t, err)
}

func TestNewUploader(t *testing.T) {
	u, err := NewUploader(context.Background(), UploaderParams{Bucket: "shots", Region: "us-east-1",
		AccessKey: "key", SecretKey: "secret", Endpoint: "http://localhost:9000"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/shots", u.publicURL)
	assert.NotNil(t, u.client)
}
