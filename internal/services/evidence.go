package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrEvidenceDisabled = errors.New("evidence storage is not configured")

// ObjectPutter is the part of *s3.Client used for evidence uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type EvidenceStore struct {
	client ObjectPutter
	bucket string
}

func NewEvidenceStore(client ObjectPutter, bucket string) *EvidenceStore {
	return &EvidenceStore{client: client, bucket: bucket}
}

func (s *EvidenceStore) Enabled() bool {
	return s != nil && s.client != nil && s.bucket != ""
}

func (s *EvidenceStore) Bucket() string {
	return s.bucket
}

func (s *EvidenceStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	if !s.Enabled() {
		return ErrEvidenceDisabled
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload evidence %s: %w", key, err)
	}
	return nil
}
