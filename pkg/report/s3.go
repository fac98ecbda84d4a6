package report

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/skyroutes/airnet/pkg/logging"
	"github.com/skyroutes/airnet/pkg/metrics"
)

// S3Uploader mirrors the artifact directory to an S3 bucket.
type S3Uploader struct {
	client   *s3.Client
	bucket   string
	prefix   string
	logger   logging.Logger
	registry *metrics.Registry
}

// NewS3Uploader builds a client from the default credential chain.
func NewS3Uploader(ctx context.Context, bucket, prefix, region string, logger logging.Logger, registry *metrics.Registry) (*S3Uploader, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config load: %w", err)
	}

	return &S3Uploader{
		client:   s3.NewFromConfig(cfg),
		bucket:   bucket,
		prefix:   prefix,
		logger:   logger.With(logging.Component("report")),
		registry: registry,
	}, nil
}

// UploadFile puts one local file under the configured prefix.
func (u *S3Uploader) UploadFile(ctx context.Context, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		u.registry.RecordArtifact("s3", "error")
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	key := path.Join(u.prefix, filepath.Base(localPath))
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		u.registry.RecordArtifact("s3", "error")
		return fmt.Errorf("put s3://%s/%s: %w", u.bucket, key, err)
	}

	u.registry.RecordArtifact("s3", "ok")
	u.logger.Info("artifact uploaded",
		logging.Path(localPath),
		logging.String("bucket", u.bucket),
		logging.String("key", key))
	return nil
}

// UploadDir uploads every regular file at the top level of dir. Upload errors
// are collected, not fatal per file; the first error is returned after the
// full pass.
func (u *S3Uploader) UploadDir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}

	var firstErr error
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := u.UploadFile(ctx, filepath.Join(dir, e.Name())); err != nil {
			u.logger.Error("upload failed", logging.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
