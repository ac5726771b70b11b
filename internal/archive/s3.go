package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"herdcore/pkg/domain"
)

// Compile-time contract assertion.
var _ Store = (*S3Store)(nil)

const (
	s3KeyPrefix    = "plans/"
	s3ContentType  = "application/json"
	defaultRegion  = "us-east-1"
	defaultPresign = 15 * time.Minute
)

// S3Config holds explicit construction parameters for the S3 archive.
// Credentials left empty fall back to the default provider chain, which
// keeps MinIO and AWS deployments on the same code path.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string // optional; enables a custom endpoint (e.g. MinIO)
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	PathStyle       bool
}

// S3Store archives plans in a single S3-compatible bucket.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	now     func() time.Time
}

// NewS3Store creates an S3 archive from cfg.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, domain.InvalidArgumentError{Field: "s3 bucket", Reason: "must not be empty"}
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		now:     time.Now,
	}, nil
}

// Driver implements Store.
func (s *S3Store) Driver() Driver { return DriverS3 }

// SavePlan implements Store.
func (s *S3Store) SavePlan(ctx context.Context, plan domain.MatingPlanResult) (Info, error) {
	record := PlanRecord{ID: uuid.NewString(), SavedAt: s.now().UTC(), Plan: plan}
	payload, err := json.Marshal(record)
	if err != nil {
		return Info{}, fmt.Errorf("encode plan: %w", err)
	}
	key := planKey(record.ID)
	contentType := s3ContentType
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: &contentType,
	}); err != nil {
		return Info{}, fmt.Errorf("put plan %s: %w", record.ID, err)
	}
	return Info{ID: record.ID, Key: key, Size: int64(len(payload)), SavedAt: record.SavedAt}, nil
}

// LoadPlan implements Store.
func (s *S3Store) LoadPlan(ctx context.Context, id string) (PlanRecord, error) {
	key := planKey(id)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		return PlanRecord{}, domain.NotFoundError{Kind: "plan", ID: id}
	}
	defer func() { _ = out.Body.Close() }()
	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return PlanRecord{}, fmt.Errorf("read plan %s: %w", id, err)
	}
	var record PlanRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return PlanRecord{}, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return record, nil
}

// ListPlans implements Store.
func (s *S3Store) ListPlans(ctx context.Context) ([]Info, error) {
	prefix := s3KeyPrefix
	var infos []Info
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            &s.bucket,
			Prefix:            &prefix,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list plans: %w", err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			id := strings.TrimSuffix(strings.TrimPrefix(key, s3KeyPrefix), ".json")
			var size int64
			if obj.Size != nil {
				size = *obj.Size
			}
			infos = append(infos, Info{ID: id, Key: key, Size: size, SavedAt: aws.ToTime(obj.LastModified)})
		}
		if out.IsTruncated != nil && *out.IsTruncated && out.NextContinuationToken != nil {
			token = out.NextContinuationToken
			continue
		}
		break
	}
	return infos, nil
}

// DeletePlan implements Store.
func (s *S3Store) DeletePlan(ctx context.Context, id string) (bool, error) {
	key := planKey(id)
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		return false, nil
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		return false, fmt.Errorf("delete plan %s: %w", id, err)
	}
	return true, nil
}

// PresignPlanURL produces a time-limited download URL for an archived plan.
func (s *S3Store) PresignPlanURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = defaultPresign
	}
	key := planKey(id)
	out, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key},
		func(po *s3.PresignOptions) { po.Expires = expiry })
	if err != nil {
		return "", fmt.Errorf("presign plan %s: %w", id, err)
	}
	return out.URL, nil
}
