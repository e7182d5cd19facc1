package cos

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"foley-demo-prep/internal"
)

// PresignSigner signs GET URLs against the COS S3-compatible endpoint using
// static API credentials, no external tool involved. COS speaks the S3
// presign protocol, so the stock SDK presigner works against
// https://cos.<region>.myqcloud.com with virtual-host addressing.
type PresignSigner struct {
	presign *awss3.PresignClient
	bucket  string
	expiry  time.Duration
}

func NewPresignSigner(cfg internal.Config) (*PresignSigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.COSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.COSSecretID, cfg.COSSecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("cos presign config: %w", err)
	}

	endpoint := fmt.Sprintf("https://cos.%s.myqcloud.com", cfg.COSRegion)
	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		o.BaseEndpoint = &endpoint
		o.UsePathStyle = false
	})

	return &PresignSigner{
		presign: awss3.NewPresignClient(client),
		bucket:  cfg.COSBucket,
		expiry:  cfg.SignExpiry,
	}, nil
}

func (s *PresignSigner) SignURL(ctx context.Context, remotePath string) (string, error) {
	out, err := s.presign.PresignGetObject(ctx,
		&awss3.GetObjectInput{Bucket: &s.bucket, Key: &remotePath},
		func(o *awss3.PresignOptions) { o.Expires = s.expiry },
	)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", remotePath, err)
	}
	return out.URL, nil
}

// NewSigner picks the signing strategy: direct presigning when COS API
// credentials are configured, coscmd otherwise.
func NewSigner(cfg internal.Config) (Signer, error) {
	if cfg.COSSecretID != "" && cfg.COSSecretKey != "" {
		return NewPresignSigner(cfg)
	}
	return NewCmdSigner(cfg), nil
}
