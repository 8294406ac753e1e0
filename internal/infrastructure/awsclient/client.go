package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/go-class-triggers/internal/config"
)

// Load builds the shared AWS configuration. Static credentials are used when
// an access key is configured (LocalStack, CI); otherwise the default chain
// applies.
func Load(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}

	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return awsCfg, nil
}

// BaseEndpoint returns the endpoint override for service clients, or nil when
// requests should go to the real AWS endpoints.
func BaseEndpoint(cfg *config.Config) *string {
	if cfg.AWSEndpointURL == "" {
		return nil
	}
	return aws.String(cfg.AWSEndpointURL)
}
