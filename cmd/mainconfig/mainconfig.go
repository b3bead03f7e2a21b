package mainconfig

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"

	appconfig "github.com/codewithhamza1/advanced-appointments/internal/config"
)

// LoadAWSConfig centralizes AWS SDK initialization for binaries that send
// email through SES.
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx, config.WithRegion(cfg.AWSRegion))
}
