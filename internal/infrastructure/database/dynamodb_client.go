package database

import (
	"context"
	"fmt"

	appconfig "mecanica_hub/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ConnectDynamoDB creates a DynamoDB client from the loaded settings. With an
// endpoint set the client talks to DynamoDB Local.
func ConnectDynamoDB(ctx context.Context, settings appconfig.DynamoDBConfig, logger *zap.Logger) (*dynamodb.Client, error) {
	cfg, err := NewAWSConfig(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("dynamodb config: %w", err)
	}
	logger.Info("[database] dynamodb client ready",
		zap.String("region", cfg.Region), zap.String("endpoint", settings.Endpoint))
	return dynamodb.NewFromConfig(cfg), nil
}

func NewAWSConfig(ctx context.Context, settings appconfig.DynamoDBConfig) (aws.Config, error) {
	// DynamoDB Local ignores credentials but the SDK still signs requests.
	creds := credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, "")
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(settings.Region),
		config.WithCredentialsProvider(creds),
	}

	if settings.Endpoint != "" {
		endpoint := settings.Endpoint
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}
