package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-service/models"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher sends order events to a single topic.
type SNSPublisher struct {
	client   snsAPI
	topicARN string
}

// LoadAWSConfig loads the default credential chain. A non-empty endpoint
// (LocalStack) overrides the service URL for every client built from it.
func LoadAWSConfig(ctx context.Context, region, endpoint string) (sdkaws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}
	if endpoint != "" {
		cfg.BaseEndpoint = sdkaws.String(endpoint)
	}
	return cfg, nil
}

func NewSNSPublisher(cfg sdkaws.Config, topicARN string) (*SNSPublisher, error) {
	if topicARN == "" {
		return nil, errors.New("empty sns topic arn")
	}
	return &SNSPublisher{client: sns.NewFromConfig(cfg), topicARN: topicARN}, nil
}

func (p *SNSPublisher) PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: sdkaws.String(p.topicARN),
		Message:  sdkaws.String(string(payload)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event": {DataType: sdkaws.String("String"), StringValue: sdkaws.String(event.Event)},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish failed for topic %s: %w", p.topicARN, err)
	}
	return nil
}

func (p *SNSPublisher) Close() error { return nil }
