package awsmsg

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Kind identifies one of the wrapped AWS services.
type Kind string

// The closed set of services the factory knows how to build.
const (
	KindQueue        Kind = "SQS"
	KindNotification Kind = "SNS"
	KindEmail        Kind = "SES"
)

// Service is the set of services returned by New. It is sealed: only
// QueueService, NotificationService and EmailService implement it, so callers
// resolve the concrete type with a type switch.
type Service interface {
	kind() Kind
}

func (*QueueService) kind() Kind        { return KindQueue }
func (*NotificationService) kind() Kind { return KindNotification }
func (*EmailService) kind() Kind        { return KindEmail }

// New validates cfg, loads the default AWS configuration for cfg.Region and
// returns the service identified by kind. The region is applied per client,
// never process-wide.
func New(ctx context.Context, kind Kind, cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config from default: %w", err)
	}

	switch kind {
	case KindQueue:
		return NewQueueService(sqs.NewFromConfig(awsCfg), cfg), nil
	case KindNotification:
		return NewNotificationService(sns.NewFromConfig(awsCfg), cfg), nil
	case KindEmail:
		return NewEmailService(ses.NewFromConfig(awsCfg), cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownService, kind)
	}
}
