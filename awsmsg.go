// Package awsmsg provides thin, configuration-driven wrappers around three AWS
// messaging primitives: SQS queues, SNS topics (including mobile push and SMS)
// and SES transactional email. Each service maps caller fields one-to-one onto
// the vendor request shape and returns the vendor acknowledgment as-is. The
// package implements no retries, no batching and no persistence; transport,
// retry and authentication belong to the AWS SDK.
package awsmsg

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

//go:generate go tool moq -pkg awsmsg_test -stub -out mock_test.go . SQSClient SNSClient SESClient

// SQSClient defines the AWS SQS methods used by the QueueService. This is used for testing purposes.
type SQSClient interface {
	SendMessage(
		context.Context,
		*sqs.SendMessageInput,
		...func(*sqs.Options),
	) (*sqs.SendMessageOutput, error)
	ReceiveMessage(
		context.Context,
		*sqs.ReceiveMessageInput,
		...func(*sqs.Options),
	) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(
		context.Context,
		*sqs.DeleteMessageInput,
		...func(*sqs.Options),
	) (*sqs.DeleteMessageOutput, error)
}

// SNSClient defines the AWS SNS methods used by the NotificationService. This is used for testing purposes.
type SNSClient interface {
	Publish(
		context.Context,
		*sns.PublishInput,
		...func(*sns.Options),
	) (*sns.PublishOutput, error)
	CreatePlatformEndpoint(
		context.Context,
		*sns.CreatePlatformEndpointInput,
		...func(*sns.Options),
	) (*sns.CreatePlatformEndpointOutput, error)
	SetSMSAttributes(
		context.Context,
		*sns.SetSMSAttributesInput,
		...func(*sns.Options),
	) (*sns.SetSMSAttributesOutput, error)
}

// SESClient defines the AWS SES methods used by the EmailService. This is used for testing purposes.
type SESClient interface {
	SendEmail(
		context.Context,
		*ses.SendEmailInput,
		...func(*ses.Options),
	) (*ses.SendEmailOutput, error)
}

// ErrorHandler is the interface that wraps handling of non-fatal errors.
type ErrorHandler interface {
	Error(ctx context.Context, err error)
}
