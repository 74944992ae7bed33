package awsmsg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/x4b1/awsmsg/log"
)

// jsonMessageStructure marks a publish payload as the per-protocol JSON
// format SQS subscriptions understand.
var jsonMessageStructure = aws.String("json") //nolint: gochecknoglobals // aws constant

// Account-level SMS delivery types.
const (
	smsTypeTransactional = "Transactional"
	smsTypePromotional   = "Promotional"
)

// NotificationServiceOption is a function to set options to NotificationService.
type NotificationServiceOption interface {
	applyNotificationService(*NotificationService)
}

// PublishInput are the parameters for NotificationService.Publish.
type PublishInput struct {
	Message Message
	// TopicARN overrides the configured default topic.
	TopicARN string
}

// SMSInput are the parameters for NotificationService.SendSMS.
type SMSInput struct {
	// Message is the text body of the SMS.
	Message string
	// PhoneNumber is the destination, in E.164 format.
	PhoneNumber string
	// Critical selects transactional delivery instead of promotional.
	Critical bool
	// DefaultSenderID is the sender id shown to the recipient, where supported.
	DefaultSenderID string
}

// NewNotificationService creates a NotificationService with the given SNS
// client, reading per-call defaults from cfg.
func NewNotificationService(cli SNSClient, cfg *Config, opts ...NotificationServiceOption) *NotificationService {
	s := NotificationService{
		cli:        cli,
		topicARN:   cfg.ARNPath,
		errHandler: log.NewDefault(),
	}

	for _, opt := range opts {
		opt.applyNotificationService(&s)
	}

	return &s
}

// NotificationService wraps topic publishing, device registration, mobile
// push and SMS delivery on AWS SNS.
type NotificationService struct {
	// sns service instance where messages are published
	cli SNSClient
	// default topic or platform application arn
	topicARN string
	// receives the outcome of best-effort calls whose result is not awaited.
	errHandler ErrorHandler
}

// Publish sends the {message, topic} payload to the topic, wrapped in the
// JSON message structure so queue subscriptions receive it unaltered.
func (s *NotificationService) Publish(ctx context.Context, in PublishInput) (*sns.PublishOutput, error) {
	topicARN := in.TopicARN
	if topicARN == "" {
		topicARN = s.topicARN
	}

	raw, err := json.Marshal(in.Message)
	if err != nil {
		return nil, fmt.Errorf("marshaling message: %w", err)
	}

	body, err := json.Marshal(struct {
		Default string `json:"default"`
	}{string(raw)})
	if err != nil {
		return nil, fmt.Errorf("marshaling message envelope: %w", err)
	}

	out, err := s.cli.Publish(ctx, &sns.PublishInput{
		Message:          aws.String(string(body)),
		MessageStructure: jsonMessageStructure,
		TopicArn:         aws.String(topicARN),
	})
	if err != nil {
		return nil, fmt.Errorf("publishing message: %w", err)
	}

	return out, nil
}

// AddDevice registers a device token against a platform application and
// returns the ARN of the created endpoint. When platformARN is empty the
// configured default is used.
func (s *NotificationService) AddDevice(ctx context.Context, deviceID, platformARN string) (string, error) {
	if platformARN == "" {
		platformARN = s.topicARN
	}

	out, err := s.cli.CreatePlatformEndpoint(ctx, &sns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(platformARN),
		Token:                  aws.String(deviceID),
	})
	if err != nil {
		return "", fmt.Errorf("creating platform endpoint: %w", err)
	}

	return aws.ToString(out.EndpointArn), nil
}

// Push publishes a pre-built payload directly to a target endpoint, bypassing
// the {message, topic} envelope used by Publish.
func (s *NotificationService) Push(ctx context.Context, targetARN string, payload any) (*sns.PublishOutput, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	out, err := s.cli.Publish(ctx, &sns.PublishInput{
		Message:          aws.String(string(body)),
		MessageStructure: jsonMessageStructure,
		TargetArn:        aws.String(targetARN),
	})
	if err != nil {
		return nil, fmt.Errorf("publishing push notification: %w", err)
	}

	return out, nil
}

// SendSMS delivers a text message to a phone number. It first adjusts the
// account SMS attributes for the delivery type; that call is best effort, its
// failure goes to the error handler and does not stop the send.
func (s *NotificationService) SendSMS(ctx context.Context, in SMSInput) (*sns.PublishOutput, error) {
	smsType := smsTypePromotional
	if in.Critical {
		smsType = smsTypeTransactional
	}

	if _, err := s.cli.SetSMSAttributes(ctx, &sns.SetSMSAttributesInput{
		Attributes: map[string]string{
			"DefaultSMSType":  smsType,
			"DefaultSenderID": in.DefaultSenderID,
		},
	}); err != nil {
		s.errHandler.Error(ctx, fmt.Errorf("setting sms attributes: %w", err))
	}

	out, err := s.cli.Publish(ctx, &sns.PublishInput{
		Message:     aws.String(in.Message),
		PhoneNumber: aws.String(in.PhoneNumber),
	})
	if err != nil {
		return nil, fmt.Errorf("publishing sms: %w", err)
	}

	return out, nil
}
