package awsmsg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// FIFO sends require both fields; they are checked before any vendor call.
var (
	// ErrMissingGroupID is returned when a FIFO send carries no message group id.
	ErrMissingGroupID = errors.New("missing message group id for fifo queue")
	// ErrMissingDeduplicationID is returned when a FIFO send carries no deduplication id.
	ErrMissingDeduplicationID = errors.New("missing deduplication id for fifo queue")
)

// Message is the payload accepted by queue sends and topic publishes.
type Message struct {
	// Message is the caller payload, marshaled as-is.
	Message any `json:"message"`
	// Topic routes the message on the consumer side.
	Topic string `json:"topic"`
}

// envelope is the outer wrapper the consumers expect: the full message
// serialized once more into the default text field, next to the structured
// copy.
type envelope struct {
	Default string  `json:"default"`
	Message Message `json:"message"`
}

// SendInput are the parameters for QueueService.Send.
type SendInput struct {
	Message Message
	// QueueURL overrides the configured default queue.
	QueueURL string
	// Attributes are attached to the message as-is.
	Attributes map[string]types.MessageAttributeValue
	// DelaySeconds delays delivery of the message.
	DelaySeconds int32
	// GroupID and DeduplicationID are required when the target queue is FIFO
	// and ignored otherwise.
	GroupID         string
	DeduplicationID string
}

// ReceiveInput are the parameters for QueueService.Receive.
type ReceiveInput struct {
	// QueueURL overrides the configured default queue.
	QueueURL string
	// VisibilityTimeout overrides the configured default, in seconds.
	VisibilityTimeout int32
}

// DeleteInput are the parameters for QueueService.Delete.
type DeleteInput struct {
	// ReceiptHandle identifies the received message to remove.
	ReceiptHandle string
	// QueueURL overrides the configured default queue.
	QueueURL string
}

// NewQueueService creates a QueueService with the given SQS client, reading
// per-call defaults from cfg.
func NewQueueService(cli SQSClient, cfg *Config) *QueueService {
	return &QueueService{
		cli:               cli,
		queueURL:          cfg.QueueURL,
		visibilityTimeout: cfg.VisibilityTimeout,
	}
}

// QueueService wraps message send, receive and delete operations on AWS SQS
// queues, both standard and FIFO. It holds no state besides its configured
// defaults; concurrent calls are independent.
type QueueService struct {
	// sqs service instance where messages are sent and received
	cli SQSClient
	// default queue url for all operations
	queueURL string
	// default visibility timeout for received messages
	visibilityTimeout int32
}

// Send wraps the message in the consumer envelope and sends it to the queue.
// For FIFO queues both GroupID and DeduplicationID must be set; standard
// queues never transmit them. It returns the vendor acknowledgment.
func (s *QueueService) Send(ctx context.Context, in SendInput) (*sqs.SendMessageOutput, error) {
	queueURL := in.QueueURL
	if queueURL == "" {
		queueURL = s.queueURL
	}

	raw, err := json.Marshal(in.Message)
	if err != nil {
		return nil, fmt.Errorf("marshaling message: %w", err)
	}

	body, err := json.Marshal(envelope{
		Default: string(raw),
		Message: in.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling message envelope: %w", err)
	}

	input := sqs.SendMessageInput{
		QueueUrl:          aws.String(queueURL),
		MessageBody:       aws.String(string(body)),
		MessageAttributes: in.Attributes,
		DelaySeconds:      in.DelaySeconds,
	}

	if isFIFO(queueURL) {
		if in.GroupID == "" {
			return nil, ErrMissingGroupID
		}
		if in.DeduplicationID == "" {
			return nil, ErrMissingDeduplicationID
		}
		input.MessageGroupId = aws.String(in.GroupID)
		input.MessageDeduplicationId = aws.String(in.DeduplicationID)
	}

	out, err := s.cli.SendMessage(ctx, &input)
	if err != nil {
		return nil, fmt.Errorf("sending message: %w", err)
	}

	return out, nil
}

// Receive fetches a batch of messages with all their attributes. It returns
// the raw vendor batch, possibly empty.
func (s *QueueService) Receive(ctx context.Context, in ReceiveInput) ([]types.Message, error) {
	queueURL := in.QueueURL
	if queueURL == "" {
		queueURL = s.queueURL
	}

	visibilityTimeout := in.VisibilityTimeout
	if visibilityTimeout == 0 {
		visibilityTimeout = s.visibilityTimeout
	}

	out, err := s.cli.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:              aws.String(queueURL),
		MessageAttributeNames: []string{"All"},
		VisibilityTimeout:     visibilityTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("receiving messages: %w", err)
	}

	return out.Messages, nil
}

// Delete removes a previously received message, identified by its receipt
// handle.
func (s *QueueService) Delete(ctx context.Context, in DeleteInput) (*sqs.DeleteMessageOutput, error) {
	queueURL := in.QueueURL
	if queueURL == "" {
		queueURL = s.queueURL
	}

	out, err := s.cli.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		ReceiptHandle: aws.String(in.ReceiptHandle),
		QueueUrl:      aws.String(queueURL),
	})
	if err != nil {
		return nil, fmt.Errorf("deleting message: %w", err)
	}

	return out, nil
}

// isFIFO reports whether the queue URL targets a FIFO queue, identified by a
// final ".fifo" segment.
func isFIFO(queueURL string) bool {
	split := strings.Split(queueURL, ".")

	return split[len(split)-1] == "fifo"
}
