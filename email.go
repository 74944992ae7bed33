package awsmsg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var (
	// ErrInvalidEnv is returned when sending email in an environment that is
	// neither development nor production.
	ErrInvalidEnv = errors.New("invalid environment")
	// ErrNoRecipients is returned when an email carries no usable "to" address.
	ErrNoRecipients = errors.New("no recipient addresses")
)

var emailCharset = aws.String("UTF-8") //nolint: gochecknoglobals // aws constant

// Email is the transactional email to deliver.
type Email struct {
	// To and Cc are the intended recipients. Empty entries are dropped.
	To []string
	Cc []string
	// Subject of the email. Development sends prefix it with the intended recipients.
	Subject string
	// Body is the HTML body.
	Body string
	// Tags are forwarded to SES as-is.
	Tags []types.MessageTag
}

// SendEmailInput are the parameters for EmailService.Send.
type SendEmailInput struct {
	Email Email
	// Sender overrides the configured default source and return-path address.
	Sender string
	// SourceARN overrides the configured sending authorization ARN.
	SourceARN string
}

// NewEmailService creates an EmailService with the given SES client. It fails
// when cfg carries no environment, or when the environment is development and
// no development address list exists to redirect recipients to.
func NewEmailService(cli SESClient, cfg *Config) (*EmailService, error) {
	if cfg.Env == "" {
		return nil, ErrMissingEnv
	}
	if cfg.Env == EnvDevelopment && cfg.DevEmailAddresses == nil {
		return nil, ErrMissingDevAddresses
	}

	return &EmailService{
		cli:           cli,
		env:           cfg.Env,
		devAddresses:  cfg.DevEmailAddresses,
		defaultSender: cfg.DefaultSender,
		sourceARN:     cfg.ARNPath,
	}, nil
}

// EmailService wraps transactional email delivery on AWS SES. In development
// every outbound recipient is replaced by the configured development
// addresses and the subject records where the email was meant to go, so a
// human watching the development inbox sees the real destination. Production
// passes caller addresses through unchanged.
type EmailService struct {
	// ses service instance where emails are sent
	cli SESClient
	// environment driving the remapping policies
	env Env
	// addresses that replace all recipients in development
	devAddresses []string
	// default source and return-path address
	defaultSender string
	// default sending authorization arn
	sourceARN string
}

// Send delivers the email with the environment remapping applied. It fails
// with ErrNoRecipients before any vendor call when the normalized "to" list
// is empty, and returns the vendor acknowledgment otherwise.
func (s *EmailService) Send(ctx context.Context, in SendEmailInput) (*ses.SendEmailOutput, error) {
	sender := in.Sender
	if sender == "" {
		sender = s.defaultSender
	}

	sourceARN := in.SourceARN
	if sourceARN == "" {
		sourceARN = s.sourceARN
	}

	to := normalizeAddresses(in.Email.To)
	if len(to) == 0 {
		return nil, ErrNoRecipients
	}
	cc := normalizeAddresses(in.Email.Cc)

	bcc, mappedCc, err := s.mapOutboundAddresses(to, cc)
	if err != nil {
		return nil, err
	}

	tags := in.Email.Tags
	if tags == nil {
		tags = []types.MessageTag{}
	}

	out, err := s.cli.SendEmail(ctx, &ses.SendEmailInput{
		// Recipients go out as Bcc, never To. Existing consumers expect this
		// exact destination shape, see mapOutboundAddresses.
		Destination: &types.Destination{
			BccAddresses: bcc,
			CcAddresses:  mappedCc,
		},
		Message: &types.Message{
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(in.Email.Body), Charset: emailCharset},
			},
			Subject: &types.Content{Data: aws.String(s.mapSubject(in.Email.Subject, to, cc)), Charset: emailCharset},
		},
		Source:        aws.String(sender),
		ReturnPath:    aws.String(sender),
		SourceArn:     aws.String(sourceARN),
		ReturnPathArn: aws.String(sourceARN),
		Tags:          tags,
	})
	if err != nil {
		return nil, fmt.Errorf("sending email: %w", err)
	}

	return out, nil
}

// mapOutboundAddresses applies the environment policy: development replaces
// both destination lists with the development addresses, production passes
// the caller lists through.
func (s *EmailService) mapOutboundAddresses(to, cc []string) (bcc, mappedCc []string, err error) {
	switch s.env {
	case EnvDevelopment:
		return s.devAddresses, s.devAddresses, nil
	case EnvProduction:
		return to, cc, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidEnv, s.env)
	}
}

// mapSubject prefixes development subjects with the intended recipients.
func (s *EmailService) mapSubject(subject string, to, cc []string) string {
	if s.env != EnvDevelopment {
		return subject
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[To: %s] ", strings.Join(to, ", "))
	if len(cc) > 0 {
		fmt.Fprintf(&b, "[Cc: %s] ", strings.Join(cc, ", "))
	}
	b.WriteString(subject)

	return b.String()
}

// normalizeAddresses drops empty entries, keeping the original order.
func normalizeAddresses(addresses []string) []string {
	out := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if a == "" {
			continue
		}
		out = append(out, a)
	}

	return out
}
