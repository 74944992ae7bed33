// Demo wiring the three services against a throwaway localstack instance:
// a queue round trip and a development-mode email send.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_ses "github.com/aws/aws-sdk-go-v2/service/ses"
	aws_sqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"

	"github.com/x4b1/awsmsg"
	"github.com/x4b1/awsmsg/internal/testhelpers"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	awsContainer, err := testhelpers.CreateLocalStackContainer(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = awsContainer.Terminate(ctx) }()

	sqsClient := aws_sqs.NewFromConfig(awsContainer.Config)
	queue, err := sqsClient.CreateQueue(ctx, &aws_sqs.CreateQueueInput{
		QueueName: aws.String("example-" + uuid.NewString()),
	})
	if err != nil {
		return fmt.Errorf("creating queue: %w", err)
	}

	sesClient := aws_ses.NewFromConfig(awsContainer.Config)
	if _, err := sesClient.VerifyEmailIdentity(ctx, &aws_ses.VerifyEmailIdentityInput{
		EmailAddress: aws.String("noreply@example.com"),
	}); err != nil {
		return fmt.Errorf("verifying sender identity: %w", err)
	}

	cfg := &awsmsg.Config{
		Region:            "eu-west-1",
		QueueURL:          aws.ToString(queue.QueueUrl),
		VisibilityTimeout: 10,
		DefaultSender:     "noreply@example.com",
		Env:               awsmsg.EnvDevelopment,
		DevEmailAddresses: []string{"dev@example.com"},
	}

	queueSvc := awsmsg.NewQueueService(sqsClient, cfg)

	if _, err := queueSvc.Send(ctx, awsmsg.SendInput{
		Message: awsmsg.Message{Message: "Hello World!", Topic: "greetings"},
	}); err != nil {
		return fmt.Errorf("sending queue message: %w", err)
	}

	for {
		msgs, err := queueSvc.Receive(ctx, awsmsg.ReceiveInput{})
		if err != nil {
			return fmt.Errorf("receiving queue messages: %w", err)
		}
		if len(msgs) == 0 {
			continue
		}

		for _, msg := range msgs {
			//nolint: forbidigo // need to print command line to show result
			fmt.Printf("received: %s\n", aws.ToString(msg.Body))

			if _, err := queueSvc.Delete(ctx, awsmsg.DeleteInput{
				ReceiptHandle: aws.ToString(msg.ReceiptHandle),
			}); err != nil {
				return fmt.Errorf("deleting queue message: %w", err)
			}
		}

		break
	}

	emailSvc, err := awsmsg.NewEmailService(sesClient, cfg)
	if err != nil {
		return err
	}

	out, err := emailSvc.Send(ctx, awsmsg.SendEmailInput{
		Email: awsmsg.Email{
			To:      []string{"someone@example.com"},
			Subject: "Welcome",
			Body:    "<p>Hello World!</p>",
		},
	})
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	//nolint: forbidigo // need to print command line to show result
	fmt.Printf("email redirected to dev inbox, message id: %s\n", aws.ToString(out.MessageId))

	return nil
}
