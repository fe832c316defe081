package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/zinc-sig/specter/internal/output"
)

// SQSAPI is the part of the SQS client the sink uses.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSSink sends the summary JSON as the body of a queue message.
type SQSSink struct {
	QueueURL string
	Client   SQSAPI
}

// NewSQSSink creates a sink using the default AWS credential chain. An empty
// region keeps the region from the environment or shared config.
func NewSQSSink(ctx context.Context, queueURL, region string) (*SQSSink, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SQSSink{QueueURL: queueURL, Client: sqs.NewFromConfig(cfg)}, nil
}

func (s *SQSSink) Name() string { return "sqs" }

func (s *SQSSink) Publish(ctx context.Context, summary *output.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.QueueURL),
		MessageBody: aws.String(string(data)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"status": {DataType: aws.String("String"), StringValue: aws.String(string(summary.Status))},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", s.QueueURL, err)
	}
	return nil
}
