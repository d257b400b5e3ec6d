package mailer

import (
	"context"
	"errors"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"pharmaflux/internal/config"
)

type SES struct {
	client *ses.Client
	sender string
}

// NewSES builds an SES-backed mailer. Returns (nil, nil) when the mailer
// is not configured so callers can fall back to Noop.
func NewSES(ctx context.Context, cfg config.MailerConfig) (*SES, error) {
	region := strings.TrimSpace(cfg.Region)
	sender := strings.TrimSpace(cfg.Sender)
	if region == "" || sender == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SES{client: ses.NewFromConfig(awsCfg), sender: sender}, nil
}

func (s *SES) Send(ctx context.Context, to []string, subject, body string) error {
	if s == nil || s.client == nil {
		return errors.New("ses mailer not configured")
	}
	recipients := make([]string, 0, len(to))
	for _, addr := range to {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			recipients = append(recipients, addr)
		}
	}
	if len(recipients) == 0 {
		return errors.New("no recipients")
	}

	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      &s.sender,
		Destination: &types.Destination{ToAddresses: recipients},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body:    &types.Body{Text: &types.Content{Data: &body}},
		},
	})
	return err
}
