package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier delivers emails through the Resend API.
type ResendNotifier struct {
	client *resend.Client
	from   string
}

func NewResendNotifier(apiKey, from string) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (n *ResendNotifier) Send(ctx context.Context, email Email) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	}

	_, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}

var _ Notifier = (*ResendNotifier)(nil)
