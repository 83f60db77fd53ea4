package notification

import (
	"context"
	"fmt"

	mailjet "github.com/mailjet/mailjet-apiv3-go"

	"tourbooking/pkg/config"
)

type MailjetSender struct {
	client *mailjet.Client
	cfg    config.MailjetConfig
}

func NewMailjetSender(cfg config.MailjetConfig) *MailjetSender {
	return &MailjetSender{
		client: mailjet.NewMailjetClient(cfg.APIKey, cfg.APISecret),
		cfg:    cfg,
	}
}

func (s *MailjetSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: s.cfg.SenderEmail,
					Name:  s.cfg.SenderName,
				},
				To: &mailjet.RecipientsV31{
					{Email: msg.ToEmail, Name: msg.ToName},
				},
				TemplateID:       msg.TemplateID,
				TemplateLanguage: true,
				Subject:          msg.Subject,
				Variables:        msg.Variables,
			},
		},
	}

	if _, err := s.client.SendMailV31(&messages); err != nil {
		return fmt.Errorf("mailjet send to %s: %w", msg.ToEmail, err)
	}
	return nil
}

var _ Sender = (*MailjetSender)(nil)
