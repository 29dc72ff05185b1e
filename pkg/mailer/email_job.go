package mailer

import (
	"context"
	"errors"
	"strings"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or a literal Subject/Text/HTML body is set.
type EmailJob struct {
	To       string         `json:"to"`
	ReplyTo  string         `json:"reply_to,omitempty"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // welcome, role_changed, contact
	Data     map[string]any `json:"data,omitempty"`
}

var ErrNoRecipient = errors.New("email job has no recipient")

func (j *EmailJob) Validate() error {
	if strings.TrimSpace(j.To) == "" {
		return ErrNoRecipient
	}
	if j.Template == "" && j.Text == "" && j.HTML == "" {
		return errors.New("email job has neither template nor body")
	}
	return nil
}

// Publisher puts a job on the email queue. *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Enqueue validates job and hands it to p.
func Enqueue(ctx context.Context, p Publisher, job EmailJob) error {
	if err := job.Validate(); err != nil {
		return err
	}
	return p.PublishJSON(ctx, job)
}
