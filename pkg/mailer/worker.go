package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	mailtpl "github.com/oksasatya/portfolio-api/pkg/mailer/templates"
)

// Message is a fully rendered email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Outcome tells the queue consumer what to do with a delivery.
type Outcome int

const (
	Ack Outcome = iota
	Drop
	Requeue
)

// Worker renders queued jobs and delivers them through a Sender.
type Worker struct {
	Sender Sender
}

// Render turns a job into a Message, expanding its template if it has one.
func Render(job EmailJob) (Message, error) {
	msg := Message{To: job.To, ReplyTo: job.ReplyTo, Subject: job.Subject, Text: job.Text, HTML: job.HTML}
	if job.Template == "" {
		return msg, nil
	}
	data := job.Data
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["RecipientEmail"]; !ok {
		data["RecipientEmail"] = job.To
	}
	s, t, h, err := mailtpl.Render(job.Template, data)
	if err != nil {
		return Message{}, err
	}
	msg.Subject, msg.Text, msg.HTML = s, t, h
	return msg, nil
}

// Handle processes one raw queue body. Undecodable or unrenderable jobs are
// dropped; delivery failures are requeued.
func (w *Worker) Handle(ctx context.Context, body []byte) (Outcome, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("bad message: %w", err)
	}
	if err := job.Validate(); err != nil {
		return Drop, err
	}
	msg, err := Render(job)
	if err != nil {
		return Drop, fmt.Errorf("render %s: %w", job.Template, err)
	}
	if err := w.Sender.Send(ctx, msg); err != nil {
		return Requeue, fmt.Errorf("send: %w", err)
	}
	return Ack, nil
}
