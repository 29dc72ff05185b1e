package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/pkg/helpers"
	"github.com/oksasatya/portfolio-api/pkg/mailer"
)

// Notifier queues transactional email. A nil Publisher turns it into a no-op
// so the API runs without RabbitMQ.
type Notifier struct {
	Publisher mailer.Publisher
	Logger    logrus.FieldLogger
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.Publisher != nil
}

// Send enqueues job and reports failures to the caller.
func (n *Notifier) Send(ctx context.Context, job mailer.EmailJob) error {
	if !n.Enabled() {
		return nil
	}
	return mailer.Enqueue(ctx, n.Publisher, job)
}

// Notify is Send for mail the request does not depend on; errors are logged.
func (n *Notifier) Notify(ctx context.Context, job mailer.EmailJob) {
	if err := n.Send(ctx, job); err != nil {
		helpers.LogWarn(n.Logger, "enqueue email failed", err, logrus.Fields{"template": job.Template, "to": job.To})
	}
}
