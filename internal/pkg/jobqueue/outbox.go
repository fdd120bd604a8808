package jobqueue

import (
	"context"
	"errors"

	"github.com/treido/treido-go/internal/pkg/mail"
)

// Outbox is a mail.Mailer that queues messages for delivery by the queue workers.
type Outbox struct {
	queue *Queue
}

// NewOutbox registers the email handler on q, delivering through m.
func NewOutbox(q *Queue, m mail.Mailer) *Outbox {
	q.Handle(JobTypeSendEmail, EmailHandler(m))
	return &Outbox{queue: q}
}

// Send enqueues the message. Delivery errors surface in the job, not here.
func (o *Outbox) Send(ctx context.Context, to, subject, body string) error {
	_, err := o.queue.Enqueue(ctx, JobTypeSendEmail, EmailJobPayload{To: to, Subject: subject, Body: body})
	return err
}

// EmailHandler delivers queued emails. Bad payloads and recipients are not retried.
func EmailHandler(m mail.Mailer) Handler {
	return func(ctx context.Context, job *Job) error {
		var p EmailJobPayload
		if err := job.Decode(&p); err != nil {
			return Permanent(err)
		}
		err := m.Send(ctx, p.To, p.Subject, p.Body)
		if errors.Is(err, mail.ErrInvalidRecipient) {
			return Permanent(err)
		}
		return err
	}
}
