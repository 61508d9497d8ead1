// Package mailqueue hands email work to an external worker over a Redis
// list. The API process never talks SMTP itself; a failed enqueue is
// reported to the caller as a soft flag and never rolls back the
// registration that triggered it.
package mailqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	JobTypeConfirmation = "registration_confirmation"
	JobTypeReminder     = "registration_reminder"
)

// Job is the payload pushed onto the mail queue.
type Job struct {
	Type            string    `json:"type"`
	RecipientEmail  string    `json:"recipient_email"`
	RecipientName   string    `json:"recipient_name"`
	ConferenceSlug  string    `json:"conference_slug"`
	Token           string    `json:"token"`
	RegistrationIDs []uint    `json:"registration_ids"`
	EnqueuedAt      time.Time `json:"enqueued_at"`
}

type Queue struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

func New(client *redis.Client, key string, timeout time.Duration) *Queue {
	if key == "" {
		key = "mailer:jobs"
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return &Queue{
		client:  client,
		key:     key,
		timeout: timeout,
	}
}

// Enqueue pushes the job, bounded by the queue's timeout so a slow or dead
// Redis can never hold a request open.
func (q *Queue) Enqueue(ctx context.Context, job Job) error {
	if q == nil || q.client == nil {
		return fmt.Errorf("mail queue is not configured")
	}

	job.EnqueuedAt = time.Now().UTC()

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	if err = q.client.RPush(ctx, q.key, payload).Err(); err != nil {
		zap.L().Warn("mail job enqueue failed",
			zap.String("type", job.Type),
			zap.String("recipient", job.RecipientEmail),
			zap.Error(err))

		return fmt.Errorf("q.client.RPush -> %w", err)
	}

	return nil
}
