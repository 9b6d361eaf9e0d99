package consumerWorker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wb-go/wbf/zlog"

	"urevents/internal/dto"
	"urevents/internal/mailer"
	"urevents/internal/rabbit"
	"urevents/internal/repo"
)

// Reader consumes visitor-submission notifications and mails the site
// administrator about each one.
type Reader struct {
	RMQ    *rabbit.Client
	repo   repo.Repository
	mail   mailer.Config
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *rabbit.Client, repo repo.Repository, mail mailer.Config) *Reader {
	return &Reader{
		RMQ:  rmq,
		repo: repo,
		mail: mail,
		done: make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("notification reader started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			return r.handle(cctx, body)
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("notification reader stopped by context")
	}()
}

// handle processes one queue message. A returned error drops the message;
// the consumer never requeues, so malformed payloads cannot loop.
func (r *Reader) handle(ctx context.Context, body []byte) error {
	var msg dto.NotificationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		zlog.Logger.Error().
			Err(err).
			Msgf("failed to unmarshal notification: %s", string(body))
		return err
	}

	zlog.Logger.Info().
		Str("kind", msg.Kind).
		Int64("id", msg.ID).
		Msg("received notification from queue")

	subject, text := r.compose(ctx, msg)

	if err := mailer.SendAdminNotification(&zlog.Logger, r.mail, subject, text); err != nil {
		zlog.Logger.Warn().
			Err(err).
			Str("kind", msg.Kind).
			Int64("id", msg.ID).
			Msg("failed to send admin notification")
	}

	// Mail failures are not retried: the submission itself is already
	// persisted and visible in the admin area.
	return nil
}

func (r *Reader) compose(ctx context.Context, msg dto.NotificationMessage) (string, string) {
	switch msg.Kind {
	case "registration":
		eventTitle := "an event that has since been removed"
		if event, err := r.repo.GetEventByID(ctx, msg.EventID); err == nil {
			eventTitle = fmt.Sprintf("%q", event.Title)
		}
		subject := "New event registration"
		body := fmt.Sprintf(
			"%s <%s> registered for %s at %s.\n\nSee /admin/registrations for details.",
			msg.Name, msg.Email, eventTitle, msg.CreatedAt.Format("2006-01-02 15:04"),
		)
		return subject, body
	case "contact":
		subject := "New contact message"
		body := fmt.Sprintf(
			"%s <%s> sent a message at %s.\n\nSee /admin/messages for details.",
			msg.Name, msg.Email, msg.CreatedAt.Format("2006-01-02 15:04"),
		)
		return subject, body
	default:
		return "New site activity", fmt.Sprintf("Unrecognized notification kind %q (id %d).", msg.Kind, msg.ID)
	}
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
