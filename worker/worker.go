// Package worker consumes background jobs from the queue: thumbnail
// generation for uploaded images and welcome notifications for new users.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"filesmanager-backend/models"
	"filesmanager-backend/queue"
	"filesmanager-backend/service"
	"filesmanager-backend/storage"
)

// Worker runs the job consumers on a watermill router. Jobs that still fail
// after the retry budget are logged and dropped; they never surface back to
// the request that enqueued them.
type Worker struct {
	router *message.Router
	files  service.FileRepository
	users  service.UserRepository
	store  storage.Storage
	log    *zap.SugaredLogger
}

// New creates a worker consuming from the given subscriber.
func New(sub message.Subscriber, files service.FileRepository, users service.UserRepository, store storage.Storage, log *zap.SugaredLogger, wmLogger watermill.LoggerAdapter) (*Worker, error) {
	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("creating router: %w", err)
	}

	w := &Worker{
		router: router,
		files:  files,
		users:  users,
		store:  store,
		log:    log,
	}

	retry := middleware.Retry{
		MaxRetries:      3,
		InitialInterval: time.Second,
		Multiplier:      2,
		Logger:          wmLogger,
	}
	// dropOnFailure is outermost so it sees the error only after the retry
	// budget is exhausted.
	router.AddMiddleware(w.dropOnFailure, retry.Middleware, middleware.Recoverer)

	router.AddNoPublisherHandler("thumbnail_generator", queue.TopicThumbnails, sub, w.handleThumbnail)
	router.AddNoPublisherHandler("welcome_notifier", queue.TopicWelcome, sub, w.handleWelcome)

	return w, nil
}

// Run consumes jobs until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	return w.router.Run(ctx)
}

// Close stops the router.
func (w *Worker) Close() error {
	return w.router.Close()
}

// dropOnFailure acks a message whose handler failed permanently, logging the
// failure. Job failure must never block the queue or affect the records that
// triggered the job.
func (w *Worker) dropOnFailure(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		msgs, err := h(msg)
		if err != nil {
			w.log.Errorw("job failed permanently, dropping", "message_id", msg.UUID, "error", err)
			return nil, nil
		}
		return msgs, nil
	}
}

func (w *Worker) handleThumbnail(msg *message.Message) error {
	var job models.ThumbnailJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		return fmt.Errorf("decoding thumbnail job: %w", err)
	}
	if job.FileID == uuid.Nil {
		return errors.New("missing fileId")
	}

	return w.generateThumbnails(msg.Context(), job.FileID)
}

func (w *Worker) handleWelcome(msg *message.Message) error {
	var job models.WelcomeJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		return fmt.Errorf("decoding welcome job: %w", err)
	}
	if job.UserID == uuid.Nil {
		return errors.New("missing userId")
	}

	user, err := w.users.GetByID(msg.Context(), job.UserID)
	if err != nil {
		return fmt.Errorf("loading user %s: %w", job.UserID, err)
	}

	// Stand-in for a real mailer integration.
	w.log.Infof("Welcome %s!", user.Email)
	return nil
}
