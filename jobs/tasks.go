package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lagoon-stays/lagoon/internal/bookings"
	jobmetrics "github.com/lagoon-stays/lagoon/internal/jobs"
	"github.com/lagoon-stays/lagoon/internal/resorts"
	"github.com/lagoon-stays/lagoon/internal/users"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskBookingConfirmation is the task type for booking confirmation mail.
	TaskBookingConfirmation = "booking:confirmation"
)

// BookingConfirmationPayload references the booking to confirm. The worker
// resolves the booking, guest, and resort at processing time so the payload
// stays small and never goes stale.
type BookingConfirmationPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
}

// NewBookingConfirmationTask constructs an Asynq task.
func NewBookingConfirmationTask(payload BookingConfirmationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookingConfirmation, data, asynq.Queue(QueueDefault)), nil
}

// NewBookingConfirmationHandler builds the handler processing
// TaskBookingConfirmation tasks.
func NewBookingConfirmationHandler(pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	bookingRepo := bookings.NewRepository(pool)
	userRepo := users.NewRepository(pool)
	resortRepo := resorts.NewRepository(pool)

	process := func(ctx context.Context, t *asynq.Task) error {
		var payload BookingConfirmationPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		booking, err := bookingRepo.FindByID(ctx, payload.BookingID)
		if err != nil {
			if errors.Is(err, bookings.ErrNotFound) {
				return asynq.SkipRetry
			}
			return err
		}
		guest, err := userRepo.FindByID(ctx, booking.UserID)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				return asynq.SkipRetry
			}
			return err
		}
		resort, err := resortRepo.FindByID(ctx, booking.ResortID)
		if err != nil {
			if errors.Is(err, resorts.ErrNotFound) {
				return asynq.SkipRetry
			}
			return err
		}

		// Placeholder: integrate with SMTP once an email provider is wired.
		fmt.Printf("[jobs] booking confirmation to=%s resort=%s total=%.2f\n",
			guest.Email, resort.Name, booking.TotalPrice)
		if logger != nil {
			logger.Info("booking confirmation processed",
				slog.String("booking_id", booking.ID.String()),
				slog.String("email", guest.Email))
		}
		return nil
	}

	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track(TaskBookingConfirmation)
		return tracker.End(process(ctx, t))
	}
}
