package bookings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lagoon-stays/lagoon/internal/pricing"
	"github.com/lagoon-stays/lagoon/internal/rbac"
	"github.com/lagoon-stays/lagoon/internal/resorts"
	"github.com/lagoon-stays/lagoon/internal/users"
)

var (
	// ErrResortNotFound indicates the booked resort does not exist.
	ErrResortNotFound = errors.New("bookings: resort not found")
	// ErrCapacityExceeded indicates the guest count exceeds the resort's limit.
	ErrCapacityExceeded = errors.New("bookings: capacity exceeded")
	// ErrInvalidDateRange indicates check-out is not after check-in.
	ErrInvalidDateRange = errors.New("bookings: check-out date must be after check-in date")
	// ErrInvalidStatus indicates a status outside the enumeration.
	ErrInvalidStatus = errors.New("bookings: invalid status")
	// ErrInvalidTransition indicates a status change along no allowed edge.
	ErrInvalidTransition = errors.New("bookings: invalid status transition")
)

// Store defines booking persistence consumed by the service.
type Store interface {
	Insert(ctx context.Context, booking Booking) (Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) (Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	ListAll(ctx context.Context) ([]Booking, error)
}

// ResortFinder resolves resort snapshots. Resorts are read-only from the
// booking engine's perspective.
type ResortFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (resorts.Resort, error)
}

// UserFinder resolves user snapshots for joined views.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (users.User, error)
	List(ctx context.Context) ([]users.User, error)
}

// Notifier enqueues follow-up work after a booking is created. Failures are
// logged, never surfaced to the caller.
type Notifier interface {
	BookingCreated(ctx context.Context, bookingID uuid.UUID) error
}

// Service orchestrates the booking lifecycle: creation with capacity and
// pricing checks, status transitions, and cancellation. Every operation
// applies the authorization guard before touching the store.
type Service struct {
	store    Store
	resorts  ResortFinder
	users    UserFinder
	notifier Notifier
	logger   *slog.Logger
}

// NewService constructs a Service. The notifier may be nil.
func NewService(store Store, resortFinder ResortFinder, userFinder UserFinder, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		resorts:  resortFinder,
		users:    userFinder,
		notifier: notifier,
		logger:   logger,
	}
}

// Create validates capacity and dates against the resort snapshot, computes
// the total price, and persists a pending booking owned by the principal.
//
// Two concurrent creations read independent resort snapshots; the guest
// count is checked per request, not serialized across requests.
func (s *Service) Create(ctx context.Context, p *rbac.Principal, input CreateInput) (Booking, error) {
	if err := rbac.Authorize(p, rbac.PermCreateBooking, nil); err != nil {
		return Booking{}, err
	}

	resort, err := s.resorts.FindByID(ctx, input.ResortID)
	if err != nil {
		if errors.Is(err, resorts.ErrNotFound) {
			return Booking{}, ErrResortNotFound
		}
		return Booking{}, err
	}
	if input.NumberOfGuests > resort.MaxGuests {
		return Booking{}, fmt.Errorf("%w: maximum guests allowed: %d", ErrCapacityExceeded, resort.MaxGuests)
	}

	quote, err := pricing.PriceFor(input.CheckInDate, input.CheckOutDate, resort.PricePerNight)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidRange) {
			return Booking{}, ErrInvalidDateRange
		}
		return Booking{}, err
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = PaymentCreditCard
	}

	booking, err := s.store.Insert(ctx, Booking{
		UserID:          p.UserID,
		ResortID:        input.ResortID,
		CheckInDate:     input.CheckInDate,
		CheckOutDate:    input.CheckOutDate,
		NumberOfGuests:  input.NumberOfGuests,
		TotalPrice:      quote.Total,
		Status:          StatusPending,
		SpecialRequests: input.SpecialRequests,
		PaymentMethod:   paymentMethod,
	})
	if err != nil {
		return Booking{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.BookingCreated(ctx, booking.ID); err != nil && s.logger != nil {
			s.logger.Warn("enqueue booking confirmation",
				slog.String("booking_id", booking.ID.String()),
				slog.Any("error", err))
		}
	}
	return booking, nil
}

// GetOwn returns the principal's bookings joined with resort snapshots.
func (s *Service) GetOwn(ctx context.Context, p *rbac.Principal) ([]BookingWithResort, error) {
	if err := rbac.Authorize(p, rbac.PermViewOwnBooking, nil); err != nil {
		return nil, err
	}
	list, err := s.store.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	snapshots := make(map[uuid.UUID]*resorts.Resort)
	out := make([]BookingWithResort, len(list))
	for i, booking := range list {
		snapshot, ok := snapshots[booking.ResortID]
		if !ok {
			resort, err := s.resorts.FindByID(ctx, booking.ResortID)
			if err == nil {
				snapshot = &resort
			}
			snapshots[booking.ResortID] = snapshot
		}
		out[i] = BookingWithResort{Booking: booking, Resort: snapshot}
	}
	return out, nil
}

// GetByID returns a single booking with its snapshots. Only the owner or an
// admin-level principal may read it.
func (s *Service) GetByID(ctx context.Context, p *rbac.Principal, id uuid.UUID) (BookingDetail, error) {
	booking, err := s.store.FindByID(ctx, id)
	if err != nil {
		return BookingDetail{}, err
	}
	check := rbac.OwnerCheck{OwnerID: booking.UserID, AllowAdminOverride: true}
	if err := rbac.Authorize(p, rbac.PermViewOwnBooking, &check); err != nil {
		return BookingDetail{}, err
	}
	return s.detail(ctx, booking), nil
}

// SetStatus moves a booking along the state machine. The target status is
// validated before the store is consulted; the transition is validated
// against the booking's current status.
func (s *Service) SetStatus(ctx context.Context, p *rbac.Principal, id uuid.UUID, raw string) (Booking, error) {
	if err := rbac.Authorize(p, rbac.PermUpdateBookingStatus, nil); err != nil {
		return Booking{}, err
	}
	next, ok := ParseStatus(raw)
	if !ok {
		return Booking{}, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	booking, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if !CanTransition(booking.Status, next) {
		return Booking{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, booking.Status, next)
	}
	return s.store.UpdateStatus(ctx, id, next)
}

// Cancel sets a booking to cancelled. Cancelling an already-cancelled
// booking succeeds and is a no-op in effect.
func (s *Service) Cancel(ctx context.Context, p *rbac.Principal, id uuid.UUID) (Booking, error) {
	booking, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	check := rbac.OwnerCheck{OwnerID: booking.UserID, AllowAdminOverride: true}
	if err := rbac.Authorize(p, rbac.PermCancelOwnBooking, &check); err != nil {
		return Booking{}, err
	}
	return s.store.UpdateStatus(ctx, id, StatusCancelled)
}

// ListAll returns every booking joined with user and resort snapshots.
func (s *Service) ListAll(ctx context.Context, p *rbac.Principal) ([]BookingDetail, error) {
	if err := rbac.Authorize(p, rbac.PermViewAllBookings, nil); err != nil {
		return nil, err
	}
	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var (
		userSnapshots   map[uuid.UUID]UserSnapshot
		resortSnapshots map[uuid.UUID]resorts.Resort
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		all, err := s.users.List(gctx)
		if err != nil {
			return err
		}
		userSnapshots = make(map[uuid.UUID]UserSnapshot, len(all))
		for _, u := range all {
			userSnapshots[u.ID] = UserSnapshot{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		return nil
	})
	g.Go(func() error {
		resortSnapshots = make(map[uuid.UUID]resorts.Resort)
		for _, booking := range list {
			if _, ok := resortSnapshots[booking.ResortID]; ok {
				continue
			}
			resort, err := s.resorts.FindByID(gctx, booking.ResortID)
			if err != nil {
				if errors.Is(err, resorts.ErrNotFound) {
					continue
				}
				return err
			}
			resortSnapshots[booking.ResortID] = resort
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]BookingDetail, len(list))
	for i, booking := range list {
		detail := BookingDetail{Booking: booking}
		if resort, ok := resortSnapshots[booking.ResortID]; ok {
			detail.Resort = &resort
		}
		if user, ok := userSnapshots[booking.UserID]; ok {
			detail.User = &user
		}
		out[i] = detail
	}
	return out, nil
}

func (s *Service) detail(ctx context.Context, booking Booking) BookingDetail {
	detail := BookingDetail{Booking: booking}
	if resort, err := s.resorts.FindByID(ctx, booking.ResortID); err == nil {
		detail.Resort = &resort
	}
	if user, err := s.users.FindByID(ctx, booking.UserID); err == nil {
		detail.User = &UserSnapshot{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	return detail
}
