package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the booking does not exist.
var ErrNotFound = errors.New("bookings: not found")

// Repository provides PostgreSQL backed persistence for bookings.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const bookingColumns = `id, user_id, resort_id, check_in_date, check_out_date, number_of_guests, total_price, status, special_requests, payment_method, created_at, updated_at`

// Insert persists a new booking as a single atomic write and assigns its
// identity and timestamps.
func (r *Repository) Insert(ctx context.Context, booking Booking) (Booking, error) {
	const query = `
		INSERT INTO bookings (id, user_id, resort_id, check_in_date, check_out_date, number_of_guests, total_price, status, special_requests, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at`

	booking.ID = uuid.New()
	err := r.pool.QueryRow(ctx, query,
		booking.ID,
		booking.UserID,
		booking.ResortID,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.NumberOfGuests,
		booking.TotalPrice,
		string(booking.Status),
		booking.SpecialRequests,
		booking.PaymentMethod,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return Booking{}, err
	}
	return booking, nil
}

// FindByID fetches a booking by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings WHERE id = $1"
	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, err
	}
	return booking, nil
}

// UpdateStatus sets a booking's status and returns the updated row.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) (Booking, error) {
	query := `
		UPDATE bookings SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bookingColumns
	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, err
	}
	return booking, nil
}

// ListByUser returns all bookings owned by a user, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings WHERE user_id = $1 ORDER BY created_at DESC"
	return r.list(ctx, query, userID)
}

// ListAll returns every booking, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings ORDER BY created_at DESC"
	return r.list(ctx, query)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, booking)
	}
	return out, rows.Err()
}

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	var status string
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ResortID,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.NumberOfGuests,
		&b.TotalPrice,
		&status,
		&b.SpecialRequests,
		&b.PaymentMethod,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return Booking{}, err
	}
	b.Status = BookingStatus(status)
	return b, nil
}
