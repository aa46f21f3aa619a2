package bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/lagoon-stays/lagoon/internal/resorts"
)

// BookingStatus enumerates booking lifecycle states.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// allowedTransitions defines the booking state machine. Cancelled and
// completed are terminal: no edge leads out of them.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// ParseStatus maps a raw string onto the closed status enumeration.
func ParseStatus(raw string) (BookingStatus, bool) {
	switch BookingStatus(raw) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return BookingStatus(raw), true
	}
	return "", false
}

// CanTransition reports whether moving from one status to another follows
// an allowed edge.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Payment methods accepted at booking time.
const (
	PaymentCreditCard = "credit_card"
	PaymentDebitCard  = "debit_card"
	PaymentPaypal     = "paypal"
)

// Booking is a reservation of a resort for a date range. TotalPrice is
// computed once at creation and never recomputed on mutation.
type Booking struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"userId"`
	ResortID        uuid.UUID     `json:"resortId"`
	CheckInDate     time.Time     `json:"checkInDate"`
	CheckOutDate    time.Time     `json:"checkOutDate"`
	NumberOfGuests  int           `json:"numberOfGuests"`
	TotalPrice      float64       `json:"totalPrice"`
	Status          BookingStatus `json:"status"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	PaymentMethod   string        `json:"paymentMethod"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// UserSnapshot is the slice of a user record exposed on joined booking views.
type UserSnapshot struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// BookingWithResort joins a booking with its resort snapshot.
type BookingWithResort struct {
	Booking
	Resort *resorts.Resort `json:"resort,omitempty"`
}

// BookingDetail joins a booking with its resort and user snapshots.
type BookingDetail struct {
	Booking
	Resort *resorts.Resort `json:"resort,omitempty"`
	User   *UserSnapshot   `json:"user,omitempty"`
}

// CreateInput carries the caller-supplied fields for booking creation.
type CreateInput struct {
	ResortID        uuid.UUID
	CheckInDate     time.Time
	CheckOutDate    time.Time
	NumberOfGuests  int
	SpecialRequests string
	PaymentMethod   string
}
