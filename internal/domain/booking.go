package domain

import (
	"time"

	"github.com/coastalgloss/BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusNew       BookingStatus = "new"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ServiceType is the kind of work booked
type ServiceType string

const (
	// ServiceMobileDetail is the short, slot-exclusive detail job
	ServiceMobileDetail ServiceType = "mobile_detail"
	// ServiceCeramicCoating takes the whole day except the last slot
	ServiceCeramicCoating ServiceType = "ceramic_coating"
)

// LocationType is where the work is done
type LocationType string

const (
	LocationMobile      LocationType = "mobile"
	LocationShopDropOff LocationType = "shop_drop_off"
)

// Booking represents a customer service request
type Booking struct {
	ID           int64
	CustomerName string
	Phone        string // digits with an optional leading '+'
	Vehicle      string
	ServiceType  ServiceType
	LocationType LocationType
	Address      string // required only for LocationMobile
	BookingDate  time.Time
	Slot         types.TimeString
	Notes        string
	Status       BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds its slot.
// Completed bookings keep blocking their slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if no further status transition is defined
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// IsCoating returns true for ceramic coating bookings
func (b *Booking) IsCoating() bool {
	return b.ServiceType == ServiceCeramicCoating
}

// BookingsFilter is the filter of the operator booking list
type BookingsFilter struct {
	Date             *time.Time     // nil - all dates
	Status           *BookingStatus // nil - any status
	IncludeCancelled bool           // cancelled bookings are hidden unless Status asks for them
}
