package domain

import (
	"time"

	"github.com/coastalgloss/BookingService/pkg/types"
)

// SlotAvailability is the availability of one slot for one service type
type SlotAvailability struct {
	StartTime types.TimeString
	Available bool
	Reason    string // why the slot is unavailable
}

// DayAvailability summarizes which bookings a date can still accept
type DayAvailability struct {
	Date           time.Time
	DetailSlots    []SlotAvailability
	Coating        SlotAvailability // StartTime is the first slot of the day
	ActiveBookings int
}

// BuildDayAvailability runs CheckAvailability for every slot of the date
func BuildDayAvailability(date time.Time, existing []*Booking) DayAvailability {
	day := DayAvailability{
		Date:        DateOnly(date),
		DetailSlots: make([]SlotAvailability, 0, len(Slots)),
	}

	for _, b := range existing {
		if b != nil && b.IsActive() && SameDate(b.BookingDate, date) {
			day.ActiveBookings++
		}
	}

	for _, slot := range Slots {
		decision := CheckAvailability(date, slot, ServiceMobileDetail, existing)
		day.DetailSlots = append(day.DetailSlots, SlotAvailability{
			StartTime: slot,
			Available: decision.Accepted,
			Reason:    decision.Reason,
		})
	}

	coating := CheckAvailability(date, Slots[0], ServiceCeramicCoating, existing)
	day.Coating = SlotAvailability{
		StartTime: Slots[0],
		Available: coating.Accepted,
		Reason:    coating.Reason,
	}

	return day
}

// FreeDetailSlots returns the detail slots still open
func (d DayAvailability) FreeDetailSlots() []types.TimeString {
	free := make([]types.TimeString, 0, len(d.DetailSlots))
	for _, s := range d.DetailSlots {
		if s.Available {
			free = append(free, s.StartTime)
		}
	}
	return free
}

// IsFullyBooked returns true if neither a detail nor a coating can be added
func (d DayAvailability) IsFullyBooked() bool {
	return len(d.FreeDetailSlots()) == 0 && !d.Coating.Available
}
