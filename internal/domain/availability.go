package domain

import (
	"time"

	"github.com/coastalgloss/BookingService/pkg/types"
)

// Decision is the outcome of an availability check
type Decision struct {
	Accepted bool
	Reason   string // set only when rejected
}

func accept() Decision {
	return Decision{Accepted: true}
}

func reject(reason string) Decision {
	return Decision{Accepted: false, Reason: reason}
}

// CheckAvailability decides whether a new booking may take (date, slot) given the
// bookings already on that date. Bookings on other dates and cancelled bookings
// in existing are ignored. The function never mutates existing.
//
// A ceramic coating consumes the whole day, except that one detail may still
// be scheduled in CoatingDaySlot.
func CheckAvailability(date time.Time, slot types.TimeString, service ServiceType, existing []*Booking) Decision {
	sameDay := make([]*Booking, 0, len(existing))
	for _, b := range existing {
		if b == nil || !b.IsActive() || !SameDate(b.BookingDate, date) {
			continue
		}
		sameDay = append(sameDay, b)
	}

	coatingBooked := false
	for _, b := range sameDay {
		if b.IsCoating() {
			coatingBooked = true
			break
		}
	}

	if service == ServiceCeramicCoating {
		if coatingBooked {
			return reject(ReasonCoatingAlreadyBooked)
		}
		return accept()
	}

	for _, b := range sameDay {
		if b.ServiceType == service && b.Slot == slot {
			return reject(ReasonSlotAlreadyBooked)
		}
	}

	if coatingBooked && slot != CoatingDaySlot {
		return reject(ReasonCoatingDayOnly)
	}

	return accept()
}

// SameDate reports whether two times fall on the same calendar date
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
