package domain

import "github.com/coastalgloss/BookingService/pkg/types"

// Fixed appointment start times
const (
	SlotMorning   types.TimeString = "09:00"
	SlotMidday    types.TimeString = "12:00"
	SlotAfternoon types.TimeString = "15:00"
)

// Slots is the ordered set of bookable start times
var Slots = []types.TimeString{SlotMorning, SlotMidday, SlotAfternoon}

// CoatingDaySlot is the only slot a detail can take on a coating day
const CoatingDaySlot = SlotAfternoon

// ServiceTypes lists the service types in display order
var ServiceTypes = []ServiceType{ServiceMobileDetail, ServiceCeramicCoating}

// LocationTypes lists the location types in display order
var LocationTypes = []LocationType{LocationMobile, LocationShopDropOff}

// Business validation constants
const (
	MaxNameLength    = 120
	MaxPhoneLength   = 20
	MaxVehicleLength = 120
	MaxAddressLength = 250
	MaxNotesLength   = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Availability rejection reasons
const (
	ReasonCoatingAlreadyBooked = "a ceramic coating is already booked for that date"
	ReasonSlotAlreadyBooked    = "slot already booked"
	ReasonCoatingDayOnly       = "only the 3:00 PM slot is available on a coating day"
)

// IsValidSlot reports whether slot belongs to the fixed slot set
func IsValidSlot(slot types.TimeString) bool {
	for _, s := range Slots {
		if s == slot {
			return true
		}
	}
	return false
}
