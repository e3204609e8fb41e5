package get_available_slots

import (
	"github.com/coastalgloss/BookingService/internal/domain"
	getAvailableSlots "github.com/coastalgloss/BookingService/internal/usecase/get_available_slots"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date           string          `json:"date"`
	DetailSlots    []AvailableSlot `json:"detailSlots"`
	Coating        AvailableSlot   `json:"ceramicCoating"`
	ActiveBookings int             `json:"activeBookings"`
	FullyBooked    bool            `json:"fullyBooked"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"` // "09:00"
	Label     string `json:"label"`     // "9:00 AM"
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	slots := make([]AvailableSlot, len(resp.DetailSlots))
	for i, slot := range resp.DetailSlots {
		slots[i] = toAvailableSlot(slot)
	}

	return &AvailabilityResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		DetailSlots:    slots,
		Coating:        toAvailableSlot(resp.Coating),
		ActiveBookings: resp.ActiveBookings,
		FullyBooked:    resp.FullyBooked,
	}
}

func toAvailableSlot(slot domain.SlotAvailability) AvailableSlot {
	return AvailableSlot{
		StartTime: slot.StartTime.String(),
		Label:     slot.StartTime.Label(),
		Available: slot.Available,
		Reason:    slot.Reason,
	}
}
