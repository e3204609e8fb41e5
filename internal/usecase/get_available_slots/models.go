package get_available_slots

import (
	"time"

	"github.com/coastalgloss/BookingService/internal/domain"
)

// Request модель запроса доступности на дату
type Request struct {
	Date string // Дата в формате YYYY-MM-DD
}

// Response доступность слотов на дату
type Response struct {
	Date           time.Time
	DetailSlots    []domain.SlotAvailability // по одному элементу на каждый слот, в порядке дня
	Coating        domain.SlotAvailability   // можно ли добавить керамическое покрытие
	ActiveBookings int
	FullyBooked    bool
}
