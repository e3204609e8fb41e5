package update_status

import (
	"github.com/coastalgloss/BookingService/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	BookingID int64
	Status    string // код или название статуса ("confirmed", "Confirmed")
}

// Response обновленное бронирование и результат уведомления клиента
// Notification информационный: ошибка отправки не отменяет смену статуса
type Response struct {
	Booking        *domain.Booking
	PreviousStatus domain.BookingStatus
	Notification   domain.Notification
}
