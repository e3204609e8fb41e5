package update_booking_status

import (
	"github.com/coastalgloss/BookingService/internal/service/bookings/models"
	updateStatus "github.com/coastalgloss/BookingService/internal/usecase/update_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // "Confirmed", "Cancelled" или "Completed"
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	Booking        *models.BookingResponse `json:"booking"`
	PreviousStatus string                  `json:"previousStatus"`
	Notification   NotificationResponse    `json:"notification"`
}

// NotificationResponse результат отправки SMS клиенту
type NotificationResponse struct {
	Status  string `json:"status"` // sent, not_configured, failed, skipped
	Detail  string `json:"detail,omitempty"`
	Message string `json:"message,omitempty"` // текст SMS для ручной отправки
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(bookingID int64) *updateStatus.Request {
	return &updateStatus.Request{
		BookingID: bookingID,
		Status:    r.Status,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		Booking:        models.FromDomainBooking(resp.Booking),
		PreviousStatus: string(resp.PreviousStatus),
		Notification: NotificationResponse{
			Status:  string(resp.Notification.Status),
			Detail:  resp.Notification.Detail,
			Message: resp.Notification.Message,
		},
	}
}
