package create_booking

import (
	"time"

	"github.com/coastalgloss/BookingService/internal/domain"
	createBooking "github.com/coastalgloss/BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Vehicle      string `json:"vehicle"`
	ServiceType  string `json:"serviceType"`  // "Mobile Detail" или "mobile_detail"
	LocationType string `json:"locationType"` // "Mobile" или "Shop Drop-Off"
	Address      string `json:"address,omitempty"`
	Date         string `json:"date"` // "2024-06-01"
	Slot         string `json:"slot"` // "09:00" или "9:00 AM"
	Notes        string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64  `json:"id"`
	CustomerName      string `json:"customerName"`
	Phone             string `json:"phone"`
	Vehicle           string `json:"vehicle"`
	ServiceType       string `json:"serviceType"`
	ServiceTypeLabel  string `json:"serviceTypeLabel"`
	LocationType      string `json:"locationType"`
	LocationTypeLabel string `json:"locationTypeLabel"`
	Address           string `json:"address,omitempty"`
	BookingDate       string `json:"bookingDate"`
	Slot              string `json:"slot"`
	SlotLabel         string `json:"slotLabel"`
	Notes             string `json:"notes,omitempty"`
	Status            string `json:"status"`
	CreatedAt         string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Vehicle:      r.Vehicle,
		ServiceType:  r.ServiceType,
		LocationType: r.LocationType,
		Address:      r.Address,
		Date:         r.Date,
		Slot:         r.Slot,
		Notes:        r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		CustomerName:      resp.CustomerName,
		Phone:             resp.Phone,
		Vehicle:           resp.Vehicle,
		ServiceType:       string(resp.ServiceType),
		ServiceTypeLabel:  resp.ServiceType.Label(),
		LocationType:      string(resp.LocationType),
		LocationTypeLabel: resp.LocationType.Label(),
		Address:           resp.Address,
		BookingDate:       resp.BookingDate.Format(domain.DateFormat),
		Slot:              resp.Slot.String(),
		SlotLabel:         resp.Slot.Label(),
		Notes:             resp.Notes,
		Status:            string(resp.Status),
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
}
