package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coastalgloss/BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid booking date")
)

// Request модели

// ListBookingsRequest запрос операторского списка бронирований
type ListBookingsRequest struct {
	Date             *string `json:"date,omitempty"`             // Дата YYYY-MM-DD (опционально)
	Status           *string `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool    `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Date != nil && strings.TrimSpace(*r.Date) != "" {
		date, err := time.Parse(domain.DateFormat, strings.TrimSpace(*r.Date))
		if err != nil {
			return filter, fmt.Errorf("%w: %q", ErrInvalidDate, *r.Date)
		}
		filter.Date = &date
	}

	// Конвертируем статус если указан
	if r.Status != nil && strings.TrimSpace(*r.Status) != "" {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, fmt.Errorf("%w: %q", ErrInvalidStatus, *r.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64  `json:"id"`
	CustomerName      string `json:"customerName"`
	Phone             string `json:"phone"`
	Vehicle           string `json:"vehicle"`
	ServiceType       string `json:"serviceType"`       // "mobile_detail"
	ServiceTypeLabel  string `json:"serviceTypeLabel"`  // "Mobile Detail"
	LocationType      string `json:"locationType"`      // "shop_drop_off"
	LocationTypeLabel string `json:"locationTypeLabel"` // "Shop Drop-Off"
	Address           string `json:"address,omitempty"`
	BookingDate       string `json:"bookingDate"` // "2024-06-01"
	Slot              string `json:"slot"`        // "15:00"
	SlotLabel         string `json:"slotLabel"`   // "3:00 PM"
	Notes             string `json:"notes,omitempty"`
	Status            string `json:"status"`
	StatusLabel       string `json:"statusLabel"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                b.ID,
		CustomerName:      b.CustomerName,
		Phone:             b.Phone,
		Vehicle:           b.Vehicle,
		ServiceType:       string(b.ServiceType),
		ServiceTypeLabel:  b.ServiceType.Label(),
		LocationType:      string(b.LocationType),
		LocationTypeLabel: b.LocationType.Label(),
		Address:           b.Address,
		BookingDate:       b.BookingDate.Format(domain.DateFormat),
		Slot:              b.Slot.String(),
		SlotLabel:         b.Slot.Label(),
		Notes:             b.Notes,
		Status:            string(b.Status),
		StatusLabel:       b.Status.Label(),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
