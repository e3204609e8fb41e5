package web

import (
	"context"

	"github.com/coastalgloss/BookingService/internal/service/bookings/models"
	createBooking "github.com/coastalgloss/BookingService/internal/usecase/create_booking"
	updateStatus "github.com/coastalgloss/BookingService/internal/usecase/update_status"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type UpdateStatusUseCase interface {
	Execute(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error)
}

type BookingService interface {
	ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
