package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/coastalgloss/BookingService/internal/api/handlers"
	getAvailableSlots "github.com/coastalgloss/BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate = "date is required"
	msgInvalidDate = "invalid date format, expected YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: dateStr})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability - Failed to get availability: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved successfully: date=%s, active_bookings=%d, fully_booked=%t",
		dateStr, result.ActiveBookings, result.FullyBooked)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
