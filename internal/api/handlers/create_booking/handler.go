package create_booking

import (
	"errors"
	"net/http"

	"github.com/coastalgloss/BookingService/internal/api/handlers"
	createBooking "github.com/coastalgloss/BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBooking     = "booking request is invalid"
	msgSlotNotAvailable   = "the selected slot is not available"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var (
			validationErrs createBooking.ValidationErrors
			conflict       *createBooking.AvailabilityConflictError
		)

		switch {
		case errors.As(err, &validationErrs):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondValidationError(w, msgInvalidBooking, ToFieldIssues(validationErrs))

		case errors.As(err, &conflict):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, slot=%s, reason=%s",
				req.Date, req.Slot, conflict.Reason)
			handlers.RespondConflict(w, conflict.Reason)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBooking)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, slot=%s, error=%v",
				req.Date, req.Slot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, date=%s, slot=%s",
		result.ID, req.Date, result.Slot)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// ToFieldIssues конвертирует ошибки валидации use case в HTTP модель
func ToFieldIssues(errs createBooking.ValidationErrors) []handlers.FieldIssue {
	issues := make([]handlers.FieldIssue, 0, len(errs))
	for _, fe := range errs {
		issues = append(issues, handlers.FieldIssue{Field: fe.Field, Message: fe.Message})
	}
	return issues
}
