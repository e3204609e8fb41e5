package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/coastalgloss/BookingService/internal/service/bookings/models"
	createBooking "github.com/coastalgloss/BookingService/internal/usecase/create_booking"
	updateStatus "github.com/coastalgloss/BookingService/internal/usecase/update_status"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	tmplForm     = "form.html"
	tmplReceived = "received.html"
	tmplAdmin    = "admin.html"
	tmplStatus   = "status.html"

	maxFormBytes = 64 << 10

	msgInvalidForm       = "We could not read the form, please try again."
	msgFixErrors         = "Please correct the highlighted fields."
	msgSomethingWrong    = "Something went wrong, please try again later."
	msgInvalidBookingID  = "Invalid booking id."
	msgNotFound          = "Booking not found."
	msgInvalidStatus     = "Status must be one of Confirmed, Cancelled, Completed."
	msgInvalidTransition = "This booking's status can no longer be changed."
)

// Handler HTML страницы: форма бронирования и панель оператора
type Handler struct {
	createUseCase CreateBookingUseCase
	statusUseCase UpdateStatusUseCase
	service       BookingService
	title         string
	logger        Logger
}

func NewHandler(
	createUseCase CreateBookingUseCase,
	statusUseCase UpdateStatusUseCase,
	service BookingService,
	title string,
	logger Logger,
) *Handler {
	return &Handler{
		createUseCase: createUseCase,
		statusUseCase: statusUseCase,
		service:       service,
		title:         title,
		logger:        logger,
	}
}

// Form GET /
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, tmplForm, newFormPage(h.title, formValues{}))
}

// Submit POST /
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("POST / - Invalid form: %v", err)
		page := newFormPage(h.title, formValues{})
		page.Message = msgInvalidForm
		h.render(w, http.StatusBadRequest, tmplForm, page)
		return
	}

	values := formValuesFromRequest(r)

	result, err := h.createUseCase.Execute(r.Context(), values.toUseCaseRequest())
	if err != nil {
		page := newFormPage(h.title, values)

		var (
			validationErrs createBooking.ValidationErrors
			conflict       *createBooking.AvailabilityConflictError
		)

		switch {
		case errors.As(err, &validationErrs):
			h.logger.Warn("POST / - Validation failed: %v", err)
			page.Message = msgFixErrors
			for _, fe := range validationErrs {
				page.Errors[fe.Field] = fe.Message
			}
			h.render(w, http.StatusBadRequest, tmplForm, page)

		case errors.As(err, &conflict):
			h.logger.Warn("POST / - Slot not available: date=%s, slot=%s, reason=%s",
				values.Date, values.Time, conflict.Reason)
			page.Message = "Sorry, " + conflict.Reason + ". Please choose another date or time."
			h.render(w, http.StatusConflict, tmplForm, page)

		default:
			h.logger.Error("POST / - Failed to create booking: error=%v", err)
			page.Message = msgSomethingWrong
			h.render(w, http.StatusInternalServerError, tmplForm, page)
		}
		return
	}

	h.logger.Info("POST / - Booking received: booking_id=%d, date=%s, slot=%s",
		result.ID, values.Date, result.Slot)
	h.render(w, http.StatusOK, tmplReceived, receivedPage{
		Title:   h.title,
		Booking: bookingFromCreate(result),
	})
}

// Admin GET /admin
// Неотменённые бронирования по дате и слоту
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListBookings(r.Context(), &models.ListBookingsRequest{})
	if err != nil {
		h.logger.Error("GET /admin - Failed to list bookings: error=%v", err)
		h.render(w, http.StatusInternalServerError, tmplStatus, statusPage{Title: h.title, Error: msgSomethingWrong})
		return
	}

	page := adminPage{
		Title: h.title,
		Rows:  make([]adminRow, 0, len(result.Bookings)),
	}
	for _, b := range result.Bookings {
		page.Rows = append(page.Rows, adminRow{Booking: b, Actions: actionsFor(b.Status)})
	}

	h.render(w, http.StatusOK, tmplAdmin, page)
}

// UpdateStatus POST /admin/bookings/{bookingId}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	page := statusPage{Title: h.title}

	bookingIDStr := mux.Vars(r)["bookingId"]
	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /admin/bookings/{id}/status - Invalid booking ID: %q", bookingIDStr)
		page.Error = msgInvalidBookingID
		h.render(w, http.StatusBadRequest, tmplStatus, page)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/status - Invalid form: %v", err)
		page.Error = msgInvalidStatus
		h.render(w, http.StatusBadRequest, tmplStatus, page)
		return
	}
	status := r.PostFormValue("status")

	result, err := h.statusUseCase.Execute(r.Context(), &updateStatus.Request{BookingID: bookingID, Status: status})
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, updateStatus.ErrInvalidStatus), errors.Is(err, updateStatus.ErrInvalidInput):
			code, page.Error = http.StatusBadRequest, msgInvalidStatus
		case errors.Is(err, updateStatus.ErrBookingNotFound):
			code, page.Error = http.StatusNotFound, msgNotFound
		case errors.Is(err, updateStatus.ErrInvalidTransition):
			code, page.Error = http.StatusConflict, msgInvalidTransition
		default:
			page.Error = msgSomethingWrong
		}

		if code == http.StatusInternalServerError {
			h.logger.Error("POST /admin/bookings/{id}/status - Failed to update status: booking_id=%d, error=%v",
				bookingID, err)
		} else {
			h.logger.Warn("POST /admin/bookings/{id}/status - Rejected: booking_id=%d, status=%q, error=%v",
				bookingID, status, err)
		}
		h.render(w, code, tmplStatus, page)
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/status - Status updated: booking_id=%d, %s -> %s, notification=%s",
		bookingID, result.PreviousStatus, result.Booking.Status, result.Notification.Status)

	page.Booking = models.FromDomainBooking(result.Booking)
	page.Notification = &notificationView{
		Status:  string(result.Notification.Status),
		Detail:  result.Notification.Detail,
		Message: result.Notification.Message,
	}
	h.render(w, http.StatusOK, tmplStatus, page)
}

// render исполняет шаблон в буфер и отдает страницу целиком
func (h *Handler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("render %s: %v", name, err)
		http.Error(w, msgSomethingWrong, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func bookingFromCreate(resp *createBooking.Response) *models.BookingResponse {
	return &models.BookingResponse{
		ID:                resp.ID,
		CustomerName:      resp.CustomerName,
		Phone:             resp.Phone,
		Vehicle:           resp.Vehicle,
		ServiceType:       string(resp.ServiceType),
		ServiceTypeLabel:  resp.ServiceType.Label(),
		LocationType:      string(resp.LocationType),
		LocationTypeLabel: resp.LocationType.Label(),
		Address:           resp.Address,
		BookingDate:       resp.BookingDate.Format("Mon, Jan 2 2006"),
		Slot:              resp.Slot.String(),
		SlotLabel:         resp.Slot.Label(),
		Notes:             resp.Notes,
		Status:            string(resp.Status),
		StatusLabel:       resp.Status.Label(),
		CreatedAt:         resp.CreatedAt,
	}
}
