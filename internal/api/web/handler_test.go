package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastalgloss/BookingService/internal/domain"
	"github.com/coastalgloss/BookingService/internal/service/bookings/models"
	createBooking "github.com/coastalgloss/BookingService/internal/usecase/create_booking"
	updateStatus "github.com/coastalgloss/BookingService/internal/usecase/update_status"
)

type fakeCreate struct {
	req  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeCreate) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeStatus struct {
	req  *updateStatus.Request
	resp *updateStatus.Response
	err  error
}

func (f *fakeStatus) Execute(_ context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeService struct {
	req  *models.ListBookingsRequest
	resp *models.BookingListResponse
	err  error
}

func (f *fakeService) ListBookings(_ context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	create  *fakeCreate
	status  *fakeStatus
	service *fakeService
	router  *mux.Router
}

func newFixture() *fixture {
	f := &fixture{
		create:  &fakeCreate{},
		status:  &fakeStatus{},
		service: &fakeService{resp: &models.BookingListResponse{}},
	}

	h := NewHandler(f.create, f.status, f.service, "Coastal Gloss", nopLogger{})
	f.router = mux.NewRouter()
	f.router.HandleFunc("/", h.Form).Methods(http.MethodGet)
	f.router.HandleFunc("/", h.Submit).Methods(http.MethodPost)
	f.router.HandleFunc("/admin", h.Admin).Methods(http.MethodGet)
	f.router.HandleFunc("/admin/bookings/{bookingId}/status", h.UpdateStatus).Methods(http.MethodPost)
	return f
}

func (f *fixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func bookingForm() url.Values {
	return url.Values{
		"name":     {"Jane Doe"},
		"phone":    {"(843) 555-0100"},
		"vehicle":  {"2020 Civic"},
		"service":  {"mobile_detail"},
		"location": {"mobile"},
		"address":  {"12 Ocean Dr"},
		"date":     {"2024-06-01"},
		"time":     {"12:00"},
		"notes":    {"pet hair"},
	}
}

func TestForm(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Coastal Gloss</title>")
	assert.Contains(t, body, "Mobile Detail")
	assert.Contains(t, body, "Ceramic Coating")
	assert.Contains(t, body, "Shop Drop-Off")
	assert.Contains(t, body, `<option value="15:00">3:00 PM</option>`)
}

func TestSubmit_Received(t *testing.T) {
	f := newFixture()
	f.create.resp = &createBooking.Response{
		ID:           5,
		CustomerName: "Jane Doe",
		Phone:        "8435550100",
		ServiceType:  domain.ServiceMobileDetail,
		LocationType: domain.LocationMobile,
		BookingDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Slot:         domain.SlotMidday,
		Status:       domain.StatusNew,
	}

	rec := f.do(http.MethodPost, "/", bookingForm())
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, f.create.req)
	assert.Equal(t, "Jane Doe", f.create.req.CustomerName)
	assert.Equal(t, "(843) 555-0100", f.create.req.Phone)
	assert.Equal(t, "mobile_detail", f.create.req.ServiceType)
	assert.Equal(t, "12:00", f.create.req.Slot)
	assert.Equal(t, "pet hair", f.create.req.Notes)

	body := rec.Body.String()
	assert.Contains(t, body, "Booking Received!")
	assert.Contains(t, body, "12:00 PM")
	assert.Contains(t, body, "Sat, Jun 1 2024")
}

func TestSubmit_ValidationKeepsValues(t *testing.T) {
	f := newFixture()
	f.create.err = createBooking.ValidationErrors{{Field: "address", Message: "is required for mobile service"}}

	form := bookingForm()
	form.Set("address", "")

	rec := f.do(http.MethodPost, "/", form)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, msgFixErrors)
	assert.Contains(t, body, "is required for mobile service")
	assert.Contains(t, body, `value="Jane Doe"`)
	assert.Contains(t, body, `<option value="12:00" selected>12:00 PM</option>`)
}

func TestSubmit_Conflict(t *testing.T) {
	f := newFixture()
	f.create.err = &createBooking.AvailabilityConflictError{Reason: domain.ReasonSlotAlreadyBooked}

	rec := f.do(http.MethodPost, "/", bookingForm())
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.ReasonSlotAlreadyBooked)
}

func TestSubmit_Internal(t *testing.T) {
	f := newFixture()
	f.create.err = errors.New("boom")

	rec := f.do(http.MethodPost, "/", bookingForm())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), msgSomethingWrong)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestAdmin(t *testing.T) {
	f := newFixture()
	f.service.resp = &models.BookingListResponse{Bookings: []models.BookingResponse{
		{ID: 1, CustomerName: "Jane", Status: "new", StatusLabel: "New", BookingDate: "2024-06-01", SlotLabel: "9:00 AM"},
		{ID: 2, CustomerName: "<b>Bob</b>", Status: "confirmed", StatusLabel: "Confirmed", BookingDate: "2024-06-01", SlotLabel: "3:00 PM"},
	}}

	rec := f.do(http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, f.service.req)
	assert.False(t, f.service.req.IncludeCancelled)

	body := rec.Body.String()
	assert.Contains(t, body, `action="/admin/bookings/1/status"`)
	assert.NotContains(t, body, `action="/admin/bookings/2/status"`, "terminal bookings have no actions")
	assert.Contains(t, body, ">Confirm</button>")
	assert.Contains(t, body, ">Cancel</button>")
	assert.Contains(t, body, ">Complete</button>")
	assert.Contains(t, body, "&lt;b&gt;Bob&lt;/b&gt;")
}

func TestAdmin_Empty(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No open bookings.")
}

func TestUpdateStatus_NotConfigured(t *testing.T) {
	f := newFixture()
	f.status.resp = &updateStatus.Response{
		Booking: &domain.Booking{
			ID:           1,
			CustomerName: "Jane",
			ServiceType:  domain.ServiceMobileDetail,
			BookingDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Slot:         domain.SlotMorning,
			Status:       domain.StatusConfirmed,
		},
		PreviousStatus: domain.StatusNew,
		Notification: domain.Notification{
			Status:  domain.NotificationNotConfigured,
			Detail:  "SMS is not configured",
			Message: "Hi Jane, your Mobile Detail is confirmed",
		},
	}

	rec := f.do(http.MethodPost, "/admin/bookings/1/status", url.Values{"status": {"confirmed"}})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(1), f.status.req.BookingID)
	assert.Equal(t, "confirmed", f.status.req.Status)

	body := rec.Body.String()
	assert.Contains(t, body, "is now <span class=\"status\">Confirmed</span>")
	assert.Contains(t, body, "SMS is not configured. Send this message manually:")
	assert.Contains(t, body, "Hi Jane, your Mobile Detail is confirmed")
}

func TestUpdateStatus_Errors(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		err     error
		code    int
		message string
	}{
		{"invalid id", "/admin/bookings/zero/status", nil, http.StatusBadRequest, msgInvalidBookingID},
		{"invalid status", "/admin/bookings/1/status", fmt.Errorf("%w: new", updateStatus.ErrInvalidStatus), http.StatusBadRequest, msgInvalidStatus},
		{"not found", "/admin/bookings/1/status", updateStatus.ErrBookingNotFound, http.StatusNotFound, msgNotFound},
		{"terminal", "/admin/bookings/1/status", fmt.Errorf("%w: cancelled", updateStatus.ErrInvalidTransition), http.StatusConflict, "can no longer be changed"},
		{"internal", "/admin/bookings/1/status", errors.New("boom"), http.StatusInternalServerError, msgSomethingWrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.status.err = tt.err

			rec := f.do(http.MethodPost, tt.target, url.Values{"status": {"cancelled"}})
			require.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}
