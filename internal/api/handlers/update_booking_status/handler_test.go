package update_booking_status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastalgloss/BookingService/internal/domain"
	updateStatus "github.com/coastalgloss/BookingService/internal/usecase/update_status"
)

type fakeUseCase struct {
	req  *updateStatus.Request
	resp *updateStatus.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
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

func serve(uc *fakeUseCase, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/status", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body)))
	return rec
}

func TestHandle_Confirmed(t *testing.T) {
	uc := &fakeUseCase{resp: &updateStatus.Response{
		Booking: &domain.Booking{
			ID:           3,
			CustomerName: "Jane",
			ServiceType:  domain.ServiceMobileDetail,
			LocationType: domain.LocationMobile,
			BookingDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Slot:         domain.SlotMidday,
			Status:       domain.StatusConfirmed,
		},
		PreviousStatus: domain.StatusNew,
		Notification: domain.Notification{
			Status:  domain.NotificationSent,
			Detail:  "SM123",
			Message: "Hi Jane",
		},
	}}

	rec := serve(uc, "/api/v1/bookings/3/status", `{"status":"Confirmed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(3), uc.req.BookingID)
	assert.Equal(t, "Confirmed", uc.req.Status)

	var resp UpdateStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Booking)
	assert.Equal(t, "confirmed", resp.Booking.Status)
	assert.Equal(t, "new", resp.PreviousStatus)
	assert.Equal(t, "sent", resp.Notification.Status)
	assert.Equal(t, "SM123", resp.Notification.Detail)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		err    error
		status int
	}{
		{"invalid id", "/api/v1/bookings/x/status", `{"status":"Confirmed"}`, nil, http.StatusBadRequest},
		{"empty body", "/api/v1/bookings/1/status", ``, nil, http.StatusBadRequest},
		{"invalid status", "/api/v1/bookings/1/status", `{"status":"New"}`, fmt.Errorf("%w: New", updateStatus.ErrInvalidStatus), http.StatusBadRequest},
		{"not found", "/api/v1/bookings/1/status", `{"status":"Cancelled"}`, updateStatus.ErrBookingNotFound, http.StatusNotFound},
		{"terminal", "/api/v1/bookings/1/status", `{"status":"Cancelled"}`, fmt.Errorf("%w: cancelled -> cancelled", updateStatus.ErrInvalidTransition), http.StatusConflict},
		{"internal", "/api/v1/bookings/1/status", `{"status":"Completed"}`, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
