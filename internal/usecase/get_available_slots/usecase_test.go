package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastalgloss/BookingService/internal/domain"
	"github.com/coastalgloss/BookingService/pkg/types"
)

type fakeRepo struct {
	bookings []*domain.Booking
	err      error
	asked    time.Time
}

func (r *fakeRepo) GetActiveByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	r.asked = date
	return r.bookings, r.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func booking(slot types.TimeString, service domain.ServiceType) *domain.Booking {
	return &domain.Booking{
		BookingDate: time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC),
		Slot:        slot,
		ServiceType: service,
		Status:      domain.StatusNew,
	}
}

func TestExecute_EmptyDay(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-07-04"})
	require.NoError(t, err)

	assert.Equal(t, "2024-07-04", repo.asked.Format(domain.DateFormat))
	require.Len(t, resp.DetailSlots, len(domain.Slots))
	for i, s := range resp.DetailSlots {
		assert.Equal(t, domain.Slots[i], s.StartTime)
		assert.True(t, s.Available)
	}
	assert.True(t, resp.Coating.Available)
	assert.False(t, resp.FullyBooked)
	assert.Zero(t, resp.ActiveBookings)
}

func TestExecute_CoatingDay(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{booking(domain.SlotMorning, domain.ServiceCeramicCoating)}}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-07-04"})
	require.NoError(t, err)

	assert.False(t, resp.DetailSlots[0].Available)
	assert.Equal(t, domain.ReasonCoatingDayOnly, resp.DetailSlots[0].Reason)
	assert.False(t, resp.DetailSlots[1].Available)
	assert.True(t, resp.DetailSlots[2].Available)
	assert.False(t, resp.Coating.Available)
	assert.Equal(t, domain.ReasonCoatingAlreadyBooked, resp.Coating.Reason)
	assert.Equal(t, 1, resp.ActiveBookings)
	assert.False(t, resp.FullyBooked)
}

func TestExecute_FullyBooked(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		booking(domain.SlotMorning, domain.ServiceCeramicCoating),
		booking(domain.SlotAfternoon, domain.ServiceMobileDetail),
	}}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-07-04"})
	require.NoError(t, err)
	assert.True(t, resp.FullyBooked)
}

func TestExecute_Errors(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: ""})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), &Request{Date: "July 4"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	uc = NewUseCase(&fakeRepo{err: errors.New("disk I/O error")}, nopLogger{})
	_, err = uc.Execute(context.Background(), &Request{Date: "2024-07-04"})
	assert.ErrorIs(t, err, ErrInternal)
}
