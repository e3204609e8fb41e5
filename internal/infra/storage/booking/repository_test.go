package booking

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/coastalgloss/BookingService/internal/domain"
	"github.com/coastalgloss/BookingService/internal/infra/storage/schema"
	"github.com/coastalgloss/BookingService/pkg/dbmetrics"
	"github.com/coastalgloss/BookingService/pkg/psqlbuilder"
	"github.com/coastalgloss/BookingService/pkg/txmanager"
	"github.com/coastalgloss/BookingService/pkg/types"
)

var createdAt = time.Date(2024, 5, 20, 14, 30, 0, 0, time.UTC)

func newTestRepository(t *testing.T) (*Repository, *dbmetrics.DB) {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "bookings.db") + "?_pragma=foreign_keys(ON)&_txlock=immediate"
	raw, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = raw.Close() })

	require.NoError(t, schema.Apply(context.Background(), raw, psqlbuilder.DialectSQLite))

	db := dbmetrics.Wrap(raw, nil, "test")
	return NewRepository(db, psqlbuilder.MustNew(psqlbuilder.DialectSQLite)), db
}

func newBooking(day string, slot types.TimeString, service domain.ServiceType) *domain.Booking {
	date, _ := time.Parse(domain.DateFormat, day)
	return &domain.Booking{
		CustomerName: "Jane Doe",
		Phone:        "+18435550100",
		Vehicle:      "2019 Honda Civic",
		ServiceType:  service,
		LocationType: domain.LocationMobile,
		Address:      "12 Ocean Dr",
		BookingDate:  date,
		Slot:         slot,
		Notes:        "gate code 1234",
		Status:       domain.StatusNew,
		CreatedAt:    createdAt,
	}
}

func TestRepository_CreateAndGetByID(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newBooking("2024-06-01", domain.SlotMorning, domain.ServiceMobileDetail))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Jane Doe", got.CustomerName)
	assert.Equal(t, "+18435550100", got.Phone)
	assert.Equal(t, domain.ServiceMobileDetail, got.ServiceType)
	assert.Equal(t, domain.LocationMobile, got.LocationType)
	assert.Equal(t, "12 Ocean Dr", got.Address)
	assert.Equal(t, "2024-06-01", got.BookingDate.Format(domain.DateFormat))
	assert.Equal(t, domain.SlotMorning, got.Slot)
	assert.Equal(t, domain.StatusNew, got.Status)
	assert.True(t, createdAt.Equal(got.CreatedAt))
	assert.True(t, createdAt.Equal(got.UpdatedAt))
}

func TestRepository_CreateRequiresCreatedAt(t *testing.T) {
	repo, _ := newTestRepository(t)

	b := newBooking("2024-06-01", domain.SlotMorning, domain.ServiceMobileDetail)
	b.CreatedAt = time.Time{}

	_, err := repo.Create(context.Background(), b)
	assert.ErrorIs(t, err, ErrBuildQuery)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_UniqueIndexBackstop(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newBooking("2024-06-01", domain.SlotMorning, domain.ServiceMobileDetail))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking("2024-06-01", domain.SlotMorning, domain.ServiceMobileDetail))
	assert.ErrorIs(t, err, ErrSlotTaken)

	_, err = repo.Create(ctx, newBooking("2024-06-01", domain.SlotMorning, domain.ServiceCeramicCoating))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking("2024-06-01", domain.SlotMidday, domain.ServiceCeramicCoating))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestRepository_CancelFreesSlot(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, newBooking("2024-06-01", domain.SlotMidday, domain.ServiceMobileDetail))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, first.ID, domain.StatusNew, domain.StatusCancelled, createdAt.Add(time.Hour)))

	active, err := repo.GetActiveByDate(ctx, first.BookingDate)
	require.NoError(t, err)
	assert.Empty(t, active)

	second, err := repo.Create(ctx, newBooking("2024-06-01", domain.SlotMidday, domain.ServiceMobileDetail))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	cancelled, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.True(t, createdAt.Add(time.Hour).Equal(cancelled.UpdatedAt))
}

func TestRepository_UpdateStatus_Conditional(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	b, err := repo.Create(ctx, newBooking("2024-06-01", domain.SlotMorning, domain.ServiceMobileDetail))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, b.ID, domain.StatusNew, domain.StatusConfirmed, createdAt))

	err = repo.UpdateStatus(ctx, b.ID, domain.StatusNew, domain.StatusCompleted, createdAt)
	assert.ErrorIs(t, err, ErrStatusChanged)

	err = repo.UpdateStatus(ctx, 999, domain.StatusNew, domain.StatusConfirmed, createdAt)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetActiveByDate(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	afternoon, err := repo.Create(ctx, newBooking("2024-06-01", domain.SlotAfternoon, domain.ServiceMobileDetail))
	require.NoError(t, err)
	morning, err := repo.Create(ctx, newBooking("2024-06-01", domain.SlotMorning, domain.ServiceMobileDetail))
	require.NoError(t, err)
	cancelled, err := repo.Create(ctx, newBooking("2024-06-01", domain.SlotMidday, domain.ServiceMobileDetail))
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, cancelled.ID, domain.StatusNew, domain.StatusCancelled, createdAt))
	_, err = repo.Create(ctx, newBooking("2024-06-02", domain.SlotMorning, domain.ServiceMobileDetail))
	require.NoError(t, err)

	active, err := repo.GetActiveByDate(ctx, morning.BookingDate)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, morning.ID, active[0].ID)
	assert.Equal(t, afternoon.ID, active[1].ID)
}

func TestRepository_List(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	later, err := repo.Create(ctx, newBooking("2024-06-02", domain.SlotMorning, domain.ServiceMobileDetail))
	require.NoError(t, err)
	afternoon, err := repo.Create(ctx, newBooking("2024-06-01", domain.SlotAfternoon, domain.ServiceMobileDetail))
	require.NoError(t, err)
	morning, err := repo.Create(ctx, newBooking("2024-06-01", domain.SlotMorning, domain.ServiceMobileDetail))
	require.NoError(t, err)
	cancelled, err := repo.Create(ctx, newBooking("2024-06-01", domain.SlotMidday, domain.ServiceMobileDetail))
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, cancelled.ID, domain.StatusNew, domain.StatusCancelled, createdAt))

	ids := func(bookings []*domain.Booking) []int64 {
		out := make([]int64, 0, len(bookings))
		for _, b := range bookings {
			out = append(out, b.ID)
		}
		return out
	}

	t.Run("operator view hides cancelled and orders by date then slot", func(t *testing.T) {
		got, err := repo.List(ctx, domain.BookingsFilter{})
		require.NoError(t, err)
		assert.Equal(t, []int64{morning.ID, afternoon.ID, later.ID}, ids(got))
	})

	t.Run("include cancelled", func(t *testing.T) {
		got, err := repo.List(ctx, domain.BookingsFilter{IncludeCancelled: true})
		require.NoError(t, err)
		assert.Equal(t, []int64{morning.ID, cancelled.ID, afternoon.ID, later.ID}, ids(got))
	})

	t.Run("by date", func(t *testing.T) {
		date := later.BookingDate
		got, err := repo.List(ctx, domain.BookingsFilter{Date: &date})
		require.NoError(t, err)
		assert.Equal(t, []int64{later.ID}, ids(got))
	})

	t.Run("by status", func(t *testing.T) {
		status := domain.StatusCancelled
		got, err := repo.List(ctx, domain.BookingsFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, []int64{cancelled.ID}, ids(got))
	})
}

func TestRepository_TransactionRollback(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()
	tm := txmanager.NewTransactionManager(db, txmanager.WithSerializableLevel(sql.LevelDefault))

	errAbort := errors.New("abort")
	err := tm.DoSerializable(ctx, func(txCtx context.Context) error {
		active, err := repo.GetActiveByDate(txCtx, newBooking("2024-06-01", domain.SlotMorning, domain.ServiceMobileDetail).BookingDate)
		require.NoError(t, err)
		require.Empty(t, active)

		_, err = repo.Create(txCtx, newBooking("2024-06-01", domain.SlotMorning, domain.ServiceMobileDetail))
		require.NoError(t, err)
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	all, err := repo.List(ctx, domain.BookingsFilter{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Empty(t, all)
}
