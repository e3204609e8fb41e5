package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/coastalgloss/BookingService/internal/domain"
	"github.com/coastalgloss/BookingService/pkg/dbmetrics"
	"github.com/coastalgloss/BookingService/pkg/psqlbuilder"
	"github.com/coastalgloss/BookingService/pkg/types"
)

const tableName = "bookings"

var columns = []string{
	"id",
	"customer_name",
	"phone",
	"vehicle",
	"service_type",
	"location_type",
	"address",
	"booking_date",
	"slot",
	"notes",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db      DBExecutor
	builder psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, builder psqlbuilder.Builder) *Repository {
	return &Repository{db: db, builder: builder}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// CreatedAt должен быть заполнен вызывающим кодом.
// Нарушение уникального индекса (слот или день покрытия уже заняты) возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.CreatedAt.IsZero() {
		return nil, fmt.Errorf("%w: Create - created_at is required", ErrBuildQuery)
	}
	if booking.UpdatedAt.IsZero() {
		booking.UpdatedAt = booking.CreatedAt
	}

	query, args, err := r.builder.Insert(tableName).
		Columns(
			"customer_name",
			"phone",
			"vehicle",
			"service_type",
			"location_type",
			"address",
			"booking_date",
			"slot",
			"notes",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			booking.CustomerName,
			booking.Phone,
			booking.Vehicle,
			string(booking.ServiceType),
			string(booking.LocationType),
			booking.Address,
			formatDate(booking.BookingDate),
			booking.Slot.String(),
			booking.Notes,
			string(booking.Status),
			formatTimestamp(booking.CreatedAt),
			formatTimestamp(booking.UpdatedAt),
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - date=%s slot=%s: %v", ErrSlotTaken, formatDate(booking.BookingDate), booking.Slot, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) && r.builder.SupportsRowLocks() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру, упорядоченные по дате, слоту и id
// Примеры использования:
//
// 1. Операторский список (все даты, без отменённых):
//	filter := domain.BookingsFilter{}
//
// 2. Бронирования на конкретную дату:
//	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
//	filter := domain.BookingsFilter{Date: &date}
//
// 3. Только отменённые:
//	status := domain.StatusCancelled
//	filter := domain.BookingsFilter{Status: &status}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(columns...).
		From(tableName).
		OrderBy("booking_date ASC", "slot ASC", "id ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": formatDate(*filter.Date)})
	}

	// Фильтрация по статусу; без статуса отменённые скрыты, если не запрошены явно
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByDate получает неотменённые бронирования на дату - снимок для проверки доступности
// Внутри транзакции на PostgreSQL строки блокируются (FOR UPDATE)
func (r *Repository) GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"booking_date": formatDate(date)}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("slot ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) && r.builder.SupportsRowLocks() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus переводит бронирование из статуса from в статус to
// Обновление условное: если статус уже не from, возвращается ErrStatusChanged
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Update(tableName).
		Set("status", string(to)).
		Set("updated_at", formatTimestamp(at)).
		Where(squirrel.Eq{"id": id, "status": string(from)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: UpdateStatus - id=%d: %v", ErrSlotTaken, id, err)
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем отсутствующую запись и гонку за статус
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: id=%d expected=%s", ErrStatusChanged, id, from)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking                   domain.Booking
		serviceType, locationType string
		status, bookingDate       string
		createdAt, updatedAt      types.DBTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.Phone,
		&booking.Vehicle,
		&serviceType,
		&locationType,
		&booking.Address,
		&bookingDate,
		&booking.Slot,
		&booking.Notes,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, bookingDate)
	if err != nil {
		return nil, fmt.Errorf("parse booking_date %q: %w", bookingDate, err)
	}

	booking.ServiceType = domain.ServiceType(serviceType)
	booking.LocationType = domain.LocationType(locationType)
	booking.Status = domain.BookingStatus(status)
	booking.BookingDate = date
	booking.CreatedAt = createdAt.Time.UTC()
	booking.UpdatedAt = updatedAt.Time.UTC()

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
