package get_available_slots

import (
	"context"
	"fmt"

	"github.com/coastalgloss/BookingService/internal/domain"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Каждый слот проверяется теми же правилами, что и создание бронирования;
// результат - подсказка для формы, окончательное решение принимается при создании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%q", req.Date)

	// 1. Валидация входных данных
	date, err := parseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем активные бронирования на дату
	bookings, err := uc.bookingRepo.GetActiveByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings on %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 3. Проверяем каждый слот
	day := domain.BuildDayAvailability(date, bookings)

	uc.logger.Info("GetAvailableSlots: date=%s, active=%d, free detail slots=%d, coating available=%t",
		date.Format(domain.DateFormat), day.ActiveBookings, len(day.FreeDetailSlots()), day.Coating.Available)

	return &Response{
		Date:           day.Date,
		DetailSlots:    day.DetailSlots,
		Coating:        day.Coating,
		ActiveBookings: day.ActiveBookings,
		FullyBooked:    day.IsFullyBooked(),
	}, nil
}
