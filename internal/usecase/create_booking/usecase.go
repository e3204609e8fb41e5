package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coastalgloss/BookingService/internal/domain"
	bookingRepo "github.com/coastalgloss/BookingService/internal/infra/storage/booking"
	"github.com/coastalgloss/BookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции;
// уникальные индексы хранилища страхуют от гонки, если изоляция окажется слабее
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%q, location=%q, date=%q, slot=%q",
		req.ServiceType, req.LocationType, req.Date, req.Slot)

	// 1. Нормализация и валидация входных данных
	in := normalize(req)
	if err := validateInput(in); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, in.Date)
	if err != nil {
		return nil, ValidationErrors{{Field: "date", Message: "must be a date in YYYY-MM-DD format"}}
	}
	slot := types.TimeString(in.Slot)
	serviceType := domain.ServiceType(in.ServiceType)

	// 2. Время создания фиксируется всегда
	now := uc.timeProvider.Now().UTC()

	var result *domain.Booking

	// 3. Снимок дня, проверка доступности и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.GetActiveByDate(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings on %s: %v", in.Date, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		decision := domain.CheckAvailability(date, slot, serviceType, existing)
		if !decision.Accepted {
			uc.logger.Warn("CreateBooking: rejected date=%s slot=%s service=%s: %s",
				in.Date, slot, serviceType, decision.Reason)
			return &AvailabilityConflictError{Reason: decision.Reason}
		}

		booking := &domain.Booking{
			CustomerName: in.CustomerName,
			Phone:        in.Phone,
			Vehicle:      in.Vehicle,
			ServiceType:  serviceType,
			LocationType: domain.LocationType(in.LocationType),
			Address:      in.Address,
			BookingDate:  date,
			Slot:         slot,
			Notes:        in.Notes,
			Status:       domain.StatusNew,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: unique index rejected date=%s slot=%s service=%s",
					in.Date, slot, serviceType)
				return &AvailabilityConflictError{Reason: takenReason(serviceType)}
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		var conflict *AvailabilityConflictError
		if errors.As(err, &conflict) {
			uc.metrics.AvailabilityConflict(conflict.Reason)
			return nil, conflict
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	}

	uc.metrics.BookingCreated(string(result.ServiceType))
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		CustomerName: result.CustomerName,
		Phone:        result.Phone,
		Vehicle:      result.Vehicle,
		ServiceType:  result.ServiceType,
		LocationType: result.LocationType,
		Address:      result.Address,
		BookingDate:  result.BookingDate,
		Slot:         result.Slot,
		Notes:        result.Notes,
		Status:       result.Status,
		CreatedAt:    result.CreatedAt,
	}, nil
}

// takenReason причина отказа, когда конфликт обнаружил уникальный индекс, а не проверка
func takenReason(serviceType domain.ServiceType) string {
	if serviceType == domain.ServiceCeramicCoating {
		return domain.ReasonCoatingAlreadyBooked
	}
	return domain.ReasonSlotAlreadyBooked
}
