package update_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/coastalgloss/BookingService/internal/domain"
	bookingRepo "github.com/coastalgloss/BookingService/internal/infra/storage/booking"
	"github.com/coastalgloss/BookingService/internal/integrations/sms"
)

// UseCase use case для смены статуса бронирования оператором
type UseCase struct {
	bookingRepo  BookingRepository
	smsSender    SMSSender
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	businessName string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	smsSender SMSSender,
	txManager TransactionManager,
	metrics Metrics,
	businessName string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		smsSender:    smsSender,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		businessName: businessName,
		logger:       logger,
	}
}

// Execute меняет статус и, при подтверждении, отправляет SMS уже после коммита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateStatus: booking id=%d, status=%q", req.BookingID, req.Status)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	target, err := domain.ParseTransitionTarget(req.Status)
	if err != nil {
		uc.logger.Warn("UpdateStatus: booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	now := uc.timeProvider.Now().UTC()

	var (
		updated  *domain.Booking
		previous domain.BookingStatus
	)

	// 2. Чтение, проверка перехода и условное обновление в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := domain.CanTransition(booking.Status, target); err != nil {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
		}

		err = uc.bookingRepo.UpdateStatus(txCtx, booking.ID, booking.Status, target, now)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrStatusChanged):
				return fmt.Errorf("%w: status of booking id=%d changed concurrently", ErrInvalidTransition, booking.ID)
			default:
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}
		}

		previous = booking.Status
		booking.Status = target
		booking.UpdatedAt = now
		updated = booking
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			uc.logger.Warn("UpdateStatus: booking id=%d not found", req.BookingID)
		case errors.Is(err, ErrInvalidTransition):
			uc.logger.Warn("UpdateStatus: booking id=%d: %v", req.BookingID, err)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("UpdateStatus: booking id=%d: %v", req.BookingID, err)
		default:
			uc.logger.Error("UpdateStatus: transaction failed for booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.StatusTransition(string(target))
	uc.logger.Info("UpdateStatus: booking id=%d %s -> %s", updated.ID, previous, target)

	// 3. Уведомление вне транзакции; результат только информационный
	notification := uc.notify(ctx, updated)
	uc.metrics.Notification(string(notification.Status))

	return &Response{
		Booking:        updated,
		PreviousStatus: previous,
		Notification:   notification,
	}, nil
}

func (uc *UseCase) notify(ctx context.Context, booking *domain.Booking) domain.Notification {
	if !booking.Status.NotifiesCustomer() {
		return domain.Notification{Status: domain.NotificationSkipped}
	}

	message := domain.ConfirmationMessage(uc.businessName, booking)

	receipt, err := uc.smsSender.Send(ctx, booking.Phone, message)
	switch {
	case err == nil:
		detail := ""
		if receipt != nil {
			detail = receipt.SID
		}
		return domain.Notification{Status: domain.NotificationSent, Detail: detail, Message: message}
	case errors.Is(err, sms.ErrNotConfigured):
		uc.logger.Warn("UpdateStatus: SMS not configured, booking id=%d confirmation must be relayed manually", booking.ID)
		return domain.Notification{Status: domain.NotificationNotConfigured, Detail: "SMS is not configured", Message: message}
	default:
		uc.logger.Error("UpdateStatus: failed to send confirmation for booking id=%d: %v", booking.ID, err)
		return domain.Notification{Status: domain.NotificationFailed, Detail: err.Error(), Message: message}
	}
}
