package update_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_status: booking not found")

	// ErrInvalidStatus возвращается, если запрошен статус вне Confirmed/Cancelled/Completed
	ErrInvalidStatus = errors.New("update_status: invalid status")

	// ErrInvalidTransition возвращается, если из текущего статуса переход не определен
	ErrInvalidTransition = errors.New("update_status: transition not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_status: internal error")
)
