package create_booking

import (
	"errors"
	"strings"
)

var (
	// ErrSlotNotAvailable возвращается, когда выбранный слот недоступен
	// Конкретная причина передается через *AvailabilityConflictError
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// AvailabilityConflictError отказ проверки доступности с причиной для клиента
type AvailabilityConflictError struct {
	Reason string
}

func (e *AvailabilityConflictError) Error() string {
	return ErrSlotNotAvailable.Error() + ": " + e.Reason
}

// Is позволяет проверять ошибку через errors.Is(err, ErrSlotNotAvailable)
func (e *AvailabilityConflictError) Is(target error) bool {
	return target == ErrSlotNotAvailable
}

// FieldError ошибка валидации одного поля
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors все ошибки валидации запроса
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrInvalidInput)
func (v ValidationErrors) Unwrap() error {
	return ErrInvalidInput
}
