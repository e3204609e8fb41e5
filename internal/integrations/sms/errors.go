package sms

import "errors"

var (
	// ErrNotConfigured возвращается отправителем без учетных данных Twilio
	ErrNotConfigured = errors.New("sms: sender not configured")

	// ErrInvalidPhone возвращается, если номер получателя пустой
	ErrInvalidPhone = errors.New("sms: invalid recipient phone")

	// ErrSendFailed возвращается при ошибке провайдера или таймауте
	ErrSendFailed = errors.New("sms: send failed")
)
