package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	api "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/coastalgloss/BookingService/internal/config"
	"github.com/coastalgloss/BookingService/pkg/sanitizer"
)

// Sender отправляет текстовое сообщение на телефон клиента
type Sender interface {
	Send(ctx context.Context, phone, text string) (*Receipt, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// messageCreator часть Twilio API, которую использует клиент
type messageCreator interface {
	CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error)
}

// TwilioSender отправляет SMS через Twilio
type TwilioSender struct {
	messages    messageCreator
	from        string
	countryCode string
	log         Logger
}

// NewTwilioSender создает клиента Twilio из конфигурации
func NewTwilioSender(cfg config.SMSConfig, log Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	client.SetTimeout(time.Duration(cfg.Timeout) * time.Second)

	return newTwilioSender(client.Api, cfg.FromNumber, cfg.CountryCode, log)
}

func newTwilioSender(messages messageCreator, from, countryCode string, log Logger) *TwilioSender {
	return &TwilioSender{
		messages:    messages,
		from:        from,
		countryCode: countryCode,
		log:         log,
	}
}

// Send отправляет сообщение
// Twilio SDK не принимает контекст, поэтому отмена контекста прерывает только ожидание ответа
func (s *TwilioSender) Send(ctx context.Context, phone, text string) (*Receipt, error) {
	to := ToE164(phone, s.countryCode)
	if to == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}

	params := &api.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(text)

	type result struct {
		msg *api.ApiV2010Message
		err error
	}
	done := make(chan result, 1)
	go func() {
		msg, err := s.messages.CreateMessage(params)
		done <- result{msg: msg, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		s.log.Warn("Send: context done before Twilio responded to=%s: %v", to, ctx.Err())
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		s.log.Error("Send: Twilio rejected message to=%s: %v", to, res.err)
		return nil, fmt.Errorf("%w: %s", ErrSendFailed, describeTwilioError(res.err))
	}

	receipt := &Receipt{To: to}
	if res.msg != nil {
		if res.msg.Sid != nil {
			receipt.SID = *res.msg.Sid
		}
		if res.msg.Status != nil {
			receipt.Status = *res.msg.Status
		}
	}

	s.log.Info("Send: message accepted to=%s sid=%s status=%s", to, receipt.SID, receipt.Status)
	return receipt, nil
}

// UnconfiguredSender используется, когда учетные данные Twilio не заданы
type UnconfiguredSender struct{}

// Send всегда возвращает ErrNotConfigured
func (UnconfiguredSender) Send(_ context.Context, _, _ string) (*Receipt, error) {
	return nil, ErrNotConfigured
}

// NewSender выбирает реализацию при старте сервиса
func NewSender(cfg config.SMSConfig, log Logger) Sender {
	if !cfg.IsConfigured() {
		log.Warn("NewSender: Twilio credentials are not set, confirmation SMS disabled")
		return UnconfiguredSender{}
	}
	return NewTwilioSender(cfg, log)
}

// ToE164 приводит нормализованный номер к формату E.164
// Номер без '+' из 10 цифр считается национальным и получает countryCode
func ToE164(phone, countryCode string) string {
	normalized := sanitizer.NormalizePhone(phone)
	if normalized == "" {
		return ""
	}
	if strings.HasPrefix(normalized, "+") {
		return normalized
	}
	if len(normalized) == 10 && countryCode != "" {
		return "+" + strings.TrimPrefix(countryCode, "+") + normalized
	}
	return "+" + normalized
}

func describeTwilioError(err error) string {
	var restErr *twclient.TwilioRestError
	if errors.As(err, &restErr) {
		return fmt.Sprintf("twilio error %d: %s", restErr.Code, restErr.Message)
	}
	return err.Error()
}
