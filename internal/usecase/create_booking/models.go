package create_booking

import (
	"time"

	"github.com/coastalgloss/BookingService/internal/domain"
	"github.com/coastalgloss/BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
// Поля приходят из формы или JSON как есть; нормализация выполняется в usecase
type Request struct {
	CustomerName string // Имя клиента
	Phone        string // Телефон в произвольном формате
	Vehicle      string // Автомобиль (марка, модель, год)
	ServiceType  string // Код или название услуги ("mobile_detail", "Mobile Detail")
	LocationType string // Код или название места ("mobile", "Shop Drop-Off")
	Address      string // Адрес, обязателен для выезда
	Date         string // Дата в формате YYYY-MM-DD
	Slot         string // Время слота ("09:00", "3:00 PM")
	Notes        string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64
	CustomerName string
	Phone        string
	Vehicle      string
	ServiceType  domain.ServiceType
	LocationType domain.LocationType
	Address      string
	BookingDate  time.Time
	Slot         types.TimeString
	Notes        string
	Status       domain.BookingStatus
	CreatedAt    time.Time
}

// input нормализованный запрос, который проверяется тегами validator
type input struct {
	CustomerName string `json:"customerName" validate:"required,max=120"`
	Phone        string `json:"phone" validate:"required,max=20,phone"`
	Vehicle      string `json:"vehicle" validate:"required,max=120"`
	ServiceType  string `json:"serviceType" validate:"required,service_type"`
	LocationType string `json:"locationType" validate:"required,location_type"`
	Address      string `json:"address" validate:"required_if=LocationType mobile,max=250"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Slot         string `json:"slot" validate:"required,slot"`
	Notes        string `json:"notes" validate:"max=1000"`
}
