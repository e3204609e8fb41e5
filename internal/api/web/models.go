package web

import (
	"net/http"

	"github.com/coastalgloss/BookingService/internal/domain"
	"github.com/coastalgloss/BookingService/internal/service/bookings/models"
	createBooking "github.com/coastalgloss/BookingService/internal/usecase/create_booking"
)

// option элемент <select> или кнопка действия
type option struct {
	Value    string
	Label    string
	Selected bool
}

// formValues введенные значения формы (возвращаются в форму при ошибке)
type formValues struct {
	Name     string
	Phone    string
	Vehicle  string
	Service  string
	Location string
	Address  string
	Date     string
	Time     string
	Notes    string
}

type formPage struct {
	Title         string
	Message       string
	Values        formValues
	Errors        map[string]string // ключ - json имя поля
	ServiceTypes  []option
	LocationTypes []option
	Slots         []option
}

type receivedPage struct {
	Title   string
	Booking *models.BookingResponse
}

type adminRow struct {
	Booking models.BookingResponse
	Actions []option
}

type adminPage struct {
	Title string
	Rows  []adminRow
}

type notificationView struct {
	Status  string
	Detail  string
	Message string
}

type statusPage struct {
	Title        string
	Error        string
	Booking      *models.BookingResponse
	Notification *notificationView
}

// formValuesFromRequest читает поля формы (r.ParseForm уже вызван)
func formValuesFromRequest(r *http.Request) formValues {
	return formValues{
		Name:     r.PostFormValue("name"),
		Phone:    r.PostFormValue("phone"),
		Vehicle:  r.PostFormValue("vehicle"),
		Service:  r.PostFormValue("service"),
		Location: r.PostFormValue("location"),
		Address:  r.PostFormValue("address"),
		Date:     r.PostFormValue("date"),
		Time:     r.PostFormValue("time"),
		Notes:    r.PostFormValue("notes"),
	}
}

func (v formValues) toUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		CustomerName: v.Name,
		Phone:        v.Phone,
		Vehicle:      v.Vehicle,
		ServiceType:  v.Service,
		LocationType: v.Location,
		Address:      v.Address,
		Date:         v.Date,
		Slot:         v.Time,
		Notes:        v.Notes,
	}
}

func newFormPage(title string, values formValues) formPage {
	page := formPage{
		Title:  title,
		Values: values,
		Errors: map[string]string{},
	}

	for _, s := range domain.ServiceTypes {
		page.ServiceTypes = append(page.ServiceTypes, option{
			Value:    string(s),
			Label:    s.Label(),
			Selected: string(s) == values.Service,
		})
	}
	for _, l := range domain.LocationTypes {
		page.LocationTypes = append(page.LocationTypes, option{
			Value:    string(l),
			Label:    l.Label(),
			Selected: string(l) == values.Location,
		})
	}
	for _, s := range domain.Slots {
		page.Slots = append(page.Slots, option{
			Value:    s.String(),
			Label:    s.Label(),
			Selected: s.String() == values.Time,
		})
	}

	return page
}

// actionsFor кнопки смены статуса; у завершенных бронирований их нет
func actionsFor(status string) []option {
	if domain.BookingStatus(status).IsTerminal() {
		return nil
	}

	actions := make([]option, 0, len(domain.TransitionTargets))
	for _, target := range domain.TransitionTargets {
		actions = append(actions, option{Value: string(target), Label: actionLabel(target)})
	}
	return actions
}

func actionLabel(target domain.BookingStatus) string {
	switch target {
	case domain.StatusConfirmed:
		return "Confirm"
	case domain.StatusCancelled:
		return "Cancel"
	case domain.StatusCompleted:
		return "Complete"
	default:
		return target.Label()
	}
}
