package create_booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/coastalgloss/BookingService/internal/domain"
	"github.com/coastalgloss/BookingService/pkg/sanitizer"
	"github.com/coastalgloss/BookingService/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// В ошибках используем имена полей из json тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return sanitizer.IsNormalizedPhone(fl.Field().String())
	})
	mustRegister(v, "service_type", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseServiceType(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "location_type", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseLocationType(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "slot", func(fl validator.FieldLevel) bool {
		return domain.IsValidSlot(types.TimeString(fl.Field().String()))
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("create_booking: register validation %q: %v", tag, err))
	}
}

// normalize очищает пользовательский ввод и приводит названия к кодам
// Нераспознанные значения остаются как есть и отклоняются валидацией
func normalize(req *Request) input {
	in := input{
		CustomerName: sanitizer.CleanString(req.CustomerName),
		Phone:        sanitizer.NormalizePhone(req.Phone),
		Vehicle:      sanitizer.CleanString(req.Vehicle),
		ServiceType:  strings.TrimSpace(req.ServiceType),
		LocationType: strings.TrimSpace(req.LocationType),
		Address:      sanitizer.CleanString(req.Address),
		Date:         strings.TrimSpace(req.Date),
		Slot:         strings.TrimSpace(req.Slot),
		Notes:        sanitizer.CleanText(req.Notes),
	}

	if serviceType, err := domain.ParseServiceType(in.ServiceType); err == nil {
		in.ServiceType = string(serviceType)
	}
	if locationType, err := domain.ParseLocationType(in.LocationType); err == nil {
		in.LocationType = string(locationType)
	}
	if slot, err := types.NewTimeStringFromString(in.Slot); err == nil {
		in.Slot = slot.String()
	}

	return in
}

// validateInput проверяет нормализованный запрос и собирает все ошибки полей
func validateInput(in input) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		result = append(result, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return result
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required for mobile service"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "phone":
		return "must contain digits with an optional leading +"
	case "service_type":
		return fmt.Sprintf("must be %s or %s", domain.ServiceMobileDetail.Label(), domain.ServiceCeramicCoating.Label())
	case "location_type":
		return fmt.Sprintf("must be %s or %s", domain.LocationMobile.Label(), domain.LocationShopDropOff.Label())
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "slot":
		labels := make([]string, 0, len(domain.Slots))
		for _, s := range domain.Slots {
			labels = append(labels, s.String())
		}
		return "must be one of " + strings.Join(labels, ", ")
	default:
		return "is invalid"
	}
}
