package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/coastalgloss/BookingService/internal/domain"
)

// parseDate разбирает дату запроса (YYYY-MM-DD)
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, raw)
	}

	return date, nil
}
