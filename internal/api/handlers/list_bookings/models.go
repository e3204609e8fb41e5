package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/coastalgloss/BookingService/internal/service/bookings/models"
	"github.com/coastalgloss/BookingService/pkg/ptr"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		IncludeCancelled: false, // По умолчанию без отменённых
	}

	if date := strings.TrimSpace(query.Get("date")); date != "" {
		req.Date = ptr.Ptr(date)
	}

	if status := strings.TrimSpace(query.Get("status")); status != "" {
		req.Status = ptr.Ptr(status)
	}

	if includeStr := query.Get("includeCancelled"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = include
	}

	return req, nil
}
