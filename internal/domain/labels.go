package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnknownServiceType  = errors.New("domain: unknown service type")
	ErrUnknownLocationType = errors.New("domain: unknown location type")
	ErrUnknownStatus       = errors.New("domain: unknown booking status")
)

var serviceLabels = map[ServiceType]string{
	ServiceMobileDetail:   "Mobile Detail",
	ServiceCeramicCoating: "Ceramic Coating",
}

var locationLabels = map[LocationType]string{
	LocationMobile:      "Mobile",
	LocationShopDropOff: "Shop Drop-Off",
}

var statusLabels = map[BookingStatus]string{
	StatusNew:       "New",
	StatusConfirmed: "Confirmed",
	StatusCancelled: "Cancelled",
	StatusCompleted: "Completed",
}

func (s ServiceType) Label() string {
	if l, ok := serviceLabels[s]; ok {
		return l
	}
	return string(s)
}

func (l LocationType) Label() string {
	if label, ok := locationLabels[l]; ok {
		return label
	}
	return string(l)
}

func (s BookingStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseServiceType accepts the stored code or the display label, case-insensitive
func ParseServiceType(s string) (ServiceType, error) {
	for code, label := range serviceLabels {
		if matchesCodeOrLabel(s, string(code), label) {
			return code, nil
		}
	}
	return "", ErrUnknownServiceType
}

// ParseLocationType accepts the stored code or the display label, case-insensitive.
// "Drop Off" is the label older forms used.
func ParseLocationType(s string) (LocationType, error) {
	for code, label := range locationLabels {
		if matchesCodeOrLabel(s, string(code), label) {
			return code, nil
		}
	}
	if normalizeLabel(s) == "drop_off" {
		return LocationShopDropOff, nil
	}
	return "", ErrUnknownLocationType
}

// ParseBookingStatus accepts the stored code or the display label, case-insensitive
func ParseBookingStatus(s string) (BookingStatus, error) {
	for code, label := range statusLabels {
		if matchesCodeOrLabel(s, string(code), label) {
			return code, nil
		}
	}
	return "", ErrUnknownStatus
}

func matchesCodeOrLabel(input, code, label string) bool {
	n := normalizeLabel(input)
	return n != "" && (n == code || n == normalizeLabel(label))
}

// normalizeLabel "Shop Drop-Off" -> "shop_drop_off"
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
