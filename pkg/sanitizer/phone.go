package sanitizer

import "strings"

// NormalizePhone keeps digits and a single leading '+'
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(phone))
	if strings.HasPrefix(phone, "+") {
		b.WriteByte('+')
	}
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	normalized := b.String()
	if normalized == "+" {
		return ""
	}
	return normalized
}

// IsNormalizedPhone reports whether phone contains only digits and an optional leading '+'
func IsNormalizedPhone(phone string) bool {
	digits := strings.TrimPrefix(phone, "+")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
