package domain

import "fmt"

// NotificationStatus is the outcome of a confirmation SMS attempt
type NotificationStatus string

const (
	NotificationSent          NotificationStatus = "sent"
	NotificationNotConfigured NotificationStatus = "not_configured"
	NotificationFailed        NotificationStatus = "failed"
	NotificationSkipped       NotificationStatus = "skipped" // transition does not notify
)

// Notification is reported to the operator after a status change.
// Message holds the composed text so it can be relayed manually.
type Notification struct {
	Status  NotificationStatus
	Detail  string
	Message string
}

// ConfirmationMessage composes the SMS sent when a booking is confirmed
func ConfirmationMessage(business string, b *Booking) string {
	return fmt.Sprintf("Hi %s, your %s with %s is confirmed for %s at %s. Reply to this message if you need to reschedule.",
		b.CustomerName,
		b.ServiceType.Label(),
		business,
		b.BookingDate.Format("Mon, Jan 2 2006"),
		b.Slot.Label(),
	)
}
