package notification

import (
	"context"

	guestsdomain "wedding-registry-go/internal/domain/guests"
	"wedding-registry-go/pkg/logger"
)

// LogNotifier stands in for email delivery when no provider is configured.
type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendGuestConfirmation(_ context.Context, msg guestsdomain.Confirmation) error {
	n.log.Info("notify.guest: email delivery not configured, skipping confirmation",
		"name", msg.Name,
		"response", string(msg.Response),
	)
	return nil
}

func (n *LogNotifier) SendCoupleNotification(_ context.Context, msg guestsdomain.Notification) error {
	n.log.Info("notify.couple: email delivery not configured, skipping notification",
		"submitted_by", msg.SubmittedBy,
		"rows", len(msg.Rows),
	)
	return nil
}
