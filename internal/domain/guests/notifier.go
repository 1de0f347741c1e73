package guests

import "context"

// Notifier delivers RSVP emails. Bodies are rendered by the implementation.
type Notifier interface {
	SendGuestConfirmation(ctx context.Context, msg Confirmation) error
	SendCoupleNotification(ctx context.Context, msg Notification) error
}

type Confirmation struct {
	Email      string
	Name       string
	Response   Response
	GuestCount int
	Dietary    string
	Message    string
}

// Notification tells the couple about one submission and every row it wrote.
type Notification struct {
	SubmittedBy string
	Email       string
	Rows        []NotificationRow
}

type NotificationRow struct {
	Name       string
	Response   Response
	GuestCount int
	Dietary    string
	Message    string
}

type noopNotifier struct{}

func (noopNotifier) SendGuestConfirmation(context.Context, Confirmation) error {
	return nil
}

func (noopNotifier) SendCoupleNotification(context.Context, Notification) error {
	return nil
}

// Recorder receives domain counters; the metrics package implements it.
type Recorder interface {
	LookupResolved(pass MatchPass, ambiguous bool)
	LookupMissed()
	RSVPWritten(response Response, rows int)
	RSVPSkipped(reason SkipReason)
	NotificationFailed(kind string)
}

type noopRecorder struct{}

func (noopRecorder) LookupResolved(MatchPass, bool) {}
func (noopRecorder) LookupMissed()                  {}
func (noopRecorder) RSVPWritten(Response, int)      {}
func (noopRecorder) RSVPSkipped(SkipReason)         {}
func (noopRecorder) NotificationFailed(string)      {}
