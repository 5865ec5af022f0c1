package services

import "context"

type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
)

// Events carried by notifications.
const (
	EventEditApplied = "edit_applied"
	EventSaved       = "saved"
	EventSaveFailed  = "save_failed"
	EventDiscarded   = "discarded"
	EventLoadFailed  = "load_failed"
	EventSession     = "session"
)

// Refresh hints for the rendering side.
const (
	RefreshProgressBars    = "progress_bars"
	RefreshCharacterAvatar = "character_avatars"
	RefreshAll             = "all"
)

// Notification is a transient, non-blocking message for connected
// dashboards.
type Notification struct {
	Event   string            `json:"event"`
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	Refresh []string          `json:"refresh,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notification) {}

// NopNotifier drops every notification.
func NopNotifier() Notifier { return nopNotifier{} }

// MultiNotifier fans a notification out to every notifier in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}

func refreshHints(res EditResult) []string {
	var hints []string
	if res.RefreshProgressBars {
		hints = append(hints, RefreshProgressBars)
	}
	if res.RefreshAvatars {
		hints = append(hints, RefreshCharacterAvatar)
	}
	return hints
}
