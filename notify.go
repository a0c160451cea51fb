package auth

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is a toast shown once on the next render of the card.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}
