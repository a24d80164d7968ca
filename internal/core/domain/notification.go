package domain

const (
	SeveritySuccess = "success"
	SeverityError   = "error"
	SeverityInfo    = "info"
)

// DefaultNotificationDuration is applied when a caller passes a
// non-positive duration.
const DefaultNotificationDuration = 3000

// Notification is a transient UI message. ID is monotonic and
// timestamp-derived; DurationMs tells the presenter when to remove it,
// the store itself runs no timer.
type Notification struct {
	ID         int64  `json:"id"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	DurationMs int    `json:"durationMs"`
}
