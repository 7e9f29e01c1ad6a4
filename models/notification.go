// models/notification.go
package models

// Severity of a toast notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarn    Severity = "warn"
	SeverityError   Severity = "error"
)

// Toast is a one-shot user notification.
type Toast struct {
	Severity Severity `json:"severity"`
	Summary  string   `json:"summary"`
	Detail   string   `json:"detail"`
	Life     int      `json:"life,omitempty"`
}

// Confirmation is returned instead of performing a destructive action
// until the caller repeats the request with confirm=true.
type Confirmation struct {
	Header  string `json:"header"`
	Message string `json:"message"`
}
