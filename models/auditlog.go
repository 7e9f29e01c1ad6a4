// models/auditlog.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AuditLog is one backend audit record.
type AuditLog struct {
	ID          int64     `json:"id"`
	Timestamp   Timestamp `json:"timestamp"`
	Action      string    `json:"action"`
	Entity      string    `json:"entity,omitempty"`
	EntityID    any       `json:"entityId,omitempty"`
	Description string    `json:"descripcion,omitempty"`
}

// Severity colours an action tag.
func (l AuditLog) Severity() string {
	switch strings.ToUpper(l.Action) {
	case "CREATE", "LOGIN_SUCCESS":
		return "success"
	case "UPDATE":
		return "warning"
	case "DELETE", "LOGIN_FAILED":
		return "danger"
	default:
		return "info"
	}
}

// Timestamp accepts RFC 3339, zone-less ISO local date-times and epoch milliseconds.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] != '"' {
		var ms int64
		if err := json.Unmarshal(data, &ms); err != nil {
			return fmt.Errorf("invalid timestamp %s: %w", data, err)
		}
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}
