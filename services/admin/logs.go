package admin

import (
	"context"
	"fmt"
	"sort"

	"cursos/models"
	"cursos/services/listing"
)

var logFields = listing.Fields[LogRow]{
	"id":          func(l LogRow) any { return l.ID },
	"timestamp":   func(l LogRow) any { return l.Timestamp.Time },
	"entity":      func(l LogRow) any { return l.Entity },
	"entityId":    func(l LogRow) any { return l.EntityID },
	"action":      func(l LogRow) any { return l.Action },
	"descripcion": func(l LogRow) any { return l.Description },
}

// AuditLogs lists audit records newest first unless another sort is requested.
func (s *DefaultAdminService) AuditLogs(ctx context.Context, sess *models.Session, q listing.Query) (*listing.Page[LogRow], error) {
	logs, err := s.API.AuditLogs(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp.Time)
	})
	rows := make([]LogRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, LogRow{AuditLog: l, Severity: l.Severity()})
	}
	page := listing.Apply(rows, q, logFields)
	return &page, nil
}
