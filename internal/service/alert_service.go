package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/shepherd/internal/attendance"
	"github.com/mmynk/shepherd/internal/metrics"
	"github.com/mmynk/shepherd/internal/storage"
	"github.com/mmynk/shepherd/pkg/api"
)

// AlertService implements the Connect AlertService.
type AlertService struct {
	store storage.Store
}

// NewAlertService creates a new AlertService with the given storage backend.
func NewAlertService(store storage.Store) *AlertService {
	return &AlertService{store: store}
}

// ComputeAttendanceAlerts flags current members with runs of consecutive
// absences, across every group or only the requested one.
func (s *AlertService) ComputeAttendanceAlerts(ctx context.Context, req *connect.Request[api.ComputeAttendanceAlertsRequest]) (*connect.Response[api.ComputeAttendanceAlertsResponse], error) {
	groupID := req.Msg.GroupId
	slog.Info("ComputeAttendanceAlerts request received", "group_id", groupID)

	if groupID != "" {
		if _, err := s.store.GetGroup(ctx, groupID); err != nil {
			slog.Error("ComputeAttendanceAlerts failed - group lookup", "group_id", groupID, "error", err)
			return nil, lookupError(err)
		}
	}

	people, reports, err := storage.LoadSnapshot(ctx, s.store, groupID)
	if err != nil {
		slog.Error("ComputeAttendanceAlerts failed - snapshot", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	alerts := attendance.ComputeAlerts(people, reports)
	summary := attendance.Summarize(alerts)
	if groupID == "" {
		metrics.AttendanceAlerts.WithLabelValues(string(attendance.SeverityAlert)).Set(float64(summary.Alert))
		metrics.AttendanceAlerts.WithLabelValues(string(attendance.SeverityInactive)).Set(float64(summary.Inactive))
	}

	result := make([]*api.Alert, len(alerts))
	for i, a := range alerts {
		result[i] = toAPIAlert(a)
	}

	slog.Info("ComputeAttendanceAlerts successful",
		"group_id", groupID,
		"people", len(people),
		"reports", len(reports),
		"alerts", summary.Alert,
		"inactive", summary.Inactive,
	)

	return connect.NewResponse(&api.ComputeAttendanceAlertsResponse{
		Alerts:        result,
		AlertCount:    int32(summary.Alert),
		InactiveCount: int32(summary.Inactive),
	}), nil
}
