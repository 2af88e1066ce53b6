package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"connectrpc.com/connect"

	"github.com/mmynk/shepherd/internal/attendance"
	"github.com/mmynk/shepherd/internal/membership"
	"github.com/mmynk/shepherd/internal/metrics"
	"github.com/mmynk/shepherd/internal/models"
	"github.com/mmynk/shepherd/internal/storage"
	"github.com/mmynk/shepherd/pkg/api"
)

// ReportService implements the Connect ReportService.
type ReportService struct {
	store storage.Store
}

// NewReportService creates a new ReportService with the given storage backend.
func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store}
}

// UpsertReport saves the report for a group and meeting date. Submitting
// the same group and date again replaces the earlier content.
func (s *ReportService) UpsertReport(ctx context.Context, req *connect.Request[api.UpsertReportRequest]) (*connect.Response[api.UpsertReportResponse], error) {
	msg := req.Msg
	slog.Info("UpsertReport request received",
		"group_id", msg.GroupId,
		"report_date", msg.ReportDate,
		"entries", len(msg.Attendance),
	)

	if msg.GroupId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group_id required"))
	}
	date, err := parseDate("report_date", msg.ReportDate, false)
	if err != nil {
		return nil, err
	}
	if msg.GuestCount < 0 || msg.OfferingAmount < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("guest count and offering must not be negative"))
	}

	entries := make(map[string]models.AttendanceStatus, len(msg.Attendance))
	for personID, raw := range msg.Attendance {
		status := models.AttendanceStatus(raw)
		if personID == "" || !status.Valid() {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid attendance entry %q: %q", personID, raw))
		}
		entries[personID] = status
	}

	if _, err := s.store.GetGroup(ctx, msg.GroupId); err != nil {
		slog.Error("UpsertReport failed - group lookup", "group_id", msg.GroupId, "error", err)
		return nil, lookupError(err)
	}

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		slog.Error("UpsertReport failed - people lookup", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	nonMembers := nonMembersOn(membership.NewLedger(people), msg.GroupId, date, entries)
	if len(nonMembers) > 0 {
		slog.Warn("Report lists non-members",
			"group_id", msg.GroupId,
			"report_date", date,
			"person_ids", nonMembers,
		)
	}

	report := &models.AttendanceReport{
		GroupID:        msg.GroupId,
		ReportDate:     date,
		Attendance:     entries,
		GuestCount:     int(msg.GuestCount),
		OfferingAmount: msg.OfferingAmount,
	}

	created, err := s.store.UpsertReport(ctx, report)
	if err != nil {
		slog.Error("UpsertReport failed", "report_id", report.ID(), "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if created {
		metrics.ReportsSaved.WithLabelValues("created").Inc()
	} else {
		metrics.ReportsSaved.WithLabelValues("updated").Inc()
	}

	saved, err := s.store.GetReport(ctx, report.ID())
	if err != nil {
		slog.Error("UpsertReport failed - reload", "report_id", report.ID(), "error", err)
		return nil, lookupError(err)
	}

	slog.Info("Report saved", "report_id", saved.ID(), "created", created)

	return connect.NewResponse(&api.UpsertReportResponse{
		Report:     toAPIReport(saved),
		Created:    created,
		NonMembers: nonMembers,
	}), nil
}

// nonMembersOn returns the attendance keys, sorted, that did not belong to
// groupID on date.
func nonMembersOn(ledger *membership.Ledger, groupID string, date models.Date, entries map[string]models.AttendanceStatus) []string {
	var out []string
	for personID := range entries {
		if !ledger.WasMemberAt(personID, groupID, date) {
			out = append(out, personID)
		}
	}
	sort.Strings(out)
	return out
}

// GetReport retrieves a report by its "groupId_date" ID.
func (s *ReportService) GetReport(ctx context.Context, req *connect.Request[api.GetReportRequest]) (*connect.Response[api.GetReportResponse], error) {
	slog.Info("GetReport request received", "report_id", req.Msg.ReportId)

	report, err := s.store.GetReport(ctx, req.Msg.ReportId)
	if err != nil {
		slog.Error("GetReport failed", "report_id", req.Msg.ReportId, "error", err)
		return nil, lookupError(err)
	}

	return connect.NewResponse(&api.GetReportResponse{Report: toAPIReport(report)}), nil
}

// ListReports returns reports newest first, optionally for one group.
func (s *ReportService) ListReports(ctx context.Context, req *connect.Request[api.ListReportsRequest]) (*connect.Response[api.ListReportsResponse], error) {
	slog.Info("ListReports request received", "group_id", req.Msg.GroupId)

	reports, err := s.store.ListReports(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("ListReports failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	sorted := attendance.SortReports(reports)
	result := make([]*api.AttendanceReport, len(sorted))
	for i := range sorted {
		result[i] = toAPIReport(&sorted[i])
	}

	slog.Info("ListReports successful", "count", len(result))

	return connect.NewResponse(&api.ListReportsResponse{Reports: result}), nil
}
