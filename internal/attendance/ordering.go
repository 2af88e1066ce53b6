// Package attendance orders attendance reports and finds members at risk of
// drifting away from their Connect group.
package attendance

import (
	"log/slog"
	"sort"

	"github.com/mmynk/shepherd/internal/models"
)

// SortReports returns a copy of reports ordered by date, most recent first.
// Reports on the same date keep their relative order.
func SortReports(reports []models.AttendanceReport) []models.AttendanceReport {
	sorted := make([]models.AttendanceReport, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReportDate.After(sorted[j].ReportDate)
	})
	return sorted
}

// ReportsByGroup buckets reports by group, each bucket sorted most recent
// first. Reports without a group or a date cannot be placed and are skipped.
func ReportsByGroup(reports []models.AttendanceReport) map[string][]models.AttendanceReport {
	byGroup := make(map[string][]models.AttendanceReport)
	for _, r := range reports {
		if r.GroupID == "" || r.ReportDate.IsZero() {
			slog.Warn("Skipping malformed attendance report",
				"group_id", r.GroupID,
				"report_date", r.ReportDate.String(),
			)
			continue
		}
		byGroup[r.GroupID] = append(byGroup[r.GroupID], r)
	}
	for groupID, rs := range byGroup {
		byGroup[groupID] = SortReports(rs)
	}
	return byGroup
}
