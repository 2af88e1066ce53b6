package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/mmynk/shepherd/internal/models"
	"github.com/mmynk/shepherd/internal/storage"
)

// UpsertReport creates or replaces the report for report.GroupID and
// report.ReportDate. The entries are rewritten wholesale in the same transaction.
func (s *SQLiteStore) UpsertReport(ctx context.Context, report *models.AttendanceReport) (bool, error) {
	id := report.ID()
	now := time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var createdAt int64
	err = tx.QueryRowContext(ctx, "SELECT created_at FROM attendance_reports WHERE id = ?", id).Scan(&createdAt)
	created := err == sql.ErrNoRows
	if err != nil && !created {
		return false, fmt.Errorf("failed to check report existence: %w", err)
	}

	if created {
		createdAt = now
		_, err = tx.ExecContext(ctx,
			`INSERT INTO attendance_reports (id, group_id, report_date, guest_count, offering_amount, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, report.GroupID, report.ReportDate, report.GuestCount, report.OfferingAmount, createdAt, now,
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert report: %w", err)
		}
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE attendance_reports SET guest_count = ?, offering_amount = ?, updated_at = ? WHERE id = ?`,
			report.GuestCount, report.OfferingAmount, now, id,
		)
		if err != nil {
			return false, fmt.Errorf("failed to update report: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM attendance_entries WHERE report_id = ?", id); err != nil {
			return false, fmt.Errorf("failed to clear attendance entries: %w", err)
		}
	}

	personIDs := make([]string, 0, len(report.Attendance))
	for personID := range report.Attendance {
		personIDs = append(personIDs, personID)
	}
	sort.Strings(personIDs)

	for _, personID := range personIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO attendance_entries (report_id, person_id, status) VALUES (?, ?, ?)",
			id, personID, string(report.Attendance[personID]),
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert attendance entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	report.CreatedAt = createdAt
	report.UpdatedAt = now
	return created, nil
}

// GetReport retrieves a report and its attendance entries by ID.
func (s *SQLiteStore) GetReport(ctx context.Context, reportID string) (*models.AttendanceReport, error) {
	report := &models.AttendanceReport{Attendance: make(map[string]models.AttendanceStatus)}
	err := s.db.QueryRowContext(ctx,
		`SELECT group_id, report_date, guest_count, offering_amount, created_at, updated_at
		 FROM attendance_reports WHERE id = ?`,
		reportID,
	).Scan(&report.GroupID, &report.ReportDate, &report.GuestCount, &report.OfferingAmount,
		&report.CreatedAt, &report.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report %s: %w", reportID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT person_id, status FROM attendance_entries WHERE report_id = ?",
		reportID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var personID, status string
		if err := rows.Scan(&personID, &status); err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		report.Attendance[personID] = models.AttendanceStatus(status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance entries: %w", err)
	}

	return report, nil
}

// ListReports retrieves reports with their entries, most recent first.
// An empty groupID lists every group.
func (s *SQLiteStore) ListReports(ctx context.Context, groupID string) ([]models.AttendanceReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, report_date, guest_count, offering_amount, created_at, updated_at
		 FROM attendance_reports
		 WHERE ? = '' OR group_id = ?
		 ORDER BY report_date DESC, group_id`,
		groupID, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []models.AttendanceReport
	index := make(map[string]int)
	for rows.Next() {
		var id string
		r := models.AttendanceReport{Attendance: make(map[string]models.AttendanceStatus)}
		if err := rows.Scan(&id, &r.GroupID, &r.ReportDate, &r.GuestCount, &r.OfferingAmount,
			&r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		index[id] = len(reports)
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	entryRows, err := s.db.QueryContext(ctx,
		`SELECT e.report_id, e.person_id, e.status
		 FROM attendance_entries e
		 JOIN attendance_reports r ON r.id = e.report_id
		 WHERE ? = '' OR r.group_id = ?`,
		groupID, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	defer entryRows.Close()

	for entryRows.Next() {
		var reportID, personID, status string
		if err := entryRows.Scan(&reportID, &personID, &status); err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		if i, ok := index[reportID]; ok {
			reports[i].Attendance[personID] = models.AttendanceStatus(status)
		}
	}
	if err := entryRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance entries: %w", err)
	}

	return reports, nil
}
