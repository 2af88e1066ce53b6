package models

import "fmt"

// AttendanceStatus is the outcome recorded for one person at one meeting.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusExcused AttendanceStatus = "excused"
)

// Valid reports whether s is one of the known statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusExcused:
		return true
	}
	return false
}

// AttendanceReport is the record of one group meeting.
// Its identity (GroupID + ReportDate) never changes; the content may be edited.
type AttendanceReport struct {
	GroupID    string
	ReportDate Date

	// Attendance maps person ID to the recorded status.
	Attendance map[string]AttendanceStatus

	GuestCount     int
	OfferingAmount float64

	CreatedAt int64
	UpdatedAt int64
}

// ID returns the deterministic report identity, e.g. "g1_2024-03-10".
func (r AttendanceReport) ID() string {
	return ReportID(r.GroupID, r.ReportDate)
}

// ReportID derives the identity of the report for a group and date.
// Writing twice with the same pair updates the same report.
func ReportID(groupID string, date Date) string {
	return fmt.Sprintf("%s_%s", groupID, date.String())
}
