package models

// Group is a Connect group: a small fellowship that meets on a recurring day.
// A person belongs to at most one group at a time.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Connect Centro").
	Name string

	// LeaderName is the name of whoever leads the meetings. Free text.
	LeaderName string

	// MeetingDay is the usual weekday, e.g. "wednesday". Informational only.
	MeetingDay string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
