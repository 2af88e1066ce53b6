package sqlite

import "database/sql"

// schema sets up the database. It runs on startup to ensure tables exist.
// Dates are ISO TEXT (YYYY-MM-DD); timestamps are Unix seconds.
const schema = `
CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    leader_name TEXT NOT NULL DEFAULT '',
    meeting_day TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS persons (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    nickname TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    date_of_birth TEXT,
    current_group_id TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (current_group_id) REFERENCES groups(id) ON DELETE SET NULL
);

-- Append/close-only: rows are inserted open and later get an end_date.
CREATE TABLE IF NOT EXISTS membership_intervals (
    person_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    group_id TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT,
    PRIMARY KEY (person_id, seq),
    FOREIGN KEY (person_id) REFERENCES persons(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS attendance_reports (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL,
    report_date TEXT NOT NULL,
    guest_count INTEGER NOT NULL DEFAULT 0,
    offering_amount REAL NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    UNIQUE (group_id, report_date)
);

CREATE TABLE IF NOT EXISTS attendance_entries (
    report_id TEXT NOT NULL,
    person_id TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('present', 'absent', 'excused')),
    PRIMARY KEY (report_id, person_id),
    FOREIGN KEY (report_id) REFERENCES attendance_reports(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'leader',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_persons_current_group_id ON persons(current_group_id);
CREATE INDEX IF NOT EXISTS idx_membership_intervals_group_id ON membership_intervals(group_id);
CREATE INDEX IF NOT EXISTS idx_attendance_reports_group_id ON attendance_reports(group_id);
CREATE INDEX IF NOT EXISTS idx_attendance_entries_report_id ON attendance_entries(report_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
