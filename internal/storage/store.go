// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/shepherd/internal/membership"
	"github.com/mmynk/shepherd/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations the services rely on.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	PersonStore
	GroupStore
	ReportStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}

// PersonStore persists people and their membership history.
type PersonStore interface {
	// CreatePerson persists a new person, including any initial history.
	// ID, CreatedAt and UpdatedAt are populated by the store when empty.
	CreatePerson(ctx context.Context, person *models.Person) error

	// GetPerson retrieves a person with full history.
	// Returns ErrNotFound if the person does not exist.
	GetPerson(ctx context.Context, personID string) (*models.Person, error)

	// ListPeople returns every person with full history, oldest first.
	ListPeople(ctx context.Context) ([]models.Person, error)

	// ApplyReassignment writes a membership change-set atomically: the
	// closed interval, the opened interval and the person's current group
	// are written together or not at all.
	ApplyReassignment(ctx context.Context, change membership.Reassignment) error
}

// GroupStore persists Connect groups.
type GroupStore interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
}

// ReportStore persists attendance reports.
type ReportStore interface {
	// UpsertReport creates or replaces the report identified by its group
	// and date. Returns true when a new report was created.
	UpsertReport(ctx context.Context, report *models.AttendanceReport) (bool, error)

	// GetReport retrieves a report by its derived ID.
	GetReport(ctx context.Context, reportID string) (*models.AttendanceReport, error)

	// ListReports returns reports, optionally limited to one group.
	ListReports(ctx context.Context, groupID string) ([]models.AttendanceReport, error)
}

// UserStore persists leader and administrator accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
