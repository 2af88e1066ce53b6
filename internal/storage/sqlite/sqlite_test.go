package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/shepherd/internal/membership"
	"github.com/mmynk/shepherd/internal/models"
	"github.com/mmynk/shepherd/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "shepherd-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStore_People(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, g := range []*models.Group{{ID: "g1", Name: "Centro"}, {ID: "g2", Name: "Norte"}} {
		if err := store.CreateGroup(ctx, g); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
	}

	t.Run("CreatePerson generates ID and timestamps", func(t *testing.T) {
		person := &models.Person{Name: "Maria Silva", Email: "m@x.com"}
		if err := store.CreatePerson(ctx, person); err != nil {
			t.Fatalf("CreatePerson failed: %v", err)
		}
		if person.ID == "" {
			t.Error("Expected person ID to be generated")
		}
		if person.CreatedAt == 0 || person.UpdatedAt == 0 {
			t.Error("Expected timestamps to be set")
		}
	})

	t.Run("GetPerson round-trips fields and history", func(t *testing.T) {
		end := models.MustParseDate("2024-02-01")
		original := &models.Person{
			Name:           "João Souza",
			Nickname:       "Jota",
			Phone:          "+55 11 5555-0000",
			DateOfBirth:    models.MustParseDate("1990-05-17"),
			CurrentGroupID: "g2",
			History: []models.MembershipInterval{
				{GroupID: "g1", StartDate: models.MustParseDate("2024-01-01"), EndDate: &end},
				{GroupID: "g2", StartDate: end},
			},
		}
		if err := store.CreatePerson(ctx, original); err != nil {
			t.Fatalf("CreatePerson failed: %v", err)
		}

		got, err := store.GetPerson(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetPerson failed: %v", err)
		}

		if got.Name != original.Name || got.Nickname != "Jota" || got.Phone != original.Phone {
			t.Errorf("Fields mismatch: got %+v", got)
		}
		if !got.DateOfBirth.Equal(original.DateOfBirth) {
			t.Errorf("DateOfBirth mismatch: got %s, want %s", got.DateOfBirth, original.DateOfBirth)
		}
		if got.CurrentGroupID != "g2" {
			t.Errorf("CurrentGroupID mismatch: got %q", got.CurrentGroupID)
		}
		if len(got.History) != 2 {
			t.Fatalf("History length: got %d, want 2", len(got.History))
		}
		if got.History[0].EndDate == nil || !got.History[0].EndDate.Equal(end) {
			t.Errorf("First interval should end %s, got %v", end, got.History[0].EndDate)
		}
		if !got.History[1].IsOpen() {
			t.Error("Second interval should be open")
		}
	})

	t.Run("GetPerson returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetPerson(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ApplyReassignment persists the change-set", func(t *testing.T) {
		person := &models.Person{Name: "Ana Costa"}
		if err := store.CreatePerson(ctx, person); err != nil {
			t.Fatalf("CreatePerson failed: %v", err)
		}

		first, err := membership.Reassign(*person, "g1", models.MustParseDate("2024-01-07"))
		if err != nil {
			t.Fatalf("Reassign failed: %v", err)
		}
		if err := store.ApplyReassignment(ctx, first); err != nil {
			t.Fatalf("ApplyReassignment failed: %v", err)
		}

		loaded, err := store.GetPerson(ctx, person.ID)
		if err != nil {
			t.Fatalf("GetPerson failed: %v", err)
		}
		second, err := membership.Reassign(*loaded, "g2", models.MustParseDate("2024-03-03"))
		if err != nil {
			t.Fatalf("Reassign failed: %v", err)
		}
		if err := store.ApplyReassignment(ctx, second); err != nil {
			t.Fatalf("ApplyReassignment failed: %v", err)
		}

		got, err := store.GetPerson(ctx, person.ID)
		if err != nil {
			t.Fatalf("GetPerson failed: %v", err)
		}
		if got.CurrentGroupID != "g2" {
			t.Errorf("CurrentGroupID: got %q, want g2", got.CurrentGroupID)
		}
		if len(got.History) != 2 {
			t.Fatalf("History length: got %d, want 2", len(got.History))
		}
		if err := membership.Validate(got.History); err != nil {
			t.Errorf("History invariants violated: %v", err)
		}
		if !membership.WasMemberAt(*got, "g1", models.MustParseDate("2024-02-01")) {
			t.Error("Expected membership in g1 during February")
		}

		// Applying the same change-set twice must fail without side effects.
		if err := store.ApplyReassignment(ctx, second); err == nil {
			t.Error("Expected error re-applying a change-set")
		}
		again, _ := store.GetPerson(ctx, person.ID)
		if len(again.History) != 2 {
			t.Errorf("History changed after failed write: %d intervals", len(again.History))
		}
	})

	t.Run("ListPeople attaches history", func(t *testing.T) {
		people, err := store.ListPeople(ctx)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if len(people) != 3 {
			t.Fatalf("Expected 3 people, got %d", len(people))
		}
		withHistory := 0
		for _, p := range people {
			if len(p.History) > 0 {
				withHistory++
			}
		}
		if withHistory != 2 {
			t.Errorf("Expected 2 people with history, got %d", withHistory)
		}
	})
}

func TestSQLiteStore_Reports(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	date := models.MustParseDate("2024-03-10")

	t.Run("UpsertReport creates then updates the same identity", func(t *testing.T) {
		report := &models.AttendanceReport{
			GroupID:    "g1",
			ReportDate: date,
			Attendance: map[string]models.AttendanceStatus{
				"p1": models.StatusPresent,
				"p2": models.StatusAbsent,
			},
			GuestCount:     2,
			OfferingAmount: 50.5,
		}

		created, err := store.UpsertReport(ctx, report)
		if err != nil {
			t.Fatalf("UpsertReport failed: %v", err)
		}
		if !created {
			t.Error("Expected first upsert to create")
		}

		report.Attendance = map[string]models.AttendanceStatus{"p1": models.StatusExcused}
		report.GuestCount = 3
		created, err = store.UpsertReport(ctx, report)
		if err != nil {
			t.Fatalf("UpsertReport failed: %v", err)
		}
		if created {
			t.Error("Expected second upsert to update")
		}

		got, err := store.GetReport(ctx, models.ReportID("g1", date))
		if err != nil {
			t.Fatalf("GetReport failed: %v", err)
		}
		if got.GuestCount != 3 {
			t.Errorf("GuestCount: got %d, want 3", got.GuestCount)
		}
		if len(got.Attendance) != 1 || got.Attendance["p1"] != models.StatusExcused {
			t.Errorf("Attendance not replaced: %v", got.Attendance)
		}
		if !got.ReportDate.Equal(date) {
			t.Errorf("ReportDate: got %s, want %s", got.ReportDate, date)
		}
	})

	t.Run("GetReport returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetReport(ctx, "g1_1999-01-01")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListReports filters by group and sorts by date", func(t *testing.T) {
		for _, r := range []*models.AttendanceReport{
			{GroupID: "g1", ReportDate: date.AddDays(-7), Attendance: map[string]models.AttendanceStatus{"p1": models.StatusAbsent}},
			{GroupID: "g1", ReportDate: date.AddDays(7)},
			{GroupID: "g2", ReportDate: date},
		} {
			if _, err := store.UpsertReport(ctx, r); err != nil {
				t.Fatalf("UpsertReport failed: %v", err)
			}
		}

		reports, err := store.ListReports(ctx, "g1")
		if err != nil {
			t.Fatalf("ListReports failed: %v", err)
		}
		if len(reports) != 3 {
			t.Fatalf("Expected 3 reports for g1, got %d", len(reports))
		}
		for i := 1; i < len(reports); i++ {
			if reports[i].ReportDate.After(reports[i-1].ReportDate) {
				t.Errorf("Reports not sorted descending at %d", i)
			}
		}
		if reports[2].Attendance["p1"] != models.StatusAbsent {
			t.Errorf("Entries not attached: %v", reports[2].Attendance)
		}

		all, err := store.ListReports(ctx, "")
		if err != nil {
			t.Fatalf("ListReports failed: %v", err)
		}
		if len(all) != 4 {
			t.Errorf("Expected 4 reports overall, got %d", len(all))
		}
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("leader@example.com", "Leader", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := store.GetUserByEmail(ctx, "leader@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.ID != user.ID || got.Role != models.RoleLeader {
		t.Errorf("Unexpected user: %+v", got)
	}

	if _, err := store.GetUserByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := store.CreateUser(ctx, models.NewUser("leader@example.com", "Other", "hash")); err == nil {
		t.Error("Expected duplicate email to fail")
	}
}
