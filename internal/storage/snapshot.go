package storage

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/shepherd/internal/models"
)

// SnapshotStore is the read side needed to compute attendance analytics.
type SnapshotStore interface {
	ListPeople(ctx context.Context) ([]models.Person, error)
	ListReports(ctx context.Context, groupID string) ([]models.AttendanceReport, error)
}

// LoadSnapshot reads everyone on record and the reports of groupID (all
// groups when empty) concurrently.
func LoadSnapshot(ctx context.Context, store SnapshotStore, groupID string) ([]models.Person, []models.AttendanceReport, error) {
	var (
		people  []models.Person
		reports []models.AttendanceReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		people, err = store.ListPeople(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		reports, err = store.ListReports(gctx, groupID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return people, reports, nil
}
