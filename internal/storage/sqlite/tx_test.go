package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/shepherd/internal/membership"
	"github.com/mmynk/shepherd/internal/models"
	"github.com/mmynk/shepherd/internal/storage"
)

func TestApplyReassignment_Transaction(t *testing.T) {
	ctx := context.Background()

	person := models.Person{
		ID:             "p1",
		CurrentGroupID: "g1",
		History:        []models.MembershipInterval{{GroupID: "g1", StartDate: models.MustParseDate("2024-01-07")}},
	}
	change, err := membership.Reassign(person, "g2", models.MustParseDate("2024-03-03"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		mock  func(mock sqlmock.Sqlmock)
		errIs error
	}{
		{
			name: "success commits",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE membership_intervals SET end_date`).
					WithArgs(models.MustParseDate("2024-03-03"), "p1", 0).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO membership_intervals`).
					WithArgs("p1", 1, "g2", models.MustParseDate("2024-03-03"), nil).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE persons SET current_group_id`).
					WithArgs("g2", sqlmock.AnyArg(), "p1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "insert failure rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE membership_intervals SET end_date`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO membership_intervals`).
					WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
		},
		{
			name: "interval already closed rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE membership_intervals SET end_date`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
		},
		{
			name: "missing person rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE membership_intervals SET end_date`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO membership_intervals`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE persons SET current_group_id`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			errIs: storage.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewWithDB(db).ApplyReassignment(ctx, change)

			if tt.name == "success commits" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestApplyReassignment_RefusesInvalidHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	opened := models.MembershipInterval{GroupID: "g2", StartDate: models.MustParseDate("2024-03-03")}
	change := membership.Reassignment{
		Person: models.Person{
			ID:             "p1",
			CurrentGroupID: "g2",
			History: []models.MembershipInterval{
				{GroupID: "g1", StartDate: models.MustParseDate("2024-01-07")},
				opened,
			},
		},
		Opened:      &opened,
		OpenedIndex: 1,
	}

	err = NewWithDB(db).ApplyReassignment(context.Background(), change)
	require.ErrorIs(t, err, membership.ErrInvalidHistory)
	require.NoError(t, mock.ExpectationsWereMet())
}
