package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/shepherd/internal/membership"
	"github.com/mmynk/shepherd/internal/models"
	"github.com/mmynk/shepherd/internal/storage"
)

const personColumns = `id, name, nickname, email, phone, date_of_birth, current_group_id, created_at, updated_at`

// CreatePerson persists a new person and any initial membership history.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if person.CreatedAt == 0 {
		person.CreatedAt = now
	}
	person.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO persons (`+personColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		person.ID, person.Name, person.Nickname, person.Email, person.Phone,
		person.DateOfBirth, nullString(person.CurrentGroupID), person.CreatedAt, person.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}

	for seq, iv := range person.History {
		if err := insertInterval(ctx, tx, person.ID, seq, iv); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetPerson retrieves a person by ID, including membership history.
func (s *SQLiteStore) GetPerson(ctx context.Context, personID string) (*models.Person, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM persons WHERE id = ?`,
		personID,
	)
	person, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("person %s: %w", personID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT person_id, group_id, start_date, end_date
		 FROM membership_intervals WHERE person_id = ? ORDER BY seq`,
		personID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		_, iv, err := scanInterval(rows)
		if err != nil {
			return nil, err
		}
		person.History = append(person.History, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate membership history: %w", err)
	}

	return &person, nil
}

// ListPeople retrieves every person with membership history, oldest first.
func (s *SQLiteStore) ListPeople(ctx context.Context) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+personColumns+` FROM persons ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	index := make(map[string]int)
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		index[person.ID] = len(people)
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	ivRows, err := s.db.QueryContext(ctx,
		`SELECT person_id, group_id, start_date, end_date
		 FROM membership_intervals ORDER BY person_id, seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list membership history: %w", err)
	}
	defer ivRows.Close()

	for ivRows.Next() {
		personID, iv, err := scanInterval(ivRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[personID]; ok {
			people[i].History = append(people[i].History, iv)
		}
	}
	if err := ivRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate membership history: %w", err)
	}

	return people, nil
}

// ApplyReassignment writes a membership change-set in one transaction.
func (s *SQLiteStore) ApplyReassignment(ctx context.Context, change membership.Reassignment) error {
	person := change.Person
	if err := membership.Validate(person.History); err != nil {
		return fmt.Errorf("refusing membership change for person %s: %w", person.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if change.Closed != nil {
		res, err := tx.ExecContext(ctx,
			`UPDATE membership_intervals SET end_date = ?
			 WHERE person_id = ? AND seq = ? AND end_date IS NULL`,
			*change.Closed.EndDate, person.ID, change.ClosedIndex,
		)
		if err != nil {
			return fmt.Errorf("failed to close membership interval: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check closed interval: %w", err)
		}
		if n != 1 {
			return fmt.Errorf("failed to close membership interval %d of person %s: no open interval at that position",
				change.ClosedIndex, person.ID)
		}
	}

	if change.Opened != nil {
		if err := insertInterval(ctx, tx, person.ID, change.OpenedIndex, *change.Opened); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE persons SET current_group_id = ?, updated_at = ? WHERE id = ?`,
		nullString(person.CurrentGroupID), time.Now().Unix(), person.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update current group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check person update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("person %s: %w", person.ID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertInterval(ctx context.Context, tx *sql.Tx, personID string, seq int, iv models.MembershipInterval) error {
	var end any
	if iv.EndDate != nil {
		end = *iv.EndDate
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO membership_intervals (person_id, seq, group_id, start_date, end_date)
		 VALUES (?, ?, ?, ?, ?)`,
		personID, seq, iv.GroupID, iv.StartDate, end,
	)
	if err != nil {
		return fmt.Errorf("failed to insert membership interval: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (models.Person, error) {
	var p models.Person
	var groupID sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Nickname, &p.Email, &p.Phone,
		&p.DateOfBirth, &groupID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Person{}, err
	}
	if groupID.Valid {
		p.CurrentGroupID = groupID.String
	}
	return p, nil
}

func scanInterval(row rowScanner) (string, models.MembershipInterval, error) {
	var personID string
	var iv models.MembershipInterval
	var end models.Date
	if err := row.Scan(&personID, &iv.GroupID, &iv.StartDate, &end); err != nil {
		return "", models.MembershipInterval{}, fmt.Errorf("failed to scan membership interval: %w", err)
	}
	if !end.IsZero() {
		iv.EndDate = &end
	}
	return personID, iv, nil
}

// nullString stores empty strings as NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
