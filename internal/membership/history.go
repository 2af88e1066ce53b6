// Package membership answers questions about a person's Connect group
// history and computes the change-set for moving a person between groups.
//
// Histories are append/close-only logs. Nothing here mutates its input or
// touches storage: Reassign returns the records to write and the caller
// applies them in one transaction.
package membership

import (
	"errors"
	"fmt"

	"github.com/mmynk/shepherd/internal/models"
)

var (
	// ErrBackdated is returned when a reassignment would start before the
	// open interval (or the latest closed one), overlapping existing history.
	ErrBackdated = errors.New("effective date precedes existing membership history")

	// ErrMissingDate is returned when a reassignment has no effective date.
	ErrMissingDate = errors.New("effective date is required")

	// ErrInvalidHistory is wrapped by every Validate failure.
	ErrInvalidHistory = errors.New("invalid membership history")
)

// WasMemberAt reports whether p belonged to groupID on date.
//
// For the person's current group the open interval decides. A person whose
// current group is set but who has no history at all is treated as a member
// since forever: such records predate history tracking and under-reporting
// them would hide real absences.
//
// Intervals without a start date are malformed and ignored; see Malformed.
func WasMemberAt(p models.Person, groupID string, date models.Date) bool {
	if groupID == "" {
		return false
	}

	if p.CurrentGroupID == groupID {
		if len(p.History) == 0 {
			return true
		}
		for _, iv := range p.History {
			if iv.IsOpen() && iv.GroupID == groupID && !iv.StartDate.IsZero() {
				return !date.Before(iv.StartDate)
			}
		}
	}

	for _, iv := range p.History {
		if iv.GroupID != groupID {
			continue
		}
		if !iv.StartDate.IsZero() && iv.Contains(date) {
			return true
		}
	}
	return false
}

// Reassignment is the change-set produced by Reassign.
type Reassignment struct {
	// Person is the updated copy: new CurrentGroupID and History.
	Person models.Person

	// Closed is the interval that was open before, now ending on the
	// effective date. ClosedIndex is its position in Person.History.
	Closed      *models.MembershipInterval
	ClosedIndex int

	// Opened is the new open interval, if the person joined a group.
	// OpenedIndex is its position in Person.History.
	Opened      *models.MembershipInterval
	OpenedIndex int

	changed bool
}

// Changed reports whether anything needs to be written.
func (r Reassignment) Changed() bool {
	return r.changed
}

// Reassign moves p to newGroupID as of effective. An empty newGroupID
// removes the person from any group.
//
// The open interval, if any, is closed on the effective date and a new open
// interval starting on that date is appended. Moving a person to the group
// they are already in returns an unchanged copy with no intervals.
func Reassign(p models.Person, newGroupID string, effective models.Date) (Reassignment, error) {
	if effective.IsZero() {
		return Reassignment{}, ErrMissingDate
	}

	updated := p.Clone()
	result := Reassignment{Person: updated, ClosedIndex: -1, OpenedIndex: -1}

	open := updated.OpenInterval()
	if newGroupID == p.CurrentGroupID {
		return result, nil
	}

	if err := checkNotBackdated(updated.History, effective); err != nil {
		return Reassignment{}, err
	}

	if open >= 0 {
		end := effective
		updated.History[open].EndDate = &end
		closed := updated.History[open]
		result.Closed = &closed
		result.ClosedIndex = open
	}

	if newGroupID != "" {
		opened := models.MembershipInterval{GroupID: newGroupID, StartDate: effective}
		updated.History = append(updated.History, opened)
		result.Opened = &opened
		result.OpenedIndex = len(updated.History) - 1
	}

	updated.CurrentGroupID = newGroupID
	result.Person = updated
	result.changed = true
	return result, nil
}

// checkNotBackdated ensures a new boundary at effective does not cut into
// existing intervals. Touching (effective equal to a start or end) is allowed.
func checkNotBackdated(history []models.MembershipInterval, effective models.Date) error {
	for _, iv := range history {
		if iv.StartDate.IsZero() {
			continue
		}
		if effective.Before(iv.StartDate) {
			return fmt.Errorf("%w: %s is before interval in %s starting %s",
				ErrBackdated, effective, iv.GroupID, iv.StartDate)
		}
		if iv.EndDate != nil && effective.Before(*iv.EndDate) {
			return fmt.Errorf("%w: %s is before interval in %s ending %s",
				ErrBackdated, effective, iv.GroupID, iv.EndDate)
		}
	}
	return nil
}

// Validate checks the history invariants: at most one open interval, every
// interval ends on or after its start, and no two intervals overlap (sharing
// a boundary date is allowed).
func Validate(history []models.MembershipInterval) error {
	open := 0
	for i, iv := range history {
		if iv.IsOpen() {
			open++
		}
		if iv.EndDate != nil && iv.EndDate.Before(iv.StartDate) {
			return fmt.Errorf("%w: interval %d ends before it starts", ErrInvalidHistory, i)
		}
		for j := i + 1; j < len(history); j++ {
			if overlaps(iv, history[j]) {
				return fmt.Errorf("%w: intervals %d and %d overlap", ErrInvalidHistory, i, j)
			}
		}
	}
	if open > 1 {
		return fmt.Errorf("%w: %d open intervals, at most one allowed", ErrInvalidHistory, open)
	}
	return nil
}

func overlaps(a, b models.MembershipInterval) bool {
	return startsBeforeEnd(a, b) && startsBeforeEnd(b, a)
}

// startsBeforeEnd reports whether a starts strictly before b ends.
func startsBeforeEnd(a, b models.MembershipInterval) bool {
	return b.EndDate == nil || a.StartDate.Before(*b.EndDate)
}

// Malformed returns the indexes of intervals missing a start date.
func Malformed(history []models.MembershipInterval) []int {
	var idx []int
	for i, iv := range history {
		if iv.StartDate.IsZero() {
			idx = append(idx, i)
		}
	}
	return idx
}
