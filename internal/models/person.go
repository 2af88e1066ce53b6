package models

// Person is a member of the community.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string

	// Name is the full name as registered.
	Name string

	// Nickname is what the person is usually called. Optional; preferred for display.
	Nickname string

	// Email, Phone and DateOfBirth are optional contact details. They also
	// act as exact-match triggers for duplicate detection.
	Email       string
	Phone       string
	DateOfBirth Date

	// CurrentGroupID is the Connect group the person attends now, or "" for none.
	CurrentGroupID string

	// History is the ordered membership log, oldest first.
	// At most one interval is open and no two intervals overlap.
	History []MembershipInterval

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// Clone returns a copy of p whose History can be modified freely.
func (p Person) Clone() Person {
	if p.History != nil {
		history := make([]MembershipInterval, len(p.History))
		for i, iv := range p.History {
			history[i] = iv.clone()
		}
		p.History = history
	}
	return p
}

// OpenInterval returns the index of the open interval, or -1.
func (p Person) OpenInterval() int {
	for i := range p.History {
		if p.History[i].IsOpen() {
			return i
		}
	}
	return -1
}

// MembershipInterval records that a person belonged to a group from
// StartDate through EndDate inclusive. A nil EndDate means ongoing.
type MembershipInterval struct {
	GroupID   string
	StartDate Date
	EndDate   *Date
}

// IsOpen reports whether the interval has no end.
func (iv MembershipInterval) IsOpen() bool {
	return iv.EndDate == nil
}

// Contains reports whether date falls within the interval.
func (iv MembershipInterval) Contains(date Date) bool {
	if date.Before(iv.StartDate) {
		return false
	}
	return iv.EndDate == nil || !date.After(*iv.EndDate)
}

func (iv MembershipInterval) clone() MembershipInterval {
	if iv.EndDate != nil {
		end := *iv.EndDate
		iv.EndDate = &end
	}
	return iv
}
