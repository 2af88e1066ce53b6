package membership

import (
	"sort"

	"github.com/mmynk/shepherd/internal/models"
)

// Ledger is an index of membership history keyed by person ID, built from a
// snapshot. It answers WasMemberAt for people known only by ID, such as the
// keys of an attendance report.
type Ledger struct {
	people map[string]models.Person
}

// NewLedger indexes the given snapshot. Later entries with the same ID win.
func NewLedger(people []models.Person) *Ledger {
	l := &Ledger{people: make(map[string]models.Person, len(people))}
	for _, p := range people {
		l.people[p.ID] = p
	}
	return l
}

// Person returns the indexed record for id.
func (l *Ledger) Person(id string) (models.Person, bool) {
	p, ok := l.people[id]
	return p, ok
}

// WasMemberAt is WasMemberAt for the person with the given ID.
// Unknown people were never members.
func (l *Ledger) WasMemberAt(personID, groupID string, date models.Date) bool {
	p, ok := l.people[personID]
	if !ok {
		return false
	}
	return WasMemberAt(p, groupID, date)
}

// MembersOn lists, sorted, the IDs of everyone who belonged to groupID on date.
func (l *Ledger) MembersOn(groupID string, date models.Date) []string {
	var ids []string
	for id, p := range l.people {
		if WasMemberAt(p, groupID, date) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
