package dedupe

import (
	"strings"

	"github.com/mmynk/shepherd/internal/models"
)

// DefaultThreshold is the name similarity required to flag a duplicate.
const DefaultThreshold = 0.8

// Reason names an exact field that matched between two records.
type Reason string

const (
	ReasonEmail       Reason = "email"
	ReasonPhone       Reason = "phone"
	ReasonDateOfBirth Reason = "date_of_birth"
)

// Candidate is an existing person that probably is the draft being registered.
// It is computed on demand and never stored.
type Candidate struct {
	Person  models.Person
	Reasons []Reason
}

// Detect returns the first existing person that shares an exact field with
// draft and whose name is similar at threshold, or nil.
//
// Records without a name are ignored, as is a record with the draft's own ID
// (so editing a person never flags itself). Missing fields never match.
func Detect(draft models.Person, existing []models.Person, threshold float64) *Candidate {
	for _, p := range existing {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		if draft.ID != "" && p.ID == draft.ID {
			continue
		}

		reasons := Triggers(draft, p)
		if len(reasons) == 0 {
			continue
		}
		if !NamesSimilar(draft.Name, p.Name, threshold) {
			continue
		}

		return &Candidate{Person: p, Reasons: reasons}
	}
	return nil
}

// Triggers lists the exact fields shared by a and b.
func Triggers(a, b models.Person) []Reason {
	var reasons []Reason
	if ea := normalizeEmail(a.Email); ea != "" && ea == normalizeEmail(b.Email) {
		reasons = append(reasons, ReasonEmail)
	}
	if pa := Digits(a.Phone); pa != "" && pa == Digits(b.Phone) {
		reasons = append(reasons, ReasonPhone)
	}
	if !a.DateOfBirth.IsZero() && a.DateOfBirth.Equal(b.DateOfBirth) {
		reasons = append(reasons, ReasonDateOfBirth)
	}
	return reasons
}

// Pair is two existing records that look like the same person.
type Pair struct {
	Existing  models.Person
	Duplicate models.Person
	Reasons   []Reason
}

// Scan checks every person against those listed before it and returns each
// probable duplicate with the earliest record it matches. Used for auditing
// data that was imported without going through Detect.
func Scan(people []models.Person, threshold float64) []Pair {
	var pairs []Pair
	for i := 1; i < len(people); i++ {
		if c := Detect(people[i], people[:i], threshold); c != nil {
			pairs = append(pairs, Pair{Existing: c.Person, Duplicate: people[i], Reasons: c.Reasons})
		}
	}
	return pairs
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Digits strips everything but ASCII digits from a phone number.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
