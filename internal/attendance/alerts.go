package attendance

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/mmynk/shepherd/internal/membership"
	"github.com/mmynk/shepherd/internal/models"
)

const (
	// MinReports is how many reports a group needs before anyone is flagged.
	MinReports = 4

	// AlertStreak is the number of consecutive absences that raises an alert.
	AlertStreak = 4

	// InactiveStreak is the streak at which a member is considered inactive.
	InactiveStreak = 6

	// PlaceholderName is shown for people with neither nickname nor name.
	PlaceholderName = "Member"
)

// Severity classifies how far a member has drifted.
type Severity string

const (
	SeverityAlert    Severity = "alert"
	SeverityInactive Severity = "inactive"
)

// Alert flags a member who missed several meetings in a row.
type Alert struct {
	PersonID            string   `json:"personId"`
	DisplayName         string   `json:"displayName"`
	GroupID             string   `json:"groupId"`
	ConsecutiveAbsences int      `json:"consecutiveAbsences"`
	Severity            Severity `json:"severity"`
}

// ComputeAlerts scans each group's reports and flags current members whose
// most recent meetings were all missed.
//
// Only meetings held while the person was a documented member count: a
// report from before someone joined neither adds to nor breaks their streak.
// Groups with fewer than MinReports reports are skipped. The result is
// sorted by absences (descending), then group, display name and person ID,
// so the same snapshot always gives the same slice.
func ComputeAlerts(people []models.Person, reports []models.AttendanceReport) []Alert {
	byGroup := ReportsByGroup(reports)
	members := membersByGroup(people)

	var alerts []Alert
	for groupID, groupReports := range byGroup {
		if len(groupReports) < MinReports {
			continue
		}
		for _, p := range members[groupID] {
			if streak(p, groupID, groupReports, AlertStreak) < AlertStreak {
				continue
			}
			total := streak(p, groupID, groupReports, 0)
			alerts = append(alerts, Alert{
				PersonID:            p.ID,
				DisplayName:         DisplayName(p),
				GroupID:             groupID,
				ConsecutiveAbsences: total,
				Severity:            classify(total),
			})
		}
	}

	sortAlerts(alerts)
	return alerts
}

// streak counts consecutive absences from the most recent report backwards,
// skipping reports from dates the person was not a member. A positive limit
// stops the walk once that many absences are found.
//
// A report with no status for the person counts as not absent.
func streak(p models.Person, groupID string, reports []models.AttendanceReport, limit int) int {
	count := 0
	for _, r := range reports {
		if !membership.WasMemberAt(p, groupID, r.ReportDate) {
			continue
		}
		if r.Attendance[p.ID] != models.StatusAbsent {
			break
		}
		count++
		if limit > 0 && count >= limit {
			break
		}
	}
	return count
}

func classify(absences int) Severity {
	if absences >= InactiveStreak {
		return SeverityInactive
	}
	return SeverityAlert
}

// membersByGroup groups people by their current group and logs malformed
// history once per person, since the scan itself silently ignores it.
func membersByGroup(people []models.Person) map[string][]models.Person {
	byGroup := make(map[string][]models.Person)
	for _, p := range people {
		if bad := membership.Malformed(p.History); len(bad) > 0 {
			slog.Warn("Ignoring membership intervals without start date",
				"person_id", p.ID,
				"intervals", bad,
			)
		}
		if p.CurrentGroupID == "" {
			continue
		}
		byGroup[p.CurrentGroupID] = append(byGroup[p.CurrentGroupID], p)
	}
	return byGroup
}

// DisplayName picks the friendliest available name: nickname, then given
// name, then a placeholder.
func DisplayName(p models.Person) string {
	if nick := strings.TrimSpace(p.Nickname); nick != "" {
		return nick
	}
	if fields := strings.Fields(p.Name); len(fields) > 0 {
		return fields[0]
	}
	return PlaceholderName
}

func sortAlerts(alerts []Alert) {
	sort.Slice(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.ConsecutiveAbsences != b.ConsecutiveAbsences {
			return a.ConsecutiveAbsences > b.ConsecutiveAbsences
		}
		if a.GroupID != b.GroupID {
			return a.GroupID < b.GroupID
		}
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		return a.PersonID < b.PersonID
	})
}

// Summary counts alerts by severity.
type Summary struct {
	Alert    int
	Inactive int
}

// Summarize tallies alerts by severity.
func Summarize(alerts []Alert) Summary {
	var s Summary
	for _, a := range alerts {
		switch a.Severity {
		case SeverityInactive:
			s.Inactive++
		default:
			s.Alert++
		}
	}
	return s
}
