package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/shepherd/internal/models"
)

func d(s string) models.Date { return models.MustParseDate(s) }

// weekly builds n reports for groupID, one per week ending on last, with
// statuses[i] recorded for personID in the i-th most recent report.
func weekly(groupID, last string, personID string, statuses ...models.AttendanceStatus) []models.AttendanceReport {
	end := d(last)
	reports := make([]models.AttendanceReport, len(statuses))
	for i, s := range statuses {
		reports[i] = models.AttendanceReport{
			GroupID:    groupID,
			ReportDate: end.AddDays(-7 * i),
			Attendance: map[string]models.AttendanceStatus{personID: s},
		}
	}
	return reports
}

func absences(n int) []models.AttendanceStatus {
	s := make([]models.AttendanceStatus, n)
	for i := range s {
		s[i] = models.StatusAbsent
	}
	return s
}

func member(id, name, groupID, since string) models.Person {
	return models.Person{
		ID:             id,
		Name:           name,
		CurrentGroupID: groupID,
		History:        []models.MembershipInterval{{GroupID: groupID, StartDate: d(since)}},
	}
}

func TestComputeAlerts_FourAbsencesIsAlert(t *testing.T) {
	people := []models.Person{member("p1", "Maria Silva", "g1", "2023-01-01")}
	reports := weekly("g1", "2024-03-31", "p1", absences(4)...)

	got := ComputeAlerts(people, reports)

	require.Len(t, got, 1)
	assert.Equal(t, Alert{
		PersonID:            "p1",
		DisplayName:         "Maria",
		GroupID:             "g1",
		ConsecutiveAbsences: 4,
		Severity:            SeverityAlert,
	}, got[0])
}

func TestComputeAlerts_SixAbsencesIsInactive(t *testing.T) {
	people := []models.Person{member("p1", "Maria Silva", "g1", "2023-01-01")}
	reports := weekly("g1", "2024-03-31", "p1", absences(6)...)

	got := ComputeAlerts(people, reports)

	require.Len(t, got, 1)
	assert.Equal(t, 6, got[0].ConsecutiveAbsences)
	assert.Equal(t, SeverityInactive, got[0].Severity)
}

func TestComputeAlerts_TotalCountsBeyondShortHorizon(t *testing.T) {
	people := []models.Person{member("p1", "Maria Silva", "g1", "2023-01-01")}
	statuses := append(absences(5), models.StatusPresent, models.StatusAbsent, models.StatusAbsent)
	reports := weekly("g1", "2024-03-31", "p1", statuses...)

	got := ComputeAlerts(people, reports)

	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].ConsecutiveAbsences)
	assert.Equal(t, SeverityAlert, got[0].Severity)
}

func TestComputeAlerts_StreakBrokenByPresenceOrExcuse(t *testing.T) {
	for _, breaker := range []models.AttendanceStatus{models.StatusPresent, models.StatusExcused, ""} {
		t.Run(string(breaker), func(t *testing.T) {
			people := []models.Person{member("p1", "Maria Silva", "g1", "2023-01-01")}
			statuses := []models.AttendanceStatus{
				models.StatusAbsent, models.StatusAbsent, models.StatusAbsent, breaker,
				models.StatusAbsent, models.StatusAbsent,
			}
			reports := weekly("g1", "2024-03-31", "p1", statuses...)

			assert.Empty(t, ComputeAlerts(people, reports))
		})
	}
}

func TestComputeAlerts_JoinedMidwayNotFlagged(t *testing.T) {
	// Reports on 03-31, 03-24, 03-17, 03-10. Joined between the 2nd and 3rd.
	people := []models.Person{member("p1", "Maria Silva", "g1", "2024-03-20")}
	reports := weekly("g1", "2024-03-31", "p1", absences(4)...)

	assert.Empty(t, ComputeAlerts(people, reports))
}

func TestComputeAlerts_ReportsBeforeJoiningAreSkipped(t *testing.T) {
	// Member of g2 until 03-01, then g1. The g1 meetings on 02-25 and 02-18
	// predate joining and are skipped without ending the streak.
	p := models.Person{
		ID:             "p1",
		Name:           "Maria Silva",
		CurrentGroupID: "g1",
		History: []models.MembershipInterval{
			{GroupID: "g2", StartDate: d("2023-01-01"), EndDate: endAt("2024-03-01")},
			{GroupID: "g1", StartDate: d("2024-03-01")},
		},
	}
	reports := weekly("g1", "2024-03-31", "p1", absences(7)...)

	got := ComputeAlerts([]models.Person{p}, reports)

	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].ConsecutiveAbsences)
	assert.Equal(t, SeverityAlert, got[0].Severity)
}

func TestComputeAlerts_RejoinedMemberCountsFromCurrentInterval(t *testing.T) {
	p := models.Person{
		ID:             "p1",
		Name:           "Maria Silva",
		CurrentGroupID: "g1",
		History: []models.MembershipInterval{
			{GroupID: "g1", StartDate: d("2024-01-01"), EndDate: endAt("2024-02-01")},
			{GroupID: "g2", StartDate: d("2024-02-01"), EndDate: endAt("2024-03-01")},
			{GroupID: "g1", StartDate: d("2024-03-01")},
		},
	}
	// 03-31 back to 01-07. For the current group only the open interval
	// counts, so the January meetings are skipped as well.
	reports := weekly("g1", "2024-03-31", "p1", absences(13)...)

	got := ComputeAlerts([]models.Person{p}, reports)

	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].ConsecutiveAbsences)
	assert.Equal(t, SeverityAlert, got[0].Severity)
}

func TestComputeAlerts_FewerThanMinReportsSkipped(t *testing.T) {
	people := []models.Person{member("p1", "Maria Silva", "g1", "2023-01-01")}
	reports := weekly("g1", "2024-03-31", "p1", absences(3)...)

	assert.Empty(t, ComputeAlerts(people, reports))
}

func TestComputeAlerts_JoinedAfterAllReports(t *testing.T) {
	people := []models.Person{member("p1", "Maria Silva", "g1", "2024-06-01")}
	reports := weekly("g1", "2024-03-31", "p1", absences(8)...)

	assert.Empty(t, ComputeAlerts(people, reports))
}

func TestComputeAlerts_LegacyMemberWithoutHistory(t *testing.T) {
	people := []models.Person{{ID: "p1", Name: "Maria Silva", CurrentGroupID: "g1"}}
	reports := weekly("g1", "2024-03-31", "p1", absences(4)...)

	got := ComputeAlerts(people, reports)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].ConsecutiveAbsences)
}

func TestComputeAlerts_OnlyCurrentMembers(t *testing.T) {
	left := models.Person{
		ID:   "p1",
		Name: "Maria Silva",
		History: []models.MembershipInterval{
			{GroupID: "g1", StartDate: d("2023-01-01"), EndDate: endAt("2024-04-01")},
		},
	}
	reports := weekly("g1", "2024-03-31", "p1", absences(6)...)

	assert.Empty(t, ComputeAlerts([]models.Person{left}, reports))
}

func TestComputeAlerts_UnsortedInputAndMalformedReports(t *testing.T) {
	people := []models.Person{member("p1", "Maria Silva", "g1", "2023-01-01")}
	reports := weekly("g1", "2024-03-31", "p1", models.StatusAbsent, models.StatusAbsent, models.StatusAbsent, models.StatusAbsent, models.StatusPresent)
	reports[0], reports[4] = reports[4], reports[0]
	reports = append(reports, models.AttendanceReport{GroupID: "g1"})

	got := ComputeAlerts(people, reports)

	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].ConsecutiveAbsences)
}

func TestComputeAlerts_Idempotent(t *testing.T) {
	people := []models.Person{
		member("p1", "Maria Silva", "g1", "2023-01-01"),
		member("p2", "João Souza", "g1", "2023-01-01"),
		member("p3", "Ana", "g2", "2023-01-01"),
	}
	people[1].Nickname = "Jota"

	var reports []models.AttendanceReport
	for i, r := range weekly("g1", "2024-03-31", "p1", absences(7)...) {
		r.Attendance["p2"] = models.StatusAbsent
		if i == 4 {
			r.Attendance["p2"] = models.StatusPresent
		}
		reports = append(reports, r)
	}
	reports = append(reports, weekly("g2", "2024-03-30", "p3", absences(4)...)...)

	first := ComputeAlerts(people, reports)
	second := ComputeAlerts(people, reports)

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, "p1", first[0].PersonID)
	assert.Equal(t, SeverityInactive, first[0].Severity)
	assert.Equal(t, "Jota", first[1].DisplayName)
	assert.Equal(t, 4, first[1].ConsecutiveAbsences)
	assert.Equal(t, "g1", first[1].GroupID)
	assert.Equal(t, "g2", first[2].GroupID)

	assert.Equal(t, Summary{Alert: 2, Inactive: 1}, Summarize(first))
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		person models.Person
		want   string
	}{
		{"nickname wins", models.Person{Name: "Maria Silva", Nickname: " Mari "}, "Mari"},
		{"given name", models.Person{Name: "  Maria   Silva"}, "Maria"},
		{"single name", models.Person{Name: "Maria"}, "Maria"},
		{"placeholder", models.Person{Name: "   "}, PlaceholderName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.person))
		})
	}
}

func endAt(s string) *models.Date {
	date := d(s)
	return &date
}
