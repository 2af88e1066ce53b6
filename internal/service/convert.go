package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/shepherd/internal/attendance"
	"github.com/mmynk/shepherd/internal/dedupe"
	"github.com/mmynk/shepherd/internal/models"
	"github.com/mmynk/shepherd/internal/storage"
	"github.com/mmynk/shepherd/pkg/api"
)

func toAPIPerson(p *models.Person) *api.Person {
	history := make([]*api.MembershipInterval, len(p.History))
	for i, iv := range p.History {
		history[i] = &api.MembershipInterval{
			GroupId:   iv.GroupID,
			StartDate: iv.StartDate.String(),
		}
		if iv.EndDate != nil {
			history[i].EndDate = iv.EndDate.String()
		}
	}
	return &api.Person{
		Id:                p.ID,
		Name:              p.Name,
		Nickname:          p.Nickname,
		Email:             p.Email,
		Phone:             p.Phone,
		DateOfBirth:       p.DateOfBirth.String(),
		CurrentGroupId:    p.CurrentGroupID,
		MembershipHistory: history,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	return &api.Group{
		Id:         g.ID,
		Name:       g.Name,
		LeaderName: g.LeaderName,
		MeetingDay: g.MeetingDay,
		CreatedAt:  g.CreatedAt,
	}
}

func toAPIReport(r *models.AttendanceReport) *api.AttendanceReport {
	attendance := make(map[string]string, len(r.Attendance))
	for personID, status := range r.Attendance {
		attendance[personID] = string(status)
	}
	return &api.AttendanceReport{
		Id:             r.ID(),
		GroupId:        r.GroupID,
		ReportDate:     r.ReportDate.String(),
		Attendance:     attendance,
		GuestCount:     int32(r.GuestCount),
		OfferingAmount: r.OfferingAmount,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toAPIAlert(a attendance.Alert) *api.Alert {
	return &api.Alert{
		PersonId:            a.PersonID,
		DisplayName:         a.DisplayName,
		GroupId:             a.GroupID,
		ConsecutiveAbsences: int32(a.ConsecutiveAbsences),
		Severity:            string(a.Severity),
	}
}

func toAPICandidate(c *dedupe.Candidate) *api.DuplicateCandidate {
	if c == nil {
		return nil
	}
	reasons := make([]string, len(c.Reasons))
	for i, r := range c.Reasons {
		reasons[i] = string(r)
	}
	return &api.DuplicateCandidate{
		Person:  toAPIPerson(&c.Person),
		Reasons: reasons,
	}
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		Id:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	}
}

// parseDate parses an ISO date from a request field. Empty or blank is an
// error unless optional is set, in which case it yields the zero Date.
func parseDate(field, value string, optional bool) (models.Date, error) {
	d, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid %s: %w", field, err))
	}
	if d.IsZero() && !optional {
		return models.Date{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s required", field))
	}
	return d, nil
}

// lookupError maps a storage read failure to NotFound or Internal.
func lookupError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
