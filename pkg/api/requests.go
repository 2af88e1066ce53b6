package api

// AuthService

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// GroupService

type CreateGroupRequest struct {
	Name       string `json:"name"`
	LeaderName string `json:"leaderName,omitempty"`
	MeetingDay string `json:"meetingDay,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// PeopleService

// CreatePersonRequest registers a new person. When GroupId is set the
// person joins it on JoinedOn (today when empty). A draft resembling an
// existing record is held back unless ConfirmedNew is set.
type CreatePersonRequest struct {
	Name         string `json:"name"`
	Nickname     string `json:"nickname,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	GroupId      string `json:"groupId,omitempty"`
	JoinedOn     string `json:"joinedOn,omitempty"`
	ConfirmedNew bool   `json:"confirmedNew,omitempty"`
}

// CreatePersonResponse carries either the created Person or, when the
// draft was held back, the Duplicate it resembles.
type CreatePersonResponse struct {
	Person    *Person             `json:"person,omitempty"`
	Duplicate *DuplicateCandidate `json:"duplicate,omitempty"`
}

type GetPersonRequest struct {
	PersonId string `json:"personId"`
}

type GetPersonResponse struct {
	Person *Person `json:"person"`
}

type ListPeopleRequest struct {
	// GroupId limits the result to current members of one group.
	GroupId string `json:"groupId,omitempty"`
	// AsOf, with GroupId, lists who belonged to the group on that date
	// according to membership history instead of current assignment.
	AsOf string `json:"asOf,omitempty"`
}

type ListPeopleResponse struct {
	People []*Person `json:"people"`
}

type DetectDuplicateRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

type DetectDuplicateResponse struct {
	Duplicate *DuplicateCandidate `json:"duplicate,omitempty"`
}

// ReassignPersonRequest moves a person to GroupId effective on
// EffectiveDate. An empty GroupId removes the person from every group.
type ReassignPersonRequest struct {
	PersonId      string `json:"personId"`
	GroupId       string `json:"groupId"`
	EffectiveDate string `json:"effectiveDate"`
}

type ReassignPersonResponse struct {
	Person  *Person `json:"person"`
	Changed bool    `json:"changed"`
}

type CheckMembershipRequest struct {
	PersonId string `json:"personId"`
	GroupId  string `json:"groupId"`
	Date     string `json:"date"`
}

type CheckMembershipResponse struct {
	Member bool `json:"member"`
}

// ReportService

type UpsertReportRequest struct {
	GroupId        string            `json:"groupId"`
	ReportDate     string            `json:"reportDate"`
	Attendance     map[string]string `json:"attendance"`
	GuestCount     int32             `json:"guestCount"`
	OfferingAmount float64           `json:"offeringAmount"`
}

type UpsertReportResponse struct {
	Report  *AttendanceReport `json:"report"`
	Created bool              `json:"created"`
	// NonMembers lists attendance keys that were not members of the group
	// on the report date. The report is saved regardless.
	NonMembers []string `json:"nonMembers,omitempty"`
}

type GetReportRequest struct {
	ReportId string `json:"reportId"`
}

type GetReportResponse struct {
	Report *AttendanceReport `json:"report"`
}

type ListReportsRequest struct {
	GroupId string `json:"groupId,omitempty"`
}

type ListReportsResponse struct {
	Reports []*AttendanceReport `json:"reports"`
}

// AlertService

type ComputeAttendanceAlertsRequest struct {
	GroupId string `json:"groupId,omitempty"`
}

type ComputeAttendanceAlertsResponse struct {
	Alerts        []*Alert `json:"alerts"`
	AlertCount    int32    `json:"alertCount"`
	InactiveCount int32    `json:"inactiveCount"`
}
