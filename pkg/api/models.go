package api

// Person is a member of the community.
type Person struct {
	Id                string                `json:"id"`
	Name              string                `json:"name"`
	Nickname          string                `json:"nickname,omitempty"`
	Email             string                `json:"email,omitempty"`
	Phone             string                `json:"phone,omitempty"`
	DateOfBirth       string                `json:"dateOfBirth,omitempty"`
	CurrentGroupId    string                `json:"currentGroupId,omitempty"`
	MembershipHistory []*MembershipInterval `json:"membershipHistory,omitempty"`
	CreatedAt         int64                 `json:"createdAt"`
	UpdatedAt         int64                 `json:"updatedAt"`
}

// MembershipInterval is one stretch of membership. An empty EndDate means ongoing.
type MembershipInterval struct {
	GroupId   string `json:"groupId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
}

// Group is a Connect group.
type Group struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	LeaderName string `json:"leaderName,omitempty"`
	MeetingDay string `json:"meetingDay,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
}

// AttendanceReport is the record of one group meeting.
// Attendance maps person id to "present", "absent" or "excused".
type AttendanceReport struct {
	Id             string            `json:"id"`
	GroupId        string            `json:"groupId"`
	ReportDate     string            `json:"reportDate"`
	Attendance     map[string]string `json:"attendance"`
	GuestCount     int32             `json:"guestCount"`
	OfferingAmount float64           `json:"offeringAmount"`
	CreatedAt      int64             `json:"createdAt"`
	UpdatedAt      int64             `json:"updatedAt"`
}

// DuplicateCandidate is an existing person a draft probably duplicates.
type DuplicateCandidate struct {
	Person  *Person  `json:"person"`
	Reasons []string `json:"reasons"`
}

// Alert flags a member with a run of consecutive absences.
// Severity is "alert" or "inactive".
type Alert struct {
	PersonId            string `json:"personId"`
	DisplayName         string `json:"displayName"`
	GroupId             string `json:"groupId"`
	ConsecutiveAbsences int32  `json:"consecutiveAbsences"`
	Severity            string `json:"severity"`
}

// User is a leader or administrator account.
type User struct {
	Id          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	CreatedAt   int64  `json:"createdAt"`
}
