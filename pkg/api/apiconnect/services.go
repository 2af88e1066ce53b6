package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/shepherd/pkg/api"
)

const (
	// AuthServiceName is the fully-qualified name of the AuthService.
	AuthServiceName = "shepherd.v1.AuthService"
	// GroupServiceName is the fully-qualified name of the GroupService.
	GroupServiceName = "shepherd.v1.GroupService"
	// PeopleServiceName is the fully-qualified name of the PeopleService.
	PeopleServiceName = "shepherd.v1.PeopleService"
	// ReportServiceName is the fully-qualified name of the ReportService.
	ReportServiceName = "shepherd.v1.ReportService"
	// AlertServiceName is the fully-qualified name of the AlertService.
	AlertServiceName = "shepherd.v1.AlertService"
)

// Procedure paths, one per RPC.
const (
	AuthServiceRegisterProcedure                 = "/shepherd.v1.AuthService/Register"
	AuthServiceLoginProcedure                    = "/shepherd.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure           = "/shepherd.v1.AuthService/GetCurrentUser"
	GroupServiceCreateGroupProcedure             = "/shepherd.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure                = "/shepherd.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure              = "/shepherd.v1.GroupService/ListGroups"
	PeopleServiceCreatePersonProcedure           = "/shepherd.v1.PeopleService/CreatePerson"
	PeopleServiceGetPersonProcedure              = "/shepherd.v1.PeopleService/GetPerson"
	PeopleServiceListPeopleProcedure             = "/shepherd.v1.PeopleService/ListPeople"
	PeopleServiceDetectDuplicateProcedure        = "/shepherd.v1.PeopleService/DetectDuplicate"
	PeopleServiceReassignPersonProcedure         = "/shepherd.v1.PeopleService/ReassignPerson"
	PeopleServiceCheckMembershipProcedure        = "/shepherd.v1.PeopleService/CheckMembership"
	ReportServiceUpsertReportProcedure           = "/shepherd.v1.ReportService/UpsertReport"
	ReportServiceGetReportProcedure              = "/shepherd.v1.ReportService/GetReport"
	ReportServiceListReportsProcedure            = "/shepherd.v1.ReportService/ListReports"
	AlertServiceComputeAttendanceAlertsProcedure = "/shepherd.v1.AlertService/ComputeAttendanceAlerts"
)

// AuthServiceHandler is implemented by the server; the AuthService signs leaders in and issues bearer tokens.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	registerHandler := connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...)
	loginHandler := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)
	getCurrentUserHandler := connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...)
	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceRegisterProcedure:
			registerHandler.ServeHTTP(w, r)
		case AuthServiceLoginProcedure:
			loginHandler.ServeHTTP(w, r)
		case AuthServiceGetCurrentUserProcedure:
			getCurrentUserHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AuthServiceClient is a client for the AuthService.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
}

// NewAuthServiceClient constructs a client for the AuthService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		register:       connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

type authServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login          *connect.Client[api.LoginRequest, api.LoginResponse]
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// GroupServiceHandler is implemented by the server; the GroupService manages Connect groups.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createGroupHandler := connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	getGroupHandler := connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...)
	listGroupsHandler := connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...)
	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			createGroupHandler.ServeHTTP(w, r)
		case GroupServiceGetGroupProcedure:
			getGroupHandler.ServeHTTP(w, r)
		case GroupServiceListGroupsProcedure:
			listGroupsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// GroupServiceClient is a client for the GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
}

// NewGroupServiceClient constructs a client for the GroupService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &groupServiceClient{
		createGroup: connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:    connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:  connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup    *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups  *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

// PeopleServiceHandler is implemented by the server; the PeopleService registers people and maintains their membership history.
type PeopleServiceHandler interface {
	CreatePerson(context.Context, *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error)
	GetPerson(context.Context, *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error)
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	DetectDuplicate(context.Context, *connect.Request[api.DetectDuplicateRequest]) (*connect.Response[api.DetectDuplicateResponse], error)
	ReassignPerson(context.Context, *connect.Request[api.ReassignPersonRequest]) (*connect.Response[api.ReassignPersonResponse], error)
	CheckMembership(context.Context, *connect.Request[api.CheckMembershipRequest]) (*connect.Response[api.CheckMembershipResponse], error)
}

// NewPeopleServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewPeopleServiceHandler(svc PeopleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createPersonHandler := connect.NewUnaryHandler(PeopleServiceCreatePersonProcedure, svc.CreatePerson, opts...)
	getPersonHandler := connect.NewUnaryHandler(PeopleServiceGetPersonProcedure, svc.GetPerson, opts...)
	listPeopleHandler := connect.NewUnaryHandler(PeopleServiceListPeopleProcedure, svc.ListPeople, opts...)
	detectDuplicateHandler := connect.NewUnaryHandler(PeopleServiceDetectDuplicateProcedure, svc.DetectDuplicate, opts...)
	reassignPersonHandler := connect.NewUnaryHandler(PeopleServiceReassignPersonProcedure, svc.ReassignPerson, opts...)
	checkMembershipHandler := connect.NewUnaryHandler(PeopleServiceCheckMembershipProcedure, svc.CheckMembership, opts...)
	return "/" + PeopleServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PeopleServiceCreatePersonProcedure:
			createPersonHandler.ServeHTTP(w, r)
		case PeopleServiceGetPersonProcedure:
			getPersonHandler.ServeHTTP(w, r)
		case PeopleServiceListPeopleProcedure:
			listPeopleHandler.ServeHTTP(w, r)
		case PeopleServiceDetectDuplicateProcedure:
			detectDuplicateHandler.ServeHTTP(w, r)
		case PeopleServiceReassignPersonProcedure:
			reassignPersonHandler.ServeHTTP(w, r)
		case PeopleServiceCheckMembershipProcedure:
			checkMembershipHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// PeopleServiceClient is a client for the PeopleService.
type PeopleServiceClient interface {
	CreatePerson(context.Context, *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error)
	GetPerson(context.Context, *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error)
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	DetectDuplicate(context.Context, *connect.Request[api.DetectDuplicateRequest]) (*connect.Response[api.DetectDuplicateResponse], error)
	ReassignPerson(context.Context, *connect.Request[api.ReassignPersonRequest]) (*connect.Response[api.ReassignPersonResponse], error)
	CheckMembership(context.Context, *connect.Request[api.CheckMembershipRequest]) (*connect.Response[api.CheckMembershipResponse], error)
}

// NewPeopleServiceClient constructs a client for the PeopleService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewPeopleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PeopleServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &peopleServiceClient{
		createPerson:    connect.NewClient[api.CreatePersonRequest, api.CreatePersonResponse](httpClient, baseURL+PeopleServiceCreatePersonProcedure, opts...),
		getPerson:       connect.NewClient[api.GetPersonRequest, api.GetPersonResponse](httpClient, baseURL+PeopleServiceGetPersonProcedure, opts...),
		listPeople:      connect.NewClient[api.ListPeopleRequest, api.ListPeopleResponse](httpClient, baseURL+PeopleServiceListPeopleProcedure, opts...),
		detectDuplicate: connect.NewClient[api.DetectDuplicateRequest, api.DetectDuplicateResponse](httpClient, baseURL+PeopleServiceDetectDuplicateProcedure, opts...),
		reassignPerson:  connect.NewClient[api.ReassignPersonRequest, api.ReassignPersonResponse](httpClient, baseURL+PeopleServiceReassignPersonProcedure, opts...),
		checkMembership: connect.NewClient[api.CheckMembershipRequest, api.CheckMembershipResponse](httpClient, baseURL+PeopleServiceCheckMembershipProcedure, opts...),
	}
}

type peopleServiceClient struct {
	createPerson    *connect.Client[api.CreatePersonRequest, api.CreatePersonResponse]
	getPerson       *connect.Client[api.GetPersonRequest, api.GetPersonResponse]
	listPeople      *connect.Client[api.ListPeopleRequest, api.ListPeopleResponse]
	detectDuplicate *connect.Client[api.DetectDuplicateRequest, api.DetectDuplicateResponse]
	reassignPerson  *connect.Client[api.ReassignPersonRequest, api.ReassignPersonResponse]
	checkMembership *connect.Client[api.CheckMembershipRequest, api.CheckMembershipResponse]
}

func (c *peopleServiceClient) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	return c.createPerson.CallUnary(ctx, req)
}

func (c *peopleServiceClient) GetPerson(ctx context.Context, req *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error) {
	return c.getPerson.CallUnary(ctx, req)
}

func (c *peopleServiceClient) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *peopleServiceClient) DetectDuplicate(ctx context.Context, req *connect.Request[api.DetectDuplicateRequest]) (*connect.Response[api.DetectDuplicateResponse], error) {
	return c.detectDuplicate.CallUnary(ctx, req)
}

func (c *peopleServiceClient) ReassignPerson(ctx context.Context, req *connect.Request[api.ReassignPersonRequest]) (*connect.Response[api.ReassignPersonResponse], error) {
	return c.reassignPerson.CallUnary(ctx, req)
}

func (c *peopleServiceClient) CheckMembership(ctx context.Context, req *connect.Request[api.CheckMembershipRequest]) (*connect.Response[api.CheckMembershipResponse], error) {
	return c.checkMembership.CallUnary(ctx, req)
}

// ReportServiceHandler is implemented by the server; the ReportService records one attendance report per group per meeting date.
type ReportServiceHandler interface {
	UpsertReport(context.Context, *connect.Request[api.UpsertReportRequest]) (*connect.Response[api.UpsertReportResponse], error)
	GetReport(context.Context, *connect.Request[api.GetReportRequest]) (*connect.Response[api.GetReportResponse], error)
	ListReports(context.Context, *connect.Request[api.ListReportsRequest]) (*connect.Response[api.ListReportsResponse], error)
}

// NewReportServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewReportServiceHandler(svc ReportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	upsertReportHandler := connect.NewUnaryHandler(ReportServiceUpsertReportProcedure, svc.UpsertReport, opts...)
	getReportHandler := connect.NewUnaryHandler(ReportServiceGetReportProcedure, svc.GetReport, opts...)
	listReportsHandler := connect.NewUnaryHandler(ReportServiceListReportsProcedure, svc.ListReports, opts...)
	return "/" + ReportServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ReportServiceUpsertReportProcedure:
			upsertReportHandler.ServeHTTP(w, r)
		case ReportServiceGetReportProcedure:
			getReportHandler.ServeHTTP(w, r)
		case ReportServiceListReportsProcedure:
			listReportsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ReportServiceClient is a client for the ReportService.
type ReportServiceClient interface {
	UpsertReport(context.Context, *connect.Request[api.UpsertReportRequest]) (*connect.Response[api.UpsertReportResponse], error)
	GetReport(context.Context, *connect.Request[api.GetReportRequest]) (*connect.Response[api.GetReportResponse], error)
	ListReports(context.Context, *connect.Request[api.ListReportsRequest]) (*connect.Response[api.ListReportsResponse], error)
}

// NewReportServiceClient constructs a client for the ReportService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewReportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReportServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &reportServiceClient{
		upsertReport: connect.NewClient[api.UpsertReportRequest, api.UpsertReportResponse](httpClient, baseURL+ReportServiceUpsertReportProcedure, opts...),
		getReport:    connect.NewClient[api.GetReportRequest, api.GetReportResponse](httpClient, baseURL+ReportServiceGetReportProcedure, opts...),
		listReports:  connect.NewClient[api.ListReportsRequest, api.ListReportsResponse](httpClient, baseURL+ReportServiceListReportsProcedure, opts...),
	}
}

type reportServiceClient struct {
	upsertReport *connect.Client[api.UpsertReportRequest, api.UpsertReportResponse]
	getReport    *connect.Client[api.GetReportRequest, api.GetReportResponse]
	listReports  *connect.Client[api.ListReportsRequest, api.ListReportsResponse]
}

func (c *reportServiceClient) UpsertReport(ctx context.Context, req *connect.Request[api.UpsertReportRequest]) (*connect.Response[api.UpsertReportResponse], error) {
	return c.upsertReport.CallUnary(ctx, req)
}

func (c *reportServiceClient) GetReport(ctx context.Context, req *connect.Request[api.GetReportRequest]) (*connect.Response[api.GetReportResponse], error) {
	return c.getReport.CallUnary(ctx, req)
}

func (c *reportServiceClient) ListReports(ctx context.Context, req *connect.Request[api.ListReportsRequest]) (*connect.Response[api.ListReportsResponse], error) {
	return c.listReports.CallUnary(ctx, req)
}

// AlertServiceHandler is implemented by the server; the AlertService flags members with runs of consecutive absences.
type AlertServiceHandler interface {
	ComputeAttendanceAlerts(context.Context, *connect.Request[api.ComputeAttendanceAlertsRequest]) (*connect.Response[api.ComputeAttendanceAlertsResponse], error)
}

// NewAlertServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAlertServiceHandler(svc AlertServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	computeAttendanceAlertsHandler := connect.NewUnaryHandler(AlertServiceComputeAttendanceAlertsProcedure, svc.ComputeAttendanceAlerts, opts...)
	return "/" + AlertServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AlertServiceComputeAttendanceAlertsProcedure:
			computeAttendanceAlertsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AlertServiceClient is a client for the AlertService.
type AlertServiceClient interface {
	ComputeAttendanceAlerts(context.Context, *connect.Request[api.ComputeAttendanceAlertsRequest]) (*connect.Response[api.ComputeAttendanceAlertsResponse], error)
}

// NewAlertServiceClient constructs a client for the AlertService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewAlertServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AlertServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &alertServiceClient{
		computeAttendanceAlerts: connect.NewClient[api.ComputeAttendanceAlertsRequest, api.ComputeAttendanceAlertsResponse](httpClient, baseURL+AlertServiceComputeAttendanceAlertsProcedure, opts...),
	}
}

type alertServiceClient struct {
	computeAttendanceAlerts *connect.Client[api.ComputeAttendanceAlertsRequest, api.ComputeAttendanceAlertsResponse]
}

func (c *alertServiceClient) ComputeAttendanceAlerts(ctx context.Context, req *connect.Request[api.ComputeAttendanceAlertsRequest]) (*connect.Response[api.ComputeAttendanceAlertsResponse], error) {
	return c.computeAttendanceAlerts.CallUnary(ctx, req)
}
