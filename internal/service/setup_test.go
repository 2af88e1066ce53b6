package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/shepherd/internal/auth"
	"github.com/mmynk/shepherd/internal/middleware"
	"github.com/mmynk/shepherd/internal/storage/sqlite"
	"github.com/mmynk/shepherd/pkg/api"
	"github.com/mmynk/shepherd/pkg/api/apiconnect"
)

const testSecret = "test-secret"

// testAuthInterceptor returns a Connect interceptor that sets a test user ID in the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx = context.WithValue(ctx, middleware.UserIDKey, "leader-1")
			return next(ctx, req)
		}
	}
}

type testClients struct {
	auth    apiconnect.AuthServiceClient
	groups  apiconnect.GroupServiceClient
	people  apiconnect.PeopleServiceClient
	reports apiconnect.ReportServiceClient
	alerts  apiconnect.AlertServiceClient
}

// setupTestServer serves every service over a temp SQLite database. With
// realAuth the JWT interceptor guards all but the AuthService; otherwise
// every call runs as a fixed test leader.
func setupTestServer(t *testing.T, realAuth bool) testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	interceptor := connect.WithInterceptors(testAuthInterceptor())
	if realAuth {
		interceptor = connect.WithInterceptors(
			middleware.RequireAuth(jwtManager,
				apiconnect.AuthServiceRegisterProcedure,
				apiconnect.AuthServiceLoginProcedure,
			),
		)
	}

	authSvc := NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, slog.Default())

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(authSvc, interceptor))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), interceptor))
	mux.Handle(apiconnect.NewPeopleServiceHandler(NewPeopleService(store), interceptor))
	mux.Handle(apiconnect.NewReportServiceHandler(NewReportService(store), interceptor))
	mux.Handle(apiconnect.NewAlertServiceHandler(NewAlertService(store), interceptor))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return testClients{
		auth:    apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		groups:  apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		people:  apiconnect.NewPeopleServiceClient(http.DefaultClient, server.URL),
		reports: apiconnect.NewReportServiceClient(http.DefaultClient, server.URL),
		alerts:  apiconnect.NewAlertServiceClient(http.DefaultClient, server.URL),
	}
}

func createGroup(t *testing.T, c testClients, name string) string {
	t.Helper()
	resp, err := c.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{Name: name}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group.Id
}

func createPerson(t *testing.T, c testClients, req *api.CreatePersonRequest) *api.Person {
	t.Helper()
	req.ConfirmedNew = true
	resp, err := c.people.CreatePerson(context.Background(), connect.NewRequest(req))
	if err != nil {
		t.Fatalf("CreatePerson failed: %v", err)
	}
	if resp.Msg.Person == nil {
		t.Fatal("expected person in response")
	}
	return resp.Msg.Person
}
