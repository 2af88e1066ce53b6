package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/shepherd/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	c := setupTestServer(t, false)

	resp, err := c.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:       "  Connect Centro ",
		LeaderName: "Paulo",
		MeetingDay: "Wednesday",
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	group := resp.Msg.Group
	if group.Id == "" {
		t.Error("expected non-empty group ID")
	}
	if group.Name != "Connect Centro" {
		t.Errorf("name: expected 'Connect Centro', got '%s'", group.Name)
	}
	if group.MeetingDay != "wednesday" {
		t.Errorf("meeting day: expected 'wednesday', got '%s'", group.MeetingDay)
	}
	if group.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
}

func TestCreateGroup_EmptyName(t *testing.T) {
	c := setupTestServer(t, false)

	_, err := c.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{Name: "   "}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument, got %v", err)
	}
}

func TestGetGroup(t *testing.T) {
	c := setupTestServer(t, false)
	id := createGroup(t, c, "Connect Norte")

	resp, err := c.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupId: id}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if resp.Msg.Group.Name != "Connect Norte" {
		t.Errorf("name: expected 'Connect Norte', got '%s'", resp.Msg.Group.Name)
	}
}

func TestGetGroup_NotFound(t *testing.T) {
	c := setupTestServer(t, false)

	_, err := c.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{GroupId: "nonexistent-id"}))
	if err == nil {
		t.Fatal("expected error for nonexistent group")
	}
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected CodeNotFound, got %v", connect.CodeOf(err))
	}
}

func TestListGroups(t *testing.T) {
	c := setupTestServer(t, false)

	listResp, err := c.groups.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(listResp.Msg.Groups) != 0 {
		t.Errorf("expected 0 groups, got %d", len(listResp.Msg.Groups))
	}

	createGroup(t, c, "Sul")
	createGroup(t, c, "Norte")

	listResp, err = c.groups.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(listResp.Msg.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(listResp.Msg.Groups))
	}
	if listResp.Msg.Groups[0].Name != "Norte" {
		t.Errorf("expected groups ordered by name, got %s first", listResp.Msg.Groups[0].Name)
	}
}
