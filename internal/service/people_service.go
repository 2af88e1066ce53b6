package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/shepherd/internal/dedupe"
	"github.com/mmynk/shepherd/internal/membership"
	"github.com/mmynk/shepherd/internal/metrics"
	"github.com/mmynk/shepherd/internal/models"
	"github.com/mmynk/shepherd/internal/storage"
	"github.com/mmynk/shepherd/pkg/api"
)

// PeopleService implements the Connect PeopleService: registration with
// duplicate screening, membership changes and membership lookups.
type PeopleService struct {
	store     storage.Store
	threshold float64
}

// NewPeopleService creates a PeopleService that flags duplicates at
// dedupe.DefaultThreshold.
func NewPeopleService(store storage.Store) *PeopleService {
	return &PeopleService{store: store, threshold: dedupe.DefaultThreshold}
}

// CreatePerson registers a person. Unless the caller confirmed the draft as
// new, it is first compared against everyone on record; a probable duplicate
// is returned instead of creating anything.
func (s *PeopleService) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	msg := req.Msg
	slog.Info("CreatePerson request received",
		"name", msg.Name,
		"group_id", msg.GroupId,
		"confirmed_new", msg.ConfirmedNew,
	)

	draft, err := s.draftPerson(msg.Name, msg.Email, msg.Phone, msg.DateOfBirth)
	if err != nil {
		return nil, err
	}
	draft.Nickname = strings.TrimSpace(msg.Nickname)

	if msg.GroupId != "" {
		joinedOn, err := parseDate("joined_on", msg.JoinedOn, true)
		if err != nil {
			return nil, err
		}
		if joinedOn.IsZero() {
			joinedOn = models.Today()
		}
		if _, err := s.store.GetGroup(ctx, msg.GroupId); err != nil {
			slog.Error("CreatePerson failed - group lookup", "group_id", msg.GroupId, "error", err)
			return nil, lookupError(err)
		}
		draft.CurrentGroupID = msg.GroupId
		draft.History = []models.MembershipInterval{{GroupID: msg.GroupId, StartDate: joinedOn}}
	}

	if !msg.ConfirmedNew {
		candidate, err := s.detect(ctx, draft)
		if err != nil {
			return nil, err
		}
		if candidate != nil {
			metrics.DuplicatesFlagged.Inc()
			slog.Info("CreatePerson deferred - probable duplicate",
				"name", draft.Name,
				"existing_id", candidate.Person.ID,
				"reasons", candidate.Reasons,
			)
			return connect.NewResponse(&api.CreatePersonResponse{Duplicate: toAPICandidate(candidate)}), nil
		}
	}

	if err := s.store.CreatePerson(ctx, &draft); err != nil {
		slog.Error("CreatePerson failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Person created", "person_id", draft.ID, "group_id", draft.CurrentGroupID)

	return connect.NewResponse(&api.CreatePersonResponse{Person: toAPIPerson(&draft)}), nil
}

// GetPerson retrieves a person with membership history.
func (s *PeopleService) GetPerson(ctx context.Context, req *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error) {
	slog.Info("GetPerson request received", "person_id", req.Msg.PersonId)

	person, err := s.store.GetPerson(ctx, req.Msg.PersonId)
	if err != nil {
		slog.Error("GetPerson failed", "person_id", req.Msg.PersonId, "error", err)
		return nil, lookupError(err)
	}

	return connect.NewResponse(&api.GetPersonResponse{Person: toAPIPerson(person)}), nil
}

// ListPeople returns everyone on record, or the current members of one group.
func (s *PeopleService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	slog.Info("ListPeople request received", "group_id", req.Msg.GroupId, "as_of", req.Msg.AsOf)

	asOf, err := parseDate("as_of", req.Msg.AsOf, true)
	if err != nil {
		return nil, err
	}
	if !asOf.IsZero() && req.Msg.GroupId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("as_of requires group_id"))
	}

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		slog.Error("ListPeople failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if !asOf.IsZero() {
		ledger := membership.NewLedger(people)
		ids := ledger.MembersOn(req.Msg.GroupId, asOf)
		result := make([]*api.Person, 0, len(ids))
		for _, id := range ids {
			p, _ := ledger.Person(id)
			result = append(result, toAPIPerson(&p))
		}
		slog.Info("ListPeople successful", "count", len(result), "as_of", asOf)
		return connect.NewResponse(&api.ListPeopleResponse{People: result}), nil
	}

	result := make([]*api.Person, 0, len(people))
	for i := range people {
		if req.Msg.GroupId != "" && people[i].CurrentGroupID != req.Msg.GroupId {
			continue
		}
		result = append(result, toAPIPerson(&people[i]))
	}

	slog.Info("ListPeople successful", "count", len(result))

	return connect.NewResponse(&api.ListPeopleResponse{People: result}), nil
}

// DetectDuplicate reports the existing person a draft most likely duplicates,
// without creating anything.
func (s *PeopleService) DetectDuplicate(ctx context.Context, req *connect.Request[api.DetectDuplicateRequest]) (*connect.Response[api.DetectDuplicateResponse], error) {
	slog.Info("DetectDuplicate request received", "name", req.Msg.Name)

	draft, err := s.draftPerson(req.Msg.Name, req.Msg.Email, req.Msg.Phone, req.Msg.DateOfBirth)
	if err != nil {
		return nil, err
	}

	candidate, err := s.detect(ctx, draft)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.DetectDuplicateResponse{Duplicate: toAPICandidate(candidate)}), nil
}

// ReassignPerson moves a person to another group (or out of every group)
// from the effective date on. The history change is written atomically.
func (s *PeopleService) ReassignPerson(ctx context.Context, req *connect.Request[api.ReassignPersonRequest]) (*connect.Response[api.ReassignPersonResponse], error) {
	msg := req.Msg
	slog.Info("ReassignPerson request received",
		"person_id", msg.PersonId,
		"group_id", msg.GroupId,
		"effective_date", msg.EffectiveDate,
	)

	effective, err := parseDate("effective_date", msg.EffectiveDate, false)
	if err != nil {
		return nil, err
	}

	if msg.GroupId != "" {
		if _, err := s.store.GetGroup(ctx, msg.GroupId); err != nil {
			slog.Error("ReassignPerson failed - group lookup", "group_id", msg.GroupId, "error", err)
			return nil, lookupError(err)
		}
	}

	person, err := s.store.GetPerson(ctx, msg.PersonId)
	if err != nil {
		slog.Error("ReassignPerson failed - person lookup", "person_id", msg.PersonId, "error", err)
		return nil, lookupError(err)
	}

	change, err := membership.Reassign(*person, msg.GroupId, effective)
	if err != nil {
		slog.Warn("ReassignPerson rejected", "person_id", msg.PersonId, "error", err)
		if errors.Is(err, membership.ErrBackdated) {
			return nil, connect.NewError(connect.CodeFailedPrecondition, err)
		}
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if !change.Changed() {
		slog.Info("ReassignPerson no-op", "person_id", person.ID, "group_id", person.CurrentGroupID)
		return connect.NewResponse(&api.ReassignPersonResponse{Person: toAPIPerson(person)}), nil
	}

	if err := s.store.ApplyReassignment(ctx, change); err != nil {
		slog.Error("ReassignPerson failed - write", "person_id", person.ID, "error", err)
		if errors.Is(err, membership.ErrInvalidHistory) {
			return nil, connect.NewError(connect.CodeFailedPrecondition, err)
		}
		return nil, lookupError(err)
	}
	metrics.Reassignments.Inc()

	updated, err := s.store.GetPerson(ctx, person.ID)
	if err != nil {
		slog.Error("ReassignPerson failed - reload", "person_id", person.ID, "error", err)
		return nil, lookupError(err)
	}

	slog.Info("Person reassigned",
		"person_id", updated.ID,
		"from_group", person.CurrentGroupID,
		"to_group", updated.CurrentGroupID,
	)

	return connect.NewResponse(&api.ReassignPersonResponse{Person: toAPIPerson(updated), Changed: true}), nil
}

// CheckMembership answers whether a person belonged to a group on a date.
func (s *PeopleService) CheckMembership(ctx context.Context, req *connect.Request[api.CheckMembershipRequest]) (*connect.Response[api.CheckMembershipResponse], error) {
	msg := req.Msg
	slog.Info("CheckMembership request received",
		"person_id", msg.PersonId,
		"group_id", msg.GroupId,
		"date", msg.Date,
	)

	if msg.GroupId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group_id required"))
	}
	date, err := parseDate("date", msg.Date, false)
	if err != nil {
		return nil, err
	}

	person, err := s.store.GetPerson(ctx, msg.PersonId)
	if err != nil {
		slog.Error("CheckMembership failed", "person_id", msg.PersonId, "error", err)
		return nil, lookupError(err)
	}

	return connect.NewResponse(&api.CheckMembershipResponse{
		Member: membership.WasMemberAt(*person, msg.GroupId, date),
	}), nil
}

func (s *PeopleService) draftPerson(name, email, phone, dateOfBirth string) (models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Person{}, connect.NewError(connect.CodeInvalidArgument, errors.New("name required"))
	}
	dob, err := parseDate("date_of_birth", dateOfBirth, true)
	if err != nil {
		return models.Person{}, err
	}
	return models.Person{
		Name:        name,
		Email:       strings.TrimSpace(email),
		Phone:       strings.TrimSpace(phone),
		DateOfBirth: dob,
	}, nil
}

func (s *PeopleService) detect(ctx context.Context, draft models.Person) (*dedupe.Candidate, error) {
	existing, err := s.store.ListPeople(ctx)
	if err != nil {
		slog.Error("Duplicate check failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to load people: %w", err))
	}
	return dedupe.Detect(draft, existing, s.threshold), nil
}
