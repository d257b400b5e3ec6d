package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"pharmaflux/internal/domain/application"
	"pharmaflux/internal/domain/mission"
	"pharmaflux/internal/domain/profile"
	"pharmaflux/internal/worker"
)

type mockApplicationRepo struct {
	byID map[uuid.UUID]application.Application

	createErr error
	acceptErr error

	accepted  []uuid.UUID
	rejected  []uuid.UUID
	rejectOK  bool
	rejectErr error
}

func (m *mockApplicationRepo) Create(_ context.Context, a application.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.byID == nil {
		m.byID = map[uuid.UUID]application.Application{}
	}
	m.byID[a.ID] = a
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (m *mockApplicationRepo) ListByMission(_ context.Context, missionID uuid.UUID) ([]application.Application, error) {
	var out []application.Application
	for _, a := range m.byID {
		if a.MissionID == missionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]application.Application, error) {
	var out []application.Application
	for _, a := range m.byID {
		if a.CandidateID == candidateID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) CandidateIDsByMission(_ context.Context, missionID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, a := range m.byID {
		if a.MissionID == missionID {
			out = append(out, a.CandidateID)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) CreateProposedBatch(_ context.Context, missionID uuid.UUID, candidateIDs []uuid.UUID) (int64, error) {
	if m.byID == nil {
		m.byID = map[uuid.UUID]application.Application{}
	}
	var n int64
	for _, cid := range candidateIDs {
		dup := false
		for _, a := range m.byID {
			if a.MissionID == missionID && a.CandidateID == cid {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		id := uuid.New()
		m.byID[id] = application.Application{ID: id, CandidateID: cid, MissionID: missionID, Status: application.StatusProposed}
		n++
	}
	return n, nil
}

func (m *mockApplicationRepo) Accept(_ context.Context, applicationID, missionID uuid.UUID) error {
	if m.acceptErr != nil {
		return m.acceptErr
	}
	m.accepted = append(m.accepted, applicationID)
	a := m.byID[applicationID]
	a.Status = application.StatusAccepted
	m.byID[applicationID] = a
	for id, other := range m.byID {
		if id != applicationID && other.MissionID == missionID && other.Status == application.StatusProposed {
			other.Status = application.StatusRejected
			m.byID[id] = other
		}
	}
	return nil
}

func (m *mockApplicationRepo) RejectIfProposed(_ context.Context, applicationID uuid.UUID) (bool, error) {
	if m.rejectErr != nil {
		return false, m.rejectErr
	}
	if !m.rejectOK {
		return false, nil
	}
	m.rejected = append(m.rejected, applicationID)
	a := m.byID[applicationID]
	a.Status = application.StatusRejected
	m.byID[applicationID] = a
	return true, nil
}

type mockMissionRepo struct {
	byID map[uuid.UUID]mission.Mission

	createErr error
	listOpen  []mission.WithEmployer
}

func (m *mockMissionRepo) Create(_ context.Context, mi mission.Mission) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.byID == nil {
		m.byID = map[uuid.UUID]mission.Mission{}
	}
	m.byID[mi.ID] = mi
	return nil
}

func (m *mockMissionRepo) GetByID(_ context.Context, id uuid.UUID) (mission.Mission, error) {
	mi, ok := m.byID[id]
	if !ok {
		return mission.Mission{}, mission.ErrNotFound
	}
	return mi, nil
}

func (m *mockMissionRepo) ListByEmployer(_ context.Context, employerID uuid.UUID) ([]mission.Mission, error) {
	var out []mission.Mission
	for _, mi := range m.byID {
		if mi.EmployerID == employerID {
			out = append(out, mi)
		}
	}
	return out, nil
}

func (m *mockMissionRepo) ListOpen(context.Context) ([]mission.WithEmployer, error) {
	return m.listOpen, nil
}

type recordingEnqueuer struct {
	tasks []worker.Task
	sync  bool
}

func (r *recordingEnqueuer) Enqueue(t worker.Task) {
	r.tasks = append(r.tasks, t)
	if r.sync && t.Run != nil {
		_ = t.Run(context.Background())
	}
}

type recordingContracts struct {
	generated []uuid.UUID
	err       error
}

func (r *recordingContracts) Generate(_ context.Context, missionID uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.generated = append(r.generated, missionID)
	return nil
}

func candidateActor() profile.Profile {
	return profile.Profile{ID: uuid.New(), Role: profile.RoleCandidate}
}

func employerActor() profile.Profile {
	return profile.Profile{ID: uuid.New(), Role: profile.RoleEmployer}
}

func openMission(employerID uuid.UUID) mission.Mission {
	return mission.Mission{ID: uuid.New(), EmployerID: employerID, Status: mission.StatusOpen}
}

func TestApplications_Apply_EmployerForbidden(t *testing.T) {
	uc := NewApplicationUsecase(&mockApplicationRepo{}, &mockMissionRepo{}, nil, nil, nil, nil)

	_, err := uc.Apply(context.Background(), employerActor(), uuid.New())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApplications_Apply_MissionNotOpen(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	m.Status = mission.StatusAssigned
	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}

	uc := NewApplicationUsecase(&mockApplicationRepo{}, missions, nil, nil, nil, nil)

	_, err := uc.Apply(context.Background(), candidateActor(), m.ID)
	if !errors.Is(err, ErrMissionNotOpen) {
		t.Fatalf("expected ErrMissionNotOpen, got %v", err)
	}
}

func TestApplications_Apply_DuplicateMapsToSentinel(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	apps := &mockApplicationRepo{createErr: application.ErrDuplicate}

	uc := NewApplicationUsecase(apps, missions, nil, nil, nil, nil)

	_, err := uc.Apply(context.Background(), candidateActor(), m.ID)
	if !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}
}

func TestApplications_Apply_Success(t *testing.T) {
	employer := employerActor()
	candidate := candidateActor()
	m := openMission(employer.ID)
	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	apps := &mockApplicationRepo{}

	uc := NewApplicationUsecase(apps, missions, nil, nil, nil, nil)

	a, err := uc.Apply(context.Background(), candidate, m.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != application.StatusProposed {
		t.Fatalf("expected proposed, got %s", a.Status)
	}
	if a.CandidateID != candidate.ID || a.MissionID != m.ID {
		t.Fatalf("unexpected application %+v", a)
	}
}

func TestApplications_UpdateStatus_InvalidStatus(t *testing.T) {
	uc := NewApplicationUsecase(&mockApplicationRepo{}, &mockMissionRepo{}, nil, nil, nil, nil)

	_, err := uc.UpdateStatus(context.Background(), candidateActor(), uuid.New(), application.StatusProposed)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestApplications_UpdateStatus_ForeignCandidateForbidden(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	owner := candidateActor()
	a := application.Application{ID: uuid.New(), CandidateID: owner.ID, MissionID: m.ID, Status: application.StatusProposed}

	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	apps := &mockApplicationRepo{byID: map[uuid.UUID]application.Application{a.ID: a}}
	uc := NewApplicationUsecase(apps, missions, nil, nil, nil, nil)

	_, err := uc.UpdateStatus(context.Background(), candidateActor(), a.ID, application.StatusAccepted)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApplications_UpdateStatus_ForeignEmployerForbidden(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	owner := candidateActor()
	a := application.Application{ID: uuid.New(), CandidateID: owner.ID, MissionID: m.ID, Status: application.StatusProposed}

	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	apps := &mockApplicationRepo{byID: map[uuid.UUID]application.Application{a.ID: a}}
	uc := NewApplicationUsecase(apps, missions, nil, nil, nil, nil)

	_, err := uc.UpdateStatus(context.Background(), employerActor(), a.ID, application.StatusRejected)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApplications_UpdateStatus_TerminalStateRejected(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	owner := candidateActor()
	a := application.Application{ID: uuid.New(), CandidateID: owner.ID, MissionID: m.ID, Status: application.StatusRejected}

	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	apps := &mockApplicationRepo{byID: map[uuid.UUID]application.Application{a.ID: a}}
	uc := NewApplicationUsecase(apps, missions, nil, nil, nil, nil)

	_, err := uc.UpdateStatus(context.Background(), owner, a.ID, application.StatusAccepted)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestApplications_UpdateStatus_AcceptSchedulesContract(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	owner := candidateActor()
	sibling := candidateActor()
	a := application.Application{ID: uuid.New(), CandidateID: owner.ID, MissionID: m.ID, Status: application.StatusProposed}
	b := application.Application{ID: uuid.New(), CandidateID: sibling.ID, MissionID: m.ID, Status: application.StatusProposed}

	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	apps := &mockApplicationRepo{byID: map[uuid.UUID]application.Application{a.ID: a, b.ID: b}}
	tasks := &recordingEnqueuer{sync: true}
	contracts := &recordingContracts{}
	uc := NewApplicationUsecase(apps, missions, nil, tasks, contracts, nil)

	updated, err := uc.UpdateStatus(context.Background(), owner, a.ID, application.StatusAccepted)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != application.StatusAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}
	if got := apps.byID[b.ID].Status; got != application.StatusRejected {
		t.Fatalf("expected sibling rejected, got %s", got)
	}
	if len(tasks.tasks) != 1 || tasks.tasks[0].Name != "contract-generation" {
		t.Fatalf("expected one contract-generation task, got %+v", tasks.tasks)
	}
	if len(contracts.generated) != 1 || contracts.generated[0] != m.ID {
		t.Fatalf("expected contract generated for mission, got %v", contracts.generated)
	}
}

func TestApplications_UpdateStatus_AcceptLosesRace(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	owner := candidateActor()
	a := application.Application{ID: uuid.New(), CandidateID: owner.ID, MissionID: m.ID, Status: application.StatusProposed}

	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	apps := &mockApplicationRepo{
		byID:      map[uuid.UUID]application.Application{a.ID: a},
		acceptErr: application.ErrMissionNotOpen,
	}
	uc := NewApplicationUsecase(apps, missions, nil, nil, nil, nil)

	_, err := uc.UpdateStatus(context.Background(), owner, a.ID, application.StatusAccepted)
	if !errors.Is(err, ErrMissionNotOpen) {
		t.Fatalf("expected ErrMissionNotOpen, got %v", err)
	}
}

func TestApplications_UpdateStatus_Reject(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	owner := candidateActor()
	a := application.Application{ID: uuid.New(), CandidateID: owner.ID, MissionID: m.ID, Status: application.StatusProposed}

	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	apps := &mockApplicationRepo{
		byID:     map[uuid.UUID]application.Application{a.ID: a},
		rejectOK: true,
	}
	tasks := &recordingEnqueuer{}
	uc := NewApplicationUsecase(apps, missions, nil, tasks, &recordingContracts{}, nil)

	updated, err := uc.UpdateStatus(context.Background(), employer, a.ID, application.StatusRejected)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != application.StatusRejected {
		t.Fatalf("expected rejected, got %s", updated.Status)
	}
	if len(tasks.tasks) != 0 {
		t.Fatalf("reject must not schedule contract generation")
	}
}

func TestApplications_ListForMission_RequiresOwningEmployer(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	uc := NewApplicationUsecase(&mockApplicationRepo{}, missions, nil, nil, nil, nil)

	if _, err := uc.ListForMission(context.Background(), employerActor(), m.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign employer, got %v", err)
	}
	if _, err := uc.ListForMission(context.Background(), employer, m.ID); err != nil {
		t.Fatalf("unexpected err for owner: %v", err)
	}
}
