package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"pharmaflux/internal/domain/application"
	"pharmaflux/internal/domain/matching"
	"pharmaflux/internal/domain/mission"
	"pharmaflux/internal/domain/profile"
)

// allowAll marks every candidate eligible so the tests exercise the
// dedup and status handling around the engine, not the engine itself.
type allowAll struct{}

func (allowAll) Eligible(profile.Profile, mission.Mission) bool { return true }

func TestMatching_Run_ProposesEligibleCandidates(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)

	c1 := candidateActor()
	c2 := candidateActor()

	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	profiles := &mockProfileRepo{candidates: []profile.Profile{c1, c2}}
	apps := &mockApplicationRepo{}

	uc := NewMatchingUsecase(missions, profiles, apps, allowAll{}, nil, nil)
	if err := uc.Run(context.Background(), m.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	proposed, _ := apps.ListByMission(context.Background(), m.ID)
	if len(proposed) != 2 {
		t.Fatalf("expected 2 proposed applications, got %d", len(proposed))
	}
	for _, a := range proposed {
		if a.Status != application.StatusProposed {
			t.Fatalf("expected proposed, got %s", a.Status)
		}
	}
}

func TestMatching_Run_SkipsAlreadyProposedCandidates(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	c1 := candidateActor()
	c2 := candidateActor()

	existing := application.Application{ID: uuid.New(), CandidateID: c1.ID, MissionID: m.ID, Status: application.StatusRejected}

	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	profiles := &mockProfileRepo{candidates: []profile.Profile{c1, c2}}
	apps := &mockApplicationRepo{byID: map[uuid.UUID]application.Application{existing.ID: existing}}

	uc := NewMatchingUsecase(missions, profiles, apps, allowAll{}, nil, nil)
	if err := uc.Run(context.Background(), m.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// c1 already holds an application (even a rejected one), so only c2
	// may be proposed.
	all, _ := apps.ListByMission(context.Background(), m.ID)
	if len(all) != 2 {
		t.Fatalf("expected 2 applications total, got %d", len(all))
	}
	for _, a := range all {
		if a.CandidateID == c1.ID && a.Status != application.StatusRejected {
			t.Fatalf("rejected application must not be re-proposed")
		}
	}
}

func TestMatching_Run_Rerun_IsIdempotent(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	c1 := candidateActor()

	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	profiles := &mockProfileRepo{candidates: []profile.Profile{c1}}
	apps := &mockApplicationRepo{}

	uc := NewMatchingUsecase(missions, profiles, apps, allowAll{}, nil, nil)
	if err := uc.Run(context.Background(), m.ID); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := uc.Run(context.Background(), m.ID); err != nil {
		t.Fatalf("second run: %v", err)
	}

	all, _ := apps.ListByMission(context.Background(), m.ID)
	if len(all) != 1 {
		t.Fatalf("expected 1 application after rerun, got %d", len(all))
	}
}

func TestMatching_Run_SkipsNonOpenMission(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	m.Status = mission.StatusAssigned
	c1 := candidateActor()

	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	profiles := &mockProfileRepo{candidates: []profile.Profile{c1}}
	apps := &mockApplicationRepo{}

	uc := NewMatchingUsecase(missions, profiles, apps, allowAll{}, nil, nil)
	if err := uc.Run(context.Background(), m.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	all, _ := apps.ListByMission(context.Background(), m.ID)
	if len(all) != 0 {
		t.Fatalf("assigned mission must not receive proposals, got %d", len(all))
	}
}

func TestMatching_Run_UsesEngineFilter(t *testing.T) {
	employer := employerActor()
	m := openMission(employer.ID)
	m.FacilityType = mission.FacilityPharmacy
	m.StartDate = time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)
	m.EndDate = time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC)
	m.StartTime = "09:00"
	m.EndTime = "19:00"

	eligible := candidateActor()
	eligible.SkillTags = []string{"pharmacy"}
	eligible.Availability = []profile.AvailabilityWindow{{
		StartDate: m.StartDate.AddDate(0, 0, -1),
		EndDate:   m.EndDate.AddDate(0, 0, 1),
		StartTime: "00:00",
		EndTime:   "23:59",
	}}
	ineligible := candidateActor()
	ineligible.SkillTags = []string{"hospital"}

	missions := &mockMissionRepo{byID: map[uuid.UUID]mission.Mission{m.ID: m}}
	profiles := &mockProfileRepo{candidates: []profile.Profile{eligible, ineligible}}
	apps := &mockApplicationRepo{}

	uc := NewMatchingUsecase(missions, profiles, apps, matching.NewEngine(matching.Criteria{}), nil, nil)
	if err := uc.Run(context.Background(), m.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	all, _ := apps.ListByMission(context.Background(), m.ID)
	if len(all) != 1 || all[0].CandidateID != eligible.ID {
		t.Fatalf("expected only the eligible candidate to be proposed, got %+v", all)
	}
}
