package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"pharmaflux/internal/domain/mission"
	"pharmaflux/internal/infrastructure/geocode"
)

type stubGeocoder struct {
	coords geocode.Coordinates
	err    error
	calls  int
}

func (s *stubGeocoder) Lookup(context.Context, string) (geocode.Coordinates, error) {
	s.calls++
	if s.err != nil {
		return geocode.Coordinates{}, s.err
	}
	return s.coords, nil
}

type stubMatcher struct {
	runs []uuid.UUID
}

func (s *stubMatcher) Run(_ context.Context, missionID uuid.UUID) error {
	s.runs = append(s.runs, missionID)
	return nil
}

func validMissionInput() CreateMissionInput {
	start, _ := time.Parse("2006-01-02", "2026-10-03")
	end, _ := time.Parse("2006-01-02", "2026-10-04")
	return CreateMissionInput{
		Title:        "Remplacement pharmacien",
		Description:  "Garde du week-end.",
		FacilityType: mission.FacilityPharmacy,
		Location:     "Paris",
		StartDate:    start,
		EndDate:      end,
		StartTime:    "09:00",
		EndTime:      "19:00",
		HourlyRate:   42.5,
	}
}

func TestMission_Create_CandidateForbidden(t *testing.T) {
	uc := NewMissionUsecase(&mockMissionRepo{}, nil, nil, nil, nil, geocode.Coordinates{}, nil)

	_, err := uc.Create(context.Background(), candidateActor(), validMissionInput())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestMission_Create_Validation(t *testing.T) {
	uc := NewMissionUsecase(&mockMissionRepo{}, nil, nil, nil, nil, geocode.Coordinates{}, nil)
	employer := employerActor()

	cases := []struct {
		name   string
		mutate func(*CreateMissionInput)
	}{
		{"empty title", func(in *CreateMissionInput) { in.Title = "  " }},
		{"bad facility type", func(in *CreateMissionInput) { in.FacilityType = "clinic" }},
		{"end before start", func(in *CreateMissionInput) { in.EndDate = in.StartDate.AddDate(0, 0, -1) }},
		{"missing times", func(in *CreateMissionInput) { in.StartTime = "" }},
		{"non-positive rate", func(in *CreateMissionInput) { in.HourlyRate = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validMissionInput()
			tc.mutate(&in)
			if _, err := uc.Create(context.Background(), employer, in); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestMission_Create_GeocodesAndSchedulesMatching(t *testing.T) {
	missions := &mockMissionRepo{}
	geo := &stubGeocoder{coords: geocode.Coordinates{Lat: 48.85, Lon: 2.35}}
	tasks := &recordingEnqueuer{sync: true}
	matcher := &stubMatcher{}
	uc := NewMissionUsecase(missions, geo, nil, tasks, matcher, geocode.Coordinates{Lat: 1, Lon: 1}, nil)

	m, err := uc.Create(context.Background(), employerActor(), validMissionInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.Status != mission.StatusOpen {
		t.Fatalf("expected open, got %s", m.Status)
	}
	if m.Lat != 48.85 || m.Lon != 2.35 {
		t.Fatalf("expected geocoded coordinates, got %f,%f", m.Lat, m.Lon)
	}
	if geo.calls != 1 {
		t.Fatalf("expected one geocoder call, got %d", geo.calls)
	}
	if len(tasks.tasks) != 1 || tasks.tasks[0].Name != "matching" {
		t.Fatalf("expected one matching task, got %+v", tasks.tasks)
	}
	if len(matcher.runs) != 1 || matcher.runs[0] != m.ID {
		t.Fatalf("expected matching run for the new mission, got %v", matcher.runs)
	}
}

func TestMission_Create_GeocodeFailureFallsBack(t *testing.T) {
	missions := &mockMissionRepo{}
	geo := &stubGeocoder{err: errors.New("geocoder down")}
	uc := NewMissionUsecase(missions, geo, nil, nil, nil, geocode.Coordinates{Lat: 48.8566, Lon: 2.3522}, nil)

	m, err := uc.Create(context.Background(), employerActor(), validMissionInput())
	if err != nil {
		t.Fatalf("mission creation must not fail on geocoding: %v", err)
	}
	if m.Lat != 48.8566 || m.Lon != 2.3522 {
		t.Fatalf("expected default coordinates, got %f,%f", m.Lat, m.Lon)
	}
}

func TestMission_ListForEmployer_RoleCheck(t *testing.T) {
	uc := NewMissionUsecase(&mockMissionRepo{}, nil, nil, nil, nil, geocode.Coordinates{}, nil)

	if _, err := uc.ListForEmployer(context.Background(), candidateActor()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
