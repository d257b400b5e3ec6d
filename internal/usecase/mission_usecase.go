package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pharmaflux/internal/domain/mission"
	"pharmaflux/internal/domain/profile"
	"pharmaflux/internal/infrastructure/cache"
	"pharmaflux/internal/infrastructure/geocode"
	"pharmaflux/internal/infrastructure/metrics"
	"pharmaflux/internal/worker"
)

// Enqueuer is the slice of the worker dispatcher the usecases need.
type Enqueuer interface {
	Enqueue(t worker.Task)
}

// MatchRunner triggers a matching run for a mission. Satisfied by the
// matching usecase; kept as an interface so mission creation does not
// depend on the matcher's wiring.
type MatchRunner interface {
	Run(ctx context.Context, missionID uuid.UUID) error
}

type CreateMissionInput struct {
	Title        string
	Description  string
	FacilityType mission.FacilityType
	Location     string
	StartDate    time.Time
	EndDate      time.Time
	StartTime    string
	EndTime      string
	HourlyRate   float64
}

type MissionUsecase interface {
	Create(ctx context.Context, actor profile.Profile, in CreateMissionInput) (mission.Mission, error)
	Get(ctx context.Context, id uuid.UUID) (mission.Mission, error)
	ListForEmployer(ctx context.Context, actor profile.Profile) ([]mission.Mission, error)
	ListOpen(ctx context.Context) ([]mission.WithEmployer, error)
}

type Mission struct {
	missions mission.Repository
	geocoder geocode.Client
	cache    *cache.Redis
	tasks    Enqueuer
	matcher  MatchRunner

	defaultCoords geocode.Coordinates
	logger        *zap.Logger
}

func NewMissionUsecase(
	missions mission.Repository,
	geocoder geocode.Client,
	cacheClient *cache.Redis,
	tasks Enqueuer,
	matcher MatchRunner,
	defaultCoords geocode.Coordinates,
	logger *zap.Logger,
) *Mission {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mission{
		missions:      missions,
		geocoder:      geocoder,
		cache:         cacheClient,
		tasks:         tasks,
		matcher:       matcher,
		defaultCoords: defaultCoords,
		logger:        logger,
	}
}

func (u *Mission) Create(ctx context.Context, actor profile.Profile, in CreateMissionInput) (mission.Mission, error) {
	if actor.ID == uuid.Nil {
		return mission.Mission{}, ErrUnauthorized
	}
	if !actor.IsEmployer() {
		return mission.Mission{}, ErrForbidden
	}
	if err := validateMissionInput(in); err != nil {
		return mission.Mission{}, err
	}

	coords := u.resolveCoordinates(ctx, in.Location)

	m := mission.Mission{
		ID:           uuid.New(),
		EmployerID:   actor.ID,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		FacilityType: in.FacilityType,
		Location:     strings.TrimSpace(in.Location),
		Lat:          coords.Lat,
		Lon:          coords.Lon,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		HourlyRate:   in.HourlyRate,
		Status:       mission.StatusOpen,
	}

	if err := u.missions.Create(ctx, m); err != nil {
		u.logger.Error("mission create failed", zap.Error(err))
		return mission.Mission{}, ErrInternal
	}

	metrics.MissionsCreated.Inc()
	_ = u.cache.InvalidateMissionCaches(ctx)

	// Matching runs detached: the mission exists regardless of whether
	// matching succeeds, and the run is idempotent under retries.
	if u.tasks != nil && u.matcher != nil {
		missionID := m.ID
		u.tasks.Enqueue(worker.Task{
			Name: "matching",
			Run: func(taskCtx context.Context) error {
				return u.matcher.Run(taskCtx, missionID)
			},
		})
	}

	return m, nil
}

func (u *Mission) Get(ctx context.Context, id uuid.UUID) (mission.Mission, error) {
	if id == uuid.Nil {
		return mission.Mission{}, ErrValidation
	}
	return u.missions.GetByID(ctx, id)
}

func (u *Mission) ListForEmployer(ctx context.Context, actor profile.Profile) ([]mission.Mission, error) {
	if actor.ID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if !actor.IsEmployer() {
		return nil, ErrForbidden
	}
	out, err := u.missions.ListByEmployer(ctx, actor.ID)
	if err != nil {
		u.logger.Error("mission list failed", zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Mission) ListOpen(ctx context.Context) ([]mission.WithEmployer, error) {
	var cached []mission.WithEmployer
	if hit, err := u.cache.GetJSON(ctx, cache.KeyOpenMissions, &cached); err == nil && hit {
		return cached, nil
	}

	out, err := u.missions.ListOpen(ctx)
	if err != nil {
		u.logger.Error("open mission list failed", zap.Error(err))
		return nil, ErrInternal
	}

	_ = u.cache.SetJSON(ctx, cache.KeyOpenMissions, out, 0)
	return out, nil
}

// resolveCoordinates geocodes the free-text location. Failure degrades to
// the configured default coordinate; creation never fails on geocoding.
func (u *Mission) resolveCoordinates(ctx context.Context, location string) geocode.Coordinates {
	if u.geocoder == nil {
		return u.defaultCoords
	}
	coords, err := u.geocoder.Lookup(ctx, location)
	if err != nil {
		u.logger.Warn("geocoding failed, using default coordinates",
			zap.String("location", location),
			zap.Error(err),
		)
		return u.defaultCoords
	}
	return coords
}

func validateMissionInput(in CreateMissionInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrValidation
	}
	if !in.FacilityType.Valid() {
		return ErrValidation
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() || in.EndDate.Before(in.StartDate) {
		return ErrValidation
	}
	if strings.TrimSpace(in.StartTime) == "" || strings.TrimSpace(in.EndTime) == "" {
		return ErrValidation
	}
	if in.HourlyRate <= 0 {
		return ErrValidation
	}
	return nil
}
